package app

import (
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/seqstream"
)

type Config struct {
	// BufferSize is the number of input bytes the encoder pulls per refill.
	BufferSize int `env:"SEQSTREAM_BUFFER_SIZE" default:"3"`
	// PreviewLimit caps the characters the preview command prints.
	PreviewLimit int `env:"SEQSTREAM_PREVIEW_LIMIT" default:"200000"`
	// LogLevel is the minimum level of the logs written to stderr.
	LogLevel logging.Level `env:"SEQSTREAM_LOG_LEVEL" default:"info" enum:"debug;info;warn;error;"`
	// Root jails the file access of the commands into a directory when set.
	Root string `env:"SEQSTREAM_ROOT"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Load(&c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.BufferSize < 1 {
		return seqstream.ErrPrecondition.F("SEQSTREAM_BUFFER_SIZE must be at least 1, got %d", c.BufferSize)
	}
	if c.PreviewLimit < 0 {
		return seqstream.ErrPrecondition.F("SEQSTREAM_PREVIEW_LIMIT must not be negative, got %d", c.PreviewLimit)
	}
	return nil
}
