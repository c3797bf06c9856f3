// Package base64stream encodes a pulled byte source into standard, padded Base64 characters,
// one character per Read, while holding only a small fixed amount of the input in memory.
package base64stream

import (
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/port/streams"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	padding  = '='
)

// DefaultBufferSize is the number of bytes pulled from the source per refill.
const DefaultBufferSize = 3

// ByteSource is what the Encoder pulls its input from.
// When the source also has an `Err() error` method,
// an error reported by it after the source ended fails the encoding with seqstream.ErrIO.
type ByteSource interface {
	IsEnd() bool
	Read() (byte, error)
}

type Config struct {
	// BufferSize is how many bytes a refill pulls from the source at most.
	// It doesn't change the output, only how the source is consumed.
	BufferSize int
}

func (c *Config) Init() {
	c.BufferSize = DefaultBufferSize
}

func (c Config) Configure(t *Config) { *t = c }

type Option option.Option[Config]

func BufferSize(n int) Option {
	return option.Func[Config](func(c *Config) { c.BufferSize = n })
}

var _ streams.ReadStream[byte] = &Encoder{}

// NewEncoder makes an Encoder over src.
func NewEncoder(src ByteSource, opts ...Option) (*Encoder, error) {
	c := option.ToConfig[Config](opts)
	if c.BufferSize < 1 {
		return nil, seqstream.ErrPrecondition.F("base64 buffer size must be at least 1, got %d", c.BufferSize)
	}
	return &Encoder{
		src:   src,
		size:  c.BufferSize,
		block: make([]byte, 0, c.BufferSize+2),
		out:   make([]byte, 0, (c.BufferSize+2+2)/3*4),
	}, nil
}

// Encoder is a read stream of Base64 characters.
//
// Every refill takes the bytes carried over from the previous one,
// and up to BufferSize new bytes from the source.
// Complete triples are encoded right away,
// while a trailing incomplete group is either carried to the next refill,
// or padded when the source has ended.
type Encoder struct {
	src  ByteSource
	size int

	// block holds the carried bytes at its front between refills.
	block []byte
	carry int

	out    []byte
	outPos int

	total int
	done  bool
	err   error
}

// IsEnd refills the output when it is drained, and reports whether every character is read.
// An encoder that failed is not at its end, its Read returns the failure.
func (e *Encoder) IsEnd() bool {
	for e.err == nil && e.outPos == len(e.out) && !e.done {
		e.refill()
	}
	if e.err != nil {
		return false
	}
	return e.outPos == len(e.out) && e.done
}

func (e *Encoder) Read() (byte, error) {
	if e.IsEnd() {
		return 0, seqstream.ErrEndOfStream
	}
	if e.err != nil {
		return 0, e.err
	}
	c := e.out[e.outPos]
	e.outPos++
	e.total++
	return c, nil
}

// Position is the count of characters read so far.
func (e *Encoder) Position() int { return e.total }

func (e *Encoder) Err() error { return e.err }

func (e *Encoder) CanSeek() bool { return false }

func (e *Encoder) CanGoBack() bool { return false }

func (e *Encoder) Seek(index int) (int, error) { return streams.SeekUnsupported(index) }

func (e *Encoder) refill() {
	block := e.block[:e.carry]
	e.carry = 0
	for i := 0; i < e.size && !e.src.IsEnd(); i++ {
		b, err := e.src.Read()
		if err != nil {
			e.err = err
			return
		}
		block = append(block, b)
	}
	srcEnded := e.src.IsEnd()
	if srcEnded {
		if er, ok := e.src.(interface{ Err() error }); ok && er.Err() != nil {
			e.err = seqstream.ErrIO.Wrap(er.Err())
			return
		}
	}

	var (
		n    = len(block)
		full = n / 3
		rem  = n % 3
		out  = e.out[:0]
	)
	for i := 0; i < full*3; i += 3 {
		t := uint(block[i])<<16 | uint(block[i+1])<<8 | uint(block[i+2])
		out = append(out,
			alphabet[t>>18&63],
			alphabet[t>>12&63],
			alphabet[t>>6&63],
			alphabet[t&63])
	}
	switch {
	case rem != 0 && srcEnded:
		out = appendFinalGroup(out, block[full*3:])
		e.done = true
	case rem != 0:
		e.carry = copy(e.block[:cap(e.block)], block[full*3:])
	case srcEnded:
		e.done = true
	}
	if n == 0 {
		e.done = true
	}
	e.out, e.outPos = out, 0
}

func appendFinalGroup(out, group []byte) []byte {
	t := uint(group[0]) << 16
	if len(group) == 2 {
		t |= uint(group[1]) << 8
	}
	out = append(out, alphabet[t>>18&63], alphabet[t>>12&63])
	if len(group) == 2 {
		return append(out, alphabet[t>>6&63], padding)
	}
	return append(out, padding, padding)
}

// Encode writes the Base64 form of src into dst, and returns the number of characters written.
// dst is opened before and closed after the encoding.
func Encode(dst streams.WriteStream[byte], src ByteSource, opts ...Option) (_ int, rErr error) {
	enc, err := NewEncoder(src, opts...)
	if err != nil {
		return 0, err
	}
	if err := dst.Open(); err != nil {
		return 0, err
	}
	defer errorkit.Finish(&rErr, dst.Close)
	return streams.Copy[byte](dst, enc)
}

// EncodeToString reads the whole Base64 form of src into a string.
func EncodeToString(src ByteSource, opts ...Option) (string, error) {
	enc, err := NewEncoder(src, opts...)
	if err != nil {
		return "", err
	}
	cs, err := streams.ReadAll[byte](enc)
	return string(cs), err
}
