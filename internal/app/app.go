// Package app is the command line application of seqstream.
//
//	seqstream <inputFile> <outputFile>          Base64-encode a file into another file
//	seqstream encode <inputFile> <outputFile>   same as above
//	seqstream gen <outputFile> <sizeBytes>      encode deterministic pseudo-random bytes
//	seqstream preview [inputFile]               print the head of an encoding
package app

import (
	"context"
	"fmt"
	"io"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/seqstream/adapter/localfs"
)

const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitFailure = 2
)

// Run executes the command line arguments, and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %s\n", err.Error())
		return ExitFailure
	}
	return New(c, stderr).Run(ctx, args, stdout, stderr)
}

type Application struct {
	Config Config
	Logger *logging.Logger
	FS     localfs.FileSystem
}

func New(c Config, logOut io.Writer) *Application {
	logger := &logging.Logger{Out: logOut, Level: c.LogLevel}
	return &Application{
		Config: c,
		Logger: logger,
		FS:     localfs.FileSystem{RootPath: c.Root, Logger: logger},
	}
}

func (app *Application) Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var m cli.Mux
	m.Handle("encode", EncodeCommand{app: app, ctx: ctx})
	m.Handle("gen", GenCommand{app: app, ctx: ctx})
	m.Handle("preview", PreviewCommand{app: app, ctx: ctx})

	w := &response{out: stdout, err: stderr}
	m.ServeCLI(w, &cli.Request{Args: withDefaultCommand(args)})
	return w.exitCode()
}

var commands = map[string]struct{}{
	"encode":  {},
	"gen":     {},
	"preview": {},
	"-h":      {},
	"-help":   {},
	"--help":  {},
}

// withDefaultCommand makes `<inputFile> <outputFile>` a shorthand of the encode command.
// The returned slice is a copy, as the cli package consumes the arguments in place.
func withDefaultCommand(args []string) []string {
	if len(args) == 0 {
		return []string{}
	}
	if _, ok := commands[args[0]]; ok {
		return append([]string{}, args...)
	}
	return append([]string{"encode"}, args...)
}

// response maps the exit codes of the cli package to the ones of the application.
type response struct {
	out  io.Writer
	err  io.Writer
	code int
}

func (r *response) ExitCode(n int) { r.code = n }

func (r *response) Write(p []byte) (int, error) { return r.out.Write(p) }

func (r *response) Stderr() io.Writer { return r.err }

func (r *response) exitCode() int {
	switch r.code {
	case cli.ExitCodeOK:
		return ExitOK
	case cli.ExitCodeBadRequest:
		return ExitUsage
	default:
		return ExitFailure
	}
}

// fail reports err on stderr and the log, and marks the run as failed.
func (app *Application) fail(ctx context.Context, w cli.Response, err error) {
	app.Logger.Error(ctx, "command failed", logging.ErrField(err))
	w.ExitCode(cli.ExitCodeError)
	fmt.Fprintf(errOut(w), "error: %s\n", err.Error())
}

func errOut(w cli.Response) io.Writer {
	if ew, ok := w.(cli.ErrorWriter); ok {
		return ew.Stderr()
	}
	return w
}
