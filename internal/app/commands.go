package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase/random"

	"go.llib.dev/seqstream/adapter/memory"
	"go.llib.dev/seqstream/pkg/base64stream"
	"go.llib.dev/seqstream/pkg/lazyseq"
	"go.llib.dev/seqstream/port/streams"
)

// GenSeed makes the output of the gen command reproducible.
const GenSeed = 42

type EncodeCommand struct {
	Input  string `arg:"0" required:"true" desc:"the file to encode"`
	Output string `arg:"1" required:"true" desc:"the file the Base64 text is written into"`

	app *Application
	ctx context.Context
}

func (cmd EncodeCommand) Summary() string { return "Base64-encode a file into another file" }

func (cmd EncodeCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := logging.ContextWith(cmd.ctx,
		logging.Field("command", "encode"),
		logging.Field("input", cmd.Input),
		logging.Field("output", cmd.Output))

	start := time.Now()
	n, err := cmd.app.EncodeFile(ctx, cmd.Input, cmd.Output)
	if err != nil {
		cmd.app.fail(ctx, w, err)
		return
	}
	cmd.app.Logger.Info(ctx, "file encoded",
		logging.Field("chars", n),
		logging.Field("elapsed_ms", time.Since(start).Milliseconds()))
	fmt.Fprintln(w, "Done.")
}

// EncodeFile encodes the input file into the output file, and returns the number of characters written.
// The output file is only created when the input could be opened.
func (app *Application) EncodeFile(ctx context.Context, input, output string) (_ int, rErr error) {
	src, err := app.FS.OpenReadStream(ctx, input)
	if err != nil {
		return 0, err
	}
	defer errorkit.Finish(&rErr, src.Close)
	return base64stream.Encode(app.FS.CreateWriteStream(ctx, output), src, app.encoderOptions()...)
}

type GenCommand struct {
	Output string `arg:"0" required:"true" desc:"the file the Base64 text is written into"`
	Size   int    `arg:"1" required:"true" desc:"the number of pseudo-random bytes to encode"`

	app *Application
	ctx context.Context
}

func (cmd GenCommand) Summary() string {
	return "encode a reproducible sequence of pseudo-random bytes, each in [0, 126]"
}

func (cmd GenCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := logging.ContextWith(cmd.ctx,
		logging.Field("command", "gen"),
		logging.Field("output", cmd.Output),
		logging.Field("size", cmd.Size))

	if cmd.Size < 0 {
		w.ExitCode(cli.ExitCodeBadRequest)
		fmt.Fprintf(errOut(w), "size must not be negative, got %d\n", cmd.Size)
		return
	}

	start := time.Now()
	n, err := cmd.app.Generate(ctx, cmd.Output, cmd.Size)
	if err != nil {
		cmd.app.fail(ctx, w, err)
		return
	}
	cmd.app.Logger.Info(ctx, "pseudo-random bytes encoded",
		logging.Field("chars", n),
		logging.Field("elapsed_ms", time.Since(start).Milliseconds()))
	fmt.Fprintln(w, "Done.")
}

// Generate encodes size pseudo-random bytes into the output file.
func (app *Application) Generate(ctx context.Context, output string, size int) (int, error) {
	seq, err := PseudoRandomBytes(size)
	if err != nil {
		return 0, err
	}
	return base64stream.Encode(app.FS.CreateWriteStream(ctx, output), memory.NewLazyReadStream(seq), app.encoderOptions()...)
}

// PseudoRandomBytes is a lazy sequence of size bytes, each in [0, 126].
// The same size always yields the same bytes.
//
// Reading it to the end keeps every byte twice in memory,
// once in the memo of the endless recurrence and once in the memo of the bounding subsequence,
// so a gen of N bytes holds about 2N bytes before the encoder sees the last one.
func PseudoRandomBytes(size int) (*lazyseq.Lazy[byte], error) {
	if size == 0 {
		return lazyseq.Empty[byte](), nil
	}
	rnd := random.New(rand.NewSource(GenSeed))
	seq, err := lazyseq.FromRecurrence(func([]byte) byte {
		return byte(rnd.Int() % 127)
	}, nil, 0)
	if err != nil {
		return nil, err
	}
	return seq.Subsequence(0, size-1)
}

type PreviewCommand struct {
	Input  string `arg:"0" desc:"the file to preview the encoding of"`
	Text   string `flag:"text" desc:"preview the encoding of this text instead of a file"`
	Random int    `flag:"random" desc:"preview the encoding of this many random bytes instead of a file"`

	app *Application
	ctx context.Context
}

func (cmd PreviewCommand) Summary() string {
	return "print the head of a Base64 encoding, up to the configured preview limit"
}

func (cmd PreviewCommand) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := logging.ContextWith(cmd.ctx, logging.Field("command", "preview"))

	src, size, closeSrc, err := cmd.source(ctx)
	if err != nil {
		cmd.app.fail(ctx, w, err)
		return
	}
	if src == nil {
		w.ExitCode(cli.ExitCodeBadRequest)
		fmt.Fprintln(errOut(w), "either an input file, the -text or the -random flag is required")
		return
	}
	defer closeSrc()

	start := time.Now()
	p, err := cmd.app.Preview(src)
	if err != nil {
		cmd.app.fail(ctx, w, err)
		return
	}
	fmt.Fprintln(w, p.Text)
	if p.Truncated {
		fmt.Fprintln(w, "… (preview truncated; use the encode command for the full output)")
	}
	cmd.app.Logger.Info(ctx, "preview",
		logging.Field("elapsed_ms", time.Since(start).Milliseconds()),
		logging.Field("input_bytes", size),
		logging.Field("approx_output_chars", (size+2)/3*4),
		logging.Field("truncated", p.Truncated))
}

func (cmd PreviewCommand) source(ctx context.Context) (base64stream.ByteSource, int64, func(), error) {
	noop := func() {}
	switch {
	case cmd.Text != "":
		return memory.NewTextStream(cmd.Text), int64(len(cmd.Text)), noop, nil
	case 0 < cmd.Random:
		return memory.NewRandomByteStream(cmd.Random, 0), int64(cmd.Random), noop, nil
	case cmd.Input != "":
		info, err := cmd.app.FS.Stat(cmd.Input)
		if err != nil {
			return nil, 0, noop, err
		}
		src, err := cmd.app.FS.OpenReadStream(ctx, cmd.Input)
		if err != nil {
			return nil, 0, noop, err
		}
		return src, info.Size(), func() {
			if err := src.Close(); err != nil {
				cmd.app.Logger.Warn(ctx, "closing the previewed file failed", logging.ErrField(err))
			}
		}, nil
	default:
		return nil, 0, noop, nil
	}
}

type Preview struct {
	Text      string
	Truncated bool
}

// Preview reads at most Config.PreviewLimit characters of the encoding of src.
func (app *Application) Preview(src base64stream.ByteSource) (Preview, error) {
	enc, err := base64stream.NewEncoder(src, app.encoderOptions()...)
	if err != nil {
		return Preview{}, err
	}
	cs, ended, err := streams.ReadN[byte](enc, app.Config.PreviewLimit)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Text: string(cs), Truncated: !ended}, nil
}

func (app *Application) encoderOptions() []base64stream.Option {
	return []base64stream.Option{base64stream.BufferSize(app.Config.BufferSize)}
}
