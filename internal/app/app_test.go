package app_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/seqstream/adapter/memory"
	"go.llib.dev/seqstream/internal/app"
	"go.llib.dev/seqstream/port/streams"
)

func TestRun(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Before(func(t *testcase.T) {
		testcase.UnsetEnv(t, "SEQSTREAM_ROOT")
		testcase.UnsetEnv(t, "SEQSTREAM_BUFFER_SIZE")
		testcase.UnsetEnv(t, "SEQSTREAM_PREVIEW_LIMIT")
		testcase.SetEnv(t, "SEQSTREAM_LOG_LEVEL", "error")
	})

	var (
		dir    = testcase.Let(s, func(t *testcase.T) string { return t.TempDir() })
		args   = testcase.LetValue[[]string](s, nil)
		stdout = testcase.Let(s, func(t *testcase.T) *bytes.Buffer { return &bytes.Buffer{} })
		stderr = testcase.Let(s, func(t *testcase.T) *bytes.Buffer { return &bytes.Buffer{} })
	)
	act := func(t *testcase.T) int {
		return app.Run(context.Background(), args.Get(t), stdout.Get(t), stderr.Get(t))
	}

	path := func(t *testcase.T, name string) string {
		return filepath.Join(dir.Get(t), name)
	}
	readFile := func(t *testcase.T, name string) string {
		bs, err := os.ReadFile(path(t, name))
		t.Must.NoError(err)
		return string(bs)
	}

	s.When("no arguments are given", func(s *testcase.Spec) {
		args.LetValue(s, []string{})

		s.Then("it is a usage error", func(t *testcase.T) {
			t.Must.Equal(app.ExitUsage, act(t))
			t.Must.Contain(stderr.Get(t).String(), "Usage")
		})
	})

	s.When("an input and an output file are given", func(s *testcase.Spec) {
		content := testcase.Let(s, func(t *testcase.T) []byte {
			return []byte(t.Random.String())
		})
		args.Let(s, func(t *testcase.T) []string {
			t.Must.NoError(os.WriteFile(path(t, "input"), content.Get(t), 0600))
			return []string{path(t, "input"), path(t, "output")}
		})

		s.Then("the input is encoded into the output", func(t *testcase.T) {
			t.Must.Equal(app.ExitOK, act(t))
			t.Must.Equal(base64.StdEncoding.EncodeToString(content.Get(t)), readFile(t, "output"))
			t.Must.Contain(stdout.Get(t).String(), "Done.")
		})

		s.And("the encode command is named explicitly", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return append([]string{"encode"}, args.Super(t)...)
			})

			s.Then("the input is encoded into the output", func(t *testcase.T) {
				t.Must.Equal(app.ExitOK, act(t))
				t.Must.Equal(base64.StdEncoding.EncodeToString(content.Get(t)), readFile(t, "output"))
			})
		})

		s.And("the buffer size is configured", func(s *testcase.Spec) {
			s.Before(func(t *testcase.T) {
				testcase.SetEnv(t, "SEQSTREAM_BUFFER_SIZE", strconv.Itoa(t.Random.IntBetween(1, 64)))
			})

			s.Then("the output is the same", func(t *testcase.T) {
				t.Must.Equal(app.ExitOK, act(t))
				t.Must.Equal(base64.StdEncoding.EncodeToString(content.Get(t)), readFile(t, "output"))
			})
		})

		s.And("the buffer size is configured to zero", func(s *testcase.Spec) {
			s.Before(func(t *testcase.T) {
				testcase.SetEnv(t, "SEQSTREAM_BUFFER_SIZE", "0")
			})

			s.Then("it fails", func(t *testcase.T) {
				t.Must.Equal(app.ExitFailure, act(t))
				t.Must.NotEmpty(stderr.Get(t).String())
			})
		})

		s.And("the log level is not a known one", func(s *testcase.Spec) {
			s.Before(func(t *testcase.T) {
				testcase.SetEnv(t, "SEQSTREAM_LOG_LEVEL", "verbose")
			})

			s.Then("it fails", func(t *testcase.T) {
				t.Must.Equal(app.ExitFailure, act(t))
			})
		})
	})

	s.When("the input file is missing", func(s *testcase.Spec) {
		args.Let(s, func(t *testcase.T) []string {
			return []string{path(t, "missing"), path(t, "output")}
		})

		s.Then("it fails without creating the output", func(t *testcase.T) {
			t.Must.Equal(app.ExitFailure, act(t))
			t.Must.Contain(stderr.Get(t).String(), "error")
			_, err := os.Stat(path(t, "output"))
			t.Must.True(os.IsNotExist(err))
		})
	})

	s.When("only the input file is given", func(s *testcase.Spec) {
		args.Let(s, func(t *testcase.T) []string {
			return []string{path(t, "input")}
		})

		s.Then("it is a usage error", func(t *testcase.T) {
			t.Must.Equal(app.ExitUsage, act(t))
		})
	})

	s.Describe("gen", func(s *testcase.Spec) {
		size := testcase.Let(s, func(t *testcase.T) int { return t.Random.IntBetween(1, 4096) })
		args.Let(s, func(t *testcase.T) []string {
			return []string{"gen", path(t, "output"), strconv.Itoa(size.Get(t))}
		})

		s.Then("it encodes size bytes, each below 127", func(t *testcase.T) {
			t.Must.Equal(app.ExitOK, act(t))
			bs, err := base64.StdEncoding.DecodeString(readFile(t, "output"))
			t.Must.NoError(err)
			t.Must.Equal(size.Get(t), len(bs))
			for _, b := range bs {
				t.Must.True(b < 127)
			}
		})

		s.Then("the output is reproducible", func(t *testcase.T) {
			t.Must.Equal(app.ExitOK, act(t))
			first := readFile(t, "output")
			t.Must.Equal(app.ExitOK, act(t))
			t.Must.Equal(first, readFile(t, "output"))
		})

		s.And("the size is zero", func(s *testcase.Spec) {
			size.LetValue(s, 0)

			s.Then("the output is empty", func(t *testcase.T) {
				t.Must.Equal(app.ExitOK, act(t))
				t.Must.Equal("", readFile(t, "output"))
			})
		})

		s.And("the size is not a number", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				return []string{"gen", path(t, "output"), "many"}
			})

			s.Then("it is a usage error", func(t *testcase.T) {
				t.Must.Equal(app.ExitUsage, act(t))
			})
		})
	})

	s.Describe("preview", func(s *testcase.Spec) {
		s.And("a text is given", func(s *testcase.Spec) {
			args.LetValue(s, []string{"preview", "-text", "Many hands make light work."})

			s.Then("its encoding is printed", func(t *testcase.T) {
				t.Must.Equal(app.ExitOK, act(t))
				t.Must.Contain(stdout.Get(t).String(), "TWFueSBoYW5kcyBtYWtlIGxpZ2h0IHdvcmsu")
				t.Must.NotContain(stdout.Get(t).String(), "truncated")
			})

			s.And("the preview limit is lower than the encoding", func(s *testcase.Spec) {
				s.Before(func(t *testcase.T) {
					testcase.SetEnv(t, "SEQSTREAM_PREVIEW_LIMIT", "4")
				})

				s.Then("the head is printed and marked as truncated", func(t *testcase.T) {
					t.Must.Equal(app.ExitOK, act(t))
					t.Must.Contain(stdout.Get(t).String(), "TWFu\n")
					t.Must.NotContain(stdout.Get(t).String(), "TWFueS")
					t.Must.Contain(stdout.Get(t).String(), "truncated")
				})
			})
		})

		s.And("a file is given", func(s *testcase.Spec) {
			args.Let(s, func(t *testcase.T) []string {
				t.Must.NoError(os.WriteFile(path(t, "input"), []byte("Man"), 0600))
				return []string{"preview", path(t, "input")}
			})

			s.Then("its encoding is printed", func(t *testcase.T) {
				t.Must.Equal(app.ExitOK, act(t))
				t.Must.Equal("TWFu\n", stdout.Get(t).String())
			})
		})

		s.And("random bytes are asked for", func(s *testcase.Spec) {
			args.LetValue(s, []string{"preview", "-random", "300"})

			s.Then("the encoding of that many bytes is printed", func(t *testcase.T) {
				t.Must.Equal(app.ExitOK, act(t))
				t.Must.Equal(base64.StdEncoding.EncodedLen(300)+1, stdout.Get(t).Len())
			})
		})

		s.And("nothing is given", func(s *testcase.Spec) {
			args.LetValue(s, []string{"preview"})

			s.Then("it is a usage error", func(t *testcase.T) {
				t.Must.Equal(app.ExitUsage, act(t))
			})
		})
	})
}

func TestApplication_logging(t *testing.T) {
	dir := t.TempDir()
	assert.Must(t).NoError(os.WriteFile(filepath.Join(dir, "input"), []byte("Man"), 0600))

	var logs bytes.Buffer
	application := app.New(app.Config{
		BufferSize:   3,
		PreviewLimit: 10,
		LogLevel:     logging.LevelDebug,
		Root:         dir,
	}, &logs)

	var stdout, stderr bytes.Buffer
	code := application.Run(context.Background(), []string{"input", "output"}, &stdout, &stderr)
	assert.Must(t).Equal(app.ExitOK, code)

	out := logs.String()
	assert.Must(t).Contain(out, "file encoded")
	assert.Must(t).Contain(out, `"command":"encode"`)
	assert.Must(t).Contain(out, "file read stream opened")

	bs, err := os.ReadFile(filepath.Join(dir, "output"))
	assert.Must(t).NoError(err)
	assert.Must(t).Equal("TWFu", string(bs))
}

func TestApplication_jail(t *testing.T) {
	dir := t.TempDir()
	application := app.New(app.Config{BufferSize: 3, LogLevel: logging.LevelError, Root: dir}, &bytes.Buffer{})

	var stdout, stderr bytes.Buffer
	code := application.Run(context.Background(), []string{"gen", filepath.Join("..", "escaped"), "10"}, &stdout, &stderr)
	assert.Must(t).Equal(app.ExitFailure, code)
}

func TestPseudoRandomBytes(t *testing.T) {
	t.Parallel()

	seq, err := app.PseudoRandomBytes(100)
	assert.Must(t).NoError(err)
	n, ok := seq.Len().Value()
	assert.Must(t).True(ok)
	assert.Must(t).Equal(100, n)

	a, err := streams.ReadAll[byte](memory.NewLazyReadStream(seq))
	assert.Must(t).NoError(err)
	assert.Must(t).Equal(100, len(a))
	assert.Must(t).Equal(100, seq.Materialized(), "every read byte stays memoized")

	again, err := app.PseudoRandomBytes(100)
	assert.Must(t).NoError(err)
	b, err := streams.ReadAll[byte](memory.NewLazyReadStream(again))
	assert.Must(t).NoError(err)
	assert.Must(t).Equal(a, b)

	head, err := app.PseudoRandomBytes(10)
	assert.Must(t).NoError(err)
	c, err := streams.ReadAll[byte](memory.NewLazyReadStream(head))
	assert.Must(t).NoError(err)
	assert.Must(t).Equal(a[:10], c)
}
