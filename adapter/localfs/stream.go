package localfs

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/port/filesystem"

	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/port/streams"
)

var (
	_ streams.ReadStream[byte]  = &FileReadStream{}
	_ streams.WriteStream[byte] = &FileWriteStream{}
)

// OpenReadStream opens the named file for reading it byte by byte.
func (fs FileSystem) OpenReadStream(ctx context.Context, name string) (*FileReadStream, error) {
	file, err := fs.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, seqstream.ErrIO.Wrap(err)
	}
	fs.debug(ctx, "file read stream opened", logging.Field("name", name))
	return &FileReadStream{
		ctx:    ctx,
		fs:     fs,
		name:   name,
		file:   file,
		reader: bufio.NewReader(file),
	}, nil
}

// FileReadStream reads a file through a buffer.
// Its end is reached when no more bytes are available,
// which is found out by peeking ahead rather than by a failed read.
type FileReadStream struct {
	ctx    context.Context
	fs     FileSystem
	name   string
	file   filesystem.File
	reader *bufio.Reader

	pos    int
	err    error
	closed bool
}

// IsEnd reports true when the file has no more bytes, or when reading it failed.
// In the latter case Err tells the cause.
func (s *FileReadStream) IsEnd() bool {
	if s.closed || s.err != nil {
		return true
	}
	_, err := s.reader.Peek(1)
	if err == nil {
		return false
	}
	if !errors.Is(err, io.EOF) {
		s.err = seqstream.ErrIO.Wrap(err)
	}
	return true
}

func (s *FileReadStream) Read() (byte, error) {
	if s.IsEnd() {
		if s.err != nil {
			return 0, s.err
		}
		return 0, seqstream.ErrEndOfStream
	}
	b, err := s.reader.ReadByte()
	if err != nil {
		s.err = seqstream.ErrIO.Wrap(err)
		return 0, s.err
	}
	s.pos++
	return b, nil
}

func (s *FileReadStream) Err() error { return s.err }

func (s *FileReadStream) Position() int { return s.pos }

func (s *FileReadStream) CanSeek() bool { return false }

func (s *FileReadStream) CanGoBack() bool { return false }

func (s *FileReadStream) Seek(index int) (int, error) { return streams.SeekUnsupported(index) }

func (s *FileReadStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.fs.debug(s.ctx, "file read stream closed",
		logging.Field("name", s.name),
		logging.Field("bytes", s.pos))
	if err := s.file.Close(); err != nil {
		return seqstream.ErrIO.Wrap(err)
	}
	return nil
}

// CreateWriteStream prepares a write stream for the named file.
// The file is created, or truncated, when the stream is opened.
func (fs FileSystem) CreateWriteStream(ctx context.Context, name string) *FileWriteStream {
	return &FileWriteStream{ctx: ctx, fs: fs, name: name}
}

type FileWriteStream struct {
	ctx  context.Context
	fs   FileSystem
	name string

	file   filesystem.File
	writer *bufio.Writer
	pos    int
}

func (s *FileWriteStream) Open() error {
	if s.file != nil {
		return nil
	}
	file, err := s.fs.OpenFile(s.name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return seqstream.ErrIO.Wrap(err)
	}
	s.file = file
	s.writer = bufio.NewWriter(file)
	s.pos = 0
	s.fs.debug(s.ctx, "file write stream opened", logging.Field("name", s.name))
	return nil
}

func (s *FileWriteStream) Write(b byte) (int, error) {
	if s.writer == nil {
		return s.pos, seqstream.ErrIO.F("write stream of %s is not open", s.name)
	}
	if err := s.writer.WriteByte(b); err != nil {
		return s.pos, seqstream.ErrIO.Wrap(err)
	}
	s.pos++
	return s.pos, nil
}

func (s *FileWriteStream) Position() int { return s.pos }

// Close flushes the buffered bytes and closes the file.
func (s *FileWriteStream) Close() (rErr error) {
	if s.file == nil {
		return nil
	}
	file, writer := s.file, s.writer
	s.file, s.writer = nil, nil
	defer errorkit.Finish(&rErr, func() error {
		if err := file.Close(); err != nil {
			return seqstream.ErrIO.Wrap(err)
		}
		return nil
	})
	s.fs.debug(s.ctx, "file write stream closed",
		logging.Field("name", s.name),
		logging.Field("bytes", s.pos))
	if err := writer.Flush(); err != nil {
		return seqstream.ErrIO.Wrap(err)
	}
	return nil
}
