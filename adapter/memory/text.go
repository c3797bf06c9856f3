package memory

import (
	"math/rand"
	"strings"
	"unicode"

	"go.llib.dev/testcase/random"

	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/pkg/arrayseq"
	"go.llib.dev/seqstream/port/streams"
)

var (
	_ streams.ReadStream[int]  = &TokenReadStream[int]{}
	_ streams.ReadStream[byte] = &RandomByteStream{}
)

// NewTextStream reads the UTF-8 bytes of a text.
func NewTextStream(text string) *SequenceReadStream[byte] {
	return NewSequenceReadStream(arrayseq.FromSlice([]byte(text)))
}

func NewTokenReadStream[T any](text string, parse func(token string) (T, error)) *TokenReadStream[T] {
	return &TokenReadStream[T]{Text: text, Parse: parse}
}

// TokenReadStream reads the whitespace separated tokens of a text, parsed one by one.
type TokenReadStream[T any] struct {
	Text  string
	Parse func(token string) (T, error)

	offset int
	count  int
}

func (s *TokenReadStream[T]) skipSpaces() {
	rest := s.Text[s.offset:]
	s.offset += len(rest) - len(strings.TrimLeftFunc(rest, unicode.IsSpace))
}

func (s *TokenReadStream[T]) IsEnd() bool {
	s.skipSpaces()
	return len(s.Text) <= s.offset
}

func (s *TokenReadStream[T]) Read() (T, error) {
	if s.IsEnd() {
		return *new(T), seqstream.ErrEndOfStream
	}
	rest := s.Text[s.offset:]
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	token := rest[:end]
	s.offset += end
	v, err := s.Parse(token)
	if err != nil {
		return *new(T), err
	}
	s.count++
	return v, nil
}

func (s *TokenReadStream[T]) Position() int { return s.count }

func (s *TokenReadStream[T]) CanSeek() bool { return false }

func (s *TokenReadStream[T]) CanGoBack() bool { return false }

func (s *TokenReadStream[T]) Seek(index int) (int, error) { return streams.SeekUnsupported(index) }

// NewRandomByteStream makes a stream of total pseudo-random bytes.
// A zero seed picks a random one.
func NewRandomByteStream(total int, seed int64) *RandomByteStream {
	var src rand.Source = random.CryptoSeed{}
	if seed != 0 {
		src = rand.NewSource(seed)
	}
	return &RandomByteStream{Total: total, rnd: random.New(src)}
}

// RandomByteStream produces a finite amount of pseudo-random bytes without holding them in memory.
type RandomByteStream struct {
	Total int

	rnd *random.Random
	pos int
}

func (s *RandomByteStream) IsEnd() bool { return s.Total <= s.pos }

func (s *RandomByteStream) Read() (byte, error) {
	if s.IsEnd() {
		return 0, seqstream.ErrEndOfStream
	}
	s.pos++
	return byte(s.rnd.IntBetween(0, 255)), nil
}

func (s *RandomByteStream) Position() int { return s.pos }

func (s *RandomByteStream) CanSeek() bool { return false }

func (s *RandomByteStream) CanGoBack() bool { return false }

func (s *RandomByteStream) Seek(index int) (int, error) { return streams.SeekUnsupported(index) }
