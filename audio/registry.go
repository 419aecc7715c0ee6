// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Registry for decoders by file extension (e.g., "au", "mp3", "ogg").
type Registry struct {
	byExt   map[string][]Decoder
	ordered []Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string][]Decoder),
		mtx:   &sync.Mutex{},
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Register runs d.Init and, when it succeeds, files d under each of its extensions.
func (r *Registry) Register(d Decoder) error {
	if err := d.Init(); err != nil {
		return fmt.Errorf("init %q: %w", d.Info().Description, err)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.ordered = append(r.ordered, d)
	for _, ext := range d.Info().Extensions {
		key := normalizeExt(ext)
		r.byExt[key] = append(r.byExt[key], d)
	}
	return nil
}

// Get returns the first decoder registered for ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	decs := r.byExt[normalizeExt(ext)]
	if len(decs) == 0 {
		return nil, false
	}
	return decs[0], true
}

// Decoders lists every registered decoder in registration order.
func (r *Registry) Decoders() []Decoder {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]Decoder, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// candidates lists decoders claiming ext first, then every other decoder.
func (r *Registry) candidates(ext string) []Decoder {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	matched := r.byExt[normalizeExt(ext)]
	out := make([]Decoder, 0, len(r.ordered))
	out = append(out, matched...)
	for _, d := range r.ordered {
		if !d.Info().Handles(ext) {
			out = append(out, d)
		}
	}
	return out
}

// Open tries decoders on s until one accepts the stream: those claiming ext first,
// then the rest. The stream is moved back to where it started between attempts; a
// stream that cannot seek only gets the first attempt.
func (r *Registry) Open(s *Session, ext string) error {
	start, err := Tell(s.Stream())
	seekable := err == nil

	var lastErr error
	for i, d := range r.candidates(ext) {
		if i > 0 {
			if !seekable {
				break
			}
			if _, err := s.Stream().Seek(start, io.SeekStart); err != nil {
				return fmt.Errorf("%w: %w", ErrIO, err)
			}
		}

		err := s.Open(d, ext)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrAlreadyOpen) || errors.Is(err, ErrEmptyBuffer) {
			return err
		}
		lastErr = err
	}

	if lastErr == nil {
		return ErrNoDecoder
	}
	return fmt.Errorf("%w: %w", ErrNoDecoder, lastErr)
}

// Quit calls Quit on every registered decoder and empties the registry.
func (r *Registry) Quit() {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, d := range r.ordered {
		d.Quit()
	}
	r.ordered = nil
	r.byExt = make(map[string][]Decoder)
}
