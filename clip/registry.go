// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry maps format keys to decoders. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	decoders   map[string]Decoder
	extensions map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		decoders:   make(map[string]Decoder),
		extensions: make(map[string]string),
	}
}

// Register adds d under format and associates the given file extensions
// (without the dot) with it. Registering a format twice replaces it.
func (r *Registry) Register(format string, d Decoder, extensions ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[format] = d
	for _, ext := range extensions {
		r.extensions[strings.ToLower(ext)] = format
	}
}

// Get returns the decoder for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decoders[format]
	return d, ok
}

// Formats lists the registered format keys in order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// FormatOf returns the format key registered for the extension of path.
func (r *Registry) FormatOf(path string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	r.mu.RLock()
	defer r.mu.RUnlock()

	format, ok := r.extensions[ext]
	return format, ok
}

// Decode reads a whole stream of the given format into a Clip.
func (r *Registry) Decode(format string, in io.Reader) (*Clip, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := d.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	defer src.Close()

	return Read(src)
}

// Open decodes the file at path, picking the decoder from its extension.
func (r *Registry) Open(path string) (*Clip, error) {
	format, ok := r.FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening clip: %w", err)
	}
	defer f.Close()

	c, err := r.Decode(format, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
