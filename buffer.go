package gridview

import (
	"fmt"
	"strings"
)

// Buffer accumulates generated markup. It starts in plain mode; the first
// detached fragment promotes it to stubborn mode, in which it also keeps
// named fragments addressable by detach key after the render completes.
type Buffer struct {
	text     strings.Builder
	detached map[string]string
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) { b.text.WriteString(s) }

// Writef appends a formatted fragment to the buffer.
func (b *Buffer) Writef(format string, args ...any) {
	fmt.Fprintf(&b.text, format, args...)
}

// Detach stores markup under key instead of the main text, promoting the
// buffer to stubborn mode.
func (b *Buffer) Detach(key, markup string) {
	if b.detached == nil {
		b.detached = make(map[string]string)
	}
	b.detached[key] = markup
}

// Stubborn reports whether any detached fragment has been stored.
func (b *Buffer) Stubborn() bool { return len(b.detached) > 0 }

// Fragment returns the detached markup stored under key.
func (b *Buffer) Fragment(key string) (string, error) {
	markup, ok := b.detached[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrDetachedFilterNotFound, key)
	}
	return markup, nil
}

// String returns the accumulated main text.
func (b *Buffer) String() string { return b.text.String() }
