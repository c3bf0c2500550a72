package gridview

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling. All of them mark
// declaration or call-ordering mistakes, never data faults.
var (
	ErrInvalidColumn          = errors.New("invalid column declaration")
	ErrInvalidCellResult      = errors.New("invalid cell result")
	ErrDuplicateRender        = errors.New("grid already rendered")
	ErrGridNotRendered        = errors.New("grid not yet rendered")
	ErrDetachedFilterNotFound = errors.New("detached filter not found")
)

// Render runs the full table-mode pipeline: it builds the column registry
// from decls, decides the layout, and emits header, filter row, body, and
// footer into one artifact.
//
// A State renders at most once. A second call fails with
// [ErrDuplicateRender], unless the first render stashed detached filters,
// in which case the cached artifact is returned unchanged. A failed render
// leaves the State unrendered and returns no partial output.
func Render[T any](st *State[T], cfg Config, decls ...Column[T]) (string, error) {
	switch st.guard.state {
	case guardRendered:
		return "", fmt.Errorf("%w: grid %q", ErrDuplicateRender, st.Name)
	case guardBuffered:
		return st.guard.out, nil
	}
	cols, err := NewColumns(decls...)
	if err != nil {
		return "", err
	}
	r := newRenderer(st, cols, cfg.withDefaults())
	out, err := r.render()
	if err != nil {
		return "", err
	}
	if r.buf.Stubborn() {
		st.guard.markBuffered(r.buf, out)
	} else {
		st.guard.markRendered()
	}
	return out, nil
}

// RenderDetachedFilter returns the filter markup a previous [Render] call
// stashed under key. It must be called after Render on the same State;
// calling it earlier fails with [ErrGridNotRendered], and an unknown key
// fails with [ErrDetachedFilterNotFound].
func RenderDetachedFilter[T any](st *State[T], key string) (string, error) {
	switch st.guard.state {
	case guardUnrendered:
		return "", fmt.Errorf("%w: grid %q", ErrGridNotRendered, st.Name)
	case guardRendered:
		return "", fmt.Errorf("%w: %q (grid %q rendered without detached filters)", ErrDetachedFilterNotFound, key, st.Name)
	}
	return st.guard.buf.Fragment(key)
}
