// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import (
	"errors"

	"github.com/softframe/softframe/internal/backend"
)

// Surface owns one window's pixel buffer and the native resources used to
// present it. A Surface moves through three states: unsized (fresh from
// NewSurface), sized (after the first successful Resize, looping there on
// later resizes), and released. Buffer, Present and Fetch are only legal
// while sized.
//
// A Surface must be released before its owning Context, and must not be used
// from more than one goroutine at a time.
type Surface struct {
	ctx *Context
	b   backend.Surface

	width, height int
	loaned        bool
	released      bool
}

// Size returns the current buffer dimensions, 0×0 while unsized.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Resize discards the current pixel buffer and size-bound native resources
// and allocates new ones for width×height pixels. Calling it with the
// current dimensions is a guaranteed no-op: the buffer and its contents
// survive untouched.
//
// Resize is all-or-nothing. If the backend fails to negotiate the new size
// with the window system, every partially acquired native resource is
// released, the error wraps ErrResize, and the Surface keeps its previous
// size and buffer. A zero or negative dimension fails with
// ErrInvalidDimensions, as do sizes beyond the platform's protocol limits.
//
// Contents of the buffer after a genuine resize are unspecified; do not
// expect zeroed memory.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return failf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	if s.released {
		return fail(ErrNotSized, "surface already released")
	}
	if s.loaned {
		return fail(ErrBufferHeld, "cannot resize under an outstanding buffer")
	}
	if width == s.width && height == s.height {
		return nil
	}
	if err := s.b.Resize(width, height); err != nil {
		if errors.Is(err, backend.ErrSizeOutOfRange) {
			return failf(ErrInvalidDimensions, "%dx%d: %w", width, height, err)
		}
		return failf(ErrResize, "%dx%d: %w", width, height, err)
	}
	logger().V(1).Info("surface resized",
		"platform", s.ctx.platform.String(),
		"width", width, "height", height,
		"prevWidth", s.width, "prevHeight", s.height)
	s.width, s.height = width, height
	return nil
}

// Buffer returns exclusive write access to the current pixel buffer as a
// guard that either presents (Buffer.Present) or discards (Buffer.Release)
// the write session. At most one guard may be live per Surface; a second
// call before the first guard is consumed fails with ErrBufferHeld. Before
// the first successful Resize it fails with ErrNotSized.
func (s *Surface) Buffer() (*Buffer, error) {
	if s.width == 0 {
		return nil, fail(ErrNotSized, "call Resize before Buffer")
	}
	if s.loaned {
		return nil, fail(ErrBufferHeld, "previous buffer not yet presented or released")
	}
	s.loaned = true
	return &Buffer{s: s, px: s.b.Pixels()}, nil
}

// Present transfers the entire current buffer to the window system, whatever
// its contents. Most callers present through the Buffer guard instead;
// Surface.Present exists to re-push the last frame (after an expose event,
// or to retry a failed present) without taking a new guard.
//
// A successful return means the window system accepted the frame, not that
// it has reached the screen. On failure the error wraps ErrPresent and the
// Surface stays valid and sized. While a Buffer guard is live the frame
// belongs to that guard, and Present fails with ErrBufferHeld.
func (s *Surface) Present() error {
	if s.width == 0 {
		return fail(ErrNotSized, "call Resize before Present")
	}
	if s.loaned {
		return fail(ErrBufferHeld, "cannot present under an outstanding buffer")
	}
	return s.present()
}

func (s *Surface) present() error {
	if err := s.b.Present(); err != nil {
		return failf(ErrPresent, "%v: %w", s.ctx.platform, err)
	}
	logger().V(2).Info("frame presented",
		"platform", s.ctx.platform.String(),
		"width", s.width, "height", s.height)
	return nil
}

// Fetch reads the most recently presented pixels back from the window
// system, in the same 0x00RRGGBB packing the buffer uses. Only some
// backends can do this (offscreen, win32, x11, web); the others fail with
// ErrFetchUnsupported. A backend readback failure wraps ErrFetch, and a
// live Buffer guard makes Fetch fail with ErrBufferHeld.
func (s *Surface) Fetch() ([]uint32, error) {
	if s.width == 0 {
		return nil, fail(ErrNotSized, "call Resize before Fetch")
	}
	if s.loaned {
		return nil, fail(ErrBufferHeld, "cannot fetch under an outstanding buffer")
	}
	px, err := s.b.Fetch()
	if err != nil {
		if errors.Is(err, backend.ErrFetchUnsupported) {
			return nil, failf(ErrFetchUnsupported, "%v", s.ctx.platform)
		}
		return nil, failf(ErrFetch, "%v: %w", s.ctx.platform, err)
	}
	return px, nil
}

// Release frees the Surface's window-scoped native resources (shared memory
// segments, device contexts, and so on). The foreign window itself is left
// untouched. Release is idempotent; any outstanding Buffer guard becomes
// inert.
func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.loaned = false
	s.width, s.height = 0, 0
	s.b.Release()
}
