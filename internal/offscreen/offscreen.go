// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen implements the in-memory presentation backend. It has no
// window system at all: presenting copies the working buffer into a front
// buffer that can be read back with Fetch. It backs headless use and is the
// reference implementation the softframe tests run against on every GOOS.
package offscreen

import (
	"golang.org/x/xerrors"

	"github.com/softframe/softframe/internal/backend"
)

type contextImpl struct{}

// NewContext returns the offscreen backend context. There is no connection
// to negotiate, so construction cannot fail.
func NewContext() backend.Context {
	return contextImpl{}
}

func (contextImpl) NewSurface(win backend.Window) (backend.Surface, error) {
	return &surfaceImpl{id: win.ID}, nil
}

func (contextImpl) Release() {}

type surfaceImpl struct {
	id            uint32
	width, height int

	// back is the buffer handed to callers; front holds the last presented
	// frame. Presenting copies back into front, so a caller mutating the
	// working buffer never changes what has already been "displayed".
	back  []uint32
	front []uint32

	// failResize and failFetch, when set, make the next Resize or Fetch fail
	// at the point where a real backend would call into its window system.
	// Tests use them to verify the all-or-nothing and error-mapping
	// contracts.
	failResize error
	failFetch  error
}

// FailNextResize arranges for the next Resize on s to fail with cause. s
// must be a surface from this package's context.
func FailNextResize(s backend.Surface, cause error) {
	s.(*surfaceImpl).failResize = cause
}

// FailNextFetch arranges for the next Fetch on s to fail with cause.
func FailNextFetch(s backend.Surface, cause error) {
	s.(*surfaceImpl).failFetch = cause
}

func (s *surfaceImpl) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	if err := s.failResize; err != nil {
		s.failResize = nil
		return xerrors.Errorf("offscreen: allocating %dx%d buffer: %w", width, height, err)
	}
	s.back = make([]uint32, width*height)
	s.front = make([]uint32, width*height)
	s.width, s.height = width, height
	return nil
}

func (s *surfaceImpl) Pixels() []uint32 { return s.back }

func (s *surfaceImpl) Present() error {
	copy(s.front, s.back)
	return nil
}

func (s *surfaceImpl) Fetch() ([]uint32, error) {
	if err := s.failFetch; err != nil {
		s.failFetch = nil
		return nil, xerrors.Errorf("offscreen: reading frame back: %w", err)
	}
	out := make([]uint32, len(s.front))
	copy(out, s.front)
	return out, nil
}

func (s *surfaceImpl) Release() {
	s.back, s.front = nil, nil
	s.width, s.height = 0, 0
}
