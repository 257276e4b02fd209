// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/softframe/softframe/internal/backend"
)

func newSurface(t *testing.T) *surfaceImpl {
	t.Helper()
	s, err := NewContext().NewSurface(backend.Window{ID: 1})
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s.(*surfaceImpl)
}

func TestPresentCopiesToFront(t *testing.T) {
	s := newSurface(t)
	if err := s.Resize(2, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	px := s.Pixels()
	copy(px, []uint32{1, 2, 3, 4})
	if err := s.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	// Mutating the working buffer after present must not change the frame.
	px[0] = 99

	got, err := s.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff([]uint32{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("front buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeFailureRollsBack(t *testing.T) {
	s := newSurface(t)
	if err := s.Resize(3, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	old := s.Pixels()
	old[0] = 0x00ff0000

	cause := errors.New("no memory")
	s.failResize = cause
	if err := s.Resize(10, 10); !errors.Is(err, cause) {
		t.Fatalf("Resize error = %v, want wrapped %v", err, cause)
	}

	if s.width != 3 || s.height != 2 {
		t.Errorf("size after failed resize = %dx%d, want 3x2", s.width, s.height)
	}
	px := s.Pixels()
	if len(px) != 6 || &px[0] != &old[0] {
		t.Error("failed resize must keep the previous buffer")
	}
}

func TestResizeSameSizeKeepsBuffer(t *testing.T) {
	s := newSurface(t)
	if err := s.Resize(4, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	old := s.Pixels()
	if err := s.Resize(4, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got := s.Pixels(); &got[0] != &old[0] {
		t.Error("same-size resize reallocated the buffer")
	}
}
