// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/softframe/softframe"
)

// newTestSurface builds an offscreen context and surface, releasing both
// when the test ends.
func newTestSurface(t *testing.T) *softframe.Surface {
	t.Helper()
	ctx, err := softframe.NewContext(softframe.OffscreenDisplayHandle())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	t.Cleanup(ctx.Release)
	surf, err := ctx.NewSurface(softframe.OffscreenWindowHandle(1))
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	t.Cleanup(surf.Release)
	return surf
}

func TestEndToEnd(t *testing.T) {
	surf := newTestSurface(t)

	if err := surf.Resize(100, 50); err != nil {
		t.Fatalf("Resize(100, 50): %v", err)
	}
	// Same size again: must be a no-op.
	if err := surf.Resize(100, 50); err != nil {
		t.Fatalf("Resize(100, 50) again: %v", err)
	}
	if err := surf.Resize(200, 100); err != nil {
		t.Fatalf("Resize(200, 100): %v", err)
	}
	if w, h := surf.Size(); w != 200 || h != 100 {
		t.Fatalf("Size() = %dx%d, want 200x100", w, h)
	}

	buf, err := surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	px := buf.Pixels()
	if len(px) != 20000 {
		t.Fatalf("len(Pixels()) = %d, want 20000", len(px))
	}
	red := softframe.RGB(0xff, 0x00, 0x00)
	for i := range px {
		px[i] = red
	}
	if err := buf.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	got, err := surf.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := make([]uint32, 20000)
	for i := range want {
		want[i] = 0x00ff0000
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("presented frame mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripPattern(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(7, 3); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	buf, err := surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	px := buf.Pixels()
	want := make([]uint32, len(px))
	for i := range px {
		p := softframe.RGB(uint8(i), uint8(2*i), uint8(255-i))
		px[i] = p
		want[i] = p
	}
	if err := buf.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	got, err := surf.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pattern not preserved bit-exactly (-want +got):\n%s", diff)
	}
}

func TestPlatformMismatch(t *testing.T) {
	ctx, err := softframe.NewContext(softframe.OffscreenDisplayHandle())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	defer ctx.Release()

	_, err = ctx.NewSurface(softframe.X11WindowHandle(0x1234))
	if !errors.Is(err, softframe.ErrPlatformMismatch) {
		t.Fatalf("NewSurface error = %v, want ErrPlatformMismatch", err)
	}
}

func TestUnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("win32 backend is compiled in on windows")
	}
	_, err := softframe.NewContext(softframe.Win32DisplayHandle())
	if !errors.Is(err, softframe.ErrUnsupportedPlatform) {
		t.Fatalf("NewContext error = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestNotSized(t *testing.T) {
	surf := newTestSurface(t)

	if _, err := surf.Buffer(); !errors.Is(err, softframe.ErrNotSized) {
		t.Errorf("Buffer before Resize: %v, want ErrNotSized", err)
	}
	if err := surf.Present(); !errors.Is(err, softframe.ErrNotSized) {
		t.Errorf("Present before Resize: %v, want ErrNotSized", err)
	}
	if _, err := surf.Fetch(); !errors.Is(err, softframe.ErrNotSized) {
		t.Errorf("Fetch before Resize: %v, want ErrNotSized", err)
	}
}

func TestInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"both zero", 0, 0},
		{"negative width", -1, 100},
		{"negative height", 100, -7},
	}

	surf := newTestSurface(t)
	if err := surf.Resize(10, 20); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := surf.Resize(tt.width, tt.height)
			if !errors.Is(err, softframe.ErrInvalidDimensions) {
				t.Fatalf("Resize(%d, %d) = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
			}
			if w, h := surf.Size(); w != 10 || h != 20 {
				t.Errorf("size after rejected resize = %dx%d, want 10x20", w, h)
			}
		})
	}
}

func TestResizeIdempotence(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(8, 8); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	buf, err := surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	first := buf.Pixels()
	first[0] = 0x00123456
	buf.Release()

	if err := surf.Resize(8, 8); err != nil {
		t.Fatalf("same-size Resize: %v", err)
	}

	buf, err = surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	second := buf.Pixels()
	if &second[0] != &first[0] {
		t.Error("same-size resize reallocated the buffer")
	}
	if second[0] != 0x00123456 {
		t.Errorf("buffer contents not preserved: %#08x", second[0])
	}
	buf.Release()
}

func TestGuardExclusive(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(4, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	buf, err := surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}

	if _, err := surf.Buffer(); !errors.Is(err, softframe.ErrBufferHeld) {
		t.Errorf("second Buffer = %v, want ErrBufferHeld", err)
	}
	if err := surf.Resize(5, 5); !errors.Is(err, softframe.ErrBufferHeld) {
		t.Errorf("Resize under guard = %v, want ErrBufferHeld", err)
	}
	if err := surf.Present(); !errors.Is(err, softframe.ErrBufferHeld) {
		t.Errorf("Present under guard = %v, want ErrBufferHeld", err)
	}
	if _, err := surf.Fetch(); !errors.Is(err, softframe.ErrBufferHeld) {
		t.Errorf("Fetch under guard = %v, want ErrBufferHeld", err)
	}

	buf.Release()
	buf, err = surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer after Release: %v", err)
	}
	buf.Release()
	if err := surf.Present(); err != nil {
		t.Errorf("Present with no guard outstanding: %v", err)
	}
}

func TestResizeRollback(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(10, 20); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	buf, err := surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	first := buf.Pixels()
	first[0] = 0x00abcdef
	buf.Release()

	cause := errors.New("shm segment exhausted")
	softframe.FailNextResize(surf, cause)
	err = surf.Resize(64, 64)
	if !errors.Is(err, softframe.ErrResize) {
		t.Fatalf("failing Resize = %v, want ErrResize", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("failing Resize = %v, want wrapped %v", err, cause)
	}
	if w, h := surf.Size(); w != 10 || h != 20 {
		t.Fatalf("size after failed resize = %dx%d, want 10x20", w, h)
	}

	buf, err = surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer after failed resize: %v", err)
	}
	px := buf.Pixels()
	if &px[0] != &first[0] {
		t.Error("failed resize replaced the buffer")
	}
	if px[0] != 0x00abcdef {
		t.Errorf("failed resize disturbed the buffer: %#08x", px[0])
	}
	buf.Release()
}

func TestFetchFailure(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(2, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := surf.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	cause := errors.New("connection reset")
	softframe.FailNextFetch(surf, cause)
	_, err := surf.Fetch()
	if !errors.Is(err, softframe.ErrFetch) {
		t.Fatalf("failing Fetch = %v, want ErrFetch", err)
	}
	if errors.Is(err, softframe.ErrPresent) {
		t.Errorf("Fetch failure reported as a present failure: %v", err)
	}

	// The failure is transient; the surface stays valid and sized.
	if _, err := surf.Fetch(); err != nil {
		t.Errorf("Fetch after failure: %v", err)
	}
}

func TestSurfaceAfterContextRelease(t *testing.T) {
	ctx, err := softframe.NewContext(softframe.OffscreenDisplayHandle())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	ctx.Release()

	_, err = ctx.NewSurface(softframe.OffscreenWindowHandle(1))
	if !errors.Is(err, softframe.ErrSurfaceInit) {
		t.Fatalf("NewSurface after Release = %v, want ErrSurfaceInit", err)
	}
}

func TestSurfacePresentRepush(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(3, 3); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	buf, err := surf.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	px := buf.Pixels()
	for i := range px {
		px[i] = 0x0000ff00
	}
	if err := buf.Present(); err != nil {
		t.Fatalf("guard Present: %v", err)
	}

	// Re-pushing the last frame without a new guard, as after an expose.
	if err := surf.Present(); err != nil {
		t.Fatalf("Surface.Present: %v", err)
	}
	got, err := surf.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	for i, p := range got {
		if p != 0x0000ff00 {
			t.Fatalf("pixel %d = %#08x after repush, want 0x0000ff00", i, p)
		}
	}
}

func TestGuardReleaseDoesNotPresent(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(2, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	buf, _ := surf.Buffer()
	for i, px := 0, buf.Pixels(); i < len(px); i++ {
		px[i] = 0x00aa0000
	}
	if err := buf.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	buf, _ = surf.Buffer()
	buf.Pixels()[0] = 0x000000aa
	buf.Release() // discard the session

	got, err := surf.Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got[0] != 0x00aa0000 {
		t.Errorf("released session leaked into the frame: %#08x", got[0])
	}
}

func TestConsumedGuard(t *testing.T) {
	surf := newTestSurface(t)
	if err := surf.Resize(2, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	buf, _ := surf.Buffer()
	if err := buf.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if buf.Pixels() != nil {
		t.Error("Pixels() on a consumed guard should be nil")
	}
	buf.Release() // no-op, must not panic

	defer func() {
		if recover() == nil {
			t.Error("Present on a consumed guard should panic")
		}
	}()
	buf.Present()
}
