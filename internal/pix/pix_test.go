// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pix

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRGB(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint32
	}{
		{0x00, 0x00, 0x00, 0x00000000},
		{0xff, 0x00, 0x00, 0x00ff0000},
		{0x00, 0xff, 0x00, 0x0000ff00},
		{0x00, 0x00, 0xff, 0x000000ff},
		{0x12, 0x34, 0x56, 0x00123456},
		{0xff, 0xff, 0xff, 0x00ffffff},
	}
	for _, tt := range tests {
		if got := RGB(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("RGB(%#02x, %#02x, %#02x) = %#08x, want %#08x", tt.r, tt.g, tt.b, got, tt.want)
		}
		r, g, b := Split(tt.want)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("Split(%#08x) = %#02x, %#02x, %#02x", tt.want, r, g, b)
		}
	}
}

func TestRGBARoundTrip(t *testing.T) {
	src := []uint32{0x00123456, 0x00000000, 0x00ffffff, 0x00ff0000, 0x000000ff}

	rgba := make([]byte, 4*len(src))
	ToRGBA(rgba, src)
	for i := range src {
		if rgba[4*i+3] != 0xff {
			t.Fatalf("pixel %d: alpha = %#02x, want 0xff", i, rgba[4*i+3])
		}
	}

	back := make([]uint32, len(src))
	FromRGBA(back, rgba)
	if diff := cmp.Diff(src, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBytesWordsAlias(t *testing.T) {
	px := []uint32{0x00112233, 0x00445566}
	b := Bytes(px)
	if len(b) != 8 {
		t.Fatalf("len(Bytes) = %d, want 8", len(b))
	}

	// The byte view aliases the words: writing one must show in the other.
	px[0] = 0x00aabbcc
	if got := Words(b)[0]; got != 0x00aabbcc {
		t.Errorf("Words(Bytes(px))[0] = %#08x, want 0x00aabbcc", got)
	}

	if Bytes(nil) != nil || Words(nil) != nil {
		t.Error("empty views should be nil")
	}
}

func TestImageDraw(t *testing.T) {
	m := &Image{Pix: make([]uint32, 4*3), Width: 4, Height: 3}
	draw.Draw(m, m.Bounds(), &image.Uniform{color.RGBA{0xff, 0x00, 0x00, 0xff}}, image.Point{}, draw.Src)

	for i, p := range m.Pix {
		if p != 0x00ff0000 {
			t.Fatalf("pixel %d = %#08x, want 0x00ff0000", i, p)
		}
	}

	m.Set(1, 2, color.RGBA{0x10, 0x20, 0x30, 0xff})
	if got := m.Pix[2*4+1]; got != 0x00102030 {
		t.Errorf("Set landed as %#08x, want 0x00102030", got)
	}
	if got := m.At(1, 2); got != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Errorf("At(1, 2) = %v", got)
	}

	// Out-of-bounds access is inert.
	m.Set(-1, 0, color.White)
	if got := m.At(4, 0); got != (color.RGBA{}) {
		t.Errorf("At out of bounds = %v, want zero", got)
	}
}

func TestImageRGBA(t *testing.T) {
	m := &Image{Pix: []uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0x00ffffff}, Width: 2, Height: 2}
	img := m.RGBA()
	want := []byte{
		0xff, 0x00, 0x00, 0xff,
		0x00, 0xff, 0x00, 0xff,
		0x00, 0x00, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
	}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("RGBA pixels mismatch (-want +got):\n%s", diff)
	}
}
