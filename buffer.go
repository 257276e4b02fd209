// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import (
	"image/draw"

	"github.com/softframe/softframe/internal/pix"
)

// RGB packs one pixel in the buffer format, 0x00RRGGBB.
func RGB(r, g, b uint8) uint32 { return pix.RGB(r, g, b) }

// Buffer is a scoped, exclusively held write session on a Surface's pixel
// buffer. It ends in exactly one of two ways: Present pushes the pixels to
// the window and consumes the guard; Release discards the session without
// presenting. While a Buffer is live its Surface refuses Resize and further
// Buffer calls.
type Buffer struct {
	s    *Surface
	px   []uint32
	done bool
}

// Pixels returns the writable pixel words, exactly width*height of them in
// row-major order, packed 0x00RRGGBB. The slice is only valid until the
// guard is consumed; a consumed guard returns nil.
func (b *Buffer) Pixels() []uint32 {
	if b.done {
		return nil
	}
	return b.px
}

// Image wraps the same pixels as a draw.Image so the standard image
// libraries can render into the buffer directly. Writes through the image
// and through Pixels hit the same memory.
func (b *Buffer) Image() draw.Image {
	if b.done {
		return nil
	}
	w, h := b.s.Size()
	return &pix.Image{Pix: b.px, Width: w, Height: h}
}

// Present transfers the entire buffer to the window system and consumes the
// guard. A successful return means the frame was accepted for display.
// On failure the guard is still consumed; the Surface remains valid, and
// Surface.Present can retry with the same contents.
//
// Present panics if the guard was already consumed.
func (b *Buffer) Present() error {
	if b.done {
		panic("softframe: Present on a consumed Buffer")
	}
	b.consume()
	if b.s.released {
		return fail(ErrNotSized, "surface already released")
	}
	return b.s.present()
}

// Release ends the write session without presenting; whatever was written
// stays in the buffer and will be part of the next presented frame.
// Release of a consumed guard is a no-op.
func (b *Buffer) Release() {
	if b.done {
		return
	}
	b.consume()
}

func (b *Buffer) consume() {
	b.done = true
	b.px = nil
	b.s.loaned = false
}
