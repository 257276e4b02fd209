// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pix implements the 0x00RRGGBB packed pixel format shared by all
// softframe backends: 32-bit words, most significant byte zero (unused, not
// alpha), native-endian, row-major with stride equal to width.
package pix

import (
	"image"
	"image/color"
	"unsafe"
)

// RGB packs one pixel. The top byte is always zero.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Split unpacks one pixel into its channels.
func Split(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Bytes returns the words reinterpreted as native-endian bytes, without
// copying. On little-endian machines this is exactly the BGRX byte order that
// X11 ZPixmap, wl_shm XRGB8888 and Win32 BI_RGB DIB sections consume.
func Bytes(px []uint32) []byte {
	if len(px) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&px[0])), 4*len(px))
}

// Words is the inverse of Bytes: a no-copy view of b as packed pixels.
// len(b) must be a multiple of 4 and b must be 4-byte aligned, which holds
// for every buffer softframe maps or allocates.
func Words(b []byte) []uint32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4)
}

// ToRGBA converts packed pixels to 8-bit RGBA bytes with opaque alpha.
// dst must hold at least 4*len(src) bytes. Used by backends whose native
// format is byte-ordered RGBA (browser canvas ImageData).
func ToRGBA(dst []byte, src []uint32) {
	if len(src) == 0 {
		return
	}
	_ = dst[4*len(src)-1]
	for i, p := range src {
		dst[4*i+0] = uint8(p >> 16)
		dst[4*i+1] = uint8(p >> 8)
		dst[4*i+2] = uint8(p)
		dst[4*i+3] = 0xff
	}
}

// FromRGBA converts 8-bit RGBA bytes back to packed pixels, dropping alpha.
// src must hold at least 4*len(dst) bytes.
func FromRGBA(dst []uint32, src []byte) {
	if len(dst) == 0 {
		return
	}
	_ = src[4*len(dst)-1]
	for i := range dst {
		dst[i] = RGB(src[4*i+0], src[4*i+1], src[4*i+2])
	}
}

// Image is a draw.Image view over a packed pixel buffer, so callers can use
// the standard image libraries to draw into a surface buffer directly. The
// zero point is the top-left pixel. Writes ignore alpha; reads are opaque.
type Image struct {
	Pix           []uint32
	Width, Height int
}

func (m *Image) ColorModel() color.Model { return color.RGBAModel }

func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

func (m *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := Split(m.Pix[y*m.Width+x])
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (m *Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return
	}
	r, g, b, _ := c.RGBA()
	m.Pix[y*m.Width+x] = RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGBA copies the buffer into a standard *image.RGBA with opaque alpha.
func (m *Image) RGBA() *image.RGBA {
	img := image.NewRGBA(m.Bounds())
	ToRGBA(img.Pix, m.Pix)
	return img
}
