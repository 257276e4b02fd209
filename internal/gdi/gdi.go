// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

// Package gdi presents pixel buffers to Win32 windows by keeping the buffer
// in a 32bpp top-down DIB section and BitBlt-ing it onto the window's device
// context. A 32bpp BI_RGB DIB is natively 0x00RRGGBB, so no conversion
// happens on this platform.
package gdi

import (
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
	"golang.org/x/xerrors"

	"github.com/softframe/softframe/internal/backend"
)

// Procs missing from github.com/lxn/win.
var (
	moduser32        = windows.NewLazySystemDLL("user32.dll")
	modgdi32         = windows.NewLazySystemDLL("gdi32.dll")
	procValidateRect = moduser32.NewProc("ValidateRect")
	procGdiFlush     = modgdi32.NewProc("GdiFlush")
)

func validateRect(hwnd win.HWND) {
	procValidateRect.Call(uintptr(hwnd), 0)
}

func gdiFlush() {
	procGdiFlush.Call()
}

type contextImpl struct{}

// NewContext returns the GDI backend context. GDI has no display-level
// connection to negotiate.
func NewContext() backend.Context {
	return contextImpl{}
}

func (contextImpl) NewSurface(w backend.Window) (backend.Surface, error) {
	hwnd := win.HWND(w.HWND)
	if hwnd == 0 {
		return nil, xerrors.New("gdi: zero HWND")
	}
	dc := win.GetDC(hwnd)
	if dc == 0 {
		return nil, xerrors.Errorf("gdi: GetDC on window %#x: %w", w.HWND, windows.GetLastError())
	}
	return &surfaceImpl{hwnd: hwnd, windowDC: dc}, nil
}

func (contextImpl) Release() {}

// dib is one sized buffer: a DIB section selected into a memory DC.
type dib struct {
	dc     win.HDC
	bitmap win.HBITMAP
	px     []uint32
}

// newDIB builds a top-down 32bpp DIB section of width×height pixels
// compatible with windowDC. On error nothing is left allocated.
func newDIB(windowDC win.HDC, width, height int) (*dib, error) {
	dc := win.CreateCompatibleDC(windowDC)
	if dc == 0 {
		return nil, xerrors.Errorf("gdi: CreateCompatibleDC: %w", windows.GetLastError())
	}

	var bi win.BITMAPINFOHEADER
	bi.BiSize = uint32(unsafe.Sizeof(bi))
	bi.BiWidth = int32(width)
	bi.BiHeight = -int32(height) // negative height: top-down rows
	bi.BiPlanes = 1
	bi.BiBitCount = 32
	bi.BiCompression = win.BI_RGB
	bi.BiSizeImage = uint32(4 * width * height)

	var bits unsafe.Pointer
	bitmap := win.CreateDIBSection(dc, &bi, win.DIB_RGB_COLORS, &bits, 0, 0)
	if bitmap == 0 || bits == nil {
		lastErr := windows.GetLastError()
		win.DeleteDC(dc)
		return nil, xerrors.Errorf("gdi: CreateDIBSection %dx%d: %w", width, height, lastErr)
	}
	win.SelectObject(dc, win.HGDIOBJ(bitmap))

	return &dib{
		dc:     dc,
		bitmap: bitmap,
		px:     unsafe.Slice((*uint32)(bits), width*height),
	}, nil
}

func (d *dib) release() {
	win.DeleteDC(d.dc)
	win.DeleteObject(win.HGDIOBJ(d.bitmap))
	d.px = nil
}

type surfaceImpl struct {
	hwnd     win.HWND
	windowDC win.HDC

	width, height int
	buf           *dib
}

func (s *surfaceImpl) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	d, err := newDIB(s.windowDC, width, height)
	if err != nil {
		return err
	}
	if s.buf != nil {
		s.buf.release()
	}
	s.buf = d
	s.width, s.height = width, height
	return nil
}

func (s *surfaceImpl) Pixels() []uint32 { return s.buf.px }

func (s *surfaceImpl) Present() error {
	if !win.BitBlt(s.windowDC, 0, 0, int32(s.width), int32(s.height), s.buf.dc, 0, 0, win.SRCCOPY) {
		return xerrors.Errorf("gdi: BitBlt: %w", windows.GetLastError())
	}
	validateRect(s.hwnd)
	return nil
}

// Fetch blits the window contents the other way, into a temporary DIB.
func (s *surfaceImpl) Fetch() ([]uint32, error) {
	tmp, err := newDIB(s.windowDC, s.width, s.height)
	if err != nil {
		return nil, err
	}
	defer tmp.release()

	if !win.BitBlt(tmp.dc, 0, 0, int32(s.width), int32(s.height), s.windowDC, 0, 0, win.SRCCOPY) {
		return nil, xerrors.Errorf("gdi: BitBlt readback: %w", windows.GetLastError())
	}
	// Make sure the blit has landed in the DIB bits before we read them.
	gdiFlush()

	out := make([]uint32, len(tmp.px))
	for i, p := range tmp.px {
		out[i] = p &^ 0xff000000
	}
	return out, nil
}

func (s *surfaceImpl) Release() {
	if s.buf != nil {
		s.buf.release()
		s.buf = nil
	}
	win.ReleaseDC(s.hwnd, s.windowDC)
	s.width, s.height = 0, 0
}
