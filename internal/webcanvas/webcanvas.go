// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js && wasm

// Package webcanvas presents pixel buffers into a browser canvas element via
// its 2D context. The window handle is an id attribute: the backend binds to
// the element whose data-raw-handle attribute carries the handle's value.
// Canvas ImageData is byte-ordered RGBA, so each present converts from the
// packed 0x00RRGGBB words with opaque alpha.
package webcanvas

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/softframe/softframe/internal/backend"
	"github.com/softframe/softframe/internal/pix"
)

type contextImpl struct{}

// NewContext returns the canvas backend context.
func NewContext() backend.Context {
	return contextImpl{}
}

func (contextImpl) NewSurface(win backend.Window) (backend.Surface, error) {
	document := js.Global().Get("document")
	selector := fmt.Sprintf("canvas[data-raw-handle=%q]", fmt.Sprint(win.CanvasID))
	canvas := document.Call("querySelector", selector)
	if canvas.IsNull() {
		return nil, fmt.Errorf("webcanvas: no canvas with data-raw-handle=%d", win.CanvasID)
	}
	ctx2d := canvas.Call("getContext", "2d")
	if ctx2d.IsNull() {
		return nil, errors.New("webcanvas: canvas has no 2d context")
	}
	return &surfaceImpl{canvas: canvas, ctx2d: ctx2d}, nil
}

func (contextImpl) Release() {}

type surfaceImpl struct {
	canvas js.Value
	ctx2d  js.Value

	width, height int
	staging       []uint32
	scratch       []byte // RGBA bytes, reused every present

	clamped   js.Value // Uint8ClampedArray backing imageData
	imageData js.Value
}

func (s *surfaceImpl) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	clamped := js.Global().Get("Uint8ClampedArray").New(4 * width * height)
	imageData := js.Global().Get("ImageData").New(clamped, width, height)

	s.canvas.Set("width", width)
	s.canvas.Set("height", height)
	s.clamped, s.imageData = clamped, imageData
	s.staging = make([]uint32, width*height)
	s.scratch = make([]byte, 4*width*height)
	s.width, s.height = width, height
	return nil
}

func (s *surfaceImpl) Pixels() []uint32 { return s.staging }

func (s *surfaceImpl) Present() error {
	pix.ToRGBA(s.scratch, s.staging)
	js.CopyBytesToJS(s.clamped, s.scratch)
	s.ctx2d.Call("putImageData", s.imageData, 0, 0)
	return nil
}

func (s *surfaceImpl) Fetch() ([]uint32, error) {
	data := s.ctx2d.Call("getImageData", 0, 0, s.width, s.height).Get("data")
	js.CopyBytesToGo(s.scratch, data)
	out := make([]uint32, s.width*s.height)
	pix.FromRGBA(out, s.scratch)
	return out, nil
}

func (s *surfaceImpl) Release() {
	s.staging, s.scratch = nil, nil
	s.clamped, s.imageData = js.Value{}, js.Value{}
	s.width, s.height = 0, 0
}
