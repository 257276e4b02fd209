// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend defines the capability contract that every platform
// presentation backend satisfies. The softframe package selects exactly one
// backend per Context at construction time and never re-dispatches.
package backend

import (
	"errors"
	"unsafe"
)

// ErrFetchUnsupported is returned by Surface.Fetch on platforms that have no
// way to read presented pixels back from the window system.
var ErrFetchUnsupported = errors.New("backend does not support fetch")

// ErrSizeOutOfRange is returned by Surface.Resize when the requested
// dimensions exceed what the platform's protocol or memory model can carry
// (for example the X11 SHM side and segment-size limits).
var ErrSizeOutOfRange = errors.New("dimensions out of range for backend")

// Window carries the raw, collaborator-owned window identifier for every
// platform. Only the fields matching the owning context's platform are
// meaningful; backends read their own field and ignore the rest. None of the
// referenced resources are owned, and none are ever freed, by a backend.
type Window struct {
	// XID is the X11 window id.
	XID uint32

	// WlSurface points at a wl_surface proxy.
	WlSurface unsafe.Pointer

	// HWND is the Win32 window handle.
	HWND uintptr

	// NSView points at an AppKit NSView.
	NSView unsafe.Pointer

	// CanvasID identifies a browser canvas element carrying a
	// data-raw-handle attribute with this value.
	CanvasID uint32

	// ID is the offscreen backend's surface identifier.
	ID uint32
}

// Context is a connection-scoped backend instance. It owns whatever native
// state is shared by all surfaces on one display connection.
type Context interface {
	// NewSurface binds a backend surface to the given window. The window's
	// raw identifier must stay valid for the surface's whole lifetime.
	NewSurface(win Window) (Surface, error)

	// Release frees connection-scoped native resources. The foreign display
	// handle itself is left untouched.
	Release()
}

// Surface is a window-scoped backend instance holding the current pixel
// buffer and the native resources needed to push it to the window.
//
// A Surface starts unsized. Resize must succeed at least once before Pixels,
// Present or Fetch are called; the softframe façade enforces that ordering,
// so implementations may assume it.
type Surface interface {
	// Resize replaces the pixel buffer and any size-dependent native
	// resources with ones for width×height pixels. It is all-or-nothing: on
	// error the previous buffer, size and native state remain valid and no
	// partially acquired resource is leaked. Calling Resize with the current
	// dimensions is a no-op.
	Resize(width, height int) error

	// Pixels returns the current buffer, exactly width*height words in
	// 0x00RRGGBB packing. The slice is valid until the next successful
	// Resize or until Release. Contents after a genuine resize are
	// unspecified.
	Pixels() []uint32

	// Present transfers the entire buffer to the window system.
	Present() error

	// Fetch reads the most recently presented pixels back from the window
	// system, or returns ErrFetchUnsupported.
	Fetch() ([]uint32, error)

	// Release frees window-scoped native resources.
	Release()
}
