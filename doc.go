// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softframe presents CPU-written pixel buffers into windows.
//
// The application owns window creation and the event loop; softframe only
// needs the resulting raw display and window identifiers, wrapped in a
// DisplayHandle and a WindowHandle. From those it builds a Context (one per
// display connection) and Surfaces (one per window), and pushes whole pixel
// buffers to the window system using whatever mechanism the platform offers:
// MIT-SHM or PutImage on X11, wl_shm pools on Wayland, GDI DIB sections on
// Windows, Core Graphics images on macOS, canvas ImageData in browsers, and
// a plain in-memory frame for the offscreen backend.
//
// The per-frame loop is:
//
//	surf.Resize(w, h)          // only when the window size changed
//	buf, _ := surf.Buffer()
//	px := buf.Pixels()         // w*h words, 0x00RRGGBB
//	... write pixels ...
//	buf.Present()
//
// # Pixel format
//
// Buffers are width×height 32-bit words packed 0x00RRGGBB: the top byte is
// unused and must be zero — it is not alpha, and backends never blend.
// Rows are stored top to bottom with no padding (stride == width), words are
// native-endian in memory. This contract is identical on every backend; any
// conversion a platform needs is the backend's private business.
//
// Buffer contents after a resize are unspecified: implementations may expose
// zeroed, garbage, or previous-frame memory. Skipping a per-frame clear is a
// deliberate trade; callers that need a clean slate must clear it themselves.
//
// # Lifetimes and threading
//
// The raw display and window resources referenced by handles are owned by
// the application and must outlive every Context and Surface built from
// them; softframe never frees them and cannot enforce this. A Surface must
// be released before its Context.
//
// Context and Surface are not internally synchronized. Use one Surface from
// one goroutine at a time, and keep one Context's surfaces on one goroutine
// unless the platform connection is known to tolerate more. Operations are
// bounded local calls into the windowing client library; none of them take
// a timeout or can be cancelled.
package softframe
