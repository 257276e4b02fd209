// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import (
	"unsafe"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/softframe/softframe/internal/backend"
)

// Platform identifies which backend a handle, Context or Surface belongs to.
// It is fixed at construction; there is no runtime platform switching.
type Platform int

const (
	platformInvalid Platform = iota

	// PlatformOffscreen is the in-memory backend, available in every build.
	PlatformOffscreen

	// PlatformX11 presents over an X11 connection using MIT-SHM when the
	// server supports it, falling back to core-protocol PutImage.
	PlatformX11

	// PlatformWayland presents wl_shm buffers to a wl_surface.
	PlatformWayland

	// PlatformWin32 presents through a GDI device context.
	PlatformWin32

	// PlatformCoreGraphics presents a CGImage into a view's backing layer.
	PlatformCoreGraphics

	// PlatformWeb presents ImageData into a canvas 2D context.
	PlatformWeb
)

var platformNames = map[Platform]string{
	PlatformOffscreen:    "offscreen",
	PlatformX11:          "x11",
	PlatformWayland:      "wayland",
	PlatformWin32:        "win32",
	PlatformCoreGraphics: "coregraphics",
	PlatformWeb:          "web",
}

func (p Platform) String() string {
	if s, ok := platformNames[p]; ok {
		return s
	}
	return "invalid"
}

// DisplayHandle is an opaque, application-supplied reference to a display
// connection. softframe only reads it; the underlying resource stays owned
// by the application and must outlive every Context built from the handle.
type DisplayHandle struct {
	platform Platform

	xconn   *xgb.Conn
	xscreen int

	wlDisplay unsafe.Pointer
}

// Platform reports the handle's platform tag.
func (h DisplayHandle) Platform() Platform { return h.platform }

// X11DisplayHandle wraps an established X11 connection and the screen number
// surfaces will present on. The connection is not closed by softframe.
func X11DisplayHandle(conn *xgb.Conn, screen int) DisplayHandle {
	return DisplayHandle{platform: PlatformX11, xconn: conn, xscreen: screen}
}

// WaylandDisplayHandle wraps a *wl_display obtained from libwayland-client.
// The display is not disconnected by softframe.
func WaylandDisplayHandle(display unsafe.Pointer) DisplayHandle {
	return DisplayHandle{platform: PlatformWayland, wlDisplay: display}
}

// Win32DisplayHandle tags a handle for the GDI backend. Win32 has no
// display-level resource beyond the process, so it carries no fields.
func Win32DisplayHandle() DisplayHandle {
	return DisplayHandle{platform: PlatformWin32}
}

// CoreGraphicsDisplayHandle tags a handle for the macOS backend.
func CoreGraphicsDisplayHandle() DisplayHandle {
	return DisplayHandle{platform: PlatformCoreGraphics}
}

// WebDisplayHandle tags a handle for the browser canvas backend.
func WebDisplayHandle() DisplayHandle {
	return DisplayHandle{platform: PlatformWeb}
}

// OffscreenDisplayHandle tags a handle for the in-memory backend.
func OffscreenDisplayHandle() DisplayHandle {
	return DisplayHandle{platform: PlatformOffscreen}
}

// WindowHandle is an opaque, application-supplied reference to one drawable
// window. Its platform tag must match the Context it is used with. The raw
// window stays owned by the application and must outlive every Surface built
// from the handle.
type WindowHandle struct {
	platform Platform
	raw      backend.Window
}

// Platform reports the handle's platform tag.
func (h WindowHandle) Platform() Platform { return h.platform }

// X11WindowHandle wraps an X11 window id.
func X11WindowHandle(win xproto.Window) WindowHandle {
	return WindowHandle{platform: PlatformX11, raw: backend.Window{XID: uint32(win)}}
}

// WaylandWindowHandle wraps a *wl_surface.
func WaylandWindowHandle(surface unsafe.Pointer) WindowHandle {
	return WindowHandle{platform: PlatformWayland, raw: backend.Window{WlSurface: surface}}
}

// Win32WindowHandle wraps an HWND.
func Win32WindowHandle(hwnd uintptr) WindowHandle {
	return WindowHandle{platform: PlatformWin32, raw: backend.Window{HWND: hwnd}}
}

// CoreGraphicsWindowHandle wraps a pointer to the NSView softframe should
// present into. The view is made layer-backed on first use.
func CoreGraphicsWindowHandle(nsview unsafe.Pointer) WindowHandle {
	return WindowHandle{platform: PlatformCoreGraphics, raw: backend.Window{NSView: nsview}}
}

// WebWindowHandle identifies the canvas element whose data-raw-handle
// attribute equals id.
func WebWindowHandle(id uint32) WindowHandle {
	return WindowHandle{platform: PlatformWeb, raw: backend.Window{CanvasID: id}}
}

// OffscreenWindowHandle names an in-memory surface; the id only shows up in
// logs.
func OffscreenWindowHandle(id uint32) WindowHandle {
	return WindowHandle{platform: PlatformOffscreen, raw: backend.Window{ID: id}}
}
