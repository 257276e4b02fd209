// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import (
	"github.com/softframe/softframe/internal/backend"
)

// Context binds softframe to one display connection and is the factory for
// Surfaces sharing that connection. Connection-scoped capability probing
// (for example "does this X server speak MIT-SHM") happens once here and is
// cached for the Context's lifetime, so a missing capability fails fast at
// NewContext rather than at the first present.
type Context struct {
	platform Platform
	b        backend.Context
	released bool
}

// NewContext selects the backend matching the handle's platform tag and
// establishes the connection-scoped native state.
//
// It fails with ErrUnsupportedPlatform if no backend for the tag is compiled
// into this binary, and with ErrContextInit if the display subsystem refused
// the connection or lacks a required capability.
func NewContext(display DisplayHandle) (*Context, error) {
	b, err := newBackendContext(display)
	if err != nil {
		return nil, err
	}
	logger().Info("context created", "platform", display.platform.String())
	return &Context{platform: display.platform, b: b}, nil
}

// Platform reports which backend this Context dispatches to.
func (c *Context) Platform() Platform { return c.platform }

// NewSurface binds a Surface to the given window on this Context's
// connection. The new Surface is unsized: Resize must succeed once before
// Buffer or Present may be called.
//
// It fails with ErrPlatformMismatch if the window's tag differs from the
// Context's (no native resource is allocated in that case), and with
// ErrSurfaceInit if the window cannot be bound or the Context was already
// released.
func (c *Context) NewSurface(window WindowHandle) (*Surface, error) {
	if window.platform != c.platform {
		return nil, failf(ErrPlatformMismatch, "window is %v, context is %v", window.platform, c.platform)
	}
	if c.released {
		return nil, fail(ErrSurfaceInit, "context already released")
	}
	b, err := c.b.NewSurface(window.raw)
	if err != nil {
		return nil, failf(ErrSurfaceInit, "%v: %w", c.platform, err)
	}
	logger().Info("surface created", "platform", c.platform.String())
	return &Surface{ctx: c, b: b}, nil
}

// Release frees the Context's connection-scoped native resources. All
// Surfaces created from the Context must be released first. The foreign
// display resource inside the DisplayHandle is left untouched. Release is
// idempotent.
func (c *Context) Release() {
	if c.released {
		return
	}
	c.released = true
	c.b.Release()
}
