// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Package x11shm presents pixel buffers to X11 windows over a
// collaborator-supplied xgb connection. When the server speaks MIT-SHM the
// buffer lives in a System V shared memory segment and frames go out as a
// single shm.PutImage; otherwise the buffer is ordinary Go memory pushed
// with batched core-protocol PutImage requests.
package x11shm

import (
	"errors"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/xerrors"

	"github.com/softframe/softframe/internal/backend"
)

const (
	maxShmSide = 0x00007fff // 32,767 pixels.
	maxShmSize = 0x10000000 // 268,435,456 bytes.
)

// checkSize applies the protocol limits shared by both upload paths.
// PutImage carries 16-bit extents, so the SHM side limit binds the fallback
// path too.
func checkSize(width, height int) error {
	w, h := int64(width), int64(height)
	if w > maxShmSide || h > maxShmSide || 4*w*h > maxShmSize {
		return xerrors.Errorf("x11shm: %dx%d: %w", width, height, backend.ErrSizeOutOfRange)
	}
	return nil
}

type contextImpl struct {
	xc  *xgb.Conn
	xsi *xproto.ScreenInfo

	// shmAvail is probed once per context. A server without MIT-SHM is not
	// an error; surfaces fall back to core-protocol uploads.
	shmAvail bool
}

// NewContext adopts an established X11 connection and the screen surfaces
// will present on. The connection stays owned by the caller and is never
// closed here.
func NewContext(xc *xgb.Conn, screen int) (backend.Context, error) {
	if xc == nil {
		return nil, errors.New("x11shm: nil X11 connection")
	}
	setup := xproto.Setup(xc)
	if screen < 0 || screen >= len(setup.Roots) {
		return nil, xerrors.Errorf("x11shm: screen %d out of range (server has %d)", screen, len(setup.Roots))
	}

	c := &contextImpl{xc: xc, xsi: &setup.Roots[screen]}
	if err := shm.Init(xc); err == nil {
		// Round-trip once so a broken extension surfaces now, not at the
		// first present.
		if _, err := shm.QueryVersion(xc).Reply(); err == nil {
			c.shmAvail = true
		}
	}
	return c, nil
}

func (c *contextImpl) NewSurface(win backend.Window) (backend.Surface, error) {
	xw := xproto.Window(win.XID)
	if xw == 0 {
		return nil, errors.New("x11shm: zero window id")
	}

	xg, err := xproto.NewGcontextId(c.xc)
	if err != nil {
		return nil, xerrors.Errorf("x11shm: NewGcontextId: %w", err)
	}
	// CreateGC is the bind point: it fails if the window id is stale or
	// belongs to another client's destroyed window.
	if err := xproto.CreateGCChecked(c.xc, xg, xproto.Drawable(xw), 0, nil).Check(); err != nil {
		return nil, xerrors.Errorf("x11shm: CreateGC on window %#x: %w", win.XID, err)
	}

	return &surfaceImpl{c: c, xw: xw, xg: xg}, nil
}

func (c *contextImpl) Release() {
	// The connection belongs to the collaborator; nothing context-scoped to
	// free.
}
