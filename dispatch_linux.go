// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package softframe

import (
	"github.com/softframe/softframe/internal/backend"
	"github.com/softframe/softframe/internal/wlshm"
	"github.com/softframe/softframe/internal/x11shm"
)

func newPlatformContext(display DisplayHandle) (backend.Context, error) {
	switch display.platform {
	case PlatformX11:
		c, err := x11shm.NewContext(display.xconn, display.xscreen)
		if err != nil {
			return nil, contextInitError(display.platform, err)
		}
		return c, nil
	case PlatformWayland:
		c, err := wlshm.NewContext(display.wlDisplay)
		if err != nil {
			return nil, contextInitError(display.platform, err)
		}
		return c, nil
	default:
		return nil, unsupported(display.platform)
	}
}
