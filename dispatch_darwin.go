// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin

package softframe

import (
	"github.com/softframe/softframe/internal/backend"
	"github.com/softframe/softframe/internal/cg"
)

func newPlatformContext(display DisplayHandle) (backend.Context, error) {
	if display.platform != PlatformCoreGraphics {
		return nil, unsupported(display.platform)
	}
	c, err := cg.NewContext()
	if err != nil {
		return nil, contextInitError(display.platform, err)
	}
	return c, nil
}
