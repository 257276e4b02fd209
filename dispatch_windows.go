// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package softframe

import (
	"github.com/softframe/softframe/internal/backend"
	"github.com/softframe/softframe/internal/gdi"
)

func newPlatformContext(display DisplayHandle) (backend.Context, error) {
	if display.platform != PlatformWin32 {
		return nil, unsupported(display.platform)
	}
	return gdi.NewContext(), nil
}
