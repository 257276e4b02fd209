// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import (
	"github.com/softframe/softframe/internal/backend"
	"github.com/softframe/softframe/internal/offscreen"
)

// newBackendContext selects the one backend a Context will dispatch to for
// its whole lifetime. The offscreen backend is compiled into every build;
// the rest live in the per-GOOS dispatch files.
func newBackendContext(display DisplayHandle) (backend.Context, error) {
	if display.platform == PlatformOffscreen {
		return offscreen.NewContext(), nil
	}
	return newPlatformContext(display)
}

func unsupported(p Platform) error {
	return failf(ErrUnsupportedPlatform, "no %v backend in this build", p)
}

func contextInitError(p Platform, err error) error {
	return failf(ErrContextInit, "%v: %w", p, err)
}
