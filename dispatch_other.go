// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux && !windows && !darwin && !js

package softframe

import (
	"github.com/softframe/softframe/internal/backend"
)

func newPlatformContext(display DisplayHandle) (backend.Context, error) {
	return nil, unsupported(display.platform)
}
