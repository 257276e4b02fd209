// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin && !cgo

package cg

import (
	"errors"

	"github.com/softframe/softframe/internal/backend"
)

// NewContext in a cgo-free build cannot reach Core Graphics.
func NewContext() (backend.Context, error) {
	return nil, errors.New("cg: built without cgo; the macOS backend needs Cocoa")
}
