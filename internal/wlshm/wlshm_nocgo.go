// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && !cgo

package wlshm

import (
	"errors"
	"unsafe"

	"github.com/softframe/softframe/internal/backend"
)

// NewContext in a cgo-free build cannot reach libwayland-client.
func NewContext(display unsafe.Pointer) (backend.Context, error) {
	return nil, errors.New("wlshm: built without cgo; the Wayland backend needs libwayland-client")
}
