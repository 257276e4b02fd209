// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package x11shm

import (
	"errors"
	"testing"

	"github.com/softframe/softframe/internal/backend"
)

func TestCheckSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"small", 640, 480, false},
		{"max side", maxShmSide, 1, false},
		{"side too wide", maxShmSide + 1, 1, true},
		{"side too tall", 1, maxShmSide + 1, true},
		{"segment too large", 16384, 16384, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSize(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkSize(%d, %d) = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, backend.ErrSizeOutOfRange) {
				t.Errorf("error %v does not wrap ErrSizeOutOfRange", err)
			}
		})
	}
}

func TestNewContextNilConn(t *testing.T) {
	if _, err := NewContext(nil, 0); err == nil {
		t.Fatal("NewContext(nil, 0) succeeded, want error")
	}
}
