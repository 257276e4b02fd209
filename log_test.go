// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe_test

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/softframe/softframe"
)

func TestSetLogger(t *testing.T) {
	var lines []string
	softframe.SetLogger(funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 2}))
	defer softframe.SetLogger(logr.Logger{})

	ctx, err := softframe.NewContext(softframe.OffscreenDisplayHandle())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	defer ctx.Release()

	found := false
	for _, l := range lines {
		if strings.Contains(l, "context created") && strings.Contains(l, "offscreen") {
			found = true
		}
	}
	if !found {
		t.Errorf("no lifecycle log line captured, got %q", lines)
	}
}
