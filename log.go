// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

// loggerPtr stores the active logger. Accessed atomically so SetLogger may
// race with logging from any goroutine.
var loggerPtr atomic.Pointer[logr.Logger]

func init() {
	l := logr.Discard()
	loggerPtr.Store(&l)
}

// SetLogger configures logging for softframe and its backends. By default
// softframe produces no log output. Levels follow logr convention:
// V(0) lifecycle events (context and surface creation, backend selection),
// V(1) per-resize detail, V(2) per-present detail.
//
// Pass the zero logr.Logger to restore the silent default.
func SetLogger(l logr.Logger) {
	if l.GetSink() == nil {
		l = logr.Discard()
	}
	loggerPtr.Store(&l)
}

func logger() logr.Logger {
	return *loggerPtr.Load()
}
