// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import "github.com/softframe/softframe/internal/offscreen"

// FailNextResize and FailNextFetch reach through to the offscreen backend's
// failure hooks so the external tests can exercise backend-error mapping.
// They are only valid on offscreen-backed surfaces.

func FailNextResize(s *Surface, cause error) { offscreen.FailNextResize(s.b, cause) }

func FailNextFetch(s *Surface, cause error) { offscreen.FailNextFetch(s.b, cause) }
