// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softframe

import (
	"errors"
	"fmt"
)

// Every failure surfaces synchronously as an error wrapping exactly one of
// the sentinels below (match with errors.Is) plus the platform cause where
// one exists. Nothing is retried internally, and no failure leaves an object
// in a half-changed state: a failed Resize rolls back to the previous size,
// and a failed Present does not touch the buffer.
var (
	// ErrUnsupportedPlatform: the handle's platform tag has no backend
	// compiled into this binary. Fatal to that Context.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrPlatformMismatch: the window handle's tag differs from the
	// Context's. Programming error; no native resource was touched.
	ErrPlatformMismatch = errors.New("window platform does not match context")

	// ErrContextInit: the display connection could not be established or is
	// missing a required capability. Fatal to that Context.
	ErrContextInit = errors.New("context initialization failed")

	// ErrSurfaceInit: the window could not be bound. Fatal to that Surface.
	ErrSurfaceInit = errors.New("surface initialization failed")

	// ErrInvalidDimensions: a zero or out-of-range width or height was
	// passed to Resize. Caller bug; prior sizing is unchanged.
	ErrInvalidDimensions = errors.New("invalid surface dimensions")

	// ErrNotSized: Buffer, Present or Fetch was called before the first
	// successful Resize. Caller bug; the surface is unaffected.
	ErrNotSized = errors.New("surface has not been sized")

	// ErrResize: the backend failed to negotiate resources for the new
	// size. The surface keeps its previous size and buffer.
	ErrResize = errors.New("resize failed")

	// ErrBufferHeld: a Buffer guard is still outstanding. Release or
	// present it before resizing, presenting, fetching or taking another
	// guard.
	ErrBufferHeld = errors.New("buffer guard still held")

	// ErrPresent: the native present call failed. The surface remains
	// valid and sized; presenting again or resizing may succeed.
	ErrPresent = errors.New("present failed")

	// ErrFetch: the native readback call failed. The surface remains
	// valid and sized.
	ErrFetch = errors.New("fetch failed")

	// ErrFetchUnsupported: this backend cannot read presented pixels back.
	ErrFetchUnsupported = errors.New("fetch not supported by this backend")
)

// failf attaches a taxonomy sentinel and a platform cause to one error.
// Both wrapped errors stay visible to errors.Is.
func failf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("softframe: %w: %w", sentinel, fmt.Errorf(format, args...))
}

// fail attaches only a sentinel with a fixed detail message.
func fail(sentinel error, detail string) error {
	return fmt.Errorf("softframe: %w: %s", sentinel, detail)
}
