// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin && cgo

// Package cg presents pixel buffers on macOS by wrapping each frame in a
// CGImage and installing it as the contents of the target view's backing
// CALayer. The bitmap info (alpha skipped in the first byte, 32-bit
// little-endian) makes Core Graphics read the buffer exactly as packed
// 0x00RRGGBB, so the public format survives bit-exactly.
package cg

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework QuartzCore

#import <Cocoa/Cocoa.h>
#import <QuartzCore/QuartzCore.h>

// sf_attach_layer makes the view layer-backed and returns its retained
// CALayer. AppKit wants view mutation on the main thread.
static void *sf_attach_layer(void *nsview) {
	NSView *view = (NSView *)nsview;
	__block CALayer *layer = nil;
	void (^work)(void) = ^{
		[view setWantsLayer:YES];
		layer = [[view layer] retain];
		layer.contentsGravity = kCAGravityTopLeft;
		layer.magnificationFilter = kCAFilterNearest;
	};
	if ([NSThread isMainThread]) {
		work();
	} else {
		dispatch_sync(dispatch_get_main_queue(), work);
	}
	return (void *)layer;
}

// sf_present copies width*height 32-bit pixels into a CGImage and swaps it
// into the layer inside a transaction with implicit animations disabled.
static int sf_present(void *calayer, void *data, int width, int height) {
	CALayer *layer = (CALayer *)calayer;
	CFDataRef cfdata = CFDataCreate(NULL, (const UInt8 *)data, (CFIndex)width * height * 4);
	if (cfdata == NULL) {
		return -1;
	}
	CGDataProviderRef provider = CGDataProviderCreateWithCFData(cfdata);
	CFRelease(cfdata);
	if (provider == NULL) {
		return -1;
	}
	CGColorSpaceRef space = CGColorSpaceCreateDeviceRGB();
	CGImageRef image = CGImageCreate(width, height, 8, 32, (size_t)width * 4, space,
		kCGImageAlphaNoneSkipFirst | kCGBitmapByteOrder32Little,
		provider, NULL, false, kCGRenderingIntentDefault);
	CGColorSpaceRelease(space);
	CGDataProviderRelease(provider);
	if (image == NULL) {
		return -1;
	}
	void (^work)(void) = ^{
		[CATransaction begin];
		[CATransaction setDisableActions:YES];
		layer.contents = (id)image;
		[CATransaction commit];
	};
	if ([NSThread isMainThread]) {
		work();
	} else {
		dispatch_sync(dispatch_get_main_queue(), work);
	}
	CGImageRelease(image);
	return 0;
}

static void sf_release_layer(void *calayer) {
	[(CALayer *)calayer release];
}
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/softframe/softframe/internal/backend"
)

type contextImpl struct{}

// NewContext returns the Core Graphics backend context. There is no
// display-level resource to negotiate on macOS.
func NewContext() (backend.Context, error) {
	return contextImpl{}, nil
}

func (contextImpl) NewSurface(win backend.Window) (backend.Surface, error) {
	if win.NSView == nil {
		return nil, errors.New("cg: nil NSView")
	}
	layer := C.sf_attach_layer(win.NSView)
	if layer == nil {
		return nil, errors.New("cg: view has no backing layer")
	}
	return &surfaceImpl{layer: layer}, nil
}

func (contextImpl) Release() {}

type surfaceImpl struct {
	layer unsafe.Pointer

	width, height int
	staging       []uint32
}

func (s *surfaceImpl) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	s.staging = make([]uint32, width*height)
	s.width, s.height = width, height
	return nil
}

func (s *surfaceImpl) Pixels() []uint32 { return s.staging }

func (s *surfaceImpl) Present() error {
	// CFDataCreate copies the pixels before this call returns, so handing C
	// the Go slice's memory for the duration of the call is fine.
	rc := C.sf_present(s.layer, unsafe.Pointer(&s.staging[0]), C.int(s.width), C.int(s.height))
	if rc != 0 {
		return errors.New("cg: building CGImage failed")
	}
	return nil
}

func (s *surfaceImpl) Fetch() ([]uint32, error) {
	return nil, backend.ErrFetchUnsupported
}

func (s *surfaceImpl) Release() {
	if s.layer != nil {
		C.sf_release_layer(s.layer)
		s.layer = nil
	}
	s.staging = nil
	s.width, s.height = 0, 0
}
