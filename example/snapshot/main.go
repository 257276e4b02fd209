// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Snapshot renders a test card through the offscreen backend and writes the
// presented frame to snapshot.png. It runs on any platform and needs no
// window system.
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/softframe/softframe"
)

const width, height = 512, 320

func main() {
	ctx, err := softframe.NewContext(softframe.OffscreenDisplayHandle())
	if err != nil {
		log.Fatalf("context: %v", err)
	}
	defer ctx.Release()

	surf, err := ctx.NewSurface(softframe.OffscreenWindowHandle(1))
	if err != nil {
		log.Fatalf("surface: %v", err)
	}
	defer surf.Release()

	if err := surf.Resize(width, height); err != nil {
		log.Fatalf("resize: %v", err)
	}

	buf, err := surf.Buffer()
	if err != nil {
		log.Fatalf("buffer: %v", err)
	}
	// Paint a small card and let x/image/draw scale it up into the surface
	// buffer through the draw.Image adapter.
	xdraw.ApproxBiLinear.Scale(buf.Image(), image.Rect(0, 0, width, height), testCard(), image.Rect(0, 0, 64, 40), xdraw.Src, nil)
	if err := buf.Present(); err != nil {
		log.Fatalf("present: %v", err)
	}

	px, err := surf.Fetch()
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, p := range px {
		out.Pix[4*i+0] = uint8(p >> 16)
		out.Pix[4*i+1] = uint8(p >> 8)
		out.Pix[4*i+2] = uint8(p)
		out.Pix[4*i+3] = 0xff
	}

	f, err := os.Create("snapshot.png")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		log.Fatalf("encode: %v", err)
	}
	log.Print("wrote snapshot.png")
}

func testCard() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, 64, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 64; x++ {
			switch {
			case x%16 == 0 || y%16 == 0:
				m.SetRGBA(x, y, color.RGBA{0xff, 0xff, 0xff, 0xff})
			default:
				m.SetRGBA(x, y, color.RGBA{uint8(4 * x), uint8(6 * y), 0x40, 0xff})
			}
		}
	}
	return m
}
