// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Gradient opens an X11 window the hard way, hands its raw ids to
// softframe, and keeps a gradient filling the window as it is resized.
// Press any key, or close the window, to quit.
package main

import (
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/softframe/softframe"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	conn, err := xgb.NewConn()
	if err != nil {
		log.Fatal().Err(err).Msg("connect to X server")
	}
	defer conn.Close()

	xw, err := createWindow(conn, 640, 480)
	if err != nil {
		log.Fatal().Err(err).Msg("create window")
	}

	ctx, err := softframe.NewContext(softframe.X11DisplayHandle(conn, 0))
	if err != nil {
		log.Fatal().Err(err).Msg("softframe context")
	}
	defer ctx.Release()

	surf, err := ctx.NewSurface(softframe.X11WindowHandle(xw))
	if err != nil {
		log.Fatal().Err(err).Msg("softframe surface")
	}
	defer surf.Release()

	wmDelete, err := deleteAtom(conn, xw)
	if err != nil {
		log.Fatal().Err(err).Msg("intern WM atoms")
	}

	render(&log, surf, 640, 480)

	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			log.Warn().Err(err).Msg("event error")
			continue
		}
		switch ev := ev.(type) {
		case xproto.ExposeEvent:
			// The last frame is still in the buffer; just push it again.
			if err := surf.Present(); err != nil {
				log.Warn().Err(err).Msg("re-present")
			}
		case xproto.ConfigureNotifyEvent:
			render(&log, surf, int(ev.Width), int(ev.Height))
		case xproto.KeyPressEvent:
			return
		case xproto.ClientMessageEvent:
			if len(ev.Data.Data32) > 0 && xproto.Atom(ev.Data.Data32[0]) == wmDelete {
				return
			}
		case xproto.DestroyNotifyEvent:
			return
		}
	}
}

func render(log *zerolog.Logger, surf *softframe.Surface, width, height int) {
	if err := surf.Resize(width, height); err != nil {
		log.Warn().Err(err).Int("width", width).Int("height", height).Msg("resize")
		return
	}
	buf, err := surf.Buffer()
	if err != nil {
		log.Warn().Err(err).Msg("buffer")
		return
	}
	px := buf.Pixels()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px[y*width+x] = softframe.RGB(uint8(255*x/width), uint8(255*y/height), 0x80)
		}
	}
	if err := buf.Present(); err != nil {
		log.Warn().Err(err).Msg("present")
	}
}

func createWindow(conn *xgb.Conn, width, height uint16) (xproto.Window, error) {
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	xw, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, xw, screen.Root,
		0, 0, width, height, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask,
		[]uint32{0 |
			xproto.EventMaskExposure |
			xproto.EventMaskStructureNotify |
			xproto.EventMaskKeyPress,
		},
	).Check()
	if err != nil {
		return 0, err
	}

	const title = "softframe gradient"
	xproto.ChangeProperty(conn, xproto.PropModeReplace, xw, xproto.AtomWmName,
		xproto.AtomString, 8, uint32(len(title)), []byte(title))
	if err := xproto.MapWindowChecked(conn, xw).Check(); err != nil {
		return 0, err
	}
	return xw, nil
}

// deleteAtom opts the window into WM_DELETE_WINDOW so closing it delivers a
// client message instead of killing the connection.
func deleteAtom(conn *xgb.Conn, xw xproto.Window) (xproto.Atom, error) {
	protocols, err := internAtom(conn, "WM_PROTOCOLS")
	if err != nil {
		return 0, err
	}
	wmDelete, err := internAtom(conn, "WM_DELETE_WINDOW")
	if err != nil {
		return 0, err
	}
	b := make([]byte, 4)
	b[0] = uint8(wmDelete >> 0)
	b[1] = uint8(wmDelete >> 8)
	b[2] = uint8(wmDelete >> 16)
	b[3] = uint8(wmDelete >> 24)
	xproto.ChangeProperty(conn, xproto.PropModeReplace, xw, protocols,
		xproto.AtomAtom, 32, 1, b)
	return wmDelete, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	r, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return r.Atom, nil
}
