// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package x11shm

import (
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"

	"github.com/softframe/softframe/internal/pix"
)

// Core-protocol PutImage requests carry at most 2^18 4-byte units; stay a
// little under the fixed request header.
const (
	xPutImageReqSizeMax   = (1 << 16) * 4
	xPutImageReqSizeFixed = 28
	xPutImageReqDataSize  = xPutImageReqSizeMax - xPutImageReqSizeFixed
)

type surfaceImpl struct {
	c  *contextImpl
	xw xproto.Window
	xg xproto.Gcontext

	width, height int

	// SHM path: the pixel slice aliases the attached segment.
	seg  shm.Seg
	addr []byte

	// Both paths expose the buffer through px. On the fallback path px is
	// plain Go memory.
	px []uint32
}

func (s *surfaceImpl) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	if err := checkSize(width, height); err != nil {
		return err
	}

	if !s.c.shmAvail {
		s.px = make([]uint32, width*height)
		s.width, s.height = width, height
		return nil
	}

	seg, addr, err := s.attachSegment(4 * width * height)
	if err != nil {
		return err
	}

	// The new segment is fully negotiated; only now let go of the old one.
	s.detachSegment()
	s.seg, s.addr = seg, addr
	s.px = pix.Words(addr)[:width*height]
	s.width, s.height = width, height
	return nil
}

// attachSegment builds a complete new shared segment of bufLen bytes: a
// System V segment mapped locally and attached server-side. On any error
// every partially acquired resource is released before returning.
func (s *surfaceImpl) attachSegment(bufLen int) (shm.Seg, []byte, error) {
	shmid, err := unix.SysvShmGet(unix.IPC_PRIVATE, bufLen, unix.IPC_CREAT|0o600)
	if err != nil {
		return 0, nil, xerrors.Errorf("x11shm: shmget %d bytes: %w", bufLen, err)
	}
	addr, err := unix.SysvShmAttach(shmid, 0, 0)
	if err != nil {
		unix.SysvShmCtl(shmid, unix.IPC_RMID, nil)
		return 0, nil, xerrors.Errorf("x11shm: shmat: %w", err)
	}
	// Mark the id for removal now; the mapping and the server's attachment
	// keep the segment alive, and nothing can leak it after this point.
	if _, err := unix.SysvShmCtl(shmid, unix.IPC_RMID, nil); err != nil {
		unix.SysvShmDetach(addr)
		return 0, nil, xerrors.Errorf("x11shm: shmctl IPC_RMID: %w", err)
	}

	seg, err := shm.NewSegId(s.c.xc)
	if err != nil {
		unix.SysvShmDetach(addr)
		return 0, nil, xerrors.Errorf("x11shm: shm.NewSegId: %w", err)
	}
	// readOnly=false: the server never writes it, but SHM pixmap rules want
	// a writable attach.
	if err := shm.AttachChecked(s.c.xc, seg, uint32(shmid), false).Check(); err != nil {
		unix.SysvShmDetach(addr)
		return 0, nil, xerrors.Errorf("x11shm: shm.Attach: %w", err)
	}
	return seg, addr[:bufLen:bufLen], nil
}

func (s *surfaceImpl) detachSegment() {
	if s.addr == nil {
		return
	}
	shm.Detach(s.c.xc, s.seg)
	unix.SysvShmDetach(s.addr)
	s.seg, s.addr = 0, nil
}

func (s *surfaceImpl) Pixels() []uint32 { return s.px }

func (s *surfaceImpl) Present() error {
	if s.c.shmAvail {
		err := shm.PutImageChecked(
			s.c.xc, xproto.Drawable(s.xw), s.xg,
			uint16(s.width), uint16(s.height), // TotalWidth, TotalHeight,
			0, 0, // SrcX, SrcY,
			uint16(s.width), uint16(s.height), // SrcWidth, SrcHeight,
			0, 0, // DstX, DstY,
			s.c.xsi.RootDepth, xproto.ImageFormatZPixmap,
			0, s.seg, 0, // no completion event, zero offset.
		).Check()
		if err != nil {
			return xerrors.Errorf("x11shm: shm.PutImage: %w", err)
		}
		return nil
	}
	return s.putImage()
}

// putImage uploads the fallback buffer in batches of whole rows, each small
// enough for one core-protocol request.
func (s *surfaceImpl) putImage() error {
	buf := pix.Bytes(s.px)
	rowLen := 4 * s.width
	rowsPerReq := xPutImageReqDataSize / rowLen
	if rowsPerReq == 0 {
		rowsPerReq = 1
	}

	for y := 0; y < s.height; y += rowsPerReq {
		rows := rowsPerReq
		if y+rows > s.height {
			rows = s.height - y
		}
		data := buf[y*rowLen : (y+rows)*rowLen]
		err := xproto.PutImageChecked(
			s.c.xc, xproto.ImageFormatZPixmap, xproto.Drawable(s.xw), s.xg,
			uint16(s.width), uint16(rows),
			0, int16(y),
			0, s.c.xsi.RootDepth, data,
		).Check()
		if err != nil {
			return xerrors.Errorf("x11shm: PutImage rows %d..%d: %w", y, y+rows, err)
		}
	}
	return nil
}

func (s *surfaceImpl) Fetch() ([]uint32, error) {
	const planeMask = 0xffffffff
	r, err := xproto.GetImage(
		s.c.xc, xproto.ImageFormatZPixmap, xproto.Drawable(s.xw),
		0, 0, uint16(s.width), uint16(s.height), planeMask,
	).Reply()
	if err != nil {
		return nil, xerrors.Errorf("x11shm: GetImage: %w", err)
	}
	if len(r.Data) < 4*s.width*s.height {
		return nil, xerrors.Errorf("x11shm: GetImage returned %d bytes, want %d", len(r.Data), 4*s.width*s.height)
	}

	out := make([]uint32, s.width*s.height)
	words := pix.Words(r.Data)
	for i := range out {
		// The top byte comes back as whatever the server's depth-24 padding
		// holds; the buffer contract says it is zero.
		out[i] = words[i] &^ 0xff000000
	}
	return out, nil
}

func (s *surfaceImpl) Release() {
	s.detachSegment()
	xproto.FreeGC(s.c.xc, s.xg)
	s.px = nil
	s.width, s.height = 0, 0
}
