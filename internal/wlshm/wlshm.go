// Copyright 2026 The Softframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && cgo

// Package wlshm presents pixel buffers to Wayland surfaces through wl_shm
// pools. It binds libwayland-client directly; only the tiny slice of the
// protocol needed for shared-memory presentation is used.
//
// All softframe proxies live on a private event queue so that dispatching
// buffer-release events never delivers the collaborator's own events behind
// its back.
package wlshm

/*
#cgo pkg-config: wayland-client
#include <stdlib.h>
#include <string.h>
#include <wayland-client.h>

struct sf_globals {
	struct wl_shm *shm;
};

static void sf_registry_global(void *data, struct wl_registry *reg,
		uint32_t name, const char *iface, uint32_t version) {
	struct sf_globals *g = data;
	if (strcmp(iface, wl_shm_interface.name) == 0) {
		g->shm = wl_registry_bind(reg, name, &wl_shm_interface, 1);
	}
}

static void sf_registry_global_remove(void *data, struct wl_registry *reg, uint32_t name) {}

static const struct wl_registry_listener sf_registry_listener = {
	.global = sf_registry_global,
	.global_remove = sf_registry_global_remove,
};

// sf_bind_shm binds wl_shm from the registry, round-tripping on the private
// queue. Returns NULL if the compositor does not advertise wl_shm.
static struct wl_shm *sf_bind_shm(struct wl_display *dpy, struct wl_event_queue *queue) {
	struct sf_globals g = {0};
	struct wl_registry *reg = wl_display_get_registry(dpy);
	if (reg == NULL) {
		return NULL;
	}
	wl_proxy_set_queue((struct wl_proxy *)reg, queue);
	wl_registry_add_listener(reg, &sf_registry_listener, &g);
	wl_display_roundtrip_queue(dpy, queue);
	wl_registry_destroy(reg);
	return g.shm;
}

static void sf_buffer_release(void *data, struct wl_buffer *b) {
	*(int *)data = 0;
}

static const struct wl_buffer_listener sf_buffer_listener = {
	.release = sf_buffer_release,
};

static void sf_buffer_track(struct wl_buffer *b, int *busy) {
	wl_buffer_add_listener(b, &sf_buffer_listener, busy);
}
*/
import "C"

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"

	"github.com/softframe/softframe/internal/backend"
	"github.com/softframe/softframe/internal/pix"
)

// Two slots rotate underneath the caller's single-buffer mental model, so a
// frame the compositor is still reading is never overwritten.
const slots = 2

type contextImpl struct {
	dpy   *C.struct_wl_display
	queue *C.struct_wl_event_queue
	shm   *C.struct_wl_shm
}

// NewContext adopts a connected *wl_display. The display stays owned by the
// caller and is never disconnected here. Binding wl_shm is the one-time
// capability negotiation; a compositor without it fails now, not at the
// first present.
func NewContext(display unsafe.Pointer) (backend.Context, error) {
	if display == nil {
		return nil, errors.New("wlshm: nil wl_display")
	}
	dpy := (*C.struct_wl_display)(display)
	queue := C.wl_display_create_queue(dpy)
	if queue == nil {
		return nil, errors.New("wlshm: wl_display_create_queue failed")
	}
	shm := C.sf_bind_shm(dpy, queue)
	if shm == nil {
		C.wl_event_queue_destroy(queue)
		return nil, errors.New("wlshm: compositor does not advertise wl_shm")
	}
	return &contextImpl{dpy: dpy, queue: queue, shm: shm}, nil
}

func (c *contextImpl) NewSurface(win backend.Window) (backend.Surface, error) {
	if win.WlSurface == nil {
		return nil, errors.New("wlshm: nil wl_surface")
	}
	return &surfaceImpl{
		c:    c,
		wsur: (*C.struct_wl_surface)(win.WlSurface),
	}, nil
}

func (c *contextImpl) Release() {
	C.wl_shm_destroy(c.shm)
	C.wl_event_queue_destroy(c.queue)
	c.shm, c.queue = nil, nil
}

// pool is one sized allocation: a sealed memfd mapped locally and shared
// with the compositor, carved into `slots` wl_buffers.
type pool struct {
	fd   int
	data []byte
	hnd  *C.struct_wl_shm_pool
	bufs [slots]*C.struct_wl_buffer

	// busy flags live in C memory because the compositor-driven release
	// listener retains a pointer to them.
	busy *C.int
}

func (p *pool) slot(i, stride, height int) []uint32 {
	off := i * stride * height
	return pix.Words(p.data[off : off+stride*height])
}

func (p *pool) destroy() {
	for _, b := range p.bufs {
		if b != nil {
			C.wl_buffer_destroy(b)
		}
	}
	if p.hnd != nil {
		C.wl_shm_pool_destroy(p.hnd)
	}
	if p.data != nil {
		unix.Munmap(p.data)
	}
	if p.fd >= 0 {
		unix.Close(p.fd)
	}
	if p.busy != nil {
		C.free(unsafe.Pointer(p.busy))
	}
}

type surfaceImpl struct {
	c    *contextImpl
	wsur *C.struct_wl_surface

	width, height int

	// The caller writes into staging; Present copies it into a free slot.
	staging []uint32
	pool    *pool
}

func (s *surfaceImpl) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	p, err := s.c.newPool(width, height)
	if err != nil {
		return err
	}
	if s.pool != nil {
		s.pool.destroy()
	}
	s.pool = p
	s.staging = make([]uint32, width*height)
	s.width, s.height = width, height
	return nil
}

// newPool negotiates a complete new pool for width×height frames. On any
// error everything acquired so far is torn down before returning.
func (c *contextImpl) newPool(width, height int) (*pool, error) {
	stride := 4 * width
	size := slots * stride * height

	p := &pool{fd: -1}
	fd, err := unix.MemfdCreate("softframe-wlshm", unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		return nil, xerrors.Errorf("wlshm: memfd_create: %w", err)
	}
	p.fd = fd
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		p.destroy()
		return nil, xerrors.Errorf("wlshm: ftruncate to %d bytes: %w", size, err)
	}
	// Seal shrinking: a pool whose backing file shrinks under the
	// compositor kills the client.
	unix.FcntlInt(uintptr(fd), unix.F_ADD_SEALS, unix.F_SEAL_SHRINK)

	p.data, err = unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		p.destroy()
		return nil, xerrors.Errorf("wlshm: mmap %d bytes: %w", size, err)
	}

	p.hnd = C.wl_shm_create_pool(c.shm, C.int32_t(fd), C.int32_t(size))
	if p.hnd == nil {
		p.destroy()
		return nil, errors.New("wlshm: wl_shm_create_pool failed")
	}

	p.busy = (*C.int)(C.calloc(slots, C.size_t(unsafe.Sizeof(C.int(0)))))
	flags := unsafe.Slice(p.busy, slots)
	for i := 0; i < slots; i++ {
		buf := C.wl_shm_pool_create_buffer(p.hnd,
			C.int32_t(i*stride*height), C.int32_t(width), C.int32_t(height),
			C.int32_t(stride), C.WL_SHM_FORMAT_XRGB8888)
		if buf == nil {
			p.destroy()
			return nil, errors.New("wlshm: wl_shm_pool_create_buffer failed")
		}
		p.bufs[i] = buf
		C.sf_buffer_track(buf, &flags[i])
	}
	return p, nil
}

func (s *surfaceImpl) Pixels() []uint32 { return s.staging }

func (s *surfaceImpl) Present() error {
	i, err := s.freeSlot()
	if err != nil {
		return err
	}
	stride := 4 * s.width
	copy(s.pool.slot(i, stride, s.height), s.staging)

	flags := unsafe.Slice(s.pool.busy, slots)
	flags[i] = 1
	C.wl_surface_attach(s.wsur, s.pool.bufs[i], 0, 0)
	C.wl_surface_damage(s.wsur, 0, 0, C.int32_t(s.width), C.int32_t(s.height))
	C.wl_surface_commit(s.wsur)
	if n := C.wl_display_flush(s.c.dpy); n < 0 {
		return errors.New("wlshm: wl_display_flush failed")
	}
	return nil
}

// freeSlot returns a slot the compositor has released, round-tripping on the
// private queue while both are still held.
func (s *surfaceImpl) freeSlot() (int, error) {
	flags := unsafe.Slice(s.pool.busy, slots)
	for attempt := 0; ; attempt++ {
		C.wl_display_dispatch_queue_pending(s.c.dpy, s.c.queue)
		for i := 0; i < slots; i++ {
			if flags[i] == 0 {
				return i, nil
			}
		}
		if attempt >= 64 {
			return 0, errors.New("wlshm: compositor is not releasing buffers")
		}
		if n := C.wl_display_roundtrip_queue(s.c.dpy, s.c.queue); n < 0 {
			return 0, errors.New("wlshm: wl_display_roundtrip_queue failed")
		}
	}
}

func (s *surfaceImpl) Fetch() ([]uint32, error) {
	return nil, backend.ErrFetchUnsupported
}

func (s *surfaceImpl) Release() {
	if s.pool != nil {
		// Detach our buffer from the surface so the compositor drops its
		// reference before the pool goes away.
		C.wl_surface_attach(s.wsur, nil, 0, 0)
		C.wl_surface_commit(s.wsur)
		C.wl_display_flush(s.c.dpy)
		s.pool.destroy()
		s.pool = nil
	}
	s.staging = nil
	s.width, s.height = 0, 0
}
