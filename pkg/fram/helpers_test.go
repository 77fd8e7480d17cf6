package fram_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/fram-go/pkg/bus"
	"github.com/mash-protocol/fram-go/pkg/bus/sim"
	"github.com/mash-protocol/fram-go/pkg/fram"
	"github.com/mash-protocol/fram-go/pkg/log"
)

// newSimDevice returns a ready device bound to a fresh simulated chip.
func newSimDevice(t *testing.T, cfg fram.Config, opts ...fram.Option) (*fram.Device, *sim.Chip) {
	t.Helper()

	chip, err := sim.New(sim.Geometry{
		Address:  cfg.WriteAddress,
		Pages:    cfg.Pages,
		PageSize: cfg.PageSize,
		PageWrap: cfg.PageWrap,
	})
	require.NoError(t, err)

	dev, err := fram.New(cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, dev.Init(chip))
	return dev, chip
}

// fakeClock advances only when slept on.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps++
}

// traceRecorder collects trace events.
type traceRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *traceRecorder) Log(e log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *traceRecorder) byKind(k log.Kind) []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []log.Event
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// frame is one transaction seen by recordingTransport.
type frame struct {
	addr uint8
	data []byte
}

// recordingTransport wraps a transport and records every transmit.
type recordingTransport struct {
	bus.Transport

	mu        sync.Mutex
	transmits []frame
}

func (r *recordingTransport) Transmit(addr uint8, data []byte, timeout time.Duration) error {
	r.mu.Lock()
	r.transmits = append(r.transmits, frame{addr: addr, data: append([]byte(nil), data...)})
	r.mu.Unlock()
	return r.Transport.Transmit(addr, data, timeout)
}

// corruptingTransport flips every bit of the byte received at corruptAt
// (counted across all receives).
type corruptingTransport struct {
	bus.Transport
	corruptAt int
	seen      int
}

func (c *corruptingTransport) Receive(addr uint8, out []byte, timeout time.Duration) error {
	if err := c.Transport.Receive(addr, out, timeout); err != nil {
		return err
	}
	for i := range out {
		if c.seen == c.corruptAt {
			out[i] ^= 0xFF
		}
		c.seen++
	}
	return nil
}
