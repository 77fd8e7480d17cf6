package sim

import (
	"fmt"
	"math/bits"
	"sync"
	"time"

	"github.com/mash-protocol/fram-go/pkg/bus"
)

// Geometry describes the simulated chip.
type Geometry struct {
	// Address is the 8-bit write address of page 0.
	Address uint8

	// Pages and PageSize are powers of two; Pages <= 8, PageSize <= 256.
	Pages    int
	PageSize int

	// PageWrap keeps the address latch inside the current page.
	PageWrap bool
}

// FM24CL16B is the geometry of a 16 Kbit FM24CL16B.
var FM24CL16B = Geometry{Address: 0xA0, Pages: 8, PageSize: 256}

// Op identifies the transport call a Fault is consulted for.
type Op uint8

const (
	OpTransmit Op = iota
	OpTransmitAsync
	OpReceive
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpTransmit:
		return "transmit"
	case OpTransmitAsync:
		return "transmit_async"
	case OpReceive:
		return "receive"
	default:
		return "unknown"
	}
}

// Fault is consulted before every transaction. A non-nil return fails the
// transaction without touching memory or the latch.
type Fault func(op Op, addr uint8) error

// Stats counts the transactions a chip has seen.
type Stats struct {
	Transmits      int
	AsyncTransmits int
	Receives       int
	Polls          int
	BytesWritten   int
	BytesRead      int
}

// Chip is an in-memory FRAM device. It implements bus.Transport and
// bus.AsyncTransmitter and is safe for concurrent use.
type Chip struct {
	mu sync.Mutex

	geo     Geometry
	rowBits uint

	// amend data only through put() and Poke()
	data []byte

	// the next address a transfer will access
	latch uint32

	// whether a page has been accessed since the last ClearAccess
	pageAccess []bool

	busyPolls int
	busy      int
	fault     Fault
	stats     Stats
	modified  bool
	closed    bool
}

// Option configures a Chip.
type Option func(*Chip)

// WithErased sets the value every cell holds before any write.
func WithErased(v uint8) Option {
	return func(c *Chip) {
		for i := range c.data {
			c.data[i] = v
		}
	}
}

// WithBusyPolls makes IsReady report false for the given number of polls
// after each TransmitAsync.
func WithBusyPolls(n int) Option {
	return func(c *Chip) { c.busyPolls = n }
}

// WithFault installs a fault hook.
func WithFault(f Fault) Option {
	return func(c *Chip) { c.fault = f }
}

// New creates a chip with every cell set to 0xFF.
func New(geo Geometry, opts ...Option) (*Chip, error) {
	if geo.Address&0x01 != 0 {
		return nil, fmt.Errorf("sim: address %#02x has the read bit set", geo.Address)
	}
	if geo.Pages <= 0 || geo.Pages > 8 || geo.Pages&(geo.Pages-1) != 0 {
		return nil, fmt.Errorf("sim: invalid page count %d", geo.Pages)
	}
	if geo.PageSize <= 0 || geo.PageSize > 256 || geo.PageSize&(geo.PageSize-1) != 0 {
		return nil, fmt.Errorf("sim: invalid page size %d", geo.PageSize)
	}

	c := &Chip{
		geo:        geo,
		rowBits:    uint(bits.TrailingZeros(uint(geo.PageSize))),
		data:       make([]byte, geo.Pages*geo.PageSize),
		pageAccess: make([]bool, geo.Pages),
	}
	for i := range c.data {
		c.data[i] = 0xff
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Geometry returns the chip geometry.
func (c *Chip) Geometry() Geometry {
	return c.geo
}

// Size returns the chip capacity in bytes.
func (c *Chip) Size() int {
	return len(c.data)
}

// Transmit implements bus.Transport. The first data byte sets the row of
// the address latch; the rest are written from there.
func (c *Chip) Transmit(addr uint8, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.transmit(OpTransmit, addr, data)
}

// TransmitAsync implements bus.AsyncTransmitter. Memory is updated
// immediately; the chip then reports busy for the configured poll count.
func (c *Chip) TransmitAsync(addr uint8, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.transmit(OpTransmitAsync, addr, data); err != nil {
		return err
	}
	c.busy = c.busyPolls
	return nil
}

// Receive implements bus.Transport. Bytes are read from the address latch.
// The page bits of addr are not consulted.
func (c *Chip) Receive(addr uint8, out []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(OpReceive, addr, true); err != nil {
		return err
	}

	c.stats.Receives++
	for i := range out {
		out[i] = c.get()
	}
	c.stats.BytesRead += len(out)
	return nil
}

// IsReady implements bus.Transport.
func (c *Chip) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Polls++
	if c.busy > 0 {
		c.busy--
		return false
	}
	return true
}

// Close makes every later transaction fail with bus.ErrClosed.
func (c *Chip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

// SetFault replaces the fault hook. A nil hook disables fault injection.
func (c *Chip) SetFault(f Fault) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fault = f
}

// Stats returns a copy of the transaction counters.
func (c *Chip) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

// Latch returns the internal address latch.
func (c *Chip) Latch() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.latch
}

// PageAccessed reports whether page has been read or written since the
// last ClearAccess.
func (c *Chip) PageAccessed(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 0 || page >= len(c.pageAccess) {
		return false
	}
	return c.pageAccess[page]
}

// ClearAccess resets the page access flags.
func (c *Chip) ClearAccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.pageAccess)
}

// Peek returns the byte at a logical address without touching the latch.
func (c *Chip) Peek(addr int) uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.data[addr]
}

// Poke sets the byte at a logical address without touching the latch.
func (c *Chip) Poke(addr int, v uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[addr] = v
	c.modified = true
}

// Bytes returns a copy of the chip memory.
func (c *Chip) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Modified reports whether memory changed since creation or the last
// image load or save.
func (c *Chip) Modified() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.modified
}

func (c *Chip) transmit(op Op, addr uint8, data []byte) error {
	if err := c.check(op, addr, false); err != nil {
		return err
	}

	if op == OpTransmitAsync {
		c.stats.AsyncTransmits++
	} else {
		c.stats.Transmits++
	}

	// An address-only transaction only checks for an acknowledge.
	if len(data) == 0 {
		return nil
	}

	page := uint32(addr>>1) & uint32(c.geo.Pages-1)
	c.latch = page<<c.rowBits | uint32(data[0])&uint32(c.geo.PageSize-1)

	for _, v := range data[1:] {
		c.put(v)
	}
	c.stats.BytesWritten += len(data) - 1
	return nil
}

// check validates the device select and direction bits of addr.
func (c *Chip) check(op Op, addr uint8, read bool) error {
	if c.closed {
		return bus.ErrClosed
	}
	if c.fault != nil {
		if err := c.fault(op, addr); err != nil {
			return err
		}
	}
	if c.busy > 0 {
		return bus.ErrBusy
	}

	pageBits := uint8(c.geo.Pages-1) << 1
	if addr&^(pageBits|0x01) != c.geo.Address {
		return fmt.Errorf("%w: %#02x", bus.ErrNack, addr)
	}
	if (addr&0x01 == 1) != read {
		return fmt.Errorf("%w: %#02x has the wrong direction for %s", bus.ErrNack, addr, op)
	}
	return nil
}

func (c *Chip) access() {
	c.pageAccess[c.latch>>c.rowBits] = true
}

func (c *Chip) put(v uint8) {
	c.access()
	c.data[c.latch] = v
	c.modified = true
	c.nextAddress()
}

func (c *Chip) get() uint8 {
	c.access()
	v := c.data[c.latch]
	c.nextAddress()
	return v
}

// nextAddress advances the latch, rolling over at the end of the page when
// PageWrap is set and at the end of the array otherwise.
func (c *Chip) nextAddress() {
	if c.geo.PageWrap {
		row := c.latch & uint32(c.geo.PageSize-1)
		c.latch = c.latch&^uint32(c.geo.PageSize-1) | (row+1)&uint32(c.geo.PageSize-1)
		return
	}
	c.latch = (c.latch + 1) % uint32(len(c.data))
}

// Compile-time interface satisfaction check.
var _ bus.AsyncTransport = (*Chip)(nil)
