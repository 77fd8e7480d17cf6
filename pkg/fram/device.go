package fram

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mash-protocol/fram-go/pkg/bus"
	"github.com/mash-protocol/fram-go/pkg/log"
)

// State is the lifecycle state of a device handle.
type State uint8

const (
	// StateUninitialized means no transport is bound.
	StateUninitialized State = iota
	// StateReady means the handle accepts operations.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}

// Device is a handle to one FRAM device on a two-wire bus.
type Device struct {
	cfg Config
	id  string

	ready     atomic.Bool
	transport bus.Transport
	async     bus.AsyncTransmitter

	// Scratch buffers. Only touched while holding locker when exclusive.
	tx []byte
	rx []byte

	// Device cursor as last left by an addressed or sequential access.
	cursor      uint32
	cursorValid bool

	locker Locker
	clock  Clock
	tracer log.Logger
	logger *slog.Logger
}

// Option configures a Device.
type Option func(*Device)

// WithLocker sets the exclusive-access lock used when Config.Exclusive is set.
func WithLocker(l Locker) Option {
	return func(d *Device) { d.locker = l }
}

// WithClock sets the time source for readiness deadlines.
func WithClock(c Clock) Option {
	return func(d *Device) { d.clock = c }
}

// WithTracer sets the bus trace logger.
func WithTracer(l log.Logger) Option {
	return func(d *Device) { d.tracer = l }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) { d.logger = l }
}

// WithHandleID overrides the generated handle ID used in traces.
func WithHandleID(id string) Option {
	return func(d *Device) { d.id = id }
}

// New creates an uninitialized device handle.
func New(cfg Config, opts ...Option) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Device{
		cfg: cfg,
		id:  uuid.New().String(),
		tx:  make([]byte, cfg.TxBufferSize),
		rx:  make([]byte, cfg.RxBufferSize),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.clock == nil {
		d.clock = SystemClock{}
	}
	if d.tracer == nil {
		d.tracer = log.NoopLogger{}
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Exclusive && d.locker == nil {
		d.locker = NewSemaphoreLock(cfg.Timeout)
	}
	if !cfg.Exclusive {
		d.locker = nil
	}

	return d, nil
}

// Config returns the handle's configuration.
func (d *Device) Config() Config {
	return d.cfg
}

// ID returns the handle ID used in traces.
func (d *Device) ID() string {
	return d.id
}

// State returns the current lifecycle state.
func (d *Device) State() State {
	if d.ready.Load() {
		return StateReady
	}
	return StateUninitialized
}

// Size returns the device capacity in bytes.
func (d *Device) Size() int64 {
	return int64(d.cfg.Capacity())
}

// Init binds the transport and moves the handle to StateReady.
func (d *Device) Init(t bus.Transport) (err error) {
	if t == nil {
		return ErrNilTransport
	}
	if d.ready.Load() {
		return ErrAlreadyInitialized
	}
	if err := d.acquire(); err != nil {
		return err
	}
	defer d.release(&err)

	if d.ready.Load() {
		return ErrAlreadyInitialized
	}

	d.transport = t
	d.async, _ = t.(bus.AsyncTransmitter)
	d.cursorValid = false
	d.ready.Store(true)

	d.logger.Debug("fram: device ready", "handle_id", d.id, "device", d.cfg.Name,
		"capacity", d.cfg.Capacity(), "interrupt", d.cfg.Interrupt, "async", d.async != nil)
	d.traceState(StateUninitialized, StateReady)
	return nil
}

// Deinit unbinds the transport. Subsequent operations fail with
// ErrNotInitialized until Init is called again.
func (d *Device) Deinit() (err error) {
	if !d.ready.Load() {
		return ErrNotInitialized
	}
	if err := d.acquire(); err != nil {
		return err
	}
	defer d.release(&err)

	if !d.ready.Load() {
		return ErrNotInitialized
	}

	d.ready.Store(false)
	d.transport = nil
	d.async = nil
	d.cursorValid = false

	d.logger.Debug("fram: device released", "handle_id", d.id)
	d.traceState(StateReady, StateUninitialized)
	return nil
}

// begin acquires exclusive access for an operation and confirms the handle
// is still ready once the lock is held.
func (d *Device) begin() error {
	if err := d.acquire(); err != nil {
		return err
	}
	if !d.ready.Load() {
		var err error
		d.release(&err)
		if err != nil {
			return err
		}
		return ErrNotInitialized
	}
	return nil
}

func (d *Device) acquire() error {
	if d.locker == nil {
		return nil
	}
	if err := d.locker.Lock(); err != nil {
		return fmt.Errorf("%w: %w", ErrMutex, err)
	}
	return nil
}

// release unlocks and reports a release failure through errp unless an
// earlier error is already set.
func (d *Device) release(errp *error) {
	if d.locker == nil {
		return
	}
	if err := d.locker.Unlock(); err != nil && *errp == nil {
		*errp = fmt.Errorf("%w: release: %w", ErrMutex, err)
	}
}

// fail records a failed operation and returns err unchanged.
func (d *Device) fail(op string, addr uint32, err error) error {
	if err == nil {
		return nil
	}
	d.logger.Debug("fram: operation failed", "handle_id", d.id, "op", op, "address", addr, "error", err)
	d.tracer.Log(log.Event{
		Timestamp: d.clock.Now(),
		HandleID:  d.id,
		Kind:      log.KindError,
		Device:    d.cfg.Name,
		Error: &log.ErrorEventData{
			Operation: op,
			Address:   addr,
			Message:   err.Error(),
		},
	})
	return err
}

func (d *Device) traceState(from, to State) {
	d.tracer.Log(log.Event{
		Timestamp: d.clock.Now(),
		HandleID:  d.id,
		Kind:      log.KindState,
		Device:    d.cfg.Name,
		StateChange: &log.StateChangeEvent{
			OldState: from.String(),
			NewState: to.String(),
		},
	})
}
