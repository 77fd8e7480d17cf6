package fram

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/mash-protocol/fram-go/pkg/log"
)

// Operation names used in traces and logs.
const (
	opWrite    = "write"
	opRead     = "read"
	opSeek     = "seek"
	opReadNext = "read_next"
	opFill     = "fill"
	opDump     = "dump"
	opReadAt   = "read_at"
	opWriteAt  = "write_at"
)

// Write stores data at addr in a single bus transaction.
//
// data must fit the transmit buffer (TxBufferSize-1 bytes) and the device.
func (d *Device) Write(addr uint32, data []byte) (err error) {
	if err := d.checkTransfer(addr, len(data), d.cfg.TxBufferSize-1); err != nil {
		return d.fail(opWrite, addr, err)
	}
	if err := d.begin(); err != nil {
		return d.fail(opWrite, addr, err)
	}
	defer d.release(&err)

	return d.fail(opWrite, addr, d.write(addr, data))
}

// Read fills out with the bytes starting at addr, using an address-set
// transaction followed by a receive.
//
// out must fit the receive buffer (RxBufferSize bytes) and the device.
func (d *Device) Read(addr uint32, out []byte) (err error) {
	if err := d.checkTransfer(addr, len(out), d.cfg.RxBufferSize); err != nil {
		return d.fail(opRead, addr, err)
	}
	if err := d.begin(); err != nil {
		return d.fail(opRead, addr, err)
	}
	defer d.release(&err)

	return d.fail(opRead, addr, d.read(addr, out))
}

// Seek latches the device cursor at addr without transferring data.
func (d *Device) Seek(addr uint32) (err error) {
	if err := d.checkTransfer(addr, 1, 1); err != nil {
		return d.fail(opSeek, addr, err)
	}
	if err := d.begin(); err != nil {
		return d.fail(opSeek, addr, err)
	}
	defer d.release(&err)

	return d.fail(opSeek, addr, d.seek(addr))
}

// ReadNext reads len(out) bytes from the device cursor without sending an
// address. The cursor must have been set by a previous Seek, Read or Write.
func (d *Device) ReadNext(out []byte) (err error) {
	if !d.ready.Load() {
		return d.fail(opReadNext, 0, ErrNotInitialized)
	}
	if len(out) == 0 || len(out) > d.cfg.RxBufferSize {
		return d.fail(opReadNext, 0, fmt.Errorf("%w: %d bytes, receive buffer holds %d",
			ErrInvalidLength, len(out), d.cfg.RxBufferSize))
	}
	if err := d.begin(); err != nil {
		return d.fail(opReadNext, 0, err)
	}
	defer d.release(&err)

	if !d.cursorValid {
		return d.fail(opReadNext, 0, ErrCursorUnknown)
	}
	at := d.cursor
	return d.fail(opReadNext, at, d.readNext(out))
}

// Cursor returns the tracked device cursor and whether it is known. In
// exclusive mode it takes the lock; if the lock cannot be acquired the
// cursor is reported unknown. Without exclusive mode the result is a
// snapshot only valid for a single caller.
func (d *Device) Cursor() (uint32, bool) {
	if err := d.acquire(); err != nil {
		return 0, false
	}
	addr, ok := d.cursor, d.cursorValid

	var err error
	d.release(&err)
	if err != nil {
		return 0, false
	}
	return addr, ok
}

// Write8 stores one byte at addr.
func (d *Device) Write8(addr uint32, v uint8) error {
	return d.Write(addr, []byte{v})
}

// Write16 stores v big-endian at addr.
func (d *Device) Write16(addr uint32, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return d.Write(addr, b[:])
}

// Write32 stores v big-endian at addr.
func (d *Device) Write32(addr uint32, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return d.Write(addr, b[:])
}

// Read8 reads one byte at addr.
func (d *Device) Read8(addr uint32) (uint8, error) {
	var b [1]byte
	if err := d.Read(addr, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Read16 reads a big-endian uint16 at addr.
func (d *Device) Read16(addr uint32) (uint16, error) {
	var b [2]byte
	if err := d.Read(addr, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// Read32 reads a big-endian uint32 at addr.
func (d *Device) Read32(addr uint32) (uint32, error) {
	var b [4]byte
	if err := d.Read(addr, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// checkTransfer validates a request before any lock or bus activity.
func (d *Device) checkTransfer(addr uint32, n, limit int) error {
	if !d.ready.Load() {
		return ErrNotInitialized
	}
	if err := d.cfg.checkRange(addr, n); err != nil {
		return err
	}
	if n > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrInvalidLength, n, limit)
	}
	return nil
}

// write issues one transaction carrying the row offset and data. The
// caller holds exclusive access and has validated the request.
func (d *Device) write(addr uint32, data []byte) error {
	loc := d.cfg.locate(addr)

	if err := d.waitReady(); err != nil {
		return err
	}

	d.tx[0] = loc.Row
	n := copy(d.tx[1:], data)
	frame := d.tx[:n+1]

	if err := d.transmit(d.cfg.BusAddress(AccessWrite, loc.Page), loc, frame, true); err != nil {
		return err
	}
	d.setCursor(d.cfg.advance(addr, n))
	return nil
}

// read sets the cursor to addr and receives len(out) bytes.
func (d *Device) read(addr uint32, out []byte) error {
	loc := d.cfg.locate(addr)

	if err := d.seek(addr); err != nil {
		return err
	}

	buf := d.rx[:len(out)]
	if err := d.receive(d.cfg.BusAddress(AccessRead, loc.Page), loc, buf, false); err != nil {
		return err
	}
	copy(out, buf)
	d.setCursor(d.cfg.advance(addr, len(out)))
	return nil
}

// seek issues the address-set transaction for addr.
func (d *Device) seek(addr uint32) error {
	loc := d.cfg.locate(addr)

	if err := d.waitReady(); err != nil {
		return err
	}

	d.tx[0] = loc.Row
	if err := d.transmit(d.cfg.BusAddress(AccessWrite, loc.Page), loc, d.tx[:1], false); err != nil {
		return err
	}
	d.setCursor(addr)
	return nil
}

// readNext receives from the tracked cursor.
func (d *Device) readNext(out []byte) error {
	loc := d.cfg.locate(d.cursor)

	if err := d.waitReady(); err != nil {
		return err
	}

	buf := d.rx[:len(out)]
	if err := d.receive(d.cfg.BusAddress(AccessRead, loc.Page), loc, buf, true); err != nil {
		return err
	}
	copy(out, buf)
	d.setCursor(d.cfg.advance(d.cursor, len(out)))
	return nil
}

func (d *Device) setCursor(addr uint32) {
	d.cursor = addr
	d.cursorValid = true
}

// waitReady polls the transport in interrupt mode until it reports ready
// or the deadline passes.
func (d *Device) waitReady() error {
	if !d.cfg.Interrupt {
		return nil
	}

	deadline := d.clock.Now().Add(d.cfg.Timeout)
	for !d.transport.IsReady() {
		if d.clock.Now().After(deadline) {
			d.cursorValid = false
			return fmt.Errorf("%w: not ready after %v", ErrTimeout, d.cfg.Timeout)
		}
		d.clock.Sleep(d.cfg.PollInterval)
	}
	return nil
}

func (d *Device) transmit(busAddr uint8, loc Location, frame []byte, allowAsync bool) error {
	async := allowAsync && d.cfg.Interrupt && d.async != nil

	start := d.clock.Now()
	var err error
	if async {
		err = d.async.TransmitAsync(busAddr, frame)
	} else {
		err = d.transport.Transmit(busAddr, frame, d.cfg.Timeout)
	}
	d.traceTransfer(log.DirectionOut, busAddr, loc, frame, len(frame), false, async, start)

	if err != nil {
		d.cursorValid = false
		return fmt.Errorf("%w: bus address %#02x: %w", ErrTransmit, busAddr, err)
	}
	return nil
}

func (d *Device) receive(busAddr uint8, loc Location, buf []byte, sequential bool) error {
	start := d.clock.Now()
	if err := d.transport.Receive(busAddr, buf, d.cfg.Timeout); err != nil {
		d.traceTransfer(log.DirectionIn, busAddr, loc, nil, len(buf), sequential, false, start)
		d.cursorValid = false
		return fmt.Errorf("%w: bus address %#02x: %w", ErrReceive, busAddr, err)
	}
	d.traceTransfer(log.DirectionIn, busAddr, loc, buf, len(buf), sequential, false, start)
	return nil
}

func (d *Device) traceTransfer(dir log.Direction, busAddr uint8, loc Location, data []byte, size int,
	sequential, async bool, start time.Time) {
	now := d.clock.Now()
	payload, truncated := log.TruncateData(data)
	d.tracer.Log(log.Event{
		Timestamp: now,
		HandleID:  d.id,
		Direction: dir,
		Kind:      log.KindTransfer,
		Device:    d.cfg.Name,
		Transfer: &log.TransferEvent{
			BusAddress: busAddr,
			Page:       loc.Page,
			Row:        loc.Row,
			Size:       size,
			Data:       payload,
			Truncated:  truncated,
			Sequential: sequential,
			Async:      async,
			Duration:   now.Sub(start),
		},
	})
}
