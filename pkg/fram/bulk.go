package fram

import (
	"bytes"
	"fmt"
)

// Fill writes value to every byte of the device.
//
// Transactions are ChunkSize bytes and never cross a page boundary. Fill
// stops at the first failure; bytes already written stay written.
func (d *Device) Fill(value uint8) (err error) {
	if !d.ready.Load() {
		return d.fail(opFill, 0, ErrNotInitialized)
	}
	if err := d.begin(); err != nil {
		return d.fail(opFill, 0, err)
	}
	defer d.release(&err)

	pattern := bytes.Repeat([]byte{value}, d.cfg.ChunkSize)
	capacity := d.cfg.Capacity()

	for addr := 0; addr < capacity; {
		size := d.chunkAt(uint32(addr), capacity-addr)
		if err := d.write(uint32(addr), pattern[:size]); err != nil {
			return d.fail(opFill, uint32(addr), err)
		}
		addr += size
	}

	d.logger.Debug("fram: filled", "handle_id", d.id, "value", value, "bytes", capacity)
	return nil
}

// Reset is Fill under its older name.
func (d *Device) Reset(value uint8) error {
	return d.Fill(value)
}

// Dump writes a hex listing of the whole device to sink, one line per
// DumpBlockSize bytes:
//
//	0000: FF FF FF FF FF FF FF FF\r\n
//
// The device cursor is set once and the rest is read sequentially. Every
// line is passed to sink in the same buffer, see Sink.
func (d *Device) Dump(sink Sink) (err error) {
	if !d.cfg.Diagnostics {
		return d.fail(opDump, 0, ErrDiagnosticsDisabled)
	}
	if !d.ready.Load() {
		return d.fail(opDump, 0, ErrNotInitialized)
	}
	if sink == nil {
		return d.fail(opDump, 0, fmt.Errorf("%w: nil sink", ErrSink))
	}
	if err := d.begin(); err != nil {
		return d.fail(opDump, 0, err)
	}
	defer d.release(&err)

	if err := d.seek(0); err != nil {
		return d.fail(opDump, 0, err)
	}

	block := make([]byte, d.cfg.DumpBlockSize)
	line := make([]byte, 0, 8+3*len(block))

	for addr := 0; addr < d.cfg.Capacity(); addr += len(block) {
		// A page-wrapping cursor has to be moved to each new page.
		if d.cfg.PageWrap && addr != 0 && addr%d.cfg.PageSize == 0 {
			if err := d.seek(uint32(addr)); err != nil {
				return d.fail(opDump, uint32(addr), err)
			}
		}
		if err := d.readNext(block); err != nil {
			return d.fail(opDump, uint32(addr), err)
		}

		line = formatDumpLine(line[:0], uint32(addr), block)
		if err := sink.Emit(line); err != nil {
			return d.fail(opDump, uint32(addr), fmt.Errorf("%w: %w", ErrSink, err))
		}
	}
	return nil
}

// formatDumpLine appends "AAAA: XX XX ...\r\n" to dst.
func formatDumpLine(dst []byte, addr uint32, block []byte) []byte {
	dst = fmt.Appendf(dst, "%04X:", addr)
	for _, b := range block {
		dst = fmt.Appendf(dst, " %02X", b)
	}
	return append(dst, '\r', '\n')
}
