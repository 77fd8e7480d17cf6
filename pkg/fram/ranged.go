package fram

import (
	"fmt"
	"io"
)

// ReadAt implements io.ReaderAt. The range is split at page boundaries and
// receive buffer limits and read under a single exclusive hold.
func (d *Device) ReadAt(p []byte, off int64) (n int, err error) {
	if !d.ready.Load() {
		return 0, d.fail(opReadAt, 0, ErrNotInitialized)
	}
	if off < 0 {
		return 0, d.fail(opReadAt, 0, fmt.Errorf("%w: negative offset %d", ErrAddressOutOfRange, off))
	}
	if off >= d.Size() {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	want := p
	if rem := d.Size() - off; int64(len(want)) > rem {
		want = want[:rem]
	}

	if err := d.begin(); err != nil {
		return 0, d.fail(opReadAt, uint32(off), err)
	}
	defer d.release(&err)

	addr := uint32(off)
	for n < len(want) {
		size := min(len(want)-n, d.cfg.RxBufferSize, d.cfg.pageRemaining(addr))
		if err := d.read(addr, want[n:n+size]); err != nil {
			return n, d.fail(opReadAt, addr, err)
		}
		n += size
		addr += uint32(size)
	}

	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt. The range is split into ChunkSize
// transactions that never cross a page boundary.
func (d *Device) WriteAt(p []byte, off int64) (n int, err error) {
	if !d.ready.Load() {
		return 0, d.fail(opWriteAt, 0, ErrNotInitialized)
	}
	if off < 0 || off > d.Size() || int64(len(p)) > d.Size()-off {
		return 0, d.fail(opWriteAt, 0, fmt.Errorf("%w: region at %d of %d bytes exceeds %d",
			ErrAddressOutOfRange, off, len(p), d.Size()))
	}
	if len(p) == 0 {
		return 0, nil
	}

	if err := d.begin(); err != nil {
		return 0, d.fail(opWriteAt, uint32(off), err)
	}
	defer d.release(&err)

	addr := uint32(off)
	for n < len(p) {
		size := d.chunkAt(addr, len(p)-n)
		if err := d.write(addr, p[n:n+size]); err != nil {
			return n, d.fail(opWriteAt, addr, err)
		}
		n += size
		addr += uint32(size)
	}
	return n, nil
}

// chunkAt returns the length of the next write transaction at addr with
// remaining bytes left to send.
func (d *Device) chunkAt(addr uint32, remaining int) int {
	return min(remaining, d.cfg.ChunkSize, d.cfg.pageRemaining(addr))
}
