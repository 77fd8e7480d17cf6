// Package fram implements a driver for paged two-wire FRAM devices such as
// the FM24CL16B.
//
// The device exposes a flat logical byte address space split across
// several pages. Each page answers on its own bus address: the page index
// is carried in bits 1-3 of the address byte, and the in-page row offset is
// the first data byte of every addressed transaction.
//
// # Address Translation
//
// A logical address a maps to
//
//	page = (a >> rowBits) & pageMask
//	row  = a & rowMask
//
// where rowBits = log2(PageSize). For the FM24CL16B (8 pages of 256 bytes)
// address 2047 is page 7, row 255, and 2048 is out of range.
//
// # Transfers
//
// A write is one bus transaction to the page-qualified write address
// carrying the row offset followed by the payload. A random-access read is
// an address-set transaction (row offset only) followed by a receive from
// the page-qualified read address. The device latches its internal cursor
// on every addressed access and auto-increments it after each byte, so
// Seek followed by ReadNext streams memory without resending addresses.
// Dump uses that fast path.
//
// Multi-byte values are big-endian: the most significant byte is on the
// wire first.
//
// # Lifecycle
//
//	dev, err := fram.New(fram.DefaultConfig())
//	if err != nil { ... }
//	if err := dev.Init(transport); err != nil { ... }
//	defer dev.Deinit()
//
//	_ = dev.Write32(100, 0x44556677)
//	v, _ := dev.Read32(100)
//
// Every operation on an uninitialized handle fails with ErrNotInitialized
// without touching the transport.
//
// # Concurrency
//
// With Config.Exclusive set, each operation holds a Locker for its whole
// duration, including bulk operations. Without it, a Device must not be
// used from more than one goroutine at a time.
//
// # Interrupt Mode
//
// With Config.Interrupt set, every operation first polls the transport's
// readiness until Clock.Now() passes now+Timeout, and writes are issued
// through bus.AsyncTransmitter when the transport supports it.
package fram
