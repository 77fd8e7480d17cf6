package fram

import (
	"fmt"
	"math/bits"
	"time"
)

// FM24CL16B defaults.
const (
	DefaultWriteAddress  uint8 = 0xA0
	DefaultReadAddress   uint8 = 0xA1
	DefaultPages               = 8
	DefaultPageSize            = 256
	DefaultChunkSize           = 32
	DefaultBufferSize          = 64
	DefaultDumpBlockSize       = 8

	DefaultTimeout      = 100 * time.Millisecond
	DefaultPollInterval = 50 * time.Microsecond

	// maxPages is the number of page-select bits (3) available in the bus
	// address byte.
	maxPages = 8

	// maxPageSize is bounded by the single row offset byte.
	maxPageSize = 256
)

// Config describes the device geometry and the driver's behavior.
type Config struct {
	// Name identifies the device profile in traces.
	Name string

	// WriteAddress and ReadAddress are the 8-bit bus addresses of page 0.
	// They differ only in the direction bit (bit 0).
	WriteAddress uint8
	ReadAddress  uint8

	// Pages is the number of independently addressed pages (power of two, <= 8).
	Pages int

	// PageSize is the number of bytes per page (power of two, <= 256).
	PageSize int

	// ChunkSize is the payload length of each Fill / WriteAt transaction.
	// Must be smaller than TxBufferSize.
	ChunkSize int

	// TxBufferSize and RxBufferSize size the scratch buffers. One transmit
	// byte is reserved for the row offset.
	TxBufferSize int
	RxBufferSize int

	// DumpBlockSize is the number of bytes per Dump line. Must divide
	// PageSize and fit in the receive buffer.
	DumpBlockSize int

	// Timeout bounds each transport call and the readiness poll.
	Timeout time.Duration

	// PollInterval is the pause between readiness polls in interrupt mode.
	PollInterval time.Duration

	// Interrupt enables readiness polling and asynchronous writes.
	Interrupt bool

	// Exclusive serializes operations through a Locker.
	Exclusive bool

	// Diagnostics enables Dump.
	Diagnostics bool

	// PageWrap is set for devices whose cursor rolls over inside a page
	// instead of advancing into the next one. Transfers that would cross a
	// page boundary are rejected.
	PageWrap bool
}

// DefaultConfig returns the configuration for an FM24CL16B.
func DefaultConfig() Config {
	return Config{
		Name:          "fm24cl16b",
		WriteAddress:  DefaultWriteAddress,
		ReadAddress:   DefaultReadAddress,
		Pages:         DefaultPages,
		PageSize:      DefaultPageSize,
		ChunkSize:     DefaultChunkSize,
		TxBufferSize:  DefaultBufferSize,
		RxBufferSize:  DefaultBufferSize,
		DumpBlockSize: DefaultDumpBlockSize,
		Timeout:       DefaultTimeout,
		PollInterval:  DefaultPollInterval,
		Diagnostics:   true,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.WriteAddress&0x01 != 0 {
		return fmt.Errorf("%w: write address %#02x has the read bit set", ErrInvalidConfig, c.WriteAddress)
	}
	if c.ReadAddress != c.WriteAddress|0x01 {
		return fmt.Errorf("%w: read address %#02x must be write address %#02x with bit 0 set",
			ErrInvalidConfig, c.ReadAddress, c.WriteAddress)
	}
	if !isPowerOfTwo(c.Pages) || c.Pages > maxPages {
		return fmt.Errorf("%w: pages must be a power of two up to %d, got %d", ErrInvalidConfig, maxPages, c.Pages)
	}
	if !isPowerOfTwo(c.PageSize) || c.PageSize > maxPageSize {
		return fmt.Errorf("%w: page size must be a power of two up to %d, got %d", ErrInvalidConfig, maxPageSize, c.PageSize)
	}
	if c.WriteAddress&c.pageBits() != 0 {
		return fmt.Errorf("%w: write address %#02x overlaps page select bits %#02x",
			ErrInvalidConfig, c.WriteAddress, c.pageBits())
	}
	if c.TxBufferSize < 2 {
		return fmt.Errorf("%w: transmit buffer must hold at least 2 bytes, got %d", ErrInvalidConfig, c.TxBufferSize)
	}
	if c.RxBufferSize < 1 {
		return fmt.Errorf("%w: receive buffer must hold at least 1 byte, got %d", ErrInvalidConfig, c.RxBufferSize)
	}
	if c.ChunkSize < 1 || c.ChunkSize > c.TxBufferSize-1 {
		return fmt.Errorf("%w: chunk size must be 1-%d, got %d", ErrInvalidConfig, c.TxBufferSize-1, c.ChunkSize)
	}
	if c.DumpBlockSize < 1 || c.DumpBlockSize > c.RxBufferSize || c.PageSize%c.DumpBlockSize != 0 {
		return fmt.Errorf("%w: dump block size %d must divide page size %d and fit the %d byte receive buffer",
			ErrInvalidConfig, c.DumpBlockSize, c.PageSize, c.RxBufferSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidConfig, c.Timeout)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("%w: poll interval must not be negative, got %v", ErrInvalidConfig, c.PollInterval)
	}
	return nil
}

// Capacity returns the number of bytes on the device.
func (c Config) Capacity() int {
	return c.Pages * c.PageSize
}

// MaxAddress returns the highest valid logical address.
func (c Config) MaxAddress() uint32 {
	return uint32(c.Capacity() - 1)
}

func (c Config) rowBits() uint {
	return uint(bits.TrailingZeros(uint(c.PageSize)))
}

func (c Config) rowMask() uint32 {
	return uint32(c.PageSize - 1)
}

func (c Config) pageMask() uint32 {
	return uint32(c.Pages - 1)
}

// pageBits returns the bus address bits used for page selection.
func (c Config) pageBits() uint8 {
	return uint8(c.pageMask() << 1)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
