package fram

import "fmt"

// Access selects the direction of a bus address.
type Access uint8

const (
	// AccessWrite selects the write (R/W bit clear) bus address.
	AccessWrite Access = iota
	// AccessRead selects the read (R/W bit set) bus address.
	AccessRead
)

// String returns the access name.
func (a Access) String() string {
	switch a {
	case AccessWrite:
		return "WRITE"
	case AccessRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// Location is a logical address split into page and row.
type Location struct {
	Page uint8
	Row  uint8
}

// String returns the location as "page:row".
func (l Location) String() string {
	return fmt.Sprintf("%d:%02X", l.Page, l.Row)
}

// Translate converts a logical address into its page and row offset.
func (c Config) Translate(addr uint32) (Location, error) {
	if addr > c.MaxAddress() {
		return Location{}, fmt.Errorf("%w: %#04x > %#04x", ErrAddressOutOfRange, addr, c.MaxAddress())
	}
	return c.locate(addr), nil
}

// locate translates an address already known to be in range.
func (c Config) locate(addr uint32) Location {
	return Location{
		Page: uint8((addr >> c.rowBits()) & c.pageMask()),
		Row:  uint8(addr & c.rowMask()),
	}
}

// Address converts a location back into a logical address.
func (c Config) Address(loc Location) uint32 {
	return uint32(loc.Page)<<c.rowBits() | uint32(loc.Row)
}

// BusAddress returns the page-qualified bus address for the given access.
func (c Config) BusAddress(a Access, page uint8) uint8 {
	base := c.WriteAddress
	if a == AccessRead {
		base = c.ReadAddress
	}
	return base | (page << 1)
}

// checkRange validates a transfer of n bytes starting at addr.
func (c Config) checkRange(addr uint32, n int) error {
	if addr > c.MaxAddress() {
		return fmt.Errorf("%w: %#04x > %#04x", ErrAddressOutOfRange, addr, c.MaxAddress())
	}
	if n <= 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidLength, n)
	}
	if uint64(addr)+uint64(n)-1 > uint64(c.MaxAddress()) {
		return fmt.Errorf("%w: region [%#04x, %#04x] exceeds %#04x",
			ErrAddressOutOfRange, addr, uint64(addr)+uint64(n)-1, c.MaxAddress())
	}
	if c.PageWrap && int(addr&c.rowMask())+n > c.PageSize {
		return fmt.Errorf("%w: region [%#04x, %#04x] crosses a page boundary",
			ErrAddressOutOfRange, addr, uint64(addr)+uint64(n)-1)
	}
	return nil
}

// pageRemaining returns the number of bytes from addr to the end of its page.
func (c Config) pageRemaining(addr uint32) int {
	return c.PageSize - int(addr&c.rowMask())
}

// advance returns the device cursor after n bytes starting at addr.
func (c Config) advance(addr uint32, n int) uint32 {
	if c.PageWrap {
		base := addr &^ c.rowMask()
		return base | uint32((int(addr&c.rowMask())+n)%c.PageSize)
	}
	return uint32((int(addr) + n) % c.Capacity())
}
