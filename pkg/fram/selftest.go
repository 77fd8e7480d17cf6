package fram

import "fmt"

// selfTestPattern is replicated into every byte of the value under test.
const selfTestPattern = 0x66

// SelfTest writes a pattern of the given width (8, 16 or 32 bits) to every
// aligned address, reads every value back and clears the device to 0x00 when
// all of them match. The device contents are lost either way.
func (d *Device) SelfTest(width int) error {
	var (
		write func(addr uint32) error
		check func(addr uint32) (bool, error)
	)

	switch width {
	case 8:
		const want = selfTestPattern
		write = func(addr uint32) error { return d.Write8(addr, want) }
		check = func(addr uint32) (bool, error) {
			v, err := d.Read8(addr)
			return v == want, err
		}
	case 16:
		const want = selfTestPattern * 0x0101
		write = func(addr uint32) error { return d.Write16(addr, want) }
		check = func(addr uint32) (bool, error) {
			v, err := d.Read16(addr)
			return v == want, err
		}
	case 32:
		const want = selfTestPattern * 0x01010101
		write = func(addr uint32) error { return d.Write32(addr, want) }
		check = func(addr uint32) (bool, error) {
			v, err := d.Read32(addr)
			return v == want, err
		}
	default:
		return fmt.Errorf("%w: self test width %d", ErrInvalidLength, width)
	}

	step := uint32(width / 8)
	end := uint32(d.cfg.Capacity())

	for addr := uint32(0); addr < end; addr += step {
		if err := write(addr); err != nil {
			return err
		}
	}
	for addr := uint32(0); addr < end; addr += step {
		ok, err := check(addr)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %d-bit value at %#04x", ErrVerify, width, addr)
		}
	}

	d.logger.Debug("fram: self test passed", "handle_id", d.id, "width", width)
	return d.Fill(0x00)
}
