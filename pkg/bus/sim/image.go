package sim

import (
	"fmt"
	"io"
	"os"
)

// Load replaces the chip memory with exactly Size bytes from r.
func (c *Chip) Load(r io.Reader) error {
	buf := make([]byte, c.Size())
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("sim: load image: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.data, buf)
	c.modified = false
	return nil
}

// Save writes the chip memory to w.
func (c *Chip) Save(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := w.Write(c.data)
	if err != nil {
		return fmt.Errorf("sim: save image: %w", err)
	}
	if n != len(c.data) {
		return fmt.Errorf("sim: save image: %w", io.ErrShortWrite)
	}
	c.modified = false
	return nil
}

// LoadFile loads an image file. The file must be exactly Size bytes.
func (c *Chip) LoadFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("sim: load image: %w", err)
	}
	if fi.Size() != int64(c.Size()) {
		return fmt.Errorf("sim: image %s is %d bytes, chip holds %d", path, fi.Size(), c.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sim: load image: %w", err)
	}
	defer f.Close()

	return c.Load(f)
}

// SaveFile writes the chip memory to path, replacing any existing file.
func (c *Chip) SaveFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sim: save image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sim: save image: %w", cerr)
		}
	}()

	return c.Save(f)
}
