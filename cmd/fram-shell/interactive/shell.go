// Package interactive provides the interactive command-line interface
// for fram-shell.
package interactive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/fram-go/pkg/bus/sim"
	"github.com/mash-protocol/fram-go/pkg/fram"
)

// bytesPerLine is the width of hex listings printed by read and next.
const bytesPerLine = 16

// Shell runs commands against one FRAM device handle.
type Shell struct {
	dev  *fram.Device
	chip *sim.Chip // nil on real hardware
	out  io.Writer
}

// New creates a shell for dev. chip is the simulated backing chip, or nil
// when dev talks to real hardware.
func New(dev *fram.Device, chip *sim.Chip, out io.Writer) *Shell {
	if out == nil {
		out = os.Stdout
	}
	return &Shell{dev: dev, chip: chip, out: out}
}

// Stdout returns the writer command output goes to. While Run is active this
// coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fram> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if !s.Exec(line) {
			return nil
		}
	}
}

// Exec runs one command line. It returns false when the command asks the
// shell to exit.
func (s *Shell) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" || strings.HasPrefix(input, "#") {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "info", "i":
		s.cmdInfo()

	case "read", "r":
		s.cmdRead(args)

	case "write", "w":
		s.cmdWrite(args)

	case "read8", "read16", "read32":
		s.cmdReadValue(cmd, args)

	case "write8", "write16", "write32":
		s.cmdWriteValue(cmd, args)

	case "seek":
		s.cmdSeek(args)

	case "next", "n":
		s.cmdNext(args)

	case "fill":
		s.cmdFill(args)

	case "reset":
		s.cmdReset()

	case "dump", "d":
		s.cmdDump()

	case "selftest", "test":
		s.cmdSelfTest(args)

	case "save":
		s.cmdSave(args)

	case "load":
		s.cmdLoad(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
FRAM Shell Commands:
  Access:
    read <addr> <n>           - Read n bytes starting at addr
    write <addr> <byte>...    - Write bytes starting at addr
    read8|16|32 <addr>        - Read a big-endian value
    write8|16|32 <addr> <v>   - Write a big-endian value
    seek <addr>               - Set the device cursor
    next <n>                  - Read n bytes from the cursor

  Bulk:
    fill <byte>               - Write byte to every address
    reset                     - Fill with zero
    dump                      - Print the whole array
    selftest [8|16|32]        - Pattern test (clears the device on success)

  Images:
    save <file>               - Copy the device contents to a file
    load <file>               - Write a file's contents to the device

  General:
    info                      - Show device configuration and state
    help                      - Show this help
    quit                      - Exit shell

  Numbers accept decimal, 0x hex, 0o octal and 0b binary.`)
}

func (s *Shell) cmdInfo() {
	cfg := s.dev.Config()
	fmt.Fprintf(s.out, "Device:    %s\n", cfg.Name)
	fmt.Fprintf(s.out, "Handle:    %s\n", s.dev.ID())
	fmt.Fprintf(s.out, "State:     %s\n", s.dev.State())
	fmt.Fprintf(s.out, "Capacity:  %d bytes (%d pages x %d)\n", cfg.Capacity(), cfg.Pages, cfg.PageSize)
	fmt.Fprintf(s.out, "Bus:       write %#02x  read %#02x\n", cfg.WriteAddress, cfg.ReadAddress)
	fmt.Fprintf(s.out, "Buffers:   tx %d  rx %d  chunk %d  dump block %d\n",
		cfg.TxBufferSize, cfg.RxBufferSize, cfg.ChunkSize, cfg.DumpBlockSize)
	fmt.Fprintf(s.out, "Timeout:   %s (poll %s)\n", cfg.Timeout, cfg.PollInterval)
	fmt.Fprintf(s.out, "Modes:     interrupt=%t exclusive=%t diagnostics=%t page_wrap=%t\n",
		cfg.Interrupt, cfg.Exclusive, cfg.Diagnostics, cfg.PageWrap)

	if addr, ok := s.dev.Cursor(); ok {
		fmt.Fprintf(s.out, "Cursor:    %#04x\n", addr)
	} else {
		fmt.Fprintln(s.out, "Cursor:    unknown")
	}

	if s.chip != nil {
		st := s.chip.Stats()
		fmt.Fprintf(s.out, "Simulator: transmits=%d async=%d receives=%d polls=%d written=%d read=%d\n",
			st.Transmits, st.AsyncTransmits, st.Receives, st.Polls, st.BytesWritten, st.BytesRead)
	}
}

func (s *Shell) cmdRead(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: read <addr> <n>")
		fmt.Fprintln(s.out, "  Example: read 0x100 32")
		return
	}

	addr, ok := s.parseAddress(args[0])
	if !ok {
		return
	}
	n, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil || n == 0 {
		fmt.Fprintf(s.out, "Invalid length: %s\n", args[1])
		return
	}
	if n > uint64(s.dev.Size()) {
		fmt.Fprintf(s.out, "Error: %v\n", fram.ErrAddressOutOfRange)
		return
	}

	buf := make([]byte, n)
	if _, err := s.dev.ReadAt(buf, int64(addr)); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.printBytes(addr, buf)
}

func (s *Shell) cmdWrite(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: write <addr> <byte>...")
		fmt.Fprintln(s.out, "  Example: write 0x10 0xde 0xad 0xbe 0xef")
		return
	}

	addr, ok := s.parseAddress(args[0])
	if !ok {
		return
	}

	data := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseUint(a, 0, 8)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid byte: %s\n", a)
			return
		}
		data = append(data, uint8(v))
	}

	if _, err := s.dev.WriteAt(data, int64(addr)); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Wrote %d bytes at %#04x\n", len(data), addr)
}

func (s *Shell) cmdReadValue(cmd string, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(s.out, "Usage: %s <addr>\n", cmd)
		return
	}
	addr, ok := s.parseAddress(args[0])
	if !ok {
		return
	}

	var (
		v     uint32
		width int
		err   error
	)
	switch cmd {
	case "read8":
		var b uint8
		b, err = s.dev.Read8(addr)
		v, width = uint32(b), 2
	case "read16":
		var h uint16
		h, err = s.dev.Read16(addr)
		v, width = uint32(h), 4
	default:
		v, err = s.dev.Read32(addr)
		width = 8
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%#04x = 0x%0*x (%d)\n", addr, width, v, v)
}

func (s *Shell) cmdWriteValue(cmd string, args []string) {
	if len(args) < 2 {
		fmt.Fprintf(s.out, "Usage: %s <addr> <value>\n", cmd)
		return
	}
	addr, ok := s.parseAddress(args[0])
	if !ok {
		return
	}

	bits := 32
	switch cmd {
	case "write8":
		bits = 8
	case "write16":
		bits = 16
	}
	v, err := strconv.ParseUint(args[1], 0, bits)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid %d-bit value: %s\n", bits, args[1])
		return
	}

	switch bits {
	case 8:
		err = s.dev.Write8(addr, uint8(v))
	case 16:
		err = s.dev.Write16(addr, uint16(v))
	default:
		err = s.dev.Write32(addr, uint32(v))
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Wrote %d-bit value at %#04x\n", bits, addr)
}

func (s *Shell) cmdSeek(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: seek <addr>")
		return
	}
	addr, ok := s.parseAddress(args[0])
	if !ok {
		return
	}
	if err := s.dev.Seek(addr); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Cursor at %#04x\n", addr)
}

func (s *Shell) cmdNext(args []string) {
	n := uint64(1)
	if len(args) > 0 {
		var err error
		n, err = strconv.ParseUint(args[0], 0, 16)
		if err != nil || n == 0 {
			fmt.Fprintf(s.out, "Invalid length: %s\n", args[0])
			return
		}
	}

	addr, _ := s.dev.Cursor()
	buf := make([]byte, n)
	if err := s.dev.ReadNext(buf); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.printBytes(addr, buf)
}

func (s *Shell) cmdFill(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: fill <byte>")
		return
	}
	v, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid byte: %s\n", args[0])
		return
	}
	if err := s.dev.Fill(uint8(v)); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Filled %d bytes with %#02x\n", s.dev.Size(), v)
}

func (s *Shell) cmdReset() {
	if err := s.dev.Reset(0); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Device cleared")
}

func (s *Shell) cmdDump() {
	if err := s.dev.Dump(fram.WriterSink{W: s.out}); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdSelfTest(args []string) {
	width := 8
	if len(args) > 0 {
		w, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(s.out, "Invalid width: %s\n", args[0])
			return
		}
		width = w
	}

	if err := s.dev.SelfTest(width); err != nil {
		fmt.Fprintf(s.out, "Self test FAILED: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Self test passed (%d-bit)\n", width)
}

func (s *Shell) cmdSave(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: save <file>")
		return
	}

	n, err := s.save(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved %d bytes to %s\n", n, args[0])
}

func (s *Shell) save(path string) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return io.Copy(f, io.NewSectionReader(s.dev, 0, s.dev.Size()))
}

func (s *Shell) cmdLoad(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: load <file>")
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if int64(len(data)) > s.dev.Size() {
		fmt.Fprintf(s.out, "Error: %s is %d bytes, device holds %d\n", args[0], len(data), s.dev.Size())
		return
	}

	if _, err := s.dev.WriteAt(data, 0); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Loaded %d bytes from %s\n", len(data), args[0])
}

func (s *Shell) parseAddress(arg string) (uint32, bool) {
	v, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid address: %s\n", arg)
		return 0, false
	}
	return uint32(v), true
}

// printBytes prints data as a hex listing starting at addr. Addresses wrap
// at the end of the device like the cursor does.
func (s *Shell) printBytes(addr uint32, data []byte) {
	size := uint32(s.dev.Size())
	for len(data) > 0 {
		n := min(len(data), bytesPerLine)
		fmt.Fprintf(s.out, "%04X: % X  |%s|\n", addr, data[:n], printable(data[:n]))
		addr = (addr + uint32(n)) % size
		data = data[n:]
	}
}

func printable(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
