package fram_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/fram-go/pkg/bus"
	busmocks "github.com/mash-protocol/fram-go/pkg/bus/mocks"
	"github.com/mash-protocol/fram-go/pkg/bus/sim"
	"github.com/mash-protocol/fram-go/pkg/fram"
	"github.com/mash-protocol/fram-go/pkg/log"
)

func TestRoundTrip8(t *testing.T) {
	dev, _ := newSimDevice(t, fram.DefaultConfig())

	for addr := uint32(0); addr <= 2047; addr++ {
		v := uint8(addr*7 + 3)
		require.NoError(t, dev.Write8(addr, v))

		got, err := dev.Read8(addr)
		require.NoError(t, err)
		if got != v {
			t.Fatalf("addr %d: got %#02x, want %#02x", addr, got, v)
		}
	}
}

func TestRoundTrip16(t *testing.T) {
	dev, _ := newSimDevice(t, fram.DefaultConfig())

	for addr := uint32(0); addr <= 2046; addr++ {
		v := uint16(addr*0x0101 + 0x1234)
		require.NoError(t, dev.Write16(addr, v))

		got, err := dev.Read16(addr)
		require.NoError(t, err)
		if got != v {
			t.Fatalf("addr %d: got %#04x, want %#04x", addr, got, v)
		}
	}
}

func TestRoundTrip32(t *testing.T) {
	dev, _ := newSimDevice(t, fram.DefaultConfig())

	for addr := uint32(0); addr <= 2044; addr++ {
		v := addr*0x01010101 ^ 0xDEADBEEF
		require.NoError(t, dev.Write32(addr, v))

		got, err := dev.Read32(addr)
		require.NoError(t, err)
		if got != v {
			t.Fatalf("addr %d: got %#08x, want %#08x", addr, got, v)
		}
	}
}

func TestMultiByteValuesAreBigEndian(t *testing.T) {
	dev, chip := newSimDevice(t, fram.DefaultConfig())

	require.NoError(t, dev.Write32(100, 0x44556677))
	assert.Equal(t, []byte{0x44, 0x55, 0x66, 0x77}, chip.Bytes()[100:104])

	require.NoError(t, dev.Write16(300, 0xBEEF))
	assert.Equal(t, []byte{0xBE, 0xEF}, chip.Bytes()[300:302])

	// reads overwrite the result rather than merging into it
	require.NoError(t, dev.Write32(100, 0x01000000))
	v, err := dev.Read32(100)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01000000), v)
}

func TestWriteSpansPageBoundary(t *testing.T) {
	dev, chip := newSimDevice(t, fram.DefaultConfig())

	require.NoError(t, dev.Write32(254, 0x0A0B0C0D))
	assert.Equal(t, []byte{0x0A, 0x0B, 0x0C, 0x0D}, chip.Bytes()[254:258])

	v, err := dev.Read32(254)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0A0B0C0D), v)
}

func TestBoundaryAddresses(t *testing.T) {
	dev, chip := newSimDevice(t, fram.DefaultConfig())

	require.NoError(t, dev.Write8(2047, 0x5A))
	assert.Equal(t, uint8(0x5A), chip.Peek(2047))

	assert.ErrorIs(t, dev.Write8(2048, 0x5A), fram.ErrAddressOutOfRange)
	_, err := dev.Read8(2048)
	assert.ErrorIs(t, err, fram.ErrAddressOutOfRange)
	assert.ErrorIs(t, dev.Write16(2047, 1), fram.ErrAddressOutOfRange)
	assert.ErrorIs(t, dev.Write32(2045, 1), fram.ErrAddressOutOfRange)

	assert.Equal(t, 1, chip.Stats().Transmits, "rejected writes must not reach the bus")
}

func TestTransferLengthLimits(t *testing.T) {
	dev, _ := newSimDevice(t, fram.DefaultConfig())

	assert.NoError(t, dev.Write(0, make([]byte, 63)))
	assert.ErrorIs(t, dev.Write(0, make([]byte, 64)), fram.ErrInvalidLength)
	assert.ErrorIs(t, dev.Write(0, nil), fram.ErrInvalidLength)

	assert.NoError(t, dev.Read(0, make([]byte, 64)))
	assert.ErrorIs(t, dev.Read(0, make([]byte, 65)), fram.ErrInvalidLength)

	assert.ErrorIs(t, dev.ReadNext(make([]byte, 65)), fram.ErrInvalidLength)
	assert.ErrorIs(t, dev.ReadNext(nil), fram.ErrInvalidLength)
}

func TestWireFormat(t *testing.T) {
	transport := busmocks.NewMockTransport(t)

	dev, err := fram.New(fram.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, dev.Init(transport))

	// write: page 1 on the write address, row first
	transport.EXPECT().Transmit(uint8(0xA2), []byte{0xFF, 0xAB, 0xCD}, fram.DefaultTimeout).Return(nil).Once()
	require.NoError(t, dev.Write16(0x1FF, 0xABCD))

	// read: address set on the write address, receive on the read address
	transport.EXPECT().Transmit(uint8(0xAC), []byte{0x05}, fram.DefaultTimeout).Return(nil).Once()
	transport.EXPECT().Receive(uint8(0xAD), mock.Anything, fram.DefaultTimeout).
		Run(func(addr uint8, out []byte, timeout time.Duration) {
			copy(out, []byte{0x12, 0x34, 0x56, 0x78})
		}).
		Return(nil).Once()

	v, err := dev.Read32(0x605)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)
}

func TestTransportErrors(t *testing.T) {
	t.Run("transmit", func(t *testing.T) {
		transport := busmocks.NewMockTransport(t)
		transport.EXPECT().Transmit(mock.Anything, mock.Anything, mock.Anything).Return(bus.ErrNack).Once()

		dev, err := fram.New(fram.DefaultConfig())
		require.NoError(t, err)
		require.NoError(t, dev.Init(transport))

		err = dev.Write8(0, 1)
		assert.ErrorIs(t, err, fram.ErrTransmit)
		assert.ErrorIs(t, err, bus.ErrNack)
	})

	t.Run("address set during read", func(t *testing.T) {
		transport := busmocks.NewMockTransport(t)
		transport.EXPECT().Transmit(mock.Anything, mock.Anything, mock.Anything).Return(bus.ErrNack).Once()

		dev, err := fram.New(fram.DefaultConfig())
		require.NoError(t, err)
		require.NoError(t, dev.Init(transport))

		_, err = dev.Read8(0)
		assert.ErrorIs(t, err, fram.ErrTransmit)
	})

	t.Run("receive", func(t *testing.T) {
		boom := errors.New("arbitration lost")
		transport := busmocks.NewMockTransport(t)
		transport.EXPECT().Transmit(mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		transport.EXPECT().Receive(mock.Anything, mock.Anything, mock.Anything).Return(boom).Once()

		dev, err := fram.New(fram.DefaultConfig())
		require.NoError(t, err)
		require.NoError(t, dev.Init(transport))

		_, err = dev.Read8(0)
		assert.ErrorIs(t, err, fram.ErrReceive)
		assert.ErrorIs(t, err, boom)

		_, known := dev.Cursor()
		assert.False(t, known)
	})
}

func TestSeekAndReadNext(t *testing.T) {
	dev, chip := newSimDevice(t, fram.DefaultConfig())
	for i := 0; i < 16; i++ {
		chip.Poke(0x300+i, uint8(i))
	}

	assert.ErrorIs(t, dev.ReadNext(make([]byte, 4)), fram.ErrCursorUnknown)

	require.NoError(t, dev.Seek(0x300))
	addr, known := dev.Cursor()
	assert.True(t, known)
	assert.Equal(t, uint32(0x300), addr)

	before := chip.Stats()

	out := make([]byte, 4)
	require.NoError(t, dev.ReadNext(out))
	assert.Equal(t, []byte{0, 1, 2, 3}, out)
	require.NoError(t, dev.ReadNext(out))
	assert.Equal(t, []byte{4, 5, 6, 7}, out)

	after := chip.Stats()
	assert.Equal(t, before.Transmits, after.Transmits, "sequential reads send no address")
	assert.Equal(t, before.Receives+2, after.Receives)

	addr, _ = dev.Cursor()
	assert.Equal(t, uint32(0x308), addr)

	assert.ErrorIs(t, dev.Seek(2048), fram.ErrAddressOutOfRange)
}

func TestReadNextFollowsAddressedAccess(t *testing.T) {
	dev, _ := newSimDevice(t, fram.DefaultConfig())

	require.NoError(t, dev.Write(0x0FE, []byte{1, 2, 3, 4}))
	_, err := dev.Read8(0x0FE)
	require.NoError(t, err)

	out := make([]byte, 3)
	require.NoError(t, dev.ReadNext(out))
	assert.Equal(t, []byte{2, 3, 4}, out)
}

func TestCursorWrapsAtEndOfDevice(t *testing.T) {
	dev, chip := newSimDevice(t, fram.DefaultConfig())
	chip.Poke(2047, 0xAA)
	chip.Poke(0, 0xBB)

	require.NoError(t, dev.Seek(2047))
	out := make([]byte, 2)
	require.NoError(t, dev.ReadNext(out))
	assert.Equal(t, []byte{0xAA, 0xBB}, out)

	addr, _ := dev.Cursor()
	assert.Equal(t, uint32(1), addr)
}

func TestPageWrapDevice(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.PageWrap = true
	dev, chip := newSimDevice(t, cfg)

	assert.ErrorIs(t, dev.Write32(254, 1), fram.ErrAddressOutOfRange)
	require.NoError(t, dev.Write32(252, 0x01020304))
	assert.Equal(t, []byte{1, 2, 3, 4}, chip.Bytes()[252:256])

	chip.Poke(256, 0xEE)
	chip.Poke(0, 0xDD)

	require.NoError(t, dev.Seek(255))
	out := make([]byte, 2)
	require.NoError(t, dev.ReadNext(out))
	// cursor rolls over to the start of page 0, not into page 1
	assert.Equal(t, []byte{0x04, 0xDD}, out)
}

func TestInterruptModeUsesAsyncWrites(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Interrupt = true
	cfg.PollInterval = time.Millisecond

	chip, err := sim.New(sim.FM24CL16B, sim.WithBusyPolls(3))
	require.NoError(t, err)

	clock := newFakeClock()
	rec := &traceRecorder{}
	dev, err := fram.New(cfg, fram.WithClock(clock), fram.WithTracer(rec))
	require.NoError(t, err)
	require.NoError(t, dev.Init(chip))

	require.NoError(t, dev.Write32(10, 0xCAFEF00D))
	v, err := dev.Read32(10)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEF00D), v)

	stats := chip.Stats()
	assert.Equal(t, 1, stats.AsyncTransmits)
	// address set of the read is blocking
	assert.Equal(t, 1, stats.Transmits)
	assert.Equal(t, 3, clock.sleeps)

	transfers := rec.byKind(log.KindTransfer)
	require.NotEmpty(t, transfers)
	assert.True(t, transfers[0].Transfer.Async)
	assert.False(t, transfers[1].Transfer.Async)
}

func TestInterruptModeTimeout(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Interrupt = true
	cfg.Timeout = 100 * time.Millisecond
	cfg.PollInterval = 10 * time.Millisecond

	transport := busmocks.NewMockTransport(t)
	transport.EXPECT().IsReady().Return(false)

	clock := newFakeClock()
	dev, err := fram.New(cfg, fram.WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, dev.Init(transport))

	start := clock.Now()
	err = dev.Write8(0, 1)
	assert.ErrorIs(t, err, fram.ErrTimeout)
	assert.True(t, clock.Now().After(start.Add(cfg.Timeout)))
	// no retries after the deadline
	assert.Equal(t, 11, clock.sleeps)
}

func TestInterruptModeWithoutAsync(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Interrupt = true

	transport := busmocks.NewMockTransport(t)
	transport.EXPECT().IsReady().Return(true)
	transport.EXPECT().Transmit(uint8(0xA0), []byte{0x00, 0x07}, cfg.Timeout).Return(nil).Once()

	dev, err := fram.New(cfg)
	require.NoError(t, err)
	require.NoError(t, dev.Init(transport))

	assert.NoError(t, dev.Write8(0, 7))
}

func TestInterruptModeAsyncMock(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Interrupt = true

	transport := busmocks.NewMockAsyncTransport(t)
	transport.EXPECT().IsReady().Return(true)
	transport.EXPECT().TransmitAsync(uint8(0xA0), []byte{0x00, 0x07}).Return(nil).Once()

	dev, err := fram.New(cfg)
	require.NoError(t, err)
	require.NoError(t, dev.Init(transport))

	assert.NoError(t, dev.Write8(0, 7))
}

func TestTransferTrace(t *testing.T) {
	rec := &traceRecorder{}
	dev, _ := newSimDevice(t, fram.DefaultConfig(), fram.WithTracer(rec), fram.WithHandleID("h1"))

	require.NoError(t, dev.Write16(0x102, 0x1234))
	_, err := dev.Read8(0x102)
	require.NoError(t, err)
	require.NoError(t, dev.ReadNext(make([]byte, 1)))
	assert.Error(t, dev.Write8(4096, 0))

	transfers := rec.byKind(log.KindTransfer)
	require.Len(t, transfers, 4)

	w := transfers[0]
	assert.Equal(t, "h1", w.HandleID)
	assert.Equal(t, log.DirectionOut, w.Direction)
	assert.Equal(t, uint8(0xA2), w.Transfer.BusAddress)
	assert.Equal(t, uint8(1), w.Transfer.Page)
	assert.Equal(t, uint8(0x02), w.Transfer.Row)
	assert.Equal(t, 3, w.Transfer.Size)
	assert.Equal(t, []byte{0x02, 0x12, 0x34}, w.Transfer.Data)

	assert.Equal(t, log.DirectionOut, transfers[1].Direction)
	assert.Equal(t, log.DirectionIn, transfers[2].Direction)
	assert.Equal(t, uint8(0xA3), transfers[2].Transfer.BusAddress)
	assert.Equal(t, []byte{0x12}, transfers[2].Transfer.Data)

	assert.True(t, transfers[3].Transfer.Sequential)
	assert.Equal(t, uint8(0x03), transfers[3].Transfer.Row)

	errs := rec.byKind(log.KindError)
	require.Len(t, errs, 1)
	assert.Equal(t, "write", errs[0].Error.Operation)
	assert.Equal(t, uint32(4096), errs[0].Error.Address)
}
