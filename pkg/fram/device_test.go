package fram_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	busmocks "github.com/mash-protocol/fram-go/pkg/bus/mocks"
	"github.com/mash-protocol/fram-go/pkg/bus/sim"
	"github.com/mash-protocol/fram-go/pkg/fram"
	"github.com/mash-protocol/fram-go/pkg/fram/mocks"
	"github.com/mash-protocol/fram-go/pkg/log"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Pages = 3

	_, err := fram.New(cfg)
	assert.ErrorIs(t, err, fram.ErrInvalidConfig)
}

func TestDeviceLifecycle(t *testing.T) {
	dev, err := fram.New(fram.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, fram.StateUninitialized, dev.State())
	assert.NotEmpty(t, dev.ID())
	assert.Equal(t, int64(2048), dev.Size())

	assert.ErrorIs(t, dev.Init(nil), fram.ErrNilTransport)
	assert.ErrorIs(t, dev.Deinit(), fram.ErrNotInitialized)

	chip, err := sim.New(sim.FM24CL16B)
	require.NoError(t, err)

	require.NoError(t, dev.Init(chip))
	assert.Equal(t, fram.StateReady, dev.State())
	assert.ErrorIs(t, dev.Init(chip), fram.ErrAlreadyInitialized)

	require.NoError(t, dev.Deinit())
	assert.Equal(t, fram.StateUninitialized, dev.State())

	// re-init after deinit
	require.NoError(t, dev.Init(chip))
	assert.NoError(t, dev.Write8(0, 1))
}

func TestUninitializedNeverTouchesTransport(t *testing.T) {
	// no expectations: any transport call fails the test
	transport := busmocks.NewMockTransport(t)

	dev, err := fram.New(fram.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, dev.Init(transport))
	require.NoError(t, dev.Deinit())

	buf := make([]byte, 4)
	ops := map[string]func() error{
		"Write":    func() error { return dev.Write(0, []byte{1}) },
		"Read":     func() error { return dev.Read(0, buf) },
		"Write8":   func() error { return dev.Write8(0, 1) },
		"Write16":  func() error { return dev.Write16(0, 1) },
		"Write32":  func() error { return dev.Write32(0, 1) },
		"Read8":    func() error { _, err := dev.Read8(0); return err },
		"Read16":   func() error { _, err := dev.Read16(0); return err },
		"Read32":   func() error { _, err := dev.Read32(0); return err },
		"Seek":     func() error { return dev.Seek(0) },
		"ReadNext": func() error { return dev.ReadNext(buf) },
		"Fill":     func() error { return dev.Fill(0) },
		"Reset":    func() error { return dev.Reset(0) },
		"Dump":     func() error { return dev.Dump(fram.SinkFunc(func([]byte) error { return nil })) },
		"ReadAt":   func() error { _, err := dev.ReadAt(buf, 0); return err },
		"WriteAt":  func() error { _, err := dev.WriteAt(buf, 0); return err },
		"SelfTest": func() error { return dev.SelfTest(8) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), fram.ErrNotInitialized)
		})
	}
}

func TestNotInitializedBeforeRangeCheck(t *testing.T) {
	dev, err := fram.New(fram.DefaultConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, dev.Write8(5000, 1), fram.ErrNotInitialized)
}

func TestLifecycleTrace(t *testing.T) {
	rec := &traceRecorder{}
	dev, err := fram.New(fram.DefaultConfig(), fram.WithTracer(rec), fram.WithHandleID("dev-1"))
	require.NoError(t, err)

	chip, err := sim.New(sim.FM24CL16B)
	require.NoError(t, err)
	require.NoError(t, dev.Init(chip))
	require.NoError(t, dev.Deinit())

	states := rec.byKind(log.KindState)
	require.Len(t, states, 2)
	assert.Equal(t, "dev-1", states[0].HandleID)
	assert.Equal(t, "fm24cl16b", states[0].Device)
	assert.Equal(t, "UNINITIALIZED", states[0].StateChange.OldState)
	assert.Equal(t, "READY", states[0].StateChange.NewState)
	assert.Equal(t, "UNINITIALIZED", states[1].StateChange.NewState)
}

func TestExclusiveLockFailure(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Exclusive = true

	locker := mocks.NewMockLocker(t)
	boom := errors.New("lock timeout")

	// Init and the failed write
	locker.EXPECT().Lock().Return(nil).Once()
	locker.EXPECT().Unlock().Return(nil).Once()
	locker.EXPECT().Lock().Return(boom).Once()

	transport := busmocks.NewMockTransport(t)

	dev, err := fram.New(cfg, fram.WithLocker(locker))
	require.NoError(t, err)
	require.NoError(t, dev.Init(transport))

	err = dev.Write8(0, 1)
	assert.ErrorIs(t, err, fram.ErrMutex)
	assert.ErrorIs(t, err, boom)
}

func TestExclusiveUnlockFailure(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Exclusive = true

	locker := mocks.NewMockLocker(t)
	locker.EXPECT().Lock().Return(nil).Times(2)
	locker.EXPECT().Unlock().Return(nil).Once()
	locker.EXPECT().Unlock().Return(errors.New("not held")).Once()

	chip, err := sim.New(sim.FM24CL16B)
	require.NoError(t, err)

	dev, err := fram.New(cfg, fram.WithLocker(locker))
	require.NoError(t, err)
	require.NoError(t, dev.Init(chip))

	err = dev.Write8(7, 0x42)
	assert.ErrorIs(t, err, fram.ErrMutex)
	// the write itself completed
	assert.Equal(t, uint8(0x42), chip.Peek(7))
}

func TestExclusiveReleasedOnError(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Exclusive = true

	locker := mocks.NewMockLocker(t)
	locker.EXPECT().Lock().Return(nil).Times(2)
	locker.EXPECT().Unlock().Return(nil).Times(2)

	transport := busmocks.NewMockTransport(t)
	transport.EXPECT().Transmit(uint8(0xA0), []byte{0x00, 0x01}, fram.DefaultTimeout).Return(errors.New("nack")).Once()

	dev, err := fram.New(cfg, fram.WithLocker(locker))
	require.NoError(t, err)
	require.NoError(t, dev.Init(transport))

	err = dev.Write8(0, 1)
	assert.ErrorIs(t, err, fram.ErrTransmit)
	assert.NotErrorIs(t, err, fram.ErrMutex)
}

func TestExclusiveValidationSkipsLock(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Exclusive = true

	locker := mocks.NewMockLocker(t)
	locker.EXPECT().Lock().Return(nil).Once()
	locker.EXPECT().Unlock().Return(nil).Once()

	chip, err := sim.New(sim.FM24CL16B)
	require.NoError(t, err)

	dev, err := fram.New(cfg, fram.WithLocker(locker))
	require.NoError(t, err)
	require.NoError(t, dev.Init(chip))

	assert.ErrorIs(t, dev.Write8(2048, 1), fram.ErrAddressOutOfRange)
	assert.ErrorIs(t, dev.Read(0, nil), fram.ErrInvalidLength)
}

func TestExclusiveCursorTakesLock(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Exclusive = true

	locker := mocks.NewMockLocker(t)
	// Init, Seek, Cursor
	locker.EXPECT().Lock().Return(nil).Times(3)
	locker.EXPECT().Unlock().Return(nil).Times(3)
	// Cursor while the lock is unavailable
	locker.EXPECT().Lock().Return(errors.New("lock timeout")).Once()

	chip, err := sim.New(sim.FM24CL16B)
	require.NoError(t, err)

	dev, err := fram.New(cfg, fram.WithLocker(locker))
	require.NoError(t, err)
	require.NoError(t, dev.Init(chip))
	require.NoError(t, dev.Seek(0x123))

	addr, ok := dev.Cursor()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x123), addr)

	_, ok = dev.Cursor()
	assert.False(t, ok)
}
