package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"lp50xx-go/drivers/lp50xx"
)

func noWait(time.Duration) bool { return true }

func TestRunSession(t *testing.T) {
	rec := &i2ctest.Record{}
	lvl := uint8(0x20)
	cfg := Default()
	cfg.Variant = "LP5012"
	cfg.Address = "1"
	cfg.Brightness = 0x80
	cfg.FadeSteps = 4
	cfg.LEDs = []LEDCfg{
		{Group: 2, Color: "#010203"},
		{Group: 3, Color: "#0A0B0C", Brightness: &lvl},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, run(ctx, rec, cfg, noWait))

	want := [][]byte{
		{0x00, 0x40},                   // enable
		{0x01, 0x3C},                   // default config
		{0x07, 0x00, 0x00, 0x00, 0x00}, // dark
		{0x11, 0x01, 0x02, 0x03},       // group 2 color
		{0x14, 0x0A, 0x0B, 0x0C},       // group 3 color
		{0x07, 0x20, 0x20, 0x20, 0x20}, // fade...
		{0x07, 0x40, 0x40, 0x40, 0x40},
		{0x07, 0x60, 0x60, 0x60, 0x60},
		{0x07, 0x80, 0x80, 0x80, 0x80},
		{0x0A, 0x20},                   // group 3 brightness override
		{0x00, 0x00},                   // standby
	}
	require.Len(t, rec.Ops, len(want))
	for i, op := range rec.Ops {
		require.Equal(t, uint16(0x31), op.Addr, "op %d", i)
		require.Truef(t, bytes.Equal(want[i], op.W), "op %d: got % x want % x", i, op.W, want[i])
	}
}

func TestRunRejectsBadConfigBeforeIO(t *testing.T) {
	rec := &i2ctest.Record{}
	cfg := Default()
	cfg.Variant = "LP9999"
	require.Error(t, run(context.Background(), rec, cfg, noWait))
	require.Empty(t, rec.Ops)
}

// flakyBus records like i2ctest.Record but fails the n-th transaction.
type flakyBus struct {
	i2ctest.Record
	failAt int
	n      int
}

var errNACK = errors.New("nack")

func (f *flakyBus) Tx(addr uint16, w, r []byte) error {
	f.n++
	if f.n == f.failAt {
		return errNACK
	}
	return f.Record.Tx(addr, w, r)
}

func requireStandbyLast(t *testing.T, ops []i2ctest.IO) {
	t.Helper()
	require.NotEmpty(t, ops)
	last := ops[len(ops)-1].W
	require.Truef(t, bytes.Equal([]byte{0x00, 0x00}, last), "last op % x, want standby", last)
}

func TestRunStopsOnIndexError(t *testing.T) {
	rec := &i2ctest.Record{}
	cfg := Default()
	cfg.Variant = "LP5009"
	cfg.LEDs = []LEDCfg{{Group: 3, Color: "#FFFFFF"}}

	err := run(context.Background(), rec, cfg, noWait)
	require.ErrorIs(t, err, lp50xx.ErrIndex)
	require.Len(t, rec.Ops, 4, "enable, configure, dark, standby; nothing for the bad group")
	requireStandbyLast(t, rec.Ops)
}

func TestRunBadColorLeavesChipInStandby(t *testing.T) {
	rec := &i2ctest.Record{}
	cfg := Default()
	cfg.Variant = "LP5012"
	cfg.LEDs = []LEDCfg{{Group: 0, Color: "#12"}}

	require.Error(t, run(context.Background(), rec, cfg, noWait))
	require.Len(t, rec.Ops, 4)
	requireStandbyLast(t, rec.Ops)
}

func TestRunFadeFailureLeavesChipInStandby(t *testing.T) {
	bus := &flakyBus{failAt: 5}
	cfg := Default()
	cfg.Variant = "LP5012"
	cfg.FadeSteps = 4
	cfg.LEDs = []LEDCfg{{Group: 1, Color: "#FF0000"}}

	// enable, configure, dark, color, then the first fade step fails.
	err := run(context.Background(), bus, cfg, noWait)
	require.ErrorIs(t, err, lp50xx.ErrBus)
	require.ErrorIs(t, err, errNACK)
	require.Len(t, bus.Ops, 5)
	requireStandbyLast(t, bus.Ops)
}

func TestRunEnableFailureWritesNothingMore(t *testing.T) {
	bus := &flakyBus{failAt: 1}
	cfg := Default()
	cfg.Variant = "LP5012"

	require.ErrorIs(t, run(context.Background(), bus, cfg, noWait), lp50xx.ErrBus)
	require.Empty(t, bus.Ops)
}
