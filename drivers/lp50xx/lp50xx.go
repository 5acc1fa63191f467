// Package lp50xx provides a minimal TinyGo driver for the TI LP50xx family
// of I2C RGB LED drivers: LP5009, LP5012, LP5018, LP5024, LP5030, LP5036.
//
// Design notes (datasheet references):
// • I2C up to 400kHz; a register write is [reg, data...], a read is a write of
// [reg] followed by a repeated-start read.
// • DEVICE_CONFIG0/1 sit at the same address on every part; the brightness
// and color banks move with the channel count (see registers.go).
// • Auto increment is left enabled, so RGB and whole-bank updates go out as
// one burst.
// • The chip state is carried by the handle type. New returns a *Disabled
// (standby); only *Enabled has output methods, so writing a powered-down chip
// does not compile. State transitions consume their receiver.
//
// Handles are not safe for concurrent use. The driver never retries and never
// rolls back a partially applied multi-register write.
package lp50xx

import (
	"image/color"

	"lp50xx-go/errcode"
	"lp50xx-go/x/conv"

	"tinygo.org/x/drivers"
)

// Errors returned by the driver. Match with errors.Is.
var (
	// ErrIndex reports a channel or group index outside the variant.
	ErrIndex = errcode.IndexOutOfRange
	// ErrBus wraps a failed bus transaction; the cause is reachable too.
	ErrBus = errcode.BusFailure
	// ErrConsumed is returned by a handle that was used in a transition.
	ErrConsumed = errcode.HandleConsumed
	// ErrInvalid reports an unknown variant, selector or config value.
	ErrInvalid = errcode.InvalidParams
)

// RGB is the 8-bit color of one RGB group.
type RGB struct {
	R, G, B uint8
}

// RGBFromColor converts any color.Color (alpha-premultiplied) to RGB.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

type device struct {
	i2c  drivers.I2C
	addr uint16
	regs RegisterMap

	// Fixed buffers to avoid per-call heap allocations.
	w [maxWriteSize]byte
	r [1]byte
}

// Disabled is a handle to a chip in standby (Chip_EN cleared).
type Disabled struct{ d *device }

// Enabled is a handle to a chip with its current sinks enabled.
type Enabled struct{ d *device }

// New builds a Disabled handle for variant v strapped as sel.
// It does not touch the bus.
func New(i2c drivers.I2C, v Variant, sel Address) (*Disabled, error) {
	if i2c == nil {
		return nil, &errcode.E{C: ErrInvalid, Op: "new", Msg: "nil bus"}
	}
	addr, ok := v.BusAddress(sel)
	if !ok {
		return nil, &errcode.E{C: ErrInvalid, Op: "new", Msg: "unknown variant or address selector"}
	}
	return &Disabled{d: &device{i2c: i2c, addr: addr, regs: v.Registers()}}, nil
}

// ---------------- Disabled ----------------

// Variant returns the chip variant, VariantUnknown once consumed.
func (h *Disabled) Variant() Variant {
	if h == nil || h.d == nil {
		return VariantUnknown
	}
	return h.d.regs.Variant
}

// Address returns the 7-bit bus address, 0 once consumed.
func (h *Disabled) Address() uint16 {
	if h == nil || h.d == nil {
		return 0
	}
	return h.d.addr
}

// Enable sets Chip_EN, turning on the current sinks. The receiver is
// consumed whether or not the write succeeds; build a new handle to retry.
//
// Draws up to 10mA unless power save is enabled.
func (h *Disabled) Enable() (*Enabled, error) {
	if h == nil || h.d == nil {
		return nil, &errcode.E{C: ErrConsumed, Op: "enable"}
	}
	d := h.d
	h.d = nil
	if err := d.writeByte(d.regs.DeviceConfig0, chipEnable); err != nil {
		return nil, err
	}
	return &Enabled{d: d}, nil
}

// Reset writes the RESET register, restoring every register to its default.
// The chip stays in standby.
func (h *Disabled) Reset() error {
	if h == nil || h.d == nil {
		return &errcode.E{C: ErrConsumed, Op: "reset"}
	}
	return h.d.writeByte(h.d.regs.Reset, resetValue)
}

// ---------------- Enabled ----------------

// Variant returns the chip variant, VariantUnknown once consumed.
func (h *Enabled) Variant() Variant {
	if h == nil || h.d == nil {
		return VariantUnknown
	}
	return h.d.regs.Variant
}

// Address returns the 7-bit bus address, 0 once consumed.
func (h *Enabled) Address() uint16 {
	if h == nil || h.d == nil {
		return 0
	}
	return h.d.addr
}

// Disable clears Chip_EN. Register contents are retained but the outputs
// turn off. The receiver is consumed whether or not the write succeeds.
func (h *Enabled) Disable() (*Disabled, error) {
	d, err := h.take("disable")
	if err != nil {
		return nil, err
	}
	if err := d.writeByte(d.regs.DeviceConfig0, 0); err != nil {
		return nil, err
	}
	return &Disabled{d: d}, nil
}

// Reset restores every register default, which also clears Chip_EN, and
// hands back a Disabled handle. The receiver is consumed.
func (h *Enabled) Reset() (*Disabled, error) {
	d, err := h.take("reset")
	if err != nil {
		return nil, err
	}
	if err := d.writeByte(d.regs.Reset, resetValue); err != nil {
		return nil, err
	}
	return &Disabled{d: d}, nil
}

// Configure writes the global configuration.
func (h *Enabled) Configure(cfg Config) error {
	d, err := h.dev("configure")
	if err != nil {
		return err
	}
	if !cfg.MaxCurrent.Valid() {
		return &errcode.E{C: ErrInvalid, Op: "configure", Msg: "unknown max current option"}
	}
	return d.writeByte(d.regs.DeviceConfig1, cfg.Encode())
}

// ReadConfig reads back and decodes the global configuration.
func (h *Enabled) ReadConfig() (Config, error) {
	d, err := h.dev("read_config")
	if err != nil {
		return Config{}, err
	}
	raw, err := d.readByte(d.regs.DeviceConfig1)
	if err != nil {
		return Config{}, err
	}
	return Decode(raw), nil
}

// SetChannel sets the color value of a single OUTx channel.
func (h *Enabled) SetChannel(ch uint8, value uint8) error {
	d, err := h.dev("set_channel")
	if err != nil {
		return err
	}
	reg, err := d.regs.OutColor(ch)
	if err != nil {
		return err
	}
	return d.writeByte(reg, value)
}

// SetRGB sets the three color values of RGB group g.
func (h *Enabled) SetRGB(g uint8, c RGB) error {
	d, err := h.dev("set_rgb")
	if err != nil {
		return err
	}
	reg, err := d.regs.RGBColor(g)
	if err != nil {
		return err
	}
	return d.write(reg, c.R, c.G, c.B)
}

// SetRGBBrightness sets the brightness (not the color) of RGB group g.
func (h *Enabled) SetRGBBrightness(g uint8, value uint8) error {
	d, err := h.dev("set_rgb_brightness")
	if err != nil {
		return err
	}
	reg, err := d.regs.LEDBrightness(g)
	if err != nil {
		return err
	}
	return d.writeByte(reg, value)
}

// SetAllBrightness sets the brightness of every RGB group in one burst.
func (h *Enabled) SetAllBrightness(value uint8) error {
	d, err := h.dev("set_all_brightness")
	if err != nil {
		return err
	}
	start, n := d.regs.BrightnessBank()
	return d.fill(start, value, n)
}

func (h *Enabled) dev(op string) (*device, error) {
	if h == nil || h.d == nil {
		return nil, &errcode.E{C: ErrConsumed, Op: op}
	}
	return h.d, nil
}

func (h *Enabled) take(op string) (*device, error) {
	d, err := h.dev(op)
	if err != nil {
		return nil, err
	}
	h.d = nil
	return d, nil
}

// ---------------- Low-level register access ----------------

func (d *device) writeByte(reg, v byte) error {
	d.w[0] = reg
	d.w[1] = v
	if err := d.i2c.Tx(d.addr, d.w[:2], nil); err != nil {
		return busError("write", reg, err)
	}
	return nil
}

// write sends reg followed by data; the chip auto-increments the register.
func (d *device) write(reg byte, data ...byte) error {
	if len(data) > len(d.w)-1 {
		return burstError(reg, len(data))
	}
	d.w[0] = reg
	n := copy(d.w[1:], data)
	if err := d.i2c.Tx(d.addr, d.w[:1+n], nil); err != nil {
		return busError("write", reg, err)
	}
	return nil
}

// fill writes v into n consecutive registers starting at reg.
func (d *device) fill(reg, v byte, n uint8) error {
	end := 1 + int(n)
	if end > len(d.w) {
		return burstError(reg, int(n))
	}
	d.w[0] = reg
	for i := 1; i < end; i++ {
		d.w[i] = v
	}
	if err := d.i2c.Tx(d.addr, d.w[:end], nil); err != nil {
		return busError("write", reg, err)
	}
	return nil
}

func (d *device) readByte(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, busError("read", reg, err)
	}
	return d.r[0], nil
}

// burstError reports a burst longer than one write can carry.
func burstError(reg byte, n int) error {
	var b [4]byte
	var c [20]byte
	return &errcode.E{C: ErrInvalid, Op: "write", Msg: "reg " + string(conv.U8Hex(b[:], reg)) + ": burst of " + string(conv.Utoa(c[:], uint64(n)))}
}

func busError(op string, reg byte, cause error) error {
	var b [4]byte
	return &errcode.E{C: ErrBus, Op: op, Msg: "reg " + string(conv.U8Hex(b[:], reg)), Err: cause}
}
