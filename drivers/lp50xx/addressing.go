package lp50xx

import (
	"lp50xx-go/errcode"
	"lp50xx-go/x/conv"
)

// OutColor returns the OUTx_COLOR register of channel ch.
func (m RegisterMap) OutColor(ch uint8) (byte, error) {
	if ch >= m.Channels {
		return 0, indexError("out_color", "channel", ch, m.Channels)
	}
	return m.OutColorStart + ch, nil
}

// RGBColor returns the first of the three contiguous color registers
// (R, G, B in that order) of RGB group g.
func (m RegisterMap) RGBColor(g uint8) (byte, error) {
	if g >= m.RGBGroups {
		return 0, indexError("rgb_color", "group", g, m.RGBGroups)
	}
	return m.OutColorStart + 3*g, nil
}

// LEDBrightness returns the LEDx_BRIGHTNESS register of RGB group g.
// Brightness is one scalar per group, independent of its color.
func (m RegisterMap) LEDBrightness(g uint8) (byte, error) {
	if g >= m.RGBGroups {
		return 0, indexError("led_brightness", "group", g, m.RGBGroups)
	}
	return m.LEDBrightnessStart + g, nil
}

// BrightnessBank returns the first LEDx_BRIGHTNESS register and the number
// of populated groups, for a single auto-incremented write of all of them.
func (m RegisterMap) BrightnessBank() (start byte, n uint8) {
	return m.LEDBrightnessStart, m.RGBGroups
}

func indexError(op, what string, idx, limit uint8) error {
	var a, b [3]byte
	return &errcode.E{
		C:   errcode.IndexOutOfRange,
		Op:  op,
		Msg: what + " " + string(conv.Utoa(a[:], uint64(idx))) + " >= " + string(conv.Utoa(b[:], uint64(limit))),
	}
}
