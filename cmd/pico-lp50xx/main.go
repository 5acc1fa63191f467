//go:build rp2040 || rp2350

// cmd/pico-lp50xx cycles an LP5012 on i2c0 through a color wheel, fading the
// shared brightness in and out on every lap.
package main

import (
	"machine"
	"time"

	"lp50xx-go/drivers/lp50xx"
	"lp50xx-go/x/ramp"
)

// ---------- Configuration ----------

const (
	variant  = lp50xx.LP5012
	strap    = lp50xx.Address0
	level    = 0xC0
	fade     = 400 * time.Millisecond
	steps    = 24
	dwell    = 1500 * time.Millisecond
	lapPause = 250 * time.Millisecond
)

var wheel = []lp50xx.RGB{
	{R: 0xFF},
	{R: 0xFF, G: 0x80},
	{G: 0xFF},
	{G: 0xFF, B: 0xFF},
	{B: 0xFF},
	{R: 0xFF, B: 0xFF},
}

func must(what string, err error) {
	if err == nil {
		return
	}
	for {
		println(what, "failed:", err.Error())
		time.Sleep(2 * time.Second)
	}
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	i2c := machine.I2C0
	must("i2c0 configure", i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}))

	h, err := lp50xx.New(i2c, variant, strap)
	must("lp50xx new", err)
	must("lp50xx reset", h.Reset())
	en, err := h.Enable()
	must("lp50xx enable", err)

	cfg := lp50xx.DefaultConfig()
	cfg.PowerSave = false
	must("lp50xx configure", en.Configure(cfg))
	println("lp50xx", variant.String(), "ready at", en.Address())

	groups := variant.RGBGroups()
	for lap := 0; ; lap++ {
		for g := uint8(0); g < groups; g++ {
			c := wheel[(lap+int(g))%len(wheel)]
			must("set_rgb", en.SetRGB(g, c))
		}
		must("fade in", ramp.Linear(0, level, fade, steps, ramp.Sleep, en.SetAllBrightness))
		time.Sleep(dwell)
		must("fade out", ramp.Linear(level, 0, fade, steps, ramp.Sleep, en.SetAllBrightness))
		time.Sleep(lapPause)
	}
}
