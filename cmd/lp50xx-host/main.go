// cmd/lp50xx-host drives an LP50xx from a Linux host through periph.io:
// enable, configure, paint the configured RGB groups, fade in, then hold
// until interrupted and put the chip back into standby.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"lp50xx-go/drivers/lp50xx"
	"lp50xx-go/x/ramp"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so deferred cleanup runs first.
func realMain() int {
	var (
		configPath = flag.String("config", "lp50xx.yaml", "path to lp50xx.yaml")
		busName    = flag.String("bus", "", "I2C bus name (overrides config)")
		variant    = flag.String("variant", "", "chip variant, e.g. LP5024 (overrides config)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Config (file optional, flags win) ----
	cfg, err := Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = Default()
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	if *variant != "" {
		cfg.Variant = *variant
	}

	// ---- Bus ----
	if _, err := host.Init(); err != nil {
		log.Error().Err(err).Msg("periph host init failed")
		return 1
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		log.Error().Err(err).Str("bus", cfg.Bus).Msg("open i2c bus")
		return 1
	}
	defer bus.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, bus, cfg, sleepTick(ctx)); err != nil {
		log.Error().Err(err).Msg("lp50xx")
		return 1
	}
	return 0
}

// run owns the chip for the lifetime of ctx. Once enabled, the chip is put
// back into standby on every return path.
func run(ctx context.Context, bus drivers.I2C, cfg *Config, tick ramp.Tick) (err error) {
	v, err := cfg.ChipVariant()
	if err != nil {
		return err
	}
	sel, err := cfg.AddressSelect()
	if err != nil {
		return err
	}
	chip, err := cfg.ChipConfig()
	if err != nil {
		return err
	}

	h, err := lp50xx.New(bus, v, sel)
	if err != nil {
		return err
	}
	lg := log.With().Str("variant", v.String()).Uint16("addr", h.Address()).Logger()

	en, err := h.Enable()
	if err != nil {
		return err
	}
	lg.Info().Msg("enabled")
	defer func() {
		if err == nil || en == nil {
			return
		}
		if _, derr := en.Disable(); derr != nil {
			lg.Warn().Err(derr).Msg("standby after failure")
			return
		}
		lg.Info().Msg("standby after failure")
	}()

	if err := en.Configure(chip); err != nil {
		return err
	}
	lg.Debug().
		Bool("log_scale", chip.LogScale).
		Bool("power_save", chip.PowerSave).
		Bool("pwm_dithering", chip.PWMDithering).
		Str("max_current", chip.MaxCurrent.String()).
		Msg("configured")

	// Start dark, paint colors, then fade the shared brightness in.
	if err := en.SetAllBrightness(0); err != nil {
		return err
	}
	for _, l := range cfg.LEDs {
		c, err := ParseColor(l.Color)
		if err != nil {
			return err
		}
		if err := en.SetRGB(l.Group, c); err != nil {
			return err
		}
		lg.Debug().Uint8("group", l.Group).Str("color", l.Color).Msg("color set")
	}

	fade := time.Duration(cfg.FadeMs) * time.Millisecond
	if err := ramp.Linear(0, cfg.Brightness, fade, cfg.FadeSteps, tick, en.SetAllBrightness); err != nil {
		return err
	}
	for _, l := range cfg.LEDs {
		if l.Brightness == nil {
			continue
		}
		if err := en.SetRGBBrightness(l.Group, *l.Brightness); err != nil {
			return err
		}
	}
	lg.Info().Uint8("brightness", cfg.Brightness).Int("leds", len(cfg.LEDs)).Msg("lit; waiting for signal")

	<-ctx.Done()

	_, err = en.Disable()
	en = nil
	if err != nil {
		return err
	}
	lg.Info().Msg("standby")
	return nil
}

// sleepTick waits d or until ctx is cancelled.
func sleepTick(ctx context.Context) ramp.Tick {
	return func(d time.Duration) bool {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
			return true
		}
	}
}
