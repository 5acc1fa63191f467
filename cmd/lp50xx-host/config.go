package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"lp50xx-go/drivers/lp50xx"
)

type ChipCfg struct {
	LogScale     bool   `yaml:"log_scale"`
	PowerSave    bool   `yaml:"power_save"`
	PWMDithering bool   `yaml:"pwm_dithering"`
	MaxCurrent   string `yaml:"max_current"` // "25.5mA" | "35mA"
}

type LEDCfg struct {
	Group      uint8  `yaml:"group"`
	Color      string `yaml:"color"`                // "#RRGGBB"
	Brightness *uint8 `yaml:"brightness,omitempty"` // overrides the global level
}

type Config struct {
	Bus     string `yaml:"bus"`     // periph bus name, e.g. "1" or "/dev/i2c-1"
	Variant string `yaml:"variant"` // "LP5009" .. "LP5036"
	Address string `yaml:"address"` // "0".."3" | "broadcast"

	Chip ChipCfg `yaml:"chip"`

	Brightness uint8    `yaml:"brightness"`
	FadeMs     int      `yaml:"fade_ms"`
	FadeSteps  uint16   `yaml:"fade_steps"`
	LEDs       []LEDCfg `yaml:"leds"`
}

// Default mirrors the chip's power-on configuration.
func Default() *Config {
	d := lp50xx.DefaultConfig()
	return &Config{
		Bus:     "",
		Variant: "LP5024",
		Address: "0",
		Chip: ChipCfg{
			LogScale:     d.LogScale,
			PowerSave:    d.PowerSave,
			PWMDithering: d.PWMDithering,
			MaxCurrent:   d.MaxCurrent.String(),
		},
		Brightness: 0xFF,
		FadeMs:     500,
		FadeSteps:  32,
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) ChipVariant() (lp50xx.Variant, error) {
	v, ok := lp50xx.ParseVariant(strings.ToUpper(strings.TrimSpace(c.Variant)))
	if !ok {
		return lp50xx.VariantUnknown, fmt.Errorf("unknown variant %q", c.Variant)
	}
	return v, nil
}

func (c *Config) AddressSelect() (lp50xx.Address, error) {
	s := strings.ToLower(strings.TrimSpace(c.Address))
	if s == "broadcast" {
		return lp50xx.AddressBroadcast, nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n > 3 {
		return 0, fmt.Errorf("address must be 0..3 or broadcast, got %q", c.Address)
	}
	return lp50xx.Address(n), nil
}

func (c *Config) ChipConfig() (lp50xx.Config, error) {
	out := lp50xx.Config{
		LogScale:     c.Chip.LogScale,
		PowerSave:    c.Chip.PowerSave,
		PWMDithering: c.Chip.PWMDithering,
	}
	switch strings.ToLower(strings.TrimSpace(c.Chip.MaxCurrent)) {
	case "", "25.5ma":
		out.MaxCurrent = lp50xx.MaxCurrent25mA5
	case "35ma":
		out.MaxCurrent = lp50xx.MaxCurrent35mA
	default:
		return out, fmt.Errorf("max_current must be 25.5mA or 35mA, got %q", c.Chip.MaxCurrent)
	}
	return out, nil
}

// ParseColor accepts "#RRGGBB" or "RRGGBB".
func ParseColor(s string) (lp50xx.RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return lp50xx.RGB{}, fmt.Errorf("color %q: want RRGGBB", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return lp50xx.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return lp50xx.RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}
