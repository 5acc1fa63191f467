package lp50xx

// ConfigBits is the raw DEVICE_CONFIG1 register.
type ConfigBits uint8

// DEVICE_CONFIG1 fields. Bits 7:6 are reserved and read as 0.
const (
	CfgLEDGlobalOff   ConfigBits = 1 << 0
	CfgMaxCurrent35mA ConfigBits = 1 << 1
	CfgPWMDithering   ConfigBits = 1 << 2
	CfgAutoIncrement  ConfigBits = 1 << 3
	CfgPowerSave      ConfigBits = 1 << 4
	CfgLogScale       ConfigBits = 1 << 5

	// Reset value: log scale, power save, auto increment, dithering.
	CfgDefault = CfgLogScale | CfgPowerSave | CfgAutoIncrement | CfgPWMDithering
)

func (b ConfigBits) Has(flag ConfigBits) bool { return b&flag != 0 }

// MaxCurrent is the Max_Current_Option per output.
type MaxCurrent uint8

const (
	MaxCurrent25mA5 MaxCurrent = iota // 25.5 mA
	MaxCurrent35mA                    // 35 mA, only valid with VCC >= 3.3 V
)

func (m MaxCurrent) Valid() bool { return m <= MaxCurrent35mA }

// MicroAmps returns the current limit, 0 for an invalid option.
func (m MaxCurrent) MicroAmps() uint32 {
	switch m {
	case MaxCurrent25mA5:
		return 25_500
	case MaxCurrent35mA:
		return 35_000
	default:
		return 0
	}
}

func (m MaxCurrent) String() string {
	switch m {
	case MaxCurrent25mA5:
		return "25.5mA"
	case MaxCurrent35mA:
		return "35mA"
	default:
		return "unknown"
	}
}

// Config holds the global configuration fields of the chip.
type Config struct {
	// LogScale selects logarithmic instead of linear brightness mapping.
	LogScale bool
	// PowerSave drops the chip into power save mode when every output has
	// been effectively off for 30 ms.
	PowerSave bool
	// PWMDithering stretches PWM resolution from 9 to 12 bits.
	PWMDithering bool
	// MaxCurrent is the current limit for a single output.
	MaxCurrent MaxCurrent
}

// DefaultConfig matches the power-on state of DEVICE_CONFIG1.
func DefaultConfig() Config { return Decode(byte(CfgDefault)) }

// Encode packs c into DEVICE_CONFIG1. Auto increment is always set (burst
// writes depend on it), LED_Global_off is cleared and the reserved bits are 0.
func (c Config) Encode() byte {
	b := CfgAutoIncrement
	if c.LogScale {
		b |= CfgLogScale
	}
	if c.PowerSave {
		b |= CfgPowerSave
	}
	if c.PWMDithering {
		b |= CfgPWMDithering
	}
	if c.MaxCurrent == MaxCurrent35mA {
		b |= CfgMaxCurrent35mA
	}
	return byte(b)
}

// Decode unpacks a DEVICE_CONFIG1 value. Bits without a Config field are
// ignored.
func Decode(raw byte) Config {
	b := ConfigBits(raw)
	c := Config{
		LogScale:     b.Has(CfgLogScale),
		PowerSave:    b.Has(CfgPowerSave),
		PWMDithering: b.Has(CfgPWMDithering),
		MaxCurrent:   MaxCurrent25mA5,
	}
	if b.Has(CfgMaxCurrent35mA) {
		c.MaxCurrent = MaxCurrent35mA
	}
	return c
}
