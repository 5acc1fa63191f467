package lp50xx

// Register addresses and bitfields shared by every LP50xx variant.
const (
	regDeviceConfig0 = 0x00 // R/W, bit6 Chip_EN
	regDeviceConfig1 = 0x01 // R/W, global configuration (see codec.go)

	chipEnable = 1 << 6
	resetValue = 0xFF

	// Register address byte plus the widest burst (LP5036 brightness bank).
	maxWriteSize = 13
)

// Variant identifies one member of the LP50xx family.
type Variant uint8

const (
	VariantUnknown Variant = iota
	LP5009
	LP5012
	LP5018
	LP5024
	LP5030
	LP5036
)

// Variants lists every supported chip in ascending channel count.
var Variants = [...]Variant{LP5009, LP5012, LP5018, LP5024, LP5030, LP5036}

// layout is one row of the variant table. The smaller part of each pair
// (LP5009, LP5018, LP5030) shares its sibling's register layout.
type layout struct {
	name      string
	channels  uint8
	addrBase  uint16 // 7-bit, Address0
	addrBcast uint16 // 7-bit broadcast
	ledStart  byte   // LED0_BRIGHTNESS
	outStart  byte   // OUT0_COLOR
	reset     byte   // RESET
}

var layouts = [...]layout{
	LP5009: {name: "LP5009", channels: 9, addrBase: 0x30, addrBcast: 0x1C, ledStart: 0x07, outStart: 0x0B, reset: 0x17},
	LP5012: {name: "LP5012", channels: 12, addrBase: 0x30, addrBcast: 0x1C, ledStart: 0x07, outStart: 0x0B, reset: 0x17},
	LP5018: {name: "LP5018", channels: 18, addrBase: 0x28, addrBcast: 0x3C, ledStart: 0x07, outStart: 0x0F, reset: 0x27},
	LP5024: {name: "LP5024", channels: 24, addrBase: 0x28, addrBcast: 0x3C, ledStart: 0x07, outStart: 0x0F, reset: 0x27},
	LP5030: {name: "LP5030", channels: 30, addrBase: 0x30, addrBcast: 0x1C, ledStart: 0x08, outStart: 0x14, reset: 0x38},
	LP5036: {name: "LP5036", channels: 36, addrBase: 0x30, addrBcast: 0x1C, ledStart: 0x08, outStart: 0x14, reset: 0x38},
}

func (v Variant) Valid() bool { return v > VariantUnknown && int(v) < len(layouts) }

func (v Variant) String() string {
	if !v.Valid() {
		return "unknown"
	}
	return layouts[v].name
}

// ParseVariant maps a part name such as "LP5024" to its Variant.
func ParseVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if layouts[v].name == name {
			return v, true
		}
	}
	return VariantUnknown, false
}

// Channels returns the number of OUTx outputs, 0 for an invalid variant.
func (v Variant) Channels() uint8 {
	if !v.Valid() {
		return 0
	}
	return layouts[v].channels
}

// RGBGroups returns the number of RGB LEDs (three contiguous channels each).
func (v Variant) RGBGroups() uint8 { return v.Channels() / 3 }

// RegisterMap is the static register description of one variant.
// The zero value describes no registers; every lookup on it fails.
type RegisterMap struct {
	Variant Variant

	DeviceConfig0 byte // Chip_EN lives here
	DeviceConfig1 byte // global configuration
	Reset         byte

	// LEDBrightnessStart is LED0_BRIGHTNESS; one register per RGB group.
	LEDBrightnessStart byte
	// OutColorStart is OUT0_COLOR; one register per channel.
	OutColorStart byte

	Channels  uint8
	RGBGroups uint8
}

// Registers returns the register map for v. It performs no I/O.
func (v Variant) Registers() RegisterMap {
	if !v.Valid() {
		return RegisterMap{}
	}
	l := layouts[v]
	return RegisterMap{
		Variant:            v,
		DeviceConfig0:      regDeviceConfig0,
		DeviceConfig1:      regDeviceConfig1,
		Reset:              l.reset,
		LEDBrightnessStart: l.ledStart,
		OutColorStart:      l.outStart,
		Channels:           l.channels,
		RGBGroups:          l.channels / 3,
	}
}

// Address is the strap configuration of the ADDR1/ADDR0 pins.
type Address uint8

const (
	// Address0: ADDR0=GND, ADDR1=GND.
	Address0 Address = iota
	// Address1: ADDR0=GND, ADDR1=VCC.
	Address1
	// Address2: ADDR0=VCC, ADDR1=GND.
	Address2
	// Address3: ADDR0=VCC, ADDR1=VCC.
	Address3
	// AddressBroadcast reaches every part of the same layout on the bus.
	// Only meaningful when all of them are configured identically.
	AddressBroadcast
)

func (a Address) Valid() bool { return a <= AddressBroadcast }

// BusAddress resolves the 7-bit I2C address for v strapped as a.
// It returns false for an invalid variant or selector.
func (v Variant) BusAddress(a Address) (uint16, bool) {
	if !v.Valid() || !a.Valid() {
		return 0, false
	}
	l := layouts[v]
	if a == AddressBroadcast {
		return l.addrBcast, true
	}
	return l.addrBase + uint16(a), true
}
