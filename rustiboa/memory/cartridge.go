package memory

import "fmt"

const (
	titleAddress          = 0x134
	titleLength           = 0x10
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	headerSize            = 0x150
)

// ramSizeBytes maps the RAM size code at 0x0149 to its effective size.
var ramSizeBytes = map[byte]int{0: 0, 1: 2 * 1024, 2: 8 * 1024, 3: 32 * 1024, 4: 128 * 1024, 5: 64 * 1024}

// Cartridge holds a loaded ROM image and the header fields the core reads
// to name the game and pick an MBC.
type Cartridge struct {
	data []byte

	Title   string
	Type    byte
	ROMSize int
	RAMSize int
}

// NewCartridgeWithData parses a raw .gb image. It rejects images shorter
// than the documented header size; any other cartridge type byte is
// accepted and simply falls back to NoMBC banking.
func NewCartridgeWithData(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("memory: cartridge image too short (%d bytes, need at least %d)", len(data), headerSize)
	}

	romSizeCode := data[romSizeAddress]
	ramSizeCode := data[ramSizeAddress]

	cart := &Cartridge{
		data:    make([]byte, len(data)),
		Title:   cleanGameboyTitle(data[titleAddress : titleAddress+titleLength]),
		Type:    data[cartridgeTypeAddress],
		ROMSize: 32 * 1024 << romSizeCode,
		RAMSize: ramSizeBytes[ramSizeCode],
	}
	copy(cart.data, data)

	return cart, nil
}

// ReadByte returns the byte at addr, or 0xFF if addr lies past the end of
// the loaded image.
func (c *Cartridge) ReadByte(addr int) byte {
	if addr < 0 || addr >= len(c.data) {
		return 0xFF
	}
	return c.data[addr]
}

// usesMBC1 reports whether the cartridge type byte names an MBC1 variant.
func (c *Cartridge) usesMBC1() bool {
	switch c.Type {
	case 0x01, 0x02, 0x03:
		return true
	default:
		return false
	}
}
