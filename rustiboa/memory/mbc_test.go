package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCartridge(t *testing.T, romBanks, ramSize int) *Cartridge {
	t.Helper()
	data := make([]byte, max(headerSize, romBanks*0x4000))
	for i := range data {
		data[i] = byte(i / 0x4000)
	}
	data[romSizeAddress] = 0
	data[ramSizeAddress] = 0
	cart, err := NewCartridgeWithData(data)
	require.NoError(t, err)
	cart.RAMSize = ramSize
	return cart
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func TestMBC1ROMBank0Fixed(t *testing.T) {
	cart := fakeCartridge(t, 8, 0)
	mbc := NewMBC1(cart)

	for addr := uint16(0x0000); addr < 0x10; addr++ {
		assert.Zero(t, mbc.Read(addr), "Read(0x%04X), bank 0 fixed", addr)
	}
}

func TestMBC1ROMBankSwitch(t *testing.T) {
	cart := fakeCartridge(t, 8, 0)
	mbc := NewMBC1(cart)

	for _, bank := range []uint8{1, 2, 5, 7} {
		mbc.Write(0x2000, bank)
		assert.Equal(t, bank, mbc.Read(0x4000), "bank %d", bank)
	}
}

func TestMBC1ROMBankZeroPromotedToOne(t *testing.T) {
	cart := fakeCartridge(t, 8, 0)
	mbc := NewMBC1(cart)

	mbc.Write(0x2000, 0x00)
	assert.Equal(t, uint8(1), mbc.Read(0x4000), "bank 0 should be promoted to 1")
}

func TestMBC1RAMDisabledByDefault(t *testing.T) {
	cart := fakeCartridge(t, 2, 0x2000)
	mbc := NewMBC1(cart)

	require.Equal(t, byte(0xFF), mbc.Read(0xA000), "read from disabled RAM")
	mbc.Write(0xA000, 0x42)
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000), "write while disabled should be dropped")
}

func TestMBC1RAMEnableAndWrite(t *testing.T) {
	cart := fakeCartridge(t, 2, 0x2000)
	mbc := NewMBC1(cart)

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0xA000, 0x42)
	assert.Equal(t, byte(0x42), mbc.Read(0xA000), "read after RAM enable")

	mbc.Write(0x0000, 0x00)
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000), "read after RAM disable")
}

func TestMBC1RAMWritePastSizeDropped(t *testing.T) {
	cart := fakeCartridge(t, 2, 0x2000)
	mbc := NewMBC1(cart)

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x6000, 0x01) // RAM-banking mode
	mbc.Write(0x4000, 0x03) // bank 3, beyond the 1-bank 8 KiB RAM
	mbc.Write(0xA000, 0x99)
	assert.Equal(t, byte(0xFF), mbc.Read(0xA000), "write past declared RAM size should be dropped")
}

func TestMBC1RAMBanking(t *testing.T) {
	cart := fakeCartridge(t, 2, 4*0x2000)
	mbc := NewMBC1(cart)

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x6000, 0x01) // RAM-banking mode

	for bank, value := range []uint8{0x42, 0x43, 0x44, 0x45} {
		mbc.Write(0x4000, uint8(bank))
		mbc.Write(0xA000, value)
	}
	for bank, value := range []uint8{0x42, 0x43, 0x44, 0x45} {
		mbc.Write(0x4000, uint8(bank))
		assert.Equal(t, value, mbc.Read(0xA000), "bank %d", bank)
	}
}

func TestMBC1RAMModeExposesHighROMBankForLowWindow(t *testing.T) {
	cart := fakeCartridge(t, 8, 0x2000)
	mbc := NewMBC1(cart)

	mbc.Write(0x6000, 0x01) // RAM-banking mode
	mbc.Write(0x4000, 0x02) // secondary index 2 -> bank 2<<5 = 64, out of our 8-bank fixture
	want := mbc.cart.ReadByte(2 << 5 * 0x4000)
	assert.Equal(t, want, mbc.Read(0x0000), "0x0000-0x3FFF window should follow secondary bank in RAM mode")
}

func TestMBC1OutOfRangeAddressReadsFF(t *testing.T) {
	cart := fakeCartridge(t, 2, 0)
	mbc := NewMBC1(cart)

	assert.Equal(t, byte(0xFF), mbc.Read(0xC000), "read from invalid address")
}
