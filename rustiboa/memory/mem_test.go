package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoRegionMirrorsWRAM(t *testing.T) {
	mmu := New()
	mmu.Write(0xC010, 0x42)
	assert.Equal(t, byte(0x42), mmu.Read(0xE010), "echo read should mirror WRAM write")

	mmu.Write(0xE020, 0x7A)
	assert.Equal(t, byte(0x7A), mmu.Read(0xC020), "WRAM read should mirror echo write")
}

func TestUnusableWindowReadsFFAndDropsWrites(t *testing.T) {
	mmu := New()
	for addr := uint16(0xFEA0); addr <= 0xFEFF; addr++ {
		mmu.Write(addr, 0x55)
		require.Equal(t, byte(0xFF), mmu.Read(addr), "Read(0x%04X)", addr)
	}
}

func TestDIVReadsZeroAfterWrite(t *testing.T) {
	mmu := New()
	mmu.Tick(1000)
	mmu.Write(0xFF04, 0x00)
	assert.Zero(t, mmu.Read(0xFF04), "any write to DIV resets it to zero")
}

func TestOAMDMATransfersAfter160Ticks(t *testing.T) {
	mmu := New()
	for i := 0; i < 256; i++ {
		mmu.Write(0xC000+uint16(i), byte(i))
	}

	mmu.Write(0xFF46, 0xC0) // source = 0xC000
	require.True(t, mmu.DMAActive(), "DMA did not start")

	mmu.Tick(159)
	require.True(t, mmu.DMAActive(), "DMA completed early")

	mmu.Tick(1)
	require.False(t, mmu.DMAActive(), "DMA still active after 160 ticks")

	for i := 0; i < 160; i++ {
		assert.Equal(t, byte(i), mmu.Read(0xFE00+uint16(i)), "OAM[%d]", i)
	}
}

func TestPostBootIODefaults(t *testing.T) {
	mmu := New()
	assert.Equal(t, byte(0x91), mmu.Read(0xFF40), "LCDC post-boot default")
	assert.Equal(t, byte(0x81), mmu.Read(0xFF41), "STAT post-boot default")
	assert.Equal(t, byte(0xFC), mmu.Read(0xFF47), "BGP post-boot default")
}
