package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcorvisx/rustiboa/rustiboa/addr"
	"github.com/xcorvisx/rustiboa/rustiboa/memory"
)

func TestGPUProducesOneFrameIn70224Dots(t *testing.T) {
	mem := memory.New()
	gpu := NewGpu(mem)

	frames := 0
	for i := 0; i < 70224; i++ {
		gpu.Tick(1)
		if gpu.FrameReady {
			frames++
		}
	}

	assert.Equal(t, 1, frames, "frames in one scan")
}

func TestGPUFrozenWhenLCDDisabled(t *testing.T) {
	mem := memory.New()
	mem.Write(addr.LCDC, 0x00)
	gpu := NewGpu(mem)

	gpu.Tick(100000)

	assert.Zero(t, gpu.line, "PPU line should not advance while LCD disabled")
	assert.Zero(t, gpu.dot, "PPU dot should not advance while LCD disabled")
}

func TestGPURequestsVBlankInterrupt(t *testing.T) {
	mem := memory.New()
	gpu := NewGpu(mem)

	for i := 0; i < 70224; i++ {
		gpu.Tick(1)
		if gpu.FrameReady {
			break
		}
	}

	assert.NotZero(t, mem.Read(addr.IF)&byte(addr.VBlankInterrupt), "VBlank interrupt flag not set on frame-ready")
}

func TestGPUModeSequenceWithinFirstScanline(t *testing.T) {
	mem := memory.New()
	gpu := NewGpu(mem)

	require.Equal(t, ModeOAM, gpu.mode, "initial mode")

	gpu.Tick(oamSearchDots)
	require.Equal(t, ModeTransfer, gpu.mode, "mode after OAM search")

	for gpu.mode == ModeTransfer {
		gpu.Tick(1)
	}
	assert.Equal(t, ModeHBlank, gpu.mode, "mode after pixel transfer")
}

func TestGPUBackgroundPixelThroughBGP(t *testing.T) {
	mem := memory.New()
	mem.Write(addr.BGP, 0xE4) // identity-ish palette: 11 10 01 00

	mem.Write(addr.TileMap0, 0x01)
	tileAddr := addr.TileData0 + 16
	mem.Write(tileAddr, 0xFF) // low byte all 1s
	mem.Write(tileAddr+1, 0x00)

	gpu := NewGpu(mem)
	for i := 0; i < dotsPerScanline && gpu.x == 0; i++ {
		gpu.Tick(1)
	}

	assert.Equal(t, byte(1), gpu.fb.Shades()[0], "shade at (0,0)")
}

func TestGPUStatModeBitsStayInSync(t *testing.T) {
	mem := memory.New()
	gpu := NewGpu(mem)

	gpu.Tick(oamSearchDots)
	assert.Equal(t, byte(ModeTransfer), mem.Read(addr.STAT)&0x03, "STAT mode bits")
}
