package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerDIVWriteResets(t *testing.T) {
	var timer Timer
	timer.Tick(1000)
	require.NotZero(t, timer.Read(0xFF04), "expected DIV to have advanced")

	timer.Write(0xFF04, 0x7F)
	assert.Zero(t, timer.Read(0xFF04), "DIV after write should reset to 0")
}

func TestTimerOverflowTimingAndInterrupt(t *testing.T) {
	var timer Timer
	fired := 0
	timer.TimerInterruptHandler = func() { fired++ }

	timer.Write(0xFF06, 0x10) // TMA
	timer.Write(0xFF07, 0x05) // TAC: enabled, 4 M-cycles per tick
	timer.Write(0xFF05, 0x10) // TIMA starts at TMA

	wantCycles := 4 * (0xFF - 0x10 + 1)
	timer.Tick(wantCycles - 1)
	require.Zero(t, fired, "interrupt fired early, after %d of %d cycles", wantCycles-1, wantCycles)

	timer.Tick(1)
	assert.Equal(t, 1, fired, "expected exactly one overflow interrupt")
	assert.Equal(t, byte(0x10), timer.Read(0xFF05), "TIMA after overflow should reload from TMA")
}

func TestTimerDisabledResetsSubCounter(t *testing.T) {
	var timer Timer
	timer.Write(0xFF07, 0x05)
	timer.Tick(3)
	timer.Write(0xFF07, 0x01) // disable, keep same rate bits
	timer.Tick(1)
	timer.Write(0xFF07, 0x05) // re-enable
	timer.Tick(3)
	assert.Zero(t, timer.Read(0xFF05), "TIMA sub-counter should not have carried across disable")
}
