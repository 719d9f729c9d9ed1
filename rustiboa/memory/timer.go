package memory

import "github.com/xcorvisx/rustiboa/rustiboa/addr"

// timaPeriods maps TAC's low two bits to the M-cycle period between TIMA
// increments.
var timaPeriods = [4]int{256, 4, 16, 64}

// divPeriod is the M-cycle period of the free-running DIV counter.
const divPeriod = 64

// Timer maintains DIV and, when enabled by TAC, TIMA, and raises the timer
// interrupt on TIMA overflow.
type Timer struct {
	div, tima, tma, tac byte

	divSub  int
	timaSub int

	// TimerInterruptHandler is invoked on TIMA overflow. It is wired to the
	// owning MMU's interrupt-request path rather than called directly, per
	// the cross-component-effect convention.
	TimerInterruptHandler func()
}

// SetSeed seeds the internal divider state (DIV from the high byte, the
// DIV sub-counter from the low byte) for deterministic DIV behavior. Its
// only caller is MMU.SetTimerSeed.
func (t *Timer) SetSeed(seed uint16) {
	t.div = byte(seed >> 8)
	t.divSub = int(seed) & 0xFF
}

// Tick advances DIV and TIMA by cycles M-cycles.
func (t *Timer) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		t.divSub++
		if t.divSub >= divPeriod {
			t.divSub = 0
			t.div++
		}

		if t.tac&0x04 == 0 {
			t.timaSub = 0
			continue
		}

		t.timaSub++
		if t.timaSub < timaPeriods[t.tac&0x03] {
			continue
		}
		t.timaSub = 0

		if t.tima == 0xFF {
			t.tima = t.tma
			if t.TimerInterruptHandler != nil {
				t.TimerInterruptHandler()
			}
		} else {
			t.tima++
		}
	}
}

func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return t.div
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac
	default:
		return 0xFF
	}
}

func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		t.div = 0
		t.divSub = 0
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value
	}
}
