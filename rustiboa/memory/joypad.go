package memory

import "github.com/xcorvisx/rustiboa/rustiboa/addr"

// JoypadButton identifies one of the eight buttons packed into the external
// joypad byte the shell writes to 0xFF00: bit 0 Right, 1 Left, 2 Up, 3
// Down, 4 A, 5 B, 6 Start, 7 Select. The byte is active-low, so a cleared
// bit means the button is held down.
type JoypadButton uint8

const (
	JoypadRight JoypadButton = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadStart
	JoypadSelect
)

// SetButtonState updates the 0xFF00 register for a single button and
// requests the joypad interrupt on any newly-pressed (1->0) bit.
func (m *MMU) SetButtonState(button JoypadButton, pressed bool) {
	m.writeJoypad(m.joypadWithButton(button, pressed))
}

func (m *MMU) joypadWithButton(button JoypadButton, pressed bool) uint8 {
	current := m.memory[addr.P1]
	mask := uint8(1) << uint8(button)
	if pressed {
		return current &^ mask
	}
	return current | mask
}
