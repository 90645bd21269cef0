// This file is part of M65832.
//
// M65832 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// M65832 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with M65832.  If not, see <https://www.gnu.org/licenses/>.

package registers

import (
	"fmt"
	"strings"
)

// Status bit positions in the 16-bit status word. The low byte keeps the
// legacy 65816 layout, the high byte carries the M65832 extensions.
const (
	StatusCarry            = 0x0001
	StatusZero             = 0x0002
	StatusInterruptDisable = 0x0004
	StatusDecimal          = 0x0008
	StatusIndexNarrow      = 0x0010
	StatusMemoryNarrow     = 0x0020
	StatusOverflow         = 0x0040
	StatusSign             = 0x0080
	StatusWidth0           = 0x0100
	StatusWidth1           = 0x0200
	StatusSupervisor       = 0x0400
	StatusWindow           = 0x0800
	StatusCompat           = 0x1000
)

// Status is the processor status word.
//
// The W1:W0 pair selects the processor width mode. The M and X flags retain
// their 65816 meaning of narrowing the accumulator and index registers to
// 8-bit; when clear the registers take the full width of the active mode.
type Status struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	Decimal          bool
	IndexNarrow      bool // the 65816 X flag
	MemoryNarrow     bool // the 65816 M flag
	Overflow         bool
	Sign             bool

	Width0     bool
	Width1     bool
	Supervisor bool
	Window     bool // direct page aliases the register window
	Compat     bool // illegal opcodes decode as NOP
}

// NewStatus is the preferred method of initialisation for the Status type.
func NewStatus() Status {
	return Status{}
}

// Reset the status word to the power-on state: emulation width mode,
// supervisor, interrupts disabled, decimal set. This mirrors the register
// file reset of the RTL.
func (sr *Status) Reset() {
	*sr = Status{
		InterruptDisable: true,
		Decimal:          true,
		Supervisor:       true,
	}
}

// Mode returns the processor width mode selected by the W1:W0 bits. The
// reserved 10 encoding resolves to native-32, the W1 bit dominates, so the
// function is total.
func (sr Status) Mode() Mode {
	if sr.Width1 {
		return ModeNative32
	}
	if sr.Width0 {
		return ModeNative16
	}
	return ModeEmulation
}

// SetMode loads the W1:W0 bits with the canonical encoding for the mode.
func (sr *Status) SetMode(m Mode) {
	sr.Width0 = m != ModeEmulation
	sr.Width1 = m == ModeNative32
}

// MWidth returns the accumulator/memory operand width. A pure function of
// (W1:W0, M): emulation forces 8-bit, otherwise M narrows to 8-bit and a
// clear M selects the full width of the mode.
func (sr Status) MWidth() Width {
	if sr.Mode() == ModeEmulation || sr.MemoryNarrow {
		return Width8
	}
	return sr.Mode().Max()
}

// XWidth returns the index register operand width. A pure function of
// (W1:W0, X) with the same shape as MWidth.
func (sr Status) XWidth() Width {
	if sr.Mode() == ModeEmulation || sr.IndexNarrow {
		return Width8
	}
	return sr.Mode().Max()
}

// ShortAddressing is true when effective addresses are 16-bit quantities,
// as they are in emulation and native-16 modes.
func (sr Status) ShortAddressing() bool {
	return sr.Mode() != ModeNative32
}

// PointerWidth is the width of pointers read by the indirect addressing
// modes: 16-bit in emulation and native-16, 32-bit in native-32.
func (sr Status) PointerWidth() Width {
	if sr.ShortAddressing() {
		return Width16
	}
	return Width32
}

// Value converts the Status struct into the 16-bit status word suitable for
// pushing onto the stack.
func (sr Status) Value() uint16 {
	var v uint16

	if sr.Carry {
		v |= StatusCarry
	}
	if sr.Zero {
		v |= StatusZero
	}
	if sr.InterruptDisable {
		v |= StatusInterruptDisable
	}
	if sr.Decimal {
		v |= StatusDecimal
	}
	if sr.IndexNarrow {
		v |= StatusIndexNarrow
	}
	if sr.MemoryNarrow {
		v |= StatusMemoryNarrow
	}
	if sr.Overflow {
		v |= StatusOverflow
	}
	if sr.Sign {
		v |= StatusSign
	}
	if sr.Width0 {
		v |= StatusWidth0
	}
	if sr.Width1 {
		v |= StatusWidth1
	}
	if sr.Supervisor {
		v |= StatusSupervisor
	}
	if sr.Window {
		v |= StatusWindow
	}
	if sr.Compat {
		v |= StatusCompat
	}

	return v
}

// Load converts a 16-bit status word (taken from the stack, for example)
// into the Status struct receiver. Undefined bits are discarded.
func (sr *Status) Load(v uint16) {
	sr.Carry = v&StatusCarry != 0
	sr.Zero = v&StatusZero != 0
	sr.InterruptDisable = v&StatusInterruptDisable != 0
	sr.Decimal = v&StatusDecimal != 0
	sr.IndexNarrow = v&StatusIndexNarrow != 0
	sr.MemoryNarrow = v&StatusMemoryNarrow != 0
	sr.Overflow = v&StatusOverflow != 0
	sr.Sign = v&StatusSign != 0
	sr.Width0 = v&StatusWidth0 != 0
	sr.Width1 = v&StatusWidth1 != 0
	sr.Supervisor = v&StatusSupervisor != 0
	sr.Window = v&StatusWindow != 0
	sr.Compat = v&StatusCompat != 0
}

// ToBits returns the status word as a labelled bit pattern. Uppercase
// letters indicate a set flag.
func (sr Status) ToBits() string {
	s := strings.Builder{}

	bit := func(f bool, c string) {
		if f {
			s.WriteString(strings.ToUpper(c))
		} else {
			s.WriteString(c)
		}
	}

	bit(sr.Compat, "k")
	bit(sr.Window, "r")
	bit(sr.Supervisor, "s")
	bit(sr.Sign, "n")
	bit(sr.Overflow, "v")
	bit(sr.MemoryNarrow, "m")
	bit(sr.IndexNarrow, "x")
	bit(sr.Decimal, "d")
	bit(sr.InterruptDisable, "i")
	bit(sr.Zero, "z")
	bit(sr.Carry, "c")

	return s.String()
}

func (sr Status) String() string {
	return fmt.Sprintf("%s [%s]", sr.ToBits(), sr.Mode())
}
