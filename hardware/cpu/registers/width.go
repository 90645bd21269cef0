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

// Width is the operand width of a register access, expressed in bytes.
type Width int

// The three operand widths of the M65832.
const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

// Mask returns the value mask for the width.
func (w Width) Mask() uint32 {
	switch w {
	case Width8:
		return 0x000000ff
	case Width16:
		return 0x0000ffff
	}
	return 0xffffffff
}

// SignBit returns the sign bit for the width.
func (w Width) SignBit() uint32 {
	switch w {
	case Width8:
		return 0x00000080
	case Width16:
		return 0x00008000
	}
	return 0x80000000
}

// Bits returns the number of bits in the width.
func (w Width) Bits() int {
	return int(w) * 8
}

func (w Width) String() string {
	switch w {
	case Width8:
		return "8-bit"
	case Width16:
		return "16-bit"
	}
	return "32-bit"
}

// Mode is the processor width mode, encoded in the W1:W0 status bits.
type Mode int

// The processor width modes. The W1:W0 encoding is thermometer coded, 00 is
// 6502 emulation, 01 is native-16 and 11 is native-32. The reserved 10
// encoding is resolved in favour of the W1 bit and behaves as native-32.
const (
	ModeEmulation Mode = iota
	ModeNative16
	ModeNative32
)

func (m Mode) String() string {
	switch m {
	case ModeEmulation:
		return "emulation"
	case ModeNative16:
		return "native-16"
	}
	return "native-32"
}

// Max returns the widest operand width available in the mode.
func (m Mode) Max() Width {
	switch m {
	case ModeEmulation:
		return Width8
	case ModeNative16:
		return Width16
	}
	return Width32
}
