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

package instructions

import "fmt"

// AddressingMode describes how the operand for the instruction is located.
type AddressingMode int

// List of supported addressing modes.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative     // 8-bit branch displacement
	RelativeLong // 16-bit branch displacement

	DirectPage         // dp
	DirectPageX        // dp,X
	DirectPageY        // dp,Y
	Absolute           // abs
	AbsoluteX          // abs,X
	AbsoluteY          // abs,Y
	AbsoluteLong       // long (24-bit address)
	AbsoluteLongX      // long,X

	DirectPageIndirect        // (dp)
	DirectPageIndexedIndirect // (dp,X)
	DirectPageIndirectY       // (dp),Y
	DirectPageIndirectLong    // [dp]
	DirectPageIndirectLongY   // [dp],Y

	AbsoluteIndirect        // (abs), JMP only
	AbsoluteIndexedIndirect // (abs,X), JMP/JSR only
	AbsoluteIndirectLong    // [abs], JML only

	StackRelative          // sr,S
	StackRelativeIndirectY // (sr,S),Y

	BlockMove // MVN/MVP source and destination pages
)

// OperandWidth classifies the width of an instruction's data operand. The
// width flags of the status word resolve WidthM and WidthX to a concrete
// width at execution time.
type OperandWidth int

// List of operand width classes.
const (
	WidthNone OperandWidth = iota
	WidthM                 // follows the accumulator width
	WidthX                 // follows the index register width
	WidthByte              // always 8-bit
	WidthWord              // always 16-bit
)

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Read EffectCategory = iota
	Write
	RMW

	// the following categories have a variable effect on the program
	// counter

	Flow
	Subroutine
	Interrupt
)

// Definition defines each instruction in the standard opcode page; one per
// opcode.
type Definition struct {
	OpCode         uint8
	Mnemonic       string
	Cycles         int
	AddressingMode AddressingMode
	Width          OperandWidth
	Effect         EffectCategory
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}
	return fmt.Sprintf("%02x %s (%d cycles) [mode=%d width=%d effect=%d]", defn.OpCode, defn.Mnemonic, defn.Cycles, defn.AddressingMode, defn.Width, defn.Effect)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return (defn.AddressingMode == Relative || defn.AddressingMode == RelativeLong) && defn.Effect == Flow
}
