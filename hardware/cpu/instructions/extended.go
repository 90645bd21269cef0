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

// The extended opcode page sits behind the $02 prefix in the native width
// modes. In emulation mode $02 is the legacy COP instruction and the page
// is unreachable.
//
// Sub-opcodes $80 to $97 are the extended ALU group. They carry a mode
// byte immediately after the sub-opcode:
//
//	[size:2][target:1][addr_mode:5]
//
// size selects an explicit operand width independent of the M flag; the
// 11 encoding is reserved. target selects the accumulator or, with one
// further byte, a register window slot as the destination. addr_mode
// selects the source operand encoding, including the 32-bit absolute
// modes that have no legacy equivalent.
//
// The barrel shift ($98) and extend/bit count ($99) groups use a fixed
// five byte encoding [$02][op][op|count][dest][src] where the third byte
// packs the operation into bits 7:5 and the shift count into bits 4:0. A
// count of $1f takes the shift amount from the accumulator.

// Extended ALU sub-opcode range.
const (
	ExtALUFirst uint8 = 0x80
	ExtALULast  uint8 = 0x97
)

// Extended sub-opcodes outside the ALU group.
const (
	ExtMULDp   uint8 = 0x00
	ExtMULUDp  uint8 = 0x01
	ExtMULAbs  uint8 = 0x02
	ExtMULUAbs uint8 = 0x03
	ExtDIVDp   uint8 = 0x04
	ExtDIVUDp  uint8 = 0x05
	ExtDIVAbs  uint8 = 0x06
	ExtDIVUAbs uint8 = 0x07

	ExtCASDp  uint8 = 0x10
	ExtCASAbs uint8 = 0x11
	ExtLLIDp  uint8 = 0x12
	ExtLLIAbs uint8 = 0x13
	ExtSCIDp  uint8 = 0x14
	ExtSCIAbs uint8 = 0x15

	ExtSDImm  uint8 = 0x20
	ExtSDDp   uint8 = 0x21
	ExtSBImm  uint8 = 0x22
	ExtSBDp   uint8 = 0x23
	ExtSDImm2 uint8 = 0x24
	ExtSDDp2  uint8 = 0x25

	ExtENR uint8 = 0x30
	ExtDSR uint8 = 0x31

	ExtTRAP uint8 = 0x40

	ExtFENCE  uint8 = 0x50
	ExtFENCER uint8 = 0x51
	ExtFENCEW uint8 = 0x52

	ExtSHIFT  uint8 = 0x98
	ExtEXTEND uint8 = 0x99

	ExtTTA uint8 = 0x9a
	ExtTAT uint8 = 0x9b

	ExtLDQDp  uint8 = 0x9c
	ExtLDQAbs uint8 = 0x9d
	ExtSTQDp  uint8 = 0x9e
	ExtSTQAbs uint8 = 0x9f

	ExtLEADp   uint8 = 0xa0
	ExtLEADpX  uint8 = 0xa1
	ExtLEAAbs  uint8 = 0xa2
	ExtLEAAbsX uint8 = 0xa3
)

// ExtDefinition defines an extended page instruction outside the ALU,
// shift and extend groups.
type ExtDefinition struct {
	SubOpCode      uint8
	Mnemonic       string
	Cycles         int
	AddressingMode AddressingMode
	Width          OperandWidth
	Effect         EffectCategory
}

// ExtDefinitions indexes the simple extended page instructions by
// sub-opcode. The ALU group and the shift/extend groups are decoded by
// ParseALUMode and ParseOpCount instead.
var ExtDefinitions = map[uint8]*ExtDefinition{
	ExtMULDp:   {ExtMULDp, "MUL", 8, DirectPage, WidthM, Read},
	ExtMULUDp:  {ExtMULUDp, "MULU", 8, DirectPage, WidthM, Read},
	ExtMULAbs:  {ExtMULAbs, "MUL", 8, Absolute, WidthM, Read},
	ExtMULUAbs: {ExtMULUAbs, "MULU", 8, Absolute, WidthM, Read},
	ExtDIVDp:   {ExtDIVDp, "DIV", 12, DirectPage, WidthM, Read},
	ExtDIVUDp:  {ExtDIVUDp, "DIVU", 12, DirectPage, WidthM, Read},
	ExtDIVAbs:  {ExtDIVAbs, "DIV", 12, Absolute, WidthM, Read},
	ExtDIVUAbs: {ExtDIVUAbs, "DIVU", 12, Absolute, WidthM, Read},

	ExtCASDp:  {ExtCASDp, "CAS", 8, DirectPage, WidthM, RMW},
	ExtCASAbs: {ExtCASAbs, "CAS", 8, Absolute, WidthM, RMW},
	ExtLLIDp:  {ExtLLIDp, "LLI", 5, DirectPage, WidthM, Read},
	ExtLLIAbs: {ExtLLIAbs, "LLI", 5, Absolute, WidthM, Read},
	ExtSCIDp:  {ExtSCIDp, "SCI", 5, DirectPage, WidthM, Write},
	ExtSCIAbs: {ExtSCIAbs, "SCI", 5, Absolute, WidthM, Write},

	ExtSDImm:  {ExtSDImm, "SD", 3, Immediate, WidthNone, Read},
	ExtSDDp:   {ExtSDDp, "SD", 5, DirectPage, WidthNone, Read},
	ExtSBImm:  {ExtSBImm, "SB", 3, Immediate, WidthNone, Read},
	ExtSBDp:   {ExtSBDp, "SB", 5, DirectPage, WidthNone, Read},
	ExtSDImm2: {ExtSDImm2, "SD", 3, Immediate, WidthNone, Read},
	ExtSDDp2:  {ExtSDDp2, "SD", 5, DirectPage, WidthNone, Read},

	ExtENR: {ExtENR, "ENR", 2, Implied, WidthNone, Read},
	ExtDSR: {ExtDSR, "DSR", 2, Implied, WidthNone, Read},

	ExtTRAP: {ExtTRAP, "TRAP", 8, Immediate, WidthByte, Interrupt},

	ExtFENCE:  {ExtFENCE, "FENCE", 2, Implied, WidthNone, Read},
	ExtFENCER: {ExtFENCER, "FENCER", 2, Implied, WidthNone, Read},
	ExtFENCEW: {ExtFENCEW, "FENCEW", 2, Implied, WidthNone, Read},

	ExtTTA: {ExtTTA, "TTA", 2, Implied, WidthNone, Read},
	ExtTAT: {ExtTAT, "TAT", 2, Implied, WidthNone, Read},

	ExtLDQDp:  {ExtLDQDp, "LDQ", 6, DirectPage, WidthNone, Read},
	ExtLDQAbs: {ExtLDQAbs, "LDQ", 6, Absolute, WidthNone, Read},
	ExtSTQDp:  {ExtSTQDp, "STQ", 6, DirectPage, WidthNone, Write},
	ExtSTQAbs: {ExtSTQAbs, "STQ", 6, Absolute, WidthNone, Write},

	ExtLEADp:   {ExtLEADp, "LEA", 3, DirectPage, WidthNone, Read},
	ExtLEADpX:  {ExtLEADpX, "LEA", 3, DirectPageX, WidthNone, Read},
	ExtLEAAbs:  {ExtLEAAbs, "LEA", 3, Absolute, WidthNone, Read},
	ExtLEAAbsX: {ExtLEAAbsX, "LEA", 3, AbsoluteX, WidthNone, Read},
}

// ALUOperation is the operation carried by an extended ALU sub-opcode.
type ALUOperation int

// Extended ALU operations. Sub-opcodes beyond CMP are reserved.
const (
	ALULoad ALUOperation = iota
	ALUADC
	ALUSBC
	ALUAND
	ALUORA
	ALUEOR
	ALUCMP
)

// ALUOperationFor maps an extended ALU sub-opcode to its operation. The
// second return value is false for reserved sub-opcodes.
func ALUOperationFor(subOpCode uint8) (ALUOperation, bool) {
	if subOpCode < ExtALUFirst || subOpCode > ExtALUFirst+uint8(ALUCMP) {
		return 0, false
	}
	return ALUOperation(subOpCode - ExtALUFirst), true
}

// ALUAddressing is the source operand encoding of an extended ALU mode
// byte.
type ALUAddressing int

// Extended ALU source operand encodings. The numeric values match the
// addr_mode field of the mode byte.
const (
	ALUSrcDpIndexedIndirect ALUAddressing = 0x00 // (dp,X)
	ALUSrcDp                ALUAddressing = 0x01 // dp
	ALUSrcImmediate         ALUAddressing = 0x02 // #imm, width from the size field
	ALUSrcA                 ALUAddressing = 0x03 // register direct A
	ALUSrcDpIndirectY       ALUAddressing = 0x04 // (dp),Y
	ALUSrcDpX               ALUAddressing = 0x05 // dp,X
	ALUSrcAbs               ALUAddressing = 0x06 // abs
	ALUSrcAbsX              ALUAddressing = 0x07 // abs,X
	ALUSrcAbsY              ALUAddressing = 0x08 // abs,Y
	ALUSrcDpIndirect        ALUAddressing = 0x09 // (dp)
	ALUSrcDpIndirectLong    ALUAddressing = 0x0a // [dp]
	ALUSrcDpIndirectLongY   ALUAddressing = 0x0b // [dp],Y
	ALUSrcStackRelative     ALUAddressing = 0x0c // sr,S
	ALUSrcStackRelIndirectY ALUAddressing = 0x0d // (sr,S),Y
	ALUSrcX                 ALUAddressing = 0x0e // register direct X
	ALUSrcY                 ALUAddressing = 0x0f // register direct Y
	ALUSrcAbs32             ALUAddressing = 0x10 // abs32
	ALUSrcAbs32X            ALUAddressing = 0x11 // abs32,X
	ALUSrcAbs32Y            ALUAddressing = 0x12 // abs32,Y
	ALUSrcAbs32Indirect     ALUAddressing = 0x13 // (abs32)
	ALUSrcAbs32IndexedInd   ALUAddressing = 0x14 // (abs32,X)
	ALUSrcAbs32IndirectY    ALUAddressing = 0x15 // (abs32),Y
	ALUSrcDpY               ALUAddressing = 0x16 // dp,Y
	ALUSrcT                 ALUAddressing = 0x17 // register direct T
)

// ALUMode is a decoded extended ALU mode byte.
type ALUMode struct {
	// Size is the explicit operand width in bytes (1, 2 or 4).
	Size int

	// WindowTarget is true when the destination is a register window slot
	// named by an extra encoding byte rather than the accumulator.
	WindowTarget bool

	Source ALUAddressing
}

// ParseALUMode decodes an extended ALU mode byte. The second return value
// is false when the size field holds the reserved 11 encoding or the
// addr_mode field names a reserved source encoding.
func ParseALUMode(v uint8) (ALUMode, bool) {
	size := (v >> 6) & 0x03
	if size == 0x03 {
		return ALUMode{}, false
	}

	src := ALUAddressing(v & 0x1f)
	if src > ALUSrcT {
		return ALUMode{}, false
	}

	return ALUMode{
		Size:         1 << size,
		WindowTarget: v&0x20 != 0,
		Source:       src,
	}, true
}

// ShiftOperation is the operation of a barrel shift op/count byte.
type ShiftOperation int

// Barrel shift operations. Values 5 to 7 are reserved.
const (
	ShiftSHL ShiftOperation = iota
	ShiftSHR
	ShiftSAR
	ShiftROL
	ShiftROR
)

// ExtendOperation is the operation of an extend/bit count op/count byte.
type ExtendOperation int

// Extend and bit count operations. Value 7 is reserved.
const (
	ExtendSEXT8 ExtendOperation = iota
	ExtendSEXT16
	ExtendZEXT8
	ExtendZEXT16
	ExtendCLZ
	ExtendCTZ
	ExtendPOPCNT
)

// ShiftByA is the count encoding that takes the shift amount from the
// accumulator.
const ShiftByA = 0x1f

// ParseOpCount splits the op/count byte of the shift and extend groups
// into its operation (bits 7:5) and count (bits 4:0) fields.
func ParseOpCount(v uint8) (int, int) {
	return int(v >> 5), int(v & 0x1f)
}

// IsFPU returns true when the extended sub-opcode belongs to the FPU
// groups. FPU instructions are not executed natively, they trap through
// the syscall vector table for software emulation.
func IsFPU(subOpCode uint8) bool {
	switch {
	case subOpCode >= 0xb0 && subOpCode <= 0xbb:
		return true
	case subOpCode >= 0xc0 && subOpCode <= 0xca:
		return true
	case subOpCode >= 0xd0 && subOpCode <= 0xdb:
		return true
	}
	return false
}
