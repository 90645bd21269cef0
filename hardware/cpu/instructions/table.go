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

// Definitions is the standard opcode page, indexed by opcode. A nil entry
// is an undefined opcode; the execution engine raises an illegal
// instruction exception (or decodes a NOP when the K flag is set).
//
// The $02 entry is the extended page prefix in the native width modes and
// the legacy COP instruction in emulation mode.
var Definitions = [256]*Definition{
	0x00: {0x00, "BRK", 7, Implied, WidthNone, Interrupt},
	0x01: {0x01, "ORA", 6, DirectPageIndexedIndirect, WidthM, Read},
	0x02: {0x02, "EXT", 2, Implied, WidthNone, Interrupt},
	0x03: {0x03, "ORA", 4, StackRelative, WidthM, Read},
	0x04: {0x04, "TSB", 5, DirectPage, WidthM, RMW},
	0x05: {0x05, "ORA", 3, DirectPage, WidthM, Read},
	0x06: {0x06, "ASL", 5, DirectPage, WidthM, RMW},
	0x07: {0x07, "ORA", 6, DirectPageIndirectLong, WidthM, Read},
	0x08: {0x08, "PHP", 3, Implied, WidthNone, Write},
	0x09: {0x09, "ORA", 2, Immediate, WidthM, Read},
	0x0a: {0x0a, "ASL", 2, Accumulator, WidthM, RMW},
	0x0b: {0x0b, "PHD", 4, Implied, WidthNone, Write},
	0x0c: {0x0c, "TSB", 6, Absolute, WidthM, RMW},
	0x0d: {0x0d, "ORA", 4, Absolute, WidthM, Read},
	0x0e: {0x0e, "ASL", 6, Absolute, WidthM, RMW},

	0x10: {0x10, "BPL", 2, Relative, WidthNone, Flow},
	0x11: {0x11, "ORA", 5, DirectPageIndirectY, WidthM, Read},
	0x12: {0x12, "ORA", 5, DirectPageIndirect, WidthM, Read},
	0x13: {0x13, "ORA", 7, StackRelativeIndirectY, WidthM, Read},
	0x14: {0x14, "TRB", 5, DirectPage, WidthM, RMW},
	0x15: {0x15, "ORA", 4, DirectPageX, WidthM, Read},
	0x16: {0x16, "ASL", 6, DirectPageX, WidthM, RMW},
	0x17: {0x17, "ORA", 6, DirectPageIndirectLongY, WidthM, Read},
	0x18: {0x18, "CLC", 2, Implied, WidthNone, Read},
	0x19: {0x19, "ORA", 4, AbsoluteY, WidthM, Read},
	0x1a: {0x1a, "INC", 2, Accumulator, WidthM, RMW},
	0x1b: {0x1b, "TCS", 2, Implied, WidthNone, Read},
	0x1c: {0x1c, "TRB", 6, Absolute, WidthM, RMW},
	0x1d: {0x1d, "ORA", 4, AbsoluteX, WidthM, Read},
	0x1e: {0x1e, "ASL", 7, AbsoluteX, WidthM, RMW},

	0x20: {0x20, "JSR", 6, Absolute, WidthNone, Subroutine},
	0x21: {0x21, "AND", 6, DirectPageIndexedIndirect, WidthM, Read},
	0x22: {0x22, "JSL", 8, AbsoluteLong, WidthNone, Subroutine},
	0x23: {0x23, "AND", 4, StackRelative, WidthM, Read},
	0x24: {0x24, "BIT", 3, DirectPage, WidthM, Read},
	0x25: {0x25, "AND", 3, DirectPage, WidthM, Read},
	0x26: {0x26, "ROL", 5, DirectPage, WidthM, RMW},
	0x27: {0x27, "AND", 6, DirectPageIndirectLong, WidthM, Read},
	0x28: {0x28, "PLP", 4, Implied, WidthNone, Read},
	0x29: {0x29, "AND", 2, Immediate, WidthM, Read},
	0x2a: {0x2a, "ROL", 2, Accumulator, WidthM, RMW},
	0x2b: {0x2b, "PLD", 5, Implied, WidthNone, Read},
	0x2c: {0x2c, "BIT", 4, Absolute, WidthM, Read},
	0x2d: {0x2d, "AND", 4, Absolute, WidthM, Read},
	0x2e: {0x2e, "ROL", 6, Absolute, WidthM, RMW},

	0x30: {0x30, "BMI", 2, Relative, WidthNone, Flow},
	0x31: {0x31, "AND", 5, DirectPageIndirectY, WidthM, Read},
	0x32: {0x32, "AND", 5, DirectPageIndirect, WidthM, Read},
	0x33: {0x33, "AND", 7, StackRelativeIndirectY, WidthM, Read},
	0x34: {0x34, "BIT", 4, DirectPageX, WidthM, Read},
	0x35: {0x35, "AND", 4, DirectPageX, WidthM, Read},
	0x36: {0x36, "ROL", 6, DirectPageX, WidthM, RMW},
	0x37: {0x37, "AND", 6, DirectPageIndirectLongY, WidthM, Read},
	0x38: {0x38, "SEC", 2, Implied, WidthNone, Read},
	0x39: {0x39, "AND", 4, AbsoluteY, WidthM, Read},
	0x3a: {0x3a, "DEC", 2, Accumulator, WidthM, RMW},
	0x3b: {0x3b, "TSC", 2, Implied, WidthNone, Read},
	0x3c: {0x3c, "BIT", 4, AbsoluteX, WidthM, Read},
	0x3d: {0x3d, "AND", 4, AbsoluteX, WidthM, Read},
	0x3e: {0x3e, "ROL", 7, AbsoluteX, WidthM, RMW},

	0x40: {0x40, "RTI", 6, Implied, WidthNone, Interrupt},
	0x41: {0x41, "EOR", 6, DirectPageIndexedIndirect, WidthM, Read},
	0x43: {0x43, "EOR", 4, StackRelative, WidthM, Read},
	0x44: {0x44, "MVN", 7, BlockMove, WidthNone, RMW},
	0x45: {0x45, "EOR", 3, DirectPage, WidthM, Read},
	0x46: {0x46, "LSR", 5, DirectPage, WidthM, RMW},
	0x47: {0x47, "EOR", 6, DirectPageIndirectLong, WidthM, Read},
	0x48: {0x48, "PHA", 3, Implied, WidthNone, Write},
	0x49: {0x49, "EOR", 2, Immediate, WidthM, Read},
	0x4a: {0x4a, "LSR", 2, Accumulator, WidthM, RMW},
	0x4b: {0x4b, "PHK", 3, Implied, WidthNone, Write},
	0x4c: {0x4c, "JMP", 3, Absolute, WidthNone, Flow},
	0x4d: {0x4d, "EOR", 4, Absolute, WidthM, Read},
	0x4e: {0x4e, "LSR", 6, Absolute, WidthM, RMW},

	0x50: {0x50, "BVC", 2, Relative, WidthNone, Flow},
	0x51: {0x51, "EOR", 5, DirectPageIndirectY, WidthM, Read},
	0x52: {0x52, "EOR", 5, DirectPageIndirect, WidthM, Read},
	0x53: {0x53, "EOR", 7, StackRelativeIndirectY, WidthM, Read},
	0x54: {0x54, "MVP", 7, BlockMove, WidthNone, RMW},
	0x55: {0x55, "EOR", 4, DirectPageX, WidthM, Read},
	0x56: {0x56, "LSR", 6, DirectPageX, WidthM, RMW},
	0x57: {0x57, "EOR", 6, DirectPageIndirectLongY, WidthM, Read},
	0x58: {0x58, "CLI", 2, Implied, WidthNone, Read},
	0x59: {0x59, "EOR", 4, AbsoluteY, WidthM, Read},
	0x5a: {0x5a, "PHY", 3, Implied, WidthNone, Write},
	0x5b: {0x5b, "TCD", 2, Implied, WidthNone, Read},
	0x5c: {0x5c, "JMP", 4, AbsoluteLong, WidthNone, Flow},
	0x5d: {0x5d, "EOR", 4, AbsoluteX, WidthM, Read},
	0x5e: {0x5e, "LSR", 7, AbsoluteX, WidthM, RMW},

	0x60: {0x60, "RTS", 6, Implied, WidthNone, Subroutine},
	0x61: {0x61, "ADC", 6, DirectPageIndexedIndirect, WidthM, Read},
	0x62: {0x62, "PER", 6, RelativeLong, WidthNone, Write},
	0x63: {0x63, "ADC", 4, StackRelative, WidthM, Read},
	0x64: {0x64, "STZ", 3, DirectPage, WidthM, Write},
	0x65: {0x65, "ADC", 3, DirectPage, WidthM, Read},
	0x66: {0x66, "ROR", 5, DirectPage, WidthM, RMW},
	0x67: {0x67, "ADC", 6, DirectPageIndirectLong, WidthM, Read},
	0x68: {0x68, "PLA", 4, Implied, WidthNone, Read},
	0x69: {0x69, "ADC", 2, Immediate, WidthM, Read},
	0x6a: {0x6a, "ROR", 2, Accumulator, WidthM, RMW},
	0x6b: {0x6b, "RTL", 6, Implied, WidthNone, Subroutine},
	0x6c: {0x6c, "JMP", 5, AbsoluteIndirect, WidthNone, Flow},
	0x6d: {0x6d, "ADC", 4, Absolute, WidthM, Read},
	0x6e: {0x6e, "ROR", 6, Absolute, WidthM, RMW},

	0x70: {0x70, "BVS", 2, Relative, WidthNone, Flow},
	0x71: {0x71, "ADC", 5, DirectPageIndirectY, WidthM, Read},
	0x72: {0x72, "ADC", 5, DirectPageIndirect, WidthM, Read},
	0x73: {0x73, "ADC", 7, StackRelativeIndirectY, WidthM, Read},
	0x74: {0x74, "STZ", 4, DirectPageX, WidthM, Write},
	0x75: {0x75, "ADC", 4, DirectPageX, WidthM, Read},
	0x76: {0x76, "ROR", 6, DirectPageX, WidthM, RMW},
	0x77: {0x77, "ADC", 6, DirectPageIndirectLongY, WidthM, Read},
	0x78: {0x78, "SEI", 2, Implied, WidthNone, Read},
	0x79: {0x79, "ADC", 4, AbsoluteY, WidthM, Read},
	0x7a: {0x7a, "PLY", 4, Implied, WidthNone, Read},
	0x7b: {0x7b, "TDC", 2, Implied, WidthNone, Read},
	0x7c: {0x7c, "JMP", 6, AbsoluteIndexedIndirect, WidthNone, Flow},
	0x7d: {0x7d, "ADC", 4, AbsoluteX, WidthM, Read},
	0x7e: {0x7e, "ROR", 7, AbsoluteX, WidthM, RMW},

	0x80: {0x80, "BRA", 3, Relative, WidthNone, Flow},
	0x81: {0x81, "STA", 6, DirectPageIndexedIndirect, WidthM, Write},
	0x82: {0x82, "BRL", 4, RelativeLong, WidthNone, Flow},
	0x83: {0x83, "STA", 4, StackRelative, WidthM, Write},
	0x84: {0x84, "STY", 3, DirectPage, WidthX, Write},
	0x85: {0x85, "STA", 3, DirectPage, WidthM, Write},
	0x86: {0x86, "STX", 3, DirectPage, WidthX, Write},
	0x87: {0x87, "STA", 6, DirectPageIndirectLong, WidthM, Write},
	0x88: {0x88, "DEY", 2, Implied, WidthNone, Read},
	0x89: {0x89, "BIT", 2, Immediate, WidthM, Read},
	0x8a: {0x8a, "TXA", 2, Implied, WidthNone, Read},
	0x8b: {0x8b, "PHB", 3, Implied, WidthNone, Write},
	0x8c: {0x8c, "STY", 4, Absolute, WidthX, Write},
	0x8d: {0x8d, "STA", 4, Absolute, WidthM, Write},
	0x8e: {0x8e, "STX", 4, Absolute, WidthX, Write},
	0x8f: {0x8f, "STA", 5, AbsoluteLong, WidthM, Write},

	0x90: {0x90, "BCC", 2, Relative, WidthNone, Flow},
	0x91: {0x91, "STA", 6, DirectPageIndirectY, WidthM, Write},
	0x92: {0x92, "STA", 5, DirectPageIndirect, WidthM, Write},
	0x93: {0x93, "STA", 6, DirectPageIndirectLongY, WidthM, Write},
	0x94: {0x94, "STY", 4, DirectPageX, WidthX, Write},
	0x95: {0x95, "STA", 4, DirectPageX, WidthM, Write},
	0x96: {0x96, "STX", 4, DirectPageY, WidthX, Write},
	0x97: {0x97, "STA", 6, DirectPageIndirectLongY, WidthM, Write},
	0x98: {0x98, "TYA", 2, Implied, WidthNone, Read},
	0x99: {0x99, "STA", 5, AbsoluteY, WidthM, Write},
	0x9a: {0x9a, "TXS", 2, Implied, WidthNone, Read},
	0x9b: {0x9b, "TXY", 2, Implied, WidthNone, Read},
	0x9c: {0x9c, "STZ", 4, Absolute, WidthM, Write},
	0x9d: {0x9d, "STA", 5, AbsoluteX, WidthM, Write},
	0x9e: {0x9e, "STZ", 5, AbsoluteX, WidthM, Write},
	0x9f: {0x9f, "STA", 5, AbsoluteLongX, WidthM, Write},

	0xa0: {0xa0, "LDY", 2, Immediate, WidthX, Read},
	0xa1: {0xa1, "LDA", 6, DirectPageIndexedIndirect, WidthM, Read},
	0xa2: {0xa2, "LDX", 2, Immediate, WidthX, Read},
	0xa3: {0xa3, "LDA", 4, StackRelative, WidthM, Read},
	0xa4: {0xa4, "LDY", 3, DirectPage, WidthX, Read},
	0xa5: {0xa5, "LDA", 3, DirectPage, WidthM, Read},
	0xa6: {0xa6, "LDX", 3, DirectPage, WidthX, Read},
	0xa7: {0xa7, "LDA", 6, DirectPageIndirectLong, WidthM, Read},
	0xa8: {0xa8, "TAY", 2, Implied, WidthNone, Read},
	0xa9: {0xa9, "LDA", 2, Immediate, WidthM, Read},
	0xaa: {0xaa, "TAX", 2, Implied, WidthNone, Read},
	0xab: {0xab, "LDA", 5, AbsoluteLong, WidthM, Read},
	0xac: {0xac, "LDY", 4, Absolute, WidthX, Read},
	0xad: {0xad, "LDA", 4, Absolute, WidthM, Read},
	0xae: {0xae, "LDX", 4, Absolute, WidthX, Read},
	0xaf: {0xaf, "LDA", 7, StackRelativeIndirectY, WidthM, Read},

	0xb0: {0xb0, "BCS", 2, Relative, WidthNone, Flow},
	0xb1: {0xb1, "LDA", 5, DirectPageIndirectY, WidthM, Read},
	0xb2: {0xb2, "LDA", 5, DirectPageIndirect, WidthM, Read},
	0xb3: {0xb3, "LDA", 6, DirectPageIndirectLongY, WidthM, Read},
	0xb4: {0xb4, "LDY", 4, DirectPageX, WidthX, Read},
	0xb5: {0xb5, "LDA", 4, DirectPageX, WidthM, Read},
	0xb6: {0xb6, "LDX", 4, DirectPageY, WidthX, Read},
	0xb7: {0xb7, "LDA", 6, DirectPageIndirectLongY, WidthM, Read},
	0xb8: {0xb8, "CLV", 2, Implied, WidthNone, Read},
	0xb9: {0xb9, "LDA", 4, AbsoluteY, WidthM, Read},
	0xba: {0xba, "TSX", 2, Implied, WidthNone, Read},
	0xbb: {0xbb, "TYX", 2, Implied, WidthNone, Read},
	0xbc: {0xbc, "LDY", 4, AbsoluteX, WidthX, Read},
	0xbd: {0xbd, "LDA", 4, AbsoluteX, WidthM, Read},
	0xbe: {0xbe, "LDX", 4, AbsoluteY, WidthX, Read},
	0xbf: {0xbf, "LDA", 5, AbsoluteLongX, WidthM, Read},

	0xc0: {0xc0, "CPY", 2, Immediate, WidthX, Read},
	0xc1: {0xc1, "CMP", 6, DirectPageIndexedIndirect, WidthM, Read},
	0xc2: {0xc2, "REP", 3, Immediate, WidthByte, Read},
	0xc3: {0xc3, "CMP", 4, StackRelative, WidthM, Read},
	0xc4: {0xc4, "CPY", 3, DirectPage, WidthX, Read},
	0xc5: {0xc5, "CMP", 3, DirectPage, WidthM, Read},
	0xc6: {0xc6, "DEC", 5, DirectPage, WidthM, RMW},
	0xc7: {0xc7, "CMP", 6, DirectPageIndirectLong, WidthM, Read},
	0xc8: {0xc8, "INY", 2, Implied, WidthNone, Read},
	0xc9: {0xc9, "CMP", 2, Immediate, WidthM, Read},
	0xca: {0xca, "DEX", 2, Implied, WidthNone, Read},
	0xcb: {0xcb, "WAI", 3, Implied, WidthNone, Read},
	0xcc: {0xcc, "CPY", 4, Absolute, WidthX, Read},
	0xcd: {0xcd, "CMP", 4, Absolute, WidthM, Read},
	0xce: {0xce, "DEC", 6, Absolute, WidthM, RMW},

	0xd0: {0xd0, "BNE", 2, Relative, WidthNone, Flow},
	0xd1: {0xd1, "CMP", 5, DirectPageIndirectY, WidthM, Read},
	0xd2: {0xd2, "CMP", 5, DirectPageIndirect, WidthM, Read},
	0xd3: {0xd3, "CMP", 7, StackRelativeIndirectY, WidthM, Read},
	0xd4: {0xd4, "PEI", 6, DirectPage, WidthNone, Write},
	0xd5: {0xd5, "CMP", 4, DirectPageX, WidthM, Read},
	0xd6: {0xd6, "DEC", 6, DirectPageX, WidthM, RMW},
	0xd7: {0xd7, "CMP", 6, DirectPageIndirectLongY, WidthM, Read},
	0xd8: {0xd8, "CLD", 2, Implied, WidthNone, Read},
	0xd9: {0xd9, "CMP", 4, AbsoluteY, WidthM, Read},
	0xda: {0xda, "PHX", 3, Implied, WidthNone, Write},
	0xdb: {0xdb, "STP", 3, Implied, WidthNone, Interrupt},
	0xdc: {0xdc, "JML", 6, AbsoluteIndirectLong, WidthNone, Flow},
	0xdd: {0xdd, "CMP", 4, AbsoluteX, WidthM, Read},
	0xde: {0xde, "DEC", 7, AbsoluteX, WidthM, RMW},

	0xe0: {0xe0, "CPX", 2, Immediate, WidthX, Read},
	0xe1: {0xe1, "SBC", 6, DirectPageIndexedIndirect, WidthM, Read},
	0xe2: {0xe2, "SEP", 3, Immediate, WidthByte, Read},
	0xe3: {0xe3, "SBC", 4, StackRelative, WidthM, Read},
	0xe4: {0xe4, "CPX", 3, DirectPage, WidthX, Read},
	0xe5: {0xe5, "SBC", 3, DirectPage, WidthM, Read},
	0xe6: {0xe6, "INC", 5, DirectPage, WidthM, RMW},
	0xe7: {0xe7, "SBC", 6, DirectPageIndirectLong, WidthM, Read},
	0xe8: {0xe8, "INX", 2, Implied, WidthNone, Read},
	0xe9: {0xe9, "SBC", 2, Immediate, WidthM, Read},
	0xea: {0xea, "NOP", 2, Implied, WidthNone, Read},
	0xeb: {0xeb, "XBA", 3, Implied, WidthNone, Read},
	0xec: {0xec, "CPX", 4, Absolute, WidthX, Read},
	0xed: {0xed, "SBC", 4, Absolute, WidthM, Read},
	0xee: {0xee, "INC", 6, Absolute, WidthM, RMW},

	0xf0: {0xf0, "BEQ", 2, Relative, WidthNone, Flow},
	0xf1: {0xf1, "SBC", 5, DirectPageIndirectY, WidthM, Read},
	0xf2: {0xf2, "SBC", 5, DirectPageIndirect, WidthM, Read},
	0xf3: {0xf3, "SBC", 7, StackRelativeIndirectY, WidthM, Read},
	0xf4: {0xf4, "PEA", 5, Immediate, WidthWord, Write},
	0xf5: {0xf5, "SBC", 4, DirectPageX, WidthM, Read},
	0xf6: {0xf6, "INC", 6, DirectPageX, WidthM, RMW},
	0xf7: {0xf7, "SBC", 6, DirectPageIndirectLongY, WidthM, Read},
	0xf8: {0xf8, "SED", 2, Implied, WidthNone, Read},
	0xf9: {0xf9, "SBC", 4, AbsoluteY, WidthM, Read},
	0xfa: {0xfa, "PLX", 4, Implied, WidthNone, Read},
	0xfb: {0xfb, "XCE", 2, Implied, WidthNone, Read},
	0xfc: {0xfc, "JSR", 8, AbsoluteIndexedIndirect, WidthNone, Subroutine},
	0xfd: {0xfd, "SBC", 4, AbsoluteX, WidthM, Read},
	0xfe: {0xfe, "INC", 7, AbsoluteX, WidthM, RMW},
}
