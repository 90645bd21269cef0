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

package instructions_test

import (
	"testing"

	"github.com/benjcooley/m65832-sub002/hardware/cpu/instructions"
	"github.com/benjcooley/m65832-sub002/test"
)

func TestTableConsistency(t *testing.T) {
	for i, defn := range instructions.Definitions {
		if defn == nil {
			continue
		}
		test.Equate(t, defn.OpCode, uint8(i))
		if defn.Mnemonic == "" {
			t.Errorf("opcode %02x has no mnemonic", i)
		}
		if defn.Cycles < 1 {
			t.Errorf("opcode %02x has no cycle count", i)
		}
	}

	for sub, defn := range instructions.ExtDefinitions {
		test.Equate(t, defn.SubOpCode, sub)
		if sub >= instructions.ExtALUFirst && sub <= instructions.ExtALULast {
			t.Errorf("extended sub-opcode %02x shadows the ALU group", sub)
		}
	}
}

func TestALUModeByte(t *testing.T) {
	// long sized, accumulator target, direct page source
	m, ok := instructions.ParseALUMode(0x81)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, m.Size, 4)
	test.Equate(t, m.WindowTarget, false)
	test.Equate(t, int(m.Source), int(instructions.ALUSrcDp))

	// byte sized, window target, immediate source
	m, ok = instructions.ParseALUMode(0x22)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, m.Size, 1)
	test.Equate(t, m.WindowTarget, true)
	test.Equate(t, int(m.Source), int(instructions.ALUSrcImmediate))

	// the reserved size encoding is rejected
	_, ok = instructions.ParseALUMode(0xc1)
	test.ExpectedFailure(t, ok)

	// reserved source encodings are rejected
	_, ok = instructions.ParseALUMode(0x18)
	test.ExpectedFailure(t, ok)
	_, ok = instructions.ParseALUMode(0x1f)
	test.ExpectedFailure(t, ok)
}

func TestALUOperationRange(t *testing.T) {
	op, ok := instructions.ALUOperationFor(0x80)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, int(op), int(instructions.ALULoad))

	op, ok = instructions.ALUOperationFor(0x86)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, int(op), int(instructions.ALUCMP))

	// the rest of the group is reserved
	_, ok = instructions.ALUOperationFor(0x87)
	test.ExpectedFailure(t, ok)
	_, ok = instructions.ALUOperationFor(0x97)
	test.ExpectedFailure(t, ok)
	_, ok = instructions.ALUOperationFor(0x7f)
	test.ExpectedFailure(t, ok)
}

func TestOpCountSplit(t *testing.T) {
	op, count := instructions.ParseOpCount(0x5f)
	test.Equate(t, op, 2)
	test.Equate(t, count, instructions.ShiftByA)

	op, count = instructions.ParseOpCount(0x21)
	test.Equate(t, op, 1)
	test.Equate(t, count, 1)
}

func TestFPURanges(t *testing.T) {
	test.Equate(t, instructions.IsFPU(0xb0), true)
	test.Equate(t, instructions.IsFPU(0xbb), true)
	test.Equate(t, instructions.IsFPU(0xbc), false)
	test.Equate(t, instructions.IsFPU(0xc0), true)
	test.Equate(t, instructions.IsFPU(0xcb), false)
	test.Equate(t, instructions.IsFPU(0xd0), true)
	test.Equate(t, instructions.IsFPU(0xdb), true)
	test.Equate(t, instructions.IsFPU(0xdc), false)
	test.Equate(t, instructions.IsFPU(0x40), false)
}
