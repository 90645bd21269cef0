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

package hardware_test

import (
	"testing"

	"github.com/benjcooley/m65832-sub002/hardware"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/test"
)

const origin = 0x8000

func newTestMachine(t *testing.T, program []byte) *hardware.M65832 {
	t.Helper()

	m65 := hardware.NewM65832(0x100000)
	m65.Mem.PhysWrite16(uint64(memorymap.VecResetEmu), origin)
	test.ExpectedSuccess(t, m65.Mem.LoadBinary(origin, program))
	m65.Reset()

	return m65
}

func TestRunUntilSTP(t *testing.T) {
	// LDA #$07 / STA $10 / STP
	m65 := newTestMachine(t, []byte{0xa9, 0x07, 0x85, 0x10, 0xdb})

	test.ExpectedSuccess(t, m65.Run(nil))
	test.ExpectedSuccess(t, m65.CPU.Halted)
	test.Equate(t, m65.Mem.PhysRead8(0x10), uint8(0x07))
	test.Equate(t, m65.CPU.InstructionCount, uint64(3))
}

func TestRunContinueCheck(t *testing.T) {
	// INX / JMP $8000
	m65 := newTestMachine(t, []byte{0xe8, 0x4c, 0x00, 0x80})

	count := 0
	test.ExpectedSuccess(t, m65.Run(func() (bool, error) {
		count++
		return count < 10, nil
	}))
	test.Equate(t, m65.CPU.InstructionCount, uint64(10))
}

func TestRunForCycles(t *testing.T) {
	// NOP / JMP $8000
	m65 := newTestMachine(t, []byte{0xea, 0x4c, 0x00, 0x80})

	start := m65.CPU.CycleCount
	test.ExpectedSuccess(t, m65.RunForCycles(50))
	test.ExpectedSuccess(t, m65.CPU.CycleCount-start >= 50)
}

func TestSnapshotRestore(t *testing.T) {
	// LDA #$11 / STA $20 / LDA #$22 / STA $20 / STP
	m65 := newTestMachine(t, []byte{0xa9, 0x11, 0x85, 0x20, 0xa9, 0x22, 0x85, 0x20, 0xdb})

	_, err := m65.Step()
	test.ExpectedSuccess(t, err)
	_, err = m65.Step()
	test.ExpectedSuccess(t, err)
	test.Equate(t, m65.Mem.PhysRead8(0x20), uint8(0x11))

	sn := m65.Snapshot()

	test.ExpectedSuccess(t, m65.Run(nil))
	test.Equate(t, m65.Mem.PhysRead8(0x20), uint8(0x22))
	test.ExpectedSuccess(t, m65.CPU.Halted)

	m65.Restore(sn)
	test.Equate(t, m65.Mem.PhysRead8(0x20), uint8(0x11))
	test.Equate(t, m65.CPU.A.Value(), uint32(0x11))
	test.ExpectedFailure(t, m65.CPU.Halted)
	test.Equate(t, m65.CPU.InstructionCount, uint64(2))
}

func TestSnapshotRestoreMMU(t *testing.T) {
	m65 := newTestMachine(t, []byte{0xdb})

	sn := m65.Snapshot()

	// reconfigure translation after the snapshot. the restore must bring
	// back the captured configuration, not just RAM and CPU state
	m65.Mem.MMU.PTBR = 0x40000
	m65.Mem.MMU.ASID = 3
	m65.Mem.MMU.SetCtrl(memorymap.MMUCRPaging)
	test.ExpectedSuccess(t, m65.Mem.MMU.Enabled())

	m65.Restore(sn)
	test.ExpectedFailure(t, m65.Mem.MMU.Enabled())
	test.Equate(t, m65.Mem.MMU.PTBR, uint64(0))
	test.Equate(t, m65.Mem.MMU.ASID, uint8(0))
}

func TestHistory(t *testing.T) {
	// INX forever
	m65 := newTestMachine(t, []byte{0xe8, 0x4c, 0x00, 0x80})
	h := hardware.NewHistory(m65, 4)

	test.ExpectedFailure(t, h.StepBack())

	for i := 0; i < 6; i++ {
		h.Record()
		_, err := m65.Step()
		test.ExpectedSuccess(t, err)
		_, err = m65.Step()
		test.ExpectedSuccess(t, err)
	}

	// depth is capped
	test.Equate(t, h.Depth(), 4)

	x := m65.CPU.X.Value()
	test.ExpectedSuccess(t, h.StepBack())
	test.Equate(t, m65.CPU.X.Value(), x-1)
	test.Equate(t, h.Depth(), 3)
}
