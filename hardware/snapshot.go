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

package hardware

import (
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory/mmu"
	"github.com/benjcooley/m65832-sub002/hardware/timer"
)

// Snapshot is a complete copy of the machine state: register file, RAM,
// timer and the architectural MMU registers. Device regions attached with
// AttachDevice are outside the machine and are not captured.
type Snapshot struct {
	PC  registers.Data
	A   registers.Data
	X   registers.Data
	Y   registers.Data
	S   registers.Data
	D   registers.Data
	B   registers.Data
	T   registers.Data
	VBR registers.Data

	Status registers.Status
	Window registers.Window
	F      [16]float64

	Halted  bool
	Waiting bool

	InstructionCount uint64
	CycleCount       uint64

	RAM   []uint8
	Timer timer.Timer
	MMU   mmu.Registers
}

// Snapshot copies the current machine state.
func (m65 *M65832) Snapshot() *Snapshot {
	sn := &Snapshot{
		PC:  m65.CPU.PC,
		A:   m65.CPU.A,
		X:   m65.CPU.X,
		Y:   m65.CPU.Y,
		S:   m65.CPU.S,
		D:   m65.CPU.D,
		B:   m65.CPU.B,
		T:   m65.CPU.T,
		VBR: m65.CPU.VBR,

		Status: m65.CPU.Status,
		Window: m65.CPU.Window,
		F:      m65.CPU.F,

		Halted:  m65.CPU.Halted,
		Waiting: m65.CPU.Waiting,

		InstructionCount: m65.CPU.InstructionCount,
		CycleCount:       m65.CPU.CycleCount,

		RAM:   make([]uint8, len(m65.Mem.RAM)),
		Timer: *m65.Mem.Timer,
		MMU:   m65.Mem.MMU.Registers(),
	}
	copy(sn.RAM, m65.Mem.RAM)
	return sn
}

// Restore the machine to a previously captured state. The TLB is flushed
// rather than restored, the walker will refill it from the restored RAM
// and page tables. Any open load link is dropped, the linked word cannot
// be trusted across a wholesale memory restore.
func (m65 *M65832) Restore(sn *Snapshot) {
	m65.CPU.PC = sn.PC
	m65.CPU.A = sn.A
	m65.CPU.X = sn.X
	m65.CPU.Y = sn.Y
	m65.CPU.S = sn.S
	m65.CPU.D = sn.D
	m65.CPU.B = sn.B
	m65.CPU.T = sn.T
	m65.CPU.VBR = sn.VBR

	m65.CPU.Status = sn.Status
	m65.CPU.Window = sn.Window
	m65.CPU.F = sn.F

	m65.CPU.Halted = sn.Halted
	m65.CPU.Waiting = sn.Waiting

	m65.CPU.InstructionCount = sn.InstructionCount
	m65.CPU.CycleCount = sn.CycleCount

	copy(m65.Mem.RAM, sn.RAM)
	*m65.Mem.Timer = sn.Timer
	m65.Mem.MMU.RestoreRegisters(sn.MMU)
	m65.Mem.MMU.Flush()
	m65.Mem.InvalidateLink()
}
