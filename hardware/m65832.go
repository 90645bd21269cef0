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
	"fmt"

	"github.com/benjcooley/m65832-sub002/hardware/cpu"
	"github.com/benjcooley/m65832-sub002/hardware/memory"
)

// The amount of RAM a machine gets when the caller doesn't say otherwise.
const DefaultRAMSize = 16 * 1024 * 1024

// M65832 is the root of the emulated machine.
type M65832 struct {
	CPU *cpu.CPU
	Mem *memory.Bus
}

// NewM65832 is the preferred method of initialisation for the M65832 type.
// A ramSize of zero selects DefaultRAMSize.
func NewM65832(ramSize uint32) *M65832 {
	if ramSize == 0 {
		ramSize = DefaultRAMSize
	}

	mem := memory.NewBus(ramSize)

	// NewCPU attaches the core to the bus and performs the power-on reset
	mc := cpu.NewCPU(mem)

	return &M65832{
		CPU: mc,
		Mem: mem,
	}
}

// AttachDevice adds a memory-mapped peripheral to the physical bus.
func (m65 *M65832) AttachDevice(r memory.Region) {
	m65.Mem.AddRegion(r)
}

// Reset the machine. RAM contents survive, matching the behaviour of the
// hardware reset line.
func (m65 *M65832) Reset() {
	m65.Mem.Reset()
	m65.CPU.Reset()
}

func (m65 *M65832) String() string {
	return fmt.Sprintf("%s\ninstructions=%d cycles=%d",
		m65.CPU.String(), m65.CPU.InstructionCount, m65.CPU.CycleCount)
}
