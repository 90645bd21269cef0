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

package cpu

import (
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/logger"
)

// Exception frames and vector reads use the physical path. The handler
// entry sequence must work even when the fault being serviced is a page
// fault in the tables that map the stack.
//
// The frame layout is the same in every width mode: 32-bit PC on top of
// the 16-bit status word, six bytes in all.
//
//	[SP+0] P low
//	[SP+1] P high
//	[SP+2] PC byte 0
//	[SP+3] PC byte 1
//	[SP+4] PC byte 2
//	[SP+5] PC byte 3

func (mc *CPU) physPush8(v uint8) {
	mc.mem.PhysWrite8(uint64(mc.stackAddr()), v)
	mc.stackDec()
}

func (mc *CPU) physPull8() uint8 {
	mc.stackInc()
	return mc.mem.PhysRead8(uint64(mc.stackAddr()))
}

// exceptionEnter pushes the return frame and jumps through the vector.
// The caller selects the vector address for the current width mode; in
// emulation mode the vector is a 16-bit word at VBR plus the low half of
// the address, in the native modes a 32-bit word at the address itself.
func (mc *CPU) exceptionEnter(vector uint32, returnPC uint32) {
	emu := mc.Status.Mode() == registers.ModeEmulation

	mc.physPush8(uint8(returnPC >> 24))
	mc.physPush8(uint8(returnPC >> 16))
	mc.physPush8(uint8(returnPC >> 8))
	mc.physPush8(uint8(returnPC))

	p := mc.Status.Value()
	mc.physPush8(uint8(p >> 8))
	mc.physPush8(uint8(p))

	mc.Status.InterruptDisable = true
	mc.Status.Supervisor = true

	if emu {
		mc.PC.LoadFull(uint32(mc.mem.PhysRead16(uint64(mc.VBR.Address() + (vector & 0xffff)))))
	} else {
		mc.PC.LoadFull(mc.mem.PhysRead32(uint64(vector)))
	}
}

// interrupt enters the handler for a hardware interrupt line.
func (mc *CPU) interrupt(emuVec uint32, natVec uint32) {
	vec := natVec
	if mc.Status.Mode() == registers.ModeEmulation {
		vec = emuVec
	}
	mc.exceptionEnter(vec, mc.PC.Address())
}

// rti returns from an exception handler. The status word pulls first so
// a frame that changes the width mode pulls the PC with the new mode's
// stack arithmetic.
func (mc *CPU) rti() error {
	lo := mc.physPull8()
	hi := mc.physPull8()
	mc.Status.Load(uint16(lo) | uint16(hi)<<8)

	var pc uint32
	pc = uint32(mc.physPull8())
	pc |= uint32(mc.physPull8()) << 8
	pc |= uint32(mc.physPull8()) << 16
	pc |= uint32(mc.physPull8()) << 24
	mc.PC.LoadFull(pc)

	return nil
}

// brk enters the software break handler. The return address is the byte
// after the opcode, there is no signature byte.
func (mc *CPU) brk() error {
	vec := uint32(memorymap.VecBRK)
	if mc.Status.Mode() == registers.ModeEmulation {
		vec = memorymap.VecIRQEmu
	}
	mc.exceptionEnter(vec, mc.PC.Address())
	mc.Status.Decimal = false
	return nil
}

// cop enters the legacy co-processor handler. Reached through the $02
// opcode in emulation mode only; the native modes use $02 as the extended
// page prefix.
func (mc *CPU) cop() error {
	vec := uint32(memorymap.VecCOP)
	if mc.Status.Mode() == registers.ModeEmulation {
		vec = memorymap.VecCOPEmu
	}
	mc.exceptionEnter(vec, mc.PC.Address())
	mc.Status.Decimal = false
	return nil
}

// illegal handles an undecodable opcode. With the K flag set illegal
// opcodes decode as NOP, otherwise they vector through the illegal
// instruction handler with the next PC as the return address.
func (mc *CPU) illegal(opcode uint8) (int, error) {
	if mc.Status.Compat {
		return 2, nil
	}
	logger.Logf("cpu", "illegal instruction %02x at %08x", opcode, mc.instStart)
	mc.exceptionEnter(memorymap.VecIllegal, mc.PC.Address())
	return 7, nil
}
