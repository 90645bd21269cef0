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

package memory

import (
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/logger"
)

// sysRead32 reads a 32-bit system register. The offset is the word-aligned
// offset into the window. Unimplemented registers read as zero.
func (bus *Bus) sysRead32(off uint32) uint32 {
	switch off {
	case memorymap.RegMMUCR:
		return bus.MMU.Ctrl
	case memorymap.RegASID:
		return uint32(bus.MMU.ASID)
	case memorymap.RegFaultVA:
		return bus.MMU.FaultVA
	case memorymap.RegPTBRLo:
		return uint32(bus.MMU.PTBR)
	case memorymap.RegPTBRHi:
		return uint32(bus.MMU.PTBR >> 32)
	case memorymap.RegTimerCtrl:
		return bus.Timer.Ctrl
	case memorymap.RegTimerCmp:
		return bus.Timer.Cmp
	case memorymap.RegTimerCnt:
		return bus.Timer.Cnt
	}
	return 0
}

// sysWrite32 writes a 32-bit system register. The invalidation registers
// act on write, their stored value is meaningless.
func (bus *Bus) sysWrite32(off uint32, val uint32) {
	switch off {
	case memorymap.RegMMUCR:
		bus.MMU.SetCtrl(val)
	case memorymap.RegTLBInval:
		bus.MMU.InvalidateVA(val)
	case memorymap.RegASID:
		bus.MMU.ASID = uint8(val)
	case memorymap.RegASIDInval:
		bus.MMU.InvalidateASID(uint8(val))
	case memorymap.RegFaultVA:
		// read-only, latched by the translator
	case memorymap.RegPTBRLo:
		bus.MMU.PTBR = bus.MMU.PTBR&0xffffffff00000000 | uint64(val)
	case memorymap.RegPTBRHi:
		bus.MMU.PTBR = bus.MMU.PTBR&0x00000000ffffffff | uint64(val)<<32
	case memorymap.RegTLBFlush:
		bus.MMU.Flush()
	case memorymap.RegTimerCtrl:
		bus.Timer.SetCtrl(val)
	case memorymap.RegTimerCmp:
		bus.Timer.Cmp = val
	case memorymap.RegTimerCnt:
		bus.Timer.Cnt = val
	default:
		logger.Logf("sysreg", "write to unimplemented register %02x", off)
	}
}

// sysRead8 reads one byte lane of a system register.
func (bus *Bus) sysRead8(off uint32) uint8 {
	return uint8(bus.sysRead32(off&^3) >> ((off & 3) * 8))
}

// sysWrite8 writes one byte lane of a system register with a
// read-modify-write of the containing word.
func (bus *Bus) sysWrite8(off uint32, val uint8) {
	reg := off &^ 3
	lane := (off & 3) * 8
	v := bus.sysRead32(reg)
	v = v&^(0xff<<lane) | uint32(val)<<lane
	bus.sysWrite32(reg, v)
}
