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

// Package memorymap defines the fixed addresses and bit layouts of the
// M65832 memory model: the system register window, the exception vector
// table, page table entry bits and the fault type codes latched into MMUCR.
package memorymap

// The system register window. The window bypasses address translation and
// is accessible from supervisor contexts only. In the 16-bit addressing
// modes the window is also visible through the alias at SysRegAlias.
const (
	SysRegBase  uint32 = 0xfffff000
	SysRegSize  uint32 = 0x100
	SysRegAlias uint32 = 0x0000f000
)

// System register offsets within the window.
const (
	RegMMUCR     uint32 = 0x00
	RegTLBInval  uint32 = 0x04
	RegASID      uint32 = 0x08
	RegASIDInval uint32 = 0x0c
	RegFaultVA   uint32 = 0x10
	RegPTBRLo    uint32 = 0x14
	RegPTBRHi    uint32 = 0x18
	RegTLBFlush  uint32 = 0x1c
	RegTimerCtrl uint32 = 0x40
	RegTimerCmp  uint32 = 0x44
	RegTimerCnt  uint32 = 0x48
)

// MMUCR bits. The fault type field is read-only through the register
// interface, it is latched by the translation hardware.
const (
	MMUCRPaging       uint32 = 0x01
	MMUCRWriteProtect uint32 = 0x02
	MMUCRFaultMask    uint32 = 0x1c
	MMUCRFaultShift          = 2
)

// Fault type codes latched into the MMUCR fault field.
const (
	FaultNotPresent   uint32 = 0
	FaultWriteProtect uint32 = 1
	FaultUserSuper    uint32 = 2
	FaultNoExecute    uint32 = 3
	FaultL1NotPresent uint32 = 4
	FaultL2NotPresent uint32 = 5
)

// Timer control bits.
const (
	TimerEnable     uint32 = 0x01
	TimerAutoReset  uint32 = 0x02
	TimerIRQEnable  uint32 = 0x04
	TimerIRQClear   uint32 = 0x08
	TimerIRQPending uint32 = 0x80
)

// Page table entry bits. PTEs are 64-bit, pages are 4KB.
const (
	PTEPresent   uint64 = 1 << 0
	PTEWritable  uint64 = 1 << 1
	PTEUser      uint64 = 1 << 2
	PTEWriteThru uint64 = 1 << 3
	PTECacheDis  uint64 = 1 << 4
	PTEAccessed  uint64 = 1 << 9
	PTEDirty     uint64 = 1 << 10
	PTEGlobal    uint64 = 1 << 11
	PTENoExec    uint64 = 1 << 63
	PTEPPNMask   uint64 = 0xfffffffffffff000
)

// PageSize is the size of a page. PageShift the number of offset bits.
const (
	PageSize  = 4096
	PageShift = 12
)

// Exception vectors for the emulation width mode. Vector reads in emulation
// mode are 16-bit.
const (
	VecResetEmu uint32 = 0xfffc
	VecIRQEmu   uint32 = 0xfffe
	VecNMIEmu   uint32 = 0xfffa
	VecAbortEmu uint32 = 0xfff8
	VecCOPEmu   uint32 = 0xfff4
)

// Exception vectors for the native width modes. Vector reads in native
// modes are 32-bit.
const (
	VecCOP       uint32 = 0xffe4
	VecBRK       uint32 = 0xffe6
	VecAbort     uint32 = 0xffe8
	VecNMI       uint32 = 0xffea
	VecIRQ       uint32 = 0xffee
	VecPageFault uint32 = 0xffd0
	VecSyscall   uint32 = 0xffd4
	VecIllegal   uint32 = 0xfff8
)

// IsSysReg returns true if the address falls inside the system register
// window.
func IsSysReg(addr uint32) bool {
	return addr >= SysRegBase && addr < SysRegBase+SysRegSize
}

// IsSysRegAlias returns true if the address falls inside the 16-bit alias
// of the system register window. The alias is only active in the short
// addressing modes.
func IsSysRegAlias(addr uint32) bool {
	return addr >= SysRegAlias && addr < SysRegAlias+SysRegSize
}
