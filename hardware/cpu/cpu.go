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
	"fmt"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/execution"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/hardware/memory/mmu"
	"github.com/benjcooley/m65832-sub002/logger"
)

// Sentinel errors raised by the execution engine. Like the bus errors
// these describe machine faults, not host problems. Step catches them and
// vectors through the exception controller; they only appear to a caller
// of the lower level functions.
const (
	AlignmentFault     = "alignment fault: window offset %02x"
	IllegalInstruction = "illegal instruction: %02x"
)

// CPU implements the M65832 execution core.
type CPU struct {
	mem *memory.Bus

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

	// floating point register file. the core has no FPU datapath, the
	// registers exist so a trap handler has somewhere to put results.
	F [16]float64

	// interrupt request lines. abort and nmi are edge triggered, irq is
	// re-raised by the timer while its pending bit is set.
	irq   bool
	nmi   bool
	abort bool

	// Halted is the STP state. only a reset leaves it.
	Halted bool

	// Waiting is the WAI state. any serviced interrupt leaves it.
	Waiting bool

	// LastResult records the most recently executed instruction.
	LastResult execution.Result

	InstructionCount uint64
	CycleCount       uint64

	// address of the opcode being executed. faults that retry the
	// instruction push this rather than the current PC.
	instStart uint32
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// CPU attaches itself to the bus as the privilege/addressing context.
func NewCPU(mem *memory.Bus) *CPU {
	mc := &CPU{mem: mem}

	mc.PC = registers.NewData(0, "PC")
	mc.A = registers.NewData(0, "A")
	mc.X = registers.NewData(0, "X")
	mc.Y = registers.NewData(0, "Y")
	mc.S = registers.NewData(0, "SP")
	mc.D = registers.NewData(0, "D")
	mc.B = registers.NewData(0, "B")
	mc.T = registers.NewData(0, "T")
	mc.VBR = registers.NewData(0, "VBR")

	mem.Attach(mc)
	mc.Reset()

	return mc
}

// Supervisor implements the memory.Context interface.
func (mc *CPU) Supervisor() bool {
	return mc.Status.Supervisor
}

// ShortAddressing implements the memory.Context interface.
func (mc *CPU) ShortAddressing() bool {
	return mc.Status.ShortAddressing()
}

// Reset the CPU to the power-on state. The program counter loads from the
// emulation reset vector through the physical path.
func (mc *CPU) Reset() {
	mc.A.LoadFull(0)
	mc.X.LoadFull(0)
	mc.Y.LoadFull(0)
	mc.D.LoadFull(0)
	mc.B.LoadFull(0)
	mc.T.LoadFull(0)
	mc.VBR.LoadFull(0)
	mc.S.LoadFull(0x01ff)

	mc.Status.Reset()
	mc.Window = registers.Window{}
	mc.F = [16]float64{}

	mc.irq = false
	mc.nmi = false
	mc.abort = false
	mc.Halted = false
	mc.Waiting = false
	mc.InstructionCount = 0
	mc.CycleCount = 0
	mc.LastResult = execution.Result{}

	mc.PC.LoadFull(uint32(mc.mem.PhysRead16(uint64(memorymap.VecResetEmu))))
	logger.Logf("cpu", "reset: pc=%08x", mc.PC.Address())
}

// RaiseIRQ asserts the interrupt request line.
func (mc *CPU) RaiseIRQ() {
	mc.irq = true
}

// ClearIRQ deasserts the interrupt request line.
func (mc *CPU) ClearIRQ() {
	mc.irq = false
}

// RaiseNMI asserts the non-maskable interrupt line.
func (mc *CPU) RaiseNMI() {
	mc.nmi = true
}

// RaiseAbort asserts the abort line.
func (mc *CPU) RaiseAbort() {
	mc.abort = true
}

// HasPendingInterrupt is true if an interrupt line is asserted, whether or
// not it would currently be serviced.
func (mc *CPU) HasPendingInterrupt() bool {
	return mc.abort || mc.nmi || mc.irq
}

// Step executes a single instruction, servicing any pending interrupt
// first. The return value is the number of cycles consumed. A non-nil
// error indicates a problem in the host, never a machine fault.
func (mc *CPU) Step() (int, error) {
	if mc.Halted {
		return 0, nil
	}

	// interrupt priority is abort, nmi, irq. any serviced interrupt ends
	// the WAI state
	if mc.abort {
		mc.abort = false
		mc.Waiting = false
		mc.interrupt(memorymap.VecAbortEmu, memorymap.VecAbort)
		mc.tick(7)
		return 7, nil
	}
	if mc.nmi {
		mc.nmi = false
		mc.Waiting = false
		mc.interrupt(memorymap.VecNMIEmu, memorymap.VecNMI)
		mc.tick(7)
		return 7, nil
	}
	if mc.irq && !mc.Status.InterruptDisable {
		mc.irq = false
		mc.Waiting = false
		mc.interrupt(memorymap.VecIRQEmu, memorymap.VecIRQ)
		mc.tick(7)
		return 7, nil
	}

	// WAI burns cycles until an interrupt is serviced
	if mc.Waiting {
		mc.tick(1)
		return 1, nil
	}

	mc.instStart = mc.PC.Address()

	cycles, err := mc.executeInstruction()
	if err != nil {
		cycles = mc.fault(err, cycles)
	}
	mc.LastResult.Cycles = cycles

	mc.InstructionCount++
	mc.tick(cycles)

	return cycles, nil
}

// tick advances the cycle count and the interval timer. a firing timer
// asserts the irq line.
func (mc *CPU) tick(cycles int) {
	mc.CycleCount += uint64(cycles)
	if mc.mem.Timer.Step(uint32(cycles)) {
		mc.irq = true
	}
}

// executeInstruction fetches, decodes and executes one instruction.
// machine faults come back as curated errors for Step to map onto the
// exception vectors.
func (mc *CPU) executeInstruction() (int, error) {
	opcode, err := mc.fetch8()
	if err != nil {
		return 7, err
	}

	return mc.execute(opcode)
}

// fault maps a machine fault onto its exception vector. page faults and
// alignment faults push the address of the faulting instruction so the
// handler can retry it; everything else pushes the next PC.
func (mc *CPU) fault(err error, cycles int) int {
	switch {
	case curated.Is(err, mmu.PageFault):
		mc.exceptionEnter(memorymap.VecPageFault, mc.instStart)
	case curated.Is(err, AlignmentFault):
		mc.exceptionEnter(memorymap.VecIllegal, mc.instStart)
	case curated.Is(err, memory.PrivilegeViolation):
		mc.exceptionEnter(memorymap.VecIllegal, mc.PC.Address())
	default:
		// not a machine fault. nothing in the execution engine produces
		// other errors but log rather than lose it
		logger.Logf("cpu", "unexpected fault: %v", err)
	}
	if cycles < 7 {
		cycles = 7
	}
	return cycles
}

// mwidth is the active accumulator/memory width.
func (mc *CPU) mwidth() registers.Width {
	return mc.Status.MWidth()
}

// xwidth is the active index register width.
func (mc *CPU) xwidth() registers.Width {
	return mc.Status.XWidth()
}

// effective relocates an address through the VBR in emulation mode. the
// other width modes use addresses as-is.
func (mc *CPU) effective(va uint32) uint32 {
	if mc.Status.Mode() == registers.ModeEmulation {
		return mc.VBR.Address() + (va & 0xffff)
	}
	return va
}

// read a value of the given width from a virtual address.
func (mc *CPU) readVal(va uint32, w registers.Width) (uint32, error) {
	return mc.mem.ReadVal(mc.effective(va), w)
}

// write a value of the given width to a virtual address.
func (mc *CPU) writeVal(va uint32, val uint32, w registers.Width) error {
	return mc.mem.WriteVal(mc.effective(va), w, val)
}

// fetch8 reads the byte at PC and advances PC. instruction fetches use
// the execute permission path.
func (mc *CPU) fetch8() (uint8, error) {
	v, err := mc.mem.Fetch8(mc.effective(mc.PC.Address()))
	mc.PC.LoadFull(mc.PC.Address() + 1)
	return v, err
}

func (mc *CPU) fetch16() (uint16, error) {
	lo, err := mc.fetch8()
	if err != nil {
		return 0, err
	}
	hi, err := mc.fetch8()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (mc *CPU) fetch24() (uint32, error) {
	lo, err := mc.fetch16()
	if err != nil {
		return 0, err
	}
	hi, err := mc.fetch8()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

func (mc *CPU) fetch32() (uint32, error) {
	lo, err := mc.fetch16()
	if err != nil {
		return 0, err
	}
	hi, err := mc.fetch16()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

// fetchVal fetches an immediate operand of the given width.
func (mc *CPU) fetchVal(w registers.Width) (uint32, error) {
	switch w {
	case registers.Width8:
		v, err := mc.fetch8()
		return uint32(v), err
	case registers.Width16:
		v, err := mc.fetch16()
		return uint32(v), err
	}
	return mc.fetch32()
}

// stackAddr converts the stack pointer to a virtual address. in emulation
// mode the stack is pinned to page one of the VBR segment and the pointer
// wraps within the page.
func (mc *CPU) stackAddr() uint32 {
	if mc.Status.Mode() == registers.ModeEmulation {
		return mc.VBR.Address() + 0x0100 + (mc.S.Address() & 0xff)
	}
	return mc.S.Address()
}

func (mc *CPU) stackDec() {
	if mc.Status.Mode() == registers.ModeEmulation {
		mc.S.LoadFull(0x0100 | ((mc.S.Address() - 1) & 0xff))
	} else {
		mc.S.LoadFull(mc.S.Address() - 1)
	}
}

func (mc *CPU) stackInc() {
	if mc.Status.Mode() == registers.ModeEmulation {
		mc.S.LoadFull(0x0100 | ((mc.S.Address() + 1) & 0xff))
	} else {
		mc.S.LoadFull(mc.S.Address() + 1)
	}
}

func (mc *CPU) push8(v uint8) error {
	err := mc.mem.Write8(mc.stackAddr(), v)
	mc.stackDec()
	return err
}

func (mc *CPU) pull8() (uint8, error) {
	mc.stackInc()
	return mc.mem.Read8(mc.stackAddr())
}

func (mc *CPU) push16(v uint16) error {
	if err := mc.push8(uint8(v >> 8)); err != nil {
		return err
	}
	return mc.push8(uint8(v))
}

func (mc *CPU) pull16() (uint16, error) {
	lo, err := mc.pull8()
	if err != nil {
		return 0, err
	}
	hi, err := mc.pull8()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (mc *CPU) push32(v uint32) error {
	if err := mc.push16(uint16(v >> 16)); err != nil {
		return err
	}
	return mc.push16(uint16(v))
}

func (mc *CPU) pull32() (uint32, error) {
	lo, err := mc.pull16()
	if err != nil {
		return 0, err
	}
	hi, err := mc.pull16()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

// pushVal pushes a value of the given width.
func (mc *CPU) pushVal(v uint32, w registers.Width) error {
	switch w {
	case registers.Width8:
		return mc.push8(uint8(v))
	case registers.Width16:
		return mc.push16(uint16(v))
	}
	return mc.push32(v)
}

// pullVal pulls a value of the given width.
func (mc *CPU) pullVal(w registers.Width) (uint32, error) {
	switch w {
	case registers.Width8:
		v, err := mc.pull8()
		return uint32(v), err
	case registers.Width16:
		v, err := mc.pull16()
		return uint32(v), err
	}
	return mc.pull32()
}

// setNZ updates the sign and zero flags from a value at the given width.
func (mc *CPU) setNZ(v uint32, w registers.Width) {
	mc.Status.Zero = v&w.Mask() == 0
	mc.Status.Sign = v&w.SignBit() != 0
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s %s %s %s %s",
		mc.PC, mc.A, mc.X, mc.Y, mc.S, mc.D, mc.B, mc.T, mc.VBR, mc.Status)
}
