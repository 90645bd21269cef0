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

package cpu_test

import (
	"testing"

	"github.com/benjcooley/m65832-sub002/hardware/cpu"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/test"
)

const origin = 0x8000

// newTestCPU builds a machine with the program at the reset target.
func newTestCPU(t *testing.T, program []byte) (*cpu.CPU, *memory.Bus) {
	t.Helper()

	bus := memory.NewBus(0x100000)
	bus.PhysWrite16(uint64(memorymap.VecResetEmu), origin)

	mc := cpu.NewCPU(bus)
	test.ExpectedSuccess(t, bus.LoadBinary(origin, program))

	return mc, bus
}

// step runs n instructions, failing the test on any host error.
func step(t *testing.T, mc *cpu.CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := mc.Step()
		test.ExpectedSuccess(t, err)
	}
}

func TestReset(t *testing.T) {
	mc, _ := newTestCPU(t, []byte{0xea})

	test.Equate(t, mc.PC.Address(), uint32(origin))
	test.Equate(t, mc.S.Address(), uint32(0x01ff))
	test.ExpectedSuccess(t, mc.Status.Supervisor)
	test.ExpectedSuccess(t, mc.Status.InterruptDisable)
	test.Equate(t, mc.Status.Mode(), registers.ModeEmulation)
}

func TestLoadStoreEmulation(t *testing.T) {
	// LDA #$42 / STA $10
	mc, bus := newTestCPU(t, []byte{0xa9, 0x42, 0x85, 0x10})

	step(t, mc, 2)
	test.Equate(t, mc.A.Value(), uint32(0x42))

	v, err := bus.Read8(0x10)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint8(0x42))
}

func TestDecimalAddition(t *testing.T) {
	// SED / SEC is not wanted: CLC / LDA #$15 / ADC #$27
	mc, _ := newTestCPU(t, []byte{0xf8, 0x18, 0xa9, 0x15, 0x69, 0x27})

	step(t, mc, 4)
	test.Equate(t, mc.A.Masked(registers.Width8), uint32(0x42))
	test.ExpectedFailure(t, mc.Status.Carry)
}

func TestBinarySubtract(t *testing.T) {
	// CLD / SEC / LDA #$40 / SBC #$01
	mc, _ := newTestCPU(t, []byte{0xd8, 0x38, 0xa9, 0x40, 0xe9, 0x01})

	step(t, mc, 4)
	test.Equate(t, mc.A.Masked(registers.Width8), uint32(0x3f))
	test.ExpectedSuccess(t, mc.Status.Carry)
}

func TestWideImmediate(t *testing.T) {
	// LDA #$12345678 / STA $10 in native-32
	mc, bus := newTestCPU(t, []byte{0xa9, 0x78, 0x56, 0x34, 0x12, 0x85, 0x10})
	mc.Status.SetMode(registers.ModeNative32)
	mc.Status.Decimal = false

	step(t, mc, 2)
	test.Equate(t, mc.A.Value(), uint32(0x12345678))

	v, err := bus.Read32(0x10)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(0x12345678))
}

func TestNarrowFlagInNativeMode(t *testing.T) {
	// SEP #$20 narrows the accumulator to 8-bit without leaving the mode.
	// the high accumulator bits survive the narrow store
	mc, bus := newTestCPU(t, []byte{0xa9, 0x78, 0x56, 0x34, 0x12, 0xe2, 0x20, 0x85, 0x10})
	mc.Status.SetMode(registers.ModeNative32)

	step(t, mc, 3)
	test.Equate(t, mc.A.Value(), uint32(0x12345678))

	v, err := bus.Read32(0x10)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(0x78))
}

func TestBranches(t *testing.T) {
	// LDX #$02 / loop: DEX / BNE loop / NOP
	mc, _ := newTestCPU(t, []byte{0xa2, 0x02, 0xca, 0xd0, 0xfd, 0xea})

	step(t, mc, 5)
	test.Equate(t, mc.X.Masked(registers.Width8), uint32(0))
	test.ExpectedSuccess(t, mc.Status.Zero)
	test.Equate(t, mc.PC.Address(), uint32(origin+5))
}

func TestStackRoundTrip(t *testing.T) {
	// LDA #$1234 / PHA / LDA #$0000 / PLA in native-16
	mc, _ := newTestCPU(t, []byte{0xa9, 0x34, 0x12, 0x48, 0xa9, 0x00, 0x00, 0x68})
	mc.Status.SetMode(registers.ModeNative16)

	step(t, mc, 4)
	test.Equate(t, mc.A.Value(), uint32(0x1234))
	test.Equate(t, mc.S.Address(), uint32(0x01ff))
}

func TestJSRAndRTS(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0x20, 0x10, 0x80}) // JSR $8010
	test.ExpectedSuccess(t, bus.LoadBinary(0x8010, []byte{0x60}))

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(0x8010))

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(origin+3))
}

func TestBRKAndRTI(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0x00}) // BRK
	bus.PhysWrite16(uint64(memorymap.VecIRQEmu), 0x9000)
	test.ExpectedSuccess(t, bus.LoadBinary(0x9000, []byte{0x40})) // RTI

	decimal := mc.Status.Decimal

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
	test.ExpectedSuccess(t, mc.Status.InterruptDisable)
	test.ExpectedFailure(t, mc.Status.Decimal)
	test.Equate(t, mc.S.Address(), uint32(0x01f9))

	// the return address is the byte after the BRK opcode and the pushed
	// status word restores in full
	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(origin+1))
	test.Equate(t, mc.Status.Decimal, decimal)
	test.Equate(t, mc.S.Address(), uint32(0x01ff))
}

func TestModeChangeThroughRTI(t *testing.T) {
	// a handcrafted frame switches the width mode on return. the status
	// word pulls before the PC so the PC pulls with the new mode's stack
	mc, bus := newTestCPU(t, []byte{0x40}) // RTI

	var p registers.Status
	p.Reset()
	p.SetMode(registers.ModeNative32)
	pv := p.Value()

	mc.S.LoadFull(0x01f9)
	bus.PhysWrite8(0x01fa, uint8(pv))
	bus.PhysWrite8(0x01fb, uint8(pv>>8))
	bus.PhysWrite8(0x01fc, 0x00)
	bus.PhysWrite8(0x01fd, 0x90)
	bus.PhysWrite8(0x01fe, 0x00)
	bus.PhysWrite8(0x01ff, 0x00)

	step(t, mc, 1)
	test.Equate(t, mc.Status.Mode(), registers.ModeNative32)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
}

func TestIllegalOpcode(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0x42})
	bus.PhysWrite16(uint64(memorymap.VecIllegal), 0x9000)

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
	test.Equate(t, mc.S.Address(), uint32(0x01f9))
}

func TestIllegalOpcodeCompat(t *testing.T) {
	// with the K flag set illegal opcodes decode as NOP
	mc, _ := newTestCPU(t, []byte{0x42, 0xea})
	mc.Status.Compat = true

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(origin+1))
	test.Equate(t, mc.S.Address(), uint32(0x01ff))
}

func TestPageFaultVectoring(t *testing.T) {
	// STA $4000
	mc, bus := newTestCPU(t, []byte{0x8d, 0x00, 0x40})
	bus.PhysWrite16(uint64(memorymap.VecPageFault), 0x9000)

	// identity map the code page, map the store target read-only and
	// leave the vector page unmapped. the fault must still vector, the
	// frame pushes and the vector read use the physical path
	const ptbr = 0x20000
	const l2 = 0x21000
	bus.Write64(ptbr, l2|memorymap.PTEPresent)
	bus.Write64(l2+8*8, 0x8000|memorymap.PTEPresent)
	bus.Write64(l2+4*8, 0x4000|memorymap.PTEPresent)

	bus.MMU.PTBR = ptbr
	bus.MMU.SetCtrl(memorymap.MMUCRPaging)

	step(t, mc, 1)

	test.Equate(t, mc.PC.Address(), uint32(0x9000))
	test.Equate(t, mc.S.Address(), uint32(0x01f9))

	// the faulting address and the fault type are latched for the handler
	test.Equate(t, bus.MMU.FaultVA, uint32(0x4000))
	ftype := (bus.MMU.Ctrl & memorymap.MMUCRFaultMask) >> memorymap.MMUCRFaultShift
	test.Equate(t, ftype, memorymap.FaultWriteProtect)
}

func TestIRQService(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0xea})
	bus.PhysWrite16(uint64(memorymap.VecIRQEmu), 0x9000)

	// masked while the I flag is set
	mc.RaiseIRQ()
	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(origin+1))

	mc.Status.InterruptDisable = false
	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
	test.ExpectedSuccess(t, mc.Status.InterruptDisable)
}

func TestWAIAndNMI(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0xcb}) // WAI
	bus.PhysWrite16(uint64(memorymap.VecNMIEmu), 0x9000)

	step(t, mc, 2)
	test.ExpectedSuccess(t, mc.Waiting)
	test.Equate(t, mc.PC.Address(), uint32(origin+1))

	mc.RaiseNMI()
	step(t, mc, 1)
	test.ExpectedFailure(t, mc.Waiting)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
}

func TestSTP(t *testing.T) {
	mc, _ := newTestCPU(t, []byte{0xdb})

	step(t, mc, 1)
	test.ExpectedSuccess(t, mc.Halted)

	cycles, err := mc.Step()
	test.ExpectedSuccess(t, err)
	test.Equate(t, cycles, 0)
}

func TestSTPPrivilege(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0xdb})
	bus.PhysWrite16(uint64(memorymap.VecIllegal), 0x9000)
	mc.Status.Supervisor = false

	step(t, mc, 1)
	test.ExpectedFailure(t, mc.Halted)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
	test.ExpectedSuccess(t, mc.Status.Supervisor)
}

func TestExtendedPrefixIsCOPInEmulation(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0x02, 0xea})
	bus.PhysWrite16(uint64(memorymap.VecCOPEmu), 0x9000)

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
}

func TestMultiply(t *testing.T) {
	// LDA #-1 / MUL $10 with 3 in the operand: signed 64-bit product
	// lands in T:A
	mc, bus := newTestCPU(t, []byte{
		0xa9, 0xff, 0xff, 0xff, 0xff, // LDA #$ffffffff
		0x02, 0x00, 0x10, // MUL $10
	})
	mc.Status.SetMode(registers.ModeNative32)
	mc.Status.Decimal = false
	test.ExpectedSuccess(t, bus.Write32(0x10, 3))

	step(t, mc, 2)
	test.Equate(t, mc.A.Value(), uint32(0xfffffffd))
	test.Equate(t, mc.T.Value(), uint32(0xffffffff))
	test.ExpectedSuccess(t, mc.Status.Sign)
}

func TestDivide(t *testing.T) {
	// LDA #42 / DIVU $10 with 5 in the operand
	mc, bus := newTestCPU(t, []byte{
		0xa9, 0x2a, 0x00, 0x00, 0x00,
		0x02, 0x05, 0x10,
	})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x10, 5))

	step(t, mc, 2)
	test.Equate(t, mc.A.Value(), uint32(8))
	test.Equate(t, mc.T.Value(), uint32(2))
	test.ExpectedFailure(t, mc.Status.Overflow)
}

func TestDivideByZero(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{
		0xa9, 0x2a, 0x00, 0x00, 0x00,
		0x02, 0x04, 0x10, // DIV $10
	})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x10, 0))

	step(t, mc, 2)
	test.ExpectedSuccess(t, mc.Status.Overflow)
	test.Equate(t, mc.A.Value(), uint32(0xffffffff))
	test.Equate(t, mc.T.Value(), uint32(42))
}

func TestCompareAndSwap(t *testing.T) {
	// LDX #50 / LDA #99 / CAS $20
	mc, bus := newTestCPU(t, []byte{
		0xa2, 0x32, 0x00, 0x00, 0x00,
		0xa9, 0x63, 0x00, 0x00, 0x00,
		0x02, 0x10, 0x20,
	})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x20, 50))

	step(t, mc, 3)
	test.ExpectedSuccess(t, mc.Status.Zero)

	v, err := bus.Read32(0x20)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(99))
}

func TestCompareAndSwapMiss(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{
		0xa2, 0x31, 0x00, 0x00, 0x00, // LDX #49
		0xa9, 0x63, 0x00, 0x00, 0x00, // LDA #99
		0x02, 0x10, 0x20, // CAS $20
	})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x20, 50))

	step(t, mc, 3)
	test.ExpectedFailure(t, mc.Status.Zero)

	// the memory value loads into X for the retry
	test.Equate(t, mc.X.Value(), uint32(50))

	v, err := bus.Read32(0x20)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(50))
}

func TestLoadLinkedStoreConditional(t *testing.T) {
	// LLI $20 / INC A is not available: LDA pattern instead. the link
	// survives the instruction fetches in between
	mc, bus := newTestCPU(t, []byte{
		0x02, 0x12, 0x20, // LLI $20
		0x02, 0x14, 0x20, // SCI $20
	})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x20, 7))

	step(t, mc, 1)
	test.Equate(t, mc.A.Value(), uint32(7))

	step(t, mc, 1)
	test.ExpectedSuccess(t, mc.Status.Zero)
}

func TestStoreConditionalBrokenLink(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{
		0x02, 0x12, 0x20, // LLI $20
		0x8d, 0x20, 0x00, // STA $0020 breaks the link
		0x02, 0x14, 0x20, // SCI $20
	})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x20, 7))

	step(t, mc, 3)
	test.ExpectedFailure(t, mc.Status.Zero)
}

func TestRegisterWindow(t *testing.T) {
	// ENR / LDA #$11223344 / STA $08 / DSR. with the window enabled the
	// direct page store lands in window register two
	mc, bus := newTestCPU(t, []byte{
		0x02, 0x30,
		0xa9, 0x44, 0x33, 0x22, 0x11,
		0x85, 0x08,
		0x02, 0x31,
	})
	mc.Status.SetMode(registers.ModeNative32)

	step(t, mc, 4)
	test.Equate(t, mc.Window.Reg(2), uint32(0x11223344))

	// the backing RAM is untouched
	v, err := bus.Read32(0x08)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(0))
}

func TestWindowAlignmentFault(t *testing.T) {
	// a misaligned 32-bit window access vectors through the illegal
	// instruction handler with the faulting instruction as return address
	mc, bus := newTestCPU(t, []byte{
		0x02, 0x30, // ENR
		0x85, 0x06, // STA $06
	})
	mc.Status.SetMode(registers.ModeNative32)
	bus.PhysWrite32(uint64(memorymap.VecIllegal), 0x9000)

	step(t, mc, 2)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
}

func TestTRAP(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0x02, 0x40, 0x00}) // TRAP #0
	mc.Status.SetMode(registers.ModeNative32)
	mc.Status.Supervisor = false
	bus.PhysWrite32(uint64(memorymap.VecSyscall), 0x9000)

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
	test.ExpectedSuccess(t, mc.Status.Supervisor)
}

func TestFPUTrap(t *testing.T) {
	// FADD traps through the syscall table for software emulation
	mc, bus := newTestCPU(t, []byte{0x02, 0xb0})
	mc.Status.SetMode(registers.ModeNative32)
	bus.PhysWrite32(uint64(memorymap.VecSyscall)+uint64(0xb0)*4, 0x9000)

	step(t, mc, 1)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
}

func TestBarrelShift(t *testing.T) {
	// SHL by 4, $10 into $14
	mc, bus := newTestCPU(t, []byte{0x02, 0x98, 0x04, 0x14, 0x10})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x10, 1))

	step(t, mc, 1)

	v, err := bus.Read32(0x14)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(16))
}

func TestPopulationCount(t *testing.T) {
	// POPCNT is operation 6 in bits 7:5 of the op/count byte
	mc, bus := newTestCPU(t, []byte{0x02, 0x99, 0xc0, 0x14, 0x10})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write32(0x10, 0xff00ff00))

	step(t, mc, 1)

	v, err := bus.Read32(0x14)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint32(16))
}

func TestExtendedALUWindowTarget(t *testing.T) {
	// LD.b #$7f into window slot 8: mode byte $22 = size 8-bit, window
	// target, immediate source
	mc, _ := newTestCPU(t, []byte{0x02, 0x80, 0x22, 0x08, 0x7f})
	mc.Status.SetMode(registers.ModeNative32)

	step(t, mc, 1)
	test.Equate(t, mc.Window.Reg(2), uint32(0x7f))
}

func TestExtendedALUAbs32(t *testing.T) {
	// ADC.w from a 32-bit absolute address: mode byte $50 = size 16-bit,
	// accumulator target, abs32 source
	mc, bus := newTestCPU(t, []byte{
		0xd8,                               // CLD
		0x18,                               // CLC
		0xa9, 0x01, 0x00, 0x00, 0x00,      // LDA #1
		0x02, 0x81, 0x50, 0x00, 0x10, 0x00, 0x00, // ADC.w $00001000
	})
	mc.Status.SetMode(registers.ModeNative32)
	test.ExpectedSuccess(t, bus.Write16(0x1000, 0x0041))

	step(t, mc, 4)
	test.Equate(t, mc.A.Masked(registers.Width16), uint32(0x42))
}

func TestVBRRelocation(t *testing.T) {
	// in emulation mode every reference relocates through the VBR
	mc, bus := newTestCPU(t, []byte{0xa9, 0x55, 0x85, 0x10}) // LDA #$55 / STA $10
	mc.VBR.LoadFull(0x40000)

	// the program fetch is relocated too: place a copy in the segment
	test.ExpectedSuccess(t, bus.LoadBinary(0x40000+origin, []byte{0xa9, 0x55, 0x85, 0x10}))

	step(t, mc, 2)
	test.Equate(t, bus.PhysRead8(0x40010), uint8(0x55))
}

func TestTimerIRQ(t *testing.T) {
	mc, bus := newTestCPU(t, []byte{0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea, 0xea})
	bus.PhysWrite16(uint64(memorymap.VecIRQEmu), 0x9000)
	mc.Status.InterruptDisable = false

	// enable the timer: fire after four cycles, irq enabled
	base := memorymap.SysRegBase
	test.ExpectedSuccess(t, bus.Write32(base+memorymap.RegTimerCmp, 4))
	test.ExpectedSuccess(t, bus.Write32(base+memorymap.RegTimerCtrl, memorymap.TimerEnable|memorymap.TimerIRQEnable))

	// the second NOP crosses the compare value and raises the line; the
	// step after that services it
	step(t, mc, 3)
	test.Equate(t, mc.PC.Address(), uint32(0x9000))
}
