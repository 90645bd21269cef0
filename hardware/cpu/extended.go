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
	"github.com/benjcooley/m65832-sub002/hardware/cpu/instructions"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
)

// executeExtended dispatches the sub-opcode of the $02 extended page.
// only reachable in the native width modes.
func (mc *CPU) executeExtended() (int, error) {
	sub, err := mc.fetch8()
	if err != nil {
		return 3, err
	}

	mc.LastResult.Extended = true
	mc.LastResult.SubOpCode = sub

	if defn, ok := instructions.ExtDefinitions[sub]; ok {
		return mc.executeExtSimple(defn)
	}

	if op, ok := instructions.ALUOperationFor(sub); ok {
		return mc.extALU(op)
	}

	switch {
	case sub >= instructions.ExtALUFirst && sub <= instructions.ExtALULast:
		// reserved ALU sub-opcode
		return mc.illegal(sub)
	case sub == instructions.ExtSHIFT:
		return mc.extShift()
	case sub == instructions.ExtEXTEND:
		return mc.extExtend()
	case instructions.IsFPU(sub):
		// no FPU datapath. trap through the syscall table for software
		// emulation, indexed by the sub-opcode
		mc.exceptionEnter(memorymap.VecSyscall+uint32(sub)*4, mc.PC.Address())
		return 8, nil
	}

	return mc.illegal(sub)
}

// executeExtSimple runs the extended page instructions with a fixed
// definition.
func (mc *CPU) executeExtSimple(defn *instructions.ExtDefinition) (int, error) {
	cycles := defn.Cycles
	w := mc.mwidth()

	switch defn.Mnemonic {
	case "MUL", "MULU":
		v, err := mc.extLoad(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.multiply(v, w, defn.Mnemonic == "MUL")

	case "DIV", "DIVU":
		v, err := mc.extLoad(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.divide(v, w, defn.Mnemonic == "DIV")

	case "CAS":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		return cycles, mc.compareAndSwap(o, w)

	case "LLI":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		if o.kind == operandMemory {
			v, err := mc.mem.LoadLinked(mc.effective(o.addr), w)
			if err != nil {
				return cycles, err
			}
			mc.A.LoadFull(v)
		} else {
			// a link cannot be opened on the register window. the read
			// succeeds and the paired store conditional reports failure
			v, err := mc.readOperand(o, w)
			if err != nil {
				return cycles, err
			}
			mc.A.LoadFull(v)
		}
		mc.setNZ(mc.A.Value(), w)

	case "SCI":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		if o.kind == operandMemory {
			ok, err := mc.mem.StoreConditional(mc.effective(o.addr), w, mc.A.Masked(w))
			if err != nil {
				return cycles, err
			}
			mc.Status.Zero = ok
		} else {
			mc.Status.Zero = false
		}

	case "SD":
		v, err := mc.extLoad32(defn)
		if err != nil {
			return cycles, err
		}
		mc.D.LoadFull(v)

	case "SB":
		v, err := mc.extLoad32(defn)
		if err != nil {
			return cycles, err
		}
		mc.B.LoadFull(v)

	case "ENR":
		mc.Status.Window = true
	case "DSR":
		mc.Status.Window = false

	case "TRAP":
		code, err := mc.fetch8()
		if err != nil {
			return cycles, err
		}
		mc.exceptionEnter(memorymap.VecSyscall+uint32(code)*4, mc.PC.Address())

	case "FENCE", "FENCER", "FENCEW":
		// a full barrier on every flavour. the bus serialises all
		// accesses so the fence is a synchronisation point only
		mc.mem.Fence()

	case "TTA":
		mc.A.LoadFull(mc.T.Value())
		mc.setNZ(mc.A.Value(), w)
	case "TAT":
		mc.T.LoadFull(mc.A.Value())

	case "LDQ":
		o, err := mc.resolve(defn.AddressingMode, registers.Width32)
		if err != nil {
			return cycles, err
		}
		lo, err := mc.readOperand(o, registers.Width32)
		if err != nil {
			return cycles, err
		}
		hi, err := mc.readOperand(operandOffset(o, 4), registers.Width32)
		if err != nil {
			return cycles, err
		}
		mc.A.LoadFull(lo)
		mc.T.LoadFull(hi)
		mc.setNZ(lo, registers.Width32)

	case "STQ":
		o, err := mc.resolve(defn.AddressingMode, registers.Width32)
		if err != nil {
			return cycles, err
		}
		if err := mc.writeOperand(o, mc.A.Value(), registers.Width32); err != nil {
			return cycles, err
		}
		return cycles, mc.writeOperand(operandOffset(o, 4), mc.T.Value(), registers.Width32)

	case "LEA":
		a, err := mc.leaAddress(defn.AddressingMode)
		if err != nil {
			return cycles, err
		}
		mc.A.LoadFull(a)
		mc.setNZ(a, registers.Width32)
	}

	return cycles, nil
}

// extLoad resolves and reads the source operand of an extended page
// instruction.
func (mc *CPU) extLoad(defn *instructions.ExtDefinition, w registers.Width) (uint32, error) {
	o, err := mc.resolve(defn.AddressingMode, w)
	if err != nil {
		return 0, err
	}
	return mc.readOperand(o, w)
}

// extLoad32 reads the 32-bit operand of the SD and SB instructions:
// either a 32-bit immediate or a 32-bit read from the direct page.
func (mc *CPU) extLoad32(defn *instructions.ExtDefinition) (uint32, error) {
	if defn.AddressingMode == instructions.Immediate {
		return mc.fetch32()
	}
	o, err := mc.resolve(defn.AddressingMode, registers.Width32)
	if err != nil {
		return 0, err
	}
	return mc.readOperand(o, registers.Width32)
}

// leaAddress computes the effective address for LEA without performing
// any memory access. the direct page forms ignore the register window.
func (mc *CPU) leaAddress(mode instructions.AddressingMode) (uint32, error) {
	switch mode {
	case instructions.DirectPage:
		off, err := mc.fetch8()
		return mc.D.Address() + uint32(off), err
	case instructions.DirectPageX:
		off, err := mc.fetch8()
		return mc.D.Address() + uint32(off) + mc.X.Address(), err
	case instructions.Absolute:
		a, err := mc.fetch16()
		return uint32(a), err
	case instructions.AbsoluteX:
		a, err := mc.fetch16()
		return uint32(a) + mc.X.Address(), err
	}
	return 0, nil
}

// operandOffset displaces a resolved memory or window operand. used by
// the 64-bit load/store pair for the high word.
func operandOffset(o operand, by uint32) operand {
	switch o.kind {
	case operandMemory:
		o.addr += by
	case operandWindow:
		o.slot += by
	}
	return o
}

// multiply computes A times val at the given width. the 32-bit product
// of the narrow widths replaces the accumulator in full; the 32-bit
// width produces a 64-bit product split across T:A.
func (mc *CPU) multiply(val uint32, w registers.Width, signed bool) {
	a := mc.A.Masked(w)
	val &= w.Mask()

	switch w {
	case registers.Width32:
		if signed {
			r := int64(int32(a)) * int64(int32(val))
			mc.A.LoadFull(uint32(r))
			mc.T.LoadFull(uint32(uint64(r) >> 32))
		} else {
			r := uint64(a) * uint64(val)
			mc.A.LoadFull(uint32(r))
			mc.T.LoadFull(uint32(r >> 32))
		}
	case registers.Width16:
		if signed {
			mc.A.LoadFull(uint32(int32(int16(a)) * int32(int16(val))))
		} else {
			mc.A.LoadFull(a * val)
		}
	default:
		if signed {
			mc.A.LoadFull(uint32(uint16(int16(int8(a)) * int16(int8(val)))))
		} else {
			mc.A.LoadFull(a * val)
		}
	}

	mc.setNZ(mc.A.Value(), w)
}

// divide computes A over val at the given width, quotient to A and
// remainder to T. division by zero sets the overflow flag, loads the
// quotient with all ones and leaves the dividend in T.
func (mc *CPU) divide(val uint32, w registers.Width, signed bool) {
	a := mc.A.Masked(w)
	val &= w.Mask()

	if val == 0 {
		mc.Status.Overflow = true
		mc.T.LoadFull(a)
		mc.A.LoadFull(w.Mask())
		mc.setNZ(mc.A.Value(), w)
		return
	}

	mc.Status.Overflow = false

	if signed {
		var q, r int64
		switch w {
		case registers.Width32:
			q = int64(int32(a) / int32(val))
			r = int64(int32(a) % int32(val))
		case registers.Width16:
			q = int64(int16(a) / int16(val))
			r = int64(int16(a) % int16(val))
		default:
			q = int64(int8(a) / int8(val))
			r = int64(int8(a) % int8(val))
		}
		mc.A.LoadFull(uint32(q) & w.Mask())
		mc.T.LoadFull(uint32(r) & w.Mask())
	} else {
		mc.A.LoadFull(a / val)
		mc.T.LoadFull(a % val)
	}

	mc.setNZ(mc.A.Value(), w)
}

// compareAndSwap implements the CAS instruction: compare memory with X
// and store A on a match. Z reports the outcome; on a miss the memory
// value loads into X for the retry loop.
func (mc *CPU) compareAndSwap(o operand, w registers.Width) error {
	if o.kind == operandMemory {
		mem, swapped, err := mc.mem.CompareAndSwap(mc.effective(o.addr), w, mc.X.Masked(w), mc.A.Masked(w))
		if err != nil {
			return err
		}
		mc.Status.Zero = swapped
		if !swapped {
			mc.X.LoadFull(mem)
		}
		return nil
	}

	// window operand. no other agent can touch the window so the plain
	// sequence is atomic
	v, err := mc.readOperand(o, w)
	if err != nil {
		return err
	}
	if v == mc.X.Masked(w) {
		if err := mc.writeOperand(o, mc.A.Masked(w), w); err != nil {
			return err
		}
		mc.Status.Zero = true
	} else {
		mc.X.LoadFull(v)
		mc.Status.Zero = false
	}
	return nil
}

// extALU executes the extended ALU group: a mode byte selects an explicit
// width, the destination and one of the source encodings.
func (mc *CPU) extALU(op instructions.ALUOperation) (int, error) {
	cycles := 4

	b, err := mc.fetch8()
	if err != nil {
		return cycles, err
	}
	m, ok := instructions.ParseALUMode(b)
	if !ok {
		return mc.illegal(b)
	}

	w := registers.Width(m.Size)

	dest := operand{kind: operandRegister, reg: &mc.A}
	if m.WindowTarget {
		slot, err := mc.fetch8()
		if err != nil {
			return cycles, err
		}
		dest = operand{kind: operandWindow, slot: uint32(slot)}
	}

	src, err := mc.aluSource(m.Source, w)
	if err != nil {
		return cycles, err
	}
	v, err := mc.readOperand(src, w)
	if err != nil {
		return cycles, err
	}

	var result uint32

	switch op {
	case instructions.ALULoad:
		result = v
		mc.setNZ(result, w)
	case instructions.ALUADC:
		d, err := mc.readOperand(dest, w)
		if err != nil {
			return cycles, err
		}
		result = mc.adc(d, v, w)
	case instructions.ALUSBC:
		d, err := mc.readOperand(dest, w)
		if err != nil {
			return cycles, err
		}
		result = mc.sbc(d, v, w)
	case instructions.ALUAND, instructions.ALUORA, instructions.ALUEOR:
		d, err := mc.readOperand(dest, w)
		if err != nil {
			return cycles, err
		}
		switch op {
		case instructions.ALUAND:
			result = d & v
		case instructions.ALUORA:
			result = d | v
		default:
			result = d ^ v
		}
		result &= w.Mask()
		mc.setNZ(result, w)
	case instructions.ALUCMP:
		d, err := mc.readOperand(dest, w)
		if err != nil {
			return cycles, err
		}
		mc.compare(d, v, w)
		return cycles, nil
	}

	return cycles, mc.writeOperand(dest, result, w)
}

// aluSource resolves the source operand encoding of an extended ALU mode
// byte. the legacy encodings reuse the standard addressing modes, the
// 32-bit absolute family is unique to the extended page.
func (mc *CPU) aluSource(src instructions.ALUAddressing, w registers.Width) (operand, error) {
	switch src {
	case instructions.ALUSrcDpIndexedIndirect:
		return mc.resolve(instructions.DirectPageIndexedIndirect, w)
	case instructions.ALUSrcDp:
		return mc.resolve(instructions.DirectPage, w)
	case instructions.ALUSrcImmediate:
		return mc.resolve(instructions.Immediate, w)
	case instructions.ALUSrcA:
		return operand{kind: operandRegister, reg: &mc.A}, nil
	case instructions.ALUSrcDpIndirectY:
		return mc.resolve(instructions.DirectPageIndirectY, w)
	case instructions.ALUSrcDpX:
		return mc.resolve(instructions.DirectPageX, w)
	case instructions.ALUSrcAbs:
		return mc.resolve(instructions.Absolute, w)
	case instructions.ALUSrcAbsX:
		return mc.resolve(instructions.AbsoluteX, w)
	case instructions.ALUSrcAbsY:
		return mc.resolve(instructions.AbsoluteY, w)
	case instructions.ALUSrcDpIndirect:
		return mc.resolve(instructions.DirectPageIndirect, w)
	case instructions.ALUSrcDpIndirectLong:
		return mc.resolve(instructions.DirectPageIndirectLong, w)
	case instructions.ALUSrcDpIndirectLongY:
		return mc.resolve(instructions.DirectPageIndirectLongY, w)
	case instructions.ALUSrcStackRelative:
		return mc.resolve(instructions.StackRelative, w)
	case instructions.ALUSrcStackRelIndirectY:
		return mc.resolve(instructions.StackRelativeIndirectY, w)
	case instructions.ALUSrcX:
		return operand{kind: operandRegister, reg: &mc.X}, nil
	case instructions.ALUSrcY:
		return operand{kind: operandRegister, reg: &mc.Y}, nil
	case instructions.ALUSrcT:
		return operand{kind: operandRegister, reg: &mc.T}, nil
	case instructions.ALUSrcDpY:
		return mc.resolve(instructions.DirectPageY, w)

	case instructions.ALUSrcAbs32:
		a, err := mc.fetch32()
		return operand{kind: operandMemory, addr: a}, err
	case instructions.ALUSrcAbs32X:
		a, err := mc.fetch32()
		return operand{kind: operandMemory, addr: a + mc.X.Address()}, err
	case instructions.ALUSrcAbs32Y:
		a, err := mc.fetch32()
		return operand{kind: operandMemory, addr: a + mc.Y.Address()}, err
	case instructions.ALUSrcAbs32Indirect:
		a, err := mc.fetch32()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readVal(a, registers.Width32)
		return operand{kind: operandMemory, addr: ptr}, err
	case instructions.ALUSrcAbs32IndexedInd:
		a, err := mc.fetch32()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readVal(a+mc.X.Address(), registers.Width32)
		return operand{kind: operandMemory, addr: ptr}, err
	case instructions.ALUSrcAbs32IndirectY:
		a, err := mc.fetch32()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readVal(a, registers.Width32)
		return operand{kind: operandMemory, addr: ptr + mc.Y.Address()}, err
	}

	return operand{kind: operandNone}, nil
}

// extShift executes the barrel shift group: a five byte encoding naming
// the operation, a shift count, and direct page destination and source.
func (mc *CPU) extShift() (int, error) {
	opc, err := mc.fetch8()
	if err != nil {
		return 3, err
	}
	op, count := instructions.ParseOpCount(opc)

	destB, err := mc.fetch8()
	if err != nil {
		return 3, err
	}
	srcB, err := mc.fetch8()
	if err != nil {
		return 3, err
	}

	if op > int(instructions.ShiftROR) {
		return mc.illegal(opc)
	}

	if count == instructions.ShiftByA {
		count = int(mc.A.Value() & 0x1f)
	}

	w := mc.mwidth()
	bits := int(w.Bits())

	v, err := mc.readOperand(mc.dpOperand(uint32(srcB)), w)
	if err != nil {
		return 3, err
	}

	var result uint32

	switch instructions.ShiftOperation(op) {
	case instructions.ShiftSHL:
		result = (v << count) & w.Mask()
		mc.Status.Carry = count > 0 && count <= bits && (v>>(bits-count))&1 != 0
	case instructions.ShiftSHR:
		result = (v & w.Mask()) >> count
		mc.Status.Carry = count > 0 && (v>>(count-1))&1 != 0
	case instructions.ShiftSAR:
		var sv int32
		switch w {
		case registers.Width8:
			sv = int32(int8(v))
		case registers.Width16:
			sv = int32(int16(v))
		default:
			sv = int32(v)
		}
		result = uint32(sv>>count) & w.Mask()
		mc.Status.Carry = count > 0 && (v>>(count-1))&1 != 0
	case instructions.ShiftROL:
		result = v & w.Mask()
		for i := 0; i < count; i++ {
			result = mc.rol(result, w)
		}
	case instructions.ShiftROR:
		result = v & w.Mask()
		for i := 0; i < count; i++ {
			result = mc.ror(result, w)
		}
	}

	mc.setNZ(result, w)
	return 3, mc.writeOperand(mc.dpOperand(uint32(destB)), result, w)
}

// extExtend executes the extend and bit count group.
func (mc *CPU) extExtend() (int, error) {
	opc, err := mc.fetch8()
	if err != nil {
		return 3, err
	}
	op, _ := instructions.ParseOpCount(opc)

	destB, err := mc.fetch8()
	if err != nil {
		return 3, err
	}
	srcB, err := mc.fetch8()
	if err != nil {
		return 3, err
	}

	if op > int(instructions.ExtendPOPCNT) {
		return mc.illegal(opc)
	}

	w := mc.mwidth()

	v, err := mc.readOperand(mc.dpOperand(uint32(srcB)), w)
	if err != nil {
		return 3, err
	}

	var result uint32

	switch instructions.ExtendOperation(op) {
	case instructions.ExtendSEXT8:
		result = uint32(int32(int8(v)))
	case instructions.ExtendSEXT16:
		result = uint32(int32(int16(v)))
	case instructions.ExtendZEXT8:
		result = v & 0xff
	case instructions.ExtendZEXT16:
		result = v & 0xffff
	case instructions.ExtendCLZ:
		result = uint32(w.Bits())
		if v&w.Mask() != 0 {
			result = 0
			for bit := w.SignBit(); v&bit == 0; bit >>= 1 {
				result++
			}
		}
	case instructions.ExtendCTZ:
		result = uint32(w.Bits())
		if v&w.Mask() != 0 {
			result = 0
			for t := v & w.Mask(); t&1 == 0; t >>= 1 {
				result++
			}
		}
	case instructions.ExtendPOPCNT:
		result = 0
		for t := v & w.Mask(); t != 0; t >>= 1 {
			result += t & 1
		}
	}

	mc.setNZ(result, w)
	return 3, mc.writeOperand(mc.dpOperand(uint32(destB)), result, w)
}
