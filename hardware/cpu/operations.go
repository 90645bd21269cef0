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
	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/execution"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/instructions"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
	"github.com/benjcooley/m65832-sub002/hardware/memory"
	"github.com/benjcooley/m65832-sub002/logger"
)

// operandWidth maps a definition width onto the active register widths.
func (mc *CPU) operandWidth(ow instructions.OperandWidth) registers.Width {
	switch ow {
	case instructions.WidthM:
		return mc.mwidth()
	case instructions.WidthX:
		return mc.xwidth()
	case instructions.WidthByte:
		return registers.Width8
	case instructions.WidthWord:
		return registers.Width16
	}
	return registers.Width8
}

// execute decodes and runs the instruction for an already fetched opcode.
func (mc *CPU) execute(opcode uint8) (int, error) {
	defn := instructions.Definitions[opcode]
	if defn == nil {
		return mc.illegal(opcode)
	}

	mc.LastResult = execution.Result{
		Address: mc.instStart,
		Defn:    defn,
		Cycles:  defn.Cycles,
	}

	cycles := defn.Cycles
	w := mc.operandWidth(defn.Width)

	switch defn.Mnemonic {
	// loads and stores. loads replace the full register, the high bits
	// zero when the width is narrow
	case "LDA":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.A.LoadFull(v)
		mc.setNZ(v, w)

	case "LDX":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.X.LoadFull(v)
		mc.setNZ(v, w)

	case "LDY":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.Y.LoadFull(v)
		mc.setNZ(v, w)

	case "STA":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		return cycles, mc.writeOperand(o, mc.A.Masked(w), w)

	case "STX":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		return cycles, mc.writeOperand(o, mc.X.Masked(w), w)

	case "STY":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		return cycles, mc.writeOperand(o, mc.Y.Masked(w), w)

	case "STZ":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		return cycles, mc.writeOperand(o, 0, w)

	// arithmetic and logic. results merge under the width mask, the high
	// bits of the accumulator are preserved
	case "ADC":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.A.Load(mc.adc(mc.A.Masked(w), v, w), w)

	case "SBC":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.A.Load(mc.sbc(mc.A.Masked(w), v, w), w)

	case "AND":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.A.AND(v, w)
		mc.setNZ(mc.A.Masked(w), w)

	case "ORA":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.A.ORA(v, w)
		mc.setNZ(mc.A.Masked(w), w)

	case "EOR":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.A.EOR(v, w)
		mc.setNZ(mc.A.Masked(w), w)

	case "CMP":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.compare(mc.A.Masked(w), v, w)

	case "CPX":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.compare(mc.X.Masked(w), v, w)

	case "CPY":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.compare(mc.Y.Masked(w), v, w)

	case "BIT":
		v, err := mc.loadOperand(defn, w)
		if err != nil {
			return cycles, err
		}
		mc.bit(v, w)

	case "TRB":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		v, err := mc.readOperand(o, w)
		if err != nil {
			return cycles, err
		}
		mc.Status.Zero = mc.A.Masked(w)&v == 0
		return cycles, mc.writeOperand(o, v & ^mc.A.Masked(w), w)

	case "TSB":
		o, err := mc.resolve(defn.AddressingMode, w)
		if err != nil {
			return cycles, err
		}
		v, err := mc.readOperand(o, w)
		if err != nil {
			return cycles, err
		}
		mc.Status.Zero = mc.A.Masked(w)&v == 0
		return cycles, mc.writeOperand(o, v|mc.A.Masked(w), w)

	// read-modify-write
	case "ASL":
		return cycles, mc.rmw(defn, w, mc.asl)
	case "LSR":
		return cycles, mc.rmw(defn, w, mc.lsr)
	case "ROL":
		return cycles, mc.rmw(defn, w, mc.rol)
	case "ROR":
		return cycles, mc.rmw(defn, w, mc.ror)
	case "INC":
		return cycles, mc.rmw(defn, w, mc.inc)
	case "DEC":
		return cycles, mc.rmw(defn, w, mc.dec)

	case "INX":
		mc.X.Increment(w)
		mc.setNZ(mc.X.Masked(w), w)
	case "INY":
		mc.Y.Increment(w)
		mc.setNZ(mc.Y.Masked(w), w)
	case "DEX":
		mc.X.Decrement(w)
		mc.setNZ(mc.X.Masked(w), w)
	case "DEY":
		mc.Y.Decrement(w)
		mc.setNZ(mc.Y.Masked(w), w)

	// register transfers
	case "TAX":
		mc.X.LoadFull(mc.A.Masked(mc.xwidth()))
		mc.setNZ(mc.X.Value(), mc.xwidth())
	case "TAY":
		mc.Y.LoadFull(mc.A.Masked(mc.xwidth()))
		mc.setNZ(mc.Y.Value(), mc.xwidth())
	case "TXA":
		mc.A.LoadFull(mc.X.Masked(mc.mwidth()))
		mc.setNZ(mc.A.Value(), mc.mwidth())
	case "TYA":
		mc.A.LoadFull(mc.Y.Masked(mc.mwidth()))
		mc.setNZ(mc.A.Value(), mc.mwidth())
	case "TSX":
		mc.X.LoadFull(mc.S.Masked(mc.xwidth()))
		mc.setNZ(mc.X.Value(), mc.xwidth())
	case "TXS":
		mc.S.LoadFull(mc.X.Value())
		mc.pinStack()
	case "TXY":
		mc.Y.LoadFull(mc.X.Value())
		mc.setNZ(mc.Y.Value(), mc.xwidth())
	case "TYX":
		mc.X.LoadFull(mc.Y.Value())
		mc.setNZ(mc.X.Value(), mc.xwidth())
	case "TCD":
		mc.D.LoadFull(mc.A.Value())
		mc.setNZ(mc.D.Value(), registers.Width16)
	case "TDC":
		mc.A.LoadFull(mc.D.Masked(mc.mwidth()))
		mc.setNZ(mc.A.Value(), mc.mwidth())
	case "TCS":
		mc.S.LoadFull(mc.A.Value())
		mc.pinStack()
	case "TSC":
		mc.A.LoadFull(mc.S.Value())
		mc.setNZ(mc.A.Value(), mc.mwidth())

	case "XBA":
		a := mc.A.Value()
		mc.A.LoadFull((a &^ 0xffff) | ((a & 0xff) << 8) | ((a >> 8) & 0xff))
		mc.setNZ(mc.A.Value(), registers.Width8)

	// stack
	case "PHA":
		return cycles, mc.pushVal(mc.A.Value(), mc.mwidth())
	case "PLA":
		v, err := mc.pullVal(mc.mwidth())
		if err != nil {
			return cycles, err
		}
		mc.A.LoadFull(v)
		mc.setNZ(v, mc.mwidth())
	case "PHX":
		return cycles, mc.pushVal(mc.X.Value(), mc.xwidth())
	case "PLX":
		v, err := mc.pullVal(mc.xwidth())
		if err != nil {
			return cycles, err
		}
		mc.X.LoadFull(v)
		mc.setNZ(v, mc.xwidth())
	case "PHY":
		return cycles, mc.pushVal(mc.Y.Value(), mc.xwidth())
	case "PLY":
		v, err := mc.pullVal(mc.xwidth())
		if err != nil {
			return cycles, err
		}
		mc.Y.LoadFull(v)
		mc.setNZ(v, mc.xwidth())

	case "PHP":
		// the legacy B and unused bits push as set
		return cycles, mc.push8(uint8(mc.Status.Value()) | 0x30)
	case "PLP":
		v, err := mc.pull8()
		if err != nil {
			return cycles, err
		}
		mc.Status.Load((mc.Status.Value() & 0xff00) | uint16(v))
	case "PHD":
		return cycles, mc.push16(uint16(mc.D.Value()))
	case "PLD":
		v, err := mc.pull16()
		if err != nil {
			return cycles, err
		}
		mc.D.LoadFull(uint32(v))
		mc.setNZ(uint32(v), registers.Width16)
	case "PHB":
		return cycles, mc.push8(uint8(mc.B.Value() >> 16))
	case "PHK":
		return cycles, mc.push8(uint8(mc.PC.Address() >> 16))

	case "PEA":
		v, err := mc.fetch16()
		if err != nil {
			return cycles, err
		}
		return cycles, mc.push16(v)
	case "PEI":
		o, err := mc.resolve(instructions.DirectPage, registers.Width16)
		if err != nil {
			return cycles, err
		}
		v, err := mc.readOperand(o, registers.Width16)
		if err != nil {
			return cycles, err
		}
		return cycles, mc.push16(uint16(v))
	case "PER":
		rel, err := mc.fetch16()
		if err != nil {
			return cycles, err
		}
		return cycles, mc.push16(uint16(mc.PC.Address() + uint32(int32(int16(rel)))))

	// branches
	case "BPL":
		return mc.branch(!mc.Status.Sign, cycles)
	case "BMI":
		return mc.branch(mc.Status.Sign, cycles)
	case "BVC":
		return mc.branch(!mc.Status.Overflow, cycles)
	case "BVS":
		return mc.branch(mc.Status.Overflow, cycles)
	case "BCC":
		return mc.branch(!mc.Status.Carry, cycles)
	case "BCS":
		return mc.branch(mc.Status.Carry, cycles)
	case "BNE":
		return mc.branch(!mc.Status.Zero, cycles)
	case "BEQ":
		return mc.branch(mc.Status.Zero, cycles)
	case "BRA":
		return mc.branch(true, cycles)
	case "BRL":
		rel, err := mc.fetch16()
		if err != nil {
			return cycles, err
		}
		mc.PC.LoadFull(mc.PC.Address() + uint32(int32(int16(rel))))

	// jumps. plain JMP abs replaces the low 16 bits of PC, keeping the
	// bank; the indirect forms load the pointer into the full PC
	case "JMP":
		switch defn.AddressingMode {
		case instructions.Absolute:
			a, err := mc.fetch16()
			if err != nil {
				return cycles, err
			}
			mc.PC.LoadFull((mc.PC.Address() & 0xffff0000) | uint32(a))
		case instructions.AbsoluteLong:
			a, err := mc.fetch24()
			if err != nil {
				return cycles, err
			}
			mc.PC.LoadFull(a)
		case instructions.AbsoluteIndirect:
			a, err := mc.fetch16()
			if err != nil {
				return cycles, err
			}
			t, err := mc.readVal(mc.B.Address()+uint32(a), registers.Width16)
			if err != nil {
				return cycles, err
			}
			mc.PC.LoadFull(t)
		case instructions.AbsoluteIndexedIndirect:
			a, err := mc.fetch16()
			if err != nil {
				return cycles, err
			}
			t, err := mc.readVal(mc.B.Address()+uint32(a)+mc.X.Address(), registers.Width16)
			if err != nil {
				return cycles, err
			}
			mc.PC.LoadFull(t)
		}

	case "JML":
		a, err := mc.fetch16()
		if err != nil {
			return cycles, err
		}
		t, err := mc.readVal(mc.B.Address()+uint32(a), registers.Width32)
		if err != nil {
			return cycles, err
		}
		mc.PC.LoadFull(t)

	case "JSR":
		switch defn.AddressingMode {
		case instructions.Absolute:
			a, err := mc.fetch16()
			if err != nil {
				return cycles, err
			}
			if err := mc.push16(uint16(mc.PC.Address() - 1)); err != nil {
				return cycles, err
			}
			mc.PC.LoadFull((mc.PC.Address() & 0xffff0000) | uint32(a))
		case instructions.AbsoluteIndexedIndirect:
			a, err := mc.fetch16()
			if err != nil {
				return cycles, err
			}
			t, err := mc.readVal(mc.B.Address()+uint32(a)+mc.X.Address(), registers.Width16)
			if err != nil {
				return cycles, err
			}
			if err := mc.push16(uint16(mc.PC.Address() - 1)); err != nil {
				return cycles, err
			}
			mc.PC.LoadFull(t)
		}

	case "JSL":
		a, err := mc.fetch24()
		if err != nil {
			return cycles, err
		}
		if err := mc.push8(uint8(mc.PC.Address() >> 16)); err != nil {
			return cycles, err
		}
		if err := mc.push16(uint16(mc.PC.Address() - 1)); err != nil {
			return cycles, err
		}
		mc.PC.LoadFull(a)

	case "RTS":
		a, err := mc.pull16()
		if err != nil {
			return cycles, err
		}
		mc.PC.LoadFull(uint32(a+1) & 0xffff)

	case "RTL":
		a, err := mc.pull16()
		if err != nil {
			return cycles, err
		}
		hi, err := mc.pull8()
		if err != nil {
			return cycles, err
		}
		mc.PC.LoadFull((uint32(a) + 1) | uint32(hi)<<16)

	case "RTI":
		return cycles, mc.rti()

	case "BRK":
		return cycles, mc.brk()

	case "EXT":
		// in emulation mode the prefix decodes as the legacy COP
		// instruction, the extended page needs a native width mode
		if mc.Status.Mode() == registers.ModeEmulation {
			return cycles, mc.cop()
		}
		return mc.executeExtended()

	// flag operations
	case "CLC":
		mc.Status.Carry = false
	case "SEC":
		mc.Status.Carry = true
	case "CLI":
		mc.Status.InterruptDisable = false
	case "SEI":
		mc.Status.InterruptDisable = true
	case "CLD":
		mc.Status.Decimal = false
	case "SED":
		mc.Status.Decimal = true
	case "CLV":
		mc.Status.Overflow = false

	case "REP":
		v, err := mc.fetch8()
		if err != nil {
			return cycles, err
		}
		mc.Status.Load(mc.Status.Value() & ^uint16(v))
	case "SEP":
		v, err := mc.fetch8()
		if err != nil {
			return cycles, err
		}
		mc.Status.Load(mc.Status.Value() | uint16(v))

	case "XCE":
		// exchange the carry with the emulation condition. entering
		// emulation pins the stack to page one. leaving it selects
		// native-16; native-32 entry is via RTI
		emu := mc.Status.Mode() == registers.ModeEmulation
		c := mc.Status.Carry
		mc.Status.Carry = emu
		if c {
			mc.Status.SetMode(registers.ModeEmulation)
			mc.pinStack()
		} else if emu {
			mc.Status.SetMode(registers.ModeNative16)
		}

	case "NOP":
		// nothing

	case "STP":
		if !mc.Status.Supervisor {
			return cycles, curated.Errorf(memory.PrivilegeViolation, mc.instStart)
		}
		mc.Halted = true
		logger.Logf("cpu", "stopped at %08x", mc.instStart)

	case "WAI":
		mc.Waiting = true

	case "MVN":
		return cycles, mc.blockMove(1)
	case "MVP":
		return cycles, mc.blockMove(-1)
	}

	return cycles, nil
}

// loadOperand resolves and reads the source operand of a read effect
// instruction.
func (mc *CPU) loadOperand(defn *instructions.Definition, w registers.Width) (uint32, error) {
	o, err := mc.resolve(defn.AddressingMode, w)
	if err != nil {
		return 0, err
	}
	return mc.readOperand(o, w)
}

// rmw runs a read-modify-write operation against the resolved operand,
// which may be the accumulator.
func (mc *CPU) rmw(defn *instructions.Definition, w registers.Width, op func(uint32, registers.Width) uint32) error {
	o, err := mc.resolve(defn.AddressingMode, w)
	if err != nil {
		return err
	}
	v, err := mc.readOperand(o, w)
	if err != nil {
		return err
	}
	return mc.writeOperand(o, op(v, w), w)
}

// branch takes a conditional 8-bit relative branch. a taken branch costs
// an extra cycle.
func (mc *CPU) branch(cond bool, cycles int) (int, error) {
	rel, err := mc.fetch8()
	if err != nil {
		return cycles, err
	}
	if cond {
		mc.PC.LoadFull(mc.PC.Address() + uint32(int32(int8(rel))))
		cycles++
	}
	return cycles, nil
}

// pinStack constrains the stack pointer to page one in emulation mode.
func (mc *CPU) pinStack() {
	if mc.Status.Mode() == registers.ModeEmulation {
		mc.S.LoadFull(0x0100 | (mc.S.Address() & 0xff))
	}
}

// blockMove implements MVN (dir=1) and MVP (dir=-1). one byte moves per
// execution and PC rewinds over the operand bytes until the count in the
// accumulator underflows, so the instruction is interruptible.
func (mc *CPU) blockMove(dir int32) error {
	// the legacy bank operand bytes are fetched and ignored in the flat
	// address model
	if _, err := mc.fetch8(); err != nil {
		return err
	}
	if _, err := mc.fetch8(); err != nil {
		return err
	}

	v, err := mc.mem.Read8(mc.effective(mc.X.Address()))
	if err != nil {
		return err
	}
	if err := mc.mem.Write8(mc.effective(mc.Y.Address()), v); err != nil {
		return err
	}

	mc.X.LoadFull(mc.X.Address() + uint32(dir))
	mc.Y.LoadFull(mc.Y.Address() + uint32(dir))
	mc.A.LoadFull(mc.A.Value() - 1)

	mask := mc.mwidth().Mask()
	if mc.A.Value()&mask != mask {
		mc.PC.LoadFull(mc.PC.Address() - 3)
	}
	return nil
}
