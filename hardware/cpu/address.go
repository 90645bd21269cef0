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
	"github.com/benjcooley/m65832-sub002/hardware/cpu/instructions"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
)

type operandKind int

const (
	operandNone operandKind = iota

	// a virtual memory address
	operandMemory

	// a byte offset into the register window. direct page addressing
	// lands here when the R flag is set
	operandWindow

	// an already fetched immediate value
	operandImmediate

	// a register, used by the accumulator addressing mode and the
	// register-direct encodings of the extended ALU group
	operandRegister
)

// operand is a resolved instruction operand. resolving performs all
// operand fetches and pointer reads, so a resolved operand carries no
// further fault potential except for the final access itself.
type operand struct {
	kind operandKind
	addr uint32
	slot uint32
	imm  uint32
	reg  *registers.Data
}

// dpOperand builds the operand for a direct page offset. with the R flag
// set the direct page is the register window.
func (mc *CPU) dpOperand(off uint32) operand {
	if mc.Status.Window {
		return operand{kind: operandWindow, slot: off & 0xff}
	}
	return operand{kind: operandMemory, addr: mc.D.Address() + off}
}

// resolve decodes the operand bytes for an addressing mode. the width is
// only used by the immediate mode.
func (mc *CPU) resolve(mode instructions.AddressingMode, w registers.Width) (operand, error) {
	switch mode {
	case instructions.Implied:
		return operand{kind: operandNone}, nil

	case instructions.Accumulator:
		return operand{kind: operandRegister, reg: &mc.A}, nil

	case instructions.Immediate:
		v, err := mc.fetchVal(w)
		return operand{kind: operandImmediate, imm: v}, err

	case instructions.DirectPage:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		return mc.dpOperand(uint32(off)), nil

	case instructions.DirectPageX:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		if mc.Status.Window {
			return operand{kind: operandWindow, slot: (uint32(off) + mc.X.Address()) & 0xff}, nil
		}
		return operand{kind: operandMemory, addr: mc.D.Address() + uint32(off) + mc.X.Address()}, nil

	case instructions.DirectPageY:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: mc.D.Address() + uint32(off) + mc.Y.Address()}, nil

	case instructions.Absolute:
		a, err := mc.fetch16()
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: mc.B.Address() + uint32(a)}, nil

	case instructions.AbsoluteX:
		a, err := mc.fetch16()
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: mc.B.Address() + uint32(a) + mc.X.Address()}, nil

	case instructions.AbsoluteY:
		a, err := mc.fetch16()
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: mc.B.Address() + uint32(a) + mc.Y.Address()}, nil

	case instructions.AbsoluteLong:
		a, err := mc.fetch24()
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: a}, nil

	case instructions.AbsoluteLongX:
		a, err := mc.fetch24()
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: a + mc.X.Address()}, nil

	case instructions.DirectPageIndirect:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readOperand(mc.dpOperand(uint32(off)), mc.Status.PointerWidth())
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: ptr}, nil

	case instructions.DirectPageIndexedIndirect:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		var p operand
		if mc.Status.Window {
			p = operand{kind: operandWindow, slot: (uint32(off) + mc.X.Address()) & 0xff}
		} else {
			p = operand{kind: operandMemory, addr: mc.D.Address() + uint32(off) + mc.X.Address()}
		}
		ptr, err := mc.readOperand(p, mc.Status.PointerWidth())
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: ptr}, nil

	case instructions.DirectPageIndirectY:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readOperand(mc.dpOperand(uint32(off)), mc.Status.PointerWidth())
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: ptr + mc.Y.Address()}, nil

	case instructions.DirectPageIndirectLong:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readOperand(mc.dpOperand(uint32(off)), registers.Width32)
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: ptr}, nil

	case instructions.DirectPageIndirectLongY:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readOperand(mc.dpOperand(uint32(off)), registers.Width32)
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: ptr + mc.Y.Address()}, nil

	case instructions.StackRelative:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: mc.S.Address() + uint32(off)}, nil

	case instructions.StackRelativeIndirectY:
		off, err := mc.fetch8()
		if err != nil {
			return operand{}, err
		}
		ptr, err := mc.readVal(mc.S.Address()+uint32(off), mc.Status.PointerWidth())
		if err != nil {
			return operand{}, err
		}
		return operand{kind: operandMemory, addr: ptr + mc.Y.Address()}, nil
	}

	return operand{kind: operandNone}, nil
}

// readOperand reads a value of the given width from a resolved operand.
func (mc *CPU) readOperand(o operand, w registers.Width) (uint32, error) {
	switch o.kind {
	case operandMemory:
		return mc.readVal(o.addr, w)
	case operandWindow:
		v, ok := mc.Window.Read(o.slot, w)
		if !ok {
			return 0, curated.Errorf(AlignmentFault, o.slot)
		}
		return v, nil
	case operandImmediate:
		return o.imm & w.Mask(), nil
	case operandRegister:
		return o.reg.Masked(w), nil
	}
	return 0, nil
}

// writeOperand writes a value of the given width to a resolved operand.
func (mc *CPU) writeOperand(o operand, val uint32, w registers.Width) error {
	switch o.kind {
	case operandMemory:
		return mc.writeVal(o.addr, val, w)
	case operandWindow:
		if !mc.Window.Write(o.slot, val, w) {
			return curated.Errorf(AlignmentFault, o.slot)
		}
		return nil
	case operandRegister:
		o.reg.Load(val, w)
		return nil
	}
	return nil
}
