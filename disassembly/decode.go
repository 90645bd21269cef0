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

package disassembly

import (
	"fmt"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/instructions"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
)

type decoder struct {
	mem    Peeker
	status registers.Status

	addr  uint32
	next  uint32
	bytes []uint8
}

func (d *decoder) fetch() (uint8, error) {
	v, ok := d.mem.Peek(d.next)
	if !ok {
		return 0, curated.Errorf(UnmappedAddress, d.next)
	}
	d.bytes = append(d.bytes, v)
	d.next++
	return v, nil
}

func (d *decoder) fetch16() (uint32, error) {
	lo, err := d.fetch()
	if err != nil {
		return 0, err
	}
	hi, err := d.fetch()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<8, nil
}

func (d *decoder) fetch24() (uint32, error) {
	v, err := d.fetch16()
	if err != nil {
		return 0, err
	}
	b, err := d.fetch()
	if err != nil {
		return 0, err
	}
	return v | uint32(b)<<16, nil
}

func (d *decoder) fetch32() (uint32, error) {
	v, err := d.fetch24()
	if err != nil {
		return 0, err
	}
	b, err := d.fetch()
	if err != nil {
		return 0, err
	}
	return v | uint32(b)<<24, nil
}

func (d *decoder) fetchWidth(w registers.Width) (uint32, error) {
	switch w {
	case registers.Width16:
		return d.fetch16()
	case registers.Width32:
		return d.fetch32()
	default:
		v, err := d.fetch()
		return uint32(v), err
	}
}

// operandWidth resolves a definition's width class against the status
// flags.
func (d *decoder) operandWidth(ow instructions.OperandWidth) registers.Width {
	switch ow {
	case instructions.WidthM:
		return d.status.MWidth()
	case instructions.WidthX:
		return d.status.XWidth()
	case instructions.WidthWord:
		return registers.Width16
	default:
		return registers.Width8
	}
}

func (d *decoder) instruction(opcode uint8) (Entry, error) {
	if opcode == 0x02 && d.status.Mode() != registers.ModeEmulation {
		return d.extended()
	}

	defn := instructions.Definitions[opcode]
	if defn == nil {
		return Entry{Operator: "???", Operand: fmt.Sprintf("$%02x", opcode)}, nil
	}

	// in emulation mode the $02 opcode is the legacy COP instruction
	e := Entry{Operator: defn.Mnemonic}
	if opcode == 0x02 {
		e.Operator = "COP"
	}

	var err error
	e.Operand, err = d.operand(defn)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (d *decoder) operand(defn *instructions.Definition) (string, error) {
	switch defn.AddressingMode {
	case instructions.Implied:
		return "", nil

	case instructions.Accumulator:
		return "A", nil

	case instructions.Immediate:
		w := d.operandWidth(defn.Width)
		v, err := d.fetchWidth(w)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("#$%0*x", w.Bits()/4, v), nil

	case instructions.Relative:
		v, err := d.fetch()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("$%08x", d.next+uint32(int32(int8(v)))), nil

	case instructions.RelativeLong:
		v, err := d.fetch16()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("$%08x", d.next+uint32(int32(int16(v)))), nil

	case instructions.DirectPage:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x", v), err

	case instructions.DirectPageX:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x,X", v), err

	case instructions.DirectPageY:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x,Y", v), err

	case instructions.Absolute:
		v, err := d.fetch16()
		return fmt.Sprintf("$%04x", v), err

	case instructions.AbsoluteX:
		v, err := d.fetch16()
		return fmt.Sprintf("$%04x,X", v), err

	case instructions.AbsoluteY:
		v, err := d.fetch16()
		return fmt.Sprintf("$%04x,Y", v), err

	case instructions.AbsoluteLong:
		v, err := d.fetch24()
		return fmt.Sprintf("$%06x", v), err

	case instructions.AbsoluteLongX:
		v, err := d.fetch24()
		return fmt.Sprintf("$%06x,X", v), err

	case instructions.DirectPageIndirect:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x)", v), err

	case instructions.DirectPageIndexedIndirect:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x,X)", v), err

	case instructions.DirectPageIndirectY:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x),Y", v), err

	case instructions.DirectPageIndirectLong:
		v, err := d.fetch()
		return fmt.Sprintf("[$%02x]", v), err

	case instructions.DirectPageIndirectLongY:
		v, err := d.fetch()
		return fmt.Sprintf("[$%02x],Y", v), err

	case instructions.AbsoluteIndirect:
		v, err := d.fetch16()
		return fmt.Sprintf("($%04x)", v), err

	case instructions.AbsoluteIndexedIndirect:
		v, err := d.fetch16()
		return fmt.Sprintf("($%04x,X)", v), err

	case instructions.AbsoluteIndirectLong:
		v, err := d.fetch16()
		return fmt.Sprintf("[$%04x]", v), err

	case instructions.StackRelative:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x,S", v), err

	case instructions.StackRelativeIndirectY:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x,S),Y", v), err

	case instructions.BlockMove:
		dst, err := d.fetch()
		if err != nil {
			return "", err
		}
		src, err := d.fetch()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("$%02x,$%02x", src, dst), nil
	}

	return "", nil
}
