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

	"github.com/benjcooley/m65832-sub002/hardware/cpu/instructions"
	"github.com/benjcooley/m65832-sub002/hardware/cpu/registers"
)

var aluMnemonics = [...]string{"LD", "ADC", "SBC", "AND", "ORA", "EOR", "CMP"}
var shiftMnemonics = [...]string{"SHL", "SHR", "SAR", "ROL", "ROR"}
var extendMnemonics = [...]string{"SEXT8", "SEXT16", "ZEXT8", "ZEXT16", "CLZ", "CTZ", "POPCNT"}

func sizeSuffix(size int) string {
	switch size {
	case 1:
		return ".B"
	case 2:
		return ".W"
	default:
		return ".L"
	}
}

// extended decodes an instruction from the $02 opcode page.
func (d *decoder) extended() (Entry, error) {
	sub, err := d.fetch()
	if err != nil {
		return Entry{}, err
	}

	if defn, ok := instructions.ExtDefinitions[sub]; ok {
		return d.extSimple(defn)
	}

	if op, ok := instructions.ALUOperationFor(sub); ok {
		return d.extALU(op)
	}

	switch {
	case sub == instructions.ExtSHIFT:
		return d.extOpCount(shiftMnemonics[:], int(instructions.ShiftROR), true)
	case sub == instructions.ExtEXTEND:
		return d.extOpCount(extendMnemonics[:], int(instructions.ExtendPOPCNT), false)
	case instructions.IsFPU(sub):
		return Entry{Operator: "FPU", Operand: fmt.Sprintf("$%02x", sub)}, nil
	}

	return Entry{Operator: "???", Operand: fmt.Sprintf("$02 $%02x", sub)}, nil
}

func (d *decoder) extSimple(defn *instructions.ExtDefinition) (Entry, error) {
	e := Entry{Operator: defn.Mnemonic}

	switch defn.AddressingMode {
	case instructions.Implied:
		return e, nil

	case instructions.Immediate:
		// SD and SB take a 32-bit immediate regardless of the width
		// flags; TRAP takes its service code as a single byte
		w := registers.Width32
		if defn.Width == instructions.WidthByte {
			w = registers.Width8
		}
		v, err := d.fetchWidth(w)
		if err != nil {
			return Entry{}, err
		}
		e.Operand = fmt.Sprintf("#$%0*x", w.Bits()/4, v)
		return e, nil

	case instructions.DirectPageX:
		v, err := d.fetch()
		e.Operand = fmt.Sprintf("$%02x,X", v)
		return e, err

	case instructions.Absolute:
		v, err := d.fetch16()
		e.Operand = fmt.Sprintf("$%04x", v)
		return e, err

	case instructions.AbsoluteX:
		v, err := d.fetch16()
		e.Operand = fmt.Sprintf("$%04x,X", v)
		return e, err

	default:
		v, err := d.fetch()
		e.Operand = fmt.Sprintf("$%02x", v)
		return e, err
	}
}

func (d *decoder) extALU(op instructions.ALUOperation) (Entry, error) {
	modeB, err := d.fetch()
	if err != nil {
		return Entry{}, err
	}

	mode, ok := instructions.ParseALUMode(modeB)
	if !ok {
		return Entry{Operator: "???", Operand: fmt.Sprintf("mode $%02x", modeB)}, nil
	}

	e := Entry{Operator: aluMnemonics[op] + sizeSuffix(mode.Size)}

	dest := "A"
	if mode.WindowTarget {
		slot, err := d.fetch()
		if err != nil {
			return Entry{}, err
		}
		dest = fmt.Sprintf("W$%02x", slot)
	}

	src, err := d.aluSource(mode)
	if err != nil {
		return Entry{}, err
	}

	e.Operand = dest + "," + src
	return e, nil
}

func (d *decoder) aluSource(mode instructions.ALUMode) (string, error) {
	switch mode.Source {
	case instructions.ALUSrcDpIndexedIndirect:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x,X)", v), err
	case instructions.ALUSrcDp:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x", v), err
	case instructions.ALUSrcImmediate:
		w := registers.Width(mode.Size)
		v, err := d.fetchWidth(w)
		return fmt.Sprintf("#$%0*x", w.Bits()/4, v), err
	case instructions.ALUSrcA:
		return "A", nil
	case instructions.ALUSrcDpIndirectY:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x),Y", v), err
	case instructions.ALUSrcDpX:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x,X", v), err
	case instructions.ALUSrcDpY:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x,Y", v), err
	case instructions.ALUSrcAbs:
		v, err := d.fetch16()
		return fmt.Sprintf("$%04x", v), err
	case instructions.ALUSrcAbsX:
		v, err := d.fetch16()
		return fmt.Sprintf("$%04x,X", v), err
	case instructions.ALUSrcAbsY:
		v, err := d.fetch16()
		return fmt.Sprintf("$%04x,Y", v), err
	case instructions.ALUSrcDpIndirect:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x)", v), err
	case instructions.ALUSrcDpIndirectLong:
		v, err := d.fetch()
		return fmt.Sprintf("[$%02x]", v), err
	case instructions.ALUSrcDpIndirectLongY:
		v, err := d.fetch()
		return fmt.Sprintf("[$%02x],Y", v), err
	case instructions.ALUSrcStackRelative:
		v, err := d.fetch()
		return fmt.Sprintf("$%02x,S", v), err
	case instructions.ALUSrcStackRelIndirectY:
		v, err := d.fetch()
		return fmt.Sprintf("($%02x,S),Y", v), err
	case instructions.ALUSrcX:
		return "X", nil
	case instructions.ALUSrcY:
		return "Y", nil
	case instructions.ALUSrcT:
		return "T", nil
	case instructions.ALUSrcAbs32:
		v, err := d.fetch32()
		return fmt.Sprintf("$%08x", v), err
	case instructions.ALUSrcAbs32X:
		v, err := d.fetch32()
		return fmt.Sprintf("$%08x,X", v), err
	case instructions.ALUSrcAbs32Y:
		v, err := d.fetch32()
		return fmt.Sprintf("$%08x,Y", v), err
	case instructions.ALUSrcAbs32Indirect:
		v, err := d.fetch32()
		return fmt.Sprintf("($%08x)", v), err
	case instructions.ALUSrcAbs32IndexedInd:
		v, err := d.fetch32()
		return fmt.Sprintf("($%08x,X)", v), err
	case instructions.ALUSrcAbs32IndirectY:
		v, err := d.fetch32()
		return fmt.Sprintf("($%08x),Y", v), err
	}
	return "", nil
}

// extOpCount decodes the five byte shift and extend groups. The count
// field only means something to the shift group.
func (d *decoder) extOpCount(mnemonics []string, last int, showCount bool) (Entry, error) {
	opc, err := d.fetch()
	if err != nil {
		return Entry{}, err
	}
	op, count := instructions.ParseOpCount(opc)

	dest, err := d.fetch()
	if err != nil {
		return Entry{}, err
	}
	src, err := d.fetch()
	if err != nil {
		return Entry{}, err
	}

	if op > last {
		return Entry{Operator: "???", Operand: fmt.Sprintf("op $%02x", opc)}, nil
	}

	e := Entry{Operator: mnemonics[op]}
	switch {
	case !showCount:
		e.Operand = fmt.Sprintf("$%02x,$%02x", dest, src)
	case count == instructions.ShiftByA:
		e.Operand = fmt.Sprintf("$%02x,$%02x,A", dest, src)
	default:
		e.Operand = fmt.Sprintf("$%02x,$%02x,#%d", dest, src, count)
	}
	return e, nil
}
