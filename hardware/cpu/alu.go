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
)

// adc adds val and the carry into dest, returning the result at the given
// width. decimal mode applies to the 8 and 16-bit widths only; 32-bit
// arithmetic is always binary. the overflow flag is only touched by the
// binary path.
func (mc *CPU) adc(dest uint32, val uint32, w registers.Width) uint32 {
	mask := w.Mask()
	sign := w.SignBit()

	dest &= mask
	val &= mask

	var c uint32
	if mc.Status.Carry {
		c = 1
	}

	var result uint32

	if mc.Status.Decimal && w != registers.Width32 {
		if w == registers.Width8 {
			al := (dest & 0x0f) + (val & 0x0f) + c
			if al > 9 {
				al += 6
			}
			ah := (dest >> 4) + (val >> 4)
			if al > 0x0f {
				ah++
			}
			if ah > 9 {
				ah += 6
			}
			result = (al & 0x0f) | ((ah & 0x0f) << 4)
			mc.Status.Carry = ah > 0x0f
		} else {
			// 16-bit decimal addition, digit by digit
			var carry uint32 = c
			result = 0
			for d := 0; d < 4; d++ {
				shift := uint32(d * 4)
				digit := ((dest >> shift) & 0x0f) + ((val >> shift) & 0x0f) + carry
				if digit > 9 {
					digit += 6
				}
				carry = 0
				if digit > 0x0f {
					carry = 1
				}
				result |= (digit & 0x0f) << shift
			}
			mc.Status.Carry = carry != 0
		}
	} else {
		r := uint64(dest) + uint64(val) + uint64(c)
		result = uint32(r)
		mc.Status.Carry = r > uint64(mask)
		mc.Status.Overflow = (^(dest^val)&(dest^result))&sign != 0
	}

	result &= mask
	mc.setNZ(result, w)
	return result
}

// sbc subtracts val with borrow from dest, returning the result at the
// given width. decimal subtraction is 8-bit only, the wider widths fall
// through to binary with the carry acting as an inverted borrow.
func (mc *CPU) sbc(dest uint32, val uint32, w registers.Width) uint32 {
	mask := w.Mask()
	sign := w.SignBit()

	dest &= mask
	val &= mask

	var c uint32 = 1
	if mc.Status.Carry {
		c = 0
	}

	var result uint32

	if mc.Status.Decimal && w == registers.Width8 {
		al := int32(dest&0x0f) - int32(val&0x0f) - int32(c)
		if al < 0 {
			al -= 6
		}
		ah := int32(dest>>4) - int32(val>>4)
		if al < 0 {
			ah--
		}
		if ah < 0 {
			ah -= 6
		}
		result = uint32(al&0x0f) | uint32((ah&0x0f)<<4)
		mc.Status.Carry = ah >= 0
	} else {
		result = dest - val - c
		mc.Status.Carry = uint64(dest) >= uint64(val)+uint64(c)
		if !mc.Status.Decimal || w == registers.Width32 {
			mc.Status.Overflow = ((dest^val)&(dest^result))&sign != 0
		}
	}

	result &= mask
	mc.setNZ(result, w)
	return result
}

// compare subtracts b from a at the given width, setting NZC without
// storing the result.
func (mc *CPU) compare(a uint32, b uint32, w registers.Width) {
	a &= w.Mask()
	b &= w.Mask()
	result := (a - b) & w.Mask()
	mc.Status.Carry = a >= b
	mc.setNZ(result, w)
}

// bit sets Z from the AND of the accumulator and val, and copies the top
// two bits of val into N and V.
func (mc *CPU) bit(val uint32, w registers.Width) {
	mc.Status.Zero = mc.A.Masked(w)&val&w.Mask() == 0
	mc.Status.Sign = val&w.SignBit() != 0
	mc.Status.Overflow = val&(w.SignBit()>>1) != 0
}

// single bit shifts and rotates, carrying through the carry flag and
// setting NZ from the result.

func (mc *CPU) asl(val uint32, w registers.Width) uint32 {
	mc.Status.Carry = val&w.SignBit() != 0
	val = (val << 1) & w.Mask()
	mc.setNZ(val, w)
	return val
}

func (mc *CPU) lsr(val uint32, w registers.Width) uint32 {
	mc.Status.Carry = val&1 == 1
	val = (val & w.Mask()) >> 1
	mc.setNZ(val, w)
	return val
}

func (mc *CPU) rol(val uint32, w registers.Width) uint32 {
	var c uint32
	if mc.Status.Carry {
		c = 1
	}
	mc.Status.Carry = val&w.SignBit() != 0
	val = ((val << 1) | c) & w.Mask()
	mc.setNZ(val, w)
	return val
}

func (mc *CPU) ror(val uint32, w registers.Width) uint32 {
	var c uint32
	if mc.Status.Carry {
		c = w.SignBit()
	}
	mc.Status.Carry = val&1 == 1
	val = ((val & w.Mask()) >> 1) | c
	mc.setNZ(val, w)
	return val
}

func (mc *CPU) inc(val uint32, w registers.Width) uint32 {
	val = (val + 1) & w.Mask()
	mc.setNZ(val, w)
	return val
}

func (mc *CPU) dec(val uint32, w registers.Width) uint32 {
	val = (val - 1) & w.Mask()
	mc.setNZ(val, w)
	return val
}
