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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/benjcooley/m65832-sub002/curated"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/logger"
)

// Loader is the error pattern for image loading failures. These are host
// level errors, not machine faults.
const Loader = "loader: %v"

// LoadBinary copies a flat binary image into physical RAM at the origin
// address.
func (bus *Bus) LoadBinary(origin uint32, data []byte) error {
	if uint64(origin)+uint64(len(data)) > uint64(len(bus.RAM)) {
		return curated.Errorf(Loader, "image does not fit in physical RAM")
	}
	copy(bus.RAM[origin:], data)
	logger.Logf("loader", "%d bytes at %08x", len(data), origin)
	return nil
}

// LoadHex reads an Intel HEX image into physical RAM. Record types 00
// (data), 01 (end of file), 02 (extended segment address) and 04 (extended
// linear address) are supported.
func (bus *Bus) LoadHex(r io.Reader) error {
	var base uint32
	var count int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			return curated.Errorf(Loader, "malformed hex record")
		}

		rec := make([]byte, 0, (len(line)-1)/2)
		for i := 1; i+1 < len(line); i += 2 {
			b, err := strconv.ParseUint(line[i:i+2], 16, 8)
			if err != nil {
				return curated.Errorf(Loader, err)
			}
			rec = append(rec, byte(b))
		}
		if len(rec) < 5 {
			return curated.Errorf(Loader, "short hex record")
		}

		length := int(rec[0])
		if len(rec) != length+5 {
			return curated.Errorf(Loader, "hex record length mismatch")
		}

		var sum byte
		for _, b := range rec {
			sum += b
		}
		if sum != 0 {
			return curated.Errorf(Loader, "hex record checksum failure")
		}

		addr := uint32(rec[1])<<8 | uint32(rec[2])
		data := rec[4 : 4+length]

		switch rec[3] {
		case 0x00:
			if err := bus.LoadBinary(base+addr, data); err != nil {
				return err
			}
			count += length
		case 0x01:
			logger.Logf("loader", "hex image, %d bytes", count)
			return nil
		case 0x02:
			if length != 2 {
				return curated.Errorf(Loader, "malformed segment address record")
			}
			base = (uint32(data[0])<<8 | uint32(data[1])) << 4
		case 0x04:
			if length != 2 {
				return curated.Errorf(Loader, "malformed linear address record")
			}
			base = (uint32(data[0])<<8 | uint32(data[1])) << 16
		default:
			return curated.Errorf(Loader, "unsupported hex record type")
		}
	}
	if err := scanner.Err(); err != nil {
		return curated.Errorf(Loader, err)
	}

	logger.Logf("loader", "hex image, %d bytes", count)
	return nil
}

// SeedResetVector writes the 16-bit emulation reset vector. Useful for
// images that do not provide a vector table of their own.
func (bus *Bus) SeedResetVector(pc uint16) {
	bus.PhysWrite16(uint64(memorymap.VecResetEmu), pc)
}
