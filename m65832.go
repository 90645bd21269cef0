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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benjcooley/m65832-sub002/debugger"
	"github.com/benjcooley/m65832-sub002/debugger/terminal"
	"github.com/benjcooley/m65832-sub002/debugger/terminal/colorterm"
	"github.com/benjcooley/m65832-sub002/debugger/terminal/plainterm"
	"github.com/benjcooley/m65832-sub002/disassembly"
	"github.com/benjcooley/m65832-sub002/hardware"
	"github.com/benjcooley/m65832-sub002/hardware/memory/memorymap"
	"github.com/benjcooley/m65832-sub002/logger"
	"github.com/benjcooley/m65832-sub002/modalflag"
	"github.com/benjcooley/m65832-sub002/statsview"
	"github.com/benjcooley/m65832-sub002/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "DISASM", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %s\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "DISASM":
		err = disasm(md)
	case "VERSION":
		vers, revision, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, vers, revision)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// loadProgram builds a machine and loads the named image into it. Files
// with a .hex extension load as Intel HEX, anything else as a flat binary
// at the origin address.
func loadProgram(md *modalflag.Modes, ram uint32, origin uint32) (*hardware.M65832, error) {
	if len(md.RemainingArgs()) != 1 {
		return nil, fmt.Errorf("one program file required")
	}
	filename := md.GetArg(0)

	m65 := hardware.NewM65832(ram)

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(filename)) == ".hex" {
		err = m65.Mem.LoadHex(f)
	} else {
		var data []byte
		data, err = os.ReadFile(filename)
		if err == nil {
			err = m65.Mem.LoadBinary(origin, data)
		}
	}
	if err != nil {
		return nil, err
	}

	// a flat binary has no vectors of its own unless it happens to cover
	// the vector page, so seed the reset vector with the origin
	if rv := m65.Mem.PhysRead16(uint64(memorymap.VecResetEmu)); rv == 0 {
		m65.Mem.SeedResetVector(uint16(origin))
	}

	m65.Reset()
	return m65, nil
}

// parseNumber converts a command line numeric argument. Hexadecimal with
// or without prefix.
func parseNumber(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	ram := md.AddUint("ram", hardware.DefaultRAMSize, "amount of RAM in bytes")
	origin := md.AddString("origin", "8000", "load address for flat binary images")
	log := md.AddBool("log", false, "echo debugging log to stderr")
	stats := md.AddBool("stats", false, "launch the stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr, true)
	}
	if *stats {
		statsview.Launch(os.Stdout)
	}

	org, err := parseNumber(*origin)
	if err != nil {
		return err
	}

	m65, err := loadProgram(md, uint32(*ram), org)
	if err != nil {
		return err
	}

	if err := m65.Run(nil); err != nil {
		return err
	}

	fmt.Println(m65.String())
	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	ram := md.AddUint("ram", hardware.DefaultRAMSize, "amount of RAM in bytes")
	origin := md.AddString("origin", "8000", "load address for flat binary images")
	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr, true)
	}

	org, err := parseNumber(*origin)
	if err != nil {
		return err
	}

	m65, err := loadProgram(md, uint32(*ram), org)
	if err != nil {
		return err
	}

	var term terminal.Terminal
	switch strings.ToUpper(*termType) {
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	default:
		return fmt.Errorf("unknown terminal type (%s)", *termType)
	}

	dbg, err := debugger.New(m65, term)
	if err != nil {
		return err
	}

	return dbg.Start()
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	ram := md.AddUint("ram", hardware.DefaultRAMSize, "amount of RAM in bytes")
	origin := md.AddString("origin", "8000", "load address for flat binary images")
	count := md.AddInt("n", 256, "number of instructions to disassemble")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	org, err := parseNumber(*origin)
	if err != nil {
		return err
	}

	m65, err := loadProgram(md, uint32(*ram), org)
	if err != nil {
		return err
	}

	return disassembly.Block(os.Stdout, m65.Mem, m65.CPU.PC.Address(), *count, m65.CPU.Status)
}
