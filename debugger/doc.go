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

// Package debugger implements an interactive monitor for the M65832
// machine. It drives the emulation one instruction at a time or freely
// until a breakpoint, a watch or a user interrupt stops it.
//
// The debugger talks to the user through the terminal.Terminal interface,
// never through os.Stdin and os.Stdout directly. That keeps the command
// loop testable and leaves the choice of plain or colour terminal to the
// caller.
package debugger
