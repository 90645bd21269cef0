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

// Package disassembly decodes M65832 machine code into readable listings.
//
// Decoding a variable width instruction set needs the width flags, so
// every function takes a Status value describing the mode the instruction
// would execute in. A listing made with the wrong width flags will show
// the wrong immediate sizes, the same ambiguity real tooling for the
// 65816 family has always lived with.
//
// Reads go through the Peeker interface, which the memory bus satisfies
// with its side-effect free Peek function. Decoding never disturbs the
// machine.
package disassembly
