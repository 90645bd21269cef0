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

package terminal

// Style is used to hint at what the output is and how it might be
// displayed. Implementations are free to ignore it.
type Style int

// List of terminal styles.
const (
	// input from the user being echoed back
	StyleEcho Style = iota

	// a disassembled instruction, printed when the machine stops
	StyleInstructionStep

	// machine state reports: registers, memory, timer
	StyleMachineInfo

	// responses to commands that aren't machine state
	StyleFeedback

	// help text
	StyleHelp

	// error messages
	StyleError
)
