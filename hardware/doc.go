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

// Package hardware assembles the M65832 system: the execution core, the
// memory bus with its MMU and system register window, and the interval
// timer. The M65832 type is the root of the machine and the only type
// most client packages need.
//
// Sub-packages implement the individual components. They can be used in
// isolation (the tests do) but the normal path is through NewM65832.
package hardware
