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

// Package memory implements the M65832 memory bus. The bus owns physical
// RAM, the address translator, the interval timer, the system register
// window and any number of memory mapped device regions.
//
// Virtual accessors translate through the MMU one byte at a time, so multi
// byte accesses that straddle a page boundary translate each byte
// correctly. Physical accessors bypass translation entirely and are used
// for exception vectoring, exception frame traffic and page table walks.
//
// The bus is also the synchronisation point for the atomic operations. The
// CompareAndSwap, LoadLinked and StoreConditional functions run under the
// bus mutex so that other bus agents observe them atomically.
package memory
