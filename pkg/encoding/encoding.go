// Copyright (C) 2024  Hossein Khosravi

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package encoding

// Widens a two's-complement field of the given bit count to 16 bits,
// preserving its sign
func SignExtend(value uint16, bitcount uint16) uint16 {
	if (value>>(bitcount-1))&0x1 == 1 {
		value |= (0xFFFF << bitcount)
	}

	return value
}

// Masks a value down to the given bit count, leaving the upper bits zero
func ZeroExtend(value uint16, bitcount uint16) uint16 {
	return value & ((1 << bitcount) - 1)
}

func SwapEndian(value uint16) uint16 {
	return (value >> 8) | (value << 8)
}
