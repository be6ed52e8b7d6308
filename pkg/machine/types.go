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

package machine

import (
	"bufio"
)

// Console is the keyboard side of the terminal. Poll must not consume input
// or block; ReadByte blocks until one byte is available.
type Console interface {
	Poll() (bool, error)
	ReadByte() (byte, error)
}

type DeviceHandler struct {
	Keyboard Console
	Display  *bufio.Writer
}

type MachineState struct {
	Registers [8]uint16

	// Program counter
	Program uint16

	// Condition register, always exactly one of FLAG_POS, FLAG_ZERO, FLAG_NEG
	Cond uint16

	Halted bool

	Memory [1 << 16]uint16
}

type Machine struct {
	Devices *DeviceHandler
	State   MachineState
}
