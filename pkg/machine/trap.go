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
	"fmt"
)

// trap runs one of the six service routines in the host. The string traps
// index memory directly rather than through read so a string spilling into
// the device page cannot trigger a keyboard poll.
func (mc *Machine) trap(vector uint16) error {
	switch vector {
	case TRAP_GETC:
		key, err := mc.Devices.Keyboard.ReadByte()
		if err != nil {
			return fmt.Errorf("trap GETC: %w", err)
		}

		mc.State.Registers[0] = uint16(key)
		mc.setFlags(mc.State.Registers[0])

	case TRAP_OUT:
		if err := mc.Devices.Display.WriteByte(
			byte(mc.State.Registers[0] & 0xFF),
		); err != nil {
			return fmt.Errorf("trap OUT: %w", err)
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			return fmt.Errorf("trap OUT: %w", err)
		}

	case TRAP_PUTS:
		for addr := mc.State.Registers[0]; ; addr++ {
			cell := mc.State.Memory[addr]

			if cell == 0 {
				break
			}

			if err := mc.Devices.Display.WriteByte(byte(cell)); err != nil {
				return fmt.Errorf("trap PUTS: %w", err)
			}
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			return fmt.Errorf("trap PUTS: %w", err)
		}

	case TRAP_IN:
		if _, err := mc.Devices.Display.WriteString(
			"Enter a character: ",
		); err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		key, err := mc.Devices.Keyboard.ReadByte()
		if err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		if err := mc.Devices.Display.WriteByte(key); err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			return fmt.Errorf("trap IN: %w", err)
		}

		mc.State.Registers[0] = uint16(key)
		mc.setFlags(mc.State.Registers[0])

	case TRAP_PUTSP:
		// Two characters per cell, low byte first; a zero high byte is
		// skipped, not written
		for addr := mc.State.Registers[0]; ; addr++ {
			cell := mc.State.Memory[addr]

			if cell == 0 {
				break
			}

			if err := mc.Devices.Display.WriteByte(byte(cell)); err != nil {
				return fmt.Errorf("trap PUTSP: %w", err)
			}

			if cell>>8 != 0 {
				if err := mc.Devices.Display.WriteByte(
					byte(cell >> 8),
				); err != nil {
					return fmt.Errorf("trap PUTSP: %w", err)
				}
			}
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			return fmt.Errorf("trap PUTSP: %w", err)
		}

	case TRAP_HALT:
		if _, err := mc.Devices.Display.WriteString("HALT"); err != nil {
			return fmt.Errorf("trap HALT: %w", err)
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			return fmt.Errorf("trap HALT: %w", err)
		}

		mc.State.Halted = true

	default:
		return fmt.Errorf(
			"%w: %#02x at %#04x",
			ErrBadTrap, vector, mc.State.Program-1,
		)
	}

	return nil
}
