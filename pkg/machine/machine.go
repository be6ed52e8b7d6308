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
	"errors"
	"fmt"

	"github.com/thehxdev/lc3vm/pkg/encoding"
)

var (
	// Opcode from the reserved/unused set reached the executor
	ErrIllegalInstruction = errors.New("illegal instruction")

	// TRAP with a vector outside the six defined service routines
	ErrBadTrap = errors.New("bad trap vector")
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	mc.Program = PC_START
	mc.Cond = FLAG_ZERO
	mc.Halted = false
}

// read returns the cell at addr. Reading DEV_KBSR polls the keyboard with
// zero timeout: a pending byte sets the status high bit and lands in
// DEV_KBDR, otherwise the status cell is cleared. No other address has side
// effects.
func (mc *Machine) read(addr uint16) (uint16, error) {
	if addr == DEV_KBSR {
		ready := false

		if mc.Devices != nil && mc.Devices.Keyboard != nil {
			var err error

			ready, err = mc.Devices.Keyboard.Poll()
			if err != nil {
				return 0, fmt.Errorf("keyboard poll: %w", err)
			}
		}

		if ready {
			key, err := mc.Devices.Keyboard.ReadByte()
			if err != nil {
				return 0, fmt.Errorf("keyboard read: %w", err)
			}

			mc.State.Memory[DEV_KBSR] = 1 << 15
			mc.State.Memory[DEV_KBDR] = uint16(key)
		} else {
			mc.State.Memory[DEV_KBSR] = 0
		}
	}

	return mc.State.Memory[addr], nil
}

// write stores value at addr unconditionally. Writes never touch a device.
func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value
}

func (mc *Machine) setFlags(value uint16) {
	if value == 0 {
		mc.State.Cond = FLAG_ZERO
	} else if value>>15 == 1 {
		mc.State.Cond = FLAG_NEG
	} else {
		mc.State.Cond = FLAG_POS
	}
}

// Run steps the machine until a HALT trap or a fault. A fault leaves the
// machine Halted and is returned to the caller.
func (mc *Machine) Run() error {
	for !mc.State.Halted {
		if err := mc.Step(); err != nil {
			mc.State.Halted = true
			return err
		}
	}

	return nil
}

// Step fetches, decodes and executes one instruction
func (mc *Machine) Step() error {
	instruction, err := mc.read(mc.State.Program)
	if err != nil {
		return err
	}

	opcode := instruction >> 12

	mc.State.Program++

	switch opcode {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		dest := (instruction >> 9) & 0x7
		src1 := (instruction >> 6) & 0x7

		if (instruction>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instruction&0x1F, 5)

			mc.State.Registers[dest] = mc.State.Registers[src1] + imm5
		} else {
			src2 := (instruction & 0x7)

			mc.State.Registers[dest] = mc.State.Registers[src1] +
				mc.State.Registers[src2]
		}

		mc.setFlags(mc.State.Registers[dest])

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		dest := (instruction >> 9) & 0x7
		src1 := (instruction >> 6) & 0x7

		if (instruction>>5)&0x1 == 1 {
			imm5 := encoding.SignExtend(instruction&0x1F, 5)

			mc.State.Registers[dest] = mc.State.Registers[src1] & imm5
		} else {
			src2 := (instruction & 0x7)

			mc.State.Registers[dest] = mc.State.Registers[src1] &
				mc.State.Registers[src2]
		}

		mc.setFlags(mc.State.Registers[dest])

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		flags := (instruction >> 9) & 0x7

		if flags&mc.State.Cond != 0 {
			mc.State.Program += encoding.SignExtend(instruction&0x1FF, 9)
		}

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		src := (instruction >> 6) & 0x7

		mc.State.Program = mc.State.Registers[src]

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		mc.State.Registers[7] = mc.State.Program

		if (instruction>>11)&0x1 == 1 {
			mc.State.Program += encoding.SignExtend(instruction&0x7FF, 11)
		} else {
			src := (instruction >> 6) & 0x7

			mc.State.Program = mc.State.Registers[src]
		}

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		if mc.State.Registers[dest], err = mc.read(addr); err != nil {
			return err
		}

		mc.setFlags(mc.State.Registers[dest])

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		indirect, err := mc.read(addr)
		if err != nil {
			return err
		}

		if mc.State.Registers[dest], err = mc.read(indirect); err != nil {
			return err
		}

		mc.setFlags(mc.State.Registers[dest])

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR:
		dest := (instruction >> 9) & 0x7
		src := (instruction >> 6) & 0x7
		addr := mc.State.Registers[src] +
			encoding.SignExtend(instruction&0x3F, 6)

		if mc.State.Registers[dest], err = mc.read(addr); err != nil {
			return err
		}

		mc.setFlags(mc.State.Registers[dest])

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LEA:
		dest := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.State.Registers[dest] = addr

		mc.setFlags(mc.State.Registers[dest])

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		dest := (instruction >> 9) & 0x7
		src := (instruction >> 6) & 0x7

		mc.State.Registers[dest] = ^mc.State.Registers[src]

		mc.setFlags(mc.State.Registers[dest])

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ST:
		src := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		mc.write(addr, mc.State.Registers[src])

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STI:
		src := (instruction >> 9) & 0x7
		addr := mc.State.Program + encoding.SignExtend(instruction&0x1FF, 9)

		indirect, err := mc.read(addr)
		if err != nil {
			return err
		}

		mc.write(indirect, mc.State.Registers[src])

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STR:
		src := (instruction >> 9) & 0x7
		dest := (instruction >> 6) & 0x7
		addr := mc.State.Registers[dest] +
			encoding.SignExtend(instruction&0x3F, 6)

		mc.write(addr, mc.State.Registers[src])

	// TRAP |1111    |0000   |trapvect8       | System service call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		mc.State.Registers[7] = mc.State.Program

		if err := mc.trap(encoding.ZeroExtend(instruction, 8)); err != nil {
			return err
		}

	// RTI  |1000    |000000000000            | Unused    (illegal)
	// RES  |1101    |                        | Reserved  (illegal)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_RTI, OP_RES:
		return fmt.Errorf(
			"%w: opcode %#x at %#04x",
			ErrIllegalInstruction, opcode, mc.State.Program-1,
		)

	default:
		// All 16 opcode values are covered above
		panic("unreachable")
	}

	return nil
}
