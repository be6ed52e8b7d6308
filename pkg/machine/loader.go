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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadImage copies one big-endian program image into memory. The first word
// is the origin address; the remaining words land contiguously from there.
// Words past the top of the address space are left unread. Cells written by
// earlier images survive except where this image overwrites them.
func (mc *Machine) LoadImage(reader io.Reader) error {
	scratch := make([]byte, 2)

	if _, err := io.ReadFull(reader, scratch); err != nil {
		return fmt.Errorf("reading image origin: %w", err)
	}

	origin := binary.BigEndian.Uint16(scratch)

	for index := int(origin); index < len(mc.State.Memory); index++ {
		_, err := io.ReadFull(reader, scratch)

		if err == io.EOF {
			return nil
		} else if err == io.ErrUnexpectedEOF {
			return errors.New("image truncated mid-word")
		} else if err != nil {
			return err
		}

		mc.State.Memory[index] = binary.BigEndian.Uint16(scratch)
	}

	return nil
}

func (mc *Machine) LoadImageFile(path string) error {
	file, err := os.Open(path)

	if err != nil {
		return err
	}

	defer file.Close()

	return mc.LoadImage(file)
}
