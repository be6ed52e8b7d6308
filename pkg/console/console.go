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

package console

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal wraps an input file as the machine's keyboard device: raw mode
// scoped around a run, a zero-timeout key poll, and a blocking single-byte
// read.
type Terminal struct {
	in      *os.File
	restore *unix.Termios
}

func New(in *os.File) *Terminal {
	return &Terminal{in: in}
}

// EnterRaw disables line buffering and echo. It is a no-op when the input
// is not a terminal; piped input is already unbuffered and silent.
func (t *Terminal) EnterRaw() error {
	if !term.IsTerminal(int(t.in.Fd())) {
		return nil
	}

	var state unix.Termios

	if err := termios.Tcgetattr(t.in.Fd(), &state); err != nil {
		return err
	}

	saved := state

	state.Lflag &^= unix.ICANON | unix.ECHO

	if err := termios.Tcsetattr(
		t.in.Fd(), termios.TCSANOW, &state,
	); err != nil {
		return err
	}

	t.restore = &saved

	return nil
}

// Restore puts the terminal back to the settings EnterRaw saved. Safe to
// call repeatedly and without a prior EnterRaw.
func (t *Terminal) Restore() error {
	if t.restore == nil {
		return nil
	}

	saved := t.restore
	t.restore = nil

	return termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, saved)
}

// Poll reports whether a byte is waiting, without consuming it or blocking
func (t *Terminal) Poll() (bool, error) {
	fd := int(t.in.Fd())

	for {
		var fds unix.FdSet

		fds.Zero()
		fds.Set(fd)

		timeout := unix.Timeval{}

		n, err := unix.Select(fd+1, &fds, nil, nil, &timeout)

		if err == unix.EINTR {
			continue
		} else if err != nil {
			return false, err
		}

		return n != 0, nil
	}
}

// ReadByte blocks until one byte of input is available
func (t *Terminal) ReadByte() (byte, error) {
	scratch := make([]byte, 1)

	for {
		n, err := t.in.Read(scratch)

		if n > 0 {
			return scratch[0], nil
		} else if err != nil {
			return 0, err
		}
	}
}
