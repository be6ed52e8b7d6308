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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/thehxdev/lc3vm/pkg/console"
	"github.com/thehxdev/lc3vm/pkg/machine"
)

var helpvar bool

const usage = "lc3vm image-file1 [image-file2] ..."

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.Parse()
}

func lc3vm() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	if len(args) < 1 {
		log.Println(usage)
		return 2
	}

	var mc machine.Machine
	mc.State.Reset()

	for _, path := range args {
		if err := mc.LoadImageFile(path); err != nil {
			log.Printf("failed to load image: %s", path)
			log.Println(err)
			return 1
		}
	}

	term := console.New(os.Stdin)

	var dh machine.DeviceHandler
	dh.Keyboard = term
	dh.Display = bufio.NewWriter(os.Stdout)
	mc.Devices = &dh

	if err := term.EnterRaw(); err != nil {
		log.Println(err)
		return 1
	}

	defer term.Restore()

	c := make(chan os.Signal, 1)
	defer close(c)

	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			term.Restore()
			fmt.Println()
			os.Exit(254)
		}
	}()

	if err := mc.Run(); err != nil {
		term.Restore()
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(lc3vm())
}
