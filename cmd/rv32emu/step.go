/*
 * rv32emu - Command-line driver
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcornwell/rv32emu/emu/host"
	"github.com/rcornwell/rv32emu/util/hex"
)

// stepCmd drives the hart from stdin commands, the same read-a-line,
// dispatch-on-command idiom the teacher's main.go used for its IPL
// console, regeneralized from one fixed command to a small step debugger.
func stepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step <elf-image>",
		Short: "Interactively single-step a loaded image from stdin commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHart()
			if err := loadImage(h, args[0]); err != nil {
				return err
			}
			return stepLoop(cmd, h)
		},
	}
	return cmd
}

func stepLoop(cmd *cobra.Command, h *host.Hart) error {
	fmt.Println("rv32emu step debugger: s=step, r=registers, m <addr> [count]=memory, c=continue, q=quit")
	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		fields := strings.Fields(line)
		cmdWord := ""
		if len(fields) > 0 {
			cmdWord = fields[0]
		}
		switch cmdWord {
		case "s", "":
			if !h.Step() {
				fmt.Printf("halted: %s\n", h.HaltReason())
				return nil
			}
			printRegisters(h)
		case "r":
			printRegisters(h)
		case "m":
			if err := printMemory(h, fields[1:]); err != nil {
				fmt.Println(err)
			}
		case "c":
			for h.Step() {
			}
			fmt.Printf("halted: %s\n", h.HaltReason())
			return nil
		case "q":
			return nil
		default:
			fmt.Println("unknown command")
		}
	}
}

// printMemory implements the "m <addr> [count]" dump command: fields[0]
// is a hex address, the optional fields[1] is a byte count (16 if
// omitted).
func printMemory(h *host.Hart, fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("usage: m <hex-addr> [count]")
	}
	addr64, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("bad address %q: %w", fields[0], err)
	}
	count := 16
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad count %q: %w", fields[1], err)
		}
		count = n
	}
	addr := uint32(addr64)
	data := make([]byte, count)
	for i := range data {
		data[i] = h.MemoryByte(addr + uint32(i))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "0x%08X: ", addr)
	hex.FormatBytes(&b, true, data)
	fmt.Println(b.String())
	return nil
}

func printRegisters(h *host.Hart) {
	highlight := color.New(color.FgYellow)
	fmt.Printf("pc: 0x%08X\n", h.PC())
	for i := uint32(0); i < 32; i++ {
		val := h.IntRegister(i)
		if h.IntDirty(i) && colorEnabled() {
			highlight.Printf("x%-2d=0x%08X ", i, val)
		} else {
			fmt.Printf("x%-2d=0x%08X ", i, val)
		}
		if i%4 == 3 {
			fmt.Println()
		}
	}
	h.ClearDirtyFlags()
}
