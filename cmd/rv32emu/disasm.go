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
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rcornwell/rv32emu/emu/disassemble"
	"github.com/rcornwell/rv32emu/emu/elf"
	"github.com/rcornwell/rv32emu/emu/memory"
)

func disasmCmd() *cobra.Command {
	var addr uint32
	var count int
	cmd := &cobra.Command{
		Use:   "disasm <elf-image>",
		Short: "Disassemble instructions from a loaded ELF image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			var m memory.Memory
			entry, err := elf.Load(data, &m)
			if err != nil {
				return fmt.Errorf("load image: %w", err)
			}

			start := addr
			if !cmd.Flags().Changed("addr") {
				start = entry
			}

			faint := color.New(color.Faint)
			for i := 0; i < count; i++ {
				pc := start + uint32(i*4)
				word := memory.Read[uint32](&m, pc)
				text := disassemble.Format(word)
				if colorEnabled() {
					faint.Printf("0x%08X: ", pc)
					fmt.Printf("%-*s  0x%08X\n", disassemble.MaxLen, text, word)
				} else {
					fmt.Printf("0x%08X: %-*s  0x%08X\n", pc, disassemble.MaxLen, text, word)
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&addr, "addr", 0, "address to start disassembling from (default entry point)")
	cmd.Flags().IntVar(&count, "count", 32, "number of instructions to disassemble")
	return cmd
}
