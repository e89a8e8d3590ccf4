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
	"github.com/spf13/afero"

	"github.com/rcornwell/rv32emu/config/hartconfig"
	"github.com/rcornwell/rv32emu/emu/host"
)

func runCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <elf-image>",
		Short: "Load an ELF image and run it to a halt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHart()
			if err := loadImage(h, args[0]); err != nil {
				return err
			}

			var breakpoints map[uint32]bool
			if hartConfig != "" {
				cfg, err := hartconfig.Load(afero.NewOsFs(), hartConfig)
				if err != nil {
					return fmt.Errorf("hart config: %w", err)
				}
				breakpoints = make(map[uint32]bool, len(cfg.Breakpoints))
				for _, bp := range cfg.Breakpoints {
					breakpoints[bp] = true
				}
			}

			steps := 0
			limit := maxSteps()
			for steps < limit {
				if breakpoints[h.PC()] && steps > 0 {
					fmt.Printf("breakpoint hit at 0x%08X\n", h.PC())
					break
				}
				if !h.Step() {
					break
				}
				steps++
			}

			printHaltSummary(h, steps)
			if watch {
				waitForSignal()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep the metrics server alive after the hart halts, until interrupted")
	return cmd
}

func loadImage(h *host.Hart, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if r := h.LoadELF(data); r != host.LoadOK {
		return fmt.Errorf("load image: %s", loadResultText(r))
	}
	return nil
}

func loadResultText(r host.LoadResult) string {
	switch r {
	case host.LoadWrongMagic:
		return "not an ELF file"
	case host.LoadWrongClass:
		return "not a 32-bit ELF file"
	case host.LoadWrongData:
		return "not little-endian"
	case host.LoadWrongType:
		return "not an executable (ET_EXEC)"
	case host.LoadWrongMachine:
		return "not a RISC-V image"
	case host.LoadWrongVersion:
		return "unsupported ELF version"
	case host.LoadNoEntry:
		return "zero entry point"
	default:
		return "malformed image"
	}
}

func printHaltSummary(h *host.Hart, steps int) {
	bold := color.New(color.Bold)
	if colorEnabled() {
		bold.Printf("halted: %s\n", h.HaltReason())
	} else {
		fmt.Printf("halted: %s\n", h.HaltReason())
	}
	fmt.Printf("steps executed: %d\n", steps)
	fmt.Printf("pc: 0x%08X\n", h.PC())
	fmt.Printf("x10 (a0): 0x%08X\n", h.IntRegister(10))
}
