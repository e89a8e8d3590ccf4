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

// Package main is the rv32emu command-line driver: run, step, and disasm
// subcommands over the emu/host bridge. Subcommand structure replaces the
// teacher's single getopt-parsed main.go since this driver has more than
// one mode of operation; logging and signal handling keep the teacher's
// shape.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcornwell/rv32emu/emu/host"
	"github.com/rcornwell/rv32emu/emu/metrics"
	"github.com/rcornwell/rv32emu/util/logger"
)

var (
	settingsFile string
	hartConfig   string
	logFile      string
	metricsAddr  string
	noColor      bool

	// Logger is the process-wide structured logger, set up in
	// persistentPreRun the way the teacher's main.go sets up its own
	// slog.Default before anything else runs.
	Logger *slog.Logger
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rv32emu",
		Short:         "A RISC-V RV32IMF instruction-accurate functional emulator",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}
	cmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "TOML settings file (default: rv32emu.toml in the current directory, if present; no other location is searched)")
	cmd.PersistentFlags().StringVar(&hartConfig, "config", "", "hart configuration file (breakpoints, trace categories)")
	cmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (default stderr only)")
	cmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9370 (disabled if empty)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized output")

	cmd.AddCommand(runCmd(), disasmCmd(), stepCmd())
	return cmd
}

// settings is the struct-decoded form of the TOML settings file. viper
// layers environment-variable overrides (RV32EMU_*) on top of whatever this
// struct loads; no command-line flag is bound to these settings.
type settings struct {
	Debug    bool   `toml:"debug"`
	MaxSteps int    `toml:"max_steps"`
	LogLevel string `toml:"log_level"`
}

// setup decodes the settings file (if any) and wires up the logger; the
// metrics HTTP server is started later, by newHart. It is the regeneralized
// equivalent of the teacher main.go's slog bootstrap, minus the telnet
// multiplexer this engine has no analogue for.
func setup() error {
	s := settings{MaxSteps: 100_000_000, LogLevel: "info"}
	path := settingsFile
	if path == "" {
		path = "rv32emu.toml"
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	} else if settingsFile != "" {
		return fmt.Errorf("settings: %w", err)
	}

	viper.SetDefault("debug", s.Debug)
	viper.SetDefault("max_steps", s.MaxSteps)
	viper.SetDefault("log_level", s.LogLevel)
	viper.SetEnvPrefix("rv32emu")
	viper.AutomaticEnv()

	var file *os.File
	var err error
	if logFile != "" {
		file, err = os.Create(logFile)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
	}
	debug := viper.GetBool("debug")
	programLevel := new(slog.LevelVar)
	if err := programLevel.UnmarshalText([]byte(viper.GetString("log_level"))); err != nil {
		programLevel.Set(slog.LevelInfo)
	}
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, &debug))
	slog.SetDefault(Logger)

	return nil
}

// maxSteps returns the configured run-to-halt step ceiling.
func maxSteps() int {
	return viper.GetInt("max_steps")
}

// colorEnabled reports whether stdout output should be colorized: the
// user can force it off with --no-color, otherwise it follows whether
// stdout is a real terminal.
func colorEnabled() bool {
	if noColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// newHart builds a host.Hart, wiring in a metrics registry and starting an
// HTTP listener for it when --metrics-addr is set.
func newHart() *host.Hart {
	reg := metrics.New()
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				Logger.Error("metrics server stopped", "error", err)
			}
		}()
		Logger.Info("metrics listening", "addr", metricsAddr)
	}
	return host.New(reg)
}

// waitForSignal blocks until SIGINT or SIGTERM, for long-running modes.
func waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

