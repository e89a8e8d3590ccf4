/*
 * rv32emu - Hart configuration file parser
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

// Package hartconfig parses the line-oriented debugger directive file a
// driver may pass to "run --config": breakpoints, trace categories, a
// memory-dirty-logging toggle, and a log file path. Each line is scanned
// with a small cursor, the same token-at-a-time idiom the rest of this
// codebase's option parser uses, regeneralized from device lines to hart
// directives.
//
// Configuration file format:
//
//	'#' starts a comment, rest of line ignored.
//	memlog
//	breakpoint <hex-address>
//	trace <category>[,<category>...]
//	logfile <path>
package hartconfig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Config is the parsed result of a hart configuration file.
type Config struct {
	MemLog      bool
	Breakpoints []uint32
	Trace       []string
	LogFile     string
}

type optionLine struct {
	line string
	pos  int
}

func (o *optionLine) skipSpace() {
	for o.pos < len(o.line) && o.line[o.pos] == ' ' {
		o.pos++
	}
}

func (o *optionLine) token() string {
	o.skipSpace()
	start := o.pos
	for o.pos < len(o.line) && o.line[o.pos] != ' ' {
		o.pos++
	}
	return o.line[start:o.pos]
}

func (o *optionLine) rest() string {
	o.skipSpace()
	return o.line[o.pos:]
}

// Parse reads a hart configuration file from r.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		raw := scanner.Text()
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		o := &optionLine{line: raw}
		directive := strings.ToLower(o.token())
		switch directive {
		case "memlog":
			cfg.MemLog = true
		case "breakpoint":
			addrStr := o.token()
			addr, err := strconv.ParseUint(strings.TrimPrefix(addrStr, "0x"), 16, 32)
			if err != nil {
				return nil, fmt.Errorf("hartconfig: line %d: bad breakpoint address %q: %w", lineNumber, addrStr, err)
			}
			cfg.Breakpoints = append(cfg.Breakpoints, uint32(addr))
		case "trace":
			cfg.Trace = append(cfg.Trace, strings.Split(o.rest(), ",")...)
		case "logfile":
			cfg.LogFile = o.rest()
		default:
			return nil, fmt.Errorf("hartconfig: line %d: unknown directive %q", lineNumber, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the hart configuration file at path through fs.
func Load(fs afero.Fs, path string) (*Config, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
