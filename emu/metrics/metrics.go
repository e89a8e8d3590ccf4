/*
 * rv32emu - Metrics bridge
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

// Package metrics exposes a running hart's step count and halt reason as
// Prometheus counters, the generalization of the teacher's telnet
// network face: a thin external view onto internal engine state, just
// scraped over HTTP instead of attached to over a socket.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rcornwell/rv32emu/emu/cpu"
)

// Registry holds the counters for one hart.
type Registry struct {
	reg           *prometheus.Registry
	steps         prometheus.Counter
	illegalOps    prometheus.Counter
	haltsECall    prometheus.Counter
	haltsEBreak   prometheus.Counter
	haltsIllegal  prometheus.Counter
}

// New creates a fresh, independently registered metrics set.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rv32emu_steps_total",
			Help: "Total instructions executed.",
		}),
		illegalOps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rv32emu_illegal_opcodes_total",
			Help: "Total illegal opcodes encountered.",
		}),
		haltsECall: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rv32emu_halts_ecall_total",
			Help: "Total halts caused by ECALL.",
		}),
		haltsEBreak: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rv32emu_halts_ebreak_total",
			Help: "Total halts caused by EBREAK.",
		}),
		haltsIllegal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rv32emu_halts_illegal_total",
			Help: "Total halts caused by an illegal opcode.",
		}),
	}
	reg.MustRegister(r.steps, r.illegalOps, r.haltsECall, r.haltsEBreak, r.haltsIllegal)
	return r
}

// StepExecuted records one Step() call and its resulting halt reason.
func (r *Registry) StepExecuted(reason cpu.HaltReason) {
	r.steps.Inc()
	switch reason {
	case cpu.HaltECall:
		r.haltsECall.Inc()
	case cpu.HaltEBreak:
		r.haltsEBreak.Inc()
	case cpu.HaltIllegal:
		r.illegalOps.Inc()
		r.haltsIllegal.Inc()
	}
}

// Reset is a no-op: counters are cumulative across a process's lifetime
// the way Prometheus counters are meant to be read, even across hart
// resets.
func (r *Registry) Reset() {}

// Handler returns the HTTP handler that serves this registry's metrics in
// the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
