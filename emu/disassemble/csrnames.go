package disassemble

import "fmt"

// csrNames is the closed map from CSR address to symbolic name. It covers
// the user, supervisor, hypervisor, and machine CSRs named in the RISC-V
// privileged spec, including the indexed pmp/performance-counter ranges;
// an address not present here falls back to decimal in csrName.
var csrNames = map[uint32]string{
	// Floating-point status (Zicsr/F)
	0x001: "fflags",
	0x002: "frm",
	0x003: "fcsr",

	// User counters/timers
	0xC00: "cycle",
	0xC01: "time",
	0xC02: "instret",
	0xC80: "cycleh",
	0xC81: "timeh",
	0xC82: "instreth",

	// Supervisor trap setup/handling
	0x100: "sstatus",
	0x104: "sie",
	0x105: "stvec",
	0x106: "scounteren",
	0x140: "sscratch",
	0x141: "sepc",
	0x142: "scause",
	0x143: "stval",
	0x144: "sip",
	0x180: "satp",

	// Hypervisor
	0x600: "hstatus",
	0x602: "hedeleg",
	0x603: "hideleg",
	0x604: "hie",
	0x606: "hcounteren",
	0x607: "hgeie",
	0x643: "htval",
	0x644: "hip",
	0x645: "hvip",
	0x64A: "htinst",
	0xE12: "hgeip",
	0x680: "hgatp",
	0x605: "htimedelta",
	0x615: "htimedeltah",

	// Virtual supervisor
	0x200: "vsstatus",
	0x204: "vsie",
	0x205: "vstvec",
	0x240: "vsscratch",
	0x241: "vsepc",
	0x242: "vscause",
	0x243: "vstval",
	0x244: "vsip",
	0x280: "vsatp",

	// Machine information
	0xF11: "mvendorid",
	0xF12: "marchid",
	0xF13: "mimpid",
	0xF14: "mhartid",
	0xF15: "mconfigptr",

	// Machine trap setup
	0x300: "mstatus",
	0x301: "misa",
	0x302: "medeleg",
	0x303: "mideleg",
	0x304: "mie",
	0x305: "mtvec",
	0x306: "mcounteren",
	0x310: "mstatush",

	// Machine trap handling
	0x340: "mscratch",
	0x341: "mepc",
	0x342: "mcause",
	0x343: "mtval",
	0x344: "mip",
	0x34A: "mtinst",
	0x34B: "mtval2",

	// Machine configuration
	0x30A: "menvcfg",
	0x31A: "menvcfgh",
	0x747: "mseccfg",
	0x757: "mseccfgh",

	// Machine counters/timers
	0xB00: "mcycle",
	0xB02: "minstret",
	0xB80: "mcycleh",
	0xB82: "minstreth",
	0x320: "mcountinhibit",

	// Debug / trace
	0x7A0: "tselect",
	0x7A1: "tdata1",
	0x7A2: "tdata2",
	0x7A3: "tdata3",
	0x7A8: "mcontext",
	0x7B0: "dcsr",
	0x7B1: "dpc",
	0x7B2: "dscratch0",
	0x7B3: "dscratch1",
}

func init() {
	for i := 0; i < 64; i++ {
		csrNames[uint32(0x3B0+i)] = fmt.Sprintf("pmpaddr%d", i)
	}
	for i := 0; i < 16; i++ {
		csrNames[uint32(0x3A0+i)] = fmt.Sprintf("pmpcfg%d", i)
	}
	for i := 3; i <= 31; i++ {
		csrNames[uint32(0xC00+i)] = fmt.Sprintf("hpmcounter%d", i)
		csrNames[uint32(0xC80+i)] = fmt.Sprintf("hpmcounter%dh", i)
		csrNames[uint32(0xB00+i)] = fmt.Sprintf("mhpmcounter%d", i)
		csrNames[uint32(0xB80+i)] = fmt.Sprintf("mhpmcounter%dh", i)
		csrNames[uint32(0x320+i)] = fmt.Sprintf("mhpmevent%d", i)
	}
}
