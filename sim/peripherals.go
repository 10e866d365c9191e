package sim

import "fmt"

// Watchdog is an in-memory stand-in recording feed/start calls, so tests
// can assert the update engine and boot policy feed it on schedule.
type Watchdog struct {
	initCalled bool
	started    bool
	feedCount  int
	resetFlag  bool
}

// NewWatchdog creates a Watchdog. resetFlag seeds CheckResetFlag, letting
// tests simulate "we got here via a watchdog reset".
func NewWatchdog(resetFlag bool) *Watchdog {
	return &Watchdog{resetFlag: resetFlag}
}

func (w *Watchdog) Init()               { w.initCalled = true }
func (w *Watchdog) Start()              { w.started = true }
func (w *Watchdog) Feed()               { w.feedCount++ }
func (w *Watchdog) CheckResetFlag() bool { return w.resetFlag }

// FeedCount returns how many times Feed has been called.
func (w *Watchdog) FeedCount() int { return w.feedCount }

// Started reports whether Start has been called.
func (w *Watchdog) Started() bool { return w.started }

// PMIC is an in-memory power-management stand-in.
type PMIC struct {
	initCalled  bool
	poweredOff  bool
}

func NewPMIC() *PMIC { return &PMIC{} }

func (p *PMIC) Init()     { p.initCalled = true }
func (p *PMIC) PowerOff() { p.poweredOff = true }

// DebugSerial is an in-memory stand-in that appends every write to a
// buffer instead of driving a UART.
type DebugSerial struct {
	lines []string
}

func NewDebugSerial() *DebugSerial { return &DebugSerial{} }

func (d *DebugSerial) Init() {}

func (d *DebugSerial) PutStr(s string) {
	d.lines = append(d.lines, s)
}

func (d *DebugSerial) PutHex(v uint32) {
	d.lines = append(d.lines, fmt.Sprintf("0x%08X", v))
}

// Lines returns everything written so far, for test assertions.
func (d *DebugSerial) Lines() []string { return d.lines }

// Delay is a no-op delay: simulated time never actually elapses, keeping
// tests fast regardless of configured hold durations.
type Delay struct{}

func NewDelay() *Delay { return &Delay{} }

func (d *Delay) Ms(uint32) {}
func (d *Delay) Us(uint32) {}

// Resetter is an in-memory stand-in recording reset requests instead of
// restarting the process.
type Resetter struct {
	SoftResets int
	HardResets int
}

func NewResetter() *Resetter { return &Resetter{} }

func (r *Resetter) SystemReset()     { r.SoftResets++ }
func (r *Resetter) SystemHardReset() { r.HardResets++ }
