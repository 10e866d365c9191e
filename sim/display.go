package sim

import (
	"fmt"

	"github.com/pebbleos/bootcore/corelog"
	"github.com/schollz/progressbar/v3"
)

// Display is a headless display stand-in recording every call it
// receives, for assertions in tests.
type Display struct {
	InitCalled    bool
	SplashShown   bool
	LastProgress  [2]uint32
	LastErrorCode uint32
	PreparedReset bool
}

func (d *Display) Init()                   { d.InitCalled = true }
func (d *Display) Splash()                  { d.SplashShown = true }
func (d *Display) Progress(num, den uint32) { d.LastProgress = [2]uint32{num, den} }
func (d *Display) ErrorCode(code uint32)    { d.LastErrorCode = code }
func (d *Display) PrepareForReset()         { d.PreparedReset = true }

// TerminalDisplay renders Progress calls as a terminal progress bar via
// github.com/schollz/progressbar/v3, standing in for the board's LCD
// during interactive use of the operator CLI (spec §6.2's display
// capability, rendered for a human instead of an LCD controller).
type TerminalDisplay struct {
	logger corelog.Logger
	bar    *progressbar.ProgressBar
}

// NewTerminalDisplay creates a TerminalDisplay that logs lifecycle events
// through logger (optional) in addition to rendering progress.
func NewTerminalDisplay(logger corelog.Logger) *TerminalDisplay {
	return &TerminalDisplay{logger: logger}
}

func (d *TerminalDisplay) Init() {
	corelog.Info(d.logger, "display: init")
}

func (d *TerminalDisplay) Splash() {
	fmt.Println("pebble bootloader")
}

func (d *TerminalDisplay) Progress(num, den uint32) {
	if d.bar == nil || int64(d.bar.GetMax64()) != int64(den) {
		d.bar = progressbar.NewOptions64(int64(den),
			progressbar.OptionSetDescription("installing"),
			progressbar.OptionShowCount(),
		)
	}
	_ = d.bar.Set64(int64(num))
}

func (d *TerminalDisplay) ErrorCode(code uint32) {
	fmt.Printf("error code: %d\n", code)
}

func (d *TerminalDisplay) PrepareForReset() {
	if d.bar != nil {
		_ = d.bar.Finish()
	}
}
