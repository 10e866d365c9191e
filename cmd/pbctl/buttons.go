package main

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pebbleos/bootcore/hal"
	"golang.org/x/term"
)

// keyboardButtons maps raw terminal keystrokes to hal.Button presses, so
// an operator can simulate holding a physical button combo by holding
// keys down at a real keyboard. Because a terminal in raw mode delivers
// discrete keypresses rather than a continuous "held" signal, a button is
// considered held as long as its key keeps arriving at least once per
// heldWindow; IsPressed reports false once that window elapses without a
// fresh keystroke.
type keyboardButtons struct {
	mu        sync.Mutex
	lastSeen  map[hal.Button]time.Time
	heldWindow time.Duration
	restore   func()
}

var keyMap = map[rune]hal.Button{
	'b': hal.ButtonBack,
	'u': hal.ButtonUp,
	's': hal.ButtonSelect,
	'd': hal.ButtonDown,
}

// newKeyboardButtons puts stdin into raw mode and starts a background
// reader goroutine. Call Close to restore the terminal.
func newKeyboardButtons(heldWindow time.Duration) (*keyboardButtons, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("pbctl: entering raw terminal mode: %w", err)
	}

	kb := &keyboardButtons{
		lastSeen:   map[hal.Button]time.Time{},
		heldWindow: heldWindow,
		restore:    func() { _ = term.Restore(fd, oldState) },
	}
	go kb.readLoop()
	return kb, nil
}

func (k *keyboardButtons) readLoop() {
	reader := bufio.NewReader(os.Stdin)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return
		}
		if btn, ok := keyMap[r]; ok {
			k.mu.Lock()
			k.lastSeen[btn] = time.Now()
			k.mu.Unlock()
		}
		if r == 3 { // Ctrl-C
			return
		}
	}
}

func (k *keyboardButtons) IsPressed(btn hal.Button) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	seen, ok := k.lastSeen[btn]
	if !ok {
		return false
	}
	return time.Since(seen) <= k.heldWindow
}

func (k *keyboardButtons) StateBits() uint8 {
	var bits uint8
	for btn := range keyMap {
		if k.IsPressed(keyMap[btn]) {
			bits |= 1 << uint(keyMap[btn])
		}
	}
	return bits
}

// Close restores the terminal to its original mode.
func (k *keyboardButtons) Close() {
	k.restore()
}

var _ hal.Buttons = (*keyboardButtons)(nil)
