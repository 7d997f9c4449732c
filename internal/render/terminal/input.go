package terminal

import (
	"sync"
	"time"
	"unicode/utf8"

	"chosenoffset.com/corridor/internal/render"
)

// DefaultHold is how long a key counts as held after its last press event.
// Terminals only report presses (and autorepeats), never releases.
const DefaultHold = 150 * time.Millisecond

// KeyState turns a stream of key presses into the held-key view
// render.InputManager expects. It is safe for concurrent use: one goroutine
// feeds events while the frame loop polls.
type KeyState struct {
	mu        sync.Mutex
	hold      time.Duration
	now       func() time.Time
	pressedAt map[render.Key]time.Time
	just      map[render.Key]bool
	pointerX  int
	closed    bool
}

// NewKeyState creates a key state with the given hold window.
func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{
		hold:      hold,
		now:       time.Now,
		pressedAt: make(map[render.Key]time.Time),
		just:      make(map[render.Key]bool),
	}
}

// Press records a key press event.
func (k *KeyState) Press(key render.Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressedAt[key] = k.now()
	k.just[key] = true
}

// SetPointer records the pointer's horizontal position.
func (k *KeyState) SetPointer(x int) {
	k.mu.Lock()
	k.pointerX = x
	k.mu.Unlock()
}

// RequestClose marks the session as finished.
func (k *KeyState) RequestClose() {
	k.mu.Lock()
	k.closed = true
	k.mu.Unlock()
}

// IsKeyPressed reports a press within the hold window.
func (k *KeyState) IsKeyPressed(key render.Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	at, ok := k.pressedAt[key]
	return ok && k.now().Sub(at) <= k.hold
}

// IsKeyJustPressed reports a press not yet seen by a previous call.
func (k *KeyState) IsKeyJustPressed(key render.Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.just[key] {
		delete(k.just, key)
		return true
	}
	return false
}

// CursorPosition returns the last pointer position. Y is always 0.
func (k *KeyState) CursorPosition() (x, y int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pointerX, 0
}

// CloseRequested reports whether RequestClose was called.
func (k *KeyState) CloseRequested() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.closed
}

// ParseInput feeds raw terminal bytes into k.
// Handles WASD, arrow key escape sequences, Tab, Q, a bare Escape and Ctrl-C.
func ParseInput(data []byte, k *KeyState) {
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && (data[i+1] == '[' || data[i+1] == 'O') {
			switch data[i+2] {
			case 'A':
				k.Press(render.KeyUp)
			case 'B':
				k.Press(render.KeyDown)
			case 'C':
				k.Press(render.KeyRight)
			case 'D':
				k.Press(render.KeyLeft)
			}
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			k.Press(render.KeyW)
		case 's', 'S':
			k.Press(render.KeyS)
		case 'a', 'A':
			k.Press(render.KeyA)
		case 'd', 'D':
			k.Press(render.KeyD)
		case '\t':
			k.Press(render.KeyTab)
		case 'q', 'Q', 3: // 3 is Ctrl-C
			k.RequestClose()
		case 0x1b:
			// A bare Escape arrives alone; longer sequences we don't know are skipped
			if len(data) == 1 {
				k.RequestClose()
			}
		}
		i += size
	}
}
