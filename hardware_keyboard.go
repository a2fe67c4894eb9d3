package main

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eliperez-dev/electron/common"
)

// Keyboard pumps SDL events: window close, the debug hotkey, and ordinary
// key presses, which latch their byte value for INP.
type Keyboard struct {
	lastPoll time.Time
}

const inputInterval = time.Millisecond * 20

func (k *Keyboard) Tick(c common.CPU) {
	if time.Since(k.lastPoll) < inputInterval {
		return
	}
	k.lastPoll = time.Now()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			c.Exit()
		case *sdl.KeyboardEvent:
			if t.Type != sdl.KEYDOWN {
				continue
			}
			switch t.Keysym.Sym {
			case sdl.K_F2:
				*c.Debugging() = true
			case sdl.K_ESCAPE:
				c.Exit()
			default:
				if t.Keysym.Sym >= 0 && t.Keysym.Sym < 256 {
					c.SetInput(uint8(t.Keysym.Sym))
				}
			}
		}
	}
}

func (k *Keyboard) Cleanup() {}
