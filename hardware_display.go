package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eliperez-dev/electron/common"
)

const (
	cellPixels   = 64
	gridCells    = 8
	windowPixels = cellPixels * gridCells
)

// Display renders the port bank as an 8x8 LED matrix: port r is row r, bit
// 7 leftmost. It redraws from the framebuffer snapshot at frame rate rather
// than chasing individual port writes.
type Display struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	lastFrame  time.Time
	frameCount int
	fpsStamp   time.Time
}

func NewDisplay() *Display {
	d := new(Display)
	d.lastFrame = time.Now()
	d.fpsStamp = time.Now()

	runtime.LockOSThread() // Latch this goroutine to the same thread for SDL.
	sdl.Init(sdl.INIT_VIDEO)
	window, err := sdl.CreateWindow("Electron Emulator", sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED, windowPixels, windowPixels, sdl.WINDOW_SHOWN)
	if err != nil {
		panic(fmt.Errorf("failed to create window: %v", err))
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		panic(fmt.Errorf("failed to create renderer: %v", err))
	}

	d.window = window
	d.renderer = renderer
	return d
}

func (d *Display) Tick(c common.CPU) {
	if time.Since(d.lastFrame) < 16*time.Millisecond {
		return
	}
	d.lastFrame = time.Now()

	fb := c.Framebuffer()

	d.renderer.SetDrawColor(16, 16, 16, 255)
	d.renderer.Clear()
	d.renderer.SetDrawColor(240, 60, 60, 255)
	for row := 0; row < gridCells; row++ {
		for bit := 0; bit < gridCells; bit++ {
			if fb[row]&(1<<(7-bit)) == 0 {
				continue
			}
			d.renderer.FillRect(&sdl.Rect{
				X: int32(bit * cellPixels),
				Y: int32(row * cellPixels),
				W: cellPixels - 2,
				H: cellPixels - 2,
			})
		}
	}
	d.renderer.Present()

	d.frameCount++
	if showFPS && time.Since(d.fpsStamp) >= time.Second {
		d.window.SetTitle(fmt.Sprintf("Electron Emulator (%d fps)", d.frameCount))
		d.frameCount = 0
		d.fpsStamp = time.Now()
	}
}

func (d *Display) Cleanup() {
	if d.renderer != nil {
		d.renderer.Destroy()
	}
	if d.window != nil {
		d.window.Destroy()
	}
}
