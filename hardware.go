package main

import "github.com/eliperez-dev/electron/common"

var deviceTypes = map[string]func() common.Device{
	"display":  func() common.Device { return NewDisplay() },
	"keyboard": func() common.Device { return new(Keyboard) },
}

var deviceDescriptions = map[string]string{
	"display":  "8x8 LED matrix window, one row per output port",
	"keyboard": "Host keyboard feeding the input latch",
}
