package main

import (
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"

	"github.com/eliperez-dev/electron/common"
)

// Lua driver scripts. A script gets a small API over the machine and runs
// to completion; lua's error() aborts with exit code 2. Good for replaying
// conformance programs and poking at the pipeline without the window:
//
//	tick(20)
//	input(42)
//	assert(port(0) == 42)

// RunScript executes a Lua file against the machine.
func RunScript(c common.CPU, file string) error {
	L := lua.NewState()
	defer L.Close()

	intGetter := func(get func() int) lua.LGFunction {
		return func(L *lua.LState) int {
			L.Push(lua.LNumber(get()))
			return 1
		}
	}
	indexGetter := func(get func(int) uint8) lua.LGFunction {
		return func(L *lua.LState) int {
			L.Push(lua.LNumber(get(L.CheckInt(1))))
			return 1
		}
	}

	L.SetGlobal("tick", L.NewFunction(func(L *lua.LState) int {
		n := L.OptInt(1, 1)
		for i := 0; i < n; i++ {
			c.Tick()
		}
		return 0
	}))
	L.SetGlobal("reset", L.NewFunction(func(L *lua.LState) int {
		c.Reset()
		return 0
	}))
	L.SetGlobal("input", L.NewFunction(func(L *lua.LState) int {
		c.SetInput(uint8(L.CheckInt(1)))
		return 0
	}))
	L.SetGlobal("waiting", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(c.WaitingForInput()))
		return 1
	}))
	L.SetGlobal("flag", L.NewFunction(func(L *lua.LState) int {
		f := c.Flags()
		var v bool
		switch L.CheckString(1) {
		case "eq":
			v = f.EQ
		case "gt":
			v = f.GT
		case "lt":
			v = f.LT
		case "ov":
			v = f.OV
		default:
			L.ArgError(1, "want eq, gt, lt or ov")
		}
		L.Push(lua.LBool(v))
		return 1
	}))

	L.SetGlobal("pc", L.NewFunction(intGetter(func() int { return int(c.PC()) })))
	L.SetGlobal("sp", L.NewFunction(intGetter(func() int { return int(c.SP()) })))
	L.SetGlobal("acc", L.NewFunction(intGetter(func() int { return int(c.Accumulator()) })))
	L.SetGlobal("ticks", L.NewFunction(intGetter(func() int { return int(c.Ticks()) })))
	L.SetGlobal("reg", L.NewFunction(indexGetter(func(i int) uint8 { return c.Reg(i) })))
	L.SetGlobal("ram", L.NewFunction(indexGetter(func(i int) uint8 { return c.RAM(i) })))
	L.SetGlobal("port", L.NewFunction(indexGetter(func(i int) uint8 { return c.Port(i) })))

	if err := L.DoFile(file); err != nil {
		return errors.Wrapf(err, "script %s", file)
	}
	return nil
}
