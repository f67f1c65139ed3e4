package scripting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Worldsmith/internal/logger"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DefaultCallTimeout bounds a single chunk execution or function call so a
// runaway script cannot freeze the frame loop.
const DefaultCallTimeout = 250 * time.Millisecond

type LuaHost struct {
	L       *lua.LState
	timeout time.Duration
}

func NewLuaHost(timeout time.Duration) *LuaHost {
	L := lua.NewState()
	h := &LuaHost{L: L, timeout: timeout}
	L.SetGlobal("print", L.NewFunction(h.print))
	return h
}

func (h *LuaHost) SetGlobal(name string, v Value) {
	switch v.kind {
	case NumberValue:
		h.L.SetGlobal(name, lua.LNumber(v.n))
	case BoolValue:
		h.L.SetGlobal(name, lua.LBool(v.b))
	default:
		h.L.SetGlobal(name, lua.LNil)
	}
}

func (h *LuaHost) GetGlobal(name string) Value {
	switch lv := h.L.GetGlobal(name).(type) {
	case lua.LNumber:
		return Number(float64(lv))
	case lua.LBool:
		return Bool(bool(lv))
	default:
		return Value{}
	}
}

func (h *LuaHost) Execute(chunk, source string) error {
	fn, err := h.L.Load(strings.NewReader(source), chunk)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", chunk, err)
	}

	cancel := h.withDeadline()
	defer cancel()

	h.L.Push(fn)
	if err := h.L.PCall(0, 0, nil); err != nil {
		return fmt.Errorf("running %s: %w", chunk, err)
	}
	return nil
}

func (h *LuaHost) Call(function string) error {
	fn := h.L.GetGlobal(function)
	if fn.Type() != lua.LTFunction {
		return fmt.Errorf("%s: %w", function, ErrNoFunction)
	}

	cancel := h.withDeadline()
	defer cancel()

	if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		return fmt.Errorf("calling %s: %w", function, err)
	}
	return nil
}

func (h *LuaHost) Close() {
	h.L.Close()
}

func (h *LuaHost) withDeadline() func() {
	if h.timeout <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	h.L.SetContext(ctx)
	return func() {
		h.L.RemoveContext()
		cancel()
	}
}

// print sends script output to the editor log instead of stdout.
func (h *LuaHost) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	logger.Log.Info("script", zap.String("output", strings.Join(parts, "\t")))
	return 0
}
