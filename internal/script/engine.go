package script

import (
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/perr"
)

// Hook function names looked up in the user's script.
const (
	hookModeChange = "on_mode_change"
	hookSelection  = "on_selection"
)

// Engine owns one Lua state loaded from the user's hook file. LState is
// not goroutine-safe; the mutex serializes every entry into Lua.
type Engine struct {
	mu     sync.Mutex
	state  *lua.LState
	logger *zap.Logger
	path   string
	closed bool
}

// NewEngine loads and executes the hook file so its functions are
// defined. The state is sandboxed: file loading primitives and os/io
// libraries are removed, and a small `pounce` table with log() is
// provided instead.
func NewEngine(path string, logger *zap.Logger) (*Engine, error) {
	state := lua.NewState()
	e := &Engine{state: state, logger: logger, path: path}
	e.sandbox()
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, perr.Wrap(perr.CodeInvalidConfig, "load hook script", err)
	}
	logger.Info("hook script loaded", zap.String("path", path))
	return e, nil
}

func (e *Engine) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "os", "io"} {
		e.state.SetGlobal(name, lua.LNil)
	}

	pounce := e.state.NewTable()
	e.state.SetField(pounce, "log", e.state.NewFunction(func(L *lua.LState) int {
		e.logger.Info("script", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	e.state.SetGlobal("pounce", pounce)
}

// OnModeChange invokes on_mode_change(from, to) if the script defines it.
func (e *Engine) OnModeChange(from, to string) {
	e.call(hookModeChange, lua.LString(from), lua.LString(to))
}

// OnSelection invokes on_selection(label, x, y) if the script defines it.
func (e *Engine) OnSelection(label string, x, y int) {
	e.call(hookSelection, lua.LString(label), lua.LNumber(x), lua.LNumber(y))
}

func (e *Engine) call(name string, args ...lua.LValue) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	fn := e.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return
	}
	err := e.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	if err != nil {
		e.logger.Warn("hook failed",
			zap.String("hook", name),
			zap.String("script", e.path),
			zap.Error(err))
	}
}

// Close shuts the Lua state down. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}
