package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lumenfield/litcollect/internal/item"
)

// Engine wraps a single gopher-lua VM holding the game rule scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir/core
// and scriptsDir/item. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "item"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource builds an engine from a single in-memory chunk.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Roll calls the Lua collect_value(roll) function, which returns the item's
// value and class name. Any script failure falls back to item.DefaultRoll.
func (e *Engine) Roll(r float64) (int, item.Class) {
	fn := e.vm.GetGlobal("collect_value")
	if fn == lua.LNil {
		e.log.Error("lua function collect_value not found")
		return item.DefaultRoll(r)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    2,
		Protect: true,
	}, lua.LNumber(r)); err != nil {
		e.log.Error("lua collect_value error", zap.Error(err))
		return item.DefaultRoll(r)
	}

	rawValue := e.vm.Get(-2)
	rawClass := e.vm.Get(-1)
	e.vm.Pop(2)

	num, ok := rawValue.(lua.LNumber)
	if !ok || int(num) == 0 {
		e.log.Error("lua collect_value returned invalid value", zap.String("value", rawValue.String()))
		return item.DefaultRoll(r)
	}
	var class item.Class
	switch lua.LVAsString(rawClass) {
	case "positive":
		class = item.ClassPositive
	case "negative":
		class = item.ClassNegative
	default:
		e.log.Error("lua collect_value returned unknown class", zap.String("class", rawClass.String()))
		return item.DefaultRoll(r)
	}
	return int(num), class
}

var _ item.ValueRoller = (*Engine)(nil)
