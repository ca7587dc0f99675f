package script

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"path"
	"slices"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/adventure/world"
)

// Ext is the file extension of loadable scripts.
const Ext = ".tengo"

// Every script defines update(engine, state); the host calls it once per
// frame after the script body has run.
const dispatchScript = `
update(__engine, __state)
`

var logf = log.Printf

// View is the read-only part of the engine scripts can query.
type View interface {
	PlayerPosition() image.Point
	Tick() int
	Lives() int
	Night() bool
}

type runtime struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Host runs per-frame script hooks. Scripts never reach engine state
// directly: queries go through a View and changes are submitted as
// world.Command values.
type Host struct {
	fsys    fs.FS
	dir     string
	scripts []*runtime
	watcher *Watcher
}

func NewHost() *Host {
	return &Host{}
}

// LoadAll compiles every script in dir, in lexical order, replacing any
// previously loaded scripts. A missing directory loads nothing.
func (h *Host) LoadAll(fsys fs.FS, dir string) error {
	h.fsys = fsys
	h.dir = dir
	h.scripts = nil

	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("script: read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isScriptFile(entry.Name()) {
			continue
		}
		rt, err := h.compile(entry.Name())
		if err != nil {
			return err
		}
		h.scripts = append(h.scripts, rt)
	}
	return nil
}

// Names returns the loaded script names in execution order.
func (h *Host) Names() []string {
	out := make([]string, 0, len(h.scripts))
	for _, rt := range h.scripts {
		out = append(out, rt.name)
	}
	return out
}

func (h *Host) Len() int { return len(h.scripts) }

func (h *Host) compile(name string) (*runtime, error) {
	src, err := fs.ReadFile(h.fsys, path.Join(h.dir, name))
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", name, err)
	}

	s := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &runtime{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// ExecuteAll runs every script's update hook once, in load order. A failing
// script does not stop the others; all failures are returned joined.
func (h *Host) ExecuteAll(view View, submit func(world.Command)) error {
	var errs []error
	for _, rt := range h.scripts {
		engine := buildEngine(rt.name, view, submit)
		if err := rt.run(engine); err != nil {
			logf("script: %s: %v", rt.name, err)
			errs = append(errs, fmt.Errorf("script: run %s: %w", rt.name, err))
		}
	}
	return errors.Join(errs...)
}

func (rt *runtime) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// Watch starts reporting edits to scripts under osDir; Reload picks them up.
func (h *Host) Watch(osDir string) error {
	if h.watcher != nil {
		return nil
	}
	w, err := NewWatcher(osDir)
	if err != nil {
		return fmt.Errorf("script: watch %s: %w", osDir, err)
	}
	h.watcher = w
	return nil
}

// Reload recompiles scripts the watcher reported as changed. A script that
// fails to compile keeps its previous version; a deleted one is dropped.
// Reloaded scripts keep their state.
func (h *Host) Reload() []string {
	changed := h.watcher.Changed()
	for _, name := range changed {
		h.reloadOne(name)
	}
	return changed
}

func (h *Host) reloadOne(name string) {
	idx := slices.IndexFunc(h.scripts, func(rt *runtime) bool { return rt.name == name })

	rt, err := h.compile(name)
	if errors.Is(err, fs.ErrNotExist) {
		if idx >= 0 {
			h.scripts = slices.Delete(h.scripts, idx, idx+1)
			logf("script: %s removed", name)
		}
		return
	}
	if err != nil {
		logf("script: reload: %v", err)
		return
	}

	if idx >= 0 {
		rt.state = h.scripts[idx].state
		h.scripts[idx] = rt
	} else {
		h.scripts = append(h.scripts, rt)
		slices.SortFunc(h.scripts, func(a, b *runtime) int { return strings.Compare(a.name, b.name) })
	}
	logf("script: %s reloaded", name)
}

// Close stops the watcher, if any.
func (h *Host) Close() error {
	if h.watcher == nil {
		return nil
	}
	err := h.watcher.Close()
	h.watcher = nil
	return err
}

func buildEngine(name string, view View, submit func(world.Command)) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["player_position"] = &tengo.UserFunction{Name: "player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if view == nil {
			return &tengo.Array{Value: []tengo.Object{&tengo.Int{}, &tengo.Int{}}}, nil
		}
		p := view.PlayerPosition()
		return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(p.X)}, &tengo.Int{Value: int64(p.Y)}}}, nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if view == nil {
			return &tengo.Int{}, nil
		}
		return &tengo.Int{Value: int64(view.Tick())}, nil
	}}

	values["lives"] = &tengo.UserFunction{Name: "lives", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if view == nil {
			return &tengo.Int{}, nil
		}
		return &tengo.Int{Value: int64(view.Lives())}, nil
	}}

	values["is_night"] = &tengo.UserFunction{Name: "is_night", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if view != nil && view.Night() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["spawn_bomb"] = &tengo.UserFunction{Name: "spawn_bomb", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToInt(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToInt(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
		}
		if submit == nil {
			return tengo.FalseValue, nil
		}
		submit(world.Command{Kind: world.CommandSpawnBomb, At: image.Pt(x, y), Source: name})
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		logf("script: %s: %s", name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
