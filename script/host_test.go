package script

import (
	"image"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/milk9111/adventure/world"
)

type fakeView struct {
	pos   image.Point
	tick  int
	lives int
	night bool
}

func (v fakeView) PlayerPosition() image.Point { return v.pos }
func (v fakeView) Tick() int                   { return v.tick }
func (v fakeView) Lives() int                  { return v.lives }
func (v fakeView) Night() bool                 { return v.night }

const bombEveryOtherTick = `
update := func(engine, state) {
	if engine.tick() % 2 == 0 {
		pos := engine.player_position()
		engine.spawn_bomb(pos[0] + 10, pos[1])
	}
}
`

const counter = `
update := func(engine, state) {
	if is_undefined(state.count) {
		state.count = 0
	}
	state.count += 1
	if state.count == 3 {
		engine.spawn_bomb(state.count, engine.lives())
	}
}
`

func TestLoadAllOrderAndFilter(t *testing.T) {
	fsys := fstest.MapFS{
		"scripts/b.tengo":     {Data: []byte(counter)},
		"scripts/a.tengo":     {Data: []byte(bombEveryOtherTick)},
		"scripts/readme.md":   {Data: []byte("not a script")},
		"scripts/nested/c.go": {Data: []byte("package c")},
	}
	h := NewHost()
	if err := h.LoadAll(fsys, "scripts"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := h.Names(); !slices.Equal(got, []string{"a.tengo", "b.tengo"}) {
		t.Fatalf("unexpected scripts %v", got)
	}
}

func TestLoadAllMissingDir(t *testing.T) {
	h := NewHost()
	if err := h.LoadAll(fstest.MapFS{}, "scripts"); err != nil {
		t.Fatalf("expected missing dir to load nothing, got %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("expected no scripts")
	}
	if err := h.ExecuteAll(fakeView{}, nil); err != nil {
		t.Fatalf("execute with no scripts: %v", err)
	}
}

func TestLoadAllRequiresUpdate(t *testing.T) {
	fsys := fstest.MapFS{"scripts/bad.tengo": {Data: []byte(`x := 1`)}}
	err := NewHost().LoadAll(fsys, "scripts")
	if err == nil || !strings.Contains(err.Error(), "bad.tengo") {
		t.Fatalf("expected compile error naming the script, got %v", err)
	}
}

func TestExecuteAllSubmitsCommands(t *testing.T) {
	fsys := fstest.MapFS{
		"scripts/a.tengo": {Data: []byte(bombEveryOtherTick)},
		"scripts/b.tengo": {Data: []byte(counter)},
	}
	h := NewHost()
	if err := h.LoadAll(fsys, "scripts"); err != nil {
		t.Fatalf("load: %v", err)
	}

	var q world.CommandQueue
	for tick := range 4 {
		view := fakeView{pos: image.Pt(100, 50), tick: tick, lives: 3}
		if err := h.ExecuteAll(view, q.Push); err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
	}

	got := q.Drain()
	want := []world.Command{
		{Kind: world.CommandSpawnBomb, At: image.Pt(110, 50), Source: "a.tengo"},
		{Kind: world.CommandSpawnBomb, At: image.Pt(110, 50), Source: "a.tengo"},
		{Kind: world.CommandSpawnBomb, At: image.Pt(3, 3), Source: "b.tengo"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestExecuteAllContinuesAfterFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"scripts/a.tengo": {Data: []byte(`update := func(engine, state) { engine.spawn_bomb("x", 1) }`)},
		"scripts/b.tengo": {Data: []byte(`update := func(engine, state) { engine.spawn_bomb(1, 2) }`)},
	}
	h := NewHost()
	if err := h.LoadAll(fsys, "scripts"); err != nil {
		t.Fatalf("load: %v", err)
	}
	var q world.CommandQueue
	err := h.ExecuteAll(fakeView{}, q.Push)
	if err == nil || !strings.Contains(err.Error(), "a.tengo") {
		t.Fatalf("expected failure from a.tengo, got %v", err)
	}
	if got := q.Drain(); len(got) != 1 || got[0].At != image.Pt(1, 2) {
		t.Fatalf("expected b.tengo to still run, got %+v", got)
	}
}

func TestReloadOne(t *testing.T) {
	fsys := fstest.MapFS{"scripts/b.tengo": {Data: []byte(counter)}}
	h := NewHost()
	if err := h.LoadAll(fsys, "scripts"); err != nil {
		t.Fatalf("load: %v", err)
	}
	var q world.CommandQueue
	_ = h.ExecuteAll(fakeView{lives: 3}, q.Push)
	_ = h.ExecuteAll(fakeView{lives: 3}, q.Push)

	// new script sorts ahead, changed script keeps its counter
	fsys["scripts/a.tengo"] = &fstest.MapFile{Data: []byte(`update := func(engine, state) {}`)}
	h.reloadOne("a.tengo")
	h.reloadOne("b.tengo")
	if got := h.Names(); !slices.Equal(got, []string{"a.tengo", "b.tengo"}) {
		t.Fatalf("unexpected order after reload %v", got)
	}
	_ = h.ExecuteAll(fakeView{lives: 3}, q.Push)
	if got := q.Drain(); len(got) != 1 {
		t.Fatalf("expected state to survive reload, got %+v", got)
	}

	// broken edit keeps the old version
	fsys["scripts/a.tengo"] = &fstest.MapFile{Data: []byte(`update := func(`)}
	h.reloadOne("a.tengo")
	if h.Len() != 2 {
		t.Fatalf("broken reload dropped a script")
	}

	delete(fsys, "scripts/a.tengo")
	h.reloadOne("a.tengo")
	if got := h.Names(); !slices.Equal(got, []string{"b.tengo"}) {
		t.Fatalf("expected deleted script dropped, got %v", got)
	}
}
