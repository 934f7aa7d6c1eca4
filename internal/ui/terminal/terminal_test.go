package terminal

import (
	"strings"
	"testing"

	"snake/internal/domain"
	"snake/internal/engine"

	"github.com/gdamore/tcell/v2"
)

func TestKeyToInput(t *testing.T) {
	tests := []struct {
		name    string
		key     tcell.Key
		ch      rune
		want    engine.InputEvent
		wantHit bool
	}{
		{"arrow up", tcell.KeyUp, 0, direction(domain.DirectionUp), true},
		{"arrow left", tcell.KeyLeft, 0, direction(domain.DirectionLeft), true},
		{"wasd down", tcell.KeyRune, 's', direction(domain.DirectionDown), true},
		{"wasd right upper", tcell.KeyRune, 'D', direction(domain.DirectionRight), true},
		{"escape", tcell.KeyEscape, 0, engine.InputEvent{Type: engine.InputQuit}, true},
		{"q", tcell.KeyRune, 'q', engine.InputEvent{Type: engine.InputQuit}, true},
		{"unmapped rune", tcell.KeyRune, 'z', engine.InputEvent{}, false},
		{"unmapped key", tcell.KeyTab, 0, engine.InputEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyToInput(tt.key, tt.ch)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if got != tt.want {
				t.Errorf("event = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func snapshot() domain.Snapshot {
	return domain.Snapshot{
		GridWidth:    8,
		GridHeight:   6,
		HeadCell:     domain.Cell{X: 3, Y: 2},
		Body:         []domain.Cell{{X: 3, Y: 4}, {X: 3, Y: 3}},
		Size:         3,
		Alive:        true,
		Food:         domain.Cell{X: 1, Y: 1},
		FoodValid:    true,
		Poison:       domain.Cell{X: 6, Y: 5},
		PoisonActive: true,
		Score:        2,
	}
}

func TestClassify(t *testing.T) {
	cells := Classify(snapshot())

	want := map[domain.Cell]CellKind{
		{X: 3, Y: 2}: KindHead,
		{X: 3, Y: 3}: KindBody,
		{X: 3, Y: 4}: KindBody,
		{X: 1, Y: 1}: KindFood,
		{X: 6, Y: 5}: KindPoison,
	}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for c, k := range want {
		if cells[c] != k {
			t.Errorf("cell %v = %d, want %d", c, cells[c], k)
		}
	}
}

func TestClassifyHeadWinsOnDeath(t *testing.T) {
	s := snapshot()
	s.Alive = false
	s.Body = append(s.Body, s.HeadCell)

	if got := Classify(s)[s.HeadCell]; got != KindHead {
		t.Errorf("head cell = %d, want KindHead", got)
	}
}

func TestStatusLine(t *testing.T) {
	s := snapshot()
	line := StatusLine(s, 60)
	if !strings.HasPrefix(line, "Snake Score: 2 FPS: 60") {
		t.Errorf("status = %q", line)
	}

	s.Poisoned = true
	if !strings.Contains(StatusLine(s, 60), "POISONED") {
		t.Error("poisoned status missing")
	}

	s.Alive = false
	if !strings.Contains(StatusLine(s, 60), "DEAD") {
		t.Error("dead status missing")
	}
}

func TestRendererDrawsOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	r := NewRenderer(screen)
	r.UpdateWindowTitle(2, 30)
	r.Render(snapshot())

	tests := []struct {
		col, row int
		want     rune
	}{
		{6, 3, '@'},
		{6, 4, 'o'},
		{2, 2, '*'},
		{12, 6, '%'},
		{0, 1, '.'},
		{0, 0, 'S'},
	}
	for _, tt := range tests {
		got, _, _, _ := screen.GetContent(tt.col, tt.row)
		if got != tt.want {
			t.Errorf("content at (%d,%d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestKeySourcePoll(t *testing.T) {
	k := NewKeySource(nil)

	if _, ok := k.Poll(); ok {
		t.Fatal("empty source should not report events")
	}

	k.push(direction(domain.DirectionLeft))
	ev, ok := k.Poll()
	if !ok || ev.Direction != domain.DirectionLeft {
		t.Errorf("Poll = %+v, %v", ev, ok)
	}
}
