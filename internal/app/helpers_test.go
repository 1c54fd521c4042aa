package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/splitview/internal/config"
)

const threeColumns = `
views:
  - title: One
    text: "# one"
  - title: Two
    text: "# two"
  - title: Three
    text: "# three"
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		LayoutFile: filepath.Join(t.TempDir(), "layout.yaml"),
		Handle: config.HandleOptions{
			FocusedColor: config.DefaultFocusedColor,
			DefaultColor: config.DefaultHandleColor,
			FocusedSize:  config.DefaultFocusedSize,
			DefaultSize:  config.DefaultHandleSize,
		},
		GlamourStyle: "notty",
	}
}

// newTestModel builds a model for a layout document and sizes it like a
// terminal of width x height.
func newTestModel(t *testing.T, doc string, width, height int) *Model {
	t.Helper()
	return newTestModelWithConfig(t, testConfig(t), doc, width, height)
}

func newTestModelWithConfig(t *testing.T, cfg config.Config, doc string, width, height int) *Model {
	t.Helper()
	root, err := config.ParseLayout(strings.NewReader(doc), t.TempDir())
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	m := newModel(cfg, root)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), DirPermission); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), FilePermission); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func extents(p *pane) []int {
	spans := p.engine.Layout().Cells()
	out := make([]int, len(spans))
	for i, s := range spans {
		out[i] = s.Extent
	}
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func drag(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func hover(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func teaWindow(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}

func keyTab() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyTab}
}

func keyRight() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRight}
}

func mustParse(t *testing.T, doc string) config.Node {
	t.Helper()
	root, err := config.ParseLayout(strings.NewReader(doc), t.TempDir())
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	return root
}
