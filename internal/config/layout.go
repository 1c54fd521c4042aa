package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/treykane/splitview/internal/size"
	"github.com/treykane/splitview/internal/splitview"
)

// Node is one entry of the layout document. A node with views is a split
// whose children are arranged along Direction; any other node is a leaf pane
// showing markdown from File or Text. Size hints apply along the parent's
// axis: width hints inside a row, height hints inside a column.
type Node struct {
	Title     string    `yaml:"title,omitempty"`
	Direction string    `yaml:"direction,omitempty"`
	File      string    `yaml:"file,omitempty"`
	Text      string    `yaml:"text,omitempty"`
	Width     size.Spec `yaml:"width,omitempty"`
	MinWidth  size.Spec `yaml:"min_width,omitempty"`
	MaxWidth  size.Spec `yaml:"max_width,omitempty"`
	Height    size.Spec `yaml:"height,omitempty"`
	MinHeight size.Spec `yaml:"min_height,omitempty"`
	MaxHeight size.Spec `yaml:"max_height,omitempty"`
	Views     []Node    `yaml:"views,omitempty"`
}

// IsSplit reports whether the node arranges child views.
func (n Node) IsSplit() bool {
	return len(n.Views) > 0
}

// Axis returns the split direction. Validated documents never fail here.
func (n Node) Axis() splitview.Axis {
	axis, _ := splitview.ParseAxis(n.Direction)
	return axis
}

// Constraint returns the node's hints along the given parent axis.
func (n Node) Constraint(axis splitview.Axis) splitview.Constraint {
	if axis == splitview.Column {
		return splitview.Constraint{Size: n.Height, Min: n.MinHeight, Max: n.MaxHeight}
	}
	return splitview.Constraint{Size: n.Width, Min: n.MinWidth, Max: n.MaxWidth}
}

// Constraints returns the children's hints along this split's axis.
func (n Node) Constraints() []splitview.Constraint {
	axis := n.Axis()
	constraints := make([]splitview.Constraint, len(n.Views))
	for i, child := range n.Views {
		constraints[i] = child.Constraint(axis)
	}
	return constraints
}

// LoadLayout reads and validates a layout document. Relative file paths in
// leaves are resolved against the document's directory.
func LoadLayout(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Node{}, err
	}
	root, err := ParseLayout(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return Node{}, fmt.Errorf("layout %s: %w", path, err)
	}
	log.Debug("loaded layout", "path", path, "views", len(root.Views))
	return root, nil
}

// LoadLayoutOrDefault falls back to DefaultLayout when path does not exist.
// The boolean reports whether the file was used.
func LoadLayoutOrDefault(path string) (Node, bool, error) {
	root, err := LoadLayout(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultLayout(), false, nil
	}
	if err != nil {
		return Node{}, false, err
	}
	return root, true, nil
}

// SaveLayout writes a layout document, creating its directory. Existing files
// are replaced.
func SaveLayout(path string, root Node) error {
	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create layout dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	log.Info("saved layout", "path", path)
	return nil
}

// ParseLayout decodes a layout document. Unknown keys are rejected so typos in
// hint names do not silently fall back to defaults.
func ParseLayout(r io.Reader, baseDir string) (Node, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var root Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Node{}, errors.New("empty layout document")
		}
		return Node{}, err
	}
	if !root.IsSplit() {
		return Node{}, errors.New("root must declare views")
	}
	if err := root.validate("root", baseDir); err != nil {
		return Node{}, err
	}
	return root, nil
}

func (n *Node) validate(path, baseDir string) error {
	if _, err := splitview.ParseAxis(n.Direction); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !n.IsSplit() {
		if strings.TrimSpace(n.Direction) != "" {
			return fmt.Errorf("%s: split has no views", path)
		}
		if n.File != "" && n.Text != "" {
			return fmt.Errorf("%s: file and text are mutually exclusive", path)
		}
		if n.File != "" {
			file, err := expandHome(n.File)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if !filepath.IsAbs(file) {
				file = filepath.Join(baseDir, file)
			}
			n.File = filepath.Clean(file)
		}
		return nil
	}
	for i := range n.Views {
		child := fmt.Sprintf("%s.views[%d]", path, i)
		if err := n.Views[i].validate(child, baseDir); err != nil {
			return err
		}
	}
	return nil
}

// DefaultLayout is shown when no layout document exists yet.
func DefaultLayout() Node {
	pct := size.Percentage
	cells := size.Pixels
	return Node{
		Direction: "row",
		Views: []Node{
			{
				Direction: "column",
				Width:     pct(25),
				Views: []Node{
					{Title: "Welcome", Text: welcomeText, MinHeight: cells(3)},
					{Title: "Bounded", Text: "# At most 35%\n\nThis pane never grows past 35% of the column.", MinHeight: cells(3), MaxHeight: pct(35)},
					{Title: "Half", Text: "# At most 50%\n\nDrag the handle above to see the cascade.", MinHeight: cells(3), MaxHeight: pct(50)},
					{Title: "Notes", Text: "# Notes\n\nPoint `layout_file` in config.json at your own layout.", MinHeight: cells(3)},
				},
			},
			{
				Direction: "column",
				MinWidth:  cells(12),
				Views: []Node{
					{
						Direction: "row",
						MinHeight: cells(6),
						Views: []Node{
							{Title: "Left", Text: loremText, MinWidth: cells(12)},
							{Title: "Middle", Text: loremText, MinWidth: cells(12), MaxWidth: cells(70)},
							{Title: "Right", Text: loremText, MinWidth: cells(12)},
						},
					},
					{Title: "Log", Text: "# Log\n\nA quarter of the height, at most 40%.", Height: pct(25), MaxHeight: pct(40)},
				},
			},
		},
	}
}

const welcomeText = "# splitview\n\n" +
	"Drag a handle with the mouse, or use the keyboard:\n\n" +
	"- Tab / Shift+Tab: focus a handle\n" +
	"- ←/→ or ↑/↓: move it one cell\n" +
	"- r: reset the layout\n" +
	"- ?: help\n" +
	"- q: quit\n"

const loremText = "## A view\n\n" +
	"Lorem, ipsum dolor sit amet consectetur adipisicing elit. Officia unde " +
	"ad quo cumque, maxime vero obcaecati eligendi assumenda velit sequi " +
	"voluptates praesentium tempore itaque adipisci alias odit, nulla aperiam " +
	"laudantium!\n"
