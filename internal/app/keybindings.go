package app

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/treykane/splitview/internal/config"
)

// ---------------------------------------------------------------------------
// Action constants
// ---------------------------------------------------------------------------
//
// Actions are the abstraction layer between physical key presses and
// application behavior: the user presses a key, the key is looked up in the
// keyToAction map, and the resulting action string is dispatched in
// handleKey. Users can override any assignment via the "keybindings" map in
// config.json.
// ---------------------------------------------------------------------------

const (
	// actionHandleNext focuses the next handle in the tree.
	actionHandleNext = "handle.focus.next"

	// actionHandlePrev focuses the previous handle in the tree.
	actionHandlePrev = "handle.focus.prev"

	// actionHandleBlur clears the keyboard focus.
	actionHandleBlur = "handle.focus.clear"

	// actionNudgeBack moves the focused handle one cell towards the start of
	// its axis (left in a row, up in a column).
	actionNudgeBack = "handle.nudge.back"

	// actionNudgeForward moves the focused handle one cell towards the end of
	// its axis.
	actionNudgeForward = "handle.nudge.forward"

	// actionNudgeBackLarge is actionNudgeBack by NudgeStepLarge cells.
	actionNudgeBackLarge = "handle.nudge.back_large"

	// actionNudgeForwardLarge is actionNudgeForward by NudgeStepLarge cells.
	actionNudgeForwardLarge = "handle.nudge.forward_large"

	// actionReload re-reads the layout document and re-seeds every split.
	actionReload = "layout.reload"

	// actionReset discards drags and re-applies the declared size hints.
	actionReset = "layout.reset"

	// actionHelp toggles the keyboard shortcut reference.
	actionHelp = "help.toggle"

	// actionQuit exits the application.
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default key bindings.
//
// Key strings use the Bubble Tea notation:
//   - Modifier keys: "ctrl+", "alt+", "shift+"
//   - Special keys: "enter", "esc", "tab", "up", "down", "left", "right"
//   - Single characters: "r", "?", etc.
var defaultActionKeys = map[string][]string{
	actionHandleNext:        {"tab"},
	actionHandlePrev:        {"shift+tab"},
	actionHandleBlur:        {"esc"},
	actionNudgeBack:         {"left", "h", "up", "k"},
	actionNudgeForward:      {"right", "l", "down", "j"},
	actionNudgeBackLarge:    {"shift+h", "shift+k", "shift+left", "shift+up"},
	actionNudgeForwardLarge: {"shift+l", "shift+j", "shift+right", "shift+down"},
	actionReload:            {"r"},
	actionReset:             {"shift+r"},
	actionHelp:              {"?"},
	actionQuit:              {"q", "ctrl+c"},
}

// actionDescriptions are the help texts shown next to each binding.
var actionDescriptions = map[string]string{
	actionHandleNext:        "next handle",
	actionHandlePrev:        "prev handle",
	actionHandleBlur:        "clear focus",
	actionNudgeBack:         "move back",
	actionNudgeForward:      "move forward",
	actionNudgeBackLarge:    "move back 5",
	actionNudgeForwardLarge: "move forward 5",
	actionReload:            "reload layout",
	actionReset:             "reset sizes",
	actionHelp:              "help",
	actionQuit:              "quit",
}

// keyMap exposes the resolved bindings to bubbles/help.
type keyMap struct {
	bindings map[string]key.Binding
}

func (k keyMap) get(action string) key.Binding {
	return k.bindings[action]
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return k.enabled(actionHandleNext, actionNudgeBack, actionNudgeForward, actionReload, actionHelp, actionQuit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.enabled(actionHandleNext, actionHandlePrev, actionHandleBlur),
		k.enabled(actionNudgeBack, actionNudgeForward, actionNudgeBackLarge, actionNudgeForwardLarge),
		k.enabled(actionReload, actionReset, actionHelp, actionQuit),
	}
}

func (k keyMap) enabled(actions ...string) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, action := range actions {
		if b, ok := k.bindings[action]; ok && b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

// setNudgeEnabled shows or hides the nudge bindings; they only apply while a
// handle has keyboard focus.
func (k keyMap) setNudgeEnabled(enabled bool) {
	for _, action := range []string{actionNudgeBack, actionNudgeForward, actionNudgeBackLarge, actionNudgeForwardLarge, actionHandleBlur} {
		if b, ok := k.bindings[action]; ok {
			b.SetEnabled(enabled)
			k.bindings[action] = b
		}
	}
}

// ---------------------------------------------------------------------------
// Keybinding initialization
// ---------------------------------------------------------------------------

// loadKeybindings initializes the key↔action maps from the built-in defaults
// and the "keybindings" object in config.json, then builds the reverse lookup
// map and the bubbles/key bindings used for help.
//
// Unknown action names in user overrides are logged as warnings and ignored.
// Overrides replace an action's full default key set with the configured key.
// Key conflicts are also logged; the first action to claim a key wins.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}

	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}

	m.rebuildActionKeyIndex()
	m.rebuildKeyMap()
}

// applyKeybindingOverride updates a single action's key binding, replacing the
// action's full default key set.
func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex constructs the reverse lookup map (keyToAction) from
// the current keyForAction map.
//
// If two actions are mapped to the same key, a warning is logged and the
// first action encountered keeps the binding.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	for _, action := range sortedActions(m.keyForAction) {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// rebuildKeyMap builds one key.Binding per action. Only keys that won the
// conflict check are included, so help never advertises a dead key.
func (m *Model) rebuildKeyMap() {
	m.keys = keyMap{bindings: map[string]key.Binding{}}
	for action, keys := range m.keyForAction {
		var bound []string
		for _, k := range keys {
			if m.keyToAction[k] == action {
				bound = append(bound, teaKeyStrings(k)...)
			}
		}
		if len(bound) == 0 {
			continue
		}
		m.keys.bindings[action] = key.NewBinding(
			key.WithKeys(bound...),
			key.WithHelp(m.allActionKeys(action, ""), actionDescriptions[action]),
		)
	}
	m.keys.setNudgeEnabled(m.focus.valid())
}

// ---------------------------------------------------------------------------
// Key string normalization
// ---------------------------------------------------------------------------

// normalizeKeyString converts a user-provided key string into the canonical
// lowercase form used internally by the keybinding maps.
//
// A single uppercase letter (e.g. "L") is converted to "shift+l" because
// Bubble Tea reports shifted letter keys as uppercase runes.
//
// Examples:
//
//	normalizeKeyString("Ctrl+R")  → "ctrl+r"
//	normalizeKeyString(" L ")     → "shift+l"
//	normalizeKeyString("shift+l") → "shift+l"
//	normalizeKeyString("")        → ""
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// teaKeyStrings returns the strings Bubble Tea may report for a normalized
// key. "shift+l" arrives as "L".
func teaKeyStrings(normalized string) []string {
	out := []string{normalized}
	if letter, ok := strings.CutPrefix(normalized, "shift+"); ok && len([]rune(letter)) == 1 {
		out = append(out, strings.ToUpper(letter))
	}
	return out
}

// actionForKey looks up the action bound to the given key string.
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" {
			continue
		}
		if slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, "/")
}

func sortedActions(actions map[string][]string) []string {
	out := make([]string, 0, len(actions))
	for action := range actions {
		out = append(out, action)
	}
	slices.Sort(out)
	return out
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	if letter, ok := strings.CutPrefix(normalized, "shift+"); ok && len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'z' {
		return strings.ToUpper(letter)
	}
	special := map[string]string{
		"up":    "↑",
		"down":  "↓",
		"left":  "←",
		"right": "→",
		"enter": "Enter",
		"esc":   "Esc",
		"tab":   "Tab",
		"space": "Space",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
				parts[i] = part
			} else {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}
