// render.go implements debounced, cached markdown rendering for leaf panes.
//
// Rendering markdown through Glamour is relatively expensive, and dragging a
// handle changes pane widths on every mouse motion, so this module applies two
// optimizations to keep the UI responsive:
//
// # Debouncing
//
// requestRender increments the pane's sequence number and schedules a render
// after RenderDebounce. If the width changes again before the timer fires,
// the sequence number changes and the stale request is discarded. While a
// render is pending the pane keeps showing its previous content.
//
// # Caching
//
// Completed renders are cached by pane and width bucket. File-backed panes
// also record the file's modification time, so edits on disk invalidate the
// entry. Width bucketing rounds the pane width down to a multiple of
// RenderWidthBucket, so small drags reuse cached renders.
//
// # Glamour Renderers
//
// Glamour TermRenderer instances are cached per style and width bucket in a
// global LRU protected by a mutex. The style comes from config.json
// ("glamour_style"), overridable with SPLITVIEW_GLAMOUR_STYLE.
package app

import (
	"container/list"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// renderKey identifies a cached render.
type renderKey struct {
	pane  int
	width int
}

// renderCacheEntry stores a completed render alongside the file mtime that
// produced it. Text panes have a zero mtime.
type renderCacheEntry struct {
	mtime   time.Time
	content string
}

// renderRequestMsg is emitted by the debounce timer to trigger the actual
// render.
type renderRequestMsg struct {
	pane  int
	width int
	seq   int
}

// renderResultMsg carries the completed render output (or error) back from
// the async render Cmd to the Update loop.
type renderResultMsg struct {
	pane    int
	width   int
	seq     int
	content string
	mtime   time.Time
	err     error
}

// rendererKey identifies a cached Glamour renderer.
type rendererKey struct {
	style string
	width int
}

var (
	// maxRendererCacheEntries bounds the number of Glamour renderers retained
	// in memory.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
)

// refreshPanes requests a render for every leaf below p whose width bucket
// changed.
func (m *Model) refreshPanes(p *pane) tea.Cmd {
	if p == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, leaf := range p.leaves() {
		if cmd := m.requestRender(leaf); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// requestRender initiates a debounced render for a leaf pane.
//
// Fast path: the pane already shows this width bucket, or the render cache
// holds a fresh entry for it. No Cmd is returned.
//
// Slow path: the pane's renderSeq is incremented (invalidating any in-flight
// render) and a debounce timer is started.
func (m *Model) requestRender(p *pane) tea.Cmd {
	if p == nil || p.isSplit() || p.viewport.Width <= 0 {
		return nil
	}
	width := roundWidthToNearestBucket(p.viewport.Width)
	if p.renderedWidth == width && !p.rendering {
		return nil
	}
	if p.rendering && p.pendingWidth == width {
		return nil
	}
	key := renderKey{pane: p.id, width: width}
	if entry, ok := m.renderCache[key]; ok && m.renderFresh(p, entry) {
		p.viewport.SetContent(entry.content)
		p.renderedWidth = width
		p.rendering = false
		p.renderSeq++
		return nil
	}

	if p.renderedWidth == 0 {
		p.viewport.SetContent(m.spinner.View() + " Rendering...")
	}
	p.rendering = true
	p.renderSeq++
	p.pendingWidth = width
	id, seq := p.id, p.renderSeq
	return tea.Tick(RenderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{pane: id, width: width, seq: seq}
	})
}

// invalidatePane drops cached renders for a pane and re-renders it.
func (m *Model) invalidatePane(p *pane) tea.Cmd {
	for key := range m.renderCache {
		if key.pane == p.id {
			delete(m.renderCache, key)
		}
	}
	p.renderedWidth = -1
	p.rendering = false
	return m.requestRender(p)
}

func (m *Model) renderFresh(p *pane, entry renderCacheEntry) bool {
	if p.file == "" {
		return true
	}
	info, err := os.Stat(p.file)
	return err == nil && entry.mtime.Equal(info.ModTime())
}

// handleRenderRequest starts the async render if the request is still current.
func (m *Model) handleRenderRequest(msg renderRequestMsg) tea.Cmd {
	p := m.root.find(msg.pane)
	if p == nil || msg.seq != p.renderSeq || msg.width != p.pendingWidth {
		return nil
	}
	return renderPaneCmd(msg.pane, p.file, p.text, msg.width, msg.seq, m.glamourStyle())
}

// handleRenderResult stores a finished render and shows it if still current.
func (m *Model) handleRenderResult(msg renderResultMsg) {
	p := m.root.find(msg.pane)
	if msg.err != nil {
		if p != nil && msg.seq == p.renderSeq {
			p.viewport.SetContent("Error reading " + p.file)
			p.rendering = false
			p.renderedWidth = msg.width
			m.setStatusError("Error reading pane file", msg.err, "path", p.file)
		}
		return
	}
	m.renderCache[renderKey{pane: msg.pane, width: msg.width}] = renderCacheEntry{
		mtime:   msg.mtime,
		content: msg.content,
	}
	if p == nil || msg.seq != p.renderSeq {
		return
	}
	p.viewport.SetContent(msg.content)
	p.renderedWidth = msg.width
	p.rendering = false
}

// renderPaneCmd returns a Bubble Tea Cmd that reads and renders a pane's
// markdown on a background goroutine.
func renderPaneCmd(id int, path, text string, width, seq int, style string) tea.Cmd {
	return func() tea.Msg {
		var mtime time.Time
		if path != "" {
			info, err := os.Stat(path)
			if err != nil {
				return renderResultMsg{pane: id, width: width, seq: seq, err: err}
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return renderResultMsg{pane: id, width: width, seq: seq, err: err}
			}
			text = string(content)
			mtime = info.ModTime()
		}
		return renderResultMsg{
			pane:    id,
			width:   width,
			seq:     seq,
			content: renderMarkdown(text, width, style),
			mtime:   mtime,
		}
	}
}

// renderMarkdown converts raw markdown text to ANSI-formatted output. If
// renderer creation or rendering fails, the raw markdown is returned as-is.
func renderMarkdown(content string, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(style, width)
	if err != nil {
		appLog.Error("create markdown renderer", "width", width, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		appLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return out
}

// getRenderer returns a cached Glamour TermRenderer for the given style and
// width, creating one if it doesn't exist.
func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := rendererKey{style: style, width: width}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[key]; ok {
		if node, ok := rendererCacheNodes[key]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[key] = renderer
	rendererCacheNodes[key] = rendererCacheOrder.PushBack(key)
	evictOldestRendererIfNeeded()
	return renderer, nil
}

func evictOldestRendererIfNeeded() {
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		key, _ := oldest.Value.(rendererKey)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, key)
		delete(rendererCacheNodes, key)
	}
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
}

// glamourStyle resolves the style name: SPLITVIEW_GLAMOUR_STYLE, then the
// config, then "dark".
func (m *Model) glamourStyle() string {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("SPLITVIEW_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(m.cfg.GlamourStyle))
	}
	if style == "" {
		style = "dark"
	}
	return style
}

// glamourStyleOption maps a style name to a renderer option. "auto" queries
// the terminal background; unknown names fall back to "dark".
func glamourStyleOption(style string) glamour.TermRendererOption {
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	switch style {
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}

// roundWidthToNearestBucket rounds a pane width down to a multiple of
// RenderWidthBucket so that nearby widths share a cache entry. Widths below
// one bucket render at their exact width.
func roundWidthToNearestBucket(width int) int {
	if width <= RenderWidthBucket {
		return max(1, width)
	}
	return (width / RenderWidthBucket) * RenderWidthBucket
}
