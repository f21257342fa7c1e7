package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lvrach/study-sessions/internal/document"
	"github.com/lvrach/study-sessions/internal/history"
	"github.com/lvrach/study-sessions/internal/session"
)

// InspectCmd opens an interactive TUI to browse sessions and their documents.
type InspectCmd struct{}

func (cmd *InspectCmd) Run(app *App) error {
	// JSON mode: a TUI is not meaningful for scripts.
	if app.JSON {
		return (&ByDayCmd{}).Run(app)
	}

	cfg, err := app.config()
	if err != nil {
		return err
	}
	sessions, cat, err := app.sessions(cfg, nil)
	if err != nil {
		return err
	}
	dir := cfg.OutputDir
	if err := checkOutputDir(dir); err != nil {
		return err
	}

	renderer, err := app.renderer(cfg, cat)
	if err != nil {
		return err
	}
	docs := make([]string, len(sessions))
	for i, s := range sessions {
		if docs[i], err = renderer.Render(s); err != nil {
			return err
		}
	}

	write := func(s session.Session, body string) (string, error) {
		path, err := document.Write(dir, s.FileName(), []byte(body))
		if err != nil {
			return path, err
		}
		if _, err := history.Append(history.KindDocument, s.Entry.Course, path, s.Start.Time()); err != nil {
			app.Log.Warn().Err(err).Str("path", path).Msg("could not record history")
		}
		return path, nil
	}

	m := newInspectModel(sessions, docs, write)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("inspect TUI: %w", err)
	}

	fm := finalModel.(inspectModel)
	if fm.written > 0 {
		fmt.Fprintf(os.Stdout, "Wrote %d document(s) to %q.\n", fm.written, dir)
	}
	return nil
}

const (
	inspectLeftPaneWidth = 26 // width of the list pane
	inspectSepWidth      = 3  // " │ " separator between panes
	minSplitWidth        = 60 // minimum terminal width for horizontal split
	listLayout           = "Jan 02 15:04"
)

// writeFunc writes one document and returns its path.
type writeFunc func(s session.Session, body string) (string, error)

// inspectModel is the Bubble Tea model for the session browser.
type inspectModel struct {
	sessions        []session.Session
	documents       []string // raw markdown per session
	renderedContent []string // pre-cached glamour output per session
	write           writeFunc
	cursor          int
	written         int
	width, height   int
	message         string // transient status message
	detailViewport  viewport.Model
	focusDetail     bool
	listOffset      int
}

func newInspectModel(sessions []session.Session, documents []string, write writeFunc) inspectModel {
	vp := viewport.New(80, 10)
	vp.KeyMap.Left.SetEnabled(false)
	vp.KeyMap.Right.SetEnabled(false)

	return inspectModel{
		sessions:       sessions,
		documents:      documents,
		write:          write,
		detailViewport: vp,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// 1. Global keys.
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			if m.width >= minSplitWidth && len(m.sessions) > 0 {
				m.focusDetail = !m.focusDetail
			}
			return m, nil

		case "w":
			return m.doWrite()
		}

		// 2. Route to focused pane (viewport handles its own keys).
		if m.focusDetail {
			var cmd tea.Cmd
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return m, cmd
		}

		// 3. List navigation.
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.message = ""
				m.syncDetailContent()
				m.syncListScroll()
			}
		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
				m.message = ""
				m.syncDetailContent()
				m.syncListScroll()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderAllContent()
		m.updateViewportSize()
		m.syncDetailContent()
		m.syncListScroll()
	}

	return m, nil
}

// doWrite writes the selected document unless it already exists.
func (m inspectModel) doWrite() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.sessions) || m.write == nil {
		return m, nil
	}

	s := m.sessions[m.cursor]
	_, err := m.write(s, m.documents[m.cursor])
	switch {
	case errors.Is(err, document.ErrExists):
		m.message = fmt.Sprintf("Skipped: %s already exists", truncate(s.FileName(), 40))
	case err != nil:
		m.message = fmt.Sprintf("Write failed: %s", err)
	default:
		m.written++
		m.message = fmt.Sprintf("Written: %s", truncate(s.FileName(), 40))
	}
	return m, nil
}

// contentRows returns the number of rows available for the content area.
func (m inspectModel) contentRows() int {
	overhead := 2 // title + help
	if m.width >= minSplitWidth {
		overhead += 2 // top border + bottom border
	}
	if m.message != "" {
		overhead++
	}
	return max(m.height-overhead, 1)
}

// rightPaneWidth returns the width available for the detail pane.
func (m inspectModel) rightPaneWidth() int {
	return max(m.width-inspectLeftPaneWidth-inspectSepWidth, 1)
}

// renderAllContent pre-renders all documents via glamour for the detail pane.
func (m *inspectModel) renderAllContent() {
	if m.width < minSplitWidth {
		m.renderedContent = nil
		return
	}
	rightW := m.rightPaneWidth()
	m.renderedContent = make([]string, len(m.documents))
	for i, doc := range m.documents {
		m.renderedContent[i] = renderDocument(doc, max(rightW-2, 20))
	}
}

// updateViewportSize recalculates the detail viewport dimensions.
func (m *inspectModel) updateViewportSize() {
	if m.width < minSplitWidth {
		return
	}
	rows := m.contentRows()
	vpHeight := max(rows-2, 1) // subtract header + divider in right pane
	m.detailViewport.Width = m.rightPaneWidth()
	m.detailViewport.Height = vpHeight
}

// syncDetailContent sets the viewport to the currently selected document.
func (m *inspectModel) syncDetailContent() {
	if len(m.renderedContent) == 0 || m.cursor >= len(m.renderedContent) {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderedContent[m.cursor])
	m.detailViewport.GotoTop()
}

// syncListScroll ensures the cursor is visible within the list pane.
func (m *inspectModel) syncListScroll() {
	rows := m.contentRows()
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+rows {
		m.listOffset = m.cursor - rows + 1
	}
}

// --- View styles ---

var (
	inspectTitleStyle = lipgloss.NewStyle().Bold(true)
	inspectDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	inspectHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	inspectMsgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	inspectCurStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(inspectTitleStyle.Render(
		fmt.Sprintf("Sessions (%d scheduled)", len(m.sessions))))
	b.WriteString("\n")

	if len(m.sessions) == 0 {
		b.WriteString(inspectHelpStyle.Render("q: quit"))
		return b.String()
	}

	if m.width < minSplitWidth {
		m.viewNarrow(&b)
	} else {
		m.viewSplit(&b)
	}

	if m.message != "" {
		b.WriteString(inspectMsgStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString(inspectHelpStyle.Render(m.helpText()))

	return b.String()
}

// listLabel is the short form shown in the list, e.g. "Jul 01 12:00 LS171".
func (m inspectModel) listLabel(idx int) string {
	s := m.sessions[idx]
	return s.Start.Time().Format(listLayout) + " " + s.Entry.Course
}

// viewNarrow renders a simple list without a detail pane (for terminals <60 cols).
func (m inspectModel) viewNarrow(b *strings.Builder) {
	rows := m.contentRows()
	end := min(m.listOffset+rows, len(m.sessions))
	for i := m.listOffset; i < end; i++ {
		line := fmt.Sprintf("  %-3d %s", i+1, truncate(m.listLabel(i), max(m.width-6, 10)))
		if i == m.cursor {
			b.WriteString(inspectCurStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(inspectDimStyle.Render(line))
		}
		b.WriteString("\n")
	}
	// Pad remaining rows so the alt screen fills.
	for i := end - m.listOffset; i < rows; i++ {
		b.WriteString("\n")
	}
}

// viewSplit renders the horizontal split layout: list | separator | detail.
func (m inspectModel) viewSplit(b *strings.Builder) {
	rows := m.contentRows()
	rightW := m.rightPaneWidth()

	b.WriteString(inspectDimStyle.Render(
		strings.Repeat("─", inspectLeftPaneWidth) + "─┬─" + strings.Repeat("─", rightW)))
	b.WriteString("\n")

	leftStyle := lipgloss.NewStyle().Width(inspectLeftPaneWidth)
	leftLines := make([]string, rows)
	for i := range rows {
		idx := m.listOffset + i
		if idx < len(m.sessions) {
			leftLines[i] = m.renderListItem(idx, leftStyle)
		} else {
			leftLines[i] = leftStyle.Render("")
		}
	}

	sepColor := lipgloss.Color("240")
	if m.focusDetail {
		sepColor = lipgloss.Color("212")
	}
	sep := lipgloss.NewStyle().Foreground(sepColor).Render(" │ ")

	s := m.sessions[m.cursor]
	header := inspectDimStyle.Render(truncate(
		fmt.Sprintf("#%d · %s · %s", m.cursor+1, s.Course.FullName, s.When), rightW))
	divider := inspectDimStyle.Render(strings.Repeat("─", rightW))

	vpLines := strings.Split(m.detailViewport.View(), "\n")

	for i := range rows {
		b.WriteString(leftLines[i])
		b.WriteString(sep)
		switch i {
		case 0:
			b.WriteString(header)
		case 1:
			b.WriteString(divider)
		default:
			vpIdx := i - 2
			if vpIdx < len(vpLines) {
				b.WriteString(vpLines[vpIdx])
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(inspectDimStyle.Render(
		strings.Repeat("─", inspectLeftPaneWidth) + "─┴─" + strings.Repeat("─", rightW)))
	b.WriteString("\n")
}

// renderListItem renders a single list entry for the left pane.
func (m inspectModel) renderListItem(idx int, baseStyle lipgloss.Style) string {
	content := truncate(m.listLabel(idx), inspectLeftPaneWidth-2)
	if idx == m.cursor {
		return baseStyle.Foreground(lipgloss.Color("212")).Bold(true).Render("> " + content)
	}
	return baseStyle.Foreground(lipgloss.Color("240")).Render("  " + content)
}

func (m inspectModel) helpText() string {
	if m.width < minSplitWidth {
		return "↑↓: navigate   w: write   q: quit"
	}
	if m.focusDetail {
		return "↑↓: scroll   tab: list   w: write   q: quit"
	}
	return "↑↓: navigate   tab: detail   w: write   q: quit"
}

// truncate shortens s to n bytes, marking the cut with "...".
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
