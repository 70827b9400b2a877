package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/edit"
	"github.com/stateful/newsletter/internal/export"
	"github.com/stateful/newsletter/internal/field"
	"github.com/stateful/newsletter/internal/log"
	"github.com/stateful/newsletter/internal/markup"
	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/store"
	"github.com/stateful/newsletter/internal/upload"
	"github.com/stateful/newsletter/internal/validate"
)

const statusTimeout = 3 * time.Second

type mode int

const (
	modeBrowse mode = iota
	modeEdit
)

type EditorOption func(*EditorModel)

// WithEditOptions are passed to every edit session.
func WithEditOptions(opts ...edit.Option) EditorOption {
	return func(m *EditorModel) {
		m.editOpts = append(m.editOpts, opts...)
	}
}

// WithClipboard replaces the function used to copy exports.
func WithClipboard(fn func(string) error) EditorOption {
	return func(m *EditorModel) {
		m.copy = fn
	}
}

// EditorModel lists every editable field of the document held by a store
// and edits one field at a time.
type EditorModel struct {
	store *store.Store
	log   *zap.Logger

	browseKeys *KeyMap
	editKeys   *KeyMap
	styles     *Styles

	entries []field.Entry
	cursor  int
	offset  int
	width   int
	height  int

	mode     mode
	session  *edit.Session
	textarea textarea.Model
	editOpts []edit.Option

	preview bool
	copy    func(string) error

	status    string
	statusErr bool
	statusID  int
}

type clearStatusMsg struct {
	id int
}

func NewEditorModel(s *store.Store, opts ...EditorOption) EditorModel {
	m := EditorModel{
		store:      s,
		log:        log.Get().Named("tui.EditorModel"),
		browseKeys: newBrowseKeyMap(),
		editKeys:   newEditKeyMap(),
		styles:     StylesFor(s.DarkMode()),
		height:     24,
		width:      80,
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.copy == nil {
		logger := m.log
		m.copy = func(text string) error { return export.Copy(text, logger) }
	}

	m.refresh()
	return m
}

func newBrowseKeyMap() *KeyMap {
	m := NewKeyMap()
	m.Add("up", key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")))
	m.Add("down", key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")))
	m.Add("edit", key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")))
	m.Add("undo", key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")))
	m.Add("redo", key.NewBinding(key.WithKeys("r", "ctrl+y"), key.WithHelp("r", "redo")))
	m.Add("add text", key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add text section")))
	m.Add("add image", key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add image section")))
	m.Add("add metrics", key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "add metrics section")))
	m.Add("add resource", key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add resource")))
	m.Add("remove", key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")))
	m.Add("move up", key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move section up")))
	m.Add("move down", key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move section down")))
	m.Add("preview", key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")))
	m.Add("theme", key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark mode")))
	m.Add("copy html", key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy HTML")))
	m.Add("copy xml", key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "copy XML")))
	m.Add("validate", key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "validate")))
	m.Add("exit", key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")))
	return m
}

func newEditKeyMap() *KeyMap {
	m := NewKeyMap()
	m.Add("save", key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")))
	m.Add("cancel", key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
	m.Add("bold", key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold line")))
	m.Add("italic", key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic line")))
	m.Add("link", key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "link line")))
	m.Add("list", key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "list item")))
	return m
}

func (m EditorModel) KeyMap() *KeyMap {
	if m.mode == modeEdit {
		return m.editKeys
	}
	return m.browseKeys
}

func (m EditorModel) CapturesInput() bool { return m.mode == modeEdit }

// Document returns the document currently held by the store.
func (m EditorModel) Document() newsletter.Document { return m.store.Document() }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = Width(msg.Width)
		m.height = msg.Height
		if m.mode == modeEdit {
			m.textarea.SetWidth(max(m.width-4, 10))
		}
		m.scroll()
		return m, nil

	case ThemeMsg:
		m.styles = StylesFor(msg.Dark)
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeEdit {
			return m.updateEdit(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == modeEdit {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.browseKeys

	switch {
	case keys.Matches(msg, "exit"):
		return m, tea.Quit

	case keys.Matches(msg, "up"):
		m.cursor = clamp(m.cursor-1, 0, len(m.entries)-1)
		m.scroll()

	case keys.Matches(msg, "down"):
		m.cursor = clamp(m.cursor+1, 0, len(m.entries)-1)
		m.scroll()

	case keys.Matches(msg, "edit"):
		return m.beginEdit()

	case keys.Matches(msg, "undo"):
		if !m.store.Undo() {
			return m.setStatus("Nothing to undo", false)
		}
		m.refresh()

	case keys.Matches(msg, "redo"):
		if !m.store.Redo() {
			return m.setStatus("Nothing to redo", false)
		}
		m.refresh()

	case keys.Matches(msg, "add text"):
		return m.addBlock(newsletter.TextOnly())

	case keys.Matches(msg, "add image"):
		return m.addBlock(newsletter.TextWithImage())

	case keys.Matches(msg, "add metrics"):
		return m.addBlock(newsletter.Metrics())

	case keys.Matches(msg, "add resource"):
		id := m.store.AddResource()
		m.refresh()
		m.focus(field.Resource(id, field.AttrTitle))
		return m.setStatus("Resource added", false)

	case keys.Matches(msg, "remove"):
		return m.remove()

	case keys.Matches(msg, "move up"):
		return m.move(-1)

	case keys.Matches(msg, "move down"):
		return m.move(1)

	case keys.Matches(msg, "preview"):
		m.preview = !m.preview

	case keys.Matches(msg, "theme"):
		dark := m.store.ToggleDarkMode()
		m.styles = StylesFor(dark)
		return m, Cmd(ThemeMsg{Dark: dark})

	case keys.Matches(msg, "copy html"):
		return m.copyExport("HTML", m.store.ExportMarkup)

	case keys.Matches(msg, "copy xml"):
		return m.copyExport("XML", m.store.ExportStructured)

	case keys.Matches(msg, "validate"):
		r := validate.Document(m.store.Document())
		if r.OK() {
			return m.setStatus(fmt.Sprintf("Ready to publish (%d warnings)", len(r.Warnings)), false)
		}
		return m.setStatus(fmt.Sprintf("%d issues: %s", len(r.Issues), r.Issues[0]), true)
	}

	return m, nil
}

func (m EditorModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.editKeys

	switch {
	case keys.Matches(msg, "save"):
		return m.save()

	case keys.Matches(msg, "cancel"):
		m.session.Cancel()
		m.endEdit()
		return m, nil

	case keys.Matches(msg, "bold"):
		m.wrapLine(edit.Bold)
		return m, nil

	case keys.Matches(msg, "italic"):
		m.wrapLine(edit.Italic)
		return m, nil

	case keys.Matches(msg, "link"):
		m.wrapLine(edit.Link)
		return m, nil

	case keys.Matches(msg, "list"):
		m.wrapLine(edit.List)
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.session.SetValue(m.textarea.Value())
	return m, cmd
}

func (m EditorModel) beginEdit() (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	entry := m.entries[m.cursor]

	opts := m.editOpts
	if entry.Image {
		// Image values are data URLs which are far longer than any text.
		opts = append(opts[:len(opts):len(opts)], edit.WithMaxLength(upload.MaxFileSize*2))
	}

	sess, err := edit.Begin(m.store, m.store.Document(), entry.Address, opts...)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = sess.MaxLength()
	ta.SetWidth(max(m.width-4, 10))
	ta.SetHeight(6)
	if !entry.Multiline {
		ta.SetHeight(1)
		ta.KeyMap.InsertNewline.SetEnabled(false)
	}
	ta.SetValue(sess.Value())

	m.session = sess
	m.textarea = ta
	m.mode = modeEdit
	m.log.Debug("editing field", zap.String("field", entry.Address.String()))

	return m, m.textarea.Focus()
}

func (m *EditorModel) endEdit() {
	m.textarea.Blur()
	m.session = nil
	m.mode = modeBrowse
}

func (m EditorModel) save() (tea.Model, tea.Cmd) {
	entry := m.entries[m.cursor]

	if entry.Image {
		value, err := upload.FromInput(m.textarea.Value())
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.store.CommitField(entry.Address, value)
	} else {
		m.session.SetValue(m.textarea.Value())
		if _, err := m.session.Save(); err != nil {
			return m.setStatus(err.Error(), true)
		}
	}

	m.endEdit()
	m.refresh()
	return m.setStatus(entry.Label+" saved", false)
}

// wrapLine applies format f to the line under the textarea cursor.
func (m *EditorModel) wrapLine(f edit.Format) {
	value := m.textarea.Value()
	lines := strings.Split(value, "\n")
	row := clamp(m.textarea.Line(), 0, len(lines)-1)

	start := row
	for _, l := range lines[:row] {
		start += len([]rune(l))
	}
	end := start + len([]rune(lines[row]))

	m.session.SetValue(value)
	m.session.Wrap(f, start, end)
	m.textarea.SetValue(m.session.Value())
}

func (m EditorModel) addBlock(draft newsletter.BlockDraft) (tea.Model, tea.Cmd) {
	id := m.store.AddContentBlock(draft)
	m.refresh()
	m.focus(field.Block(id, field.AttrTitle))
	return m.setStatus("Section added", false)
}

func (m EditorModel) remove() (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	addr := m.entries[m.cursor].Address

	var status string
	switch addr.Kind {
	case field.KindBlock:
		m.store.RemoveContentBlock(addr.ID)
		status = "Section removed"
	case field.KindResource:
		m.store.RemoveResource(addr.ID)
		status = "Resource removed"
	default:
		return m.setStatus("Only sections and resources can be removed", true)
	}

	m.refresh()
	return m.setStatus(status, false)
}

func (m EditorModel) move(delta int) (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	addr := m.entries[m.cursor].Address
	if addr.Kind != field.KindBlock {
		return m.setStatus("Only sections can be moved", true)
	}

	from := m.store.Document().BlockIndex(addr.ID)
	if err := m.store.MoveContentBlock(from, from+delta); err != nil {
		return m, nil
	}

	m.refresh()
	m.focus(addr)
	return m, nil
}

func (m EditorModel) copyExport(name string, render func() (string, error)) (tea.Model, tea.Cmd) {
	out, err := render()
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	if err := m.copy(out); err != nil {
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m.setStatus(name+" copied to clipboard", false)
}

func (m EditorModel) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusID++
	m.status = text
	m.statusErr = isErr

	id := m.statusID
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// refresh rebuilds the entry list from the store and keeps the cursor in range.
func (m *EditorModel) refresh() {
	m.entries = field.Entries(m.store.Document())
	m.cursor = clamp(m.cursor, 0, max(len(m.entries)-1, 0))
	m.scroll()
}

func (m *EditorModel) focus(addr field.Address) {
	for i, e := range m.entries {
		if e.Address == addr {
			m.cursor = i
			break
		}
	}
	m.scroll()
}

func (m EditorModel) visibleRows() int {
	// Header, stats, blank line, status and help take the rest.
	return max(m.height-12, 3)
}

func (m *EditorModel) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = clamp(m.offset, 0, max(len(m.entries)-rows, 0))
}

func (m EditorModel) View() string {
	doc := m.store.Document()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(doc.Header.Title))
	b.WriteString("\n")

	stats := doc.Stats()
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(
		"%d sections · %d resources · %d words",
		stats.Sections, stats.Resources, stats.Words,
	)))
	b.WriteString("\n\n")

	switch {
	case m.mode == modeEdit:
		b.WriteString(m.editView())
	case m.preview:
		b.WriteString(m.previewView(doc))
	default:
		b.WriteString(m.listView())
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.Warning.Render(m.status))
		} else {
			b.WriteString(m.styles.Success.Render(m.status))
		}
	}

	return b.String()
}

func (m EditorModel) listView() string {
	labelWidth := 0
	for _, e := range m.entries {
		labelWidth = max(labelWidth, len(e.Label))
	}

	var b strings.Builder
	end := min(m.offset+m.visibleRows(), len(m.entries))
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		label := fmt.Sprintf("%-*s", labelWidth, e.Label)
		value := singleLine(e.Value, max(m.width-labelWidth-4, 10))

		line := m.styles.Label.Render(label) + "  " + value
		if i == m.cursor {
			line = m.styles.Selected.Render(label + "  " + value)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m EditorModel) editView() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render(m.entries[m.cursor].Label))
	b.WriteString("\n")
	b.WriteString(m.styles.Editor.Render(m.textarea.View()))
	b.WriteString("\n")

	counter := strconv.Itoa(m.session.Len()) + "/" + strconv.Itoa(m.session.MaxLength()) + " characters"
	if m.session.NearLimit() {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf(
			"Warning: Text is approaching maximum length (%s)", counter,
		)))
	} else {
		b.WriteString(m.styles.Muted.Render(counter))
	}
	b.WriteString("\n")
	return b.String()
}

func (m EditorModel) previewView(doc newsletter.Document) string {
	var b strings.Builder
	section := func(title, body string) {
		b.WriteString(m.styles.Label.Render(markup.StripToPlainText(title)))
		b.WriteString("\n")
		if body != "" {
			b.WriteString(markup.StripToPlainText(body))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section(doc.Title, "")
	section(doc.Hero.Title, doc.Hero.Content)
	for _, block := range doc.ContentBlocks {
		section(block.Title, block.Content)
	}

	b.WriteString(m.styles.Label.Render("Useful Resources"))
	b.WriteString("\n")
	for _, r := range doc.Resources {
		b.WriteString(markup.Bullet + r.Title + " (" + r.URL + ")\n")
		b.WriteString("  " + m.styles.Muted.Render(markup.StripToPlainText(r.Description)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(doc.Footer.Text))
	b.WriteString("\n")
	return b.String()
}

func singleLine(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s
}
