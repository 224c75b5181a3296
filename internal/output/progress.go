package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Upload item statuses
const (
	StatusPending   = "pending"
	StatusUploading = "uploading"
	StatusDone      = "done"
	StatusError     = "error"
)

// UploadItem represents one file whose content is being uploaded as a blob
type UploadItem struct {
	Path   string
	Status string
	SHA    string
	Error  error
}

// UploadProgress defines the interface for blob upload progress display
type UploadProgress interface {
	// Start initializes the UI with the files to upload
	Start(items []UploadItem)
	// UpdateItem updates the status of a specific item
	UpdateItem(idx int, status string, sha string, err error)
	// Complete finalizes the UI
	Complete()
}

// NewUploadProgress creates the appropriate progress UI based on TTY availability
func NewUploadProgress(splog *Splog) UploadProgress {
	if IsTTY() {
		return NewTTYUploadProgress()
	}
	return NewSimpleUploadProgress(splog)
}

// NopUploadProgress is a progress display that does nothing
type NopUploadProgress struct{}

func (NopUploadProgress) Start([]UploadItem)                    {}
func (NopUploadProgress) UpdateItem(int, string, string, error) {}
func (NopUploadProgress) Complete()                             {}

// SimpleUploadProgress prints progress line by line (non-TTY)
type SimpleUploadProgress struct {
	splog     *Splog
	items     []UploadItem
	completed int
	failed    int
}

// NewSimpleUploadProgress creates a new simple progress UI
func NewSimpleUploadProgress(splog *Splog) *SimpleUploadProgress {
	return &SimpleUploadProgress{splog: splog}
}

func (p *SimpleUploadProgress) Start(items []UploadItem) {
	p.items = items
	p.completed = 0
	p.failed = 0
}

func (p *SimpleUploadProgress) UpdateItem(idx int, status string, sha string, err error) {
	if idx >= len(p.items) {
		return
	}

	item := p.items[idx]

	switch status {
	case StatusUploading:
		p.splog.Info("  ⋯ uploading %s...", item.Path)

	case StatusDone:
		p.completed++
		p.splog.Info("  ✓ %s → %s", item.Path, sha)

	case StatusError:
		p.failed++
		p.splog.Info("  ✗ %s failed: %v", item.Path, err)
	}

	p.items[idx].Status = status
	p.items[idx].SHA = sha
	p.items[idx].Error = err
}

func (p *SimpleUploadProgress) Complete() {
	if p.failed > 0 {
		p.splog.Info("Uploaded: %d, Failed: %d", p.completed, p.failed)
	}
}

// TTYUploadProgress uses bubbletea for animated progress (TTY)
type TTYUploadProgress struct {
	items   []UploadItem
	program *tea.Program
	model   *ttyProgressModel
}

// NewTTYUploadProgress creates a new TTY progress UI
func NewTTYUploadProgress() *TTYUploadProgress {
	return &TTYUploadProgress{}
}

func (p *TTYUploadProgress) Start(items []UploadItem) {
	p.items = make([]UploadItem, len(items))
	copy(p.items, items)

	p.model = newTTYProgressModel(p.items)
	p.program = tea.NewProgram(p.model, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))

	go func() {
		_, _ = p.program.Run()
	}()
}

func (p *TTYUploadProgress) UpdateItem(idx int, status string, sha string, err error) {
	if p.program == nil {
		return
	}
	p.program.Send(progressUpdateMsg{
		idx:    idx,
		status: status,
		sha:    sha,
		err:    err,
	})
}

func (p *TTYUploadProgress) Complete() {
	if p.program == nil {
		return
	}
	p.program.Send(progressCompleteMsg{})
	p.program.Wait()
}

// Internal bubbletea model for TTY progress
type ttyProgressModel struct {
	items   []UploadItem
	spinner spinner.Model
	done    bool
	styles  progressStyles
}

type progressStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	pathStyle    lipgloss.Style
	shaStyle     lipgloss.Style
	dimStyle     lipgloss.Style
}

type progressUpdateMsg struct {
	idx    int
	status string
	sha    string
	err    error
}

type progressCompleteMsg struct{}

func newTTYProgressModel(items []UploadItem) *ttyProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &ttyProgressModel{
		items:   items,
		spinner: s,
		styles: progressStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			pathStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			shaStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (m *ttyProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *ttyProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressUpdateMsg:
		if msg.idx < len(m.items) {
			m.items[msg.idx].Status = msg.status
			m.items[msg.idx].SHA = msg.sha
			m.items[msg.idx].Error = msg.err
		}
		return m, m.spinner.Tick

	case progressCompleteMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *ttyProgressModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	for i, item := range m.items {
		var icon string
		var status string

		switch item.Status {
		case StatusPending:
			icon = m.styles.dimStyle.Render("○")
			status = m.styles.dimStyle.Render("pending")
		case StatusUploading:
			icon = m.spinner.View()
			status = m.styles.spinnerStyle.Render("uploading...")
		case StatusDone:
			icon = m.styles.doneStyle.Render("✓")
			status = m.styles.shaStyle.Render(item.SHA)
		case StatusError:
			icon = m.styles.errorStyle.Render("✗")
			status = m.styles.errorStyle.Render("failed")
		}

		path := m.styles.pathStyle.Render(item.Path)
		line := fmt.Sprintf("  %s %s %s", icon, path, status)

		if item.Status == StatusError && item.Error != nil {
			line += " " + m.styles.errorStyle.Render(item.Error.Error())
		}

		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	return b.String()
}
