package playcmder

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/papercomputeco/thoughtstream/pkg/cliui"
	"github.com/papercomputeco/thoughtstream/pkg/player"
	"github.com/papercomputeco/thoughtstream/pkg/thought"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

// tickInterval is the wall-clock frame interval; the virtual clock advances
// by tickInterval scaled by the playback speed on every frame.
const tickInterval = 100 * time.Millisecond

// seekStep is how far one left/right keypress moves the virtual clock.
const seekStep = 500 * time.Millisecond

var (
	playTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	playMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	playDividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	playBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	playEdgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

type playKeyMap struct {
	Toggle  key.Binding
	Back    key.Binding
	Forward key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k playKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Back, k.Forward, k.Restart, k.Quit}
}

func (k playKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Back, k.Forward}, {k.Restart, k.Quit}}
}

func defaultKeyMap() playKeyMap {
	return playKeyMap{
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "back")),
		Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "forward")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type playTickMsg time.Time

type playModel struct {
	recording *player.Recording
	player    *player.Player
	speed     float64
	width     int
	height    int
	keys      playKeyMap
	help      help.Model
}

func runPlayTUI(ctx context.Context, rec *player.Recording, speed float64) error {
	model := playModel{
		recording: rec,
		player:    player.New(rec.Nodes),
		speed:     speed,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func (m playModel) Init() bubbletea.Cmd {
	return nil
}

func (m playModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case playTickMsg:
		if !m.player.Playing() {
			return m, nil
		}
		m.player.Advance(time.Duration(float64(tickInterval) * m.speed))
		if !m.player.Playing() {
			return m, nil
		}
		return m, playTick()
	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m playModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit
	case key.Matches(msg, m.keys.Toggle):
		wasPlaying := m.player.Playing()
		m.player.Toggle()
		if !wasPlaying && m.player.Playing() {
			return m, playTick()
		}
	case key.Matches(msg, m.keys.Back):
		m.player.Seek(m.player.Now().Add(-seekStep))
	case key.Matches(msg, m.keys.Forward):
		m.player.Seek(m.player.Now().Add(seekStep))
	case key.Matches(msg, m.keys.Restart):
		m.player.Reset()
		m.player.Toggle()
		return m, playTick()
	}

	return m, nil
}

func (m playModel) View() string {
	lines := make([]string, 0, m.player.Len()+8)

	headerLeft := playTitleStyle.Render("thoughtstream play")
	headerRight := playMutedStyle.Render(fmt.Sprintf("%s via %s", m.recording.ModelID, m.recording.Provider))
	lines = append(lines, renderHeaderLine(m.width, headerLeft, headerRight), renderRule(m.width))

	prompt := strings.TrimSpace(m.recording.Prompt)
	if prompt != "" {
		lines = append(lines, playMutedStyle.Render(truncateText("prompt: "+prompt, max(m.width, 40))))
	}
	lines = append(lines, "")

	visible := m.player.Visible()
	maxRows := m.visibleRows()
	start := 0
	if len(visible) > maxRows {
		start = len(visible) - maxRows
	}
	for _, node := range visible[start:] {
		lines = append(lines, renderNodeLine(m.width, node))
	}
	for i := len(visible) - start; i < maxRows; i++ {
		lines = append(lines, "")
	}

	lines = append(lines, "", m.viewProgress(), m.viewFooter())

	return strings.Join(lines, "\n")
}

func (m playModel) visibleRows() int {
	// header + rule + prompt + blank above, progress + footer + blank below
	reserved := 7
	rows := m.height - reserved
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m playModel) viewProgress() string {
	barWidth := m.width - 30
	if barWidth < 16 {
		barWidth = 16
	}

	filled := int(m.player.Progress() * float64(barWidth))
	filled = min(max(filled, 0), barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	state := "paused"
	if m.player.Playing() {
		state = "playing"
	}

	return fmt.Sprintf("%s %s %s",
		playBarStyle.Render(bar),
		playMutedStyle.Render(fmt.Sprintf("%d/%d nodes", len(m.player.Visible()), m.player.Len())),
		playMutedStyle.Render(fmt.Sprintf("%s ×%.1f", state, m.speed)),
	)
}

func (m playModel) viewFooter() string {
	return playMutedStyle.Render(m.help.View(m.keys))
}

func playTick() bubbletea.Cmd {
	return bubbletea.Tick(tickInterval, func(t time.Time) bubbletea.Msg {
		return playTickMsg(t)
	})
}

func renderNodeLine(width int, node thought.Node) string {
	style := cliui.CategoryStyle(node.Category)

	edges := ""
	if len(node.Connections) > 0 {
		edges = playEdgeStyle.Render("→ " + strings.Join(node.Connections, " "))
	}

	line := fmt.Sprintf("  %s %s %s %s",
		style.Render(fmt.Sprintf("%-10s", node.ID)),
		playMutedStyle.Render(fmt.Sprintf("%-10s", string(node.Category))),
		truncateText(node.Text, max(width-44, 20)),
		edges,
	)
	return line
}

func renderHeaderLine(width int, left, right string) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	if leftWidth+rightWidth+1 >= lineWidth {
		return strings.TrimSpace(left + " " + right)
	}
	spacing := lineWidth - leftWidth - rightWidth
	return left + strings.Repeat(" ", spacing) + right
}

func renderRule(width int) string {
	lineWidth := width
	if lineWidth <= 0 {
		lineWidth = 80
	}
	return playDividerStyle.Render(strings.Repeat("─", lineWidth))
}

func truncateText(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}
