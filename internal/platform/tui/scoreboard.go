package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	boardRows = 50 // Rows loaded into the table
	cardWidth = 24
)

var (
	cardStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Width(cardWidth).Padding(0, 1)
	cardActiveStyle = cardStyle.BorderForeground(lipgloss.Color("154"))
	cardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// boardView selects what the score table lists.
type boardView int

const (
	viewRuns    boardView = iota // Best single games
	viewPlayers                  // Best game of each player
)

func (v boardView) String() string {
	if v == viewPlayers {
		return "best per player"
	}
	return "top runs"
}

// ruleDescriber is implemented by variants that can explain their boundary rule.
type ruleDescriber interface {
	Rules() string
}

// variantCard summarises one variant above the table.
type variantCard struct {
	id    string
	title string
	rules string
	stats storage.GameStats
}

type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	View   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.View, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scroll, k.Next, k.Prev}, {k.View, k.Back, k.Quit}}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next variant")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev variant")),
		View:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "runs/players")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows a card per variant and a score table for the
// selected one.
type ScoreboardModel struct {
	store    *storage.Store
	logger   *log.Logger
	cards    []variantCard
	current  int
	view     boardView
	empty    bool
	table    table.Model
	keys     scoreboardKeys
	help     help.Model
	width    int
	height   int
	back     bool
	quitting bool
}

// NewScoreboardModel loads totals for every variant and the table of the
// first one. A nil logger discards load errors.
func NewScoreboardModel(store *storage.Store, width, height int, logger *log.Logger) ScoreboardModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		logger: logger,
		keys:   newScoreboardKeys(),
		help:   h,
		width:  width,
		height: height,
	}
	m.cards = m.loadCards()
	m.reload()
	return m
}

func (m *ScoreboardModel) loadCards() []variantCard {
	var totals map[string]*storage.GameStats
	if m.store != nil {
		all, err := m.store.AllGamesStats()
		if err != nil {
			m.logger.Warn("could not load score totals", "error", err)
		}
		totals = all
	}

	games := registry.List()
	cards := make([]variantCard, 0, len(games))
	for _, info := range games {
		card := variantCard{id: info.ID, title: info.Title}
		if g, err := registry.Create(info.ID, config.DefaultSnakeConfig()); err == nil {
			if r, ok := g.(ruleDescriber); ok {
				card.rules = r.Rules()
			}
		}
		if st, ok := totals[info.ID]; ok {
			card.stats = *st
		}
		cards = append(cards, card)
	}
	return cards
}

// reload rebuilds the table for the current variant and view.
func (m *ScoreboardModel) reload() {
	var (
		cols []table.Column
		rows []table.Row
	)

	switch m.view {
	case viewPlayers:
		cols = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: 16},
			{Title: "Best", Width: 6},
			{Title: "Games", Width: 6},
			{Title: "Last", Width: 12},
		}
		for i, r := range m.leaderboard() {
			rows = append(rows, table.Row{
				strconv.Itoa(i + 1),
				r.Player,
				strconv.Itoa(r.Best),
				strconv.Itoa(r.Games),
				r.LastPlayed.Format("Jan 02 15:04"),
			})
		}
	default:
		cols = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 6},
			{Title: "Player", Width: 16},
			{Title: "Played", Width: 12},
		}
		for i, e := range m.topRuns() {
			rows = append(rows, table.Row{
				strconv.Itoa(i + 1),
				strconv.Itoa(e.Score),
				e.Player,
				e.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("10"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("154"))

	m.empty = len(rows) == 0
	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-16, 3)),
		table.WithStyles(styles),
	)
}

func (m *ScoreboardModel) currentID() string {
	if len(m.cards) == 0 {
		return ""
	}
	return m.cards[m.current].id
}

func (m *ScoreboardModel) topRuns() []storage.ScoreEntry {
	if m.store == nil || len(m.cards) == 0 {
		return nil
	}
	entries, err := m.store.TopScores(m.currentID(), boardRows)
	if err != nil {
		m.logger.Warn("could not load scores", "game", m.currentID(), "error", err)
		return nil
	}
	return entries
}

func (m *ScoreboardModel) leaderboard() []storage.PlayerRecord {
	if m.store == nil || len(m.cards) == 0 {
		return nil
	}
	records, err := m.store.Leaderboard(m.currentID(), boardRows)
	if err != nil {
		m.logger.Warn("could not load leaderboard", "game", m.currentID(), "error", err)
		return nil
	}
	return records
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.cards) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.cards)) % len(m.cards)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles keys and window resizes.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.View):
			if m.view == viewRuns {
				m.view = viewPlayers
			} else {
				m.view = viewRuns
			}
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the cards, the table and the key help.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderCards()))
	b.WriteString("\n\n")

	if len(m.cards) > 0 {
		label := fmt.Sprintf("%s: %s", m.cards[m.current].title, m.view)
		b.WriteString(centerText(cardDimStyle.Render(label), m.width))
		b.WriteString("\n")
	}

	body := m.table.View()
	if m.empty {
		body = cardDimStyle.Italic(true).Render("No finished games yet.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuHelpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// renderCards lays the variant cards side by side, or shows only the
// selected one when they do not fit.
func (m ScoreboardModel) renderCards() string {
	rendered := make([]string, len(m.cards))
	for i, c := range m.cards {
		style := cardStyle
		if i == m.current {
			style = cardActiveStyle
		}

		lines := []string{cardTitleStyle.Render(c.title), cardDimStyle.Render(c.rules), ""}
		if c.stats.GamesCount == 0 {
			lines = append(lines, "no games yet")
		} else {
			lines = append(lines,
				fmt.Sprintf("best %d  avg %.1f", c.stats.HighScore, c.stats.AvgScore),
				fmt.Sprintf("%d games, %d players", c.stats.GamesCount, c.stats.Players),
			)
		}
		rendered[i] = style.Render(strings.Join(lines, "\n"))
	}

	if len(rendered) == 0 {
		return ""
	}
	if m.width < len(rendered)*(cardWidth+5) {
		return rendered[m.current]
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the user leaves it. It returns
// true when the user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int, logger *log.Logger) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height, logger),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
