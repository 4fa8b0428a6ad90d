package muxer

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"
	"golang.org/x/term"
)

var (
	pickerCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	pickerMatchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	pickerCountStyle  = lipgloss.NewStyle().Faint(true)
)

// Choose resolves a candidate list to at most one selection.
//
// An empty list yields no selection. A single candidate is accepted
// immediately without showing any UI. Otherwise an interactive fuzzy picker
// runs: case-insensitive matching, single selection, list cycling, seeded
// with the prompt label and initial query. A nil candidate with a nil error
// means the user cancelled — a normal outcome, not a failure.
func Choose(candidates []Candidate, prompt, query string) (*Candidate, error) {
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		c := candidates[0]
		return &c, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("interactive selection requires a terminal (try --list)")
	}

	m := newPickerModel(candidates, prompt, query)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	out, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	final := out.(pickerModel)
	if final.cancelled || final.choice == nil {
		return nil, nil
	}
	return final.choice, nil
}

type pickerItem struct {
	cand      Candidate
	score     int
	positions []int
}

type pickerModel struct {
	input    textinput.Model
	all      []Candidate
	filtered []pickerItem
	slab     *util.Slab

	selected int
	scroll   int
	height   int

	cancelled bool
	choice    *Candidate
}

func newPickerModel(candidates []Candidate, prompt, query string) pickerModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 256
	ti.PromptStyle = ti.PromptStyle.Bold(true)
	ti.SetValue(query)
	ti.Focus()

	m := pickerModel{
		input:  ti,
		all:    candidates,
		slab:   NewFuzzySlab(),
		height: 20,
	}
	m.recomputeFilter()
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Input line plus count line take two rows.
		m.height = maxInt(msg.Height-2, 1)
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if cur := m.current(); cur != nil {
				c := *cur
				m.choice = &c
			}
			return m, tea.Quit
		case "up", "ctrl+p", "shift+tab":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n", "tab":
			m.move(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.recomputeFilter()
	}
	return m, cmd
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(pickerCountStyle.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.all))))
	b.WriteString("\n")

	end := minInt(m.scroll+m.height, len(m.filtered))
	for i := m.scroll; i < end; i++ {
		item := m.filtered[i]
		if i == m.selected {
			b.WriteString(pickerCursorStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(highlightPositions(item.cand.Display(), item.positions))
		b.WriteString("\n")
	}
	return b.String()
}

// current returns the item under the cursor, or nil when the filter matched
// nothing.
func (m *pickerModel) current() *Candidate {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.selected].cand
}

// move shifts the cursor with wraparound, so the list cycles like fzf does.
func (m *pickerModel) move(delta int) {
	n := len(m.filtered)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
	m.clampScroll()
}

func (m *pickerModel) clampScroll() {
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	if m.selected >= m.scroll+m.height {
		m.scroll = m.selected - m.height + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// recomputeFilter re-scores every candidate against the current query. An
// empty query shows the full list in input order; otherwise candidates are
// ordered by descending score with display string as the tiebreak.
func (m *pickerModel) recomputeFilter() {
	query := strings.TrimSpace(m.input.Value())
	m.filtered = m.filtered[:0]

	if query == "" {
		for _, c := range m.all {
			m.filtered = append(m.filtered, pickerItem{cand: c})
		}
	} else {
		pattern := []rune(query)
		for _, c := range m.all {
			res := FuzzyMatch(c.Display(), pattern, m.slab)
			if res.Score <= 0 {
				continue
			}
			m.filtered = append(m.filtered, pickerItem{cand: c, score: res.Score, positions: res.Positions})
		}
		sort.SliceStable(m.filtered, func(i, j int) bool {
			if m.filtered[i].score != m.filtered[j].score {
				return m.filtered[i].score > m.filtered[j].score
			}
			return m.filtered[i].cand.Display() < m.filtered[j].cand.Display()
		})
	}

	if m.selected >= len(m.filtered) {
		m.selected = maxInt(len(m.filtered)-1, 0)
	}
	m.scroll = 0
	m.clampScroll()
}

// highlightPositions renders text with the matched rune indices emphasized.
func highlightPositions(text string, positions []int) string {
	if len(positions) == 0 {
		return text
	}
	matched := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		matched[p] = struct{}{}
	}
	var b strings.Builder
	for i, r := range []rune(text) {
		if _, ok := matched[i]; ok {
			b.WriteString(pickerMatchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
