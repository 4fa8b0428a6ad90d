package muxer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pickerCandidates() []Candidate {
	return []Candidate{
		{Kind: KindSSHHost, Alias: "prod-db"},
		{Kind: KindDirectory, Path: "/home/u/code/alpha", Rel: "code/alpha"},
		{Kind: KindDirectory, Path: "/home/u/code/beta", Rel: "code/beta"},
		{Kind: KindDirectory, Path: "/home/u/notes", Rel: "notes"},
	}
}

func TestChoose_EmptyListIsNoSelection(t *testing.T) {
	got, err := Choose(nil, "SESSION > ", "")
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no selection, got %v", got)
	}
}

func TestChoose_SingleCandidateSkipsUI(t *testing.T) {
	// Runs without a terminal: the single-candidate path must short-circuit
	// before any TTY check or UI construction.
	only := Candidate{Kind: KindDirectory, Path: "/home/u/notes", Rel: "notes"}
	got, err := Choose([]Candidate{only}, "SESSION > ", "")
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if got == nil || got.Rel != "notes" {
		t.Fatalf("expected auto-accepted candidate, got %v", got)
	}
}

func TestPickerModel_EmptyQueryShowsAllInInputOrder(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "")
	if len(m.filtered) != 4 {
		t.Fatalf("expected all candidates visible, got %d", len(m.filtered))
	}
	if m.filtered[0].cand.Display() != "ssh: prod-db" {
		t.Fatalf("expected input order preserved, got %q first", m.filtered[0].cand.Display())
	}
}

func TestPickerModel_SeededQueryFilters(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "alpha")
	if len(m.filtered) != 1 || m.filtered[0].cand.Rel != "code/alpha" {
		t.Fatalf("expected seeded query to pre-filter, got %v", m.filtered)
	}
}

func TestPickerModel_FilterNarrowsAndRestores(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "")

	m.input.SetValue("code")
	m.recomputeFilter()
	if len(m.filtered) != 2 {
		t.Fatalf("expected two code/ matches, got %d", len(m.filtered))
	}

	m.input.SetValue("")
	m.recomputeFilter()
	if len(m.filtered) != 4 {
		t.Fatalf("expected full list after clearing query, got %d", len(m.filtered))
	}
}

func TestPickerModel_CursorCycles(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "")

	m.move(-1)
	if m.selected != 3 {
		t.Fatalf("expected wraparound to last entry, got %d", m.selected)
	}
	m.move(1)
	if m.selected != 0 {
		t.Fatalf("expected wraparound back to first entry, got %d", m.selected)
	}
}

func TestPickerModel_EnterSelectsCurrent(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "")
	m.move(1)

	out, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := out.(pickerModel)
	if final.cancelled {
		t.Fatal("enter must not cancel")
	}
	if final.choice == nil || final.choice.Rel != "code/alpha" {
		t.Fatalf("expected code/alpha selected, got %v", final.choice)
	}
}

func TestPickerModel_EscapeCancels(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "")

	out, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	final := out.(pickerModel)
	if !final.cancelled || final.choice != nil {
		t.Fatalf("expected cancellation, got cancelled=%v choice=%v", final.cancelled, final.choice)
	}
}

func TestPickerModel_EnterOnEmptyFilterIsNoSelection(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "")
	m.input.SetValue("zzz-no-match")
	m.recomputeFilter()
	if len(m.filtered) != 0 {
		t.Fatalf("expected empty filter, got %d", len(m.filtered))
	}

	out, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := out.(pickerModel)
	if final.choice != nil {
		t.Fatalf("expected no selection with empty filter, got %v", final.choice)
	}
}

func TestPickerModel_TypingUpdatesFilter(t *testing.T) {
	m := newPickerModel(pickerCandidates(), "SESSION > ", "")

	out, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	next := out.(pickerModel)
	// "notes" is the only candidate containing an 'n'.
	if len(next.filtered) != 1 || next.filtered[0].cand.Rel != "notes" {
		t.Fatalf("expected typing to refilter to notes, got %v", next.filtered)
	}
}
