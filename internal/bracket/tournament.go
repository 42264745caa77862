package bracket

import (
	"encoding/json"
	"fmt"
)

type Decision struct {
	Stage  int   `json:"stage"`
	Match  int   `json:"match"`
	Winner Entry `json:"winner"`
	// Auto marks byes that were decided without a choice.
	Auto bool `json:"auto"`
}

// Tournament drives a bracket from its first undecided match to a champion. The
// cursor always points at an undecided match between two real entries unless the
// tournament is completed.
type Tournament struct {
	bracket  *Bracket
	stage    int
	match    int
	champion *Entry
	history  []Decision
}

func NewTournament(b *Bracket) (*Tournament, error) {
	if b == nil || len(b.Stages) == 0 {
		return nil, fmt.Errorf("%w: bracket has no stages", ErrBracketDefect)
	}

	t := &Tournament{bracket: b}
	for i := range b.Stages[0] {
		if w, ok := b.Stages[0][i].Winner(); ok {
			t.history = append(t.history, Decision{Stage: 0, Match: i, Winner: w, Auto: true})
		}
	}

	if err := t.settle(); err != nil {
		return nil, err
	}
	return t, nil
}

// Choose decides the current match for selected and moves the cursor to the next
// match that needs a choice, resolving any byes on the way.
func (t *Tournament) Choose(selected Entry) error {
	if t.IsCompleted() {
		return ErrTournamentCompleted
	}
	if selected.IsPlaceholder() {
		return fmt.Errorf("%w: placeholder %q cannot win", ErrNotInMatch, selected.ID)
	}

	slot, ok := t.current().SlotOf(selected.ID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotInMatch, selected.ID)
	}

	if err := t.decide(slot, false); err != nil {
		return err
	}
	if t.IsCompleted() {
		return nil
	}

	t.advance()
	return t.settle()
}

func (t *Tournament) ChooseByID(id string) error {
	m, ok := t.CurrentMatch()
	if !ok {
		return ErrTournamentCompleted
	}
	slot, ok := m.SlotOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotInMatch, id)
	}
	return t.Choose(m.Entry(slot))
}

func (t *Tournament) current() *Match {
	return &t.bracket.Stages[t.stage][t.match]
}

func (t *Tournament) decide(slot Slot, auto bool) error {
	m := t.current()
	if err := m.setWinner(slot); err != nil {
		return fmt.Errorf("stage %d match %d: %w", t.stage, t.match, err)
	}

	winner := m.Entry(slot)
	t.history = append(t.history, Decision{Stage: t.stage, Match: t.match, Winner: winner, Auto: auto})

	if t.bracket.isFinal(t.stage) {
		t.champion = &winner
		return nil
	}
	t.bracket.propagate(t.stage, t.match, winner)
	return nil
}

func (t *Tournament) advance() {
	t.match++
	if t.match >= len(t.bracket.Stages[t.stage]) {
		t.stage++
		t.match = 0
	}
}

// settle skips decided and void matches and resolves byes until the cursor rests on
// a real pairing or the tournament is over.
func (t *Tournament) settle() error {
	for {
		if t.stage >= len(t.bracket.Stages) {
			return fmt.Errorf("%w: ran out of matches without a champion", ErrBracketDefect)
		}

		m := t.current()
		switch {
		case m.IsDecided():
		case m.IsEmpty() && t.bracket.IsVoid(t.stage, t.match):
		default:
			if err := t.bracket.checkSlots(t.stage, t.match); err != nil {
				return err
			}
			if !m.IsBye() {
				return nil
			}

			slot, _ := m.SlotOf(m.byeEntry().ID)
			if err := t.decide(slot, true); err != nil {
				return err
			}
			if t.IsCompleted() {
				return nil
			}
		}

		t.advance()
	}
}

func (t *Tournament) IsCompleted() bool {
	return t.champion != nil
}

func (t *Tournament) Champion() (Entry, bool) {
	if t.champion == nil {
		return Entry{}, false
	}
	return *t.champion, true
}

func (t *Tournament) CurrentMatch() (Match, bool) {
	if t.IsCompleted() {
		return Match{}, false
	}
	return *t.current(), true
}

func (t *Tournament) Cursor() (stage, match int) {
	return t.stage, t.match
}

// Progress returns the 1-based position of the current match within its stage.
func (t *Tournament) Progress() (n, of int) {
	if t.IsCompleted() {
		return 0, 0
	}
	return t.match + 1, len(t.bracket.Stages[t.stage])
}

func (t *Tournament) CurrentStageLabel() string {
	stage := t.stage
	if t.IsCompleted() {
		stage = len(t.bracket.Stages) - 1
	}
	return StageLabel(stage, len(t.bracket.Stages))
}

// Bracket exposes the underlying bracket for rendering. Callers must not modify it.
func (t *Tournament) Bracket() *Bracket {
	return t.bracket
}

func (t *Tournament) History() []Decision {
	out := make([]Decision, len(t.history))
	copy(out, t.history)
	return out
}

type tournamentJSON struct {
	Bracket  *Bracket   `json:"bracket"`
	Stage    int        `json:"stage"`
	Match    int        `json:"match"`
	Champion *Entry     `json:"champion,omitempty"`
	History  []Decision `json:"history"`
}

func (t *Tournament) MarshalJSON() ([]byte, error) {
	return json.Marshal(tournamentJSON{
		Bracket:  t.bracket,
		Stage:    t.stage,
		Match:    t.match,
		Champion: t.champion,
		History:  t.history,
	})
}

func (t *Tournament) UnmarshalJSON(data []byte) error {
	var raw tournamentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Bracket == nil || len(raw.Bracket.Stages) == 0 {
		return fmt.Errorf("%w: snapshot has no bracket", ErrBracketDefect)
	}
	if raw.Champion == nil {
		if raw.Stage < 0 || raw.Stage >= len(raw.Bracket.Stages) ||
			raw.Match < 0 || raw.Match >= len(raw.Bracket.Stages[raw.Stage]) {
			return fmt.Errorf("%w: cursor (%d, %d) is outside the bracket", ErrBracketDefect, raw.Stage, raw.Match)
		}
	}

	*t = Tournament{
		bracket:  raw.Bracket,
		stage:    raw.Stage,
		match:    raw.Match,
		champion: raw.Champion,
		history:  raw.History,
	}
	return nil
}
