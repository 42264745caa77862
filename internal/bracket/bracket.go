package bracket

import (
	"fmt"
	"math"
)

type Stage []Match

// Bracket holds every stage of a single elimination run. Stage 0 is the first round
// and the last stage contains only the final.
type Bracket struct {
	Stages   []Stage `json:"stages"`
	Entrants int     `json:"entrants"`
	Size     int     `json:"size"`
}

// Gets the nearest power of 2 while rounding up, so with input 5 it returns 8 and so on
func calcBracketSize(count int) int {
	if count <= 1 {
		return count
	}

	// Log2 -> Ceil -> 2^^log2 to round up
	log2 := math.Ceil(math.Log2(float64(count)))
	return int(math.Pow(2, log2))
}

// Build turns an ordered list of entries into a complete bracket. The entries keep
// their order and the remaining slots up to the next power of two are padded with
// placeholders. First round byes are decided before Build returns.
func Build(entries []Entry) (*Bracket, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughEntries, len(entries))
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.IsPlaceholder() {
			return nil, fmt.Errorf("%w: %q is a placeholder", ErrInvalidEntry, e.ID)
		}
		if _, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidEntry, e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	size := calcBracketSize(len(entries))
	totalStages := int(math.Log2(float64(size)))

	padded := make([]Entry, size)
	copy(padded, entries)
	for i := len(entries); i < size; i++ {
		padded[i] = paddingPlaceholder(i)
	}

	stages := make([]Stage, totalStages)

	stages[0] = make(Stage, 0, size/2)
	for i := 0; i < size; i += 2 {
		stages[0] = append(stages[0], Match{First: padded[i], Second: padded[i+1]})
	}

	for s := 1; s < totalStages; s++ {
		count := len(stages[s-1]) / 2
		stages[s] = make(Stage, count)
		for i := range stages[s] {
			stages[s][i] = Match{
				First:  slotPlaceholder(s, i, FirstSlot),
				Second: slotPlaceholder(s, i, SecondSlot),
			}
		}
	}

	b := &Bracket{
		Stages:   stages,
		Entrants: len(entries),
		Size:     size,
	}

	// Check for byes immediately
	for i := range b.Stages[0] {
		m := &b.Stages[0][i]
		if !m.IsBye() {
			continue
		}
		slot, _ := m.SlotOf(m.byeEntry().ID)
		if err := m.setWinner(slot); err != nil {
			return nil, err
		}
		b.propagate(0, i, m.byeEntry())
	}

	return b, nil
}

func (b *Bracket) TotalStages() int {
	return len(b.Stages)
}

func (b *Bracket) isFinal(stage int) bool {
	return stage == len(b.Stages)-1
}

// propagate moves a winner into its slot in the following stage.
func (b *Bracket) propagate(stage, match int, winner Entry) {
	if b.isFinal(stage) {
		return
	}
	b.Stages[stage+1][match/2].fill(nextSlot(match), winner)
}

// Seeds returns the padded first round participants in bracket order.
func (b *Bracket) Seeds() []Entry {
	seeds := make([]Entry, 0, b.Size)
	for _, m := range b.Stages[0] {
		seeds = append(seeds, m.First, m.Second)
	}
	return seeds
}

// IsVoid reports whether no real entry can ever reach the match. Void matches are
// skipped and never decided.
func (b *Bracket) IsVoid(stage, match int) bool {
	if stage == 0 {
		return b.Stages[0][match].IsEmpty()
	}
	return b.IsVoid(stage-1, 2*match) && b.IsVoid(stage-1, 2*match+1)
}

// checkSlots verifies that every placeholder in a reachable match is backed by a
// void feeder match.
func (b *Bracket) checkSlots(stage, match int) error {
	if stage == 0 {
		return nil
	}
	m := &b.Stages[stage][match]
	if m.First.IsPlaceholder() && !b.IsVoid(stage-1, 2*match) {
		return fmt.Errorf("%w: stage %d match %d first slot was never filled", ErrBracketDefect, stage, match)
	}
	if m.Second.IsPlaceholder() && !b.IsVoid(stage-1, 2*match+1) {
		return fmt.Errorf("%w: stage %d match %d second slot was never filled", ErrBracketDefect, stage, match)
	}
	return nil
}
