package bracket

type Slot int

const (
	FirstSlot  Slot = 1
	SecondSlot Slot = 2
)

// Match is one head-to-head pairing. WinnerID holds the ID of the winning side and
// is empty while the match is undecided.
type Match struct {
	First    Entry  `json:"first"`
	Second   Entry  `json:"second"`
	WinnerID string `json:"winner_id,omitempty"`
}

func (m *Match) IsDecided() bool {
	return m.WinnerID != ""
}

func (m *Match) Winner() (Entry, bool) {
	switch {
	case m.WinnerID == "":
		return Entry{}, false
	case m.WinnerID == m.First.ID:
		return m.First, true
	case m.WinnerID == m.Second.ID:
		return m.Second, true
	}
	return Entry{}, false
}

func (m *Match) IsWinner(slot Slot) bool {
	if !m.IsDecided() {
		return false
	}
	return m.Entry(slot).ID == m.WinnerID
}

func (m *Match) Entry(slot Slot) Entry {
	if slot == FirstSlot {
		return m.First
	}
	return m.Second
}

// SlotOf reports which side of the match holds the real entry with the given ID.
func (m *Match) SlotOf(id string) (Slot, bool) {
	if !m.First.IsPlaceholder() && m.First.ID == id {
		return FirstSlot, true
	}
	if !m.Second.IsPlaceholder() && m.Second.ID == id {
		return SecondSlot, true
	}
	return 0, false
}

// IsBye is true when exactly one side is a placeholder.
func (m *Match) IsBye() bool {
	return m.First.IsPlaceholder() != m.Second.IsPlaceholder()
}

func (m *Match) IsEmpty() bool {
	return m.First.IsPlaceholder() && m.Second.IsPlaceholder()
}

// byeEntry returns the real side of a bye.
func (m *Match) byeEntry() Entry {
	if m.First.IsPlaceholder() {
		return m.Second
	}
	return m.First
}

func (m *Match) setWinner(slot Slot) error {
	if m.IsDecided() {
		return ErrWinnerAlreadySet
	}
	m.WinnerID = m.Entry(slot).ID
	return nil
}

func (m *Match) fill(slot Slot, e Entry) {
	if slot == FirstSlot {
		m.First = e
	} else {
		m.Second = e
	}
}

// nextSlot is the slot in the following stage that the winner of match index i fills.
func nextSlot(i int) Slot {
	if i%2 == 0 {
		return FirstSlot
	}
	return SecondSlot
}
