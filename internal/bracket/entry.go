package bracket

import (
	"fmt"

	"github.com/AdamBeresnev/movie-kombat/internal/poster"
)

type EntryKind string

const (
	MovieEntry       EntryKind = "movie"
	PlaceholderEntry EntryKind = "placeholder"
)

const (
	placeholderPrefix = "tbd"
	placeholderTitle  = "TBD"
)

// Entry is a tournament participant. Placeholders fill empty bracket slots.
type Entry struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Poster string    `json:"poster"`
	Kind   EntryKind `json:"kind"`
}

func NewEntry(id, title, posterRef string) Entry {
	return Entry{
		ID:     id,
		Title:  title,
		Poster: posterRef,
		Kind:   MovieEntry,
	}
}

func Placeholder(id string) Entry {
	return Entry{
		ID:     id,
		Title:  placeholderTitle,
		Poster: poster.Placeholder,
		Kind:   PlaceholderEntry,
	}
}

func (e Entry) IsPlaceholder() bool {
	return e.Kind == PlaceholderEntry
}

func paddingPlaceholder(slot int) Entry {
	return Placeholder(fmt.Sprintf("%s-%d", placeholderPrefix, slot))
}

func slotPlaceholder(stage, match int, slot Slot) Entry {
	return Placeholder(fmt.Sprintf("%s-%d-%d-%d", placeholderPrefix, stage, match, slot))
}
