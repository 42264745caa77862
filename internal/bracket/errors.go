package bracket

import "errors"

var (
	ErrNotEnoughEntries    = errors.New("at least 2 entries are required")
	ErrInvalidEntry        = errors.New("invalid entry")
	ErrNotInMatch          = errors.New("entry is not part of the current match")
	ErrTournamentCompleted = errors.New("tournament is already completed")
	ErrWinnerAlreadySet    = errors.New("match winner is already set")
	ErrBracketDefect       = errors.New("bracket defect")
)
