package views

import (
	"context"
	"io"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/a-h/templ"
)

func TournamentPage(data TournamentData) templ.Component {
	return Layout(data.StageLabel, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		if data.Champion != nil {
			h.component(ctx, Champion(*data.Champion, data.Choices))
		} else if data.Current != nil {
			h.raw(`<h1>`)
			h.text(data.StageLabel)
			h.raw(`</h1>`)
			h.rawf(`<p class="progress">Match %d of %d</p>`, data.MatchNum, data.MatchCount)
			h.component(ctx, Matchup(*data.Current))
		}

		h.component(ctx, Bracket(data.Bracket))
		h.raw(`<button hx-post="/tournament/reset" hx-confirm="Throw away this tournament?">Start over</button>`)
		return h.err
	}))
}

// Matchup lets the user pick the winner of the current match.
func Matchup(m bracket.Match) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="matchup">`)
		for i, e := range []bracket.Entry{m.First, m.Second} {
			if i == 1 {
				h.raw(`<span class="versus">VS</span>`)
			}
			h.raw(`<button class="contender" hx-post="/tournament/choose"`)
			h.hxVals(map[string]string{"entry_id": e.ID})
			h.raw(`>`)
			h.rawf(`<img src="%s" alt="">`, esc(e.Poster))
			h.raw(`<span class="title">`)
			h.text(e.Title)
			h.raw(`</span></button>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

func Champion(e bracket.Entry, choices int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="champion"><h1>Winner</h1>`)
		h.rawf(`<img src="%s" alt="">`, esc(e.Poster))
		h.raw(`<h2>`)
		h.text(e.Title)
		h.raw(`</h2>`)
		h.rawf(`<p>Decided in %d matches.</p>`, choices)
		h.raw(`</section>`)
		return h.err
	})
}

func Bracket(data BracketData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="bracket">`)
		for _, stage := range data.Stages {
			h.raw(`<div class="stage"><h3>`)
			h.text(stage.Label)
			h.raw(`</h3>`)
			for _, c := range stage.Matches {
				if c.Void {
					h.raw(`<div class="match match-void"></div>`)
					continue
				}
				class := "match"
				if c.Current {
					class += " match-current"
				}
				h.rawf(`<div class="%s">`, class)
				for _, e := range []bracket.Entry{c.First, c.Second} {
					h.rawf(`<div class="%s">`, cellClass(c, e))
					h.text(e.Title)
					h.raw(`</div>`)
				}
				h.raw(`</div>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
