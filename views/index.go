package views

import (
	"context"
	"io"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/movie"
	"github.com/a-h/templ"
)

const MinCandidates = 2

type IndexData struct {
	Candidates      []bracket.Entry
	HasAPIKey       bool
	TournamentReady bool
}

func Index(data IndexData) templ.Component {
	return Layout("Pick your movies", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<section class="settings"><form hx-post="/settings/api-key" hx-target="#api-key-status">`)
		h.raw(`<label for="api_key">OMDb API key</label>`)
		h.raw(`<input type="password" id="api_key" name="api_key" autocomplete="off" placeholder="Leave empty to use the server key">`)
		h.raw(`<button type="submit">Save</button></form>`)
		h.component(ctx, APIKeyStatus(data.HasAPIKey))
		h.raw(`</section>`)

		h.raw(`<section class="search">`)
		h.raw(`<input type="search" name="q" placeholder="Search movies" hx-get="/search" hx-trigger="input changed delay:500ms, search" hx-target="#search-results">`)
		h.raw(`<form hx-post="/candidates" hx-target="#candidates" hx-on::after-request="this.reset()">`)
		h.raw(`<input type="text" name="title" placeholder="Or add an exact title">`)
		h.raw(`<button type="submit">Add</button></form>`)
		h.raw(`<div id="search-results"></div></section>`)

		h.raw(`<section id="candidates">`)
		h.component(ctx, CandidateList(data.Candidates))
		h.raw(`</section>`)

		if data.TournamentReady {
			h.raw(`<p><a href="/tournament">Resume the current tournament</a></p>`)
		}
		return h.err
	}))
}

func APIKeyStatus(hasKey bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<p id="api-key-status">`)
		if hasKey {
			h.raw(`Movie search is ready.`)
		} else {
			h.raw(`Set an OMDb API key to search for movies.`)
		}
		h.raw(`</p>`)
		return h.err
	})
}

func SearchResults(results []movie.Movie) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		if len(results) == 0 {
			h.raw(`<p class="empty">No movies found.</p>`)
			return h.err
		}

		h.raw(`<ul class="results">`)
		for _, m := range results {
			e := m.Entry()
			h.raw(`<li class="result">`)
			h.rawf(`<img src="%s" alt="" loading="lazy">`, esc(e.Poster))
			h.raw(`<span class="title">`)
			h.text(m.Title)
			h.raw(`</span> <span class="year">`)
			h.text(m.Year)
			h.raw(`</span>`)
			h.raw(`<button hx-post="/candidates" hx-target="#candidates"`)
			h.hxVals(map[string]string{"imdb_id": m.ImdbID})
			h.raw(`>Add</button>`)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
		return h.err
	})
}

func CandidateList(entries []bracket.Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.rawf(`<h2>Candidates (%d)</h2>`, len(entries))

		if len(entries) > 0 {
			h.raw(`<ul class="candidates">`)
			for _, e := range entries {
				h.raw(`<li class="candidate">`)
				h.rawf(`<img src="%s" alt="" loading="lazy">`, esc(e.Poster))
				h.rawf(`<a href="%s" target="_blank" rel="noopener">`, esc(movie.IMDbURL(e.ID)))
				h.text(e.Title)
				h.raw(`</a>`)
				h.raw(`<button`)
				h.attr("hx-delete", candidatePath(e.ID))
				h.raw(` hx-target="#candidates" aria-label="Remove">&times;</button>`)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}

		if len(entries) < MinCandidates {
			h.raw(`<p class="hint">Add at least 2 movies to start a tournament</p>`)
			h.raw(`<button disabled>Start tournament</button>`)
		} else {
			h.raw(`<button hx-post="/tournament" class="primary">Start tournament</button>`)
		}
		return h.err
	})
}
