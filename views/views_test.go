package views

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"testing"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/movie"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var (
	hxValsAttr   = regexp.MustCompile(`hx-vals="([^"]*)"`)
	hxDeleteAttr = regexp.MustCompile(`hx-delete="([^"]*)"`)
)

// decodeHxVals returns every hx-vals payload the way a browser hands it to htmx
func decodeHxVals(t *testing.T, page string) []map[string]string {
	t.Helper()

	var out []map[string]string
	for _, m := range hxValsAttr.FindAllStringSubmatch(page, -1) {
		var vals map[string]string
		require.NoError(t, json.Unmarshal([]byte(html.UnescapeString(m[1])), &vals), "hx-vals %q", m[1])
		out = append(out, vals)
	}
	return out
}

func newTournament(t *testing.T, n int) *bracket.Tournament {
	t.Helper()

	entries := make([]bracket.Entry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, bracket.NewEntry(fmt.Sprintf("tt%07d", i), fmt.Sprintf("Movie %d", i), ""))
	}
	b, err := bracket.Build(entries)
	require.NoError(t, err)
	tournament, err := bracket.NewTournament(b)
	require.NoError(t, err)
	return tournament
}

func TestPrepareBracketData(t *testing.T) {
	tournament := newTournament(t, 5)
	data := PrepareBracketData(tournament)

	require.Len(t, data.Stages, 3)
	assert.Equal(t, "Quarter-Finals", data.Stages[0].Label)
	assert.Equal(t, "Semi-Finals", data.Stages[1].Label)
	assert.Equal(t, "Final", data.Stages[2].Label)

	first := data.Stages[0].Matches
	require.Len(t, first, 4)
	assert.True(t, first[0].Current)
	assert.Equal(t, "tt0000005", first[2].WinnerID, "bye is decided at build time")
	assert.True(t, first[3].Void)
	assert.False(t, first[2].Void)
}

func TestPrepareTournamentData(t *testing.T) {
	tournament := newTournament(t, 2)

	data := PrepareTournamentData(tournament)
	require.NotNil(t, data.Current)
	assert.Nil(t, data.Champion)
	assert.Equal(t, "Final", data.StageLabel)
	assert.Equal(t, 1, data.MatchNum)
	assert.Equal(t, 1, data.MatchCount)

	require.NoError(t, tournament.ChooseByID("tt0000002"))
	data = PrepareTournamentData(tournament)
	assert.Nil(t, data.Current)
	require.NotNil(t, data.Champion)
	assert.Equal(t, "Movie 2", data.Champion.Title)
	assert.Equal(t, 1, data.Choices)
	assert.False(t, data.Bracket.Stages[0].Matches[0].Current)
}

func TestCandidateList(t *testing.T) {
	one := []bracket.Entry{bracket.NewEntry("tt0000001", "Alien", "")}
	page := render(t, CandidateList(one))
	assert.Contains(t, page, "Add at least 2 movies to start a tournament")
	assert.Contains(t, page, "<button disabled>")

	two := append(one, bracket.NewEntry("tt0000002", "Aliens", ""))
	page = render(t, CandidateList(two))
	assert.NotContains(t, page, "Add at least 2 movies")
	assert.Contains(t, page, `hx-post="/tournament"`)
	assert.Contains(t, page, `hx-delete="/candidates/tt0000002"`)
	assert.Contains(t, page, "https://www.imdb.com/title/tt0000001/")
}

func TestComponentsEscapeTitles(t *testing.T) {
	evil := bracket.NewEntry("tt0000001", `<script>alert("x")</script>`, "")

	page := render(t, CandidateList([]bracket.Entry{evil}))
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "&lt;script&gt;")

	page = render(t, SearchResults([]movie.Movie{{Title: "<b>bold</b>", ImdbID: "tt1"}}))
	assert.NotContains(t, page, "<b>")

}

func TestTournamentPage(t *testing.T) {
	tournament := newTournament(t, 3)

	page := render(t, TournamentPage(PrepareTournamentData(tournament)))
	assert.Contains(t, page, "<h1>Semi-Finals</h1>")
	assert.Contains(t, page, "Match 1 of 2")
	assert.Equal(t, []map[string]string{
		{"entry_id": "tt0000001"},
		{"entry_id": "tt0000002"},
	}, decodeHxVals(t, page))
	assert.Contains(t, page, "match-current")

	require.NoError(t, tournament.ChooseByID("tt0000001"))
	require.NoError(t, tournament.ChooseByID("tt0000003"))

	page = render(t, TournamentPage(PrepareTournamentData(tournament)))
	assert.Contains(t, page, "<h1>Winner</h1>")
	assert.Contains(t, page, "<h2>Movie 3</h2>")
	assert.Contains(t, page, "slot-winner")
	assert.NotContains(t, page, "match-current")
}

func TestSearchResults_Empty(t *testing.T) {
	assert.Contains(t, render(t, SearchResults(nil)), "No movies found.")
}

func TestComponents_AttributeContexts(t *testing.T) {
	awkward := `a"b/c d&e`
	other := "tt0000002"

	page := render(t, Matchup(bracket.Match{
		First:  bracket.NewEntry(awkward, "Awkward", ""),
		Second: bracket.NewEntry(other, "Plain", ""),
	}))
	assert.Equal(t, []map[string]string{
		{"entry_id": awkward},
		{"entry_id": other},
	}, decodeHxVals(t, page))

	page = render(t, SearchResults([]movie.Movie{{Title: "Awkward", ImdbID: awkward}}))
	assert.Equal(t, []map[string]string{{"imdb_id": awkward}}, decodeHxVals(t, page))

	page = render(t, CandidateList([]bracket.Entry{bracket.NewEntry(awkward, "Awkward", "")}))
	m := hxDeleteAttr.FindStringSubmatch(page)
	require.Len(t, m, 2)
	path := html.UnescapeString(m[1])
	assert.Equal(t, "/candidates/a%22b%2Fc%20d&e", path)
	assert.Contains(t, page, "https://www.imdb.com/title/a%22b%2Fc%20d&amp;e/")
}
