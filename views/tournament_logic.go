package views

import (
	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
)

type MatchCell struct {
	Stage    int
	Index    int
	First    bracket.Entry
	Second   bracket.Entry
	WinnerID string
	Current  bool
	Void     bool
}

type StageColumn struct {
	Label   string
	Matches []MatchCell
}

type BracketData struct {
	Stages []StageColumn
}

// TournamentData is everything the tournament page shows.
type TournamentData struct {
	StageLabel string
	MatchNum   int
	MatchCount int
	Current    *bracket.Match
	Champion   *bracket.Entry
	Bracket    BracketData
	Choices    int
}

func PrepareBracketData(t *bracket.Tournament) BracketData {
	b := t.Bracket()
	curStage, curMatch := t.Cursor()
	total := b.TotalStages()

	stages := make([]StageColumn, 0, total)
	for s, stage := range b.Stages {
		col := StageColumn{
			Label:   bracket.StageLabel(s, total),
			Matches: make([]MatchCell, 0, len(stage)),
		}
		for i, m := range stage {
			col.Matches = append(col.Matches, MatchCell{
				Stage:    s,
				Index:    i,
				First:    m.First,
				Second:   m.Second,
				WinnerID: m.WinnerID,
				Current:  !t.IsCompleted() && s == curStage && i == curMatch,
				Void:     m.IsEmpty() && b.IsVoid(s, i),
			})
		}
		stages = append(stages, col)
	}

	return BracketData{Stages: stages}
}

func PrepareTournamentData(t *bracket.Tournament) TournamentData {
	data := TournamentData{
		StageLabel: t.CurrentStageLabel(),
		Bracket:    PrepareBracketData(t),
	}
	data.MatchNum, data.MatchCount = t.Progress()

	if m, ok := t.CurrentMatch(); ok {
		data.Current = &m
	}
	if c, ok := t.Champion(); ok {
		data.Champion = &c
	}
	for _, d := range t.History() {
		if !d.Auto {
			data.Choices++
		}
	}
	return data
}
