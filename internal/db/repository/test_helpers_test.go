package repository

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/trivia-api/internal/db/store"
)

func questionRow(id int32, text string, category int32) store.Question {
	return store.Question{
		ID:         id,
		Question:   pgtype.Text{String: text, Valid: true},
		Answer:     pgtype.Text{String: "answer", Valid: true},
		Category:   pgtype.Int4{Int32: category, Valid: true},
		Difficulty: pgtype.Int4{Int32: 2, Valid: true},
	}
}
