package store

import "github.com/jackc/pgx/v5/pgtype"

type Category struct {
	ID   int32
	Type string
}

type Question struct {
	ID         int32
	Question   pgtype.Text
	Answer     pgtype.Text
	Category   pgtype.Int4
	Difficulty pgtype.Int4
}

type CategoryCount struct {
	CategoryID    int32
	Type          string
	QuestionCount int64
}
