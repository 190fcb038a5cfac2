package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const questionColumns = `id, question, answer, category, difficulty`

const listQuestions = `
SELECT ` + questionColumns + `
FROM questions
WHERE question IS NOT NULL
ORDER BY id`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const searchQuestions = `
SELECT ` + questionColumns + `
FROM questions
WHERE question ILIKE $1 ESCAPE '\'
ORDER BY id`

// SearchQuestions matches pattern with ILIKE; callers build the pattern.
func (q *Queries) SearchQuestions(ctx context.Context, pattern string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, pattern)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const listQuestionsByCategory = `
SELECT ` + questionColumns + `
FROM questions
WHERE category = $1 AND question IS NOT NULL
ORDER BY id`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int32) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, category)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

const getQuestion = `
SELECT ` + questionColumns + `
FROM questions
WHERE id = $1`

func (q *Queries) GetQuestion(ctx context.Context, id int32) (Question, error) {
	return scanQuestion(q.db.QueryRow(ctx, getQuestion, id))
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING ` + questionColumns

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	return scanQuestion(q.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.Category,
		arg.Difficulty,
	))
}

const updateQuestion = `
UPDATE questions SET
    question   = COALESCE($2, question),
    answer     = COALESCE($3, answer),
    category   = COALESCE($4, category),
    difficulty = COALESCE($5, difficulty)
WHERE id = $1
RETURNING ` + questionColumns

// UpdateQuestionParams leaves a column untouched when its field is not Valid.
type UpdateQuestionParams struct {
	ID         int32
	Question   pgtype.Text
	Answer     pgtype.Text
	Category   pgtype.Int4
	Difficulty pgtype.Int4
}

func (q *Queries) UpdateQuestion(ctx context.Context, arg UpdateQuestionParams) (Question, error) {
	return scanQuestion(q.db.QueryRow(ctx, updateQuestion,
		arg.ID,
		arg.Question,
		arg.Answer,
		arg.Category,
		arg.Difficulty,
	))
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

// DeleteQuestion returns the number of rows removed (0 or 1).
func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanQuestion(row pgx.Row) (Question, error) {
	var i Question
	err := row.Scan(
		&i.ID,
		&i.Question,
		&i.Answer,
		&i.Category,
		&i.Difficulty,
	)
	return i, err
}

func collectQuestions(rows pgx.Rows) ([]Question, error) {
	defer rows.Close()
	items := []Question{}
	for rows.Next() {
		i, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
