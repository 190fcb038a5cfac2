package store

import "context"

const listCategories = `
SELECT id, type
FROM categories
ORDER BY id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.ID, &i.Type); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countQuestionsByCategory = `
SELECT c.id, c.type, COUNT(q.id)
FROM categories c
LEFT JOIN questions q ON q.category = c.id AND q.question IS NOT NULL
GROUP BY c.id, c.type
ORDER BY c.id`

func (q *Queries) CountQuestionsByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := q.db.Query(ctx, countQuestionsByCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CategoryCount{}
	for rows.Next() {
		var i CategoryCount
		if err := rows.Scan(&i.CategoryID, &i.Type, &i.QuestionCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
