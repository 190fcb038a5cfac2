package trivia

// PageSize is the number of questions returned per listing page.
const PageSize = 10

// Difficulty bounds accepted on create and update.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is a single trivia record as served to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category labels a group of questions.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap renders categories the way clients expect them: id -> type.
func CategoryMap(categories []Category) map[int]string {
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}
