package trivia

// Paginate returns the 1-based page of candidates. Pages past the end, a page
// below 1 or a non-positive size yield an empty slice rather than an error.
// The order of candidates is preserved; callers must supply a stable order.
func Paginate(page, size int, candidates []Question) []Question {
	if page < 1 || size <= 0 {
		return []Question{}
	}
	// compare page numbers first so (page-1)*size cannot overflow
	if page-1 >= PageCount(len(candidates), size) {
		return []Question{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(candidates) {
		end = len(candidates)
	}
	out := make([]Question, end-start)
	copy(out, candidates[start:end])
	return out
}

// PageCount is the number of pages needed to show total items.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// InCategory keeps the candidates belonging to categoryID.
func InCategory(candidates []Question, categoryID int) []Question {
	out := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out
}
