package search

const DefaultLimit = 50
const MaxLimit = 500

// Page é a janela pedida pelo cliente (limit/offset) já saneada.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPage aplica default e limites: limit <= 0 vira DefaultLimit, teto MaxLimit, offset >= 0.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// Filter devolve os itens aceitos por keep, recortados pela página, e o total antes do recorte.
func Filter[T any](items []T, page Page, keep func(T) bool) ([]T, int) {
	matched := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			matched = append(matched, it)
		}
	}
	total := len(matched)
	if page.Offset >= total {
		return []T{}, total
	}
	end := page.Offset + page.Limit
	if end > total {
		end = total
	}
	return matched[page.Offset:end], total
}
