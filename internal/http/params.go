package http

import (
	"net/http"
	"strconv"
	"strings"

	"libraryapi/internal/usecase"
)

// pathParam does crude path param extraction with net/http's ServeMux:
// /authors/{id} -> id. Returns "" for nested or empty paths.
func pathParam(r *http.Request, prefix string) string {
	if !strings.HasPrefix(r.URL.Path, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

func listParamsFromQuery(r *http.Request) usecase.ListParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return usecase.ListParams{Limit: pageSize, Offset: (page - 1) * pageSize}
}

func listMeta(p usecase.ListParams, total int) map[string]any {
	return map[string]any{
		"page":        p.Offset/p.Limit + 1,
		"page_size":   p.Limit,
		"total":       total,
		"total_pages": (total + p.Limit - 1) / p.Limit,
	}
}
