package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type BookHandler struct {
	repo usecase.BookRepository
}

func NewBookHandler(repo usecase.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

type bookReq struct {
	Title    string `json:"title" validate:"required,max=200"`
	Author   string `json:"author" validate:"required"`
	ISBN     string `json:"isbn" validate:"required,isbn"`
	Category string `json:"category" validate:"required,max=100"`
}

// Collection handles /books: list for any authenticated caller, create for
// librarians and admins.
func (h *BookHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /books/{id}.
func (h *BookHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/books/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// @Summary List books
// @Description Get books with category/author filters and pagination
// @Tags books
// @Produce json
// @Param category query string false "Filter by category"
// @Param author query string false "Filter by author id"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /books [get]
func (h *BookHandler) list(w http.ResponseWriter, r *http.Request) {
	lp := listParamsFromQuery(r)
	params := usecase.BookListParams{
		Category: r.URL.Query().Get("category"),
		AuthorID: r.URL.Query().Get("author"),
		Limit:    lp.Limit,
		Offset:   lp.Offset,
	}

	books, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		usecaseError(w, err)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	JSON(w, http.StatusOK, map[string]any{
		"data": books,
		"meta": listMeta(lp, total),
	})
}

func (h *BookHandler) create(w http.ResponseWriter, r *http.Request) {
	if !usecase.CanManageCatalog(httpx.IdentityFrom(r)) {
		Error(w, http.StatusForbidden, "forbidden")
		return
	}
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msgs := ValidateStruct(req); len(msgs) > 0 {
		Error(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	book := entity.Book{
		Title:    req.Title,
		AuthorID: req.Author,
		ISBN:     req.ISBN,
		Category: req.Category,
	}
	if err := h.repo.Create(r.Context(), &book); err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusCreated, book)
}

func (h *BookHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	book, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, book)
}

func (h *BookHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	if !usecase.CanManageCatalog(httpx.IdentityFrom(r)) {
		Error(w, http.StatusForbidden, "forbidden")
		return
	}
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msgs := ValidateStruct(req); len(msgs) > 0 {
		Error(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	book := entity.Book{
		ID:       id,
		Title:    req.Title,
		AuthorID: req.Author,
		ISBN:     req.ISBN,
		Category: req.Category,
	}
	if err := h.repo.Update(r.Context(), &book); err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, book)
}

func (h *BookHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if !usecase.CanManageCatalog(httpx.IdentityFrom(r)) {
		Error(w, http.StatusForbidden, "forbidden")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		usecaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
