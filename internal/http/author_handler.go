package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

type AuthorHandler struct {
	repo usecase.AuthorRepository
}

func NewAuthorHandler(repo usecase.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{repo: repo}
}

type authorReq struct {
	Name      string `json:"name" validate:"required,max=100"`
	Biography string `json:"biography"`
}

// Collection handles /authors: list for any authenticated caller, create
// for librarians and admins.
func (h *AuthorHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /authors/{id}.
func (h *AuthorHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "/authors/")
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

// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /authors [get]
func (h *AuthorHandler) list(w http.ResponseWriter, r *http.Request) {
	params := listParamsFromQuery(r)
	authors, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		usecaseError(w, err)
		return
	}
	if authors == nil {
		authors = []entity.Author{}
	}
	JSON(w, http.StatusOK, map[string]any{
		"data": authors,
		"meta": listMeta(params, total),
	})
}

func (h *AuthorHandler) create(w http.ResponseWriter, r *http.Request) {
	if !usecase.CanManageCatalog(httpx.IdentityFrom(r)) {
		Error(w, http.StatusForbidden, "forbidden")
		return
	}
	var req authorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msgs := ValidateStruct(req); len(msgs) > 0 {
		Error(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	author := entity.Author{Name: req.Name, Biography: req.Biography}
	if err := h.repo.Create(r.Context(), &author); err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusCreated, author)
}

func (h *AuthorHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	author, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, author)
}

func (h *AuthorHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	if !usecase.CanManageCatalog(httpx.IdentityFrom(r)) {
		Error(w, http.StatusForbidden, "forbidden")
		return
	}
	var req authorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msgs := ValidateStruct(req); len(msgs) > 0 {
		Error(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	author := entity.Author{ID: id, Name: req.Name, Biography: req.Biography}
	if err := h.repo.Update(r.Context(), &author); err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, author)
}

func (h *AuthorHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
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
