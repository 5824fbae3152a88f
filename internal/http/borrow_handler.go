package http

import (
	"context"
	"encoding/json"
	"net/http"

	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

// LoanService is the slice of the loan ledger the handler consumes.
// *usecase.LoanUsecase satisfies it.
type LoanService interface {
	Borrow(ctx context.Context, bookID string, caller entity.Identity) (entity.BorrowRecord, error)
	Return(ctx context.Context, recordID string, caller entity.Identity) (entity.BorrowRecord, error)
	ListRecords(ctx context.Context, caller entity.Identity, p usecase.ListParams) ([]entity.BorrowRecord, int, error)
	GetRecord(ctx context.Context, recordID string, caller entity.Identity) (entity.BorrowRecord, error)
}

type BorrowHandler struct {
	loans LoanService
}

func NewBorrowHandler(loans LoanService) *BorrowHandler {
	return &BorrowHandler{loans: loans}
}

// borrowRecordPayload is the wire shape of a record. Dates are plain
// calendar dates, not timestamps.
type borrowRecordPayload struct {
	ID         string  `json:"id"`
	Book       string  `json:"book"`
	Member     string  `json:"member"`
	BorrowDate string  `json:"borrow_date"`
	ReturnDate *string `json:"return_date"`
}

func newBorrowRecordPayload(rec entity.BorrowRecord) borrowRecordPayload {
	p := borrowRecordPayload{
		ID:         rec.ID,
		Book:       rec.BookID,
		Member:     rec.MemberID,
		BorrowDate: rec.BorrowDate.Format("2006-01-02"),
	}
	if rec.ReturnDate != nil {
		d := rec.ReturnDate.Format("2006-01-02")
		p.ReturnDate = &d
	}
	return p
}

type borrowReq struct {
	Book string `json:"book" validate:"required"`
}

// @Summary Borrow a book
// @Description Create an open borrow record and mark the book unavailable
// @Tags borrow
// @Accept json
// @Produce json
// @Param borrow body borrowReq true "Book to borrow"
// @Success 201 {object} borrowRecordPayload
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /borrow [post]
func (h *BorrowHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req borrowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Book == "" {
		Error(w, http.StatusBadRequest, "book is required")
		return
	}

	rec, err := h.loans.Borrow(r.Context(), req.Book, httpx.IdentityFrom(r))
	if err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusCreated, newBorrowRecordPayload(rec))
}

type returnReq struct {
	BorrowRecordID string `json:"borrow_record_id" validate:"required"`
}

// @Summary Return a book
// @Description Close an open borrow record and restore the book's availability
// @Tags borrow
// @Accept json
// @Produce json
// @Param return body returnReq true "Record to close"
// @Success 200 {object} borrowRecordPayload
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /return [post]
func (h *BorrowHandler) Return(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req returnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BorrowRecordID == "" {
		Error(w, http.StatusBadRequest, "borrow_record_id is required")
		return
	}

	rec, err := h.loans.Return(r.Context(), req.BorrowRecordID, httpx.IdentityFrom(r))
	if err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, newBorrowRecordPayload(rec))
}

// @Summary List borrow records
// @Description Librarians and admins see all records, members only their own
// @Tags borrow
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /borrow-records [get]
func (h *BorrowHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	params := listParamsFromQuery(r)
	records, total, err := h.loans.ListRecords(r.Context(), httpx.IdentityFrom(r), params)
	if err != nil {
		usecaseError(w, err)
		return
	}

	payload := make([]borrowRecordPayload, 0, len(records))
	for _, rec := range records {
		payload = append(payload, newBorrowRecordPayload(rec))
	}
	JSON(w, http.StatusOK, map[string]any{
		"data": payload,
		"meta": listMeta(params, total),
	})
}

// Item handles GET /borrow-records/{id}, with the same visibility rule as
// the listing.
func (h *BorrowHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := pathParam(r, "/borrow-records/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	rec, err := h.loans.GetRecord(r.Context(), id, httpx.IdentityFrom(r))
	if err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, newBorrowRecordPayload(rec))
}
