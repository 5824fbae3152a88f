package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"libraryapi/internal/entity"
)

// LoanUsecase is the loan ledger. It owns the BorrowRecord lifecycle and,
// through the repository's paired writes, the catalog's availability flag,
// so that a book is unavailable exactly while one open record references it.
//
// Each book is a two-state machine: available (no open record) and borrowed
// (one open record). The read-check-write sequence of Borrow and Return is
// serialized per book id; operations on different books never contend.
type LoanUsecase struct {
	catalog CatalogStore
	records BorrowRepository
	locks   bookLocks

	// now is swappable for tests.
	now func() time.Time
}

func NewLoanUsecase(catalog CatalogStore, records BorrowRepository) *LoanUsecase {
	return &LoanUsecase{
		catalog: catalog,
		records: records,
		now:     time.Now,
	}
}

// Borrow creates an open record for the book and marks it unavailable.
// Members and librarians may borrow. Fails with ErrNotFound if the book does
// not exist and ErrBookUnavailable if it is already out on loan. Either both
// writes land or neither does.
func (u *LoanUsecase) Borrow(ctx context.Context, bookID string, caller entity.Identity) (entity.BorrowRecord, error) {
	if !CanBorrow(caller) {
		return entity.BorrowRecord{}, ErrForbidden
	}

	unlock := u.locks.lock(bookID)
	defer unlock()

	book, err := u.catalog.GetBook(ctx, bookID)
	if err != nil {
		return entity.BorrowRecord{}, err
	}
	if !book.AvailabilityStatus {
		return entity.BorrowRecord{}, ErrBookUnavailable
	}

	rec := entity.BorrowRecord{
		BookID:     book.ID,
		MemberID:   caller.ID,
		BorrowDate: u.now(),
	}
	if err := withRetry(func() error { return u.records.Open(ctx, &rec) }); err != nil {
		return entity.BorrowRecord{}, err
	}
	return rec, nil
}

// Return closes an open record and restores the book's availability. It is
// a one-shot transition: returning an already-closed record fails with
// ErrAlreadyReturned. Members may only return their own records; librarians
// and admins may return any.
func (u *LoanUsecase) Return(ctx context.Context, recordID string, caller entity.Identity) (entity.BorrowRecord, error) {
	if !caller.Authenticated() {
		return entity.BorrowRecord{}, ErrForbidden
	}

	rec, err := u.records.GetByID(ctx, recordID)
	if err != nil {
		return entity.BorrowRecord{}, err
	}

	unlock := u.locks.lock(rec.BookID)
	defer unlock()

	// Re-read under the lock: the record may have been closed while we
	// waited for a concurrent operation on the same book.
	rec, err = u.records.GetByID(ctx, recordID)
	if err != nil {
		return entity.BorrowRecord{}, err
	}
	if !rec.Open() {
		return entity.BorrowRecord{}, ErrAlreadyReturned
	}
	if !CanReturn(caller, rec) {
		return entity.BorrowRecord{}, ErrForbidden
	}

	returnDate := u.now()
	if err := withRetry(func() error { return u.records.Settle(ctx, rec.ID, returnDate) }); err != nil {
		return entity.BorrowRecord{}, err
	}
	rec.ReturnDate = &returnDate
	return rec, nil
}

// ListRecords returns borrow records visible to the caller: librarians and
// admins see every record, members only their own.
func (u *LoanUsecase) ListRecords(ctx context.Context, caller entity.Identity, p ListParams) ([]entity.BorrowRecord, int, error) {
	switch {
	case CanSeeAllRecords(caller):
		return u.records.ListAll(ctx, p)
	case caller.Role == entity.RoleMember:
		return u.records.ListByMember(ctx, caller.ID, p)
	default:
		return nil, 0, ErrForbidden
	}
}

// GetRecord returns one record, subject to the same visibility rule as
// ListRecords.
func (u *LoanUsecase) GetRecord(ctx context.Context, recordID string, caller entity.Identity) (entity.BorrowRecord, error) {
	if !caller.Authenticated() {
		return entity.BorrowRecord{}, ErrForbidden
	}
	rec, err := u.records.GetByID(ctx, recordID)
	if err != nil {
		return entity.BorrowRecord{}, err
	}
	if !CanSeeAllRecords(caller) && rec.MemberID != caller.ID {
		return entity.BorrowRecord{}, ErrForbidden
	}
	return rec, nil
}

// withRetry runs op, retrying exactly once when the repository reports a
// transient transaction conflict. Business-rule errors pass through.
func withRetry(op func() error) error {
	err := op()
	if !errors.Is(err, ErrTxConflict) {
		return err
	}
	if err := op(); err != nil {
		if errors.Is(err, ErrTxConflict) {
			return ErrUnavailable
		}
		return err
	}
	return nil
}

// bookLocks hands out one mutex per book id. Entries are tiny and books are
// finite, so nothing is ever evicted.
type bookLocks struct {
	m sync.Map // book id -> *sync.Mutex
}

func (l *bookLocks) lock(bookID string) (unlock func()) {
	v, _ := l.m.LoadOrStore(bookID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
