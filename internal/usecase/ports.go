package usecase

import (
	"context"
	"time"

	"libraryapi/internal/entity"
)

type ListParams struct {
	Limit  int
	Offset int
}

type BookListParams struct {
	Category string
	AuthorID string
	Limit    int
	Offset   int
}

type AuthorRepository interface {
	Create(ctx context.Context, a *entity.Author) error
	GetByID(ctx context.Context, id string) (entity.Author, error)
	List(ctx context.Context, p ListParams) ([]entity.Author, int, error)
	Update(ctx context.Context, a *entity.Author) error
	Delete(ctx context.Context, id string) error
}

type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (entity.Book, error)
	List(ctx context.Context, p BookListParams) ([]entity.Book, int, error)
	Update(ctx context.Context, b *entity.Book) error
	Delete(ctx context.Context, id string) error
}

// CatalogStore is the slice of the catalog the loan ledger reads. It holds
// no authorization logic; it trusts the ledger.
type CatalogStore interface {
	GetBook(ctx context.Context, id string) (entity.Book, error)
}

type BorrowRepository interface {
	// Open inserts an open record and marks the book unavailable. Both
	// writes commit as one unit: readers never see a record without the
	// flipped flag, and a failed Open leaves no trace.
	Open(ctx context.Context, rec *entity.BorrowRecord) error
	GetByID(ctx context.Context, id string) (entity.BorrowRecord, error)
	// Settle stamps the return date on an open record and restores the
	// book's availability, again committing both writes as one unit.
	Settle(ctx context.Context, id string, returnDate time.Time) error
	ListAll(ctx context.Context, p ListParams) ([]entity.BorrowRecord, int, error)
	ListByMember(ctx context.Context, memberID string, p ListParams) ([]entity.BorrowRecord, int, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByID(ctx context.Context, id string) (entity.User, error)
	List(ctx context.Context, p ListParams) ([]entity.User, int, error)
	UpdateRole(ctx context.Context, id, role string, membershipDate *time.Time) error
}
