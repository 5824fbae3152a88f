package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookPG is the catalog store. It owns books and their availability flag
// and carries no authorization logic.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, author_id, isbn, category, availability_status)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, TRUE)
	RETURNING id, availability_status, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, b.Title, b.AuthorID, b.ISBN, b.Category).
		Scan(&b.ID, &b.AvailabilityStatus, &b.CreatedAt, &b.UpdatedAt)
	return mapPgError(err)
}

func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	const query = `
	SELECT id, title, author_id, isbn, category, availability_status, created_at, updated_at
	FROM books WHERE id = $1 LIMIT 1
	`
	var b entity.Book
	err := r.db.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.Title, &b.AuthorID, &b.ISBN, &b.Category, &b.AvailabilityStatus, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, mapPgError(err)
	}
	return b, nil
}

// GetBook satisfies usecase.CatalogStore.
func (r *BookPG) GetBook(ctx context.Context, id string) (entity.Book, error) {
	return r.GetByID(ctx, id)
}

func (r *BookPG) List(ctx context.Context, p usecase.BookListParams) ([]entity.Book, int, error) {
	const query = `
	SELECT id, title, author_id, isbn, category, availability_status, created_at, updated_at,
	       COUNT(*) OVER() AS total
	FROM books
	WHERE ($1 = '' OR category = $1)
	AND ($2 = '' OR author_id::text = $2)
	ORDER BY title
	LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, p.Category, p.AuthorID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	defer rows.Close()

	var books []entity.Book
	var total int
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &b.ISBN, &b.Category, &b.AvailabilityStatus, &b.CreatedAt, &b.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *BookPG) Update(ctx context.Context, b *entity.Book) error {
	const query = `
	UPDATE books SET title = $2, author_id = $3, isbn = $4, category = $5, updated_at = now()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, b.ID, b.Title, b.AuthorID, b.ISBN, b.Category).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	return mapPgError(err)
}

func (r *BookPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
