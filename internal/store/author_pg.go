package store

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthorPG struct {
	db *pgxpool.Pool
}

func NewAuthorPG(db *pgxpool.Pool) *AuthorPG {
	return &AuthorPG{db: db}
}

func (r *AuthorPG) Create(ctx context.Context, a *entity.Author) error {
	const query = `
	INSERT INTO authors (id, name, biography)
	VALUES (gen_random_uuid(), $1, $2)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, a.Name, a.Biography).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapPgError(err)
}

func (r *AuthorPG) GetByID(ctx context.Context, id string) (entity.Author, error) {
	const query = `
	SELECT id, name, biography, created_at, updated_at
	FROM authors WHERE id = $1 LIMIT 1
	`
	var a entity.Author
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Biography, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Author{}, usecase.ErrNotFound
		}
		return entity.Author{}, mapPgError(err)
	}
	return a, nil
}

func (r *AuthorPG) List(ctx context.Context, p usecase.ListParams) ([]entity.Author, int, error) {
	const query = `
	SELECT id, name, biography, created_at, updated_at, COUNT(*) OVER() AS total
	FROM authors
	ORDER BY name
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	defer rows.Close()

	var authors []entity.Author
	var total int
	for rows.Next() {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Biography, &a.CreatedAt, &a.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

func (r *AuthorPG) Update(ctx context.Context, a *entity.Author) error {
	const query = `
	UPDATE authors SET name = $2, biography = $3, updated_at = now()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, a.ID, a.Name, a.Biography).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	return mapPgError(err)
}

func (r *AuthorPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
