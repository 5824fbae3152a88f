package store

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BorrowPG struct {
	db *pgxpool.Pool
}

func NewBorrowPG(db *pgxpool.Pool) *BorrowPG {
	return &BorrowPG{db: db}
}

// Open inserts an open record and flips the book to unavailable in one
// transaction, with the book row locked across both writes. A reader on
// another connection sees either no record and an available book, or the
// record and an unavailable book, never the state in between.
func (r *BorrowPG) Open(ctx context.Context, rec *entity.BorrowRecord) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var available bool
		err := tx.QueryRow(ctx,
			`SELECT availability_status FROM books WHERE id = $1 FOR UPDATE`,
			rec.BookID).Scan(&available)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return usecase.ErrNotFound
			}
			return err
		}
		if !available {
			return usecase.ErrBookUnavailable
		}

		const insert = `
		INSERT INTO borrow_records (id, book_id, member_id, borrow_date)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id
		`
		if err := tx.QueryRow(ctx, insert, rec.BookID, rec.MemberID, rec.BorrowDate).Scan(&rec.ID); err != nil {
			return err
		}
		return setAvailabilityTx(ctx, tx, rec.BookID, false)
	})
	if err != nil {
		err = mapPgError(err)
		// The partial unique index on open records sits behind the row lock
		// as a backstop; if it still fires the book is simply not available.
		if errors.Is(err, usecase.ErrAlreadyExists) {
			return usecase.ErrBookUnavailable
		}
		return err
	}
	return nil
}

func (r *BorrowPG) GetByID(ctx context.Context, id string) (entity.BorrowRecord, error) {
	const query = `
	SELECT id, book_id, member_id, borrow_date, return_date
	FROM borrow_records WHERE id = $1 LIMIT 1
	`
	var rec entity.BorrowRecord
	err := r.db.QueryRow(ctx, query, id).
		Scan(&rec.ID, &rec.BookID, &rec.MemberID, &rec.BorrowDate, &rec.ReturnDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.BorrowRecord{}, usecase.ErrNotFound
		}
		return entity.BorrowRecord{}, mapPgError(err)
	}
	return rec, nil
}

// Settle stamps the return date on an open record and flips the book back
// to available, again as one transaction. The `return_date IS NULL` guard
// makes the close a one-shot transition even under races.
func (r *BorrowPG) Settle(ctx context.Context, id string, returnDate time.Time) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var bookID string
		err := tx.QueryRow(ctx, `
		UPDATE borrow_records SET return_date = $2
		WHERE id = $1 AND return_date IS NULL
		RETURNING book_id
		`, id, returnDate).Scan(&bookID)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			// Distinguish a missing record from one already closed.
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT TRUE FROM borrow_records WHERE id = $1`, id).Scan(&exists); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return usecase.ErrNotFound
				}
				return err
			}
			return usecase.ErrAlreadyReturned
		}
		return setAvailabilityTx(ctx, tx, bookID, true)
	})
	return mapPgError(err)
}

// setAvailabilityTx persists the availability flag inside the caller's
// transaction. Writing the value the row already holds is a no-op, so the
// call is idempotent.
func setAvailabilityTx(ctx context.Context, tx pgx.Tx, id string, available bool) error {
	const query = `
	UPDATE books SET availability_status = $2, updated_at = now()
	WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, id, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *BorrowPG) ListAll(ctx context.Context, p usecase.ListParams) ([]entity.BorrowRecord, int, error) {
	const query = `
	SELECT id, book_id, member_id, borrow_date, return_date, COUNT(*) OVER() AS total
	FROM borrow_records
	ORDER BY borrow_date DESC, id
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *BorrowPG) ListByMember(ctx context.Context, memberID string, p usecase.ListParams) ([]entity.BorrowRecord, int, error) {
	const query = `
	SELECT id, book_id, member_id, borrow_date, return_date, COUNT(*) OVER() AS total
	FROM borrow_records
	WHERE member_id = $1
	ORDER BY borrow_date DESC, id
	LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, memberID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]entity.BorrowRecord, int, error) {
	var records []entity.BorrowRecord
	var total int
	for rows.Next() {
		var rec entity.BorrowRecord
		if err := rows.Scan(&rec.ID, &rec.BookID, &rec.MemberID, &rec.BorrowDate, &rec.ReturnDate, &total); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
