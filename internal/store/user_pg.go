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

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

func (r *UserPG) Create(ctx context.Context, user *entity.User) error {
	const query = `
	INSERT INTO users (id, email, username, password, role, mobile_no, membership_date)
	VALUES (gen_random_uuid(), $1, $2, $3, COALESCE(NULLIF($4, ''), 'member'), $5,
	        CASE WHEN COALESCE(NULLIF($4, ''), 'member') = 'member' THEN now()::date END)
	RETURNING id, role, membership_date, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.Email, user.Username, user.Password, user.Role, user.MobileNo).
		Scan(&user.ID, &user.Role, &user.MembershipDate, &user.CreatedAt, &user.UpdatedAt)
	return mapPgError(err)
}

func (r *UserPG) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	const query = `
	SELECT id, email, username, password, role, mobile_no, membership_date, created_at, updated_at
	FROM users WHERE email = $1 LIMIT 1
	`
	return r.scanOne(ctx, query, email)
}

func (r *UserPG) GetByID(ctx context.Context, id string) (entity.User, error) {
	const query = `
	SELECT id, email, username, password, role, mobile_no, membership_date, created_at, updated_at
	FROM users WHERE id = $1 LIMIT 1
	`
	return r.scanOne(ctx, query, id)
}

func (r *UserPG) List(ctx context.Context, p usecase.ListParams) ([]entity.User, int, error) {
	const query = `
	SELECT id, email, username, password, role, mobile_no, membership_date, created_at, updated_at,
	       COUNT(*) OVER() AS total
	FROM users
	ORDER BY username
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, mapPgError(err)
	}
	defer rows.Close()

	var users []entity.User
	var total int
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.Role,
			&u.MobileNo, &u.MembershipDate, &u.CreatedAt, &u.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserPG) UpdateRole(ctx context.Context, id, role string, membershipDate *time.Time) error {
	const query = `
	UPDATE users SET role = $2, membership_date = $3, updated_at = now()
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, role, membershipDate)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *UserPG) scanOne(ctx context.Context, query string, arg any) (entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.Username, &user.Password, &user.Role,
			&user.MobileNo, &user.MembershipDate, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, mapPgError(err)
	}
	return user, nil
}
