package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/jask/userdesk/internal/users"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepo handles user rows. Passwords are write-only: reads never return
// them.
type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo { return &UserRepo{db: db} }

// now is UTC truncated to seconds, matching sqlite's CURRENT_TIMESTAMP.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

const userColumns = `user_id, username, email, full_name, dob, phone, address`

func (r *UserRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []users.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Get(ctx context.Context, id int64) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, ErrNotFound
	}
	return u, err
}

// Create inserts p and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, p users.Payload) (users.User, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO users(username, email, password, full_name, dob, phone, address, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Username, p.Email, p.Password, p.FullName, p.DOB, p.Phone, p.Address, now(), now())
	if err != nil {
		return users.User{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return users.User{}, err
	}
	return r.Get(ctx, id)
}

// Update replaces every field of the row. An empty password keeps the stored
// one.
func (r *UserRepo) Update(ctx context.Context, id int64, p users.Payload) (users.User, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE users SET
		username = ?, email = ?,
		password = CASE WHEN ? = '' THEN password ELSE ? END,
		full_name = ?, dob = ?, phone = ?, address = ?,
		updated_at = ?
	WHERE user_id = ?
	`, p.Username, p.Email, p.Password, p.Password, p.FullName, p.DOB, p.Phone, p.Address, now(), id)
	if err != nil {
		return users.User{}, mapConstraint(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return users.User{}, err
	} else if n == 0 {
		return users.User{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count is used by the seeder.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (users.User, error) {
	var u users.User
	err := s.Scan(&u.UserID, &u.Username, &u.Email, &u.FullName, &u.DOB, &u.Phone, &u.Address)
	return u, err
}

func mapConstraint(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateUsername
	}
	return err
}
