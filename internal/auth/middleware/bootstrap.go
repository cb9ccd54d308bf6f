package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the initial admin account when no admin exists yet.
// The default password is for first login only and should be changed
// immediately.
func EnsureAdmin(ctx context.Context, db *sql.DB) error {
	var id int64
	err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE role='admin' LIMIT 1`).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, full_name, qualification, dob, role, created_at, updated_at)
		 VALUES ($1,$2,$3,'','','admin',$4,$4)`,
		"admin@quizmaster.com", string(hash), "Admin User", now)
	return err
}
