package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	auth "github.com/quizmaster/quizmaster/internal/auth/middleware"
)

func scanUser(row *sql.Row) (auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Qualification, &u.DOB, &u.Role)
	return u, err
}

const userCols = `id, username, full_name, qualification, dob, role`

// ListUsersHandler is admin-only; passwords never leave the table.
func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(), `SELECT `+userCols+` FROM users ORDER BY id`)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		defer rows.Close()

		users := []auth.User{}
		for rows.Next() {
			var u auth.User
			if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.Qualification, &u.DOB, &u.Role); err != nil {
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			users = append(users, u)
		}
		if err := rows.Err(); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// ProfileHandler returns the authenticated user's own record.
func ProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		u, err := scanUser(db.QueryRowContext(r.Context(),
			`SELECT `+userCols+` FROM users WHERE id=$1`, userID))
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// UpdateProfileHandler updates the caller's own name, qualification and dob.
// Username and role are not editable here.
func UpdateProfileHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req struct {
			FullName      string `json:"fullName"`
			Qualification string `json:"qualification"`
			DOB           string `json:"dob"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}

		u, err := scanUser(db.QueryRowContext(r.Context(),
			`SELECT `+userCols+` FROM users WHERE id=$1`, userID))
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if req.FullName != "" {
			u.FullName = req.FullName
		}
		if req.Qualification != "" {
			u.Qualification = req.Qualification
		}
		if req.DOB != "" {
			u.DOB = req.DOB
		}

		_, err = db.ExecContext(r.Context(),
			`UPDATE users SET full_name=$1, qualification=$2, dob=$3, updated_at=$4 WHERE id=$5`,
			u.FullName, u.Qualification, u.DOB, time.Now().Unix(), userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Profile updated successfully",
			"user":    u,
		})
	}
}

// ChangePasswordHandler verifies the current password before storing a new
// bcrypt hash. Old tokens remain valid until they expire.
func ChangePasswordHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == 0 {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.NewPassword == "" {
			writeMessage(w, http.StatusBadRequest, "newPassword required")
			return
		}

		var hash string
		err := db.QueryRowContext(r.Context(), `SELECT password_hash FROM users WHERE id=$1`, userID).Scan(&hash)
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)) != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid password")
			return
		}

		newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 10)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		_, err = db.ExecContext(r.Context(),
			`UPDATE users SET password_hash=$1, updated_at=$2 WHERE id=$3`,
			string(newHash), time.Now().Unix(), userID)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "Password changed successfully")
	}
}

// DeleteUserHandler removes a user account. Admin accounts are protected so
// the install cannot lock itself out.
func DeleteUserHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "userID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var role string
		err := db.QueryRowContext(r.Context(), `SELECT role FROM users WHERE id=$1`, id).Scan(&role)
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if role == "admin" {
			writeMessage(w, http.StatusForbidden, "Admin user cannot be deleted")
			return
		}

		if _, err := db.ExecContext(r.Context(), `DELETE FROM users WHERE id=$1`, id); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeMessage(w, http.StatusOK, "User deleted successfully")
	}
}
