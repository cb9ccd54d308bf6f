package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizmaster/quizmaster/internal/rbac"
)

type AuthService struct{ hmac []byte }

func NewAuthService(secret string) *AuthService { return &AuthService{hmac: []byte(secret)} }

type Claims struct {
	Sub  int64  `json:"sub,string"`
	Role string `json:"role"` // "admin" or "user"
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(sub int64, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:  sub,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quizmaster",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(7 * 24 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := token.Claims.(*Claims)
	return c, nil
}

// User is the password-free view served by profile and admin endpoints.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	FullName      string `json:"fullName"`
	Qualification string `json:"qualification,omitempty"`
	DOB           string `json:"dob,omitempty"`
	Role          string `json:"role"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// POST /auth/register {username, password, fullName, qualification, dob}
func RegisterHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username      string `json:"username"`
			Password      string `json:"password"`
			FullName      string `json:"fullName"`
			Qualification string `json:"qualification"`
			DOB           string `json:"dob"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Username == "" || req.Password == "" || req.FullName == "" {
			writeMessage(w, http.StatusBadRequest, "username, password and fullName required")
			return
		}

		var exists int
		err := db.QueryRowContext(r.Context(), `SELECT 1 FROM users WHERE username=$1`, req.Username).Scan(&exists)
		if err == nil {
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		now := time.Now().Unix()
		var id int64
		err = db.QueryRowContext(r.Context(),
			`INSERT INTO users (username, password_hash, full_name, qualification, dob, role, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,'user',$6,$6) RETURNING id`,
			req.Username, string(hash), req.FullName, req.Qualification, req.DOB, now).Scan(&id)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "User registered successfully",
			"user": User{
				ID: id, Username: req.Username, FullName: req.FullName,
				Qualification: req.Qualification, DOB: req.DOB, Role: "user",
			},
		})
	}
}

// POST /auth/login {username, password} -> {user, token}
func LoginHandler(a *AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "bad json")
			return
		}

		var (
			u    User
			hash string
		)
		err := db.QueryRowContext(r.Context(),
			`SELECT id, username, password_hash, full_name, qualification, dob, role FROM users WHERE username=$1`,
			req.Username).Scan(&u.ID, &u.Username, &hash, &u.FullName, &u.Qualification, &u.DOB, &u.Role)
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid password")
			return
		}

		tok, err := a.IssueJWT(u.ID, u.Role)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"user": u, "token": tok})
	}
}

// JWTMiddleware validates the bearer token and puts the subject and role into
// the request context. The role is re-read from the DB so a revoked or deleted
// user cannot ride an old token.
func JWTMiddleware(a *AuthService, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				writeMessage(w, http.StatusUnauthorized, "No token provided")
				return
			}
			claims, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			var role string
			err = db.QueryRowContext(r.Context(), `SELECT role FROM users WHERE id=$1`, claims.Sub).Scan(&role)
			if errors.Is(err, sql.ErrNoRows) {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			if err != nil {
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := WithSubject(r.Context(), claims.Sub)
			ctx = rbac.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
