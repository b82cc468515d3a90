package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"horizon-server/src/middleware"
	"horizon-server/src/models"
	"horizon-server/src/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the identity collaborator the auth
// handlers need.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, req models.SignUpRequest, hashedPassword string) (*models.User, error)
}

func SignUp(store UserStore, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode sign-up request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during sign-up - Email: %s", req.Email)
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}

		if !util.ValidatePassword(req.Password) {
			log.Printf("ERROR: Password validation failed during sign-up - Email: %s", req.Email)
			http.Error(w, "password must be at least 8 characters with uppercase, lowercase, and digit", http.StatusBadRequest)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		user, err := store.CreateUser(r.Context(), req, string(hashedPassword))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				log.Printf("ERROR: Sign-up failed - email already exists - Email: %s", req.Email)
				http.Error(w, "email already exists", http.StatusConflict)
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		token, err := issueToken(user, jwtSecret)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Email, err)
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Successful sign-up - User: %s, ID: %d", user.Email, user.ID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.AuthResponse{Token: token, User: *user})
	}
}

func SignIn(store UserStore, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode sign-in request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		user, err := store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			log.Printf("ERROR: Failed to find user during sign-in - Email: %s: %v", req.Email, err)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for %s from IP %s", req.Email, r.RemoteAddr)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := issueToken(user, jwtSecret)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Email, err)
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Successful sign-in - User: %s, ID: %d", user.Email, user.ID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthResponse{Token: token, User: *user})
	}
}

// GetMe returns the logged-in user's projection. A missing user maps
// to 401, not an error payload.
func GetMe(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := store.GetUserByID(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to load user %d: %v", userID, err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}

func issueToken(user *models.User, jwtSecret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour * 168).Unix(),
	})
	return token.SignedString([]byte(jwtSecret))
}
