// Package auth guards the calculation API: a single configured operator logs
// in with a bcrypt-checked password and receives an HS256 session token,
// carried back either as the session cookie or as a Bearer header.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"Nodal/internal/respond"
)

const CookieName = "session_token"

type contextKey string

const loginKey contextKey = "login"

var ErrInvalidToken = errors.New("invalid session token")

type Authenv struct {
	JWTkey       []byte
	Login        string
	PasswordHash string
	TTL          time.Duration
	SecureCookie bool
	Log          *zap.Logger
}

type Loginrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Issue signs a session token for login valid for env.TTL.
func (env *Authenv) Issue(login string, now time.Time) (string, time.Time, error) {
	exp := now.Add(env.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   login,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString(env.JWTkey)
	return s, exp, err
}

// Parse verifies a session token and returns its login.
func (env *Authenv) Parse(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return env.JWTkey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": msg})
}

// AuthMiddleware rejects requests without a valid session and stores the
// login on the request context.
func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFrom(r)
		if raw == "" {
			unauthorized(w, "authentication required")
			return
		}
		login, err := env.Parse(raw)
		if err != nil {
			unauthorized(w, err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), loginKey, login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoginFrom returns the login AuthMiddleware stored on ctx.
func LoginFrom(ctx context.Context) string {
	login, _ := ctx.Value(loginKey).(string)
	return login
}

func (env *Authenv) addCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  exp,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (env *Authenv) checkCredentials(login, password string) bool {
	if env.PasswordHash == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(login), []byte(env.Login)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(env.PasswordHash), []byte(password)) == nil
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req Loginrequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "login and password required"})
		return
	}
	if !env.checkCredentials(req.Login, req.Password) {
		if env.Log != nil {
			env.Log.Warn("login rejected", zap.String("login", req.Login))
		}
		unauthorized(w, "invalid login or password")
		return
	}

	token, exp, err := env.Issue(req.Login, time.Now())
	if err != nil {
		if env.Log != nil {
			env.Log.Error("sign session token", zap.Error(err))
		}
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create session"})
		return
	}
	env.addCookie(w, token, exp)
	respond.JSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: exp})
}
