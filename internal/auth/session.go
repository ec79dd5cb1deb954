package auth

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "session"

type ctxKey string

const contextActorKey ctxKey = "actor"

// ActorFromContext returns the authenticated actor, or nil for anonymous.
func ActorFromContext(ctx context.Context) *Actor {
	if actor, ok := ctx.Value(contextActorKey).(*Actor); ok {
		return actor
	}
	return nil
}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies the signed session cookie. The cookie
// value is a short HS256 token carrying the actor identity, so no session
// state lives server-side.
type SessionManager struct {
	secret       []byte
	ttl          time.Duration
	secureCookie bool
}

func NewSessionManager(secret string, ttl time.Duration, secureCookie bool) *SessionManager {
	return &SessionManager{
		secret:       []byte(secret),
		ttl:          ttl,
		secureCookie: secureCookie,
	}
}

// Establish writes a session cookie identifying actor.
func (m *SessionManager) Establish(w http.ResponseWriter, actor *Actor) error {
	now := time.Now()
	claims := &sessionClaims{
		Username: actor.Username,
		Role:     actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current returns the actor identified by the request's session cookie, or
// nil when the cookie is absent, expired, or tampered with.
func (m *SessionManager) Current(r *http.Request) *Actor {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil
	}

	return &Actor{ID: id, Username: claims.Username, Role: claims.Role}
}

// Terminate clears the session cookie.
func (m *SessionManager) Terminate(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithSession resolves the session cookie when present and stores the actor
// in the request context. Anonymous requests pass through untouched.
func (m *SessionManager) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := m.Current(r); actor != nil {
			r = r.WithContext(ContextWithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession redirects anonymous requests to the login page.
func (m *SessionManager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := m.Current(r)
		if actor == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

// RequireAdmin rejects requests whose actor lacks the admin role.
func (m *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := m.Current(r)
		if actor == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		if !IsAdmin(actor) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"type":"FORBIDDEN","code":"ACCESS_DENIED","message":"access denied"}}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}
