// Package session resolves the anonymous per-client identity that scopes
// every ledger query. The identity lives only in the sessionId cookie.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
)

const (
	CookieName    = "sessionId"
	DefaultMaxAge = 7 * 24 * time.Hour
)

type sessionKey struct{}

// Resolver mints session ids for clients that do not have one yet.
type Resolver struct {
	MaxAge time.Duration
	now    func() time.Time
}

func NewResolver(maxAge time.Duration) *Resolver {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Resolver{MaxAge: maxAge, now: time.Now}
}

// Resolve reuses existing verbatim when it is set. Otherwise a new random
// id is generated and the cookie that persists it is returned.
func (r *Resolver) Resolve(existing string) (string, *http.Cookie, error) {
	if existing != "" {
		return existing, nil, nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", nil, err
	}

	return id.String(), r.Cookie(id.String()), nil
}

func (r *Resolver) Cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(r.MaxAge.Seconds()),
		Expires:  r.now().Add(r.MaxAge).UTC(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ReadCookie returns the session id carried by a raw Cookie header, or "".
func ReadCookie(header string) string {
	if header == "" {
		return ""
	}
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey{}).(string)
	return id, ok && id != ""
}
