package session

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ReusesExistingVerbatim(t *testing.T) {
	r := NewResolver(DefaultMaxAge)

	id, cookie, err := r.Resolve("not-even-a-uuid")

	assert.NoError(t, err)
	assert.Equal(t, "not-even-a-uuid", id)
	assert.Nil(t, cookie)
}

func TestResolve_MintsNewSession(t *testing.T) {
	fixed := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	r := NewResolver(DefaultMaxAge)
	r.now = func() time.Time { return fixed }

	id, cookie, err := r.Resolve("")

	require.NoError(t, err)
	parsed, err := uuid.FromString(id)
	assert.NoError(t, err)
	assert.Equal(t, uuid.V4, parsed.Version())

	require.NotNil(t, cookie)
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, id, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.Equal(t, fixed.Add(DefaultMaxAge), cookie.Expires)
}

func TestResolve_DistinctSessions(t *testing.T) {
	r := NewResolver(time.Hour)

	first, _, err := r.Resolve("")
	require.NoError(t, err)
	second, _, err := r.Resolve("")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewResolver_DefaultsMaxAge(t *testing.T) {
	assert.Equal(t, DefaultMaxAge, NewResolver(0).MaxAge)
}

func TestReadCookie(t *testing.T) {
	assert.Equal(t, "", ReadCookie(""))
	assert.Equal(t, "", ReadCookie("other=1"))
	assert.Equal(t, "abc", ReadCookie("sessionId=abc"))
	assert.Equal(t, "abc", ReadCookie("theme=dark; sessionId=abc"))
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	id, ok := FromContext(NewContext(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

type whoAmIOutput struct {
	Body struct {
		SessionID string `json:"sessionID"`
	}
}

func newGatedTestAPI(t *testing.T, called *bool) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{RequireSession(api)},
	}, func(ctx context.Context, input *struct{}) (*whoAmIOutput, error) {
		*called = true
		id, _ := FromContext(ctx)
		out := &whoAmIOutput{}
		out.Body.SessionID = id
		return out, nil
	})
	return api
}

func TestRequireSession_RejectsWithoutCookie(t *testing.T) {
	called := false
	resp := newGatedTestAPI(t, &called).Get("/whoami")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.False(t, called)
}

func TestRequireSession_RejectsEmptyCookie(t *testing.T) {
	called := false
	resp := newGatedTestAPI(t, &called).Get("/whoami", "Cookie: sessionId=")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.False(t, called)
}

func TestRequireSession_PassesSessionThrough(t *testing.T) {
	called := false
	resp := newGatedTestAPI(t, &called).Get("/whoami", "Cookie: sessionId=abc-123")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, called)
	var body whoAmIOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body.Body))
	assert.Equal(t, "abc-123", body.Body.SessionID)
}
