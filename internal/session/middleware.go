package session

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
)

// RequireSession rejects requests that carry no session cookie before the
// operation handler runs. The session id is made available via FromContext.
func RequireSession(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ReadCookie(ctx.Header("Cookie"))
		if id == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized.")
			return
		}

		if logData := logging.GetLogData(ctx.Context()); logData != nil {
			logData.AddData("sessionID", id)
		}

		next(huma.WithContext(ctx, NewContext(ctx.Context(), id)))
	}
}
