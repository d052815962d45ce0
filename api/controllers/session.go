package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/api/middleware"
	"github.com/angelmondragon/daypass-backend/api/responses"
	"github.com/angelmondragon/daypass-backend/internal/sessions"
	pkgAuth "github.com/angelmondragon/daypass-backend/pkg/auth"
	"github.com/angelmondragon/daypass-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
)

type sessionLifecycle interface {
	Create(ctx context.Context) (*sessions.Session, error)
	End(ctx context.Context, id uuid.UUID) error
}

type sessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionCreate opens a browsing session with an empty cart and hands back its token.
func SessionCreate(manager sessionLifecycle, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		sess, err := manager.Create(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session"))
			return
		}

		now := time.Now()
		expiresAt := now.Add(cfg.TokenTTL)
		token, err := pkgAuth.MintSessionToken(cfg, now, pkgAuth.SessionTokenPayload{
			SessionID: sess.ID,
			ExpiresAt: expiresAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{
			SessionID: sess.ID,
			Token:     token,
			ExpiresAt: expiresAt.UTC(),
		})
	}
}

// SessionEnd discards the current session and its cart.
func SessionEnd(manager sessionLifecycle, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		sessionID, ok := middleware.SessionIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		if err := manager.End(r.Context(), sessionID); err != nil {
			if errors.Is(err, sessions.ErrNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "session not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "end session"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ended"})
	}
}
