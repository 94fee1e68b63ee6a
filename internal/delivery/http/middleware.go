package http

import (
	"context"
	"net/http"
	"time"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/response"
)

const sessionTokenHeader = "X-Session-Token"

type sessionKey struct{}

func sessionFrom(ctx context.Context) *models.Session {
	ss, _ := ctx.Value(sessionKey{}).(*models.Session)
	return ss
}

func (h *Handler) tokenFrom(r *http.Request) string {
	if tok := r.Header.Get(sessionTokenHeader); tok != "" {
		return tok
	}
	if c, err := r.Cookie(h.sessConf.CookieName); err == nil {
		return c.Value
	}
	return ""
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessConf.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// pageSession attaches the viewer session, starting a fresh one for new or
// expired visitors.
func (h *Handler) pageSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ss, err := h.sessSvc.SessionFromToken(ctx, h.tokenFrom(r))
		if err != nil {
			out, err := h.sessSvc.CreateSession(ctx, service.CreateSessionInput{
				UserAgent: r.UserAgent(),
				IPAddress: r.RemoteAddr,
			})
			if err != nil {
				h.l.Errorf(ctx, "delivery.http.pageSession: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			h.setSessionCookie(w, out.Token, out.ExpiresAt)
			ss = out.Session
		}

		ctx = h.l.WithContext(ctx, "session_id", ss.ID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, ss)))
	})
}

func (h *Handler) apiSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ss, err := h.sessSvc.SessionFromToken(ctx, h.tokenFrom(r))
		if err != nil {
			response.Error(w, mapError(err))
			return
		}

		ctx = h.l.WithContext(ctx, "session_id", ss.ID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, ss)))
	})
}
