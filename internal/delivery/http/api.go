package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/response"
)

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "nftmarket-service",
		"version": "1.0.0",
	})
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.sessSvc.CreateSession(r.Context(), service.CreateSessionInput{
		UserAgent: r.UserAgent(),
		IPAddress: r.RemoteAddr,
	})
	if err != nil {
		response.Error(w, mapError(err))
		return
	}

	h.setSessionCookie(w, out.Token, out.ExpiresAt)
	response.WithStatus(w, http.StatusCreated, out)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	response.OK(w, sessionFrom(r.Context()))
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	if err := h.sessSvc.EndSession(r.Context(), ss.ID); err != nil {
		response.Error(w, mapError(err))
		return
	}

	http.SetCookie(w, &http.Cookie{Name: h.sessConf.CookieName, Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	evs, err := h.mktSvc.ListEvents(r.Context())
	if err != nil {
		response.Error(w, mapError(err))
		return
	}

	response.OK(w, evs)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.mktSvc.GetEvent(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		response.Error(w, mapError(err))
		return
	}

	response.OK(w, ev)
}

func (h *Handler) ConnectWallet(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	wallet, err := h.walletSvc.ConnectWallet(r.Context(), ss.ID)
	if err != nil {
		response.Error(w, mapError(err))
		return
	}

	status := http.StatusAccepted
	if wallet.Connected {
		status = http.StatusOK
	}
	response.WithStatus(w, status, wallet)
}

func (h *Handler) DisconnectWallet(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	wallet, err := h.walletSvc.DisconnectWallet(r.Context(), ss.ID)
	if err != nil {
		response.Error(w, mapError(err))
		return
	}

	response.OK(w, wallet)
}

func (h *Handler) BuyTicket(w http.ResponseWriter, r *http.Request) {
	var in service.BuyTicketInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, errInvalidRequest)
		return
	}

	// Validate request
	if err := h.validator.Struct(in); err != nil {
		response.ValidationError(w, errInvalidRequest, validationDetails(err))
		return
	}

	in.SessionID = sessionFrom(r.Context()).ID
	tx, err := h.mktSvc.BuyTicket(r.Context(), in)
	if err != nil {
		response.Error(w, mapError(err))
		return
	}

	response.WithStatus(w, http.StatusAccepted, tx)
}

func (h *Handler) DismissTransaction(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	if err := h.mktSvc.DismissTransaction(r.Context(), ss.ID); err != nil {
		response.Error(w, mapError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	ts, err := h.mktSvc.ListTickets(r.Context(), ss.ID)
	if err != nil {
		response.Error(w, mapError(err))
		return
	}

	response.OK(w, ts)
}

func validationDetails(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
