package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.HTTPLogger(h.l, func(r *http.Request) string {
		return middleware.GetReqID(r.Context())
	}))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// Server-rendered page and its form actions
	r.Group(func(r chi.Router) {
		r.Use(h.pageSession)

		r.Get("/", h.Index)
		r.Post("/wallet/connect", h.ConnectWalletForm)
		r.Post("/wallet/disconnect", h.DisconnectWalletForm)
		r.Post("/events/{eventID}/buy", h.BuyTicketForm)
		r.Post("/transaction/dismiss", h.DismissTransactionForm)
		r.Get("/tickets/{ticketID}/explorer", h.ViewOnExplorer)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)
		r.Get("/events", h.ListEvents)
		r.Get("/events/{eventID}", h.GetEvent)

		r.Group(func(r chi.Router) {
			r.Use(h.apiSession)

			r.Get("/session", h.GetSession)
			r.Delete("/session", h.EndSession)
			r.Post("/wallet/connect", h.ConnectWallet)
			r.Post("/wallet/disconnect", h.DisconnectWallet)
			r.Post("/purchases", h.BuyTicket)
			r.Delete("/transaction", h.DismissTransaction)
			r.Get("/tickets", h.ListTickets)
		})
	})

	return r
}
