package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/view"
)

// Index renders the marketplace for the current viewer.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ss := sessionFrom(ctx)

	st, err := h.mktSvc.GetPageState(ctx, ss.ID)
	if err != nil {
		h.l.Errorf(ctx, "delivery.http.Index: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := view.NewIndexPage(h.content, st.Session, st.Events, st.Tickets, h.simConf.ExplorerURL)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", page); err != nil {
		h.l.Errorf(ctx, "delivery.http.Index: %v", err)
	}
}

func (h *Handler) ConnectWalletForm(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	_, err := h.walletSvc.ConnectWallet(r.Context(), ss.ID)
	h.redirectHome(w, r, err)
}

func (h *Handler) DisconnectWalletForm(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	_, err := h.walletSvc.DisconnectWallet(r.Context(), ss.ID)
	h.redirectHome(w, r, err)
}

func (h *Handler) BuyTicketForm(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	_, err := h.mktSvc.BuyTicket(r.Context(), service.BuyTicketInput{
		SessionID: ss.ID,
		EventID:   chi.URLParam(r, "eventID"),
	})
	h.redirectHome(w, r, err)
}

func (h *Handler) DismissTransactionForm(w http.ResponseWriter, r *http.Request) {
	ss := sessionFrom(r.Context())
	err := h.mktSvc.DismissTransaction(r.Context(), ss.ID)
	h.redirectHome(w, r, err)
}

func (h *Handler) ViewOnExplorer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ss := sessionFrom(ctx)

	t, err := h.mktSvc.GetTicket(ctx, ss.ID, chi.URLParam(r, "ticketID"))
	if err != nil || t.TxHash == "" {
		http.NotFound(w, r)
		return
	}

	h.l.Infof(ctx, "View on explorer, ticket_id: %s, tx_hash: %s", t.TicketID, t.TxHash)
	http.Redirect(w, r, h.simConf.ExplorerURL+t.TxHash, http.StatusFound)
}

// redirectHome answers a form post. Rejected actions behave like a button
// that does nothing; only unexpected failures are shown.
func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !isSilent(err) {
		h.l.Errorf(r.Context(), "delivery.http.%s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
