package view

import "github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"

type TransactionConfig struct {
	Icon        string
	Title       string
	Description string
	BadgeText   string
	BadgeClass  string
	CardClass   string
}

var transactionConfigs = map[models.TransactionState]TransactionConfig{
	models.TransactionSuccess: {
		Icon:        "check-circle",
		Title:       "Transaction Successful!",
		Description: "Your NFT ticket has been minted successfully",
		BadgeText:   "Success",
		BadgeClass:  "badge-success",
		CardClass:   "card-success",
	},
	models.TransactionFraud: {
		Icon:        "flame",
		Title:       "Fraud Detected - Ticket Burnt",
		Description: "Suspicious activity detected. The ticket has been permanently destroyed",
		BadgeText:   "Fraud Detected",
		BadgeClass:  "badge-fraud",
		CardClass:   "card-fraud",
	},
	models.TransactionFailed: {
		Icon:        "alert-triangle",
		Title:       "Transaction Failed",
		Description: "The transaction could not be completed. Please try again",
		BadgeText:   "Failed",
		BadgeClass:  "badge-destructive",
		CardClass:   "card-destructive",
	},
	models.TransactionPending: pendingTransaction,
}

var pendingTransaction = TransactionConfig{
	Icon:        "clock",
	Title:       "Transaction Pending",
	Description: "Your transaction is being processed on the blockchain",
	BadgeText:   "Pending",
	BadgeClass:  "badge-muted",
	CardClass:   "card-muted card-pulse",
}

type TransactionPanel struct {
	TransactionConfig
	State       models.TransactionState
	EventName   string
	TicketID    string
	TxID        string
	ExplorerURL string
	Reason      string
}

// NewTransactionPanel returns nil when there is no transaction to show.
// Unknown states render like a pending transaction.
func NewTransactionPanel(tx *models.Transaction, explorerBase string) *TransactionPanel {
	if tx == nil {
		return nil
	}

	cfg, ok := transactionConfigs[tx.State]
	if !ok {
		cfg = pendingTransaction
	}

	p := &TransactionPanel{
		TransactionConfig: cfg,
		State:             tx.State,
		EventName:         tx.EventTitle,
		Reason:            tx.Reason,
	}

	if tx.State == models.TransactionSuccess {
		p.TicketID = tx.TicketID
	}
	if tx.TxHash != "" {
		p.TxID = AbbreviateTxID(tx.TxHash)
		p.ExplorerURL = explorerBase + tx.TxHash
	}

	return p
}
