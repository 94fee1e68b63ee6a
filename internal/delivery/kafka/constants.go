package kafka

const (
	TopicWalletConnected    = "wallet.connected"
	TopicWalletDisconnected = "wallet.disconnected"

	TopicTicketMinted   = "ticket.minted"
	TopicTicketBurnt    = "ticket.burnt"
	TopicPurchaseFailed = "purchase.failed"

	TopicTicketCheckedIn = "ticket.checked_in"
)
