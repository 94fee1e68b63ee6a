package view

import "github.com/vogiaan1904/ticketbottle-nftmarket/internal/models"

type WalletPanel struct {
	Connected bool
	Address   string
	Hint      string
	Button    Button
}

func NewWalletPanel(w models.WalletSession) WalletPanel {
	switch {
	case w.Connected:
		return WalletPanel{
			Connected: true,
			Address:   AbbreviateAddress(w.Address),
			Button:    Button{Label: "Disconnect", Variant: "outline", Action: ActionDisconnect},
		}
	case w.Connecting:
		return WalletPanel{
			Hint:   "Connect to buy NFT tickets",
			Button: Button{Label: "Connecting...", Variant: "wallet", Action: ActionConnect, Disabled: true},
		}
	default:
		return WalletPanel{
			Hint:   "Connect to buy NFT tickets",
			Button: Button{Label: "Connect Wallet", Variant: "wallet", Action: ActionConnect},
		}
	}
}
