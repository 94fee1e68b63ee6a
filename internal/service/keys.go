package service

func connectTaskKey(ssID string) string {
	return "wallet:" + ssID
}

func purchaseTaskKey(ssID, eID string) string {
	return "purchase:" + ssID + ":" + eID
}
