package redis

import "fmt"

const keyPrefix = "nftmarket"

func eventsIndexKey() string {
	return fmt.Sprintf("%s:events", keyPrefix)
}

func eventKey(eID string) string {
	return fmt.Sprintf("%s:event:%s", keyPrefix, eID)
}

func sessionKey(ssID string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, ssID)
}

func sessionTicketsKey(ssID string) string {
	return fmt.Sprintf("%s:session:%s:tickets", keyPrefix, ssID)
}

func ticketKey(tID string) string {
	return fmt.Sprintf("%s:ticket:%s", keyPrefix, tID)
}
