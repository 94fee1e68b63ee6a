package view

// Abbreviate keeps the first head and last tail runes of s joined by "...".
// Strings too short to shorten are returned unchanged.
func Abbreviate(s string, head, tail int) string {
	r := []rune(s)
	if head < 0 || tail < 0 || len(r) <= head+tail {
		return s
	}
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}

func AbbreviateAddress(addr string) string {
	return Abbreviate(addr, 6, 4)
}

func AbbreviateTxID(txID string) string {
	return Abbreviate(txID, 8, 8)
}
