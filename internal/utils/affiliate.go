package utils

import "fmt"

// AffiliateCode derives the permanent affiliate code for a user id:
// the prefix, id mod 26, the literal "U", then the letter 'A'+(id mod 26).
func AffiliateCode(prefix string, userID uint) string {
	n := userID % 26
	return fmt.Sprintf("%s%dU%c", prefix, n, rune('A'+n))
}
