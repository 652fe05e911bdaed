package checkoutpaystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// computeSignature returns the hex encoded HMAC-SHA512 paystack puts in x-paystack-signature
func computeSignature(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func isValidSignature(body []byte, signature string, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected := computeSignature(body, secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}
