package checkoutpaystack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"R1"}}`)
	signature := computeSignature(body, "sk_test_123")

	t.Run("Hex encoded sha512", func(t *testing.T) {
		assert.Len(t, signature, 128)
	})

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, isValidSignature(body, signature, "sk_test_123"))
	})

	t.Run("Upper case hex", func(t *testing.T) {
		assert.True(t, isValidSignature(body, strings.ToUpper(signature), "sk_test_123"))
	})

	t.Run("Other secret", func(t *testing.T) {
		assert.False(t, isValidSignature(body, signature, "sk_test_456"))
	})

	t.Run("Tampered body", func(t *testing.T) {
		tampered := []byte(`{"event":"charge.success","data":{"reference":"R2"}}`)
		assert.False(t, isValidSignature(tampered, signature, "sk_test_123"))
	})

	t.Run("Missing signature", func(t *testing.T) {
		assert.False(t, isValidSignature(body, "", "sk_test_123"))
	})

	t.Run("Missing secret", func(t *testing.T) {
		assert.False(t, isValidSignature(body, computeSignature(body, ""), ""))
	})
}
