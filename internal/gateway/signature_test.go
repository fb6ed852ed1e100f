package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"
	valid := sign(secret, "order_abc", "pay_xyz")

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
		want      bool
	}{
		{"valid", "order_abc", "pay_xyz", valid, secret, true},
		{"wrong secret", "order_abc", "pay_xyz", valid, "other_secret", false},
		{"swapped ids", "pay_xyz", "order_abc", valid, secret, false},
		{"tampered order id", "order_abd", "pay_xyz", valid, secret, false},
		{"tampered payment id", "order_abc", "pay_xyy", valid, secret, false},
		{"truncated signature", "order_abc", "pay_xyz", valid[:len(valid)-2], secret, false},
		{"empty signature", "order_abc", "pay_xyz", "", secret, false},
		{"uppercase hex rejected", "order_abc", "pay_xyz", toUpperHex(valid), secret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySignature(tt.orderID, tt.paymentID, tt.signature, tt.secret)
			assert.Equal(t, tt.want, got)
		})
	}
}

func toUpperHex(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'a' && c <= 'f' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

func TestVerifySignatureDeterministic(t *testing.T) {
	const secret = "s3cr3t"
	sig := sign(secret, "order_1", "pay_1")
	assert.True(t, VerifySignature("order_1", "pay_1", sig, secret))
	assert.True(t, VerifySignature("order_1", "pay_1", sig, secret))
}
