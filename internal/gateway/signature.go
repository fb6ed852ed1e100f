package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature reports whether the supplied callback signature matches
// HMAC-SHA256(secret, orderID + "|" + paymentID) as a lowercase hex digest.
// The comparison is constant-time. This is the sole admission gate keeping
// forged payment claims out of the record store.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
