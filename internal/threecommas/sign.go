package threecommas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the hex HMAC-SHA256 digest of the request path, keyed by the
// API secret. The vendor authenticates on the path alone, not the method,
// body or a timestamp, so this must not be generalized.
//
// An empty secret still yields a digest; callers are expected to refuse to
// issue requests without a configured secret.
func Sign(path, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(path))
	return hex.EncodeToString(h.Sum(nil))
}
