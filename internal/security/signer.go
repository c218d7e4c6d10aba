package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// URLSigner signs and verifies file download URLs using HMAC-SHA256.
// Signatures are derived deterministically from the object name, an expiry
// timestamp and a secret key, so no shared state is required.
type URLSigner struct {
	secret []byte
}

// NewURLSigner creates a new stateless HMAC-based URL signer.
func NewURLSigner(secret string) *URLSigner {
	return &URLSigner{secret: []byte(secret)}
}

// Sign returns the signature and unix expiry for the given object name.
func (s *URLSigner) Sign(name string, ttl time.Duration) (sig string, expires int64, err error) {
	if name == "" {
		return "", 0, fmt.Errorf("object name is required")
	}
	expires = time.Now().Add(ttl).Unix()
	return s.compute(name, expires), expires, nil
}

// Verify reports whether sig is a valid, unexpired signature for name.
func (s *URLSigner) Verify(name, sig string, expires int64) bool {
	if name == "" || sig == "" {
		return false
	}
	if time.Now().Unix() > expires {
		return false
	}
	expected := s.compute(name, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *URLSigner) compute(name string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(name))
	mac.Write([]byte{0})
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
