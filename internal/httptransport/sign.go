package httptransport

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
)

// SignHMACSHA256Hex computes the hex-encoded HMAC-SHA256 of payload under
// secret, as used by Binance, Bybit and Coinbase request signing.
func SignHMACSHA256Hex(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignHMACSHA256Base64 computes the base64-encoded HMAC-SHA256 of payload
// under secret, as used by Bitget, OKX and KuCoin request signing.
func SignHMACSHA256Base64(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignHMACSHA512Base64 computes the base64-encoded HMAC-SHA512 of payload
// under secret. No provider in this module calls it; Coinbase signs with
// SignHMACSHA256Hex.
func SignHMACSHA512Base64(secret, payload string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
