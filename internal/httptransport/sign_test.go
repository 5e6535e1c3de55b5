package httptransport

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestSignHMACSHA256Hex(t *testing.T) {
	tests := []struct {
		secret  string
		payload string
		want    string
	}{
		{"key", "The quick brown fox jumps over the lazy dog", "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"},
		{"", "", "b613679a0814d9ec772f95d778c35fc5ff1697c493715653c6c712144292c5ad"},
	}
	for i, test := range tests {
		got := SignHMACSHA256Hex(test.secret, test.payload)
		if got != test.want {
			t.Errorf("#%d: SignHMACSHA256Hex(%s) = %s, want %s\n%s", i, spew.Sdump(test), got, test.want, spew.Sdump(got))
		}
	}
}

func TestSignHMACSHA256Base64(t *testing.T) {
	tests := []struct {
		secret  string
		payload string
		want    string
	}{
		{"key", "The quick brown fox jumps over the lazy dog", "97yD9DBThCSxMpjmqm+xQ+9NWaFJRhdZl0edvC0aPNg="},
	}
	for i, test := range tests {
		got := SignHMACSHA256Base64(test.secret, test.payload)
		if got != test.want {
			t.Errorf("#%d: SignHMACSHA256Base64(%+v) = %s, want %s", i, test, got, test.want)
		}
	}
}

func TestSignHMACSHA512Base64(t *testing.T) {
	tests := []struct {
		secret  string
		payload string
		want    string
	}{
		{"key", "The quick brown fox jumps over the lazy dog", "tCrwkFe6weLUFwjkipAuCbX/fxKrQopP6GZTxz3SSPuC+UilSfe3kaW0GRXuTR7Dk1NX5OIxclDQNyr6Lr7rOg=="},
	}
	for i, test := range tests {
		got := SignHMACSHA512Base64(test.secret, test.payload)
		if got != test.want {
			t.Errorf("#%d: SignHMACSHA512Base64(%+v) = %s, want %s", i, test, got, test.want)
		}
	}
}

func TestSignHMACFunctionsVaryWithSecret(t *testing.T) {
	a := SignHMACSHA256Hex("secret-a", "payload")
	b := SignHMACSHA256Hex("secret-b", "payload")
	if a == b {
		t.Errorf("SignHMACSHA256Hex produced identical digests for distinct secrets: %s", a)
	}
}
