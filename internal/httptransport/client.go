// Package httptransport builds the shared *http.Client every provider
// package issues requests through, and the HMAC request-signing helpers
// common to Binance/Bybit/Bitget/OKX/KuCoin's private endpoints.
//
// The client is built on hashicorp/go-retryablehttp purely for its pooled
// transport and connection-reuse defaults; RetryMax is pinned to 0 because
// retry decisions belong to internal/retryclassifier, not to the HTTP
// layer -- a second retry loop underneath the classifier's would silently
// double the effective attempt budget and desynchronize TimeProfile
// attempt counts from what actually happened on the wire.
package httptransport

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/daglabs/gatewaygo/internal/obs"
)

// NewClient returns a pooled, connection-reusing HTTP client with no
// built-in retries and the given per-request timeout.
func NewClient(timeout time.Duration) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout
	log := obs.Logger(obs.SubsystemTransport)
	rc.ErrorHandler = func(resp *http.Response, err error, numTries int) (*http.Response, error) {
		if err != nil {
			log.Debugf("transport error after %d tries: %v", numTries, err)
		}
		return resp, err
	}
	return rc.StandardClient()
}
