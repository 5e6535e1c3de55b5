package bitget

import (
	"strings"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
)

var (
	classifierOnce sync.Once
	classifier     *retryclassifier.Classifier
)

// retryableCodes is Bitget's retry-on-code set (spec.md §6).
var retryableCodes = map[string]bool{
	"10006": true, "12816": true, "12146": true, "12147": true,
	"5004": true, "10000": true, "10016": true, "12149": true,
}

// orderNotFoundSubstrings flags the "order not found immediately after
// create/cancel" eventual consistency case (spec.md §4.3's amplification
// case), handled with the slower growing schedule instead of the generic
// linear delay.
var orderNotFoundSubstrings = []string{"order does not exist", "order not found"}

// Classifier returns the shared Bitget retry classification table.
func Classifier() *retryclassifier.Classifier {
	classifierOnce.Do(func() {
		amplified := facade.AmplifiedSchedule()
		classifier = retryclassifier.New(retryclassifier.Table{
			RetryCap: retryclassifier.DefaultRetryCap,
			Rules: []retryclassifier.Rule{
				{
					Substrings: orderNotFoundSubstrings,
					Delay:      func(attempt int) time.Duration { return amplified(attempt) },
				},
				{
					Codes:        retryableCodes,
					HTTPStatuses: map[int]bool{502: true, 429: true},
					Substrings:   append(append([]string{}, retryclassifier.NetworkFaultSubstrings...), retryclassifier.ServerSaturationSubstrings...),
					Delay:        retryclassifier.LinearDelay(300*time.Millisecond, 200*time.Millisecond),
					Hint: func(e *retryclassifier.ExchangeError, attempt int) *governor.GovernorHint {
						if e.HTTPStatus == 429 {
							return &governor.GovernorHint{Saturate: true}
						}
						return nil
					},
				},
				{
					Substrings: retryclassifier.ClockSkewSubstrings,
					Delay:      retryclassifier.FlatDelay(100 * time.Millisecond),
				},
			},
			DoubleCapSubstrings: retryclassifier.ClockSkewSubstrings,
		})
	})
	return classifier
}

func isOrderNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range orderNotFoundSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
