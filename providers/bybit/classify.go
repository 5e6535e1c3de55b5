package bybit

import (
	"strings"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
)

var (
	classifierOnce sync.Once
	classifier     *retryclassifier.Classifier
)

// orderNotFoundSubstrings flags the "order not found" eventual consistency
// response a follow-up getOrder can see immediately after a successful
// create/cancel (spec.md §4.4's Post-create consistency).
var orderNotFoundSubstrings = []string{"order not found"}

func isOrderNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range orderNotFoundSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// retryableCodes is Bybit's retry-on-code set (spec.md §6).
var retryableCodes = map[string]bool{
	"10006": true, "12816": true, "12146": true, "12147": true,
	"5004": true, "10000": true, "10016": true, "12149": true,
}

// positionIdxMismatchCode is Bybit's "position idx not match position mode"
// rejection (spec.md §4.4's futures idempotency case); the facade handles
// this one itself by recomputing positionIdx and retrying once, rather than
// the generic classifier loop, so it is excluded from the retryable set.
const positionIdxMismatchCode = "10001"

// Classifier returns the shared Bybit retry classification table.
func Classifier() *retryclassifier.Classifier {
	classifierOnce.Do(func() {
		classifier = retryclassifier.New(retryclassifier.Table{
			RetryCap: retryclassifier.DefaultRetryCap,
			Rules: []retryclassifier.Rule{
				{
					Codes:        retryableCodes,
					HTTPStatuses: map[int]bool{502: true},
					Substrings:   append(append([]string{}, retryclassifier.NetworkFaultSubstrings...), retryclassifier.ServerSaturationSubstrings...),
					Delay:        retryclassifier.LinearDelay(300*time.Millisecond, 200*time.Millisecond),
					Hint: func(e *retryclassifier.ExchangeError, attempt int) *governor.GovernorHint {
						if e.Code == "10006" {
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
