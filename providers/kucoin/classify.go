package kucoin

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

// retryableCodes is KuCoin's retry-on-code set (spec.md §6): 429000,
// 200004, 400000, 500000 alongside the HTTP statuses below.
var retryableCodes = map[string]bool{
	"429000": true, "200004": true, "400000": true, "500000": true,
}

// orderNotFoundSubstrings flags KuCoin's "100001"-equivalent "order does
// not exist" eventual-consistency response (spec.md §4.3), amplified with
// the same growing schedule as Bitget's case.
var orderNotFoundSubstrings = []string{"order does not exist", "order not found"}

// Classifier returns the shared KuCoin retry classification table.
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
					// 429/530: 30s; 1015: 50s; 524/520: 10s; 502: 10s
					// (spec.md §4.3's numeric table).
					HTTPStatuses: map[int]bool{429: true, 530: true},
					Delay:        retryclassifier.FlatDelay(30 * time.Second),
				},
				{
					Codes:        map[string]bool{"1015": true},
					HTTPStatuses: map[int]bool{1015: true},
					Delay:        retryclassifier.FlatDelay(50 * time.Second),
				},
				{
					HTTPStatuses: map[int]bool{524: true, 520: true, 502: true},
					Delay:        retryclassifier.FlatDelay(10 * time.Second),
				},
				{
					Codes:        retryableCodes,
					HTTPStatuses: map[int]bool{403: true, 500: true, 503: true, 504: true},
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
			// Clock-skew retry budget is doubled (spec.md §4.3/§7), as in
			// every other provider's table.
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
