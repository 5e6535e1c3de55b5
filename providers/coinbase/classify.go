package coinbase

import (
	"strings"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/internal/retryclassifier"
)

var (
	classifierOnce sync.Once
	classifier     *retryclassifier.Classifier
)

// orderNotFoundSubstrings flags the "order not found" eventual consistency
// response a follow-up getOrder can see immediately after a successful
// create/cancel (spec.md §4.4's Post-create consistency).
var orderNotFoundSubstrings = []string{"order not found", "not_found"}

func isOrderNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range orderNotFoundSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// retryableStatuses is Coinbase's retry-on-HTTP-status set (spec.md §6):
// 429,500,502,503,504,520,521,522.
var retryableStatuses = map[int]bool{
	429: true, 500: true, 502: true, 503: true, 504: true, 520: true, 521: true, 522: true,
}

// socketHangUpCap bounds the exponential backoff used for "socket hang up"
// errors (spec.md §4.3: "2-10s exponential").
const socketHangUpCap = 10 * time.Second

// Classifier returns the shared Coinbase retry classification table.
func Classifier() *retryclassifier.Classifier {
	classifierOnce.Do(func() {
		classifier = retryclassifier.New(retryclassifier.Table{
			RetryCap: retryclassifier.DefaultRetryCap,
			TerminalRules: []retryclassifier.TerminalRule{
				{Substrings: []string{"unauthorized"}},
			},
			Rules: []retryclassifier.Rule{
				{
					Substrings: []string{"service unavailable"},
					Delay:      retryclassifier.FlatDelay(5 * time.Second),
				},
				{
					Substrings: []string{"socket hang up"},
					Delay: func(attempt int) time.Duration {
						d := time.Duration(1<<uint(attempt)) * 2 * time.Second
						if d > socketHangUpCap {
							d = socketHangUpCap
						}
						return d
					},
				},
				{
					HTTPStatuses: retryableStatuses,
					Substrings:   append(append([]string{}, retryclassifier.NetworkFaultSubstrings...), retryclassifier.ServerSaturationSubstrings...),
					Delay:        retryclassifier.FlatDelay(10 * time.Second),
				},
			},
		})
	})
	return classifier
}
