package types

// CandleInterval is the canonical candle-interval enum (spec.md §4.5). Each
// provider package maps these to its own wire encoding and back.
type CandleInterval string

const (
	Interval1m  CandleInterval = "1m"
	Interval3m  CandleInterval = "3m"
	Interval5m  CandleInterval = "5m"
	Interval15m CandleInterval = "15m"
	Interval30m CandleInterval = "30m"
	Interval1h  CandleInterval = "1h"
	Interval2h  CandleInterval = "2h"
	Interval4h  CandleInterval = "4h"
	Interval8h  CandleInterval = "8h"
	Interval1d  CandleInterval = "1d"
	Interval1w  CandleInterval = "1w"
)

// FuturesMode selects which derivatives ledger/product a facade instance is
// constructed for. The zero value, FuturesNone, means a spot-only instance.
type FuturesMode string

const (
	FuturesNone FuturesMode = ""
	FuturesUSDM FuturesMode = "usdm"
	FuturesCoinM FuturesMode = "coinm"
)
