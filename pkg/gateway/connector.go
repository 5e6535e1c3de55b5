// Package gateway defines the provider-agnostic contract every
// providers/<name> package implements (spec.md component C6, §4.4's method
// list). Callers depend only on Connector; they never import a provider
// package directly except to construct one.
package gateway

import (
	"context"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// OrderRequest is the provider-agnostic order placement payload accepted by
// Connector.OpenOrder.
type OrderRequest struct {
	Symbol       string
	Side         types.OrderSide
	Type         types.OrderType
	Quantity     string
	Price        string // empty for MARKET
	ClientOrderID string
	ReduceOnly   bool
	PositionSide types.PositionSide // futures hedge mode only
}

// OrderRef identifies an existing order for lookup/cancel calls. Exactly one
// of ClientOrderID or OrderID is expected to be set, per the identifier the
// caller originally used.
type OrderRef struct {
	Symbol        string
	ClientOrderID string
	OrderID       string
}

// Connector is the single surface every provider package exposes. Every
// method returns a sealed types.Result, never a bare error -- callers read
// Result.Data()/Result.Reason() rather than unwrapping a Go error.
//
// Derivatives methods are only meaningful on instances constructed with
// FuturesMode != types.FuturesNone; spot-only instances answer every
// derivatives call with a terminal "Futures type missed" Result.
type Connector interface {
	// Account
	GetBalance(ctx context.Context) types.Result[[]types.FreeAsset]
	GetAPIPermission(ctx context.Context) types.Result[bool]
	GetUID(ctx context.Context) types.Result[string]
	GetAffiliate(ctx context.Context, uid string) types.Result[bool]

	// Orders
	OpenOrder(ctx context.Context, o OrderRequest) types.Result[types.CanonicalOrder]
	GetOrder(ctx context.Context, ref OrderRef) types.Result[types.CanonicalOrder]
	CancelOrder(ctx context.Context, ref OrderRef) types.Result[types.CanonicalOrder]
	CancelOrderByOrderIDAndSymbol(ctx context.Context, symbol, orderID string) types.Result[types.CanonicalOrder]
	GetAllOpenOrders(ctx context.Context, symbol string, returnOrders bool) types.Result[[]types.CanonicalOrder]

	// Market data
	LatestPrice(ctx context.Context, symbol string) types.Result[string]
	GetAllPrices(ctx context.Context) types.Result[[]types.TickerPrice]
	GetCandles(ctx context.Context, symbol string, interval types.CandleInterval, from, to int64, count int) types.Result[[]types.Candle]
	GetTrades(ctx context.Context, symbol string, limit int) types.Result[[]types.Trade]

	// Instruments
	GetExchangeInfo(ctx context.Context, symbol string) types.Result[types.Instrument]
	GetAllExchangeInfo(ctx context.Context) types.Result[[]types.Instrument]

	// Fees
	GetUserFees(ctx context.Context, symbol string) types.Result[types.UserFee]
	GetAllUserFees(ctx context.Context) types.Result[[]types.UserFee]

	// Derivatives (usdm/coinm only; spot instances fail terminally)
	FuturesChangeLeverage(ctx context.Context, symbol string, leverage int) types.Result[int]
	FuturesChangeMarginType(ctx context.Context, symbol string, isolated bool) types.Result[bool]
	FuturesGetHedge(ctx context.Context) types.Result[bool]
	FuturesSetHedge(ctx context.Context, hedge bool) types.Result[bool]
	FuturesGetPositions(ctx context.Context, symbol string) types.Result[[]types.PositionInfo]
	FuturesLeverageBracket(ctx context.Context, symbol string) types.Result[[]types.LeverageBracket]
}

// ErrClientMissing and ErrFuturesTypeMissed are the two pre-flight failure
// reasons checked before any governor/classifier machinery runs (spec.md
// §4.4 steps 1-2).
const (
	ErrClientMissing     = "Cannot connect to"
	ErrFuturesTypeMissed = "Futures type missed"
)
