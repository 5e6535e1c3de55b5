package types

// OrderStatus is the canonical order status enum (spec.md §3).
type OrderStatus string

const (
	StatusNew             OrderStatus = "NEW"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
	StatusCanceled        OrderStatus = "CANCELED"
)

// OrderType is the canonical order type enum.
type OrderType string

const (
	TypeLimit  OrderType = "LIMIT"
	TypeMarket OrderType = "MARKET"
)

// OrderSide is the canonical side enum.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// PositionSide is the canonical hedge-mode position side enum.
type PositionSide string

const (
	PositionLong  PositionSide = "LONG"
	PositionShort PositionSide = "SHORT"
	PositionBoth  PositionSide = "BOTH"
)

// Fill is one execution against a CanonicalOrder.
type Fill struct {
	Price           string
	Qty             string
	Commission      string
	CommissionAsset string
	TradeID         string
}

// CanonicalOrder is the normalized order shape every provider maps into.
// Decimal fields are kept as strings end to end to avoid float precision
// loss; see internal/normalizer for the mapping rules and invariants from
// spec.md §3 (ExecutedQty <= OrigQty; FILLED implies fully executed; NEW
// implies untouched).
type CanonicalOrder struct {
	Symbol              string
	OrderID             string
	ClientOrderID       string
	TransactTime        int64 // unix-ms, or -1 if unknown
	UpdateTime          int64 // unix-ms, or -1 if unknown
	Price               string
	OrigQty             string
	ExecutedQty         string
	CummulativeQuoteQty string
	Status              OrderStatus
	Type                OrderType
	Side                OrderSide
	ReduceOnly          *bool
	PositionSide        PositionSide
	Fills               []Fill
}
