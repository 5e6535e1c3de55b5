package types

// BaseAsset describes the tradable asset side of a pair.
type BaseAsset struct {
	Name            string
	MinAmount       string
	MaxAmount       string
	Step            string // step > 0 is an invariant (spec.md §3)
	MaxMarketAmount string
	Multiplier      *string
}

// QuoteAsset describes the pricing asset side of a pair.
type QuoteAsset struct {
	Name      string
	MinAmount string
}

// PriceMultiplier captures an exchange-specific price scaling convention
// (e.g. KuCoin futures inverse contracts).
type PriceMultiplier struct {
	Up       string
	Down     string
	Decimals int
}

// Instrument is the normalized trading-pair metadata (ExchangeInfo in
// spec.md §3).
type Instrument struct {
	Pair                string
	BaseAsset           BaseAsset
	QuoteAsset          QuoteAsset
	MaxOrders           int
	PriceAssetPrecision int // digits after the decimal point, derived from tick size (spec.md §4.5)
	PriceMultiplier     *PriceMultiplier
	MaxLeverage         *string
	MinLeverage         *string
	StepLeverage        *string
}

// LeverageBracket is one tier of a derivatives leverage/maintenance-margin
// bracket table.
type LeverageBracket struct {
	Bracket              int
	InitialLeverage      string
	NotionalCap          string
	NotionalFloor        string
	MaintMarginRatio      string
	Cum                  string
}

// PositionInfo is a normalized open derivatives position.
type PositionInfo struct {
	Symbol           string
	PositionSide     PositionSide
	PositionAmt      string
	EntryPrice       string
	MarkPrice        string
	UnrealizedProfit string
	Leverage         string
	Isolated         bool
	LiquidationPrice string
}

// UserFee is a normalized maker/taker fee pair for a symbol.
type UserFee struct {
	Symbol      string
	MakerFee    string
	TakerFee    string
}

// Candle is a normalized OHLCV bar.
type Candle struct {
	OpenTime  int64
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
	CloseTime int64
}

// TickerPrice is a normalized last-price quote.
type TickerPrice struct {
	Symbol string
	Price  string
}

// FreeAsset is a normalized balance line (spec.md §6).
type FreeAsset struct {
	Asset  string
	Free   string
	Locked string
}

// Trade is a normalized public trade print.
type Trade struct {
	ID        int64
	Price     string
	Qty       string
	Time      int64
	IsBuyerMaker bool
}
