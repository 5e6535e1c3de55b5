package kucoin

type balanceEntry struct {
	Currency  string `json:"currency"`
	Available string `json:"available"`
	Holds     string `json:"holds"`
	Balance   string `json:"balance"`
}

type futuresBalanceEntry struct {
	Currency      string  `json:"currency"`
	AvailableBalance string `json:"availableBalance"`
	FrozenFunds   string  `json:"frozenFunds"`
}

type tickerEntry struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Last   string `json:"last"`
}

type tickersResponse struct {
	Ticker []tickerEntry `json:"ticker"`
}

type symbolEntry struct {
	Symbol         string `json:"symbol"`
	BaseCurrency   string `json:"baseCurrency"`
	QuoteCurrency  string `json:"quoteCurrency"`
	BaseMinSize    string `json:"baseMinSize"`
	BaseMaxSize    string `json:"baseMaxSize"`
	BaseIncrement  string `json:"baseIncrement"`
	QuoteMinSize   string `json:"quoteMinSize"`
	QuoteIncrement string `json:"quoteIncrement"`
	PriceIncrement string `json:"priceIncrement"`
}

type contractEntry struct {
	Symbol         string `json:"symbol"`
	BaseCurrency   string `json:"baseCurrency"`
	QuoteCurrency  string `json:"quoteCurrency"`
	LotSize        float64 `json:"lotSize"`
	MaxOrderQty    float64 `json:"maxOrderQty"`
	TickSize       float64 `json:"tickSize"`
	MultiplierCoeff float64 `json:"multiplier"`
	IsInverse      bool   `json:"isInverse"`
	MaxLeverage    float64 `json:"maxLeverage"`
}

type orderEntry struct {
	Id          string `json:"id"`
	ClientOid   string `json:"clientOid"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	Size        string `json:"size"`
	DealSize    string `json:"dealSize"`
	DealFunds   string `json:"dealFunds"`
	DealValue   string `json:"dealValue"`
	IsActive    bool   `json:"isActive"`
	CancelExist bool   `json:"cancelExist"`
	CreatedAt   int64  `json:"createdAt"`
	// Futures-specific fields.
	AvgDealPrice string `json:"avgDealPrice"`
	FilledSize   string `json:"filledSize"`
	FilledValue  string `json:"filledValue"`
	IsOpen       bool   `json:"isOpen"`
	Status       string `json:"status"`
	ReduceOnly   bool   `json:"reduceOnly"`
}

type orderListResponse struct {
	Items []orderEntry `json:"items"`
}

type candleRow []string

type tradeEntry struct {
	Price string `json:"price"`
	Size  string `json:"size"`
	Time  int64  `json:"time"`
	Side  string `json:"side"`
}

type positionEntry struct {
	Symbol           string  `json:"symbol"`
	CurrentQty       float64 `json:"currentQty"`
	AvgEntryPrice    float64 `json:"avgEntryPrice"`
	MarkPrice        float64 `json:"markPrice"`
	UnrealisedPnl    float64 `json:"unrealisedPnl"`
	RealLeverage     float64 `json:"realLeverage"`
	CrossMode        bool    `json:"crossMode"`
	LiquidationPrice float64 `json:"liquidationPrice"`
}

type feeEntry struct {
	Symbol       string `json:"symbol"`
	MakerFeeRate string `json:"makerFeeRate"`
	TakerFeeRate string `json:"takerFeeRate"`
}
