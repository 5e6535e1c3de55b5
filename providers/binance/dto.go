package binance

// exchangeInfoResponse is the shape common to /api/v3/exchangeInfo,
// /fapi/v1/exchangeInfo and /dapi/v1/exchangeInfo (field names line up
// across the three; futures adds a few fields this struct ignores).
type exchangeInfoResponse struct {
	Symbols []symbolInfo `json:"symbols"`
}

type symbolInfo struct {
	Symbol     string        `json:"symbol"`
	BaseAsset  string        `json:"baseAsset"`
	QuoteAsset string        `json:"quoteAsset"`
	Filters    []symbolFilter `json:"filters"`
}

type symbolFilter struct {
	FilterType  string `json:"filterType"`
	TickSize    string `json:"tickSize"`
	StepSize    string `json:"stepSize"`
	MinQty      string `json:"minQty"`
	MaxQty      string `json:"maxQty"`
	MinNotional string `json:"minNotional"`
	MaxNumOrders int   `json:"maxNumOrders"`
}

type orderResponse struct {
	Symbol              string `json:"symbol"`
	OrderID             int64  `json:"orderId"`
	ClientOrderID       string `json:"clientOrderId"`
	TransactTime        int64  `json:"transactTime"`
	UpdateTime          int64  `json:"updateTime"`
	Price               string `json:"price"`
	OrigQty             string `json:"origQty"`
	ExecutedQty         string `json:"executedQty"`
	CummulativeQuoteQty string `json:"cummulativeQuoteQty"`
	Status              string `json:"status"`
	Type                string `json:"type"`
	Side                string `json:"side"`
	ReduceOnly          bool   `json:"reduceOnly"`
	PositionSide        string `json:"positionSide"`
	Fills               []struct {
		Price           string `json:"price"`
		Qty             string `json:"qty"`
		Commission      string `json:"commission"`
		CommissionAsset string `json:"commissionAsset"`
		TradeID         int64  `json:"tradeId"`
	} `json:"fills"`
}

type balanceEntry struct {
	Asset  string `json:"asset"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
}

type accountResponse struct {
	Balances []balanceEntry `json:"balances"`
}

type futuresBalanceEntry struct {
	Asset            string `json:"asset"`
	AvailableBalance string `json:"availableBalance"`
	Balance          string `json:"balance"`
}

type tickerPriceEntry struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type tradeEntry struct {
	ID           int64  `json:"id"`
	Price        string `json:"price"`
	Qty          string `json:"qty"`
	Time         int64  `json:"time"`
	IsBuyerMaker bool   `json:"isBuyerMaker"`
}

// candleRow is Binance's heterogeneous-array kline format: decoded as
// []interface{} and converted by normalizeCandle.
type candleRow []interface{}

type leverageBracketGroup struct {
	Symbol    string `json:"symbol"`
	Brackets  []struct {
		Bracket          int    `json:"bracket"`
		InitialLeverage  int    `json:"initialLeverage"`
		NotionalCap      string `json:"notionalCap"`
		NotionalFloor    string `json:"notionalFloor"`
		MaintMarginRatio float64 `json:"maintMarginRatio"`
		Cum              float64 `json:"cum"`
	} `json:"brackets"`
}

type positionRiskEntry struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	UnRealizedProfit string `json:"unRealizedProfit"`
	Leverage         string `json:"leverage"`
	Isolated         bool   `json:"isolated"`
	LiquidationPrice string `json:"liquidationPrice"`
	PositionSide     string `json:"positionSide"`
}
