package bitget

type balanceEntry struct {
	Coin      string `json:"coin"`
	Available string `json:"available"`
	Frozen    string `json:"frozen"`
	Locked    string `json:"locked"`
}

type tickerEntry struct {
	Symbol    string `json:"symbol"`
	LastPr    string `json:"lastPr"`
}

type symbolEntry struct {
	Symbol        string `json:"symbol"`
	BaseCoin      string `json:"baseCoin"`
	QuoteCoin     string `json:"quoteCoin"`
	PriceScale    string `json:"priceScale"`
	QuantityScale string `json:"quantityScale"`
	MinTradeAmount string `json:"minTradeAmount"`
	MinTradeUSDT  string `json:"minTradeUSDT"`
	MaxMarketOrderQty string `json:"maxMarketOrderQty"`
	MaxSymbolOrderNum int `json:"maxSymbolOrderNum"`
}

type orderEntry struct {
	Symbol        string `json:"symbol"`
	OrderId       string `json:"orderId"`
	ClientOid     string `json:"clientOid"`
	CTime         string `json:"cTime"`
	UTime         string `json:"uTime"`
	Price         string `json:"price"`
	PriceAvg      string `json:"priceAvg"`
	Size          string `json:"size"`
	BaseVolume    string `json:"baseVolume"`
	QuoteVolume   string `json:"quoteVolume"`
	Status        string `json:"status"`
	OrderType     string `json:"orderType"`
	Side          string `json:"side"`
	ReduceOnly    string `json:"reduceOnly"`
	TradeSide     string `json:"tradeSide"`
}

type candleRow []string

type tradeEntry struct {
	TradeId string `json:"tradeId"`
	Price   string `json:"price"`
	Size    string `json:"size"`
	Ts      string `json:"ts"`
	Side    string `json:"side"`
}

type positionEntry struct {
	Symbol           string `json:"symbol"`
	HoldSide         string `json:"holdSide"`
	Total            string `json:"total"`
	OpenPriceAvg     string `json:"openPriceAvg"`
	MarkPrice        string `json:"markPrice"`
	UnrealizedPL     string `json:"unrealizedPL"`
	Leverage         string `json:"leverage"`
	MarginMode       string `json:"marginMode"`
	LiquidationPrice string `json:"liquidationPrice"`
}

type feeEntry struct {
	Symbol     string `json:"symbol"`
	MakerFeeRate string `json:"makerFeeRate"`
	TakerFeeRate string `json:"takerFeeRate"`
}

type bracketEntry struct {
	Level       int    `json:"level"`
	StartUnit   string `json:"startUnit"`
	EndUnit     string `json:"endUnit"`
	Leverage    string `json:"leverage"`
	KeepMarginRate string `json:"keepMarginRate"`
}
