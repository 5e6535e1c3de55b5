package bybit

type balanceEntry struct {
	Coin            string `json:"coin"`
	WalletBalance   string `json:"walletBalance"`
	Locked          string `json:"locked"`
	AvailableToWithdraw string `json:"availableToWithdraw"`
}

type walletBalanceResponse struct {
	List []struct {
		Coin []balanceEntry `json:"coin"`
	} `json:"list"`
}

type tickerEntry struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"`
}

type tickersResponse struct {
	List []tickerEntry `json:"list"`
}

type instrumentEntry struct {
	Symbol      string `json:"symbol"`
	BaseCoin    string `json:"baseCoin"`
	QuoteCoin   string `json:"quoteCoin"`
	LotSizeFilter struct {
		BasePrecision string `json:"basePrecision"`
		QtyStep       string `json:"qtyStep"`
		MinOrderQty   string `json:"minOrderQty"`
		MaxOrderQty   string `json:"maxOrderQty"`
	} `json:"lotSizeFilter"`
	PriceFilter struct {
		TickSize string `json:"tickSize"`
	} `json:"priceFilter"`
	LeverageFilter struct {
		MinLeverage string `json:"minLeverage"`
		MaxLeverage string `json:"maxLeverage"`
	} `json:"leverageFilter"`
}

type instrumentsResponse struct {
	List []instrumentEntry `json:"list"`
}

type orderEntry struct {
	Symbol        string `json:"symbol"`
	OrderID       string `json:"orderId"`
	OrderLinkID   string `json:"orderLinkId"`
	CreatedTime   string `json:"createdTime"`
	UpdatedTime   string `json:"updatedTime"`
	Price         string `json:"price"`
	Qty           string `json:"qty"`
	CumExecQty    string `json:"cumExecQty"`
	CumExecValue  string `json:"cumExecValue"`
	OrderStatus   string `json:"orderStatus"`
	OrderType     string `json:"orderType"`
	Side          string `json:"side"`
	ReduceOnly    bool   `json:"reduceOnly"`
	PositionIdx   int    `json:"positionIdx"`
	AvgPrice      string `json:"avgPrice"`
}

type orderListResponse struct {
	List []orderEntry `json:"list"`
}

type candleEntry []string

type candleListResponse struct {
	List []candleEntry `json:"list"`
}

type tradeEntry struct {
	ExecID    string `json:"execId"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Time      string `json:"time"`
	Side      string `json:"side"`
}

type tradeListResponse struct {
	List []tradeEntry `json:"list"`
}

type positionEntry struct {
	Symbol           string `json:"symbol"`
	Side             string `json:"side"`
	Size             string `json:"size"`
	EntryPrice       string `json:"avgPrice"`
	MarkPrice        string `json:"markPrice"`
	UnrealisedPnl    string `json:"unrealisedPnl"`
	Leverage         string `json:"leverage"`
	TradeMode        int    `json:"tradeMode"`
	LiqPrice         string `json:"liqPrice"`
	PositionIdx      int    `json:"positionIdx"`
}

type positionListResponse struct {
	List []positionEntry `json:"list"`
}

type feeRateEntry struct {
	Symbol       string `json:"symbol"`
	MakerFeeRate string `json:"makerFeeRate"`
	TakerFeeRate string `json:"takerFeeRate"`
}

type feeRateResponse struct {
	List []feeRateEntry `json:"list"`
}

type bracketEntry struct {
	Tier                int    `json:"id"`
	RiskLimitValue      string `json:"riskLimitValue"`
	MaintainMargin      string `json:"maintainMargin"`
	MaxLeverage         string `json:"maxLeverage"`
}

type bracketListResponse struct {
	List []bracketEntry `json:"list"`
}
