package coinbase

type accountEntry struct {
	Currency         string `json:"currency"`
	AvailableBalance struct {
		Value string `json:"value"`
	} `json:"available_balance"`
	Hold struct {
		Value string `json:"value"`
	} `json:"hold"`
}

type accountsResponse struct {
	Accounts []accountEntry `json:"accounts"`
}

type productEntry struct {
	ProductId        string `json:"product_id"`
	BaseCurrencyId   string `json:"base_currency_id"`
	QuoteCurrencyId  string `json:"quote_currency_id"`
	BaseIncrement    string `json:"base_increment"`
	QuoteIncrement   string `json:"quote_increment"`
	BaseMinSize      string `json:"base_min_size"`
	BaseMaxSize      string `json:"base_max_size"`
	Price            string `json:"price"`
}

type productsResponse struct {
	Products []productEntry `json:"products"`
}

type orderEntry struct {
	OrderId              string `json:"order_id"`
	ClientOrderId        string `json:"client_order_id"`
	ProductId            string `json:"product_id"`
	Side                 string `json:"side"`
	Status               string `json:"status"`
	CompletionPercentage string `json:"completion_percentage"`
	CreatedTime          string `json:"created_time"`
	OrderConfiguration   struct {
		MarketMarketIoc *struct {
			BaseSize string `json:"base_size"`
		} `json:"market_market_ioc"`
		LimitLimitGtc *struct {
			BaseSize   string `json:"base_size"`
			LimitPrice string `json:"limit_price"`
		} `json:"limit_limit_gtc"`
	} `json:"order_configuration"`
	AverageFilledPrice string `json:"average_filled_price"`
	FilledSize         string `json:"filled_size"`
	FilledValue        string `json:"filled_value"`
}

type orderResponse struct {
	Order orderEntry `json:"order"`
}

type candleRow struct {
	Start  string `json:"start"`
	Low    string `json:"low"`
	High   string `json:"high"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
}

type candlesResponse struct {
	Candles []candleRow `json:"candles"`
}

type tradeEntry struct {
	TradeId string `json:"trade_id"`
	Price   string `json:"price"`
	Size    string `json:"size"`
	Time    string `json:"time"`
	Side    string `json:"side"`
}

type tradesResponse struct {
	Trades []tradeEntry `json:"trades"`
}
