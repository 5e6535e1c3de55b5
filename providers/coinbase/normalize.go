package coinbase

import (
	"strconv"
	"time"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// normalizeStatus implements spec.md §4.5's Coinbase rule: OPEN|PENDING
// with completion_percentage > 0 -> PARTIALLY_FILLED, else NEW; FILLED ->
// FILLED; else -> CANCELED.
func normalizeStatus(o orderEntry) types.OrderStatus {
	pct, _ := strconv.ParseFloat(o.CompletionPercentage, 64)
	switch o.Status {
	case "OPEN", "PENDING":
		if pct > 0 {
			return types.StatusPartiallyFilled
		}
		return types.StatusNew
	case "FILLED":
		return types.StatusFilled
	default:
		return types.StatusCanceled
	}
}

func normalizeOrder(o orderEntry) types.CanonicalOrder {
	origQty := ""
	price := ""
	orderType := types.TypeLimit
	if cfg := o.OrderConfiguration.MarketMarketIoc; cfg != nil {
		origQty = cfg.BaseSize
		orderType = types.TypeMarket
	}
	if cfg := o.OrderConfiguration.LimitLimitGtc; cfg != nil {
		origQty = cfg.BaseSize
		price = cfg.LimitPrice
	}
	if o.AverageFilledPrice != "" && o.AverageFilledPrice != "0" {
		price = o.AverageFilledPrice
	}
	reduceOnly := false
	return types.CanonicalOrder{
		Symbol: o.ProductId, OrderID: o.OrderId, ClientOrderID: o.ClientOrderId,
		TransactTime: parseTime(o.CreatedTime), UpdateTime: parseTime(o.CreatedTime),
		Price: price, OrigQty: origQty, ExecutedQty: o.FilledSize, CummulativeQuoteQty: o.FilledValue,
		Status: normalizeStatus(o), Type: orderType, Side: orderSideOf(o.Side),
		ReduceOnly: &reduceOnly, PositionSide: types.PositionBoth,
	}
}

func orderSideOf(raw string) types.OrderSide {
	if raw == "SELL" {
		return types.SideSell
	}
	return types.SideBuy
}

func parseTime(raw string) int64 {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return -1
	}
	return t.UnixMilli()
}

func normalizeInstrument(p productEntry) types.Instrument {
	return types.Instrument{
		Pair: p.ProductId,
		BaseAsset: types.BaseAsset{
			Name: p.BaseCurrencyId, Step: p.BaseIncrement, MinAmount: p.BaseMinSize, MaxAmount: p.BaseMaxSize,
		},
		QuoteAsset:          types.QuoteAsset{Name: p.QuoteCurrencyId, MinAmount: p.QuoteIncrement},
		PriceAssetPrecision: precisionFromIncrement(p.QuoteIncrement),
	}
}

func precisionFromIncrement(inc string) int {
	for i := 0; i < len(inc); i++ {
		if inc[i] == '.' {
			return len(inc) - i - 1
		}
	}
	return 0
}

func normalizeCandle(row candleRow) types.Candle {
	ts, _ := strconv.ParseInt(row.Start, 10, 64)
	return types.Candle{
		OpenTime: ts * 1000, Open: row.Open, High: row.High, Low: row.Low, Close: row.Close, Volume: row.Volume,
	}
}
