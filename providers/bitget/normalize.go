package bitget

import (
	"strconv"

	"github.com/daglabs/gatewaygo/pkg/types"
)

// normalizeStatus implements spec.md §4.5's Bitget/OKX rule (shared status
// vocabulary between the two providers).
func normalizeStatus(raw string) types.OrderStatus {
	switch raw {
	case "live":
		return types.StatusNew
	case "partially_filled":
		return types.StatusPartiallyFilled
	case "filled":
		return types.StatusFilled
	default:
		return types.StatusCanceled
	}
}

func normalizeOrder(o orderEntry) types.CanonicalOrder {
	price := o.Price
	if o.OrderType == "market" && o.PriceAvg != "" && o.PriceAvg != "0" {
		price = o.PriceAvg
	}
	reduceOnly := o.ReduceOnly == "YES" || o.ReduceOnly == "true"
	return types.CanonicalOrder{
		Symbol: o.Symbol, OrderID: o.OrderId, ClientOrderID: o.ClientOid,
		TransactTime: parseMillis(o.CTime), UpdateTime: parseMillis(o.UTime),
		Price: price, OrigQty: o.Size, ExecutedQty: o.BaseVolume, CummulativeQuoteQty: o.QuoteVolume,
		Status: normalizeStatus(o.Status), Type: orderTypeOf(o.OrderType), Side: orderSideOf(o.Side),
		ReduceOnly: &reduceOnly, PositionSide: types.PositionBoth,
	}
}

func orderTypeOf(raw string) types.OrderType {
	if raw == "market" {
		return types.TypeMarket
	}
	return types.TypeLimit
}

func orderSideOf(raw string) types.OrderSide {
	if raw == "sell" {
		return types.SideSell
	}
	return types.SideBuy
}

func parseMillis(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func normalizeInstrument(s symbolEntry) types.Instrument {
	priceDigits, _ := strconv.Atoi(s.PriceScale)
	qtyDigits, _ := strconv.Atoi(s.QuantityScale)
	step := "1"
	if qtyDigits > 0 {
		step = "0." + repeatZeros(qtyDigits-1) + "1"
	}
	return types.Instrument{
		Pair: s.Symbol,
		BaseAsset: types.BaseAsset{
			Name: s.BaseCoin, Step: step, MinAmount: s.MinTradeAmount, MaxMarketAmount: s.MaxMarketOrderQty,
		},
		QuoteAsset:          types.QuoteAsset{Name: s.QuoteCoin, MinAmount: s.MinTradeUSDT},
		PriceAssetPrecision: priceDigits,
		MaxOrders:           s.MaxSymbolOrderNum,
	}
}

func repeatZeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func normalizeCandle(row candleRow) types.Candle {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return types.Candle{
		OpenTime: parseMillis(get(0)), Open: get(1), High: get(2), Low: get(3), Close: get(4), Volume: get(5),
	}
}
