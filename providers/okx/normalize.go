package okx

import (
	"strconv"

	"github.com/daglabs/gatewaygo/internal/normalizer"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// normalizeStatus implements spec.md §4.5's Bitget/OKX shared rule: "live"
// -> NEW; "partially_filled" -> PARTIALLY_FILLED; "filled" -> FILLED; else
// -> CANCELED.
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
	price := o.Px
	if o.OrdType == "market" && o.AvgPx != "" && o.AvgPx != "0" {
		price = o.AvgPx
	}
	reduceOnly := o.ReduceOnly == "true"
	cum := normalizer.MulDecimalStrings(o.AccFillSz, price, 8)
	return types.CanonicalOrder{
		Symbol: untranslateSymbol(o.InstId), OrderID: o.OrdId, ClientOrderID: o.ClOrdId,
		TransactTime: parseMillis(o.CTime), UpdateTime: parseMillis(o.UTime),
		Price: price, OrigQty: o.Sz, ExecutedQty: o.AccFillSz, CummulativeQuoteQty: cum,
		Status: normalizeStatus(o.State), Type: orderTypeOf(o.OrdType), Side: orderSideOf(o.Side),
		ReduceOnly: &reduceOnly, PositionSide: positionSideOf(o.PosSide),
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

// positionSideOf implements spec.md §4.5's "OKX posSide ∈ {long, short,
// net}" mapping.
func positionSideOf(raw string) types.PositionSide {
	switch raw {
	case "long":
		return types.PositionLong
	case "short":
		return types.PositionShort
	default:
		return types.PositionBoth
	}
}

func parseMillis(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func normalizeInstrument(i instrumentEntry) types.Instrument {
	precision := normalizer.PrecisionFromTick(i.TickSz)
	var maxLev *string
	if i.Lever != "" {
		l := i.Lever
		maxLev = &l
	}
	return types.Instrument{
		Pair: untranslateSymbol(i.InstId),
		BaseAsset: types.BaseAsset{
			Name: i.BaseCcy, Step: i.LotSz, MinAmount: i.MinSz, MaxAmount: i.MaxLmtSz, MaxMarketAmount: i.MaxMktSz,
		},
		QuoteAsset:          types.QuoteAsset{Name: i.QuoteCcy},
		PriceAssetPrecision: precision,
		MaxLeverage:         maxLev,
	}
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
