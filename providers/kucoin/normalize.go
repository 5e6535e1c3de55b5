package kucoin

import (
	"strconv"

	"github.com/daglabs/gatewaygo/internal/normalizer"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// normalizeSpotStatus implements spec.md §4.5's KuCoin rule: if isActive ∧
// dealSize=0 -> NEW; isActive ∧ size≠dealSize -> PARTIALLY_FILLED; not
// cancelExist -> FILLED; else CANCELED.
func normalizeSpotStatus(o orderEntry) types.OrderStatus {
	switch {
	case o.IsActive && (o.DealSize == "" || o.DealSize == "0"):
		return types.StatusNew
	case o.IsActive && o.Size != o.DealSize:
		return types.StatusPartiallyFilled
	case !o.CancelExist:
		return types.StatusFilled
	default:
		return types.StatusCanceled
	}
}

func normalizeFuturesStatus(o orderEntry) types.OrderStatus {
	switch o.Status {
	case "open":
		if o.FilledSize != "" && o.FilledSize != "0" {
			return types.StatusPartiallyFilled
		}
		return types.StatusNew
	case "done":
		if o.FilledSize == o.Size {
			return types.StatusFilled
		}
		return types.StatusCanceled
	default:
		return types.StatusCanceled
	}
}

// spotMarketPrice prefers dealFunds/dealSize over the nominal limit price
// for a filled MARKET order (spec.md §4.5 "Price derivation").
func spotMarketPrice(o orderEntry) string {
	if o.Type == "market" && o.DealFunds != "" && o.DealSize != "" && o.DealSize != "0" {
		return normalizer.DivideDecimalStrings(o.DealFunds, o.DealSize, 8)
	}
	return o.Price
}

// futuresMarketPrice mirrors spotMarketPrice but also covers KuCoin's
// futures inverse-contract case: when isInverse, price is derived as
// dealSize/dealValue rather than dealValue/dealSize (spec.md §4.5 "For
// KuCoin futures, when in inverse mode, invert").
func futuresMarketPrice(o orderEntry, isInverse bool) string {
	if o.AvgDealPrice != "" && o.AvgDealPrice != "0" {
		return o.AvgDealPrice
	}
	if o.Type != "market" || o.FilledValue == "" || o.FilledSize == "" || o.FilledSize == "0" {
		return o.Price
	}
	if isInverse {
		return normalizer.DivideDecimalStrings(o.FilledSize, o.FilledValue, 8)
	}
	return normalizer.DivideDecimalStrings(o.FilledValue, o.FilledSize, 8)
}

func normalizeOrder(o orderEntry, isFutures, isInverse bool) types.CanonicalOrder {
	if !isFutures {
		reduceOnly := false
		return types.CanonicalOrder{
			Symbol: untranslateSymbol(o.Symbol), OrderID: o.Id, ClientOrderID: o.ClientOid,
			TransactTime: o.CreatedAt, UpdateTime: o.CreatedAt,
			Price: spotMarketPrice(o), OrigQty: o.Size, ExecutedQty: o.DealSize, CummulativeQuoteQty: o.DealFunds,
			Status: normalizeSpotStatus(o), Type: orderTypeOf(o.Type), Side: orderSideOf(o.Side),
			ReduceOnly: &reduceOnly, PositionSide: types.PositionBoth,
		}
	}
	reduceOnly := o.ReduceOnly
	return types.CanonicalOrder{
		Symbol: untranslateSymbol(o.Symbol), OrderID: o.Id, ClientOrderID: o.ClientOid,
		TransactTime: o.CreatedAt, UpdateTime: o.CreatedAt,
		Price: futuresMarketPrice(o, isInverse), OrigQty: o.Size, ExecutedQty: o.FilledSize, CummulativeQuoteQty: o.FilledValue,
		Status: normalizeFuturesStatus(o), Type: orderTypeOf(o.Type), Side: orderSideOf(o.Side),
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

func normalizeSpotInstrument(s symbolEntry) types.Instrument {
	precision := normalizer.PrecisionFromTick(s.PriceIncrement)
	return types.Instrument{
		Pair: untranslateSymbol(s.Symbol),
		BaseAsset: types.BaseAsset{
			Name: s.BaseCurrency, Step: s.BaseIncrement, MinAmount: s.BaseMinSize, MaxMarketAmount: s.BaseMaxSize,
		},
		QuoteAsset:          types.QuoteAsset{Name: s.QuoteCurrency, MinAmount: quoteMinSize(s, precision)},
		PriceAssetPrecision: precision,
	}
}

// quoteMinSize applies spec.md §4.5's rounding rule: the derived minimum
// quote order size is rounded up to the symbol's price precision and must
// be at least quoteMinSize + quoteIncrement, so any order built with this
// minimum clears the exchange's own filter.
func quoteMinSize(s symbolEntry, precision int) string {
	// Sum at full scale so RoundUpToPrecision sees every digit; rendering
	// at precision here would round 0.1001 down to 0.10 before rounding up.
	floor := normalizer.AddDecimalStrings(s.QuoteMinSize, s.QuoteIncrement, 18)
	return normalizer.RoundUpToPrecision(floor, precision)
}

func normalizeFuturesInstrument(c contractEntry) types.Instrument {
	step := strconv.FormatFloat(c.LotSize, 'f', -1, 64)
	tick := strconv.FormatFloat(c.TickSize, 'f', -1, 64)
	maxLev := strconv.FormatFloat(c.MaxLeverage, 'f', -1, 64)
	return types.Instrument{
		Pair: untranslateSymbol(c.Symbol),
		BaseAsset: types.BaseAsset{
			Name: c.BaseCurrency, Step: step, MaxMarketAmount: strconv.FormatFloat(c.MaxOrderQty, 'f', -1, 64),
		},
		QuoteAsset:          types.QuoteAsset{Name: c.QuoteCurrency},
		PriceAssetPrecision: normalizer.PrecisionFromTick(tick),
		MaxLeverage:         &maxLev,
	}
}

func parseMillis(n int64) int64 {
	if n == 0 {
		return -1
	}
	return n
}

func normalizeCandle(row candleRow) types.Candle {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	ts, _ := strconv.ParseInt(get(0), 10, 64)
	return types.Candle{
		OpenTime: ts * 1000, Open: get(1), Close: get(2), High: get(3), Low: get(4), Volume: get(5),
	}
}
