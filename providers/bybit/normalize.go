package bybit

import (
	"github.com/daglabs/gatewaygo/internal/normalizer"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// normalizeStatus implements spec.md §4.5's Bybit rule.
func normalizeStatus(raw, orderType, side string) types.OrderStatus {
	switch raw {
	case "New", "Created", "Untriggered":
		return types.StatusNew
	case "PartiallyFilled":
		return types.StatusPartiallyFilled
	case "Filled":
		return types.StatusFilled
	case "PartiallyFilledCanceled":
		if orderType == "Market" && side == "Buy" {
			return types.StatusFilled
		}
		return types.StatusCanceled
	default:
		return types.StatusCanceled
	}
}

func normalizeOrder(o orderEntry) types.CanonicalOrder {
	price := o.Price
	if o.OrderType == "Market" && o.CumExecQty != "0" && o.CumExecQty != "" {
		price = normalizer.DivideDecimalStrings(o.CumExecValue, o.CumExecQty, 8)
	}
	return types.CanonicalOrder{
		Symbol:              o.Symbol,
		OrderID:             o.OrderID,
		ClientOrderID:       o.OrderLinkID,
		TransactTime:        parseMillis(o.CreatedTime),
		UpdateTime:          parseMillis(o.UpdatedTime),
		Price:               price,
		OrigQty:             o.Qty,
		ExecutedQty:         o.CumExecQty,
		CummulativeQuoteQty: o.CumExecValue,
		Status:              normalizeStatus(o.OrderStatus, o.OrderType, o.Side),
		Type:                orderTypeOf(o.OrderType),
		Side:                orderSideOf(o.Side),
		ReduceOnly:          &o.ReduceOnly,
		PositionSide:        positionSideFromIdx(o.PositionIdx),
	}
}

func orderTypeOf(raw string) types.OrderType {
	if raw == "Market" {
		return types.TypeMarket
	}
	return types.TypeLimit
}

func orderSideOf(raw string) types.OrderSide {
	if raw == "Sell" {
		return types.SideSell
	}
	return types.SideBuy
}

// positionSideFromIdx maps Bybit's positionIdx (0=one-way, 1=hedge-long,
// 2=hedge-short) onto the canonical enum.
func positionSideFromIdx(idx int) types.PositionSide {
	switch idx {
	case 1:
		return types.PositionLong
	case 2:
		return types.PositionShort
	default:
		return types.PositionBoth
	}
}

// expectedPositionIdx recomputes the positionIdx Bybit expects from
// (side, reduceOnly) for the futures idempotency retry (spec.md §4.4):
// opening is long-side->1, short-side->2; reduceOnly closes invert that.
func expectedPositionIdx(side types.OrderSide, reduceOnly bool) int {
	opening := side == types.SideBuy
	if reduceOnly {
		opening = !opening
	}
	if opening {
		return 1
	}
	return 2
}

func parseMillis(s string) int64 {
	if s == "" {
		return -1
	}
	var n int64
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1
		}
		n = n*10 + int64(s[i]-'0')
	}
	return n
}

func normalizeInstrument(e instrumentEntry) types.Instrument {
	return types.Instrument{
		Pair: e.Symbol,
		BaseAsset: types.BaseAsset{
			Name:      e.BaseCoin,
			Step:      e.LotSizeFilter.QtyStep,
			MinAmount: e.LotSizeFilter.MinOrderQty,
			MaxAmount: e.LotSizeFilter.MaxOrderQty,
		},
		QuoteAsset: types.QuoteAsset{
			Name: e.QuoteCoin,
		},
		PriceAssetPrecision: normalizer.PrecisionFromTick(e.PriceFilter.TickSize),
		MaxLeverage:         strPtr(e.LeverageFilter.MaxLeverage),
		MinLeverage:         strPtr(e.LeverageFilter.MinLeverage),
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalizeCandle(row candleEntry) types.Candle {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return types.Candle{
		OpenTime:  parseMillis(get(0)),
		Open:      get(1),
		High:      get(2),
		Low:       get(3),
		Close:     get(4),
		Volume:    get(5),
		CloseTime: parseMillis(get(0)),
	}
}
