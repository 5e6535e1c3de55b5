package binance

import (
	"fmt"

	"github.com/daglabs/gatewaygo/internal/normalizer"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// normalizeStatus implements spec.md §4.5's Binance rule: the four
// exchange-native statuses pass through unchanged; anything else (REJECTED,
// EXPIRED, PENDING_CANCEL, ...) collapses to CANCELED.
func normalizeStatus(raw string) types.OrderStatus {
	switch raw {
	case "NEW":
		return types.StatusNew
	case "PARTIALLY_FILLED":
		return types.StatusPartiallyFilled
	case "FILLED":
		return types.StatusFilled
	default:
		return types.StatusCanceled
	}
}

func normalizeOrder(r orderResponse) types.CanonicalOrder {
	fills := make([]types.Fill, len(r.Fills))
	for i, f := range r.Fills {
		fills[i] = types.Fill{
			Price:           f.Price,
			Qty:             f.Qty,
			Commission:      f.Commission,
			CommissionAsset: f.CommissionAsset,
			TradeID:         fmt.Sprintf("%d", f.TradeID),
		}
	}
	price := r.Price
	if r.Type == "MARKET" && len(r.Fills) > 0 {
		// MARKET orders report price=0; derive an average fill price
		// instead (spec.md §4.5 "MARKET-order price derivation").
		price = averageFillPrice(r.Fills)
	}
	return types.CanonicalOrder{
		Symbol:              r.Symbol,
		OrderID:             fmt.Sprintf("%d", r.OrderID),
		ClientOrderID:       r.ClientOrderID,
		TransactTime:        r.TransactTime,
		UpdateTime:          r.UpdateTime,
		Price:               price,
		OrigQty:             r.OrigQty,
		ExecutedQty:         r.ExecutedQty,
		CummulativeQuoteQty: r.CummulativeQuoteQty,
		Status:              normalizeStatus(r.Status),
		Type:                orderTypeOf(r.Type),
		Side:                orderSideOf(r.Side),
		ReduceOnly:          &r.ReduceOnly,
		PositionSide:        positionSideOf(r.PositionSide),
		Fills:               fills,
	}
}

func averageFillPrice(fills []struct {
	Price           string `json:"price"`
	Qty             string `json:"qty"`
	Commission      string `json:"commission"`
	CommissionAsset string `json:"commissionAsset"`
	TradeID         int64  `json:"tradeId"`
}) string {
	if len(fills) == 0 {
		return "0"
	}
	num := "0"
	den := "0"
	for _, f := range fills {
		num = normalizer.AddDecimalStrings(num, mulDecimal(f.Price, f.Qty), 18)
		den = normalizer.AddDecimalStrings(den, f.Qty, 18)
	}
	return normalizer.DivideDecimalStrings(num, den, 8)
}

func mulDecimal(a, b string) string {
	return normalizer.MulDecimalStrings(a, b, 18)
}

func orderTypeOf(raw string) types.OrderType {
	if raw == "MARKET" {
		return types.TypeMarket
	}
	return types.TypeLimit
}

func orderSideOf(raw string) types.OrderSide {
	if raw == "SELL" {
		return types.SideSell
	}
	return types.SideBuy
}

func positionSideOf(raw string) types.PositionSide {
	switch raw {
	case "LONG":
		return types.PositionLong
	case "SHORT":
		return types.PositionShort
	default:
		return types.PositionBoth
	}
}

func normalizeInstrument(s symbolInfo) types.Instrument {
	inst := types.Instrument{
		Pair: s.Symbol,
		BaseAsset: types.BaseAsset{
			Name: s.BaseAsset,
		},
		QuoteAsset: types.QuoteAsset{
			Name: s.QuoteAsset,
		},
	}
	for _, f := range s.Filters {
		switch f.FilterType {
		case "PRICE_FILTER":
			inst.PriceAssetPrecision = normalizer.PrecisionFromTick(f.TickSize)
		case "LOT_SIZE":
			inst.BaseAsset.Step = f.StepSize
			inst.BaseAsset.MinAmount = f.MinQty
			inst.BaseAsset.MaxAmount = f.MaxQty
		case "MARKET_LOT_SIZE":
			inst.BaseAsset.MaxMarketAmount = f.MaxQty
		case "MIN_NOTIONAL", "NOTIONAL":
			inst.QuoteAsset.MinAmount = f.MinNotional
		case "MAX_NUM_ORDERS":
			inst.MaxOrders = f.MaxNumOrders
		}
	}
	return inst
}

// normalizeCandle converts one Binance kline row -- a 12-element
// heterogeneous JSON array -- into a Candle. Binance always returns
// [openTime, open, high, low, close, volume, closeTime, ...] in that order
// regardless of product line.
func normalizeCandle(row candleRow) (types.Candle, error) {
	if len(row) < 7 {
		return types.Candle{}, fmt.Errorf("binance: malformed candle row (len %d)", len(row))
	}
	return types.Candle{
		OpenTime:  int64(asFloat(row[0])),
		Open:      asString(row[1]),
		High:      asString(row[2]),
		Low:       asString(row[3]),
		Close:     asString(row[4]),
		Volume:    asString(row[5]),
		CloseTime: int64(asFloat(row[6])),
	}, nil
}

func asFloat(v interface{}) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
