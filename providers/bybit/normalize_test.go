package bybit

import (
	"testing"

	"github.com/daglabs/gatewaygo/pkg/types"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw       string
		orderType string
		side      string
		want      types.OrderStatus
	}{
		{"New", "Limit", "Buy", types.StatusNew},
		{"Created", "Limit", "Buy", types.StatusNew},
		{"Untriggered", "Limit", "Buy", types.StatusNew},
		{"PartiallyFilled", "Limit", "Buy", types.StatusPartiallyFilled},
		{"Filled", "Limit", "Buy", types.StatusFilled},
		{"Cancelled", "Limit", "Buy", types.StatusCanceled},
		// PartiallyFilledCanceled collapses to Filled only for a Market
		// Buy (the only shape where Bybit leaves a dust remainder
		// uncanceled after filling what it could).
		{"PartiallyFilledCanceled", "Market", "Buy", types.StatusFilled},
		{"PartiallyFilledCanceled", "Market", "Sell", types.StatusCanceled},
		{"PartiallyFilledCanceled", "Limit", "Buy", types.StatusCanceled},
	}
	for i, test := range tests {
		if got := normalizeStatus(test.raw, test.orderType, test.side); got != test.want {
			t.Errorf("#%d: normalizeStatus(%q, %q, %q) = %v, want %v", i, test.raw, test.orderType, test.side, got, test.want)
		}
	}
}

func TestNormalizeOrderMarketDerivesAveragePrice(t *testing.T) {
	o := orderEntry{
		Symbol:       "BTCUSDT",
		OrderType:    "Market",
		Price:        "0",
		CumExecQty:   "2",
		CumExecValue: "300",
	}
	order := normalizeOrder(o)
	if order.Price != "150.00000000" {
		t.Errorf("normalizeOrder MARKET average price = %q, want \"150.00000000\"", order.Price)
	}
}

func TestNormalizeOrderMarketWithZeroFillKeepsQuotedPrice(t *testing.T) {
	o := orderEntry{OrderType: "Market", Price: "0", CumExecQty: "0"}
	order := normalizeOrder(o)
	if order.Price != "0" {
		t.Errorf("normalizeOrder with no fills yet should keep the quoted price, got %q", order.Price)
	}
}

func TestNormalizeOrderLimitKeepsQuotedPrice(t *testing.T) {
	o := orderEntry{OrderType: "Limit", Price: "30000.5"}
	order := normalizeOrder(o)
	if order.Price != "30000.5" {
		t.Errorf("normalizeOrder LIMIT price = %q, want \"30000.5\"", order.Price)
	}
}

func TestPositionSideFromIdx(t *testing.T) {
	tests := []struct {
		idx  int
		want types.PositionSide
	}{
		{0, types.PositionBoth},
		{1, types.PositionLong},
		{2, types.PositionShort},
	}
	for i, test := range tests {
		if got := positionSideFromIdx(test.idx); got != test.want {
			t.Errorf("#%d: positionSideFromIdx(%d) = %v, want %v", i, test.idx, got, test.want)
		}
	}
}

func TestExpectedPositionIdx(t *testing.T) {
	tests := []struct {
		side       types.OrderSide
		reduceOnly bool
		want       int
	}{
		{types.SideBuy, false, 1},  // opening long
		{types.SideSell, false, 2}, // opening short
		{types.SideBuy, true, 2},   // reduceOnly buy closes a short
		{types.SideSell, true, 1},  // reduceOnly sell closes a long
	}
	for i, test := range tests {
		if got := expectedPositionIdx(test.side, test.reduceOnly); got != test.want {
			t.Errorf("#%d: expectedPositionIdx(%v, %v) = %d, want %d", i, test.side, test.reduceOnly, got, test.want)
		}
	}
}

func TestParseMillis(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", -1},
		{"1690000000000", 1690000000000},
		{"not-a-number", -1},
	}
	for i, test := range tests {
		if got := parseMillis(test.in); got != test.want {
			t.Errorf("#%d: parseMillis(%q) = %d, want %d", i, test.in, got, test.want)
		}
	}
}

func TestNormalizeInstrument(t *testing.T) {
	e := instrumentEntry{Symbol: "BTCUSDT", BaseCoin: "BTC", QuoteCoin: "USDT"}
	e.LotSizeFilter.QtyStep = "0.001"
	e.LotSizeFilter.MinOrderQty = "0.001"
	e.LotSizeFilter.MaxOrderQty = "100"
	e.PriceFilter.TickSize = "0.1"
	e.LeverageFilter.MinLeverage = "1"
	e.LeverageFilter.MaxLeverage = "100"

	inst := normalizeInstrument(e)
	if inst.PriceAssetPrecision != 1 {
		t.Errorf("PriceAssetPrecision = %d, want 1", inst.PriceAssetPrecision)
	}
	if inst.BaseAsset.Step != "0.001" {
		t.Errorf("BaseAsset.Step = %q, want \"0.001\"", inst.BaseAsset.Step)
	}
	if inst.MaxLeverage == nil || *inst.MaxLeverage != "100" {
		t.Errorf("MaxLeverage = %v, want \"100\"", inst.MaxLeverage)
	}
}

func TestNormalizeInstrumentNoLeverageFilterLeavesNilPointers(t *testing.T) {
	e := instrumentEntry{Symbol: "BTCUSDT"}
	inst := normalizeInstrument(e)
	if inst.MaxLeverage != nil || inst.MinLeverage != nil {
		t.Error("normalizeInstrument should leave leverage pointers nil when the filter is empty")
	}
}

func TestNormalizeCandle(t *testing.T) {
	row := candleEntry{"1690000000000", "100", "110", "90", "105", "42"}
	candle := normalizeCandle(row)
	if candle.OpenTime != 1690000000000 {
		t.Errorf("OpenTime = %d, want 1690000000000", candle.OpenTime)
	}
	if candle.Open != "100" || candle.Close != "105" {
		t.Errorf("Open/Close = %q/%q, want \"100\"/\"105\"", candle.Open, candle.Close)
	}
}
