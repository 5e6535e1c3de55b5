package binance

import (
	"testing"

	"github.com/daglabs/gatewaygo/pkg/types"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want types.OrderStatus
	}{
		{"NEW", types.StatusNew},
		{"PARTIALLY_FILLED", types.StatusPartiallyFilled},
		{"FILLED", types.StatusFilled},
		{"CANCELED", types.StatusCanceled},
		{"REJECTED", types.StatusCanceled},
		{"EXPIRED", types.StatusCanceled},
		{"PENDING_CANCEL", types.StatusCanceled},
	}
	for i, test := range tests {
		if got := normalizeStatus(test.raw); got != test.want {
			t.Errorf("#%d: normalizeStatus(%q) = %v, want %v", i, test.raw, got, test.want)
		}
	}
}

func TestNormalizeOrderDerivesMarketAveragePrice(t *testing.T) {
	r := orderResponse{
		Symbol: "BTCUSDT",
		Type:   "MARKET",
		Price:  "0",
		Fills: []struct {
			Price           string `json:"price"`
			Qty             string `json:"qty"`
			Commission      string `json:"commission"`
			CommissionAsset string `json:"commissionAsset"`
			TradeID         int64  `json:"tradeId"`
		}{
			{Price: "100", Qty: "1"},
			{Price: "200", Qty: "1"},
		},
	}
	order := normalizeOrder(r)
	if order.Price != "150.00000000" {
		t.Errorf("normalizeOrder MARKET average price = %q, want \"150.00000000\"", order.Price)
	}
}

func TestNormalizeOrderLimitKeepsQuotedPrice(t *testing.T) {
	r := orderResponse{Symbol: "BTCUSDT", Type: "LIMIT", Price: "30000.50"}
	order := normalizeOrder(r)
	if order.Price != "30000.50" {
		t.Errorf("normalizeOrder LIMIT price = %q, want \"30000.50\"", order.Price)
	}
}

func TestNormalizeOrderFieldMapping(t *testing.T) {
	r := orderResponse{
		Symbol:        "ETHUSDT",
		OrderID:       123456,
		ClientOrderID: "abc",
		Status:        "NEW",
		Type:          "LIMIT",
		Side:          "SELL",
		PositionSide:  "SHORT",
		ReduceOnly:    true,
	}
	order := normalizeOrder(r)
	if order.OrderID != "123456" {
		t.Errorf("normalizeOrder OrderID = %q, want \"123456\"", order.OrderID)
	}
	if order.Side != types.SideSell {
		t.Errorf("normalizeOrder Side = %v, want SideSell", order.Side)
	}
	if order.Type != types.TypeLimit {
		t.Errorf("normalizeOrder Type = %v, want TypeLimit", order.Type)
	}
	if order.PositionSide != types.PositionShort {
		t.Errorf("normalizeOrder PositionSide = %v, want PositionShort", order.PositionSide)
	}
	if order.ReduceOnly == nil || !*order.ReduceOnly {
		t.Error("normalizeOrder ReduceOnly should be a pointer to true")
	}
}

func TestOrderSideOf(t *testing.T) {
	if orderSideOf("SELL") != types.SideSell {
		t.Error("orderSideOf(\"SELL\") should be SideSell")
	}
	if orderSideOf("BUY") != types.SideBuy {
		t.Error("orderSideOf(\"BUY\") should be SideBuy")
	}
	if orderSideOf("anything else") != types.SideBuy {
		t.Error("orderSideOf defaults to SideBuy for unrecognized input")
	}
}

func TestPositionSideOf(t *testing.T) {
	tests := []struct {
		raw  string
		want types.PositionSide
	}{
		{"LONG", types.PositionLong},
		{"SHORT", types.PositionShort},
		{"BOTH", types.PositionBoth},
		{"", types.PositionBoth},
	}
	for i, test := range tests {
		if got := positionSideOf(test.raw); got != test.want {
			t.Errorf("#%d: positionSideOf(%q) = %v, want %v", i, test.raw, got, test.want)
		}
	}
}

func TestNormalizeInstrumentCollectsFilters(t *testing.T) {
	s := symbolInfo{
		Symbol:     "BTCUSDT",
		BaseAsset:  "BTC",
		QuoteAsset: "USDT",
		Filters: []symbolFilter{
			{FilterType: "PRICE_FILTER", TickSize: "0.01"},
			{FilterType: "LOT_SIZE", StepSize: "0.00001", MinQty: "0.00001", MaxQty: "9000"},
			{FilterType: "MARKET_LOT_SIZE", MaxQty: "100"},
			{FilterType: "MIN_NOTIONAL", MinNotional: "5"},
			{FilterType: "MAX_NUM_ORDERS", MaxNumOrders: 200},
		},
	}
	inst := normalizeInstrument(s)
	if inst.Pair != "BTCUSDT" {
		t.Errorf("Pair = %q, want \"BTCUSDT\"", inst.Pair)
	}
	if inst.PriceAssetPrecision != 2 {
		t.Errorf("PriceAssetPrecision = %d, want 2", inst.PriceAssetPrecision)
	}
	if inst.BaseAsset.Step != "0.00001" {
		t.Errorf("BaseAsset.Step = %q, want \"0.00001\"", inst.BaseAsset.Step)
	}
	if inst.BaseAsset.MaxMarketAmount != "100" {
		t.Errorf("BaseAsset.MaxMarketAmount = %q, want \"100\"", inst.BaseAsset.MaxMarketAmount)
	}
	if inst.QuoteAsset.MinAmount != "5" {
		t.Errorf("QuoteAsset.MinAmount = %q, want \"5\"", inst.QuoteAsset.MinAmount)
	}
	if inst.MaxOrders != 200 {
		t.Errorf("MaxOrders = %d, want 200", inst.MaxOrders)
	}
}

func TestNormalizeCandle(t *testing.T) {
	row := candleRow{
		float64(1000), "100.0", "110.0", "90.0", "105.0", "42.5", float64(1060),
	}
	candle, err := normalizeCandle(row)
	if err != nil {
		t.Fatalf("normalizeCandle error: %v", err)
	}
	if candle.OpenTime != 1000 || candle.CloseTime != 1060 {
		t.Errorf("normalizeCandle times = %d, %d; want 1000, 1060", candle.OpenTime, candle.CloseTime)
	}
	if candle.Open != "100.0" || candle.Close != "105.0" {
		t.Errorf("normalizeCandle open/close = %q, %q; want \"100.0\", \"105.0\"", candle.Open, candle.Close)
	}
}

func TestNormalizeCandleRejectsShortRow(t *testing.T) {
	_, err := normalizeCandle(candleRow{float64(1000)})
	if err == nil {
		t.Fatal("normalizeCandle should reject a malformed short row")
	}
}
