package coinbase

import (
	"testing"

	"github.com/daglabs/gatewaygo/pkg/types"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		o    orderEntry
		want types.OrderStatus
	}{
		{orderEntry{Status: "OPEN", CompletionPercentage: "0"}, types.StatusNew},
		{orderEntry{Status: "PENDING", CompletionPercentage: ""}, types.StatusNew},
		{orderEntry{Status: "OPEN", CompletionPercentage: "45.5"}, types.StatusPartiallyFilled},
		{orderEntry{Status: "FILLED"}, types.StatusFilled},
		{orderEntry{Status: "CANCELLED"}, types.StatusCanceled},
		{orderEntry{Status: "EXPIRED"}, types.StatusCanceled},
	}
	for i, test := range tests {
		if got := normalizeStatus(test.o); got != test.want {
			t.Errorf("#%d: normalizeStatus(%+v) = %v, want %v", i, test.o, got, test.want)
		}
	}
}

func TestNormalizeOrderMarketConfiguration(t *testing.T) {
	o := orderEntry{ProductId: "BTC-USD", Side: "BUY"}
	o.OrderConfiguration.MarketMarketIoc = &struct {
		BaseSize string `json:"base_size"`
	}{BaseSize: "0.5"}
	o.AverageFilledPrice = "27000.25"

	order := normalizeOrder(o)
	if order.Type != types.TypeMarket {
		t.Errorf("normalizeOrder Type = %v, want TypeMarket", order.Type)
	}
	if order.OrigQty != "0.5" {
		t.Errorf("normalizeOrder OrigQty = %q, want \"0.5\"", order.OrigQty)
	}
	if order.Price != "27000.25" {
		t.Errorf("normalizeOrder Price = %q, want \"27000.25\" (from average_filled_price)", order.Price)
	}
}

func TestNormalizeOrderLimitConfiguration(t *testing.T) {
	o := orderEntry{ProductId: "BTC-USD", Side: "SELL"}
	o.OrderConfiguration.LimitLimitGtc = &struct {
		BaseSize   string `json:"base_size"`
		LimitPrice string `json:"limit_price"`
	}{BaseSize: "1", LimitPrice: "30000"}

	order := normalizeOrder(o)
	if order.Type != types.TypeLimit {
		t.Errorf("normalizeOrder Type = %v, want TypeLimit", order.Type)
	}
	if order.Price != "30000" {
		t.Errorf("normalizeOrder Price = %q, want \"30000\"", order.Price)
	}
	if order.Side != types.SideSell {
		t.Errorf("normalizeOrder Side = %v, want SideSell", order.Side)
	}
}

func TestNormalizeOrderAverageFilledPriceOverridesLimitPrice(t *testing.T) {
	o := orderEntry{ProductId: "BTC-USD", Side: "BUY", AverageFilledPrice: "29500"}
	o.OrderConfiguration.LimitLimitGtc = &struct {
		BaseSize   string `json:"base_size"`
		LimitPrice string `json:"limit_price"`
	}{BaseSize: "1", LimitPrice: "30000"}

	order := normalizeOrder(o)
	if order.Price != "29500" {
		t.Errorf("normalizeOrder Price = %q, want \"29500\" (filled average takes precedence)", order.Price)
	}
}

func TestNormalizeOrderAlwaysReportsReduceOnlyFalse(t *testing.T) {
	order := normalizeOrder(orderEntry{})
	if order.ReduceOnly == nil || *order.ReduceOnly {
		t.Error("Coinbase has no reduceOnly concept; normalizeOrder should always report false")
	}
}

func TestOrderSideOf(t *testing.T) {
	if orderSideOf("SELL") != types.SideSell {
		t.Error("orderSideOf(\"SELL\") should be SideSell")
	}
	if orderSideOf("BUY") != types.SideBuy {
		t.Error("orderSideOf(\"BUY\") should be SideBuy")
	}
}

func TestParseTime(t *testing.T) {
	got := parseTime("2023-08-25T00:00:00Z")
	if got <= 0 {
		t.Errorf("parseTime for a valid RFC3339 timestamp = %d, want a positive unix-ms value", got)
	}
	if got := parseTime("not-a-timestamp"); got != -1 {
		t.Errorf("parseTime(invalid) = %d, want -1", got)
	}
}

func TestNormalizeInstrument(t *testing.T) {
	p := productEntry{
		ProductId: "BTC-USD", BaseCurrencyId: "BTC", QuoteCurrencyId: "USD",
		BaseIncrement: "0.00000001", QuoteIncrement: "0.01", BaseMinSize: "0.0001", BaseMaxSize: "1000",
	}
	inst := normalizeInstrument(p)
	if inst.Pair != "BTC-USD" {
		t.Errorf("Pair = %q, want \"BTC-USD\"", inst.Pair)
	}
	if inst.PriceAssetPrecision != 2 {
		t.Errorf("PriceAssetPrecision = %d, want 2", inst.PriceAssetPrecision)
	}
	if inst.BaseAsset.Step != "0.00000001" {
		t.Errorf("BaseAsset.Step = %q, want \"0.00000001\"", inst.BaseAsset.Step)
	}
}

func TestPrecisionFromIncrement(t *testing.T) {
	tests := []struct {
		inc  string
		want int
	}{
		{"0.01", 2},
		{"0.0001", 4},
		{"1", 0},
		{"", 0},
	}
	for i, test := range tests {
		if got := precisionFromIncrement(test.inc); got != test.want {
			t.Errorf("#%d: precisionFromIncrement(%q) = %d, want %d", i, test.inc, got, test.want)
		}
	}
}

func TestNormalizeCandleConvertsSecondsToMillis(t *testing.T) {
	row := candleRow{Start: "1690000000", Open: "100", High: "110", Low: "90", Close: "105", Volume: "42"}
	candle := normalizeCandle(row)
	if candle.OpenTime != 1690000000000 {
		t.Errorf("OpenTime = %d, want 1690000000000", candle.OpenTime)
	}
	if candle.Open != "100" || candle.Close != "105" {
		t.Errorf("Open/Close = %q/%q, want \"100\"/\"105\"", candle.Open, candle.Close)
	}
}
