package bitget

import (
	"testing"

	"github.com/daglabs/gatewaygo/pkg/types"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want types.OrderStatus
	}{
		{"live", types.StatusNew},
		{"partially_filled", types.StatusPartiallyFilled},
		{"filled", types.StatusFilled},
		{"cancelled", types.StatusCanceled},
		{"", types.StatusCanceled},
	}
	for i, test := range tests {
		if got := normalizeStatus(test.raw); got != test.want {
			t.Errorf("#%d: normalizeStatus(%q) = %v, want %v", i, test.raw, got, test.want)
		}
	}
}

func TestNormalizeOrderMarketUsesPriceAvg(t *testing.T) {
	o := orderEntry{OrderType: "market", Price: "0", PriceAvg: "27000.5"}
	order := normalizeOrder(o)
	if order.Price != "27000.5" {
		t.Errorf("normalizeOrder MARKET price = %q, want \"27000.5\"", order.Price)
	}
}

func TestNormalizeOrderMarketWithNoAverageYetKeepsQuotedPrice(t *testing.T) {
	o := orderEntry{OrderType: "market", Price: "0", PriceAvg: "0"}
	order := normalizeOrder(o)
	if order.Price != "0" {
		t.Errorf("normalizeOrder should keep the quoted price when priceAvg is still 0, got %q", order.Price)
	}
}

func TestNormalizeOrderLimitKeepsQuotedPrice(t *testing.T) {
	o := orderEntry{OrderType: "limit", Price: "27000.5", PriceAvg: "0"}
	order := normalizeOrder(o)
	if order.Price != "27000.5" {
		t.Errorf("normalizeOrder LIMIT price = %q, want \"27000.5\"", order.Price)
	}
}

func TestNormalizeOrderReduceOnlyAcceptsBothTrueSpellings(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"YES", true},
		{"true", true},
		{"NO", false},
		{"false", false},
		{"", false},
	}
	for i, test := range tests {
		o := orderEntry{ReduceOnly: test.raw}
		order := normalizeOrder(o)
		if order.ReduceOnly == nil || *order.ReduceOnly != test.want {
			t.Errorf("#%d: normalizeOrder ReduceOnly(%q) = %v, want %v", i, test.raw, order.ReduceOnly, test.want)
		}
	}
}

func TestOrderSideOf(t *testing.T) {
	if orderSideOf("sell") != types.SideSell {
		t.Error("orderSideOf(\"sell\") should be SideSell")
	}
	if orderSideOf("buy") != types.SideBuy {
		t.Error("orderSideOf(\"buy\") should be SideBuy")
	}
}

func TestParseMillis(t *testing.T) {
	if got := parseMillis("1690000000000"); got != 1690000000000 {
		t.Errorf("parseMillis = %d, want 1690000000000", got)
	}
	if got := parseMillis("garbage"); got != -1 {
		t.Errorf("parseMillis(garbage) = %d, want -1", got)
	}
}

func TestNormalizeInstrumentDerivesStepFromQuantityScale(t *testing.T) {
	s := symbolEntry{
		Symbol: "BTCUSDT", BaseCoin: "BTC", QuoteCoin: "USDT",
		PriceScale: "1", QuantityScale: "4",
		MinTradeAmount: "0.0001", MinTradeUSDT: "5", MaxMarketOrderQty: "50",
		MaxSymbolOrderNum: 200,
	}
	inst := normalizeInstrument(s)
	if inst.BaseAsset.Step != "0.0001" {
		t.Errorf("BaseAsset.Step = %q, want \"0.0001\"", inst.BaseAsset.Step)
	}
	if inst.PriceAssetPrecision != 1 {
		t.Errorf("PriceAssetPrecision = %d, want 1", inst.PriceAssetPrecision)
	}
	if inst.MaxOrders != 200 {
		t.Errorf("MaxOrders = %d, want 200", inst.MaxOrders)
	}
}

func TestNormalizeInstrumentZeroQuantityScaleYieldsUnitStep(t *testing.T) {
	s := symbolEntry{QuantityScale: "0"}
	inst := normalizeInstrument(s)
	if inst.BaseAsset.Step != "1" {
		t.Errorf("BaseAsset.Step with quantityScale=0 = %q, want \"1\"", inst.BaseAsset.Step)
	}
}

func TestRepeatZeros(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "0"},
		{3, "000"},
	}
	for i, test := range tests {
		if got := repeatZeros(test.n); got != test.want {
			t.Errorf("#%d: repeatZeros(%d) = %q, want %q", i, test.n, got, test.want)
		}
	}
}

func TestNormalizeCandle(t *testing.T) {
	row := candleRow{"1690000000000", "100", "110", "90", "105", "42"}
	candle := normalizeCandle(row)
	if candle.OpenTime != 1690000000000 {
		t.Errorf("OpenTime = %d, want 1690000000000", candle.OpenTime)
	}
	if candle.Volume != "42" {
		t.Errorf("Volume = %q, want \"42\"", candle.Volume)
	}
}
