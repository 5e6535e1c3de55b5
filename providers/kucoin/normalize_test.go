package kucoin

import (
	"testing"

	"github.com/daglabs/gatewaygo/pkg/types"
)

func TestNormalizeSpotStatus(t *testing.T) {
	tests := []struct {
		o    orderEntry
		want types.OrderStatus
	}{
		{orderEntry{IsActive: true, DealSize: "0"}, types.StatusNew},
		{orderEntry{IsActive: true, DealSize: ""}, types.StatusNew},
		{orderEntry{IsActive: true, Size: "2", DealSize: "1"}, types.StatusPartiallyFilled},
		{orderEntry{IsActive: false, CancelExist: false}, types.StatusFilled},
		{orderEntry{IsActive: false, CancelExist: true}, types.StatusCanceled},
	}
	for i, test := range tests {
		if got := normalizeSpotStatus(test.o); got != test.want {
			t.Errorf("#%d: normalizeSpotStatus(%+v) = %v, want %v", i, test.o, got, test.want)
		}
	}
}

func TestNormalizeFuturesStatus(t *testing.T) {
	tests := []struct {
		o    orderEntry
		want types.OrderStatus
	}{
		{orderEntry{Status: "open", FilledSize: "0"}, types.StatusNew},
		{orderEntry{Status: "open", FilledSize: "1"}, types.StatusPartiallyFilled},
		{orderEntry{Status: "done", Size: "2", FilledSize: "2"}, types.StatusFilled},
		{orderEntry{Status: "done", Size: "2", FilledSize: "1"}, types.StatusCanceled},
		{orderEntry{Status: "cancelled"}, types.StatusCanceled},
	}
	for i, test := range tests {
		if got := normalizeFuturesStatus(test.o); got != test.want {
			t.Errorf("#%d: normalizeFuturesStatus(%+v) = %v, want %v", i, test.o, got, test.want)
		}
	}
}

func TestSpotMarketPriceDerivesFromDealFundsOverSize(t *testing.T) {
	o := orderEntry{Type: "market", Price: "0", DealFunds: "300", DealSize: "2"}
	if got := spotMarketPrice(o); got != "150.00000000" {
		t.Errorf("spotMarketPrice = %q, want \"150.00000000\"", got)
	}
}

func TestSpotMarketPriceFallsBackWhenNoFillYet(t *testing.T) {
	o := orderEntry{Type: "market", Price: "27000", DealFunds: "0", DealSize: "0"}
	if got := spotMarketPrice(o); got != "27000" {
		t.Errorf("spotMarketPrice with no fill = %q, want \"27000\"", got)
	}
}

func TestSpotMarketPriceLimitOrderKeepsQuotedPrice(t *testing.T) {
	o := orderEntry{Type: "limit", Price: "27000", DealFunds: "300", DealSize: "2"}
	if got := spotMarketPrice(o); got != "27000" {
		t.Errorf("spotMarketPrice for a limit order = %q, want \"27000\"", got)
	}
}

func TestFuturesMarketPricePrefersAvgDealPrice(t *testing.T) {
	o := orderEntry{Type: "market", AvgDealPrice: "27000.5"}
	if got := futuresMarketPrice(o, false); got != "27000.5" {
		t.Errorf("futuresMarketPrice = %q, want \"27000.5\"", got)
	}
}

func TestFuturesMarketPriceLinearDividesValueBySize(t *testing.T) {
	o := orderEntry{Type: "market", Price: "0", FilledValue: "300", FilledSize: "2"}
	if got := futuresMarketPrice(o, false); got != "150.00000000" {
		t.Errorf("futuresMarketPrice (linear) = %q, want \"150.00000000\"", got)
	}
}

func TestFuturesMarketPriceInverseDividesSizeByValue(t *testing.T) {
	o := orderEntry{Type: "market", Price: "0", FilledValue: "4", FilledSize: "2"}
	if got := futuresMarketPrice(o, true); got != "0.50000000" {
		t.Errorf("futuresMarketPrice (inverse) = %q, want \"0.50000000\"", got)
	}
}

func TestNormalizeOrderSpotUntranslatesSymbolAndForcesReduceOnlyFalse(t *testing.T) {
	o := orderEntry{Symbol: "XBTUSDTM", Side: "buy", Type: "limit", Price: "1", ReduceOnly: true}
	order := normalizeOrder(o, false, false)
	if order.Symbol != "BTCUSDT" {
		t.Errorf("normalizeOrder spot Symbol = %q, want \"BTCUSDT\"", order.Symbol)
	}
	if order.ReduceOnly == nil || *order.ReduceOnly {
		t.Error("normalizeOrder spot should always report ReduceOnly=false regardless of the wire value")
	}
}

func TestNormalizeOrderFuturesPreservesReduceOnly(t *testing.T) {
	o := orderEntry{Symbol: "XBTUSDTM", Side: "sell", Type: "limit", Price: "1", ReduceOnly: true}
	order := normalizeOrder(o, true, false)
	if order.ReduceOnly == nil || !*order.ReduceOnly {
		t.Error("normalizeOrder futures should carry through the wire ReduceOnly value")
	}
}

func TestUntranslateSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"XBTUSDT", "BTCUSDT"},
		{"XBTUSDTM", "BTCUSDT"},
		{"ETHUSDTM", "ETHUSDT"},
		{"ETHUSDT", "ETHUSDT"},
	}
	for i, test := range tests {
		if got := untranslateSymbol(test.in); got != test.want {
			t.Errorf("#%d: untranslateSymbol(%q) = %q, want %q", i, test.in, got, test.want)
		}
	}
}

func TestNormalizeSpotInstrumentRoundsQuoteMinSizeUp(t *testing.T) {
	s := symbolEntry{
		Symbol: "XBTUSDT", BaseCurrency: "BTC", QuoteCurrency: "USDT",
		BaseMinSize: "0.00001", BaseMaxSize: "100", BaseIncrement: "0.00001",
		QuoteMinSize: "0.1", QuoteIncrement: "0.0001", PriceIncrement: "0.01",
	}
	inst := normalizeSpotInstrument(s)
	if inst.Pair != "BTCUSDT" {
		t.Errorf("Pair = %q, want \"BTCUSDT\"", inst.Pair)
	}
	if inst.PriceAssetPrecision != 2 {
		t.Errorf("PriceAssetPrecision = %d, want 2", inst.PriceAssetPrecision)
	}
	// 0.1 + 0.0001 = 0.1001, rounded up to 2 digits.
	if inst.QuoteAsset.MinAmount != "0.11" {
		t.Errorf("QuoteAsset.MinAmount = %q, want \"0.11\"", inst.QuoteAsset.MinAmount)
	}
}

func TestNormalizeFuturesInstrumentFormatsFloatsAsDecimalStrings(t *testing.T) {
	c := contractEntry{Symbol: "XBTUSDTM", BaseCurrency: "BTC", QuoteCurrency: "USDT", LotSize: 1, TickSize: 0.1, MaxOrderQty: 1000000, MaxLeverage: 100}
	inst := normalizeFuturesInstrument(c)
	if inst.Pair != "BTCUSDT" {
		t.Errorf("Pair = %q, want \"BTCUSDT\"", inst.Pair)
	}
	if inst.BaseAsset.Step != "1" {
		t.Errorf("BaseAsset.Step = %q, want \"1\"", inst.BaseAsset.Step)
	}
	if inst.PriceAssetPrecision != 1 {
		t.Errorf("PriceAssetPrecision = %d, want 1", inst.PriceAssetPrecision)
	}
	if inst.MaxLeverage == nil || *inst.MaxLeverage != "100" {
		t.Errorf("MaxLeverage = %v, want \"100\"", inst.MaxLeverage)
	}
}

func TestParseMillisZeroBecomesUnknown(t *testing.T) {
	if got := parseMillis(0); got != -1 {
		t.Errorf("parseMillis(0) = %d, want -1", got)
	}
	if got := parseMillis(1690000000000); got != 1690000000000 {
		t.Errorf("parseMillis(1690000000000) = %d, want 1690000000000", got)
	}
}

func TestNormalizeCandleConvertsSecondsToMillis(t *testing.T) {
	row := candleRow{"1690000000", "100", "105", "110", "90", "42"}
	candle := normalizeCandle(row)
	if candle.OpenTime != 1690000000000 {
		t.Errorf("OpenTime = %d, want 1690000000000", candle.OpenTime)
	}
	if candle.Open != "100" || candle.Close != "105" {
		t.Errorf("Open/Close = %q/%q, want \"100\"/\"105\"", candle.Open, candle.Close)
	}
}
