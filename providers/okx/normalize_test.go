package okx

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
		{"canceled", types.StatusCanceled},
	}
	for i, test := range tests {
		if got := normalizeStatus(test.raw); got != test.want {
			t.Errorf("#%d: normalizeStatus(%q) = %v, want %v", i, test.raw, got, test.want)
		}
	}
}

func TestNormalizeOrderMarketUsesAveragePrice(t *testing.T) {
	o := orderEntry{OrdType: "market", Px: "0", AvgPx: "27000.5", AccFillSz: "2"}
	order := normalizeOrder(o)
	if order.Price != "27000.5" {
		t.Errorf("normalizeOrder MARKET price = %q, want \"27000.5\"", order.Price)
	}
	if order.CummulativeQuoteQty != "54001.00000000" {
		t.Errorf("normalizeOrder CummulativeQuoteQty = %q, want \"54001.00000000\"", order.CummulativeQuoteQty)
	}
}

func TestNormalizeOrderMarketWithNoAveragePriceYetKeepsQuotedPrice(t *testing.T) {
	o := orderEntry{OrdType: "market", Px: "27000", AvgPx: "0"}
	order := normalizeOrder(o)
	if order.Price != "27000" {
		t.Errorf("normalizeOrder should keep the quoted price when avgPx is still 0, got %q", order.Price)
	}
}

func TestNormalizeOrderLimitKeepsQuotedPrice(t *testing.T) {
	o := orderEntry{OrdType: "limit", Px: "27000"}
	order := normalizeOrder(o)
	if order.Price != "27000" {
		t.Errorf("normalizeOrder LIMIT price = %q, want \"27000\"", order.Price)
	}
}

func TestNormalizeOrderUntranslatesInstIdAndReduceOnly(t *testing.T) {
	o := orderEntry{InstId: "BTC-USDT-SWAP", Side: "buy", OrdType: "limit", Px: "1", ReduceOnly: "true", PosSide: "long"}
	order := normalizeOrder(o)
	if order.Symbol != "BTC-USDT" {
		t.Errorf("normalizeOrder Symbol = %q, want \"BTC-USDT\"", order.Symbol)
	}
	if order.ReduceOnly == nil || !*order.ReduceOnly {
		t.Error("normalizeOrder ReduceOnly should be true")
	}
	if order.PositionSide != types.PositionLong {
		t.Errorf("normalizeOrder PositionSide = %v, want PositionLong", order.PositionSide)
	}
}

func TestPositionSideOf(t *testing.T) {
	tests := []struct {
		raw  string
		want types.PositionSide
	}{
		{"long", types.PositionLong},
		{"short", types.PositionShort},
		{"net", types.PositionBoth},
		{"", types.PositionBoth},
	}
	for i, test := range tests {
		if got := positionSideOf(test.raw); got != test.want {
			t.Errorf("#%d: positionSideOf(%q) = %v, want %v", i, test.raw, got, test.want)
		}
	}
}

func TestUntranslateSymbol(t *testing.T) {
	if got := untranslateSymbol("BTC-USDT-SWAP"); got != "BTC-USDT" {
		t.Errorf("untranslateSymbol(\"BTC-USDT-SWAP\") = %q, want \"BTC-USDT\"", got)
	}
	if got := untranslateSymbol("BTC-USDT"); got != "BTC-USDT" {
		t.Errorf("untranslateSymbol(\"BTC-USDT\") = %q, want \"BTC-USDT\" unchanged", got)
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

func TestNormalizeInstrument(t *testing.T) {
	i := instrumentEntry{
		InstId: "BTC-USDT-SWAP", BaseCcy: "BTC", QuoteCcy: "USDT",
		TickSz: "0.1", LotSz: "1", MinSz: "1", MaxLmtSz: "10000", MaxMktSz: "1000", Lever: "100",
	}
	inst := normalizeInstrument(i)
	if inst.Pair != "BTC-USDT" {
		t.Errorf("Pair = %q, want \"BTC-USDT\"", inst.Pair)
	}
	if inst.PriceAssetPrecision != 1 {
		t.Errorf("PriceAssetPrecision = %d, want 1", inst.PriceAssetPrecision)
	}
	if inst.MaxLeverage == nil || *inst.MaxLeverage != "100" {
		t.Errorf("MaxLeverage = %v, want \"100\"", inst.MaxLeverage)
	}
}

func TestNormalizeInstrumentEmptyLeverLeavesNilPointer(t *testing.T) {
	i := instrumentEntry{InstId: "BTC-USDT"}
	inst := normalizeInstrument(i)
	if inst.MaxLeverage != nil {
		t.Error("normalizeInstrument should leave MaxLeverage nil when lever is empty")
	}
}

func TestNormalizeCandle(t *testing.T) {
	row := candleRow{"1690000000000", "100", "110", "90", "105", "42"}
	candle := normalizeCandle(row)
	if candle.OpenTime != 1690000000000 {
		t.Errorf("OpenTime = %d, want 1690000000000", candle.OpenTime)
	}
	if candle.High != "110" || candle.Low != "90" {
		t.Errorf("High/Low = %q/%q, want \"110\"/\"90\"", candle.High, candle.Low)
	}
}
