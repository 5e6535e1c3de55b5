package okx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/pkg/gateway"
	"github.com/daglabs/gatewaygo/pkg/types"
)

var _ gateway.Connector = (*Client)(nil)

func (c *Client) GetBalance(ctx context.Context) types.Result[[]types.FreeAsset] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.FreeAsset](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getBalance", 1, 0), func(ctx context.Context) ([]types.FreeAsset, error) {
		var rows []balanceEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/account/balance", url.Values{}, nil, true, &rows); err != nil {
			return nil, err
		}
		var out []types.FreeAsset
		for _, b := range rows {
			for _, d := range b.Details {
				out = append(out, types.FreeAsset{Asset: d.Ccy, Free: d.AvailBal, Locked: d.FrozenBal})
			}
		}
		return out, nil
	})
}

func (c *Client) GetAPIPermission(ctx context.Context) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getApiKey", 1, 0), func(ctx context.Context) (bool, error) {
		var rows []apiKeyEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/account/api-key", url.Values{}, nil, true, &rows); err != nil {
			return false, err
		}
		return len(rows) > 0 && rows[0].Perm != "", nil
	})
}

func (c *Client) GetUID(ctx context.Context) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getUid", 1, 0), func(ctx context.Context) (string, error) {
		var out struct {
			UID string `json:"uid"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v5/users/subaccount/info", url.Values{}, nil, true, &out); err != nil {
			return "", err
		}
		return out.UID, nil
	})
}

func (c *Client) GetAffiliate(ctx context.Context, uid string) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAffiliate", 1, 0), func(ctx context.Context) (bool, error) {
		q := url.Values{"uid": {uid}}
		var out struct {
			Exist bool `json:"exist"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v5/affiliate/invitee/detail", q, nil, true, &out); err != nil {
			return false, err
		}
		return out.Exist, nil
	})
}

// tdMode returns the OKX trade-mode string for the order's target
// instrument: "cash" for spot, "cross" for swap (spec.md is silent on
// isolated-by-default here; cross matches this client's default margin
// handling elsewhere in this tree).
func (c *Client) tdMode() string {
	if c.futures != types.FuturesNone {
		return "cross"
	}
	return "cash"
}

func (c *Client) OpenOrder(ctx context.Context, o gateway.OrderRequest) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps("placeOrder", 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		instId := c.translateSymbol(o.Symbol)
		body := map[string]interface{}{
			"instId": instId, "tdMode": c.tdMode(), "side": strings.ToLower(string(o.Side)),
			"ordType": strings.ToLower(string(o.Type)), "sz": o.Quantity, "clOrdId": o.ClientOrderID,
		}
		if o.Type == types.TypeLimit {
			body["px"] = o.Price
		}
		if c.futures != types.FuturesNone {
			body["reduceOnly"] = o.ReduceOnly
			if o.PositionSide != "" && o.PositionSide != types.PositionBoth {
				body["posSide"] = strings.ToLower(string(o.PositionSide))
			}
		}
		raw, _ := json.Marshal(body)
		var out []struct {
			OrdId   string `json:"ordId"`
			ClOrdId string `json:"clOrdId"`
		}
		if err := c.do(ctx, http.MethodPost, "/api/v5/trade/order", nil, raw, true, &out); err != nil {
			return types.CanonicalOrder{}, err
		}
		if len(out) == 0 {
			return types.CanonicalOrder{}, fmt.Errorf("okx: empty order response")
		}
		return c.fetchOrder(ctx, instId, out[0].ClOrdId, out[0].OrdId)
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	return facade.Dispatch(ctx, c.deps("getOrder(confirm)", 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrder(ctx, c.translateSymbol(created.Symbol), created.ClientOrderID, created.OrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) fetchOrder(ctx context.Context, instId, clOrdId, ordId string) (types.CanonicalOrder, error) {
	q := url.Values{"instId": {instId}}
	if clOrdId != "" {
		q.Set("clOrdId", clOrdId)
	} else {
		q.Set("ordId", ordId)
	}
	var out []orderEntry
	if err := c.do(ctx, http.MethodGet, "/api/v5/trade/order", q, nil, true, &out); err != nil {
		return types.CanonicalOrder{}, err
	}
	if len(out) == 0 {
		return types.CanonicalOrder{}, fmt.Errorf("okx: order not found")
	}
	return normalizeOrder(out[0]), nil
}

func (c *Client) GetOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getOrder", 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.fetchOrder(ctx, c.translateSymbol(ref.Symbol), ref.ClientOrderID, ref.OrderID)
	})
}

func (c *Client) cancelOnce(ctx context.Context, symbol, clOrdId, ordId string) (types.CanonicalOrder, error) {
	instId := c.translateSymbol(symbol)
	body := map[string]interface{}{"instId": instId}
	if clOrdId != "" {
		body["clOrdId"] = clOrdId
	} else {
		body["ordId"] = ordId
	}
	raw, _ := json.Marshal(body)
	var out []struct {
		OrdId   string `json:"ordId"`
		ClOrdId string `json:"clOrdId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v5/trade/cancel-order", nil, raw, true, &out); err != nil {
		return types.CanonicalOrder{}, err
	}
	if len(out) == 0 {
		return types.CanonicalOrder{}, fmt.Errorf("okx: empty cancel response")
	}
	return c.fetchOrder(ctx, instId, out[0].ClOrdId, out[0].OrdId)
}

func (c *Client) CancelOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps("cancelOrder", 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.cancelOnce(ctx, ref.Symbol, ref.ClientOrderID, ref.OrderID)
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	return facade.Dispatch(ctx, c.deps("getOrder(confirm)", 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrder(ctx, c.translateSymbol(created.Symbol), created.ClientOrderID, created.OrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) CancelOrderByOrderIDAndSymbol(ctx context.Context, symbol, orderID string) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("cancelOrder", 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.cancelOnce(ctx, symbol, "", orderID)
	})
}

func (c *Client) GetAllOpenOrders(ctx context.Context, symbol string, returnOrders bool) types.Result[[]types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllOpenOrders", 1, 0), func(ctx context.Context) ([]types.CanonicalOrder, error) {
		q := url.Values{"instType": {c.instType()}}
		if symbol != "" {
			q.Set("instId", c.translateSymbol(symbol))
		}
		var rows []orderEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/trade/orders-pending", q, nil, true, &rows); err != nil {
			return nil, err
		}
		result := make([]types.CanonicalOrder, len(rows))
		for i, o := range rows {
			result[i] = normalizeOrder(o)
		}
		return result, nil
	})
}

func (c *Client) LatestPrice(ctx context.Context, symbol string) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getTicker", 1, 0), func(ctx context.Context) (string, error) {
		instId := c.translateSymbol(symbol)
		q := url.Values{"instId": {instId}}
		var rows []tickerEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/market/ticker", q, nil, false, &rows); err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "", fmt.Errorf("okx: unknown symbol %s", instId)
		}
		return rows[0].Last, nil
	})
}

func (c *Client) GetAllPrices(ctx context.Context) types.Result[[]types.TickerPrice] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.TickerPrice](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllTickers", 1, 0), func(ctx context.Context) ([]types.TickerPrice, error) {
		q := url.Values{"instType": {c.instType()}}
		var rows []tickerEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/market/tickers", q, nil, false, &rows); err != nil {
			return nil, err
		}
		result := make([]types.TickerPrice, len(rows))
		for i, t := range rows {
			result[i] = types.TickerPrice{Symbol: untranslateSymbol(t.InstId), Price: t.Last}
		}
		return result, nil
	})
}

// okxInterval maps the canonical interval onto OKX's wire encoding (spec.md
// §6: "1m,3m,5m,15m,30m,1H,2H,4H,1Dutc,1Wutc").
func okxInterval(interval types.CandleInterval) string {
	switch interval {
	case types.Interval1h:
		return "1H"
	case types.Interval2h:
		return "2H"
	case types.Interval4h:
		return "4H"
	case types.Interval8h:
		return "8H"
	case types.Interval1d:
		return "1Dutc"
	case types.Interval1w:
		return "1Wutc"
	default:
		return string(interval)
	}
}

// intervalDuration returns the wall-clock span of one candle, used for the
// historic-vs-regular routing decision (spec.md §8 scenario S5).
func intervalDuration(interval types.CandleInterval) time.Duration {
	switch interval {
	case types.Interval1m:
		return time.Minute
	case types.Interval3m:
		return 3 * time.Minute
	case types.Interval5m:
		return 5 * time.Minute
	case types.Interval15m:
		return 15 * time.Minute
	case types.Interval30m:
		return 30 * time.Minute
	case types.Interval1h:
		return time.Hour
	case types.Interval2h:
		return 2 * time.Hour
	case types.Interval4h:
		return 4 * time.Hour
	case types.Interval8h:
		return 8 * time.Hour
	case types.Interval1d:
		return 24 * time.Hour
	case types.Interval1w:
		return 7 * 24 * time.Hour
	default:
		return time.Minute
	}
}

// maxRegularCandles is OKX's history horizon for the regular candles
// endpoint (spec.md §8 scenario S5: "now - from > 5m x 1400").
const maxRegularCandles = 1400

func (c *Client) GetCandles(ctx context.Context, symbol string, interval types.CandleInterval, from, to int64, count int) types.Result[[]types.Candle] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Candle](c.clk, err.Error())
	}
	// OKX doubles the queue-wait timeout for candle calls (spec.md §4.4
	// step 3).
	return facade.Dispatch(ctx, c.deps("getCandles", 1, 2*facade.DefaultTimeout), func(ctx context.Context) ([]types.Candle, error) {
		instId := c.translateSymbol(symbol)
		path := "/api/v5/market/candles"
		span := intervalDuration(interval)
		if from > 0 && to > 0 && span > 0 {
			requested := time.Duration(c.clk.Now().UnixMilli()-from) * time.Millisecond
			if requested > span*maxRegularCandles {
				path = "/api/v5/market/history-candles"
			}
		}
		q := url.Values{"instId": {instId}, "bar": {okxInterval(interval)}}
		if from > 0 {
			q.Set("before", formatMillis(from))
		}
		if to > 0 {
			q.Set("after", formatMillis(to))
		}
		if count > 0 {
			q.Set("limit", strconv.Itoa(count))
		}
		var rows []candleRow
		if err := c.do(ctx, http.MethodGet, path, q, nil, false, &rows); err != nil {
			return nil, err
		}
		result := make([]types.Candle, len(rows))
		for i, r := range rows {
			result[i] = normalizeCandle(r)
		}
		// OKX returns candles newest-first; normalized output is sorted
		// ascending by open time (spec.md §8 scenario S5).
		for l, r := 0, len(result)-1; l < r; l, r = l+1, r-1 {
			result[l], result[r] = result[r], result[l]
		}
		return result, nil
	})
}

func (c *Client) GetTrades(ctx context.Context, symbol string, limit int) types.Result[[]types.Trade] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Trade](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getTrades", 1, 0), func(ctx context.Context) ([]types.Trade, error) {
		instId := c.translateSymbol(symbol)
		q := url.Values{"instId": {instId}}
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		var rows []tradeEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/market/trades", q, nil, false, &rows); err != nil {
			return nil, err
		}
		result := make([]types.Trade, len(rows))
		for i, t := range rows {
			result[i] = types.Trade{Price: t.Px, Qty: t.Sz, Time: parseMillis(t.Ts), IsBuyerMaker: t.Side == "sell"}
		}
		return result, nil
	})
}

func (c *Client) GetExchangeInfo(ctx context.Context, symbol string) types.Result[types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getInstruments", 1, 0), func(ctx context.Context) (types.Instrument, error) {
		instId := c.translateSymbol(symbol)
		q := url.Values{"instType": {c.instType()}, "instId": {instId}}
		var rows []instrumentEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/public/instruments", q, nil, false, &rows); err != nil {
			return types.Instrument{}, err
		}
		if len(rows) == 0 {
			return types.Instrument{}, fmt.Errorf("okx: unknown symbol %s", instId)
		}
		return normalizeInstrument(rows[0]), nil
	})
}

func (c *Client) GetAllExchangeInfo(ctx context.Context) types.Result[[]types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getInstruments", 1, 0), func(ctx context.Context) ([]types.Instrument, error) {
		q := url.Values{"instType": {c.instType()}}
		var rows []instrumentEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/public/instruments", q, nil, false, &rows); err != nil {
			return nil, err
		}
		result := make([]types.Instrument, len(rows))
		for i, inst := range rows {
			result[i] = normalizeInstrument(inst)
		}
		return result, nil
	})
}

func (c *Client) GetUserFees(ctx context.Context, symbol string) types.Result[types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getFeeRates", 1, 0), func(ctx context.Context) (types.UserFee, error) {
		instId := c.translateSymbol(symbol)
		q := url.Values{"instType": {c.instType()}, "instId": {instId}}
		var rows []feeRateEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/account/trade-fee", q, nil, true, &rows); err != nil {
			return types.UserFee{}, err
		}
		if len(rows) == 0 {
			return types.UserFee{}, fmt.Errorf("okx: no fee data for %s", instId)
		}
		return types.UserFee{Symbol: untranslateSymbol(rows[0].InstId), MakerFee: rows[0].Maker, TakerFee: rows[0].Taker}, nil
	})
}

func (c *Client) GetAllUserFees(ctx context.Context) types.Result[[]types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getFeeRates", 1, 0), func(ctx context.Context) ([]types.UserFee, error) {
		q := url.Values{"instType": {c.instType()}}
		var rows []feeRateEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/account/trade-fee", q, nil, true, &rows); err != nil {
			return nil, err
		}
		result := make([]types.UserFee, len(rows))
		for i, f := range rows {
			result[i] = types.UserFee{Symbol: untranslateSymbol(f.InstId), MakerFee: f.Maker, TakerFee: f.Taker}
		}
		return result, nil
	})
}

func (c *Client) FuturesChangeLeverage(ctx context.Context, symbol string, leverage int) types.Result[int] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[int](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[int](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("setLeverage", 1, 0), func(ctx context.Context) (int, error) {
		instId := c.translateSymbol(symbol)
		body := map[string]interface{}{"instId": instId, "lever": strconv.Itoa(leverage), "mgnMode": c.tdMode()}
		raw, _ := json.Marshal(body)
		if err := c.do(ctx, http.MethodPost, "/api/v5/account/set-leverage", nil, raw, true, nil); err != nil {
			return 0, err
		}
		return leverage, nil
	})
}

func (c *Client) FuturesChangeMarginType(ctx context.Context, symbol string, isolated bool) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("setLeverage", 1, 0), func(ctx context.Context) (bool, error) {
		instId := c.translateSymbol(symbol)
		mode := "cross"
		if isolated {
			mode = "isolated"
		}
		body := map[string]interface{}{"instId": instId, "lever": "1", "mgnMode": mode}
		raw, _ := json.Marshal(body)
		if err := c.do(ctx, http.MethodPost, "/api/v5/account/set-leverage", nil, raw, true, nil); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (c *Client) FuturesGetHedge(ctx context.Context) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAccountConfig", 1, 0), func(ctx context.Context) (bool, error) {
		var rows []accountConfigEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/account/config", url.Values{}, nil, true, &rows); err != nil {
			return false, err
		}
		return len(rows) > 0 && rows[0].PosMode == "long_short_mode", nil
	})
}

func (c *Client) FuturesSetHedge(ctx context.Context, hedge bool) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("setPositionMode", 1, 0), func(ctx context.Context) (bool, error) {
		mode := "net_mode"
		if hedge {
			mode = "long_short_mode"
		}
		body := map[string]interface{}{"posMode": mode}
		raw, _ := json.Marshal(body)
		if err := c.do(ctx, http.MethodPost, "/api/v5/account/set-position-mode", nil, raw, true, nil); err != nil {
			return false, err
		}
		return hedge, nil
	})
}

func (c *Client) FuturesGetPositions(ctx context.Context, symbol string) types.Result[[]types.PositionInfo] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.PositionInfo](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[[]types.PositionInfo](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getPositions", 1, 0), func(ctx context.Context) ([]types.PositionInfo, error) {
		q := url.Values{"instType": {c.instType()}}
		if symbol != "" {
			q.Set("instId", c.translateSymbol(symbol))
		}
		var rows []positionEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/account/positions", q, nil, true, &rows); err != nil {
			return nil, err
		}
		result := make([]types.PositionInfo, 0, len(rows))
		for _, p := range rows {
			if p.Pos == "" || p.Pos == "0" {
				continue
			}
			result = append(result, types.PositionInfo{
				Symbol: untranslateSymbol(p.InstId), PositionSide: positionSideOf(p.PosSide),
				PositionAmt: p.Pos, EntryPrice: p.AvgPx, MarkPrice: p.MarkPx, UnrealizedProfit: p.Upl,
				Leverage: p.Lever, Isolated: p.MgnMode == "isolated", LiquidationPrice: p.LiqPx,
			})
		}
		return result, nil
	})
}

func (c *Client) FuturesLeverageBracket(ctx context.Context, symbol string) types.Result[[]types.LeverageBracket] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.LeverageBracket](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[[]types.LeverageBracket](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getLeverage", 1, 0), func(ctx context.Context) ([]types.LeverageBracket, error) {
		instId := c.translateSymbol(symbol)
		q := url.Values{"instId": {instId}, "mgnMode": {c.tdMode()}}
		var rows []leverageEntry
		if err := c.do(ctx, http.MethodGet, "/api/v5/account/leverage-info", q, nil, true, &rows); err != nil {
			return nil, err
		}
		result := make([]types.LeverageBracket, len(rows))
		for i, l := range rows {
			result[i] = types.LeverageBracket{Bracket: i + 1, InitialLeverage: l.Lever}
		}
		return result, nil
	})
}
