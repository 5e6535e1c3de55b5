package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
	"github.com/daglabs/gatewaygo/pkg/gateway"
	"github.com/daglabs/gatewaygo/pkg/types"
)

func jsonMarshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

var _ gateway.Connector = (*Client)(nil)

func (c *Client) GetBalance(ctx context.Context) types.Result[[]types.FreeAsset] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.FreeAsset](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getBalance", 1), func(ctx context.Context) ([]types.FreeAsset, error) {
		accountType, _, err := c.accountMeta(ctx)
		if err != nil {
			return nil, err
		}
		q := url.Values{"accountType": {accountType}}
		var out walletBalanceResponse
		if err := c.do(ctx, http.MethodGet, "/v5/account/wallet-balance", q, nil, true, &out); err != nil {
			return nil, err
		}
		if len(out.List) == 0 {
			return nil, nil
		}
		coins := out.List[0].Coin
		assets := make([]types.FreeAsset, len(coins))
		for i, b := range coins {
			assets[i] = types.FreeAsset{Asset: b.Coin, Free: b.AvailableToWithdraw, Locked: b.Locked}
		}
		return assets, nil
	})
}

func (c *Client) GetAPIPermission(ctx context.Context) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getApiPermission", 1), func(ctx context.Context) (bool, error) {
		var out struct {
			Permissions struct {
				Spot       []string `json:"Spot"`
				Derivative []string `json:"Derivatives"`
			} `json:"permissions"`
		}
		if err := c.do(ctx, http.MethodGet, "/v5/user/query-api", url.Values{}, nil, true, &out); err != nil {
			return false, err
		}
		if c.futures != types.FuturesNone {
			return len(out.Permissions.Derivative) > 0, nil
		}
		return len(out.Permissions.Spot) > 0, nil
	})
}

func (c *Client) GetUID(ctx context.Context) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getUid", 1), func(ctx context.Context) (string, error) {
		var out struct {
			UID string `json:"uid"`
		}
		if err := c.do(ctx, http.MethodGet, "/v5/user/query-api", url.Values{}, nil, true, &out); err != nil {
			return "", err
		}
		return out.UID, nil
	})
}

func (c *Client) GetAffiliate(ctx context.Context, uid string) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAffiliate", 1), func(ctx context.Context) (bool, error) {
		q := url.Values{"uid": {uid}}
		var out struct {
			Result struct {
				Status int `json:"status"`
			} `json:"result"`
		}
		if err := c.do(ctx, http.MethodGet, "/v5/affiliate/aff-user-list", q, nil, true, &out); err != nil {
			return false, err
		}
		return out.Result.Status == 1, nil
	})
}

func (c *Client) openOrderOnce(ctx context.Context, o gateway.OrderRequest, positionIdx int) (types.CanonicalOrder, error) {
	body := map[string]interface{}{
		"category":    c.category(),
		"symbol":      o.Symbol,
		"side":        strings.Title(strings.ToLower(string(o.Side))),
		"orderType":   strings.Title(strings.ToLower(string(o.Type))),
		"qty":         o.Quantity,
		"orderLinkId": o.ClientOrderID,
	}
	if o.Type == types.TypeLimit {
		body["price"] = o.Price
		body["timeInForce"] = "GTC"
	}
	if c.futures != types.FuturesNone {
		body["reduceOnly"] = o.ReduceOnly
		if positionIdx >= 0 {
			body["positionIdx"] = positionIdx
		}
	}
	raw, _ := jsonMarshal(body)
	var out struct {
		OrderID     string `json:"orderId"`
		OrderLinkID string `json:"orderLinkId"`
	}
	if err := c.do(ctx, http.MethodPost, "/v5/order/create", nil, raw, true, &out); err != nil {
		return types.CanonicalOrder{}, err
	}
	return c.fetchOrder(ctx, o.Symbol, out.OrderLinkID, out.OrderID)
}

func (c *Client) OpenOrder(ctx context.Context, o gateway.OrderRequest) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps("openOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		order, err := c.openOrderOnce(ctx, o, -1)
		if err == nil {
			return order, nil
		}
		// Futures idempotency case (spec.md §4.4): recompute positionIdx
		// from (side, reduceOnly) and retry once.
		if ee, ok := err.(*retryclassifier.ExchangeError); ok && strings.Contains(strings.ToLower(ee.Message), "position idx not match position mode") {
			idx := expectedPositionIdx(o.Side, o.ReduceOnly)
			return c.openOrderOnce(ctx, o, idx)
		}
		return types.CanonicalOrder{}, err
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	// Post-create consistency: confirm via getOrder with a bounded retry
	// loop against "order not found" (spec.md §4.4).
	return facade.Dispatch(ctx, c.deps("getOrder(confirm)", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrder(ctx, created.Symbol, created.ClientOrderID, created.OrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) fetchOrder(ctx context.Context, symbol, clientOrderID, orderID string) (types.CanonicalOrder, error) {
	q := url.Values{"category": {c.category()}, "symbol": {symbol}}
	if clientOrderID != "" {
		q.Set("orderLinkId", clientOrderID)
	} else {
		q.Set("orderId", orderID)
	}
	var out orderListResponse
	if err := c.do(ctx, http.MethodGet, "/v5/order/realtime", q, nil, true, &out); err != nil {
		return types.CanonicalOrder{}, err
	}
	if len(out.List) == 0 {
		return types.CanonicalOrder{}, fmt.Errorf("order not found")
	}
	return normalizeOrder(out.List[0]), nil
}

func (c *Client) GetOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.fetchOrder(ctx, ref.Symbol, ref.ClientOrderID, ref.OrderID)
	})
}

func (c *Client) cancelOnce(ctx context.Context, symbol, clientOrderID, orderID string) (types.CanonicalOrder, error) {
	body := map[string]interface{}{"category": c.category(), "symbol": symbol}
	if clientOrderID != "" {
		body["orderLinkId"] = clientOrderID
	} else {
		body["orderId"] = orderID
	}
	raw, _ := jsonMarshal(body)
	var out struct {
		OrderID     string `json:"orderId"`
		OrderLinkID string `json:"orderLinkId"`
	}
	if err := c.do(ctx, http.MethodPost, "/v5/order/cancel", nil, raw, true, &out); err != nil {
		return types.CanonicalOrder{}, err
	}
	return c.fetchOrder(ctx, symbol, out.OrderLinkID, out.OrderID)
}

func (c *Client) CancelOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps("cancelOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.cancelOnce(ctx, ref.Symbol, ref.ClientOrderID, ref.OrderID)
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	return facade.Dispatch(ctx, c.deps("getOrder(confirm)", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrder(ctx, created.Symbol, created.ClientOrderID, created.OrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) CancelOrderByOrderIDAndSymbol(ctx context.Context, symbol, orderID string) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("cancelOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.cancelOnce(ctx, symbol, "", orderID)
	})
}

func (c *Client) GetAllOpenOrders(ctx context.Context, symbol string, returnOrders bool) types.Result[[]types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllOpenOrders", 1), func(ctx context.Context) ([]types.CanonicalOrder, error) {
		q := url.Values{"category": {c.category()}}
		if symbol != "" {
			q.Set("symbol", symbol)
		}
		var out orderListResponse
		if err := c.do(ctx, http.MethodGet, "/v5/order/realtime", q, nil, true, &out); err != nil {
			return nil, err
		}
		result := make([]types.CanonicalOrder, len(out.List))
		for i, o := range out.List {
			result[i] = normalizeOrder(o)
		}
		return result, nil
	})
}

func (c *Client) LatestPrice(ctx context.Context, symbol string) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("latestPrice", 1), func(ctx context.Context) (string, error) {
		q := url.Values{"category": {c.category()}, "symbol": {symbol}}
		var out tickersResponse
		if err := c.do(ctx, http.MethodGet, "/v5/market/tickers", q, nil, false, &out); err != nil {
			return "", err
		}
		if len(out.List) == 0 {
			return "", fmt.Errorf("bybit: unknown symbol %s", symbol)
		}
		return out.List[0].LastPrice, nil
	})
}

func (c *Client) GetAllPrices(ctx context.Context) types.Result[[]types.TickerPrice] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.TickerPrice](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllPrices", 1), func(ctx context.Context) ([]types.TickerPrice, error) {
		q := url.Values{"category": {c.category()}}
		var out tickersResponse
		if err := c.do(ctx, http.MethodGet, "/v5/market/tickers", q, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.TickerPrice, len(out.List))
		for i, t := range out.List {
			result[i] = types.TickerPrice{Symbol: t.Symbol, Price: t.LastPrice}
		}
		return result, nil
	})
}

// bybitInterval maps the canonical interval enum to Bybit's wire encoding
// (spec.md §6: "1m,3,5,15,30,60,120,240,360,D,W").
func bybitInterval(i types.CandleInterval) string {
	switch i {
	case types.Interval1m:
		return "1"
	case types.Interval3m:
		return "3"
	case types.Interval5m:
		return "5"
	case types.Interval15m:
		return "15"
	case types.Interval30m:
		return "30"
	case types.Interval1h:
		return "60"
	case types.Interval2h:
		return "120"
	case types.Interval4h:
		return "240"
	case types.Interval1d:
		return "D"
	case types.Interval1w:
		return "W"
	default:
		return "60"
	}
}

func (c *Client) GetCandles(ctx context.Context, symbol string, interval types.CandleInterval, from, to int64, count int) types.Result[[]types.Candle] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Candle](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getCandles", 1), func(ctx context.Context) ([]types.Candle, error) {
		q := url.Values{"category": {c.category()}, "symbol": {symbol}, "interval": {bybitInterval(interval)}}
		if from > 0 {
			q.Set("start", strconv.FormatInt(from, 10))
		}
		if to > 0 {
			q.Set("end", strconv.FormatInt(to, 10))
		}
		if count > 0 {
			q.Set("limit", strconv.Itoa(count))
		}
		var out candleListResponse
		if err := c.do(ctx, http.MethodGet, "/v5/market/kline", q, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.Candle, len(out.List))
		for i, row := range out.List {
			result[i] = normalizeCandle(row)
		}
		return result, nil
	})
}

func (c *Client) GetTrades(ctx context.Context, symbol string, limit int) types.Result[[]types.Trade] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Trade](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getTrades", 1), func(ctx context.Context) ([]types.Trade, error) {
		q := url.Values{"category": {c.category()}, "symbol": {symbol}}
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		var out tradeListResponse
		if err := c.do(ctx, http.MethodGet, "/v5/market/recent-trade", q, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.Trade, len(out.List))
		for i, t := range out.List {
			result[i] = types.Trade{
				Price: t.Price, Qty: t.Size, Time: parseMillis(t.Time),
				IsBuyerMaker: t.Side == "Sell",
			}
		}
		return result, nil
	})
}

func (c *Client) GetExchangeInfo(ctx context.Context, symbol string) types.Result[types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getExchangeInfo", 1), func(ctx context.Context) (types.Instrument, error) {
		q := url.Values{"category": {c.category()}, "symbol": {symbol}}
		var out instrumentsResponse
		if err := c.do(ctx, http.MethodGet, "/v5/market/instruments-info", q, nil, false, &out); err != nil {
			return types.Instrument{}, err
		}
		if len(out.List) == 0 {
			return types.Instrument{}, fmt.Errorf("bybit: unknown symbol %s", symbol)
		}
		return normalizeInstrument(out.List[0]), nil
	})
}

func (c *Client) GetAllExchangeInfo(ctx context.Context) types.Result[[]types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllExchangeInfo", 1), func(ctx context.Context) ([]types.Instrument, error) {
		q := url.Values{"category": {c.category()}}
		var out instrumentsResponse
		if err := c.do(ctx, http.MethodGet, "/v5/market/instruments-info", q, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.Instrument, len(out.List))
		for i, e := range out.List {
			result[i] = normalizeInstrument(e)
		}
		return result, nil
	})
}

func (c *Client) GetUserFees(ctx context.Context, symbol string) types.Result[types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getUserFees", 1), func(ctx context.Context) (types.UserFee, error) {
		q := url.Values{"category": {c.category()}, "symbol": {symbol}}
		var out feeRateResponse
		if err := c.do(ctx, http.MethodGet, "/v5/account/fee-rate", q, nil, true, &out); err != nil {
			return types.UserFee{}, err
		}
		if len(out.List) == 0 {
			return types.UserFee{}, fmt.Errorf("bybit: no fee data for %s", symbol)
		}
		return types.UserFee{Symbol: out.List[0].Symbol, MakerFee: out.List[0].MakerFeeRate, TakerFee: out.List[0].TakerFeeRate}, nil
	})
}

func (c *Client) GetAllUserFees(ctx context.Context) types.Result[[]types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllUserFees", 1), func(ctx context.Context) ([]types.UserFee, error) {
		q := url.Values{"category": {c.category()}}
		var out feeRateResponse
		if err := c.do(ctx, http.MethodGet, "/v5/account/fee-rate", q, nil, true, &out); err != nil {
			return nil, err
		}
		result := make([]types.UserFee, len(out.List))
		for i, f := range out.List {
			result[i] = types.UserFee{Symbol: f.Symbol, MakerFee: f.MakerFeeRate, TakerFee: f.TakerFeeRate}
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
	return facade.Dispatch(ctx, c.deps("futures_changeLeverage", 1), func(ctx context.Context) (int, error) {
		lev := strconv.Itoa(leverage)
		body := map[string]interface{}{
			"category": c.category(), "symbol": symbol,
			"buyLeverage": lev, "sellLeverage": lev,
		}
		raw, _ := jsonMarshal(body)
		if err := c.do(ctx, http.MethodPost, "/v5/position/set-leverage", nil, raw, true, nil); err != nil {
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
	return facade.Dispatch(ctx, c.deps("futures_changeMarginType", 1), func(ctx context.Context) (bool, error) {
		mode := 0
		if isolated {
			mode = 1
		}
		body := map[string]interface{}{"category": c.category(), "symbol": symbol, "tradeMode": mode}
		raw, _ := jsonMarshal(body)
		if err := c.do(ctx, http.MethodPost, "/v5/position/switch-isolated", nil, raw, true, nil); err != nil {
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
	return facade.Dispatch(ctx, c.deps("futures_getHedge", 1), func(ctx context.Context) (bool, error) {
		q := url.Values{"category": {c.category()}}
		var out positionListResponse
		if err := c.do(ctx, http.MethodGet, "/v5/position/list", q, nil, true, &out); err != nil {
			return false, err
		}
		for _, p := range out.List {
			if p.PositionIdx != 0 {
				return true, nil
			}
		}
		return false, nil
	})
}

func (c *Client) FuturesSetHedge(ctx context.Context, hedge bool) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("futures_setHedge", 1), func(ctx context.Context) (bool, error) {
		mode := 0
		if hedge {
			mode = 3
		}
		body := map[string]interface{}{"category": c.category(), "mode": mode, "coin": "USDT"}
		raw, _ := jsonMarshal(body)
		if err := c.do(ctx, http.MethodPost, "/v5/position/switch-mode", nil, raw, true, nil); err != nil {
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
	return facade.Dispatch(ctx, c.deps("futures_getPositions", 1), func(ctx context.Context) ([]types.PositionInfo, error) {
		q := url.Values{"category": {c.category()}}
		if symbol != "" {
			q.Set("symbol", symbol)
		} else {
			q.Set("settleCoin", "USDT")
		}
		var out positionListResponse
		if err := c.do(ctx, http.MethodGet, "/v5/position/list", q, nil, true, &out); err != nil {
			return nil, err
		}
		result := make([]types.PositionInfo, 0, len(out.List))
		for _, p := range out.List {
			if p.Size == "0" || p.Size == "" {
				continue
			}
			result = append(result, types.PositionInfo{
				Symbol: p.Symbol, PositionSide: positionSideFromIdx(p.PositionIdx),
				PositionAmt: p.Size, EntryPrice: p.EntryPrice, MarkPrice: p.MarkPrice,
				UnrealizedProfit: p.UnrealisedPnl, Leverage: p.Leverage,
				Isolated: p.TradeMode == 1, LiquidationPrice: p.LiqPrice,
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
	return facade.Dispatch(ctx, c.deps("futures_leverageBracket", 1), func(ctx context.Context) ([]types.LeverageBracket, error) {
		q := url.Values{"category": {c.category()}, "symbol": {symbol}}
		var out bracketListResponse
		if err := c.do(ctx, http.MethodGet, "/v5/market/risk-limit", q, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.LeverageBracket, len(out.List))
		for i, b := range out.List {
			result[i] = types.LeverageBracket{
				Bracket: b.Tier, NotionalCap: b.RiskLimitValue,
				MaintMarginRatio: b.MaintainMargin, InitialLeverage: b.MaxLeverage,
			}
		}
		return result, nil
	})
}
