package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/pkg/gateway"
	"github.com/daglabs/gatewaygo/pkg/types"
)

var _ gateway.Connector = (*Client)(nil)

func (c *Client) accountPath() string {
	switch c.futures {
	case types.FuturesUSDM:
		return "/fapi/v2/account"
	case types.FuturesCoinM:
		return "/dapi/v1/account"
	default:
		return "/api/v3/account"
	}
}

func (c *Client) orderPath() string {
	switch c.futures {
	case types.FuturesUSDM:
		return "/fapi/v1/order"
	case types.FuturesCoinM:
		return "/dapi/v1/order"
	default:
		return "/api/v3/order"
	}
}

func (c *Client) openOrdersPath() string {
	switch c.futures {
	case types.FuturesUSDM:
		return "/fapi/v1/openOrders"
	case types.FuturesCoinM:
		return "/dapi/v1/openOrders"
	default:
		return "/api/v3/openOrders"
	}
}

func (c *Client) exchangeInfoPath() string {
	switch c.futures {
	case types.FuturesUSDM:
		return "/fapi/v1/exchangeInfo"
	case types.FuturesCoinM:
		return "/dapi/v1/exchangeInfo"
	default:
		return "/api/v3/exchangeInfo"
	}
}

func (c *Client) GetBalance(ctx context.Context) types.Result[[]types.FreeAsset] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.FreeAsset](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getBalance", governor.KindRequest, 10, 0), func(ctx context.Context) ([]types.FreeAsset, error) {
		if c.futures == types.FuturesNone {
			var acc accountResponse
			if err := c.do(ctx, "GET", c.accountPath(), url.Values{}, true, &acc); err != nil {
				return nil, err
			}
			out := make([]types.FreeAsset, len(acc.Balances))
			for i, b := range acc.Balances {
				out[i] = types.FreeAsset{Asset: b.Asset, Free: b.Free, Locked: b.Locked}
			}
			return out, nil
		}
		var bals []futuresBalanceEntry
		if err := c.do(ctx, "GET", "/fapi/v2/balance", url.Values{}, true, &bals); err != nil {
			return nil, err
		}
		out := make([]types.FreeAsset, len(bals))
		for i, b := range bals {
			out[i] = types.FreeAsset{Asset: b.Asset, Free: b.AvailableBalance, Locked: "0"}
		}
		return out, nil
	})
}

func (c *Client) GetAPIPermission(ctx context.Context) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getApiPermission", governor.KindRequest, 1, 0), func(ctx context.Context) (bool, error) {
		var perm struct {
			EnableSpotAndMarginTrading bool `json:"enableSpotAndMarginTrading"`
			EnableFutures              bool `json:"enableFutures"`
		}
		if err := c.do(ctx, "GET", "/sapi/v1/account/apiRestrictions", url.Values{}, true, &perm); err != nil {
			return false, err
		}
		if c.futures != types.FuturesNone {
			return perm.EnableFutures, nil
		}
		return perm.EnableSpotAndMarginTrading, nil
	})
}

func (c *Client) GetUID(ctx context.Context) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getUid", governor.KindRequest, 1, 0), func(ctx context.Context) (string, error) {
		var out struct {
			UID int64 `json:"uid"`
		}
		if err := c.do(ctx, "GET", "/sapi/v1/account/uid", url.Values{}, true, &out); err != nil {
			return "", err
		}
		return strconv.FormatInt(out.UID, 10), nil
	})
}

func (c *Client) GetAffiliate(ctx context.Context, uid string) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAffiliate", governor.KindRequest, 1, 0), func(ctx context.Context) (bool, error) {
		q := url.Values{"customerId": {uid}}
		var out struct {
			Data struct {
				Type int `json:"type"`
			} `json:"data"`
		}
		if err := c.do(ctx, "GET", "/sapi/v1/broker/rebate/recentRecord", q, true, &out); err != nil {
			return false, err
		}
		return out.Data.Type != 0, nil
	})
}

func (c *Client) OpenOrder(ctx context.Context, o gateway.OrderRequest) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps("openOrder", governor.KindOrder, 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		q := url.Values{
			"symbol":           {o.Symbol},
			"side":             {string(o.Side)},
			"type":             {string(o.Type)},
			"quantity":         {o.Quantity},
			"newClientOrderId": {o.ClientOrderID},
		}
		if o.Type == types.TypeLimit {
			q.Set("price", o.Price)
			q.Set("timeInForce", "GTC")
		}
		if c.futures != types.FuturesNone && o.ReduceOnly {
			q.Set("reduceOnly", "true")
		}
		var r orderResponse
		if err := c.do(ctx, "POST", c.orderPath(), q, true, &r); err != nil {
			return types.CanonicalOrder{}, err
		}
		return normalizeOrder(r), nil
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	return facade.Dispatch(ctx, c.deps("getOrder(confirm)", governor.KindRequest, 2, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrderByClientID(ctx, created.Symbol, created.ClientOrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) fetchOrderByClientID(ctx context.Context, symbol, clientOrderID string) (types.CanonicalOrder, error) {
	q := url.Values{"symbol": {symbol}, "origClientOrderId": {clientOrderID}}
	var r orderResponse
	if err := c.do(ctx, "GET", c.orderPath(), q, true, &r); err != nil {
		return types.CanonicalOrder{}, err
	}
	return normalizeOrder(r), nil
}

func (c *Client) GetOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getOrder", governor.KindRequest, 2, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		q := url.Values{"symbol": {ref.Symbol}}
		if ref.ClientOrderID != "" {
			q.Set("origClientOrderId", ref.ClientOrderID)
		} else {
			q.Set("orderId", ref.OrderID)
		}
		var r orderResponse
		if err := c.do(ctx, "GET", c.orderPath(), q, true, &r); err != nil {
			return types.CanonicalOrder{}, err
		}
		return normalizeOrder(r), nil
	})
}

func (c *Client) CancelOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps("cancelOrder", governor.KindRequest, 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		q := url.Values{"symbol": {ref.Symbol}, "origClientOrderId": {ref.ClientOrderID}}
		var r orderResponse
		if err := c.do(ctx, "DELETE", c.orderPath(), q, true, &r); err != nil {
			return types.CanonicalOrder{}, err
		}
		return normalizeOrder(r), nil
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	return facade.Dispatch(ctx, c.deps("getOrder(confirm)", governor.KindRequest, 2, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrderByClientID(ctx, created.Symbol, created.ClientOrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) CancelOrderByOrderIDAndSymbol(ctx context.Context, symbol, orderID string) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("cancelOrder", governor.KindRequest, 1, 0), func(ctx context.Context) (types.CanonicalOrder, error) {
		q := url.Values{"symbol": {symbol}, "orderId": {orderID}}
		var r orderResponse
		if err := c.do(ctx, "DELETE", c.orderPath(), q, true, &r); err != nil {
			return types.CanonicalOrder{}, err
		}
		return normalizeOrder(r), nil
	})
}

func (c *Client) GetAllOpenOrders(ctx context.Context, symbol string, returnOrders bool) types.Result[[]types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.CanonicalOrder](c.clk, err.Error())
	}
	weight := 40
	if symbol != "" {
		weight = 3
	}
	return facade.Dispatch(ctx, c.deps("getAllOpenOrders", governor.KindRequest, weight, 0), func(ctx context.Context) ([]types.CanonicalOrder, error) {
		q := url.Values{}
		if symbol != "" {
			q.Set("symbol", symbol)
		}
		var rows []orderResponse
		if err := c.do(ctx, "GET", c.openOrdersPath(), q, true, &rows); err != nil {
			return nil, err
		}
		out := make([]types.CanonicalOrder, len(rows))
		for i, r := range rows {
			out[i] = normalizeOrder(r)
		}
		return out, nil
	})
}

func (c *Client) LatestPrice(ctx context.Context, symbol string) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("latestPrice", governor.KindRequest, 1, 0), func(ctx context.Context) (string, error) {
		q := url.Values{"symbol": {symbol}}
		var t tickerPriceEntry
		if err := c.do(ctx, "GET", "/api/v3/ticker/price", q, false, &t); err != nil {
			return "", err
		}
		return t.Price, nil
	})
}

func (c *Client) GetAllPrices(ctx context.Context) types.Result[[]types.TickerPrice] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.TickerPrice](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllPrices", governor.KindRequest, 2, 0), func(ctx context.Context) ([]types.TickerPrice, error) {
		var rows []tickerPriceEntry
		if err := c.do(ctx, "GET", "/api/v3/ticker/price", url.Values{}, false, &rows); err != nil {
			return nil, err
		}
		out := make([]types.TickerPrice, len(rows))
		for i, r := range rows {
			out[i] = types.TickerPrice{Symbol: r.Symbol, Price: r.Price}
		}
		return out, nil
	})
}

// maxCandlesPerCall is Binance's page size ceiling for a single klines call.
const maxCandlesPerCall = 1000

func (c *Client) GetCandles(ctx context.Context, symbol string, interval types.CandleInterval, from, to int64, count int) types.Result[[]types.Candle] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Candle](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getCandles", governor.KindRequest, 2, 0), func(ctx context.Context) ([]types.Candle, error) {
		if c.futures == types.FuturesCoinM {
			return c.getCoinMCandlesChunked(ctx, symbol, interval, from, to, count)
		}
		return c.getCandlesOnce(ctx, symbol, interval, from, to, count)
	})
}

func (c *Client) getCandlesOnce(ctx context.Context, symbol string, interval types.CandleInterval, from, to int64, count int) ([]types.Candle, error) {
	q := url.Values{"symbol": {symbol}, "interval": {string(interval)}}
	if from > 0 {
		q.Set("startTime", strconv.FormatInt(from, 10))
	}
	if to > 0 {
		q.Set("endTime", strconv.FormatInt(to, 10))
	}
	if count > 0 {
		q.Set("limit", strconv.Itoa(count))
	}
	path := "/api/v3/klines"
	switch c.futures {
	case types.FuturesUSDM:
		path = "/fapi/v1/klines"
	case types.FuturesCoinM:
		path = "/dapi/v1/klines"
	}
	var rows []candleRow
	if err := c.do(ctx, "GET", path, q, false, &rows); err != nil {
		return nil, err
	}
	out := make([]types.Candle, 0, len(rows))
	for _, row := range rows {
		cd, err := normalizeCandle(row)
		if err != nil {
			return nil, err
		}
		out = append(out, cd)
	}
	return out, nil
}

// getCoinMCandlesChunked implements spec.md's COIN-M candle splitting: the
// dapi klines endpoint refuses ranges spanning more than ~200 days at fine
// granularities, so wide requests are split into 200-day windows and
// concatenated.
func (c *Client) getCoinMCandlesChunked(ctx context.Context, symbol string, interval types.CandleInterval, from, to int64, count int) ([]types.Candle, error) {
	const chunk = int64(200 * 24 * 60 * 60 * 1000)
	if to == 0 || from == 0 || to-from <= chunk {
		return c.getCandlesOnce(ctx, symbol, interval, from, to, count)
	}
	var all []types.Candle
	for start := from; start < to; start += chunk {
		end := start + chunk
		if end > to {
			end = to
		}
		part, err := c.getCandlesOnce(ctx, symbol, interval, start, end, 0)
		if err != nil {
			return nil, err
		}
		all = append(all, part...)
	}
	return all, nil
}

func (c *Client) GetTrades(ctx context.Context, symbol string, limit int) types.Result[[]types.Trade] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Trade](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getTrades", governor.KindRequest, 5, 0), func(ctx context.Context) ([]types.Trade, error) {
		q := url.Values{"symbol": {symbol}}
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		var rows []tradeEntry
		if err := c.do(ctx, "GET", "/api/v3/trades", q, false, &rows); err != nil {
			return nil, err
		}
		out := make([]types.Trade, len(rows))
		for i, r := range rows {
			out[i] = types.Trade{ID: r.ID, Price: r.Price, Qty: r.Qty, Time: r.Time, IsBuyerMaker: r.IsBuyerMaker}
		}
		return out, nil
	})
}

func (c *Client) GetExchangeInfo(ctx context.Context, symbol string) types.Result[types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getExchangeInfo", governor.KindRequest, 10, 0), func(ctx context.Context) (types.Instrument, error) {
		q := url.Values{"symbol": {symbol}}
		var info exchangeInfoResponse
		if err := c.do(ctx, "GET", c.exchangeInfoPath(), q, false, &info); err != nil {
			return types.Instrument{}, err
		}
		if len(info.Symbols) == 0 {
			return types.Instrument{}, fmt.Errorf("binance: unknown symbol %s", symbol)
		}
		return normalizeInstrument(info.Symbols[0]), nil
	})
}

func (c *Client) GetAllExchangeInfo(ctx context.Context) types.Result[[]types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllExchangeInfo", governor.KindRequest, 10, 0), func(ctx context.Context) ([]types.Instrument, error) {
		var info exchangeInfoResponse
		if err := c.do(ctx, "GET", c.exchangeInfoPath(), url.Values{}, false, &info); err != nil {
			return nil, err
		}
		out := make([]types.Instrument, len(info.Symbols))
		for i, s := range info.Symbols {
			out[i] = normalizeInstrument(s)
		}
		return out, nil
	})
}

func (c *Client) GetUserFees(ctx context.Context, symbol string) types.Result[types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getUserFees", governor.KindRequest, 1, 0), func(ctx context.Context) (types.UserFee, error) {
		q := url.Values{"symbol": {symbol}}
		var rows []struct {
			Symbol       string `json:"symbol"`
			MakerCommission string `json:"makerCommission"`
			TakerCommission string `json:"takerCommission"`
		}
		if err := c.do(ctx, "GET", "/sapi/v1/asset/tradeFee", q, true, &rows); err != nil {
			return types.UserFee{}, err
		}
		if len(rows) == 0 {
			return types.UserFee{}, fmt.Errorf("binance: no fee data for %s", symbol)
		}
		return types.UserFee{Symbol: rows[0].Symbol, MakerFee: rows[0].MakerCommission, TakerFee: rows[0].TakerCommission}, nil
	})
}

func (c *Client) GetAllUserFees(ctx context.Context) types.Result[[]types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("getAllUserFees", governor.KindRequest, 1, 0), func(ctx context.Context) ([]types.UserFee, error) {
		var rows []struct {
			Symbol          string `json:"symbol"`
			MakerCommission string `json:"makerCommission"`
			TakerCommission string `json:"takerCommission"`
		}
		if err := c.do(ctx, "GET", "/sapi/v1/asset/tradeFee", url.Values{}, true, &rows); err != nil {
			return nil, err
		}
		out := make([]types.UserFee, len(rows))
		for i, r := range rows {
			out[i] = types.UserFee{Symbol: r.Symbol, MakerFee: r.MakerCommission, TakerFee: r.TakerCommission}
		}
		return out, nil
	})
}

func (c *Client) FuturesChangeLeverage(ctx context.Context, symbol string, leverage int) types.Result[int] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[int](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[int](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("futures_changeLeverage", governor.KindRequest, 1, 0), func(ctx context.Context) (int, error) {
		q := url.Values{"symbol": {symbol}, "leverage": {strconv.Itoa(leverage)}}
		path := "/fapi/v1/leverage"
		if c.futures == types.FuturesCoinM {
			path = "/dapi/v1/leverage"
		}
		var out struct {
			Leverage int `json:"leverage"`
		}
		if err := c.do(ctx, "POST", path, q, true, &out); err != nil {
			return 0, err
		}
		return out.Leverage, nil
	})
}

func (c *Client) FuturesChangeMarginType(ctx context.Context, symbol string, isolated bool) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("futures_changeMarginType", governor.KindRequest, 1, 0), func(ctx context.Context) (bool, error) {
		marginType := "CROSSED"
		if isolated {
			marginType = "ISOLATED"
		}
		q := url.Values{"symbol": {symbol}, "marginType": {marginType}}
		path := "/fapi/v1/marginType"
		if c.futures == types.FuturesCoinM {
			path = "/dapi/v1/marginType"
		}
		if err := c.do(ctx, "POST", path, q, true, nil); err != nil {
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
	return facade.Dispatch(ctx, c.deps("futures_getHedge", governor.KindRequest, 1, 0), func(ctx context.Context) (bool, error) {
		path := "/fapi/v1/positionSide/dual"
		if c.futures == types.FuturesCoinM {
			path = "/dapi/v1/positionSide/dual"
		}
		var out struct {
			DualSidePosition bool `json:"dualSidePosition"`
		}
		if err := c.do(ctx, "GET", path, url.Values{}, true, &out); err != nil {
			return false, err
		}
		return out.DualSidePosition, nil
	})
}

func (c *Client) FuturesSetHedge(ctx context.Context, hedge bool) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("futures_setHedge", governor.KindRequest, 1, 0), func(ctx context.Context) (bool, error) {
		q := url.Values{"dualSidePosition": {strconv.FormatBool(hedge)}}
		path := "/fapi/v1/positionSide/dual"
		if c.futures == types.FuturesCoinM {
			path = "/dapi/v1/positionSide/dual"
		}
		if err := c.do(ctx, "POST", path, q, true, nil); err != nil {
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
	return facade.Dispatch(ctx, c.deps("futures_getPositions", governor.KindRequest, 5, 0), func(ctx context.Context) ([]types.PositionInfo, error) {
		q := url.Values{}
		if symbol != "" {
			q.Set("symbol", symbol)
		}
		path := "/fapi/v2/positionRisk"
		if c.futures == types.FuturesCoinM {
			path = "/dapi/v1/positionRisk"
		}
		var rows []positionRiskEntry
		if err := c.do(ctx, "GET", path, q, true, &rows); err != nil {
			return nil, err
		}
		out := make([]types.PositionInfo, 0, len(rows))
		for _, r := range rows {
			if r.PositionAmt == "0" || r.PositionAmt == "0.0" || r.PositionAmt == "" {
				continue
			}
			out = append(out, types.PositionInfo{
				Symbol:           r.Symbol,
				PositionSide:     positionSideOf(r.PositionSide),
				PositionAmt:      r.PositionAmt,
				EntryPrice:       r.EntryPrice,
				MarkPrice:        r.MarkPrice,
				UnrealizedProfit: r.UnRealizedProfit,
				Leverage:         r.Leverage,
				Isolated:         r.Isolated,
				LiquidationPrice: r.LiquidationPrice,
			})
		}
		return out, nil
	})
}

func (c *Client) FuturesLeverageBracket(ctx context.Context, symbol string) types.Result[[]types.LeverageBracket] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.LeverageBracket](c.clk, err.Error())
	}
	if err := c.requireFutures(); err != nil {
		return facade.FailImmediate[[]types.LeverageBracket](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps("futures_leverageBracket", governor.KindRequest, 1, 0), func(ctx context.Context) ([]types.LeverageBracket, error) {
		q := url.Values{"symbol": {symbol}}
		path := "/fapi/v1/leverageBracket"
		if c.futures == types.FuturesCoinM {
			path = "/dapi/v2/leverageBracket"
		}
		var groups []leverageBracketGroup
		if err := c.do(ctx, "GET", path, q, true, &groups); err != nil {
			return nil, err
		}
		if len(groups) == 0 {
			return nil, fmt.Errorf("binance: no leverage bracket data for %s", symbol)
		}
		out := make([]types.LeverageBracket, len(groups[0].Brackets))
		for i, b := range groups[0].Brackets {
			out[i] = types.LeverageBracket{
				Bracket:          b.Bracket,
				InitialLeverage:  strconv.Itoa(b.InitialLeverage),
				NotionalCap:      b.NotionalCap,
				NotionalFloor:    b.NotionalFloor,
				MaintMarginRatio: strconv.FormatFloat(b.MaintMarginRatio, 'f', -1, 64),
				Cum:              strconv.FormatFloat(b.Cum, 'f', -1, 64),
			}
		}
		return out, nil
	})
}
