package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/pkg/gateway"
	"github.com/daglabs/gatewaygo/pkg/types"
)

var _ gateway.Connector = (*Client)(nil)

func (c *Client) GetBalance(ctx context.Context) types.Result[[]types.FreeAsset] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.FreeAsset](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getAccounts", 1), func(ctx context.Context) ([]types.FreeAsset, error) {
		var out accountsResponse
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/accounts", url.Values{}, nil, true, &out); err != nil {
			return nil, err
		}
		result := make([]types.FreeAsset, len(out.Accounts))
		for i, a := range out.Accounts {
			result[i] = types.FreeAsset{Asset: a.Currency, Free: a.AvailableBalance.Value, Locked: a.Hold.Value}
		}
		return result, nil
	})
}

func (c *Client) GetAPIPermission(ctx context.Context) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getKeyPermissions", 1), func(ctx context.Context) (bool, error) {
		var out struct {
			CanTrade bool `json:"can_trade"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/key_permissions", url.Values{}, nil, true, &out); err != nil {
			return false, err
		}
		return out.CanTrade, nil
	})
}

func (c *Client) GetUID(ctx context.Context) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getKeyPermissions", 1), func(ctx context.Context) (string, error) {
		var out struct {
			PortfolioUuid string `json:"portfolio_uuid"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/key_permissions", url.Values{}, nil, true, &out); err != nil {
			return "", err
		}
		return out.PortfolioUuid, nil
	})
}

// GetAffiliate has no Coinbase Advanced Trade equivalent; answered false
// unconditionally rather than guessed at (spec.md names this operation for
// every provider but does not describe a Coinbase-specific source).
func (c *Client) GetAffiliate(ctx context.Context, uid string) types.Result[bool] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[bool](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getAffiliate", 1), func(ctx context.Context) (bool, error) {
		return false, nil
	})
}

func (c *Client) OpenOrder(ctx context.Context, o gateway.OrderRequest) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "createOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		cfg := map[string]interface{}{}
		if o.Type == types.TypeMarket {
			cfg["market_market_ioc"] = map[string]interface{}{"base_size": o.Quantity}
		} else {
			cfg["limit_limit_gtc"] = map[string]interface{}{"base_size": o.Quantity, "limit_price": o.Price}
		}
		body := map[string]interface{}{
			"client_order_id": o.ClientOrderID, "product_id": o.Symbol,
			"side": strings.ToUpper(string(o.Side)), "order_configuration": cfg,
		}
		raw, _ := json.Marshal(body)
		var out struct {
			OrderId string `json:"order_id"`
		}
		err := c.do(ctx, http.MethodPost, "/api/v3/brokerage/orders", nil, raw, true, &out)
		if err != nil {
			// Coinbase order-created-despite-error (spec.md §4.3, §8
			// scenario S6): the order id is already live server-side, so
			// issue one follow-up GET instead of retrying the POST.
			if despite, ok := err.(*OrderCreatedDespiteError); ok {
				return c.fetchOrder(ctx, despite.OrderID)
			}
			return types.CanonicalOrder{}, err
		}
		return c.fetchOrder(ctx, out.OrderId)
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	// Post-create consistency: confirm via getOrder with a bounded retry
	// loop against "order not found" (spec.md §4.4).
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getOrder(confirm)", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrder(ctx, created.OrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) fetchOrder(ctx context.Context, orderID string) (types.CanonicalOrder, error) {
	var out orderResponse
	if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/orders/historical/"+orderID, url.Values{}, nil, true, &out); err != nil {
		return types.CanonicalOrder{}, err
	}
	return normalizeOrder(out.Order), nil
}

func (c *Client) GetOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.fetchOrder(ctx, ref.OrderID)
	})
}

func (c *Client) cancelOnce(ctx context.Context, orderID string) (types.CanonicalOrder, error) {
	body := map[string]interface{}{"order_ids": []string{orderID}}
	raw, _ := json.Marshal(body)
	if err := c.do(ctx, http.MethodPost, "/api/v3/brokerage/orders/batch_cancel", nil, raw, true, nil); err != nil {
		return types.CanonicalOrder{}, err
	}
	return c.fetchOrder(ctx, orderID)
}

func (c *Client) CancelOrder(ctx context.Context, ref gateway.OrderRef) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	result := facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "cancelOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.cancelOnce(ctx, ref.OrderID)
	})
	created, ok := result.Data()
	if !ok {
		return result
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getOrder(confirm)", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return facade.ConfirmAfterCreate(ctx, func(ctx context.Context) (types.CanonicalOrder, error) {
			return c.fetchOrder(ctx, created.OrderID)
		}, isOrderNotFound)
	})
}

func (c *Client) CancelOrderByOrderIDAndSymbol(ctx context.Context, symbol, orderID string) types.Result[types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "cancelOrder", 1), func(ctx context.Context) (types.CanonicalOrder, error) {
		return c.cancelOnce(ctx, orderID)
	})
}

func (c *Client) GetAllOpenOrders(ctx context.Context, symbol string, returnOrders bool) types.Result[[]types.CanonicalOrder] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.CanonicalOrder](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "listOrders", 1), func(ctx context.Context) ([]types.CanonicalOrder, error) {
		q := url.Values{"order_status": {"OPEN"}}
		if symbol != "" {
			q.Set("product_id", symbol)
		}
		var out struct {
			Orders []orderEntry `json:"orders"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/orders/historical/batch", q, nil, true, &out); err != nil {
			return nil, err
		}
		if !returnOrders {
			return nil, nil
		}
		result := make([]types.CanonicalOrder, len(out.Orders))
		for i, o := range out.Orders {
			result[i] = normalizeOrder(o)
		}
		return result, nil
	})
}

func (c *Client) LatestPrice(ctx context.Context, symbol string) types.Result[string] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[string](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePublic, "getProduct", 1), func(ctx context.Context) (string, error) {
		var out productEntry
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/market/products/"+symbol, url.Values{}, nil, false, &out); err != nil {
			return "", err
		}
		if out.Price == "" {
			return "", fmt.Errorf("coinbase: unknown symbol %s", symbol)
		}
		return out.Price, nil
	})
}

func (c *Client) GetAllPrices(ctx context.Context) types.Result[[]types.TickerPrice] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.TickerPrice](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePublic, "getProducts", 1), func(ctx context.Context) ([]types.TickerPrice, error) {
		var out productsResponse
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/market/products", url.Values{}, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.TickerPrice, len(out.Products))
		for i, p := range out.Products {
			result[i] = types.TickerPrice{Symbol: p.ProductId, Price: p.Price}
		}
		return result, nil
	})
}

// coinbaseGranularity maps the canonical interval enum onto Coinbase's
// CandleGranularity enum (spec.md §6).
func coinbaseGranularity(interval types.CandleInterval) string {
	switch interval {
	case types.Interval1m:
		return "ONE_MINUTE"
	case types.Interval5m:
		return "FIVE_MINUTE"
	case types.Interval15m:
		return "FIFTEEN_MINUTE"
	case types.Interval30m:
		return "THIRTY_MINUTE"
	case types.Interval1h:
		return "ONE_HOUR"
	case types.Interval2h:
		return "TWO_HOUR"
	case types.Interval4h:
		return "SIX_HOUR"
	case types.Interval1d:
		return "ONE_DAY"
	default:
		return "ONE_MINUTE"
	}
}

func (c *Client) GetCandles(ctx context.Context, symbol string, interval types.CandleInterval, from, to int64, count int) types.Result[[]types.Candle] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Candle](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePublic, "getCandles", 1), func(ctx context.Context) ([]types.Candle, error) {
		q := url.Values{"granularity": {coinbaseGranularity(interval)}}
		if from > 0 {
			q.Set("start", strconv.FormatInt(from/1000, 10))
		}
		if to > 0 {
			q.Set("end", strconv.FormatInt(to/1000, 10))
		}
		var out candlesResponse
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/market/products/"+symbol+"/candles", q, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.Candle, len(out.Candles))
		for i, row := range out.Candles {
			result[i] = normalizeCandle(row)
		}
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
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePublic, "getTrades", 1), func(ctx context.Context) ([]types.Trade, error) {
		q := url.Values{}
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		var out tradesResponse
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/market/products/"+symbol+"/ticker", q, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.Trade, len(out.Trades))
		for i, t := range out.Trades {
			result[i] = types.Trade{Price: t.Price, Qty: t.Size, Time: parseTime(t.Time), IsBuyerMaker: t.Side == "SELL"}
		}
		return result, nil
	})
}

func (c *Client) GetExchangeInfo(ctx context.Context, symbol string) types.Result[types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePublic, "getProduct", 1), func(ctx context.Context) (types.Instrument, error) {
		var out productEntry
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/market/products/"+symbol, url.Values{}, nil, false, &out); err != nil {
			return types.Instrument{}, err
		}
		return normalizeInstrument(out), nil
	})
}

func (c *Client) GetAllExchangeInfo(ctx context.Context) types.Result[[]types.Instrument] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.Instrument](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePublic, "getProducts", 1), func(ctx context.Context) ([]types.Instrument, error) {
		var out productsResponse
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/market/products", url.Values{}, nil, false, &out); err != nil {
			return nil, err
		}
		result := make([]types.Instrument, len(out.Products))
		for i, p := range out.Products {
			result[i] = normalizeInstrument(p)
		}
		return result, nil
	})
}

func (c *Client) GetUserFees(ctx context.Context, symbol string) types.Result[types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getTransactionSummary", 1), func(ctx context.Context) (types.UserFee, error) {
		var out struct {
			FeeTier struct {
				MakerFeeRate string `json:"maker_fee_rate"`
				TakerFeeRate string `json:"taker_fee_rate"`
			} `json:"fee_tier"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/transaction_summary", url.Values{}, nil, true, &out); err != nil {
			return types.UserFee{}, err
		}
		return types.UserFee{Symbol: symbol, MakerFee: out.FeeTier.MakerFeeRate, TakerFee: out.FeeTier.TakerFeeRate}, nil
	})
}

func (c *Client) GetAllUserFees(ctx context.Context) types.Result[[]types.UserFee] {
	if err := c.requireClient(); err != nil {
		return facade.FailImmediate[[]types.UserFee](c.clk, err.Error())
	}
	return facade.Dispatch(ctx, c.deps(governor.CoinbasePrivate, "getTransactionSummary", 1), func(ctx context.Context) ([]types.UserFee, error) {
		var out struct {
			FeeTier struct {
				MakerFeeRate string `json:"maker_fee_rate"`
				TakerFeeRate string `json:"taker_fee_rate"`
			} `json:"fee_tier"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v3/brokerage/transaction_summary", url.Values{}, nil, true, &out); err != nil {
			return nil, err
		}
		return []types.UserFee{{MakerFee: out.FeeTier.MakerFeeRate, TakerFee: out.FeeTier.TakerFeeRate}}, nil
	})
}

// Derivatives. Coinbase has no derivatives in this tree (spec.md §4.4); all
// six return the standard "Futures type missed" terminal failure.
func (c *Client) FuturesChangeLeverage(ctx context.Context, symbol string, leverage int) types.Result[int] {
	return facade.FailImmediate[int](c.clk, gateway.ErrFuturesTypeMissed)
}

func (c *Client) FuturesChangeMarginType(ctx context.Context, symbol string, isolated bool) types.Result[bool] {
	return facade.FailImmediate[bool](c.clk, gateway.ErrFuturesTypeMissed)
}

func (c *Client) FuturesGetHedge(ctx context.Context) types.Result[bool] {
	return facade.FailImmediate[bool](c.clk, gateway.ErrFuturesTypeMissed)
}

func (c *Client) FuturesSetHedge(ctx context.Context, hedge bool) types.Result[bool] {
	return facade.FailImmediate[bool](c.clk, gateway.ErrFuturesTypeMissed)
}

func (c *Client) FuturesGetPositions(ctx context.Context, symbol string) types.Result[[]types.PositionInfo] {
	return facade.FailImmediate[[]types.PositionInfo](c.clk, gateway.ErrFuturesTypeMissed)
}

func (c *Client) FuturesLeverageBracket(ctx context.Context, symbol string) types.Result[[]types.LeverageBracket] {
	return facade.FailImmediate[[]types.LeverageBracket](c.clk, gateway.ErrFuturesTypeMissed)
}
