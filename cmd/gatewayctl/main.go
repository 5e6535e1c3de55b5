// Command gatewayctl is a thin operational harness over pkg/gateway: it
// constructs one provider connector from flags/environment and drives a
// single read-only operation against it, the way cmd/txgen drove a single
// transaction-generation loop against one rpcclient.Client.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/config"
	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/pkg/gateway"
	"github.com/daglabs/gatewaygo/pkg/types"
	"github.com/daglabs/gatewaygo/providers/binance"
	"github.com/daglabs/gatewaygo/providers/bitget"
	"github.com/daglabs/gatewaygo/providers/bybit"
	"github.com/daglabs/gatewaygo/providers/coinbase"
	"github.com/daglabs/gatewaygo/providers/kucoin"
	"github.com/daglabs/gatewaygo/providers/okx"
)

func main() {
	defer handlePanic()

	cliCfg, err := parseCLIConfig(os.Args[1:])
	if err != nil {
		fatalf("Error parsing command-line arguments: %s", err)
	}
	procCfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fatalf("Error parsing process configuration: %s", err)
	}

	if err := obs.ParseAndSetDebugLevels(procCfg.LogLevel); err != nil {
		fatalf("Error setting log levels: %s", err)
	}
	if procCfg.LogFile != "" {
		if err := obs.InitLogRotator(procCfg.LogFile); err != nil {
			fatalf("Error initializing log rotator: %s", err)
		}
	}

	clk := clock.New()
	connector, err := buildConnector(cliCfg, procCfg, clk)
	if err != nil {
		fatalf("Error constructing connector: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := runOp(ctx, connector, cliCfg); err != nil {
		fatalf("Operation failed: %s", err)
	}
}

func futuresMode(raw string) types.FuturesMode {
	switch raw {
	case "usdm":
		return types.FuturesUSDM
	case "coinm":
		return types.FuturesCoinM
	default:
		return types.FuturesNone
	}
}

func buildConnector(cli *cliConfig, cfg *config.Config, clk clock.Clock) (gateway.Connector, error) {
	switch cli.Provider {
	case "binance":
		domain := governor.DomainSpotCom
		switch futuresMode(cli.Futures) {
		case types.FuturesUSDM:
			domain = governor.DomainUSDM
		case types.FuturesCoinM:
			domain = governor.DomainCoinM
		}
		if domain == governor.DomainSpotCom && cfg.BinanceDomain == "spot-us" {
			domain = governor.DomainSpotUS
		}
		return binance.New(domain, cfg.BinanceKey, cfg.BinanceSecret, clk), nil
	case "bybit":
		return bybit.New(futuresMode(cli.Futures), cfg.BybitKey, cfg.BybitSecret, clk), nil
	case "bitget":
		return bitget.New(futuresMode(cli.Futures), cfg.BitgetKey, cfg.BitgetSecret, cfg.BitgetPass, cfg.BitgetDemo(), clk), nil
	case "okx":
		return okx.New(futuresMode(cli.Futures), cfg.OKXKey, cfg.OKXSecret, cfg.OKXPass, cfg.OKXSandboxFlag(), clk), nil
	case "kucoin":
		return kucoin.New(futuresMode(cli.Futures), cfg.KuCoinKey, cfg.KuCoinSecret, cfg.KuCoinPass, clk), nil
	case "coinbase":
		return coinbase.New("", "", cfg.CoinbaseKey, cfg.CoinbaseSecret, clk), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cli.Provider)
	}
}

func runOp(ctx context.Context, c gateway.Connector, cli *cliConfig) error {
	switch cli.Op {
	case "balance":
		return printResult(c.GetBalance(ctx))
	case "ticker":
		if cli.Symbol == "" {
			return fmt.Errorf("--symbol is required for --op ticker")
		}
		return printResult(c.LatestPrice(ctx, cli.Symbol))
	case "exchangeinfo":
		if cli.Symbol != "" {
			return printResult(c.GetExchangeInfo(ctx, cli.Symbol))
		}
		return printResult(c.GetAllExchangeInfo(ctx))
	case "candles":
		if cli.Symbol == "" {
			return fmt.Errorf("--symbol is required for --op candles")
		}
		return printResult(c.GetCandles(ctx, cli.Symbol, types.Interval1h, 0, 0, 100))
	case "trades":
		if cli.Symbol == "" {
			return fmt.Errorf("--symbol is required for --op trades")
		}
		return printResult(c.GetTrades(ctx, cli.Symbol, 50))
	case "fees":
		if cli.Symbol != "" {
			return printResult(c.GetUserFees(ctx, cli.Symbol))
		}
		return printResult(c.GetAllUserFees(ctx))
	default:
		return fmt.Errorf("unknown --op %q", cli.Op)
	}
}

// printResult renders any types.Result[T] uniformly: on success, the data
// payload as JSON; on failure, the exchange's own reason string.
func printResult[T any](r types.Result[T]) error {
	if !r.IsOk() {
		reason, _ := r.Reason()
		return fmt.Errorf("%s", reason)
	}
	data, _ := r.Data()
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func handlePanic() {
	if err := recover(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Stack trace: %s\n", debug.Stack())
	}
}
