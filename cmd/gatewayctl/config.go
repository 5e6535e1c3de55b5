package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// cliConfig is gatewayctl's own flag set, layered on top of internal/config's
// process-level Config (credentials, environment) the same way
// cmd/txgen/config.go layered txgen's flags on the node's connection flags.
type cliConfig struct {
	Provider string `long:"provider" short:"p" description:"binance|bybit|bitget|okx|kucoin|coinbase" required:"true"`
	Futures  string `long:"futures" description:"none|usdm|coinm (ignored by providers that fork by credential only)"`
	Op       string `long:"op" short:"o" description:"balance|ticker|exchangeinfo|candles|trades|fees" default:"balance"`
	Symbol   string `long:"symbol" short:"s" description:"trading pair, provider-native or canonical form"`
}

func parseCLIConfig(args []string) (*cliConfig, error) {
	cfg := &cliConfig{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag|flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case "binance", "bybit", "bitget", "okx", "kucoin", "coinbase":
	default:
		return nil, errors.New("gatewayctl: --provider must be one of binance|bybit|bitget|okx|kucoin|coinbase")
	}
	return cfg, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
