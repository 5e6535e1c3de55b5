// Package config parses the gateway's process-level configuration: the
// environment toggles from spec.md §6 plus the per-provider credential
// sets, in the teacher's jessevdk/go-flags style (cmd/txgen/config.go),
// extended with env tags since these are ordinarily supplied by the
// process environment rather than CLI flags in a service context.
package config

import (
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// Environment selects between the live and sandbox/testnet hosts a
// provider exposes.
type Environment string

const (
	EnvLive     Environment = "live"
	EnvSandbox  Environment = "sandbox"
)

// Config is the full set of process configuration recognized by the
// gateway (spec.md §6 "Environment variables" plus per-provider
// credentials needed to construct a Connector).
type Config struct {
	NodeEnv string `long:"node-env" env:"NODE_ENV" description:"deployment environment label"`
	Env     string `long:"env" env:"ENV" default:"live" description:"live or sandbox"`

	BinanceDomain  string `long:"binance-domain" env:"BINANCE_DOMAIN" description:"override Binance spot host (spot-com vs spot-us)"`
	BinanceKey     string `long:"binance-key" env:"BINANCE_API_KEY"`
	BinanceSecret  string `long:"binance-secret" env:"BINANCE_API_SECRET"`

	BybitKey    string `long:"bybit-key" env:"BYBIT_API_KEY"`
	BybitSecret string `long:"bybit-secret" env:"BYBIT_API_SECRET"`

	BitgetEnv    string `long:"bitget-env" env:"BITGETENV" description:"demo toggle"`
	BitgetKey    string `long:"bitget-key" env:"BITGET_API_KEY"`
	BitgetSecret string `long:"bitget-secret" env:"BITGET_API_SECRET"`
	BitgetPass   string `long:"bitget-passphrase" env:"BITGET_PASSPHRASE"`

	OKXEnv    string `long:"okx-env" env:"OKXENV" description:"sandbox toggle"`
	OKXKey    string `long:"okx-key" env:"OKX_API_KEY"`
	OKXSecret string `long:"okx-secret" env:"OKX_API_SECRET"`
	OKXPass   string `long:"okx-passphrase" env:"OKX_PASSPHRASE"`

	KuCoinKey    string `long:"kucoin-key" env:"KUCOIN_API_KEY"`
	KuCoinSecret string `long:"kucoin-secret" env:"KUCOIN_API_SECRET"`
	KuCoinPass   string `long:"kucoin-passphrase" env:"KUCOIN_PASSPHRASE"`

	PaperTradingAPIURL string `long:"paper-trading-url" env:"PAPER_TRADING_API_URL"`
	CoinbaseKey        string `long:"coinbase-key" env:"COINBASEKEY" description:"fallback key for public-only Coinbase access"`
	CoinbaseSecret     string `long:"coinbase-secret" env:"COINBASESECRET"`

	LogLevel string `long:"loglevel" env:"GATEWAY_LOGLEVEL" default:"info" description:"subsys=level,subsys=level or a single level for all subsystems"`
	LogFile  string `long:"logfile" env:"GATEWAY_LOGFILE" description:"path to a rotated log file; omit to log to stdout only"`
}

// Parse parses flags then environment variables (go-flags applies env tags
// as defaults beneath explicit flags), and validates the result.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag|flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, errors.Wrap(err, "config: failed to parse arguments")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Env) {
	case "live", "sandbox", "":
	default:
		return errors.New("config: ENV must be \"live\" or \"sandbox\"")
	}
	if c.Env == "" {
		c.Env = string(EnvLive)
	}
	return nil
}

// IsSandbox reports whether the configured environment selects
// sandbox/testnet hosts.
func (c *Config) IsSandbox() bool {
	return strings.EqualFold(c.Env, string(EnvSandbox))
}

// BitgetDemo reports whether BITGETENV requests Bitget's demo-trading mode
// (spec.md §6, §4.4 symbol translation's "S-prefixed variants in demo mode").
func (c *Config) BitgetDemo() bool {
	return strings.EqualFold(c.BitgetEnv, "demo")
}

// OKXSandboxFlag reports whether OKXENV requests OKX's sandbox simulated
// trading host.
func (c *Config) OKXSandboxFlag() bool {
	return strings.EqualFold(c.OKXEnv, "sandbox") || strings.EqualFold(c.OKXEnv, "1")
}
