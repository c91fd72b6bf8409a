package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file created in the user's home directory.
const FileName = ".estate-dapp.json"

// Config represents the application configuration
type Config struct {
	RPCURL          string        `mapstructure:"rpc_url" validate:"omitempty,url"`
	WalletURL       string        `mapstructure:"wallet_url" validate:"omitempty,url"`
	KeystoreDir     string        `mapstructure:"keystore_dir"`
	KeystoreAccount string        `mapstructure:"keystore_account" validate:"omitempty,eth_addr"`
	ContractAddress string        `mapstructure:"contract_address" validate:"omitempty,eth_addr"`
	DeploymentFile  string        `mapstructure:"deployment_file"`
	IPFSURL         string        `mapstructure:"ipfs_url"`
	Decimals        int32         `mapstructure:"decimals" validate:"gte=0,lte=36"`
	Precision       int32         `mapstructure:"precision" validate:"gte=0,lte=36"`
	Symbol          string        `mapstructure:"symbol"`
	NotifyTimeout   time.Duration `mapstructure:"notify_timeout" validate:"gt=0"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
	PollInterval    time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
	Logger          bool          `mapstructure:"logger"`
}

// Secrets are read from the environment only and never written to disk.
type Secrets struct {
	KeystorePassphrase string
	PrivateKey         string
}

var validate = validator.New()

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		RPCURL:         "http://127.0.0.1:8545",
		DeploymentFile: "deployment.json",
		Decimals:       18,
		Precision:      4,
		Symbol:         "ETH",
		NotifyTimeout:  10 * time.Second,
		QueryTimeout:   12 * time.Second,
		PollInterval:   time.Second,
	}
}

// DefaultPath returns the config path in the user's home directory.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(homeDir, FileName)
}

// New returns a viper instance carrying the defaults and env bindings.
// ETH_RPC_URL is honoured for the RPC endpoint, as are ESTATE_* variables
// for every key.
func New() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("rpc_url", d.RPCURL)
	v.SetDefault("wallet_url", "")
	v.SetDefault("keystore_dir", "")
	v.SetDefault("keystore_account", "")
	v.SetDefault("contract_address", "")
	v.SetDefault("deployment_file", d.DeploymentFile)
	v.SetDefault("ipfs_url", "")
	v.SetDefault("decimals", d.Decimals)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("symbol", d.Symbol)
	v.SetDefault("notify_timeout", d.NotifyTimeout.String())
	v.SetDefault("query_timeout", d.QueryTimeout.String())
	v.SetDefault("poll_interval", d.PollInterval.String())
	v.SetDefault("logger", false)

	v.SetEnvPrefix("ESTATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("rpc_url", "ESTATE_RPC_URL", "ETH_RPC_URL")
	return v
}

// RegisterFlags declares the command line overrides.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", DefaultPath(), "path to the config file")
	fs.String("rpc", "", "JSON-RPC endpoint used for contract reads")
	fs.String("wallet", "", "wallet provider endpoint (eth_accounts / eth_requestAccounts)")
	fs.String("keystore", "", "keystore directory used as wallet when no provider endpoint is set")
	fs.String("account", "", "keystore account to unlock")
	fs.String("contract", "", "contract address, overrides the deployment record")
	fs.String("deployment", "", "deployment record written at deploy time")
	fs.String("ipfs", "", "IPFS API address for document inspection")
	fs.Bool("log", false, "start with the log panel open")
}

// BindFlags maps the flags from RegisterFlags onto config keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"rpc_url":          "rpc",
		"wallet_url":       "wallet",
		"keystore_dir":     "keystore",
		"keystore_account": "account",
		"contract_address": "contract",
		"deployment_file":  "deployment",
		"ipfs_url":         "ipfs",
		"logger":           "log",
	}
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s not registered", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the config file at path (a missing file is not an error),
// applies env/flag overrides bound on v and validates the result.
func Load(v *viper.Viper, path string) (Config, error) {
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadOrCreate loads config from path, writing the defaults first when the
// file does not exist yet.
func LoadOrCreate(v *viper.Viper, path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := Save(path, DefaultConfig()); err != nil {
			return Config{}, err
		}
	}
	return Load(v, path)
}

// fileConfig is the on-disk shape; durations are kept human readable.
type fileConfig struct {
	RPCURL          string `json:"rpc_url"`
	WalletURL       string `json:"wallet_url,omitempty"`
	KeystoreDir     string `json:"keystore_dir,omitempty"`
	KeystoreAccount string `json:"keystore_account,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
	DeploymentFile  string `json:"deployment_file"`
	IPFSURL         string `json:"ipfs_url,omitempty"`
	Decimals        int32  `json:"decimals"`
	Precision       int32  `json:"precision"`
	Symbol          string `json:"symbol"`
	NotifyTimeout   string `json:"notify_timeout"`
	QueryTimeout    string `json:"query_timeout"`
	PollInterval    string `json:"poll_interval"`
	Logger          bool   `json:"logger"`
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	return writeFile(path, toFile(cfg))
}

// SetLogger persists the logger toggle only, leaving the rest of the file as
// written. Env and flag overrides in effect are not saved.
func SetLogger(path string, enabled bool) error {
	fc := toFile(DefaultConfig())
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	fc.Logger = enabled
	return writeFile(path, fc)
}

func toFile(cfg Config) fileConfig {
	return fileConfig{
		RPCURL:          cfg.RPCURL,
		WalletURL:       cfg.WalletURL,
		KeystoreDir:     cfg.KeystoreDir,
		KeystoreAccount: cfg.KeystoreAccount,
		ContractAddress: cfg.ContractAddress,
		DeploymentFile:  cfg.DeploymentFile,
		IPFSURL:         cfg.IPFSURL,
		Decimals:        cfg.Decimals,
		Precision:       cfg.Precision,
		Symbol:          cfg.Symbol,
		NotifyTimeout:   cfg.NotifyTimeout.String(),
		QueryTimeout:    cfg.QueryTimeout.String(),
		PollInterval:    cfg.PollInterval.String(),
		Logger:          cfg.Logger,
	}
}

func writeFile(path string, fc fileConfig) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSecrets reads wallet secrets from the environment.
func LoadSecrets() Secrets {
	return Secrets{
		KeystorePassphrase: os.Getenv("ESTATE_KEYSTORE_PASSPHRASE"),
		PrivateKey:         strings.TrimPrefix(strings.TrimSpace(os.Getenv("PRIVATE_KEY")), "0x"),
	}
}

// ResolveContract resolves the contract to talk to: an explicit address wins,
// otherwise the deployment record is consulted.
func (c Config) ResolveContract() (common.Address, error) {
	if c.ContractAddress != "" {
		return common.HexToAddress(c.ContractAddress), nil
	}
	if c.DeploymentFile == "" {
		return common.Address{}, ErrNoDeployment
	}
	d, err := LoadDeployment(c.DeploymentFile)
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(d.Address), nil
}
