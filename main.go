package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"estate-dapp-tui/config"
	"estate-dapp-tui/contract"
	"estate-dapp-tui/ipfs"
	"estate-dapp-tui/rpc"
	"estate-dapp-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// -------------------- MAIN --------------------

func main() {
	// .env is optional
	_ = godotenv.Load()

	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])
	path, _ := flags.GetString("config")

	v := config.New()
	if err := config.BindFlags(v, flags); err != nil {
		fatal(err)
	}
	cfg, err := config.LoadOrCreate(v, path)
	if err != nil {
		fatal(err)
	}

	addr, err := cfg.ResolveContract()
	if err != nil {
		fatal(err)
	}

	conn := rpc.ConnectWithTimeout(cfg.RPCURL, cfg.QueryTimeout)
	if conn.Error != nil {
		fatal(fmt.Errorf("connect %s: %w", cfg.RPCURL, conn.Error))
	}
	defer conn.Client.Close()

	logs := &logBuffer{}
	logger := newLogger(logs)

	provider, source, err := openWallet(cfg, config.LoadSecrets(), conn.Client)
	if err != nil {
		fatal(err)
	}
	defer closeWallet(provider)

	var connect contract.Connector
	if provider != nil {
		connect = contract.ConnectWith(provider)
	}

	base := contract.New(conn.Client, addr,
		contract.WithConnector(connect),
		contract.WithLogger(logger),
		contract.WithQueryTimeout(cfg.QueryTimeout),
		contract.WithPollInterval(cfg.PollInterval),
	)
	if err := base.Verify(context.Background()); err != nil {
		// every call repeats the check, so the UI still starts
		logger.Warn("contract check failed", "err", err)
	}
	if id, err := conn.Client.ChainIDWithTimeout(cfg.QueryTimeout); err == nil {
		logger.Info("connected", "rpc", conn.Client.URL, "chain", id)
	}

	m := newModel(deps{
		cfg:          cfg,
		configPath:   path,
		contractAddr: addr,
		walletSource: source,
		connect:      connect,
		bindSigner: func(s wallet.Signer) estateService {
			return base.WithSigner(s)
		},
		resolver: conn.Client,
		chain:    conn.Client,
		docs:     ipfs.New(cfg.IPFSURL, cfg.QueryTimeout),
		logs:     logs,
		logger:   logger,
	})
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

// openWallet picks the wallet provider: an endpoint first, then a keystore,
// then a raw key from the environment.
func openWallet(cfg config.Config, secrets config.Secrets, backend wallet.Backend) (wallet.Provider, string, error) {
	switch {
	case cfg.WalletURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		p, err := wallet.DialProvider(ctx, cfg.WalletURL)
		if err != nil {
			return nil, "", fmt.Errorf("wallet %s: %w", cfg.WalletURL, err)
		}
		return p, cfg.WalletURL, nil

	case cfg.KeystoreDir != "":
		var preferred common.Address
		if cfg.KeystoreAccount != "" {
			preferred = common.HexToAddress(cfg.KeystoreAccount)
		}
		p := wallet.NewKeystoreProvider(cfg.KeystoreDir, preferred, secrets.KeystorePassphrase, backend)
		return p, "keystore " + cfg.KeystoreDir, nil

	case secrets.PrivateKey != "":
		p, err := wallet.NewKeyProvider(secrets.PrivateKey, backend)
		if err != nil {
			return nil, "", err
		}
		return p, "key from PRIVATE_KEY", nil
	}
	return nil, "none configured", nil
}

// closeWallet releases providers that hold a connection.
func closeWallet(p wallet.Provider) {
	if c, ok := p.(interface{ Close() }); ok {
		c.Close()
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
