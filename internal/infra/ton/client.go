// internal/infra/ton/client.go
package toninfra

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"

	jettondom "jettonmint/internal/domain/jetton"
)

// 公開されている liteserver のグローバル設定
const (
	MainnetConfigURL = "https://ton.org/global.config.json"
	TestnetConfigURL = "https://ton.org/testnet-global.config.json"
)

var (
	ErrClientNotConfigured = errors.New("ton_client: not configured")
	ErrUnknownNetwork      = errors.New("ton_client: unknown network (want mainnet|testnet or explicit config url)")
)

// accountReader は AccountActive が使う最小の lite API です。
// ton.APIClientWrapped がこれを満たします。
type accountReader interface {
	CurrentMasterchainInfo(ctx context.Context) (*ton.BlockIDExt, error)
	GetAccount(ctx context.Context, block *ton.BlockIDExt, addr *address.Address) (*tlb.Account, error)
}

// Client は jetton.Network の tonutils-go 実装です。
// liteserver プールと API クライアントを所有し、Close で解放します。
type Client struct {
	name     string
	pool     *liteclient.ConnectionPool
	api      ton.APIClientWrapped
	accounts accountReader
}

var _ jettondom.Network = (*Client)(nil)

// ConfigURLFor はネットワーク名から liteserver 設定 URL を決めます。
// explicit が空でなければそれを優先します。
func ConfigURLFor(network, explicit string) (string, error) {
	if u := strings.TrimSpace(explicit); u != "" {
		return u, nil
	}
	switch strings.ToLower(strings.TrimSpace(network)) {
	case "mainnet":
		return MainnetConfigURL, nil
	case "testnet", "":
		return TestnetConfigURL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
}

// Dial は liteserver に接続して Client を返します。
func Dial(ctx context.Context, network, configURL string) (*Client, error) {
	url, err := ConfigURLFor(network, configURL)
	if err != nil {
		return nil, err
	}

	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, url); err != nil {
		return nil, fmt.Errorf("ton_client: connect liteservers (%s): %w", url, err)
	}

	api := ton.NewAPIClient(pool).WithRetry()

	name := strings.ToLower(strings.TrimSpace(network))
	if name == "" {
		name = "testnet"
	}
	log.Printf("[ton_client] connected network=%s config=%s", name, url)

	return &Client{
		name:     name,
		pool:     pool,
		api:      api,
		accounts: api,
	}, nil
}

func (c *Client) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// API は wallet 導出などで使う生の API クライアントを返します。
func (c *Client) API() ton.APIClientWrapped {
	if c == nil {
		return nil
	}
	return c.api
}

// AccountActive は最新のマスターチェーンブロックでアカウント状態を読みます。
func (c *Client) AccountActive(ctx context.Context, addr *address.Address) (bool, error) {
	if c == nil || c.accounts == nil {
		return false, ErrClientNotConfigured
	}
	if addr == nil {
		return false, fmt.Errorf("ton_client: address is nil")
	}
	if c.pool != nil {
		ctx = c.pool.StickyContext(ctx)
	}

	block, err := c.accounts.CurrentMasterchainInfo(ctx)
	if err != nil {
		return false, fmt.Errorf("ton_client: masterchain info: %w", err)
	}
	acc, err := c.accounts.GetAccount(ctx, block, addr)
	if err != nil {
		return false, fmt.Errorf("ton_client: get account %s: %w", addr.String(), err)
	}
	if acc == nil {
		return false, nil
	}
	return acc.IsActive, nil
}

// Close は liteserver 接続を閉じます。
func (c *Client) Close() {
	if c == nil || c.pool == nil {
		return
	}
	c.pool.Stop()
}
