// internal/infra/config/config.go
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// デプロイ記録の取得元
const (
	DeploymentSourceFile      = "file"
	DeploymentSourceFirestore = "firestore"
	DeploymentSourcePostgres  = "postgres"
)

// Config は jettonmint 全体の環境変数設定を保持します。
type Config struct {
	// TON ネットワーク
	Network       string `env:"TON_NETWORK" envDefault:"testnet"`
	ConfigURL     string `env:"TON_CONFIG_URL"`
	WalletVersion string `env:"TON_WALLET_VERSION" envDefault:"v4r2"`

	// 送信者 wallet のニーモニック（どちらか一方）
	// WALLET_MNEMONIC_SECRET が優先。ローカル開発では WALLET_MNEMONIC でも可
	WalletMnemonic       string `env:"WALLET_MNEMONIC"`
	WalletMnemonicSecret string `env:"WALLET_MNEMONIC_SECRET"`

	// GCP
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCPCreds     string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// デプロイ記録
	DeploymentSource      string `env:"DEPLOYMENT_SOURCE" envDefault:"file"`
	DeploymentManifest    string `env:"DEPLOYMENT_MANIFEST" envDefault:"deployments.yaml"`
	FirestoreProjectID    string `env:"FIRESTORE_PROJECT_ID"`
	DeploymentsCollection string `env:"DEPLOYMENTS_COLLECTION" envDefault:"jettonDeployments"`
	DatabaseURL           string `env:"DATABASE_URL"`

	// ★ 未設定なら MintJettonSample のシグネチャ (sha256 先頭 32 bit) から算出した opcode を使う
	// "0x..." の 16 進表記も可
	MintOpcode string `env:"MINT_OPCODE"`

	// 送信待ちのタイムアウト（0 なら無制限 = provider 任せ）
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"0s"`
}

// Load は環境変数を読み込み Config を返します。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Network = strings.ToLower(strings.TrimSpace(c.Network))
	c.WalletVersion = strings.ToLower(strings.TrimSpace(c.WalletVersion))
	c.DeploymentSource = strings.ToLower(strings.TrimSpace(c.DeploymentSource))
	c.DeploymentManifest = strings.TrimSpace(c.DeploymentManifest)

	// FIRESTORE_PROJECT_ID が未指定なら GCP のデフォルトを使う
	if strings.TrimSpace(c.FirestoreProjectID) == "" {
		c.FirestoreProjectID = strings.TrimSpace(c.GCPProjectID)
	}
}

// Validate は取得元ごとに必須の値を検査します。
func (c *Config) Validate() error {
	switch c.DeploymentSource {
	case DeploymentSourceFile:
		if c.DeploymentManifest == "" {
			return fmt.Errorf("config: DEPLOYMENT_MANIFEST is empty")
		}
	case DeploymentSourceFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("config: FIRESTORE_PROJECT_ID (or GCP_PROJECT_ID) is required for firestore source")
		}
	case DeploymentSourcePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required for postgres source")
		}
	default:
		return fmt.Errorf("config: unknown DEPLOYMENT_SOURCE %q", c.DeploymentSource)
	}

	if c.DispatchTimeout < 0 {
		return fmt.Errorf("config: DISPATCH_TIMEOUT must not be negative")
	}
	if _, err := c.GetMintOpcode(); err != nil {
		return err
	}
	return nil
}

// GetMintOpcode は MINT_OPCODE を uint32 で返します（未設定なら 0）。
func (c *Config) GetMintOpcode() (uint32, error) {
	s := strings.TrimSpace(c.MintOpcode)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("config: invalid MINT_OPCODE %q: %w", s, err)
	}
	return uint32(v), nil
}
