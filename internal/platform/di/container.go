// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	"github.com/benbjohnson/clock"
	"google.golang.org/api/option"

	mintapp "jettonmint/internal/application/mint"
	depdom "jettonmint/internal/domain/deployment"
	jettondom "jettonmint/internal/domain/jetton"
	appcfg "jettonmint/internal/infra/config"
	"jettonmint/internal/infra/database"
	deploymentinfra "jettonmint/internal/infra/deployment"
	firestoreinfra "jettonmint/internal/infra/firestore"
	toninfra "jettonmint/internal/infra/ton"
)

// Options はコマンドごとに必要な依存を切り替えます。
type Options struct {
	// NeedSender が false なら wallet (ニーモニック) を読み込みません（resolve / dry-run 用）。
	NeedSender bool
}

// Container は main.go から使う依存オブジェクトの束。
type Container struct {
	Config *appcfg.Config

	Network     *toninfra.Client
	Sender      *toninfra.WalletSender // NeedSender=false なら nil
	Deployments depdom.RepositoryPort
	MintUC      *mintapp.Usecase

	// postgres ソースの時だけセットされる（migrate 用）
	DeploymentsPG *database.DeploymentRepositoryPG

	cleanupFn []func()
}

// NewContainer は DI コンテナを初期化して返す。
// - デプロイ記録の取得元 (file / firestore / postgres)
// - TON liteserver 接続 (NetworkHandle)
// - 送信者 wallet (SenderCapability)
// - ユースケース
func NewContainer(ctx context.Context, cfg *appcfg.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	c := &Container{Config: cfg}

	var clientOpts []option.ClientOption
	if creds := strings.TrimSpace(cfg.GCPCreds); creds != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(creds))
		log.Printf("[di] using credentials file for GCP clients")
	}

	// ------------------------------------------------------------
	// 1. デプロイ記録
	// ------------------------------------------------------------
	repo, err := c.buildDeploymentRepository(ctx, cfg, clientOpts)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Deployments = repo

	// ------------------------------------------------------------
	// 2. TON ネットワーク
	// ------------------------------------------------------------
	network, err := toninfra.Dial(ctx, cfg.Network, cfg.ConfigURL)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("di: dial ton: %w", err)
	}
	c.Network = network
	c.cleanupFn = append(c.cleanupFn, network.Close)

	// ------------------------------------------------------------
	// 3. 送信者 wallet
	// ------------------------------------------------------------
	if opts.NeedSender {
		sender, err := c.buildSender(ctx, cfg, clientOpts)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Sender = sender
	}

	// ------------------------------------------------------------
	// 4. ユースケース
	// ------------------------------------------------------------
	opcode, err := cfg.GetMintOpcode()
	if err != nil {
		c.Close()
		return nil, err
	}
	schema := jettondom.MasterSchema(opcode)
	c.MintUC = mintapp.NewUsecase(
		mintapp.NewResolver(repo, schema),
		mintapp.NewDispatcher(),
		clock.New(),
	)

	return c, nil
}

func (c *Container) buildDeploymentRepository(
	ctx context.Context,
	cfg *appcfg.Config,
	clientOpts []option.ClientOption,
) (depdom.RepositoryPort, error) {
	switch cfg.DeploymentSource {
	case appcfg.DeploymentSourceFile:
		var reader deploymentinfra.ObjectReader
		if deploymentinfra.IsGCSLocation(cfg.DeploymentManifest) {
			gcs, err := storage.NewClient(ctx, clientOpts...)
			if err != nil {
				return nil, fmt.Errorf("di: storage.NewClient: %w", err)
			}
			c.cleanupFn = append(c.cleanupFn, func() { _ = gcs.Close() })
			reader = deploymentinfra.GCSObjectReader(gcs)
		}
		log.Printf("[di] deployment source=file manifest=%s", cfg.DeploymentManifest)
		return deploymentinfra.NewManifestRepository(cfg.DeploymentManifest, reader), nil

	case appcfg.DeploymentSourceFirestore:
		fs, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.GCPCreds)
		if err != nil {
			return nil, fmt.Errorf("di: %w", err)
		}
		c.cleanupFn = append(c.cleanupFn, func() { _ = fs.Close() })
		log.Printf("[di] deployment source=firestore collection=%s", cfg.DeploymentsCollection)
		return firestoreinfra.NewDeploymentRepositoryFS(fs.Client, cfg.DeploymentsCollection), nil

	case appcfg.DeploymentSourcePostgres:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("di: %w", err)
		}
		c.cleanupFn = append(c.cleanupFn, func() { _ = db.Close() })
		repo := database.NewDeploymentRepositoryPG(db.Client)
		c.DeploymentsPG = repo
		log.Printf("[di] deployment source=postgres")
		return repo, nil

	default:
		return nil, fmt.Errorf("di: unknown deployment source %q", cfg.DeploymentSource)
	}
}

func (c *Container) buildSender(
	ctx context.Context,
	cfg *appcfg.Config,
	clientOpts []option.ClientOption,
) (*toninfra.WalletSender, error) {
	var words []string

	switch {
	case strings.TrimSpace(cfg.WalletMnemonicSecret) != "":
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("di: secretmanager.NewClient: %w", err)
		}
		defer sm.Close()

		words, err = toninfra.LoadMnemonicFromSecret(ctx, sm, cfg.GCPProjectID, cfg.WalletMnemonicSecret)
		if err != nil {
			return nil, fmt.Errorf("di: %w", err)
		}

	case strings.TrimSpace(cfg.WalletMnemonic) != "":
		var err error
		words, err = toninfra.ParseMnemonic(cfg.WalletMnemonic)
		if err != nil {
			return nil, fmt.Errorf("di: WALLET_MNEMONIC: %w", err)
		}
		log.Printf("[di] WARN: sender mnemonic loaded from env (use WALLET_MNEMONIC_SECRET outside local dev)")

	default:
		return nil, fmt.Errorf("di: %w: set WALLET_MNEMONIC_SECRET or WALLET_MNEMONIC", toninfra.ErrMnemonicNotConfigured)
	}

	sender, err := toninfra.NewWalletSender(c.Network, words, cfg.WalletVersion)
	if err != nil {
		return nil, fmt.Errorf("di: %w", err)
	}
	return sender, nil
}

// Close は外部接続をすべて閉じる（逆順）。
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.cleanupFn) - 1; i >= 0; i-- {
		c.cleanupFn[i]()
	}
	c.cleanupFn = nil
}
