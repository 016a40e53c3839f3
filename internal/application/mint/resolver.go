// internal/application/mint/resolver.go
package mint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	depdom "jettonmint/internal/domain/deployment"
	jettondom "jettonmint/internal/domain/jetton"
)

// Resolver はネットワークからデプロイ済み master へのハンドルを作ります。
// 読み取りのみで状態は変更しません。
type Resolver struct {
	repo   depdom.RepositoryPort
	schema jettondom.Schema
}

func NewResolver(repo depdom.RepositoryPort, schema jettondom.Schema) *Resolver {
	return &Resolver{repo: repo, schema: schema}
}

// Resolve は同じネットワーク・同じデプロイ記録に対して常に同じアドレスを返します。
// 失敗はすべて *jetton.ResolutionError です。
func (r *Resolver) Resolve(ctx context.Context, network jettondom.Network) (*jettondom.MasterContract, error) {
	if network == nil {
		return nil, &jettondom.ResolutionError{
			Err: fmt.Errorf("%w: network handle is nil", jettondom.ErrNetworkUnreachable),
		}
	}
	name := strings.TrimSpace(network.Name())

	if r == nil || r.repo == nil {
		return nil, &jettondom.ResolutionError{
			Network: name,
			Err:     fmt.Errorf("%w: deployment repository not configured", jettondom.ErrNoDeployment),
		}
	}

	rec, err := r.repo.GetByNetwork(ctx, name)
	if err != nil {
		if errors.Is(err, depdom.ErrNotFound) {
			return nil, &jettondom.ResolutionError{Network: name, Err: fmt.Errorf("%w: %w", jettondom.ErrNoDeployment, err)}
		}
		return nil, &jettondom.ResolutionError{Network: name, Err: fmt.Errorf("lookup deployment: %w", err)}
	}

	addr, err := rec.MasterAddress()
	if err != nil {
		return nil, &jettondom.ResolutionError{Network: name, Err: fmt.Errorf("%w: %w", jettondom.ErrInvalidDeployment, err)}
	}

	active, err := network.AccountActive(ctx, addr)
	if err != nil {
		return nil, &jettondom.ResolutionError{Network: name, Err: fmt.Errorf("%w: %w", jettondom.ErrNetworkUnreachable, err)}
	}
	if !active {
		return nil, &jettondom.ResolutionError{
			Network: name,
			Err:     fmt.Errorf("%w: %s", jettondom.ErrContractNotDeployed, addr.String()),
		}
	}

	log.Printf("[mint.resolver] resolved network=%s master=%s schema=%s", name, addr.String(), r.schema.Name)

	return &jettondom.MasterContract{
		Network: name,
		Address: addr,
		Schema:  r.schema,
	}, nil
}
