// internal/infra/firestore/deployment_repo.go
package firestoreinfra

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	depdom "jettonmint/internal/domain/deployment"
)

// DeploymentRepositoryFS は Firestore 上のデプロイ記録を読みます。
// ドキュメント ID = ネットワーク名 ("testnet" / "mainnet")。
type DeploymentRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

var _ depdom.RepositoryPort = (*DeploymentRepositoryFS)(nil)

func NewDeploymentRepositoryFS(client *firestore.Client, collection string) *DeploymentRepositoryFS {
	col := strings.TrimSpace(collection)
	if col == "" {
		col = "jettonDeployments"
	}
	return &DeploymentRepositoryFS{Client: client, Collection: col}
}

func (r *DeploymentRepositoryFS) GetByNetwork(ctx context.Context, network string) (depdom.Record, error) {
	if r == nil || r.Client == nil {
		return depdom.Record{}, fmt.Errorf("deployment_repo_fs: firestore client is nil")
	}
	id := strings.ToLower(strings.TrimSpace(network))
	if id == "" {
		return depdom.Record{}, fmt.Errorf("%w: network is empty", depdom.ErrNotFound)
	}

	snap, err := r.Client.Collection(r.Collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return depdom.Record{}, fmt.Errorf("%w: %s/%s", depdom.ErrNotFound, r.Collection, id)
		}
		return depdom.Record{}, fmt.Errorf("deployment_repo_fs: get %s/%s: %w", r.Collection, id, err)
	}

	var rec depdom.Record
	if err := snap.DataTo(&rec); err != nil {
		return depdom.Record{}, fmt.Errorf("deployment_repo_fs: decode %s/%s: %w", r.Collection, id, err)
	}
	return normalizeRecord(rec, id), nil
}

// normalizeRecord はドキュメントに network がない場合 ID で補います。
func normalizeRecord(rec depdom.Record, id string) depdom.Record {
	if strings.TrimSpace(rec.Network) == "" {
		rec.Network = id
	}
	rec.Address = strings.TrimSpace(rec.Address)
	return rec
}
