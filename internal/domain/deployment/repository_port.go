// internal/domain/deployment/repository_port.go
package deployment

import "context"

// ========================================
// Repository Port（契約のみ）
// ========================================

// RepositoryPort はネットワーク名からデプロイ記録を引く読み取り専用ポートです。
// 記録がない場合は ErrNotFound を返します。
type RepositoryPort interface {
	GetByNetwork(ctx context.Context, network string) (Record, error)
}
