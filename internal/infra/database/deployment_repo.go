// internal/infra/database/deployment_repo.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	depdom "jettonmint/internal/domain/deployment"
)

// DeploymentRepositoryPG は jetton_deployments テーブルからデプロイ記録を読みます。
type DeploymentRepositoryPG struct {
	DB *sql.DB
}

var _ depdom.RepositoryPort = (*DeploymentRepositoryPG)(nil)

func NewDeploymentRepositoryPG(db *sql.DB) *DeploymentRepositoryPG {
	return &DeploymentRepositoryPG{DB: db}
}

const selectLatestDeploymentSQL = `
SELECT network, name, address, workchain, code_boc, data_boc, deployed_at
FROM jetton_deployments
WHERE network = $1
ORDER BY deployed_at DESC
LIMIT 1`

func (r *DeploymentRepositoryPG) GetByNetwork(ctx context.Context, network string) (depdom.Record, error) {
	if r == nil || r.DB == nil {
		return depdom.Record{}, fmt.Errorf("deployment_repo_pg: db is nil")
	}
	network = strings.ToLower(strings.TrimSpace(network))

	var rec depdom.Record
	err := r.DB.QueryRowContext(ctx, selectLatestDeploymentSQL, network).Scan(
		&rec.Network,
		&rec.Name,
		&rec.Address,
		&rec.Workchain,
		&rec.CodeBOC,
		&rec.DataBOC,
		&rec.DeployedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return depdom.Record{}, fmt.Errorf("%w: network=%s", depdom.ErrNotFound, network)
		}
		return depdom.Record{}, fmt.Errorf("deployment_repo_pg: query: %w", err)
	}
	return rec, nil
}

// EnsureSchema は jetton_deployments が無ければ作成します。
func (r *DeploymentRepositoryPG) EnsureSchema(ctx context.Context) error {
	if r == nil || r.DB == nil {
		return fmt.Errorf("deployment_repo_pg: db is nil")
	}
	if _, err := r.DB.ExecContext(ctx, DeploymentsTableDDL); err != nil {
		return fmt.Errorf("deployment_repo_pg: ensure schema: %w", err)
	}
	return nil
}

// DeploymentsTableDDL はデプロイ記録テーブルの定義です。
const DeploymentsTableDDL = `
BEGIN;

CREATE TABLE IF NOT EXISTS jetton_deployments (
  id          BIGSERIAL   PRIMARY KEY,
  network     TEXT        NOT NULL,
  name        TEXT        NOT NULL DEFAULT 'JettonMaster',
  address     TEXT        NOT NULL DEFAULT '',
  workchain   INTEGER     NOT NULL DEFAULT 0,
  code_boc    TEXT        NOT NULL DEFAULT '',
  data_boc    TEXT        NOT NULL DEFAULT '',
  deployed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

  CONSTRAINT chk_jetton_deployments_network_non_empty CHECK (char_length(trim(network)) > 0),
  CONSTRAINT chk_jetton_deployments_locator CHECK (
    char_length(trim(address)) > 0
    OR (char_length(trim(code_boc)) > 0 AND char_length(trim(data_boc)) > 0)
  )
);

CREATE INDEX IF NOT EXISTS idx_jetton_deployments_network_deployed_at
  ON jetton_deployments(network, deployed_at DESC);

COMMIT;
`
