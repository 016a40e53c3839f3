package deploymentinfra

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	depdom "jettonmint/internal/domain/deployment"
)

const sampleManifest = `
deployments:
  - network: testnet
    name: JettonMaster
    address: EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAM9c
    deployedAt: 2024-01-01T00:00:00Z
  - network: testnet
    name: JettonMaster
    address: EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAQ
    deployedAt: 2024-06-01T00:00:00Z
  - network: mainnet
    name: JettonMaster
    address: EQmainnet
`

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "deployments.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestManifestPicksLatestForNetwork(t *testing.T) {
	repo := NewManifestRepository(writeManifest(t, sampleManifest), nil)

	rec, err := repo.GetByNetwork(context.Background(), "TestNet")
	require.NoError(t, err)
	require.Equal(t, "EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAQ", rec.Address)
	require.Equal(t, 2024, rec.DeployedAt.Year())
}

func TestManifestUnknownNetwork(t *testing.T) {
	repo := NewManifestRepository(writeManifest(t, sampleManifest), nil)

	_, err := repo.GetByNetwork(context.Background(), "devnet")
	require.ErrorIs(t, err, depdom.ErrNotFound)
}

func TestManifestMissingFileIsNotFound(t *testing.T) {
	repo := NewManifestRepository(filepath.Join(t.TempDir(), "nope.yaml"), nil)

	_, err := repo.GetByNetwork(context.Background(), "testnet")
	require.ErrorIs(t, err, depdom.ErrNotFound)
}

func TestManifestInvalidYAML(t *testing.T) {
	repo := NewManifestRepository(writeManifest(t, "deployments: [\n"), nil)

	_, err := repo.GetByNetwork(context.Background(), "testnet")
	require.Error(t, err)
	require.NotErrorIs(t, err, depdom.ErrNotFound)
}

func TestManifestFromGCS(t *testing.T) {
	var gotBucket, gotObject string
	reader := func(_ context.Context, bucket, object string) ([]byte, error) {
		gotBucket, gotObject = bucket, object
		return []byte(sampleManifest), nil
	}
	repo := NewManifestRepository("gs://deploy-bucket/jetton/deployments.yaml", reader)

	rec, err := repo.GetByNetwork(context.Background(), "mainnet")
	require.NoError(t, err)
	require.Equal(t, "EQmainnet", rec.Address)
	require.Equal(t, "deploy-bucket", gotBucket)
	require.Equal(t, "jetton/deployments.yaml", gotObject)
}

func TestManifestGCSErrorPropagates(t *testing.T) {
	boom := errors.New("403 forbidden")
	repo := NewManifestRepository("gs://b/o.yaml", func(context.Context, string, string) ([]byte, error) {
		return nil, boom
	})

	_, err := repo.GetByNetwork(context.Background(), "testnet")
	require.ErrorIs(t, err, boom)
}

func TestIsGCSLocation(t *testing.T) {
	require.True(t, IsGCSLocation("gs://bucket/object.yaml"))
	require.False(t, IsGCSLocation("gs://bucket/"))
	require.False(t, IsGCSLocation("./deployments.yaml"))
}
