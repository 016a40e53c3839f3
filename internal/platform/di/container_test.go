package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	appcfg "jettonmint/internal/infra/config"
	deploymentinfra "jettonmint/internal/infra/deployment"
)

func TestBuildDeploymentRepositoryManifest(t *testing.T) {
	cases := []struct {
		name        string
		manifest    string
		wantCleanup int
	}{
		{"local file", "deployments.yaml", 0},
		{"gcs object", "gs://jetton-deploy/testnet/deployments.yaml", 1},
		{"gcs bucket only falls back to path", "gs://jetton-deploy/", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &appcfg.Config{
				DeploymentSource:   appcfg.DeploymentSourceFile,
				DeploymentManifest: tc.manifest,
			}
			c := &Container{Config: cfg}
			t.Cleanup(c.Close)

			repo, err := c.buildDeploymentRepository(
				context.Background(), cfg, []option.ClientOption{option.WithoutAuthentication()},
			)
			require.NoError(t, err)
			require.IsType(t, &deploymentinfra.ManifestRepository{}, repo)
			require.Len(t, c.cleanupFn, tc.wantCleanup)
			require.Nil(t, c.DeploymentsPG)
		})
	}
}

func TestBuildDeploymentRepositoryUnknownSource(t *testing.T) {
	cfg := &appcfg.Config{DeploymentSource: "s3"}
	c := &Container{Config: cfg}

	_, err := c.buildDeploymentRepository(context.Background(), cfg, nil)
	require.ErrorContains(t, err, `unknown deployment source "s3"`)
	require.Empty(t, c.cleanupFn)
}

func TestNewContainerRejectsNilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil, Options{})
	require.Error(t, err)
}
