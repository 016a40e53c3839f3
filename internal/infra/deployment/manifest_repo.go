// internal/infra/deployment/manifest_repo.go
package deploymentinfra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"gopkg.in/yaml.v3"

	depdom "jettonmint/internal/domain/deployment"
)

const gcsScheme = "gs://"

// manifest はデプロイツールが書き出す YAML です。
//
//	deployments:
//	  - network: testnet
//	    name: JettonMaster
//	    address: EQ...
//	    code: te6c...   # 任意 (address がなければ code+data から導出)
//	    data: te6c...
type manifest struct {
	Deployments []depdom.Record `yaml:"deployments"`
}

// ObjectReader は gs://bucket/object を読むための関数です。
type ObjectReader func(ctx context.Context, bucket, object string) ([]byte, error)

// ManifestRepository は YAML マニフェストを読む deployment.RepositoryPort 実装です。
// location はローカルパスか gs://bucket/object。
type ManifestRepository struct {
	location string
	readGCS  ObjectReader
}

var _ depdom.RepositoryPort = (*ManifestRepository)(nil)

func NewManifestRepository(location string, readGCS ObjectReader) *ManifestRepository {
	return &ManifestRepository{
		location: strings.TrimSpace(location),
		readGCS:  readGCS,
	}
}

// GCSObjectReader は storage.Client を ObjectReader にします。
func GCSObjectReader(client *storage.Client) ObjectReader {
	return func(ctx context.Context, bucket, object string) ([]byte, error) {
		r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotExist) {
				return nil, fmt.Errorf("%w: gs://%s/%s", depdom.ErrNotFound, bucket, object)
			}
			return nil, fmt.Errorf("deployment_manifest: open gs://%s/%s: %w", bucket, object, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	}
}

// GetByNetwork は network に一致する記録のうち最も新しいものを返します。
func (r *ManifestRepository) GetByNetwork(ctx context.Context, network string) (depdom.Record, error) {
	if r == nil || r.location == "" {
		return depdom.Record{}, fmt.Errorf("deployment_manifest: location is empty")
	}

	raw, err := r.read(ctx)
	if err != nil {
		return depdom.Record{}, err
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return depdom.Record{}, fmt.Errorf("deployment_manifest: decode %s: %w", r.location, err)
	}

	network = strings.ToLower(strings.TrimSpace(network))
	var (
		found  bool
		latest depdom.Record
	)
	for _, rec := range m.Deployments {
		if strings.ToLower(strings.TrimSpace(rec.Network)) != network {
			continue
		}
		if !found || rec.DeployedAt.After(latest.DeployedAt) {
			latest = rec
			found = true
		}
	}
	if !found {
		return depdom.Record{}, fmt.Errorf("%w: network=%s manifest=%s", depdom.ErrNotFound, network, r.location)
	}
	return latest, nil
}

func (r *ManifestRepository) read(ctx context.Context) ([]byte, error) {
	if bucket, object, ok := splitGCS(r.location); ok {
		if r.readGCS == nil {
			return nil, fmt.Errorf("deployment_manifest: gcs reader not configured for %s", r.location)
		}
		return r.readGCS(ctx, bucket, object)
	}

	raw, err := os.ReadFile(r.location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: manifest %s does not exist", depdom.ErrNotFound, r.location)
		}
		return nil, fmt.Errorf("deployment_manifest: read %s: %w", r.location, err)
	}
	return raw, nil
}

// IsGCSLocation は location が gs:// 形式かどうかを返します。
func IsGCSLocation(location string) bool {
	_, _, ok := splitGCS(location)
	return ok
}

func splitGCS(location string) (bucket, object string, ok bool) {
	s := strings.TrimSpace(location)
	if !strings.HasPrefix(s, gcsScheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(s, gcsScheme)
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}
