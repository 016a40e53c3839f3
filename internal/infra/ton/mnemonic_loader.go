// internal/infra/ton/mnemonic_loader.go
package toninfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	smpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

// TON の wallet ニーモニックは 24 語
const mnemonicWords = 24

var (
	ErrMnemonicNotConfigured = errors.New("mnemonic_loader: not configured")
	ErrMnemonicInvalid       = errors.New("mnemonic_loader: invalid mnemonic")
)

// SecretAccessor は *secretmanager.Client のうちシークレット取得に必要な部分です。
type SecretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *smpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*smpb.AccessSecretVersionResponse, error)
}

// SecretVersionName は secret を Secret Version のフルパスにします。
// すでに "projects/..." 形式ならそのまま返します。
func SecretVersionName(projectID, secret string) string {
	s := strings.TrimSpace(secret)
	if strings.HasPrefix(s, "projects/") {
		return s
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", strings.TrimSpace(projectID), s)
}

// LoadMnemonicFromSecret は Secret Manager から送信者 wallet のニーモニックを復元します。
// 中身はスペース区切りの 24 語、または JSON の文字列配列を想定します。
func LoadMnemonicFromSecret(ctx context.Context, sm SecretAccessor, projectID, secret string) ([]string, error) {
	if sm == nil {
		return nil, fmt.Errorf("%w: secret manager client is nil", ErrMnemonicNotConfigured)
	}
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: secret name is empty", ErrMnemonicNotConfigured)
	}
	name := SecretVersionName(projectID, secret)

	res, err := sm.AccessSecretVersion(ctx, &smpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("mnemonic_loader: access secret version %s: %w", name, err)
	}
	if res == nil || res.Payload == nil {
		return nil, fmt.Errorf("%w: empty payload (%s)", ErrMnemonicInvalid, name)
	}

	words, err := ParseMnemonic(string(res.Payload.Data))
	if err != nil {
		return nil, err
	}

	// 秘密情報は出さない。取得できたことだけ記録する
	log.Printf("[mnemonic_loader] loaded sender mnemonic from Secret Manager: secret=%s", name)
	return words, nil
}

// ParseMnemonic は 24 語のニーモニックを正規化します。
//   - 正: "word1 word2 ... word24"
//   - 互換: ["word1", ..., "word24"]
func ParseMnemonic(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrMnemonicInvalid)
	}

	var words []string
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &words); err != nil {
			return nil, fmt.Errorf("%w: unmarshal json: %v", ErrMnemonicInvalid, err)
		}
	} else {
		words = strings.Fields(s)
	}

	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	if len(out) != mnemonicWords {
		return nil, fmt.Errorf("%w: got %d words, want %d", ErrMnemonicInvalid, len(out), mnemonicWords)
	}
	return out, nil
}
