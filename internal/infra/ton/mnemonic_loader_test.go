package toninfra

import (
	"context"
	"errors"
	"strings"
	"testing"

	smpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	payload string
	err     error
	gotName string
}

func (f *fakeSecrets) AccessSecretVersion(_ context.Context, req *smpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*smpb.AccessSecretVersionResponse, error) {
	f.gotName = req.GetName()
	if f.err != nil {
		return nil, f.err
	}
	return &smpb.AccessSecretVersionResponse{
		Payload: &smpb.SecretPayload{Data: []byte(f.payload)},
	}, nil
}

func words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "abandon"
	}
	return out
}

func TestSecretVersionName(t *testing.T) {
	require.Equal(t,
		"projects/p1/secrets/ton-mnemonic/versions/latest",
		SecretVersionName("p1", "ton-mnemonic"),
	)
	require.Equal(t,
		"projects/p2/secrets/x/versions/3",
		SecretVersionName("p1", "projects/p2/secrets/x/versions/3"),
	)
}

func TestParseMnemonic(t *testing.T) {
	got, err := ParseMnemonic("  " + strings.Join(words(24), "  ") + "\n")
	require.NoError(t, err)
	require.Len(t, got, 24)

	got, err = ParseMnemonic(`["Abandon"` + strings.Repeat(`,"abandon"`, 23) + `]`)
	require.NoError(t, err)
	require.Len(t, got, 24)
	require.Equal(t, "abandon", got[0])

	_, err = ParseMnemonic(strings.Join(words(12), " "))
	require.ErrorIs(t, err, ErrMnemonicInvalid)

	_, err = ParseMnemonic("")
	require.ErrorIs(t, err, ErrMnemonicInvalid)
}

func TestLoadMnemonicFromSecret(t *testing.T) {
	sm := &fakeSecrets{payload: strings.Join(words(24), " ")}

	got, err := LoadMnemonicFromSecret(context.Background(), sm, "proj", "ton-sender")
	require.NoError(t, err)
	require.Len(t, got, 24)
	require.Equal(t, "projects/proj/secrets/ton-sender/versions/latest", sm.gotName)
}

func TestLoadMnemonicFromSecretErrors(t *testing.T) {
	_, err := LoadMnemonicFromSecret(context.Background(), nil, "proj", "s")
	require.ErrorIs(t, err, ErrMnemonicNotConfigured)

	_, err = LoadMnemonicFromSecret(context.Background(), &fakeSecrets{}, "proj", " ")
	require.ErrorIs(t, err, ErrMnemonicNotConfigured)

	denied := errors.New("permission denied")
	_, err = LoadMnemonicFromSecret(context.Background(), &fakeSecrets{err: denied}, "proj", "s")
	require.ErrorIs(t, err, denied)
}
