package deployment

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func sampleStateInit(t *testing.T) (codeHex, dataB64 string, want *address.Address) {
	t.Helper()

	code := cell.BeginCell().MustStoreUInt(0xdeadbeef, 32).EndCell()
	data := cell.BeginCell().MustStoreUInt(42, 64).MustStoreUInt(7, 8).EndCell()

	si, err := tlb.ToCell(&tlb.StateInit{Code: code, Data: data})
	require.NoError(t, err)

	return hex.EncodeToString(code.ToBOC()),
		base64.StdEncoding.EncodeToString(data.ToBOC()),
		address.NewAddress(0, 0, si.Hash())
}

func TestDeriveAddressIsDeterministic(t *testing.T) {
	code, data, want := sampleStateInit(t)

	a1, err := DeriveAddress(0, code, data)
	require.NoError(t, err)
	a2, err := DeriveAddress(0, code, data)
	require.NoError(t, err)

	require.Equal(t, want.String(), a1.String())
	require.Equal(t, a1.String(), a2.String())
}

func TestMasterAddressFromRecordedAddress(t *testing.T) {
	want := address.NewAddress(0, 0, make([]byte, 32))

	got, err := Record{Network: "testnet", Address: want.String()}.MasterAddress()
	require.NoError(t, err)
	require.Equal(t, want.String(), got.String())
}

func TestMasterAddressFromStateInit(t *testing.T) {
	code, data, want := sampleStateInit(t)

	got, err := Record{Network: "testnet", CodeBOC: code, DataBOC: data}.MasterAddress()
	require.NoError(t, err)
	require.Equal(t, want.String(), got.String())
}

func TestMasterAddressChecksRecordedAgainstDerived(t *testing.T) {
	code, data, want := sampleStateInit(t)

	_, err := Record{Address: want.String(), CodeBOC: code, DataBOC: data}.MasterAddress()
	require.NoError(t, err)

	other := address.NewAddress(0, 0, make([]byte, 32))
	_, err = Record{Address: other.String(), CodeBOC: code, DataBOC: data}.MasterAddress()
	require.ErrorIs(t, err, ErrAddressMismatch)
}

func TestMasterAddressErrors(t *testing.T) {
	_, err := Record{Network: "testnet"}.MasterAddress()
	require.ErrorIs(t, err, ErrEmptyRecord)

	_, err = Record{Address: "not-an-address"}.MasterAddress()
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = Record{CodeBOC: "te6c", DataBOC: "zz"}.MasterAddress()
	require.ErrorIs(t, err, ErrInvalidBOC)
}
