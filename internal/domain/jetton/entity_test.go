package jetton

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
)

func testMaster() *MasterContract {
	return &MasterContract{
		Network: "testnet",
		Address: address.NewAddress(0, 0, make([]byte, 32)),
		Schema:  MasterSchema(0),
	}
}

func TestMessageOpcodeMatchesTactHeaders(t *testing.T) {
	// Tact 組み込みの Deploy メッセージ
	require.Equal(t, uint32(0x946a98b6), MessageOpcode("Deploy{queryId:uint64}"))
	require.Equal(t, uint32(0xf0f3e0cc), MessageOpcode("MintJettonSample{queryId:uint64,amount:coins}"))
}

func TestMintJettonSampleOpcode(t *testing.T) {
	require.Equal(t, uint32(0xf0f3e0cc), MintJettonSampleOpcode())

	op, ok := MasterSchema(0).Opcode(TagMintJettonSample)
	require.True(t, ok)
	require.Equal(t, uint32(0xf0f3e0cc), op)

	body, err := testMaster().Encode(MintJettonSample{QueryID: 1, Amount: big.NewInt(1)})
	require.NoError(t, err)
	head, err := body.BeginParse().LoadUInt(32)
	require.NoError(t, err)
	require.Equal(t, uint64(0xf0f3e0cc), head)
}

func TestMasterSchemaOverride(t *testing.T) {
	op, ok := MasterSchema(0x12345678).Opcode(TagMintJettonSample)
	require.True(t, ok)
	require.Equal(t, uint32(0x12345678), op)
}

func TestEncodeMintJettonSample(t *testing.T) {
	master := testMaster()
	body, err := master.Encode(MintJettonSample{
		QueryID: 1_700_000_000,
		Amount:  big.NewInt(1_300_000_000),
	})
	require.NoError(t, err)

	opcode, got, err := DecodeMintJettonSample(body)
	require.NoError(t, err)
	require.Equal(t, MintJettonSampleOpcode(), opcode)
	require.Equal(t, uint64(1_700_000_000), got.QueryID)
	require.Equal(t, "1300000000", got.Amount.String())
	// opcode(32) + queryId(64) + coins(4 bit length + 4 bytes)
	require.Equal(t, uint(32+64+4+32), body.BitsSize())
}

func TestEncodeRejectsBadAmount(t *testing.T) {
	master := testMaster()

	_, err := master.Encode(MintJettonSample{QueryID: 1})
	require.ErrorIs(t, err, ErrMalformedOperation)

	_, err = master.Encode(MintJettonSample{QueryID: 1, Amount: big.NewInt(-5)})
	require.ErrorIs(t, err, ErrMalformedOperation)

	huge := new(big.Int).Lsh(big.NewInt(1), 130)
	_, err = master.Encode(MintJettonSample{QueryID: 1, Amount: huge})
	require.ErrorIs(t, err, ErrMalformedOperation)
}

func TestEncodeRejectsTagOutsideSchema(t *testing.T) {
	master := testMaster()
	master.Schema = Schema{Name: "Empty", Opcodes: map[string]uint32{}}

	_, err := master.Encode(MintJettonSample{QueryID: 1, Amount: big.NewInt(1)})
	require.ErrorIs(t, err, ErrMalformedOperation)
}

func TestEnvelopeValidate(t *testing.T) {
	require.NoError(t, Envelope{Value: big.NewInt(0)}.Validate())
	require.NoError(t, Envelope{Value: big.NewInt(1_000_000_000), Bounce: true}.Validate())

	require.ErrorIs(t, Envelope{}.Validate(), ErrMalformedEnvelope)
	require.ErrorIs(t, Envelope{Value: big.NewInt(-1)}.Validate(), ErrMalformedEnvelope)
}

func TestErrorTypesUnwrap(t *testing.T) {
	var err error = &ResolutionError{Network: "testnet", Err: ErrNoDeployment}
	require.ErrorIs(t, err, ErrNoDeployment)
	require.Contains(t, err.Error(), "testnet")

	var re *ResolutionError
	require.True(t, errors.As(err, &re))

	err = &SubmissionError{Contract: "EQabc", Err: ErrInvalidSender}
	require.ErrorIs(t, err, ErrInvalidSender)
	require.Contains(t, err.Error(), "EQabc")
}
