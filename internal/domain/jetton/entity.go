// internal/domain/jetton/entity.go
package jetton

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// ========================================
// Operation（タグ付きバリアント）
// ========================================

// TagMintJettonSample はデプロイ済み master が受け付けるミント操作のタグです。
const TagMintJettonSample = "MintJettonSample"

// mintJettonSampleSignature は Tact のメッセージヘッダ算出に使われるシグネチャ。
// opcode = sha256(signature) の先頭 32 bit (big-endian)
const mintJettonSampleSignature = "MintJettonSample{queryId:uint64,amount:coins}"

// maxCoinsBits は Coins (VarUInteger 16) が保持できる最大ビット長です。
const maxCoinsBits = 120

// Operation はコントラクトに送る操作レコードです。
// storeFields が unexported なので、このパッケージ外で新しいバリアントは作れません。
type Operation interface {
	Tag() string
	storeFields(b *cell.Builder) error
}

// MintJettonSample は master に対するミント要求です。
type MintJettonSample struct {
	QueryID uint64   // 相関用 ID（重複排除はしない）
	Amount  *big.Int // ミント量（最小単位）
}

var _ Operation = MintJettonSample{}

func (MintJettonSample) Tag() string { return TagMintJettonSample }

func (m MintJettonSample) storeFields(b *cell.Builder) error {
	if m.Amount == nil {
		return fmt.Errorf("%w: amount is nil", ErrMalformedOperation)
	}
	if m.Amount.Sign() < 0 {
		return fmt.Errorf("%w: amount is negative (%s)", ErrMalformedOperation, m.Amount.String())
	}
	if m.Amount.BitLen() > maxCoinsBits {
		return fmt.Errorf("%w: amount overflows coins (%s)", ErrMalformedOperation, m.Amount.String())
	}
	if err := b.StoreUInt(m.QueryID, 64); err != nil {
		return fmt.Errorf("%w: store queryId: %v", ErrMalformedOperation, err)
	}
	if err := b.StoreBigCoins(m.Amount); err != nil {
		return fmt.Errorf("%w: store amount: %v", ErrMalformedOperation, err)
	}
	return nil
}

// ========================================
// Schema（コントラクトのインターフェース定義）
// ========================================

// Schema は「タグ → opcode」の対応表です。
type Schema struct {
	Name    string
	Opcodes map[string]uint32
}

// MintJettonSampleOpcode は既定の opcode (0xf0f3e0cc) を返します。
func MintJettonSampleOpcode() uint32 {
	return MessageOpcode(mintJettonSampleSignature)
}

// MessageOpcode は Tact のメッセージシグネチャ "Name{field:type,...}" から
// opcode を算出します。
func MessageOpcode(signature string) uint32 {
	sum := sha256.Sum256([]byte(signature))
	return binary.BigEndian.Uint32(sum[:4])
}

// MasterSchema は jetton master のスキーマを返します。
// override が 0 以外ならその値を MintJettonSample の opcode として使います。
func MasterSchema(override uint32) Schema {
	op := MintJettonSampleOpcode()
	if override != 0 {
		op = override
	}
	return Schema{
		Name: "JettonMaster",
		Opcodes: map[string]uint32{
			TagMintJettonSample: op,
		},
	}
}

// Opcode はタグに対応する opcode を返します。
func (s Schema) Opcode(tag string) (uint32, bool) {
	op, ok := s.Opcodes[tag]
	return op, ok
}

// ========================================
// MasterContract（ContractHandle）
// ========================================

// MasterContract はデプロイ済み master インスタンスへのハンドルです。
// Resolver が生成し、キャッシュも永続化もしません。
type MasterContract struct {
	Network string
	Address *address.Address
	Schema  Schema
}

// Encode は op をコントラクトのワイヤ形式（opcode + fields）のセルにします。
func (c *MasterContract) Encode(op Operation) (*cell.Cell, error) {
	if op == nil {
		return nil, fmt.Errorf("%w: operation is nil", ErrMalformedOperation)
	}
	opcode, ok := c.Schema.Opcode(op.Tag())
	if !ok {
		return nil, fmt.Errorf("%w: %s does not accept %q", ErrMalformedOperation, c.Schema.Name, op.Tag())
	}

	b := cell.BeginCell()
	if err := b.StoreUInt(uint64(opcode), 32); err != nil {
		return nil, fmt.Errorf("%w: store opcode: %v", ErrMalformedOperation, err)
	}
	if err := op.storeFields(b); err != nil {
		return nil, err
	}
	return b.EndCell(), nil
}

// DecodeMintJettonSample は Encode したボディを読み戻します（dry-run 表示・検証用）。
func DecodeMintJettonSample(body *cell.Cell) (uint32, MintJettonSample, error) {
	if body == nil {
		return 0, MintJettonSample{}, fmt.Errorf("%w: body is nil", ErrMalformedOperation)
	}
	s := body.BeginParse()

	op, err := s.LoadUInt(32)
	if err != nil {
		return 0, MintJettonSample{}, fmt.Errorf("jetton: load opcode: %w", err)
	}
	qid, err := s.LoadUInt(64)
	if err != nil {
		return 0, MintJettonSample{}, fmt.Errorf("jetton: load queryId: %w", err)
	}
	amount, err := s.LoadBigCoins()
	if err != nil {
		return 0, MintJettonSample{}, fmt.Errorf("jetton: load amount: %w", err)
	}
	return uint32(op), MintJettonSample{QueryID: qid, Amount: amount}, nil
}

// ========================================
// Envelope / OutboundMessage
// ========================================

// Envelope は送金額と bounce ポリシーです。
type Envelope struct {
	Value  *big.Int // nanoton
	Bounce bool
}

// Validate は envelope の形式だけを検査します。
// 手数料や amount に対する充足性はネットワーク側の責務なので見ません。
func (e Envelope) Validate() error {
	if e.Value == nil {
		return fmt.Errorf("%w: value is nil", ErrMalformedEnvelope)
	}
	if e.Value.Sign() < 0 {
		return fmt.Errorf("%w: value is negative (%s)", ErrMalformedEnvelope, e.Value.String())
	}
	if e.Value.BitLen() > maxCoinsBits {
		return fmt.Errorf("%w: value overflows coins (%s)", ErrMalformedEnvelope, e.Value.String())
	}
	return nil
}

// OutboundMessage は Sender に渡す 1 通の内部メッセージです。
type OutboundMessage struct {
	To     *address.Address
	Value  *big.Int
	Bounce bool
	Body   *cell.Cell
}
