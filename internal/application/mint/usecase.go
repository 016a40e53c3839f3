// internal/application/mint/usecase.go
package mint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"

	"github.com/benbjohnson/clock"

	jettondom "jettonmint/internal/domain/jetton"
)

// MintSampleInput は最小単位に変換済みの入力です。
// 人間向け単位からの変換は呼び出し側 (CLI) が jetton.ToNano で行います。
type MintSampleInput struct {
	Value  *big.Int // envelope に載せる nanoton
	Amount *big.Int // ミント量（最小単位）
	Bounce bool
}

// MintSampleResult は送信（または dry-run）した内容のサマリです。
// オンチェーンの実行結果は含みません。
type MintSampleResult struct {
	Network string
	Master  string
	QueryID uint64
	Opcode  uint32
	Value   *big.Int
	Amount  *big.Int
	Bounce  bool
	BodyBOC string // hex
	Sent    bool
}

// Usecase は Resolver → Dispatcher の一連の流れをまとめます。
// Network / Sender は呼び出しごとに引数で受け取り、保持しません。
type Usecase struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	clock      clock.Clock
}

func NewUsecase(resolver *Resolver, dispatcher *Dispatcher, clk clock.Clock) *Usecase {
	if clk == nil {
		clk = clock.New()
	}
	if dispatcher == nil {
		dispatcher = NewDispatcher()
	}
	return &Usecase{
		resolver:   resolver,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

// Resolve は master の解決だけを行います。
func (u *Usecase) Resolve(ctx context.Context, network jettondom.Network) (*jettondom.MasterContract, error) {
	return u.resolver.Resolve(ctx, network)
}

// MintSample は master を解決し、MintJettonSample を 1 通送ります。
// 解決に失敗した場合 sender は一切呼ばれません。
func (u *Usecase) MintSample(
	ctx context.Context,
	network jettondom.Network,
	sender jettondom.Sender,
	in MintSampleInput,
) (MintSampleResult, error) {
	return u.run(ctx, network, sender, in, false)
}

// PreviewMintSample は送信直前までを実行し、メッセージ内容だけを返します。
func (u *Usecase) PreviewMintSample(
	ctx context.Context,
	network jettondom.Network,
	in MintSampleInput,
) (MintSampleResult, error) {
	return u.run(ctx, network, nil, in, true)
}

func (u *Usecase) run(
	ctx context.Context,
	network jettondom.Network,
	sender jettondom.Sender,
	in MintSampleInput,
	dryRun bool,
) (MintSampleResult, error) {
	if u == nil || u.resolver == nil {
		return MintSampleResult{}, fmt.Errorf("mint.usecase: not initialized")
	}

	contract, err := u.resolver.Resolve(ctx, network)
	if err != nil {
		return MintSampleResult{}, err
	}

	op := jettondom.MintJettonSample{
		QueryID: jettondom.QueryIDFromClock(u.clock),
		Amount:  in.Amount,
	}
	env := jettondom.Envelope{
		Value:  in.Value,
		Bounce: in.Bounce,
	}

	msg, err := u.dispatcher.Build(contract, env, op)
	if err != nil {
		return MintSampleResult{}, err
	}
	opcode, _ := contract.Schema.Opcode(op.Tag())

	res := MintSampleResult{
		Network: contract.Network,
		Master:  contract.Address.String(),
		QueryID: op.QueryID,
		Opcode:  opcode,
		Value:   msg.Value,
		Amount:  new(big.Int).Set(in.Amount),
		Bounce:  msg.Bounce,
		BodyBOC: hex.EncodeToString(msg.Body.ToBOC()),
	}

	if dryRun {
		log.Printf("[mint.usecase] dry-run network=%s master=%s queryId=%d", res.Network, maskShort(res.Master), res.QueryID)
		return res, nil
	}

	if err := u.dispatcher.Send(ctx, contract, sender, env, op); err != nil {
		return MintSampleResult{}, err
	}
	res.Sent = true

	log.Printf(
		"[mint.usecase] accepted network=%s master=%s queryId=%d amount=%s",
		res.Network, maskShort(res.Master), res.QueryID, jettondom.FromNano(res.Amount),
	)
	return res, nil
}
