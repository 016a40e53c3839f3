// internal/application/mint/dispatcher.go
package mint

import (
	"context"
	"fmt"
	"log"
	"math/big"

	jettondom "jettonmint/internal/domain/jetton"
)

// Dispatcher は 1 回の呼び出しにつき 1 通のメッセージを送ります。
// 状態は持たないので並行に呼んでも問題ありません。
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Build は送信せずに OutboundMessage を組み立てます（dry-run と Send で共用）。
func (d *Dispatcher) Build(
	contract *jettondom.MasterContract,
	env jettondom.Envelope,
	op jettondom.Operation,
) (jettondom.OutboundMessage, error) {
	if contract == nil || contract.Address == nil {
		return jettondom.OutboundMessage{}, &jettondom.SubmissionError{
			Err: fmt.Errorf("%w: contract handle is empty", jettondom.ErrMalformedOperation),
		}
	}
	dst := contract.Address.String()

	if err := env.Validate(); err != nil {
		return jettondom.OutboundMessage{}, &jettondom.SubmissionError{Contract: dst, Err: err}
	}

	body, err := contract.Encode(op)
	if err != nil {
		return jettondom.OutboundMessage{}, &jettondom.SubmissionError{Contract: dst, Err: err}
	}

	return jettondom.OutboundMessage{
		To:     contract.Address,
		Value:  new(big.Int).Set(env.Value),
		Bounce: env.Bounce,
		Body:   body,
	}, nil
}

// Send はメッセージを sender 経由で投げ、ネットワーク層が受理したら戻ります。
// value が amount や手数料に足りるかはここでは検査しません。
func (d *Dispatcher) Send(
	ctx context.Context,
	contract *jettondom.MasterContract,
	sender jettondom.Sender,
	env jettondom.Envelope,
	op jettondom.Operation,
) error {
	if sender == nil || sender.Address() == nil {
		return &jettondom.SubmissionError{
			Contract: contractAddr(contract),
			Err:      fmt.Errorf("%w: sender capability is empty", jettondom.ErrInvalidSender),
		}
	}

	msg, err := d.Build(contract, env, op)
	if err != nil {
		return err
	}

	log.Printf(
		"[mint.dispatcher] send op=%s to=%s from=%s value=%s bounce=%t",
		op.Tag(),
		maskShort(msg.To.String()),
		maskShort(sender.Address().String()),
		jettondom.FromNano(msg.Value),
		msg.Bounce,
	)

	if err := sender.Send(ctx, msg); err != nil {
		return &jettondom.SubmissionError{Contract: msg.To.String(), Err: err}
	}
	return nil
}

func contractAddr(c *jettondom.MasterContract) string {
	if c == nil || c.Address == nil {
		return ""
	}
	return c.Address.String()
}
