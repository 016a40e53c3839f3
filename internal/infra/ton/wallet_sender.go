// internal/infra/ton/wallet_sender.go
package toninfra

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"

	jettondom "jettonmint/internal/domain/jetton"
)

var (
	ErrWalletNotConfigured = errors.New("wallet_sender: not configured")
	ErrUnknownWallet       = errors.New("wallet_sender: unknown wallet version")
)

// sendMode は wallet コントラクトの送金モードです (PAY_GAS_SEPARATELY + IGNORE_ERRORS)。
const sendMode = wallet.PayGasSeparately + wallet.IgnoreErrors

// ネットワークの global id (wallet v5 の署名ドメインに必要)
const (
	mainnetGlobalID int32 = -239
	testnetGlobalID int32 = -3
)

// walletAPI は *wallet.Wallet のうち送信に必要な部分です。
type walletAPI interface {
	WalletAddress() *address.Address
	Send(ctx context.Context, message *wallet.Message, waitConfirmation ...bool) error
}

// WalletSender は jetton.Sender の wallet 実装です。
// 署名と手数料の支払いは wallet コントラクトが行います。
type WalletSender struct {
	w walletAPI
}

var _ jettondom.Sender = (*WalletSender)(nil)

// NewWalletSender は Network (Client) から署名ケイパビリティを導出します。
func NewWalletSender(c *Client, words []string, version string) (*WalletSender, error) {
	if c == nil || c.API() == nil {
		return nil, ErrClientNotConfigured
	}
	ver, err := walletVersion(version, c.Name())
	if err != nil {
		return nil, err
	}

	w, err := wallet.FromSeed(c.API(), words, ver)
	if err != nil {
		return nil, fmt.Errorf("wallet_sender: restore wallet from seed: %w", err)
	}

	log.Printf("[wallet_sender] wallet restored version=%s address=%s", strings.ToLower(version), w.WalletAddress().String())
	return &WalletSender{w: w}, nil
}

func (s *WalletSender) Address() *address.Address {
	if s == nil || s.w == nil {
		return nil
	}
	return s.w.WalletAddress()
}

// Send は外部メッセージを liteserver に送り、受理されたら戻ります。
// 確認待ちはしません。
func (s *WalletSender) Send(ctx context.Context, msg jettondom.OutboundMessage) error {
	if s == nil || s.w == nil {
		return ErrWalletNotConfigured
	}
	wm, err := toWalletMessage(msg)
	if err != nil {
		return err
	}
	if err := s.w.Send(ctx, wm, false); err != nil {
		return fmt.Errorf("wallet_sender: send: %w", err)
	}
	return nil
}

func toWalletMessage(msg jettondom.OutboundMessage) (*wallet.Message, error) {
	if msg.To == nil {
		return nil, fmt.Errorf("wallet_sender: destination is nil")
	}
	if msg.Value == nil || msg.Value.Sign() < 0 {
		return nil, fmt.Errorf("wallet_sender: invalid value")
	}
	return &wallet.Message{
		Mode: sendMode,
		InternalMessage: &tlb.InternalMessage{
			IHRDisabled: true,
			Bounce:      msg.Bounce,
			DstAddr:     msg.To,
			Amount:      tlb.FromNanoTON(msg.Value),
			Body:        msg.Body,
		},
	}, nil
}

func walletVersion(v, network string) (wallet.VersionConfig, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "v3", "v3r2":
		return wallet.V3R2, nil
	case "v4", "v4r2", "":
		return wallet.V4R2, nil
	case "v5", "v5r1":
		id := testnetGlobalID
		if strings.EqualFold(network, "mainnet") {
			id = mainnetGlobalID
		}
		return wallet.ConfigV5R1Final{NetworkGlobalID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWallet, v)
	}
}
