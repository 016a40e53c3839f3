// internal/domain/jetton/ports.go
package jetton

import (
	"context"

	"github.com/xssnick/tonutils-go/address"
)

// ========================================
// 外部ケイパビリティ（契約のみ）
// ========================================

// Network は呼び出し側が所有するネットワーク接続です。
// この core では生成しません。
type Network interface {
	// Name は "testnet" / "mainnet" などデプロイ記録のキーになる名前です。
	Name() string
	// AccountActive はアドレスにアクティブなコントラクトがあるかを読み取ります。
	AccountActive(ctx context.Context, addr *address.Address) (bool, error)
}

// Sender は署名と手数料支払いを担うケイパビリティです。
type Sender interface {
	Address() *address.Address
	// Send はネットワーク層がメッセージを受理した時点で戻ります。
	// オンチェーンでの実行結果は待ちません。
	Send(ctx context.Context, msg OutboundMessage) error
}
