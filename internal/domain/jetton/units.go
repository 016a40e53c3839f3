// internal/domain/jetton/units.go
package jetton

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// NanoDecimals は TON の最小単位の桁数です (1 TON = 10^9 nanoton)。
const NanoDecimals = 9

var (
	ErrInvalidAmount = errors.New("jetton: invalid amount")
	ErrPrecisionLoss = errors.New("jetton: amount has more than 9 decimal places")
)

// ToNano は "1.3" のような人間向けの金額を最小単位に変換します。
// 丸めは行わず、9 桁を超える小数はエラーにします。
func ToNano(human string) (*big.Int, error) {
	s := strings.TrimSpace(human)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, human)
	}
	nano := d.Shift(NanoDecimals)
	if !nano.IsInteger() {
		return nil, fmt.Errorf("%w: %q", ErrPrecisionLoss, human)
	}
	return nano.BigInt(), nil
}

// FromNano は最小単位を人間向けの文字列に戻します（ログ表示用）。
func FromNano(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return decimal.NewFromBigInt(n, -NanoDecimals).String()
}
