// internal/domain/deployment/entity.go
package deployment

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Record はあるネットワークにデプロイ済みの master コントラクトの記録です。
// Address が空なら StateInit (Code + Data) からアドレスを導出します。
type Record struct {
	Network    string    `yaml:"network" firestore:"network"`
	Name       string    `yaml:"name" firestore:"name"`
	Address    string    `yaml:"address" firestore:"address"`
	Workchain  int32     `yaml:"workchain" firestore:"workchain"`
	CodeBOC    string    `yaml:"code" firestore:"codeBoc"` // base64 or hex
	DataBOC    string    `yaml:"data" firestore:"dataBoc"` // base64 or hex
	DeployedAt time.Time `yaml:"deployedAt" firestore:"deployedAt"`
}

const bocMagicHex = "b5ee9c72"

// Errors
var (
	ErrNotFound        = errors.New("deployment: not found")
	ErrEmptyRecord     = errors.New("deployment: neither address nor state init recorded")
	ErrInvalidAddress  = errors.New("deployment: invalid address")
	ErrInvalidBOC      = errors.New("deployment: invalid state init boc")
	ErrAddressMismatch = errors.New("deployment: recorded address does not match state init")
)

// HasStateInit は Code/Data が両方記録されているかを返します。
func (r Record) HasStateInit() bool {
	return strings.TrimSpace(r.CodeBOC) != "" && strings.TrimSpace(r.DataBOC) != ""
}

// MasterAddress は master のアドレスを決定的に返します。
//   - Address のみ: パースして返す
//   - StateInit のみ: workchain:hash(StateInit) を導出
//   - 両方: 導出結果と一致することを確認
func (r Record) MasterAddress() (*address.Address, error) {
	recorded := strings.TrimSpace(r.Address)

	var derived *address.Address
	if r.HasStateInit() {
		a, err := DeriveAddress(r.Workchain, r.CodeBOC, r.DataBOC)
		if err != nil {
			return nil, err
		}
		derived = a
	}

	switch {
	case recorded == "" && derived == nil:
		return nil, ErrEmptyRecord
	case recorded == "":
		return derived, nil
	}

	addr, err := address.ParseAddr(recorded)
	if err != nil {
		// raw 形式 "0:abcd..." も許容する
		addr, err = address.ParseRawAddr(recorded)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, recorded, err)
		}
	}
	if derived != nil && !sameAddress(addr, derived) {
		return nil, fmt.Errorf("%w: recorded=%s derived=%s", ErrAddressMismatch, addr.String(), derived.String())
	}
	return addr, nil
}

// DeriveAddress は StateInit{code, data} のセルハッシュからアドレスを計算します。
func DeriveAddress(workchain int32, codeBOC, dataBOC string) (*address.Address, error) {
	code, err := parseBOC(codeBOC)
	if err != nil {
		return nil, fmt.Errorf("%w: code: %v", ErrInvalidBOC, err)
	}
	data, err := parseBOC(dataBOC)
	if err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrInvalidBOC, err)
	}

	si, err := tlb.ToCell(&tlb.StateInit{Code: code, Data: data})
	if err != nil {
		return nil, fmt.Errorf("%w: state init: %v", ErrInvalidBOC, err)
	}
	return address.NewAddress(0, byte(workchain), si.Hash()), nil
}

func sameAddress(a, b *address.Address) bool {
	return a.Workchain() == b.Workchain() && bytes.Equal(a.Data(), b.Data())
}

func parseBOC(s string) (*cell.Cell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty")
	}

	// hex の BOC はマジック b5ee9c72 で始まる。それ以外は base64 として扱う
	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(strings.ToLower(s), bocMagicHex) {
		raw, err = hex.DecodeString(s)
	} else {
		raw, err = base64.StdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, err
	}
	return cell.FromBOC(raw)
}
