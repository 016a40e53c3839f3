// internal/domain/jetton/errors.go
package jetton

import (
	"errors"
	"fmt"
)

// Resolve 側の原因
var (
	ErrNoDeployment        = errors.New("jetton: no recorded deployment")
	ErrInvalidDeployment   = errors.New("jetton: invalid deployment record")
	ErrNetworkUnreachable  = errors.New("jetton: network unreachable")
	ErrContractNotDeployed = errors.New("jetton: contract is not active on chain")
)

// Send 側の原因
var (
	ErrInvalidSender      = errors.New("jetton: invalid sender")
	ErrMalformedEnvelope  = errors.New("jetton: malformed envelope")
	ErrMalformedOperation = errors.New("jetton: malformed operation")
)

// ResolutionError は master コントラクトを特定・バインドできなかったことを表します。
// リトライはしません。呼び出し側にそのまま返します。
type ResolutionError struct {
	Network string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("jetton: resolve master on %q: %v", e.Network, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// SubmissionError はトランザクションをネットワーク層へ渡せなかったことを表します。
type SubmissionError struct {
	Contract string // 宛先アドレス（不明なら空）
	Err      error
}

func (e *SubmissionError) Error() string {
	if e.Contract == "" {
		return fmt.Sprintf("jetton: submit: %v", e.Err)
	}
	return fmt.Sprintf("jetton: submit to %s: %v", e.Contract, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
