// internal/domain/jetton/query_id.go
package jetton

import "github.com/benbjohnson/clock"

// QueryIDFromClock は壁時計の UNIX 秒を queryId として返します。
// 同じ秒の中で 2 回呼ぶと同じ値になります（重複排除は受信側の責務）。
func QueryIDFromClock(c clock.Clock) uint64 {
	if c == nil {
		c = clock.New()
	}
	sec := c.Now().Unix()
	if sec < 0 {
		return 0
	}
	return uint64(sec)
}
