// internal/application/mint/helpers.go
package mint

import "strings"

// ============================================================
// Local helpers
// ============================================================

// maskShort はログ用にアドレスを先頭4文字 + 末尾4文字に縮めます。
func maskShort(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
