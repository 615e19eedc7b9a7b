//go:build !mobile

package utils

import "os"

// IsMobile 桌面端返回 false
// 设置 SPIN3D_MOBILE_EMULATE=1 可在桌面上模拟移动端（隐藏 HUD）
func IsMobile() bool {
	return os.Getenv("SPIN3D_MOBILE_EMULATE") == "1"
}
