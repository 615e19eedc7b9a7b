//go:build !mobile

// 非移动端构建时 mobile 包只保留 Dummy，
// 绑定代码在 mobile.go 和 embed.go 中，需要 -tags mobile。
package mobile

// Dummy 保证包在桌面构建下也能被引用
func Dummy() {}
