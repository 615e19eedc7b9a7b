//go:build !android

package utils

// EnsureStorageDir 非 Android 平台由 gdata 自行创建快照目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串
func GetStoragePath() string {
	return ""
}
