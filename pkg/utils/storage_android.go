//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 打开之前创建快照目录
//
// gdata 在 Android 上写入 /data/data/{package}/saves，但不会创建该目录。
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return errors.New("cannot detect android package name")
	}

	dir := filepath.Join(root, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	marker := filepath.Join(dir, ".writable")
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		return fmt.Errorf("snapshot directory %s is not writable: %w", dir, err)
	}
	return os.Remove(marker)
}

// GetStoragePath 返回应用私有目录，包名从 /proc/self/cmdline 读取
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return ""
	}
	return filepath.Join("/data/data", string(name))
}
