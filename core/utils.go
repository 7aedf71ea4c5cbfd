package core

import (
	"path/filepath"
)

const PublicKeyExt = ".pub"

// GetPath keeps absolute paths and resolves relative ones against base
func GetPath(path string, base string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func LocalNodeKeyFile(alg string) string {
	return "localnode_" + alg
}

func PublicKeyFile(keyFile string) string {
	return keyFile + PublicKeyExt
}

// AbsPath returns the absolute form of path, or path itself if it cannot be resolved
func AbsPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
