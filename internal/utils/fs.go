package utils

import (
	"os"
	"path/filepath"
)

// AssetsDir is the root searched by ResolveAssetPath before the working directory.
var AssetsDir = "assets"

// ResolveAssetPath returns the first existing candidate for relPath, trying the
// assets directory, then the path as given. The assets candidate is returned
// when nothing exists so callers can report a sensible path.
func ResolveAssetPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}

	localPath := filepath.Join(AssetsDir, relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	if _, err := os.Stat(relPath); err == nil {
		return relPath
	}

	return localPath
}

// ReadAsset reads relPath through ResolveAssetPath.
func ReadAsset(relPath string) ([]byte, string, error) {
	path := ResolveAssetPath(relPath)
	data, err := os.ReadFile(path)
	return data, path, err
}
