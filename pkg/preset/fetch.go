package preset

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// IsRemote reports whether src names something Fetch has to download
// rather than a file on disk.
func IsRemote(src string) bool {
	if strings.Contains(src, "::") {
		return true
	}
	u, err := url.Parse(src)
	return err == nil && u.Scheme != "" && len(u.Scheme) > 1
}

// Fetch downloads a single preset file into dir and returns its local path.
// src is any go-getter address (https://..., git::https://...//presets/a.toml,
// s3::...). Local paths are returned unchanged.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if !IsRemote(src) {
		return src, nil
	}

	name := remoteName(src)
	if name == "" {
		return "", fmt.Errorf("preset: fetch %s: cannot determine file name", src)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("preset: fetch: %w", err)
	}
	dst := filepath.Join(dir, name)

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("preset: fetch %s: %w", src, err)
	}
	return dst, nil
}

// remoteName extracts the file name a go-getter address points at.
func remoteName(src string) string {
	if i := strings.Index(src, "::"); i >= 0 {
		src = src[i+2:]
	}
	if i := strings.LastIndex(src, "//"); i >= 0 && !strings.HasSuffix(src[:i], ":") {
		// git::https://host/repo.git//presets/a.toml
		src = src[i+2:]
	}
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		src = u.Path
	}
	name := path.Base(src)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
