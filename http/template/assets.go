package template

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/xy-planning-network/switchback"
)

const (
	assetsBase = "static"
)

// AssetURI encloses the origin, environment and filesystem so when called executing a template,
// emits a URI for static assets, preferring a content hashed copy of the file when one exists.
//
// In development the unhashed file is served. In testing the URI is always empty.
func AssetURI(origin *url.URL, env switchback.Environment, filesys fs.FS) func(string) string {
	if filesys == nil {
		filesys = os.DirFS(".")
	}

	prefix := "/"
	if origin != nil && origin.Host != "" {
		prefix = strings.TrimSuffix(origin.String(), "/") + "/"
	}

	return func(assetPath string) string {
		switch {
		case env.IsTesting():
			return ""

		case env.IsDevelopment():
			return fmt.Sprintf("%s%s/%s", prefix, assetsBase, assetPath)

		default:
			// NOTE: where assetPath = js/switchback.js
			// glob = static/js/switchback-*.js
			fileExt := filepath.Ext(assetPath)
			filename := strings.TrimSuffix(assetPath, fileExt)
			glob := fmt.Sprintf("%s/%s-*%s", assetsBase, filename, fileExt)
			matches, err := fs.Glob(filesys, glob)

			if errors.Is(err, path.ErrBadPattern) || len(matches) != 1 {
				return fmt.Sprintf("%s%s/%s", prefix, assetsBase, assetPath)
			}

			return prefix + matches[0]
		}
	}
}
