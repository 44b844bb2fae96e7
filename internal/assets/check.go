package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
)

// PathFields are the document keys whose string values are asset paths.
var PathFields = []string{"iconPath", "path", "image"}

// CollectPaths returns the distinct, sorted asset paths referenced anywhere in
// a JSON document under one of fields (PathFields when none are given).
func CollectPaths(doc []byte, fields ...string) []string {
	if len(fields) == 0 {
		fields = PathFields
	}
	wanted := make(map[string]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	seen := make(map[string]bool)
	var walk func(v gjson.Result)
	walk = func(v gjson.Result) {
		v.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String && wanted[key.String()] && value.String() != "" {
				seen[value.String()] = true
			}
			if value.IsObject() || value.IsArray() {
				walk(value)
			}
			return true
		})
	}
	walk(gjson.ParseBytes(doc))

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Missing returns the paths that do not exist below root, in input order.
func Missing(root string, paths []string) ([]string, error) {
	var missing []string
	for _, p := range paths {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(p)))
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, p)
		default:
			return nil, err
		}
	}
	return missing, nil
}
