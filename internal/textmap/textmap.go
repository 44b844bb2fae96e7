// Package textmap loads the per-language localized string tables and resolves
// text references against them.
package textmap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/zulandar/starindex/internal/textfmt"
)

// Assets holds every loaded language table: language -> hash key -> text.
type Assets struct {
	tables map[string]map[string]string
}

// NewAssets wraps already-built tables, mainly for tests.
func NewAssets(tables map[string]map[string]string) *Assets {
	return &Assets{tables: tables}
}

// FormatLanguage turns a text map file stem such as "TextMapCHS" into the
// language code used in output paths ("cn").
func FormatLanguage(stem string) string {
	lang := strings.ToLower(strings.Replace(stem, "TextMap", "", 1))
	if lang == "chs" {
		return "cn"
	}
	return lang
}

// discover lists the text map files in dir keyed by language code.
func discover(dir string) (map[string]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("textmap: glob %s: %w", dir, err)
	}
	files := make(map[string]string, len(paths))
	for _, p := range paths {
		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		if strings.Contains(stem, "TextMapMain") {
			continue
		}
		files[FormatLanguage(stem)] = p
	}
	return files, nil
}

// AvailableLanguages returns the sorted language codes present in dir.
func AvailableLanguages(dir string) ([]string, error) {
	files, err := discover(dir)
	if err != nil {
		return nil, err
	}
	langs := make([]string, 0, len(files))
	for lang := range files {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// LoadDir reads the text maps in dir. When only is non-empty, languages not in
// it are skipped; a requested language with no file is an error.
func LoadDir(dir string, only []string) (*Assets, error) {
	files, err := discover(dir)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(only))
	for _, lang := range only {
		if _, ok := files[lang]; !ok {
			return nil, fmt.Errorf("textmap: no text map for language %q in %s", lang, dir)
		}
		wanted[lang] = true
	}

	assets := &Assets{tables: make(map[string]map[string]string)}
	for lang, path := range files {
		if len(wanted) > 0 && !wanted[lang] {
			continue
		}
		table, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		assets.tables[lang] = table
	}
	return assets, nil
}

func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("textmap: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("textmap: %s is not valid JSON", path)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("textmap: %s is not a JSON object", path)
	}
	table := make(map[string]string)
	root.ForEach(func(key, value gjson.Result) bool {
		table[key.String()] = value.String()
		return true
	})
	return table, nil
}

// Languages returns the loaded language codes, sorted.
func (a *Assets) Languages() []string {
	langs := make([]string, 0, len(a.tables))
	for lang := range a.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Resolver returns a resolver bound to one language.
func (a *Assets) Resolver(lang string, opts ...Option) (*Resolver, error) {
	table, ok := a.tables[lang]
	if !ok {
		return nil, fmt.Errorf("textmap: language %q not loaded", lang)
	}
	r := &Resolver{lang: lang, table: table}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRichTextStripped strips Unity rich-text markup from every resolved string.
func WithRichTextStripped() Option {
	return func(r *Resolver) { r.strip = true }
}

// Resolver maps text hashes to localized strings for a single language. It is
// created per generation run and never shared across languages.
type Resolver struct {
	lang  string
	table map[string]string
	strip bool
}

// Language returns the language code the resolver is bound to.
func (r *Resolver) Language() string {
	return r.lang
}

// Text resolves a hash key. The literal key is tried first, then its stable
// hash. Unknown keys and NoOption resolve to "".
func (r *Resolver) Text(key string) string {
	if key == "" || key == NoOption {
		return ""
	}
	text, ok := r.table[key]
	if !ok {
		text = r.table[StableHash(key)]
	}
	if r.strip {
		text = textfmt.StripRichText(text)
	}
	return text
}

// Ref resolves a text reference taken from a config record. References are
// either {"Hash": n} objects or bare hash values.
func (r *Resolver) Ref(ref gjson.Result) string {
	return r.Text(HashKey(ref))
}

// HashKey extracts the hash key of a text reference, preserving the literal
// digits of large integers.
func HashKey(ref gjson.Result) string {
	if ref.IsObject() {
		ref = ref.Get("Hash")
	}
	if !ref.Exists() || ref.Type == gjson.Null {
		return ""
	}
	if ref.Type == gjson.Number {
		return ref.Raw
	}
	return ref.String()
}
