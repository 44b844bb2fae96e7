package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/zulandar/starindex/internal/assets"
	"github.com/zulandar/starindex/internal/config"
	"github.com/zulandar/starindex/internal/orchestration"
)

func newCheckAssetsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check-assets",
		Short: "Verify asset paths referenced by the generated index",
		Long:  "Scans every generated messages document for icon and image paths and checks that each exists below asset_root.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckAssets(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to starindex config file")
	return cmd
}

func runCheckAssets(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	langs, err := indexedLanguages(cfg)
	if err != nil {
		return err
	}
	if len(langs) == 0 {
		return fmt.Errorf("no generated index found in %s", cfg.OutputDir)
	}

	var results []checkResult
	for _, lang := range langs {
		results = append(results, checkLanguageAssets(cfg, lang))
	}

	passed, failed := 0, 0
	for _, r := range results {
		printCheckResult(out, r)
		for _, p := range r.missing {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		if r.status == "PASS" {
			passed++
		} else {
			failed++
		}
	}
	fmt.Fprintf(out, "\n%d passed, %d failed\n", passed, failed)

	if failed > 0 {
		return fmt.Errorf("%d language(s) reference missing assets", failed)
	}
	return nil
}

type checkResult struct {
	name    string
	status  string // "PASS", "FAIL"
	detail  string
	missing []string
}

func printCheckResult(out io.Writer, r checkResult) {
	fmt.Fprintf(out, "[%s] %s: %s\n", r.status, r.name, r.detail)
}

// indexedLanguages returns the configured languages, or every language
// directory present in the output when none are configured.
func indexedLanguages(cfg *config.Config) ([]string, error) {
	if len(cfg.Languages) > 0 {
		return cfg.Languages, nil
	}
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", cfg.OutputDir, err)
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs, nil
}

func checkLanguageAssets(cfg *config.Config, lang string) checkResult {
	dir := filepath.Join(cfg.OutputDir, lang)
	docs, err := filepath.Glob(filepath.Join(dir, orchestration.MessagesDocument, "*.json"))
	if err != nil {
		return checkResult{name: lang, status: "FAIL", detail: err.Error()}
	}
	summary := filepath.Join(dir, orchestration.MessagesDocument+".json")
	if _, err := os.Stat(summary); err != nil {
		return checkResult{name: lang, status: "FAIL", detail: fmt.Sprintf("no %s: %v", orchestration.MessagesDocument+".json", err)}
	}
	docs = append(docs, summary)

	seen := make(map[string]bool)
	var paths []string
	for _, doc := range docs {
		data, err := os.ReadFile(doc)
		if err != nil {
			return checkResult{name: lang, status: "FAIL", detail: err.Error()}
		}
		for _, p := range assets.CollectPaths(data) {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)

	missing, err := assets.Missing(cfg.AssetRoot, paths)
	if err != nil {
		return checkResult{name: lang, status: "FAIL", detail: err.Error()}
	}
	if len(missing) > 0 {
		return checkResult{
			name:    lang,
			status:  "FAIL",
			detail:  fmt.Sprintf("%d of %d asset paths missing under %s", len(missing), len(paths), cfg.AssetRoot),
			missing: missing,
		}
	}
	return checkResult{name: lang, status: "PASS", detail: fmt.Sprintf("%d asset paths, %d documents", len(paths), len(docs))}
}
