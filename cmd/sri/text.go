package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/starindex/internal/config"
	"github.com/zulandar/starindex/internal/textfmt"
	"github.com/zulandar/starindex/internal/textmap"
)

func newTextCmd() *cobra.Command {
	var (
		configPath string
		lang       string
		params     []float64
		showHash   bool
	)

	cmd := &cobra.Command{
		Use:   "text <hash>",
		Short: "Resolve one localized string",
		Long:  "Looks up a text hash in the configured text maps, falling back to its stable hash, and substitutes any #N[i] / #N[fD] parameters given with --param.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(cmd, configPath, args[0], lang, params, showHash)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to starindex config file")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language code (default: first configured language, or en)")
	cmd.Flags().Float64SliceVarP(&params, "param", "p", nil, "positional parameters for #N placeholders")
	cmd.Flags().BoolVar(&showHash, "show-hash", false, "print the stable hash of the key as well")
	return cmd
}

func runText(cmd *cobra.Command, configPath, key, lang string, params []float64, showHash bool) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lang == "" {
		lang = "en"
		if len(cfg.Languages) > 0 {
			lang = cfg.Languages[0]
		}
	}

	texts, err := textmap.LoadDir(cfg.TextMapDir, []string{lang})
	if err != nil {
		return err
	}
	var opts []textmap.Option
	if cfg.StripRichText {
		opts = append(opts, textmap.WithRichTextStripped())
	}
	resolver, err := texts.Resolver(lang, opts...)
	if err != nil {
		return err
	}

	if showHash {
		fmt.Fprintf(out, "stable hash: %s\n", textmap.StableHash(key))
	}
	text := resolver.Text(key)
	if text == "" && key != textmap.NoOption {
		return fmt.Errorf("text: %s not found in %s text map", key, lang)
	}
	fmt.Fprintln(out, textfmt.FormatWithParams(text, params))
	return nil
}
