package orchestration

import (
	"fmt"
	"strconv"
	"time"

	"github.com/zulandar/starindex/internal/assets"
	"github.com/zulandar/starindex/internal/catalog"
	"github.com/zulandar/starindex/internal/config"
	"github.com/zulandar/starindex/internal/index"
	"github.com/zulandar/starindex/internal/messages"
	"github.com/zulandar/starindex/internal/records"
	"github.com/zulandar/starindex/internal/textmap"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessagesDocument is the output name of the summary document; per-contact
// documents live below the directory of the same name.
const MessagesDocument = "messages"

// GenerateOpts configures a full generation run.
type GenerateOpts struct {
	Config *config.Config
	// Languages overrides Config.Languages when non-empty.
	Languages []string
	Log       *zap.Logger
	// DB, when set, receives every language result after its files are written.
	DB *gorm.DB
}

// LanguageResult summarizes one language of a run.
type LanguageResult struct {
	Language string
	Contacts int
	Sections int
	Messages int
	Dir      string
	RunID    string // catalog run id, empty when no catalog is configured
	Duration time.Duration
}

// GenerateResult holds the per-language outcome of a run, in language order.
type GenerateResult struct {
	Languages []LanguageResult
}

// Generate rebuilds the message index of every selected language from the
// dump. Tables are read once and shared across languages. The first fatal
// error aborts the run.
func Generate(opts GenerateOpts) (*GenerateResult, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("orchestration: config is required")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	cfg := opts.Config

	langs := opts.Languages
	if len(langs) == 0 {
		langs = cfg.Languages
	}
	texts, err := textmap.LoadDir(cfg.TextMapDir, langs)
	if err != nil {
		return nil, fmt.Errorf("orchestration: %w", err)
	}
	if len(texts.Languages()) == 0 {
		return nil, fmt.Errorf("orchestration: no text maps found in %s", cfg.TextMapDir)
	}

	tables, err := messages.LoadTables(records.NewStore(cfg.DumpDir), log)
	if err != nil {
		return nil, fmt.Errorf("orchestration: load tables: %w", err)
	}
	remap := assets.NewRemapper(log)

	var resolverOpts []textmap.Option
	if cfg.StripRichText {
		resolverOpts = append(resolverOpts, textmap.WithRichTextStripped())
	}

	result := &GenerateResult{}
	for _, lang := range texts.Languages() {
		resolver, err := texts.Resolver(lang, resolverOpts...)
		if err != nil {
			return nil, fmt.Errorf("orchestration: %w", err)
		}
		lr, err := generateLanguage(opts, tables, resolver, remap, log.With(zap.String("lang", lang)))
		if err != nil {
			return nil, fmt.Errorf("orchestration: language %s: %w", lang, err)
		}
		result.Languages = append(result.Languages, *lr)
	}
	return result, nil
}

func generateLanguage(opts GenerateOpts, tables *messages.Tables, text *textmap.Resolver, remap *assets.Remapper, log *zap.Logger) (*LanguageResult, error) {
	started := time.Now()
	lang := text.Language()
	log.Info("generating messages")

	asm := messages.NewAssembler(tables, text, remap, opts.Config.Disabled(), log)
	res, err := asm.Assemble()
	if err != nil {
		return nil, err
	}

	w := index.NewWriter(opts.Config.OutputDir, lang)
	if err := WriteResult(w, res); err != nil {
		return nil, err
	}

	lr := &LanguageResult{
		Language: lang,
		Contacts: len(res.Groups),
		Dir:      w.Dir(),
	}
	for _, g := range res.Groups {
		for _, sections := range g.Sections {
			lr.Sections += len(sections)
			for _, s := range sections {
				lr.Messages += len(s.Messages)
			}
		}
	}

	if opts.DB != nil {
		run, err := catalog.Publish(opts.DB, lang, res, started)
		if err != nil {
			return nil, err
		}
		lr.RunID = run.ID
		log.Info("published to catalog", zap.String("run", run.ID))
	}

	lr.Duration = time.Since(started)
	log.Info("language complete",
		zap.Int("contacts", lr.Contacts),
		zap.Int("sections", lr.Sections),
		zap.Int("messages", lr.Messages),
		zap.Duration("duration", lr.Duration))
	return lr, nil
}

// WriteResult replaces the messages output of one language: the previous
// summary and per-contact documents are removed, then one document per
// contact and the summary are written.
func WriteResult(w *index.Writer, res *messages.Result) error {
	if err := w.Reset(MessagesDocument); err != nil {
		return err
	}
	for _, g := range res.Groups {
		if err := w.Write(MessagesDocument+"/"+strconv.Itoa(g.ID), g); err != nil {
			return err
		}
	}
	return w.Write(MessagesDocument, res.Summary)
}
