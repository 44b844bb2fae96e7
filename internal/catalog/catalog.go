// Package catalog publishes generated message documents to a relational
// catalog for the downstream website. Every publish replaces the rows of one
// language wholesale.
package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/starindex/internal/config"
	"github.com/zulandar/starindex/internal/messages"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL DSN for the catalog database.
func DSN(user, host string, port int, database string) string {
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4", user, host, port, database)
}

// Open connects to the configured catalog and migrates its tables.
func Open(cfg config.CatalogConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	case "mysql":
		dialector = mysql.Open(DSN(cfg.User, cfg.Host, cfg.Port, cfg.Database))
	default:
		return nil, fmt.Errorf("catalog: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: connect (%s): %w", cfg.Driver, err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates the catalog tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("catalog: auto-migrate: %w", err)
	}
	return nil
}

// Publish writes one language's assembly result in a single transaction and
// returns the recorded run. Rows left over from earlier runs of the same
// language are removed.
func Publish(db *gorm.DB, lang string, res *messages.Result, startedAt time.Time) (*GenerationRun, error) {
	run := &GenerationRun{
		ID:        uuid.NewString(),
		Language:  lang,
		Contacts:  len(res.Groups),
		StartedAt: startedAt,
	}

	contacts := make([]ContactRow, 0, len(res.Summary))
	for _, g := range res.Groups {
		c := res.Summary[g.ID]
		if c == nil {
			c = g.Info
		}
		contacts = append(contacts, contactRow(lang, run.ID, c))
	}

	threads := make([]ThreadRow, 0, len(res.Groups))
	for _, g := range res.Groups {
		for _, sections := range g.Sections {
			run.Sections += len(sections)
			for _, s := range sections {
				run.Messages += len(s.Messages)
			}
		}
		doc, err := json.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("catalog: encode contact %d: %w", g.ID, err)
		}
		threads = append(threads, ThreadRow{Language: lang, ContactID: g.ID, Document: string(doc), RunID: run.ID})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(contacts) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "language"}, {Name: "contact_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "signature", "icon_path", "type", "camp", "run_id"}),
			}).Create(&contacts).Error; err != nil {
				return fmt.Errorf("catalog: upsert contacts: %w", err)
			}
		}
		if len(threads) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "language"}, {Name: "contact_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"document", "run_id"}),
			}).Create(&threads).Error; err != nil {
				return fmt.Errorf("catalog: upsert threads: %w", err)
			}
		}
		if err := tx.Where("language = ? AND run_id <> ?", lang, run.ID).Delete(&ContactRow{}).Error; err != nil {
			return fmt.Errorf("catalog: prune contacts: %w", err)
		}
		if err := tx.Where("language = ? AND run_id <> ?", lang, run.ID).Delete(&ThreadRow{}).Error; err != nil {
			return fmt.Errorf("catalog: prune threads: %w", err)
		}
		run.FinishedAt = time.Now()
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("catalog: record run: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

func contactRow(lang, runID string, c *messages.Contact) ContactRow {
	row := ContactRow{
		Language:  lang,
		ContactID: c.ID,
		Name:      c.Name,
		Signature: c.Signature,
		IconPath:  c.IconPath,
		RunID:     runID,
	}
	if c.Type != nil {
		s := c.Type.String()
		row.Type = &s
	}
	if c.Camp != nil {
		s := c.Camp.String()
		row.Camp = &s
	}
	return row
}

// LatestRun returns the most recent run recorded for lang.
func LatestRun(db *gorm.DB, lang string) (*GenerationRun, error) {
	var run GenerationRun
	if err := db.Where("language = ?", lang).Order("finished_at DESC").First(&run).Error; err != nil {
		return nil, fmt.Errorf("catalog: latest run for %s: %w", lang, err)
	}
	return &run, nil
}
