package catalog

import "time"

// GenerationRun records one language run published to the catalog.
type GenerationRun struct {
	ID         string `gorm:"primaryKey;size:36"`
	Language   string `gorm:"size:16;not null;index"`
	Contacts   int
	Sections   int
	Messages   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// ContactRow is the catalog copy of one summary entry.
type ContactRow struct {
	Language  string  `gorm:"primaryKey;size:16"`
	ContactID int     `gorm:"primaryKey;autoIncrement:false"`
	Name      string  `gorm:"size:256"`
	Signature *string `gorm:"type:text"`
	IconPath  string  `gorm:"size:512"`
	Type      *string `gorm:"size:32"`
	Camp      *string `gorm:"size:32"`
	RunID     string  `gorm:"size:36;index"`
}

// ThreadRow stores the full conversation document of one contact.
type ThreadRow struct {
	Language  string `gorm:"primaryKey;size:16"`
	ContactID int    `gorm:"primaryKey;autoIncrement:false"`
	Document  string `gorm:"type:longtext"`
	RunID     string `gorm:"size:36;index"`
}

// AllModels returns every catalog model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&GenerationRun{},
		&ContactRow{},
		&ThreadRow{},
	}
}
