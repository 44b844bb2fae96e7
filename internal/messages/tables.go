package messages

import (
	"errors"
	"io/fs"

	"github.com/zulandar/starindex/internal/records"
	"go.uber.org/zap"
)

// Tables are the configuration tables the walker and assembler read.
type Tables struct {
	Items         *records.Table // MessageItemConfig
	Sections      *records.Table // MessageSectionConfig
	Groups        *records.Table // MessageGroupConfig
	Contacts      *records.Table // MessageContactsConfig
	Images        *records.Table // MessageItemImage
	Emojis        *records.Table // EmojiConfig
	RaidEntrances *records.Table // MessageItemRaidEntrance
	Raids         *records.Table // RaidConfig
	Missions      *records.Table // MainMission
	Links         *records.Table // MessageItemLink
	Videos        *records.Table // MessageItemVideo
}

type tableSpec struct {
	name     string
	keyField string
	optional bool
	dst      **records.Table
}

// LoadTables reads every message table from store. Link and video tables are
// absent from older dumps; a missing file yields an empty table.
func LoadTables(store *records.Store, log *zap.Logger) (*Tables, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tables{}
	specs := []tableSpec{
		{"MessageItemConfig", "ID", false, &t.Items},
		{"MessageSectionConfig", "ID", false, &t.Sections},
		{"MessageGroupConfig", "ID", false, &t.Groups},
		{"MessageContactsConfig", "ID", false, &t.Contacts},
		{"MessageItemImage", "ID", false, &t.Images},
		{"EmojiConfig", "EmojiID", false, &t.Emojis},
		{"MessageItemRaidEntrance", "ID", false, &t.RaidEntrances},
		{"RaidConfig", "RaidID", false, &t.Raids},
		{"MainMission", "MainMissionID", false, &t.Missions},
		{"MessageItemLink", "ID", true, &t.Links},
		{"MessageItemVideo", "ID", true, &t.Videos},
	}
	for _, s := range specs {
		tbl, err := store.Load(s.name, s.keyField)
		if err != nil {
			if s.optional && errors.Is(err, fs.ErrNotExist) {
				log.Debug("optional table absent", zap.String("table", s.name))
				tbl, _ = records.Parse(s.name, []byte("{}"), s.keyField)
			} else {
				return nil, err
			}
		}
		*s.dst = tbl
	}
	return t, nil
}
