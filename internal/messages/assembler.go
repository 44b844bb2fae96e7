package messages

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/zulandar/starindex/internal/assets"
	"github.com/zulandar/starindex/internal/textmap"
	"go.uber.org/zap"
)

// Result is the outcome of one assembly run.
type Result struct {
	// Groups holds one document per processed contact, in the order contacts
	// first appear in MessageGroupConfig.
	Groups []*Group
	// Summary is the contact metadata of every processed contact.
	Summary map[int]*Contact
}

// Assembler groups message sections by contact and walks them into documents.
type Assembler struct {
	tables   *Tables
	walker   *Walker
	text     *textmap.Resolver
	remap    *assets.Remapper
	disabled map[int]bool
	log      *zap.Logger
}

// NewAssembler returns an assembler. Contacts in disabled are left out of
// every output.
func NewAssembler(tables *Tables, text *textmap.Resolver, remap *assets.Remapper, disabled map[int]bool, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	if disabled == nil {
		disabled = map[int]bool{}
	}
	return &Assembler{
		tables:   tables,
		walker:   NewWalker(tables, text, remap),
		text:     text,
		remap:    remap,
		disabled: disabled,
		log:      log,
	}
}

// Contacts resolves every enabled contact. Records that cannot be resolved are
// logged and skipped.
func (a *Assembler) Contacts() map[int]*Contact {
	contacts := make(map[int]*Contact)
	_ = a.tables.Contacts.Each(func(key string, rec gjson.Result) error {
		c, err := ParseContact(rec, a.text, a.remap)
		if err != nil {
			a.log.Warn("skipping contact", zap.String("key", key), zap.Error(err))
			return nil
		}
		if a.disabled[c.ID] {
			a.log.Debug("contact disabled", zap.Int("contact", c.ID))
			return nil
		}
		contacts[c.ID] = c
		return nil
	})
	return contacts
}

// groupIndex maps contact id to its group ids in table order, and returns the
// contact ids in order of first appearance.
func (a *Assembler) groupIndex() (map[int][]int, []int) {
	index := make(map[int][]int)
	var order []int
	_ = a.tables.Groups.Each(func(_ string, rec gjson.Result) error {
		contactID := int(rec.Get("MessageContactsID").Int())
		if _, ok := index[contactID]; !ok {
			order = append(order, contactID)
		}
		index[contactID] = append(index[contactID], int(rec.Get("ID").Int()))
		return nil
	})
	return index, order
}

// Assemble builds the document of every enabled contact that owns at least
// one group. Any failed lookup aborts the run.
func (a *Assembler) Assemble() (*Result, error) {
	contacts := a.Contacts()
	index, order := a.groupIndex()

	res := &Result{Summary: make(map[int]*Contact)}
	total := len(order)
	for i, contactID := range order {
		if a.disabled[contactID] {
			continue
		}
		progress := fmt.Sprintf("%d/%d", i+1, total)
		info, ok := contacts[contactID]
		if !ok {
			return nil, &LookupError{Table: a.tables.Contacts.Name, Key: strconv.Itoa(contactID), ContactID: contactID}
		}

		group := &Group{ID: contactID, Sections: [][]*Section{}, Info: info}
		for _, groupID := range index[contactID] {
			sections, err := a.groupSections(groupID, contactID, progress)
			if err != nil {
				return nil, err
			}
			group.Sections = append(group.Sections, sections)
		}

		a.log.Info("assembled contact",
			zap.Int("contact", contactID),
			zap.Int("groups", len(group.Sections)),
			zap.String("progress", progress))
		res.Groups = append(res.Groups, group)
		res.Summary[contactID] = info
	}
	return res, nil
}

func (a *Assembler) groupSections(groupID, contactID int, progress string) ([]*Section, error) {
	raw, err := a.tables.Groups.Lookup(groupID)
	if err != nil {
		return nil, &LookupError{Table: a.tables.Groups.Name, Key: strconv.Itoa(groupID), ContactID: contactID, Err: err}
	}
	sectionIDs := raw.Get("MessageSectionIDList").Array()
	if len(sectionIDs) > 1 {
		a.log.Warn("group has more than one section",
			zap.Int("contact", contactID),
			zap.Int("group", groupID),
			zap.Int("sections", len(sectionIDs)),
			zap.String("progress", progress))
	}

	sections := make([]*Section, 0, len(sectionIDs))
	for _, sid := range sectionIDs {
		section, err := a.Section(int(sid.Int()), contactID)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// Section builds one section, walking all of its start ids into a single
// shared accumulator.
func (a *Assembler) Section(sectionID, contactID int) (*Section, error) {
	raw, err := a.tables.Sections.Lookup(sectionID)
	if err != nil {
		return nil, &LookupError{Table: a.tables.Sections.Name, Key: strconv.Itoa(sectionID), ContactID: contactID, Err: err}
	}

	section := &Section{
		ID:       int(raw.Get("ID").Int()),
		StartIDs: []int{},
		Messages: make(map[int]*Node),
	}
	raw.Get("StartMessageItemIDList").ForEach(func(_, v gjson.Result) bool {
		section.StartIDs = append(section.StartIDs, int(v.Int()))
		return true
	})

	if link := raw.Get("MainMissionLink"); link.Exists() {
		mission, err := a.tables.Missions.Get(link.String())
		if err != nil {
			return nil, &LookupError{Table: a.tables.Missions.Name, Key: link.String(), ContactID: contactID, Err: err}
		}
		section.Mission, err = ParseMission(mission, a.text)
		if err != nil {
			return nil, fmt.Errorf("messages: section %d: %w", sectionID, err)
		}
	}

	for _, start := range section.StartIDs {
		before := len(section.Messages)
		if err := a.walker.Walk(start, contactID, section.Messages); err != nil {
			return nil, err
		}
		a.log.Debug("walked start message",
			zap.Int("contact", contactID),
			zap.Int("section", section.ID),
			zap.Int("start", start),
			zap.Int("added", len(section.Messages)-before))
	}
	return section, nil
}
