package messages

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/zulandar/starindex/internal/assets"
	"github.com/zulandar/starindex/internal/textmap"
)

// ParseContact resolves a MessageContactsConfig record. ID, Name and IconPath
// are required; type and camp must be known values when present.
func ParseContact(rec gjson.Result, text *textmap.Resolver, remap *assets.Remapper) (*Contact, error) {
	for _, field := range []string{"ID", "Name", "IconPath"} {
		if !rec.Get(field).Exists() {
			return nil, fmt.Errorf("contact record missing %s", field)
		}
	}

	c := &Contact{
		ID:       int(rec.Get("ID").Int()),
		Name:     text.Ref(rec.Get("Name")),
		IconPath: remap.Remap(rec.Get("IconPath").String()),
	}
	if sig := text.Ref(rec.Get("SignatureText")); sig != "" {
		c.Signature = &sig
	}
	if v := rec.Get("ContactsType"); v.Exists() {
		t := ContactType(v.Int())
		if _, ok := contactTypeNames[t]; !ok {
			return nil, fmt.Errorf("contact %d: unknown contacts type %d", c.ID, v.Int())
		}
		c.Type = &t
	}
	if v := rec.Get("ContactsCamp"); v.Exists() {
		camp := Camp(v.Int())
		if _, ok := campNames[camp]; !ok {
			return nil, fmt.Errorf("contact %d: unknown contacts camp %d", c.ID, v.Int())
		}
		c.Camp = &camp
	}
	return c, nil
}

// ParseMission resolves a MainMission record.
func ParseMission(rec gjson.Result, text *textmap.Resolver) (*MissionInfo, error) {
	typ, err := parseMissionType(rec.Get("Type").String())
	if err != nil {
		return nil, fmt.Errorf("mission %d: %w", rec.Get("MainMissionID").Int(), err)
	}
	return &MissionInfo{
		ID:   int(rec.Get("MainMissionID").Int()),
		Name: text.Ref(rec.Get("Name")),
		Type: typ,
	}, nil
}
