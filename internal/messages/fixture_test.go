package messages

import (
	"testing"

	"github.com/zulandar/starindex/internal/assets"
	"github.com/zulandar/starindex/internal/records"
	"github.com/zulandar/starindex/internal/textmap"
)

// fixtureTables are a small but complete message dump. Contact 1001 owns two
// groups, 1002 is disabled in most tests, 1003 has an incomplete record.
var fixtureTables = map[string]string{
	"MessageItemConfig": `{
		"1":  {"ID": 1, "Sender": "NPC", "ItemType": "Text", "MainText": {"Hash": 11}, "OptionText": {"Hash": 371857150}, "NextItemIDList": [2], "SectionID": 100},
		"2":  {"ID": 2, "Sender": "Player", "ItemType": "Text", "MainText": {"Hash": 12}, "OptionText": {"Hash": 13}, "NextItemIDList": [3, 4], "SectionID": 100},
		"3":  {"ID": 3, "Sender": "NPC", "ItemType": "Image", "MainText": {"Hash": 0}, "OptionText": {"Hash": 0}, "NextItemIDList": [5], "SectionID": 100, "ItemContentID": 501},
		"4":  {"ID": 4, "Sender": "NPC", "ItemType": "Sticker", "MainText": {"Hash": 0}, "OptionText": {"Hash": 0}, "NextItemIDList": [5], "SectionID": 100, "ItemContentID": 601},
		"5":  {"ID": 5, "Sender": "System", "ItemType": "Text", "MainText": {"Hash": 14}, "OptionText": {"Hash": 0}, "NextItemIDList": [], "SectionID": 100},
		"6":  {"ID": 6, "Sender": "NPC", "ItemType": "Raid", "MainText": {"Hash": 15}, "OptionText": {"Hash": 0}, "NextItemIDList": [7], "SectionID": 200},
		"7":  {"ID": 7, "Sender": "NPC", "ItemType": "Link", "MainText": {"Hash": 0}, "OptionText": {"Hash": 0}, "NextItemIDList": [8], "SectionID": 200, "ItemContentID": 701},
		"8":  {"ID": 8, "Sender": "PlayerAuto", "ItemType": "Video", "MainText": {"Hash": 0}, "OptionText": {"Hash": 0}, "NextItemIDList": [], "SectionID": 200, "ItemContentID": 801},
		"9":  {"ID": 9, "Sender": "NPC", "ItemType": "Text", "MainText": {"Hash": 16}, "OptionText": {"Hash": 0}, "NextItemIDList": [10], "SectionID": 300, "ContactsID": 1003},
		"10": {"ID": 10, "Sender": "Player", "ItemType": "Text", "MainText": {"Hash": 17}, "OptionText": {"Hash": 0}, "NextItemIDList": [9], "SectionID": 300},
		"11": {"ID": 11, "Sender": "NPC", "ItemType": "Text", "MainText": {"Hash": 18}, "OptionText": {"Hash": 0}, "NextItemIDList": [], "SectionID": 400},
		"12": {"ID": 12, "Sender": "NPC", "ItemType": "Hologram", "MainText": {"Hash": 0}, "OptionText": {"Hash": 0}, "NextItemIDList": [], "SectionID": 500},
		"13": {"ID": 13, "Sender": "NPC", "ItemType": "Image", "MainText": {"Hash": 0}, "OptionText": {"Hash": 0}, "NextItemIDList": [], "SectionID": 500, "ItemContentID": 999}
	}`,
	"MessageSectionConfig": `{
		"100": {"ID": 100, "StartMessageItemIDList": [1]},
		"200": {"ID": 200, "StartMessageItemIDList": [6], "MainMissionLink": 4001},
		"300": {"ID": 300, "StartMessageItemIDList": [9, 10]},
		"400": {"ID": 400, "StartMessageItemIDList": [11]}
	}`,
	"MessageGroupConfig": `{
		"10": {"ID": 10, "MessageContactsID": 1001, "MessageSectionIDList": [100]},
		"20": {"ID": 20, "MessageContactsID": 1002, "MessageSectionIDList": [400]},
		"30": {"ID": 30, "MessageContactsID": 1001, "MessageSectionIDList": [200, 300]}
	}`,
	"MessageContactsConfig": `{
		"1001": {"ID": 1001, "Name": {"Hash": 21}, "SignatureText": {"Hash": 22}, "IconPath": "SpriteOutput/AvatarRoundIcon/UI_Message_Contacts/March.png", "ContactsType": 1, "ContactsCamp": 1},
		"1002": {"ID": 1002, "Name": {"Hash": 23}, "SignatureText": {"Hash": 0}, "IconPath": "SpriteOutput/AvatarRoundIcon/1002.png", "ContactsType": 2},
		"1003": {"ID": 1003, "SignatureText": {"Hash": 0}, "IconPath": "SpriteOutput/AvatarRoundIcon/1003.png"}
	}`,
	"MessageItemImage":        `{"501": {"ID": 501, "ImagePath": "SpriteOutput/PhoneMessagePic/PhoneMessagePic_Cat.png"}}`,
	"EmojiConfig":             `{"601": {"EmojiID": 601, "KeyWords": {"Hash": 31}, "EmojiPath": "SpriteOutput/Emoji/Sticker_01.png"}}`,
	"MessageItemRaidEntrance": `{"6": {"ID": 6, "RaidID": 90, "ImagePath": "SpriteOutput/PhoneMessageChallenge/PhoneMessageChallenge_01.png"}}`,
	"RaidConfig":              `{"90": {"0": {"RaidID": 90, "RaidName": {"Hash": 41}, "RaidDesc": {"Hash": 42}}}}`,
	"MainMission":             `{"4001": {"MainMissionID": 4001, "Name": {"Hash": 51}, "Type": "Companion"}}`,
	"MessageItemLink":         `{"701": {"ID": 701, "Title": {"Hash": 61}, "ImagePath": "SpriteOutput/Quest/Heliobus/PhoneMessageHeliobus/A.png", "Type": "Web"}}`,
	"MessageItemVideo":        `{"801": {"ID": 801, "VideoID": 8801, "VideoPath": "video/msg_8801.usm"}}`,
}

var fixtureText = map[string]string{
	"11": "Hey, are you awake?",
	"12": "Yes",
	"13": "Reply yes",
	"14": "March joined the chat",
	"15": "Try this challenge",
	"16": "Loop A",
	"17": "Loop B",
	"18": "Disabled hello",
	"21": "March 7th",
	"22": "Photos!",
	"23": "Pom-Pom",
	"31": "Happy",
	"41": "Memory of Chaos",
	"42": "A hard fight",
	"51": "Companion Quest",
	"61": "Heliobus Link",
}

func mustTable(t *testing.T, name, keyField string, tables map[string]string) *records.Table {
	t.Helper()
	tbl, err := records.Parse(name, []byte(tables[name]), keyField)
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return tbl
}

func newFixtureTables(t *testing.T, overrides map[string]string) *Tables {
	t.Helper()
	src := make(map[string]string, len(fixtureTables))
	for k, v := range fixtureTables {
		src[k] = v
	}
	for k, v := range overrides {
		src[k] = v
	}
	return &Tables{
		Items:         mustTable(t, "MessageItemConfig", "ID", src),
		Sections:      mustTable(t, "MessageSectionConfig", "ID", src),
		Groups:        mustTable(t, "MessageGroupConfig", "ID", src),
		Contacts:      mustTable(t, "MessageContactsConfig", "ID", src),
		Images:        mustTable(t, "MessageItemImage", "ID", src),
		Emojis:        mustTable(t, "EmojiConfig", "EmojiID", src),
		RaidEntrances: mustTable(t, "MessageItemRaidEntrance", "ID", src),
		Raids:         mustTable(t, "RaidConfig", "RaidID", src),
		Missions:      mustTable(t, "MainMission", "MainMissionID", src),
		Links:         mustTable(t, "MessageItemLink", "ID", src),
		Videos:        mustTable(t, "MessageItemVideo", "ID", src),
	}
}

func newFixtureResolver(t *testing.T) *textmap.Resolver {
	t.Helper()
	r, err := textmap.NewAssets(map[string]map[string]string{"en": fixtureText}).Resolver("en")
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func newFixtureWalker(t *testing.T, overrides map[string]string) *Walker {
	t.Helper()
	return NewWalker(newFixtureTables(t, overrides), newFixtureResolver(t), assets.NewRemapper(nil))
}
