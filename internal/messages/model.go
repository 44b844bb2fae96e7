// Package messages rebuilds per-contact phone conversations from the flat
// message configuration tables of a game data dump.
package messages

import (
	"encoding/json"
	"fmt"
)

// Kind is the payload kind of a dialogue node.
type Kind string

const (
	KindText    Kind = "Text"
	KindImage   Kind = "Image"
	KindSticker Kind = "Sticker"
	KindRaid    Kind = "Raid"
	KindLink    Kind = "Link"
	KindVideo   Kind = "Video"
)

// Kinds lists every payload kind the walker can build.
func Kinds() []Kind {
	return []Kind{KindText, KindImage, KindSticker, KindRaid, KindLink, KindVideo}
}

// Sender is who sends a dialogue node.
type Sender string

const (
	// SenderPlayer is sent manually by the player picking an option.
	SenderPlayer Sender = "Player"
	// SenderPlayerAuto is sent automatically as the player's reply.
	SenderPlayerAuto Sender = "PlayerAuto"
	SenderNPC        Sender = "NPC"
	SenderSystem     Sender = "System"
)

func parseSender(s string) (Sender, error) {
	switch Sender(s) {
	case SenderPlayer, SenderPlayerAuto, SenderNPC, SenderSystem:
		return Sender(s), nil
	}
	return "", fmt.Errorf("unknown sender %q", s)
}

// ImageInfo is the payload of an Image node.
type ImageInfo struct {
	ID   int    `json:"id"`
	Path string `json:"path"`
}

// StickerInfo is the payload of a Sticker node.
type StickerInfo struct {
	ID       int    `json:"id"`
	Path     string `json:"path"`
	Keywords string `json:"keywords"`
}

// RaidInfo is the payload of a Raid node.
type RaidInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	Image string `json:"image"`
}

// LinkInfo is the payload of a Link node.
type LinkInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Type  string `json:"type"`
}

// VideoInfo is the payload of a Video node.
type VideoInfo struct {
	VideoID int    `json:"videoId"`
	Path    string `json:"path"`
}

// Node is one message turn. Exactly the payload matching Kind is set; Text
// nodes carry none.
type Node struct {
	ID        int     `json:"id"`
	SectionID int     `json:"sectionId"`
	SenderID  *int    `json:"senderId"`
	Kind      Kind    `json:"kind"`
	Sender    Sender  `json:"sender"`
	Text      string  `json:"text"`
	Option    *string `json:"option"`
	NextIDs   []int   `json:"nextIds"`

	Image   *ImageInfo   `json:"image,omitempty"`
	Sticker *StickerInfo `json:"sticker,omitempty"`
	Raid    *RaidInfo    `json:"raid,omitempty"`
	Link    *LinkInfo    `json:"link,omitempty"`
	Video   *VideoInfo   `json:"video,omitempty"`
}

// MissionType tags the quest line gating a section.
type MissionType string

const (
	MissionMain      MissionType = "Main"
	MissionDaily     MissionType = "Daily"
	MissionBranch    MissionType = "Branch"
	MissionCompanion MissionType = "Companion"
	MissionGap       MissionType = "Gap"
)

func parseMissionType(s string) (MissionType, error) {
	switch MissionType(s) {
	case MissionMain, MissionDaily, MissionBranch, MissionCompanion, MissionGap:
		return MissionType(s), nil
	}
	return "", fmt.Errorf("unknown mission type %q", s)
}

// MissionInfo identifies the quest a section is unlocked by.
type MissionInfo struct {
	ID   int         `json:"id"`
	Name string      `json:"name"`
	Type MissionType `json:"type"`
}

// Section is a set of start points sharing one mission gate. Messages holds
// every node reachable from any start id.
type Section struct {
	ID       int           `json:"id"`
	StartIDs []int         `json:"startIds"`
	Messages map[int]*Node `json:"messages"`
	Mission  *MissionInfo  `json:"mission,omitempty"`
}

// ContactType groups contacts in the phone UI.
type ContactType int

const (
	ContactCharacters ContactType = 1
	ContactOthers     ContactType = 2
	ContactGroupChats ContactType = 3
)

var contactTypeNames = map[ContactType]string{
	ContactCharacters: "Characters",
	ContactOthers:     "Others",
	ContactGroupChats: "GroupChats",
}

func (t ContactType) String() string {
	if name, ok := contactTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ContactType(%d)", int(t))
}

// MarshalJSON encodes the type by name.
func (t ContactType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Camp is the faction a contact belongs to.
type Camp int

const (
	CampAstralExpress    Camp = 1
	CampHertaSpace       Camp = 2
	CampJariloVI         Camp = 3
	CampXianzhouLoufu    Camp = 4
	CampStellaronHunters Camp = 5
	CampIPC              Camp = 6
	CampOthers           Camp = 99
)

var campNames = map[Camp]string{
	CampAstralExpress:    "AstralExpress",
	CampHertaSpace:       "HertaSpace",
	CampJariloVI:         "JariloVI",
	CampXianzhouLoufu:    "XianzhouLoufu",
	CampStellaronHunters: "StellaronHunters",
	CampIPC:              "IPC",
	CampOthers:           "Others",
}

func (c Camp) String() string {
	if name, ok := campNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Camp(%d)", int(c))
}

// MarshalJSON encodes the camp by name.
func (c Camp) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Contact is a conversation participant.
type Contact struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Signature *string      `json:"signature"`
	IconPath  string       `json:"iconPath"`
	Type      *ContactType `json:"type"`
	Camp      *Camp        `json:"camp"`
}

// Group is the output document of one contact: every conversation thread it
// owns, in declared group order.
type Group struct {
	ID       int          `json:"id"`
	Sections [][]*Section `json:"sections"`
	Info     *Contact     `json:"info"`
}
