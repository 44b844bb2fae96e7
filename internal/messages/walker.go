package messages

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/zulandar/starindex/internal/assets"
	"github.com/zulandar/starindex/internal/records"
	"github.com/zulandar/starindex/internal/textmap"
)

// Walker resolves dialogue graphs into typed nodes.
type Walker struct {
	tables *Tables
	text   *textmap.Resolver
	remap  *assets.Remapper
}

// NewWalker returns a walker reading tables, resolving text with text and
// asset paths with remap.
func NewWalker(tables *Tables, text *textmap.Resolver, remap *assets.Remapper) *Walker {
	return &Walker{tables: tables, text: text, remap: remap}
}

// Walk resolves every node reachable from startID and stores it in visited,
// keyed by node id. Ids already in visited are not resolved again, so graphs
// with back-edges terminate and several start ids may share one accumulator.
// Successors are visited depth-first in declared order.
func (w *Walker) Walk(startID, contactID int, visited map[int]*Node) error {
	stack := []int{startID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[id]; ok {
			continue
		}

		node, err := w.Node(id, contactID)
		if err != nil {
			return err
		}
		visited[id] = node

		for i := len(node.NextIDs) - 1; i >= 0; i-- {
			if _, ok := visited[node.NextIDs[i]]; !ok {
				stack = append(stack, node.NextIDs[i])
			}
		}
	}
	return nil
}

// Node builds a single node from its MessageItemConfig record.
func (w *Walker) Node(id, contactID int) (*Node, error) {
	rec, err := w.tables.Items.Lookup(id)
	if err != nil {
		return nil, &LookupError{Table: w.tables.Items.Name, Key: strconv.Itoa(id), NodeID: id, ContactID: contactID, Err: err}
	}

	node, err := w.base(id, rec, contactID)
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case KindText:
	case KindImage:
		err = w.attachImage(node, rec, contactID)
	case KindSticker:
		err = w.attachSticker(node, rec, contactID)
	case KindRaid:
		err = w.attachRaid(node, contactID)
	case KindLink:
		err = w.attachLink(node, rec, contactID)
	case KindVideo:
		err = w.attachVideo(node, rec, contactID)
	default:
		return nil, fmt.Errorf("messages: node %d (contact %d): %w %q", id, contactID, ErrUnknownKind, node.Kind)
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

// base fills the fields shared by every kind.
func (w *Walker) base(id int, rec gjson.Result, contactID int) (*Node, error) {
	sender, err := parseSender(rec.Get("Sender").String())
	if err != nil {
		return nil, fmt.Errorf("messages: node %d (contact %d): %w", id, contactID, err)
	}

	node := &Node{
		ID:        id,
		SectionID: int(rec.Get("SectionID").Int()),
		Kind:      Kind(rec.Get("ItemType").String()),
		Sender:    sender,
		Text:      w.text.Ref(rec.Get("MainText")),
		NextIDs:   []int{},
	}
	if v := rec.Get("ID"); v.Exists() {
		node.ID = int(v.Int())
	}
	if option := w.text.Ref(rec.Get("OptionText")); option != "" {
		node.Option = &option
	}

	switch explicit := rec.Get("ContactsID"); {
	case explicit.Exists() && explicit.Type != gjson.Null:
		sid := int(explicit.Int())
		node.SenderID = &sid
	case sender == SenderNPC:
		sid := contactID
		node.SenderID = &sid
	}

	rec.Get("NextItemIDList").ForEach(func(_, next gjson.Result) bool {
		node.NextIDs = append(node.NextIDs, int(next.Int()))
		return true
	})
	return node, nil
}

func (w *Walker) contentID(rec gjson.Result) string {
	return rec.Get("ItemContentID").String()
}

func lookup(tbl *records.Table, key string, node *Node, contactID int) (gjson.Result, error) {
	rec, err := tbl.Get(key)
	if err != nil {
		return gjson.Result{}, &LookupError{Table: tbl.Name, Key: key, NodeID: node.ID, ContactID: contactID, Err: err}
	}
	return rec, nil
}

func (w *Walker) attachImage(node *Node, rec gjson.Result, contactID int) error {
	img, err := lookup(w.tables.Images, w.contentID(rec), node, contactID)
	if err != nil {
		return err
	}
	node.Image = &ImageInfo{
		ID:   int(img.Get("ID").Int()),
		Path: w.remap.Remap(img.Get("ImagePath").String()),
	}
	return nil
}

func (w *Walker) attachSticker(node *Node, rec gjson.Result, contactID int) error {
	emoji, err := lookup(w.tables.Emojis, w.contentID(rec), node, contactID)
	if err != nil {
		return err
	}
	node.Sticker = &StickerInfo{
		ID:       int(emoji.Get("EmojiID").Int()),
		Path:     w.remap.Remap(emoji.Get("EmojiPath").String()),
		Keywords: w.text.Ref(emoji.Get("KeyWords")),
	}
	return nil
}

// attachRaid resolves the raid entrance keyed by the node's own id, then the
// raid it points at. Raid records are nested by difficulty; level "0" is used.
func (w *Walker) attachRaid(node *Node, contactID int) error {
	entrance, err := lookup(w.tables.RaidEntrances, strconv.Itoa(node.ID), node, contactID)
	if err != nil {
		return err
	}
	raidKey := entrance.Get("RaidID").String()
	raid, err := lookup(w.tables.Raids, raidKey, node, contactID)
	if err != nil {
		return err
	}
	if !raid.Get("RaidID").Exists() {
		level := raid.Get("0")
		if !level.Exists() {
			return &LookupError{Table: w.tables.Raids.Name, Key: raidKey + ".0", NodeID: node.ID, ContactID: contactID}
		}
		raid = level
	}
	node.Raid = &RaidInfo{
		ID:    int(raid.Get("RaidID").Int()),
		Name:  w.text.Ref(raid.Get("RaidName")),
		Desc:  w.text.Ref(raid.Get("RaidDesc")),
		Image: w.remap.Remap(entrance.Get("ImagePath").String()),
	}
	return nil
}

func (w *Walker) attachLink(node *Node, rec gjson.Result, contactID int) error {
	link, err := lookup(w.tables.Links, w.contentID(rec), node, contactID)
	if err != nil {
		return err
	}
	node.Link = &LinkInfo{
		ID:    int(link.Get("ID").Int()),
		Name:  w.text.Ref(link.Get("Title")),
		Image: w.remap.Remap(link.Get("ImagePath").String()),
		Type:  link.Get("Type").String(),
	}
	return nil
}

func (w *Walker) attachVideo(node *Node, rec gjson.Result, contactID int) error {
	video, err := lookup(w.tables.Videos, w.contentID(rec), node, contactID)
	if err != nil {
		return err
	}
	node.Video = &VideoInfo{
		VideoID: int(video.Get("VideoID").Int()),
		Path:    w.remap.Remap(video.Get("VideoPath").String()),
	}
	return nil
}
