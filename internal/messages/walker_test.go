package messages

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func keys(m map[int]*Node) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func TestWalk_BranchesAndSharedNodes(t *testing.T) {
	w := newFixtureWalker(t, nil)
	visited := map[int]*Node{}

	if err := w.Walk(1, 1001, visited); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if got, want := keys(visited), []int{1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("visited ids = %v, want %v", got, want)
	}
	if got := visited[2].NextIDs; !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("node 2 NextIDs = %v", got)
	}
	if got := visited[5].NextIDs; got == nil || len(got) != 0 {
		t.Errorf("terminal node NextIDs = %#v, want empty non-nil slice", got)
	}
}

func TestWalk_CycleTerminates(t *testing.T) {
	w := newFixtureWalker(t, nil)
	visited := map[int]*Node{}

	// 9 -> 10 -> 9
	if err := w.Walk(9, 1001, visited); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if got, want := keys(visited), []int{9, 10}; !reflect.DeepEqual(got, want) {
		t.Errorf("visited ids = %v, want %v", got, want)
	}
}

func TestWalk_SelfLoop(t *testing.T) {
	w := newFixtureWalker(t, map[string]string{
		"MessageItemConfig": `{"1": {"ID": 1, "Sender": "NPC", "ItemType": "Text", "MainText": {"Hash": 11}, "NextItemIDList": [1, 1], "SectionID": 1}}`,
	})
	visited := map[int]*Node{}
	if err := w.Walk(1, 1001, visited); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(visited) != 1 {
		t.Errorf("len(visited) = %d, want 1", len(visited))
	}
}

func TestWalk_Idempotent(t *testing.T) {
	w := newFixtureWalker(t, nil)

	once := map[int]*Node{}
	if err := w.Walk(1, 1001, once); err != nil {
		t.Fatal(err)
	}
	twice := map[int]*Node{}
	if err := w.Walk(1, 1001, twice); err != nil {
		t.Fatal(err)
	}
	if err := w.Walk(1, 1001, twice); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("walking the same start twice changed the accumulator")
	}
}

func TestWalk_MissingNode(t *testing.T) {
	w := newFixtureWalker(t, map[string]string{
		"MessageItemConfig": `{"1": {"ID": 1, "Sender": "NPC", "ItemType": "Text", "MainText": {"Hash": 11}, "NextItemIDList": [404], "SectionID": 1}}`,
	})
	err := w.Walk(1, 1001, map[int]*Node{})
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("err = %v, want ErrMissingReference", err)
	}
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("err = %T, want *LookupError", err)
	}
	if le.NodeID != 404 || le.ContactID != 1001 || le.Table != "MessageItemConfig" {
		t.Errorf("LookupError = %+v", le)
	}
}

func TestNode_SenderDefaulting(t *testing.T) {
	w := newFixtureWalker(t, nil)

	tests := []struct {
		name string
		id   int
		want *int
	}{
		{"npc without explicit contact", 1, intPtr(1001)},
		{"player without explicit contact", 2, nil},
		{"system without explicit contact", 5, nil},
		{"explicit contact wins", 9, intPtr(1003)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := w.Node(tt.id, 1001)
			if err != nil {
				t.Fatalf("Node: %v", err)
			}
			if !reflect.DeepEqual(node.SenderID, tt.want) {
				t.Errorf("SenderID = %v, want %v", fmtPtr(node.SenderID), fmtPtr(tt.want))
			}
		})
	}
}

func TestNode_OptionNormalization(t *testing.T) {
	w := newFixtureWalker(t, nil)

	n1, err := w.Node(1, 1001)
	if err != nil {
		t.Fatal(err)
	}
	if n1.Option != nil {
		t.Errorf("node 1 Option = %q, want nil", *n1.Option)
	}
	if n1.Text != "Hey, are you awake?" {
		t.Errorf("node 1 Text = %q", n1.Text)
	}

	n2, err := w.Node(2, 1001)
	if err != nil {
		t.Fatal(err)
	}
	if n2.Option == nil || *n2.Option != "Reply yes" {
		t.Errorf("node 2 Option = %v, want Reply yes", n2.Option)
	}
	if n2.Sender != SenderPlayer {
		t.Errorf("node 2 Sender = %q", n2.Sender)
	}
}

func TestNode_Payloads(t *testing.T) {
	w := newFixtureWalker(t, nil)

	img, err := w.Node(3, 1001)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if img.Kind != KindImage || img.Image == nil {
		t.Fatalf("image node = %+v", img)
	}
	if *img.Image != (ImageInfo{ID: 501, Path: "image/messages/Cat.png"}) {
		t.Errorf("Image = %+v", *img.Image)
	}

	st, err := w.Node(4, 1001)
	if err != nil {
		t.Fatalf("sticker: %v", err)
	}
	if *st.Sticker != (StickerInfo{ID: 601, Path: "icon/emoji/Sticker_01.png", Keywords: "Happy"}) {
		t.Errorf("Sticker = %+v", *st.Sticker)
	}

	raid, err := w.Node(6, 1001)
	if err != nil {
		t.Fatalf("raid: %v", err)
	}
	want := RaidInfo{ID: 90, Name: "Memory of Chaos", Desc: "A hard fight", Image: "image/messages/Raid01.png"}
	if *raid.Raid != want {
		t.Errorf("Raid = %+v, want %+v", *raid.Raid, want)
	}

	link, err := w.Node(7, 1001)
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if *link.Link != (LinkInfo{ID: 701, Name: "Heliobus Link", Image: "image/messages/Link_A.png", Type: "Web"}) {
		t.Errorf("Link = %+v", *link.Link)
	}

	video, err := w.Node(8, 1001)
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	if *video.Video != (VideoInfo{VideoID: 8801, Path: "video/msg_8801.usm"}) {
		t.Errorf("Video = %+v", *video.Video)
	}

	text, err := w.Node(5, 1001)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text.Image != nil || text.Sticker != nil || text.Raid != nil || text.Link != nil || text.Video != nil {
		t.Errorf("text node carries a payload: %+v", text)
	}
}

func TestNode_RaidArrayDump(t *testing.T) {
	w := newFixtureWalker(t, map[string]string{
		"RaidConfig": `[{"RaidID": 90, "HardLevel": 0, "RaidName": {"Hash": 41}, "RaidDesc": {"Hash": 42}}]`,
	})
	node, err := w.Node(6, 1001)
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if node.Raid.Name != "Memory of Chaos" {
		t.Errorf("Raid.Name = %q", node.Raid.Name)
	}
}

func TestNode_UnknownKind(t *testing.T) {
	w := newFixtureWalker(t, nil)
	_, err := w.Node(12, 1001)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
	if !strings.Contains(err.Error(), "node 12") || !strings.Contains(err.Error(), "Hologram") {
		t.Errorf("err = %q, want node id and kind", err)
	}
}

func TestNode_UnknownSender(t *testing.T) {
	w := newFixtureWalker(t, map[string]string{
		"MessageItemConfig": `{"1": {"ID": 1, "Sender": "Narrator", "ItemType": "Text", "NextItemIDList": [], "SectionID": 1}}`,
	})
	if _, err := w.Node(1, 1001); err == nil || !strings.Contains(err.Error(), "Narrator") {
		t.Fatalf("err = %v, want unknown sender", err)
	}
}

func TestNode_MissingAuxiliaryRecord(t *testing.T) {
	w := newFixtureWalker(t, nil)
	_, err := w.Node(13, 1001)
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("err = %v, want ErrMissingReference", err)
	}
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("err = %T, want *LookupError", err)
	}
	if le.Table != "MessageItemImage" || le.Key != "999" || le.NodeID != 13 {
		t.Errorf("LookupError = %+v", le)
	}
	if !strings.Contains(err.Error(), "MessageItemImage[999]") || !strings.Contains(err.Error(), "node 13") {
		t.Errorf("err = %q", err)
	}
}

func TestNode_EveryKindHasBuilder(t *testing.T) {
	for _, kind := range Kinds() {
		w := newFixtureWalker(t, map[string]string{
			"MessageItemConfig": `{"6": {"ID": 6, "Sender": "NPC", "ItemType": "` + string(kind) + `", "NextItemIDList": [], "SectionID": 1, "ItemContentID": 0}}`,
		})
		_, err := w.Node(6, 1001)
		if errors.Is(err, ErrUnknownKind) {
			t.Errorf("kind %s has no builder", kind)
		}
	}
}

func intPtr(v int) *int { return &v }

func fmtPtr(p *int) any {
	if p == nil {
		return "nil"
	}
	return *p
}
