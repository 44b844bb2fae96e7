// Package assets rewrites internal sprite paths into public asset paths and
// checks that generated documents only reference assets that exist.
package assets

import (
	"path"
	"strings"

	"go.uber.org/zap"
)

// RemapOption adjusts a single Remap call.
type RemapOption func(*remapOptions)

type remapOptions struct {
	forceInitial string
	itemID       string
}

// WithForceInitial replaces the "item" directory of item icons, e.g. "relic".
func WithForceInitial(dir string) RemapOption {
	return func(o *remapOptions) { o.forceInitial = dir }
}

// WithItemID names mission emoji after the owning item instead of the sprite.
func WithItemID(id string) RemapOption {
	return func(o *remapOptions) { o.itemID = id }
}

// rule rewrites paths starting with prefix. Rules are evaluated in order and
// the first match wins.
type rule struct {
	prefix string
	apply  func(p string, opts remapOptions) string
}

func replaceWith(from, to string) func(string, remapOptions) string {
	return func(p string, _ remapOptions) string {
		return strings.ReplaceAll(p, from, to)
	}
}

// between returns the text between the first and second occurrence of sep,
// minus its first character (normally a path separator).
func between(s, sep string) string {
	parts := strings.SplitN(s, sep, 3)
	if len(parts) < 2 || parts[1] == "" {
		return ""
	}
	return parts[1][1:]
}

// defaultRules is the ordered remapping table. Several prefixes are prefixes
// of later ones, so the order is significant.
var defaultRules = []rule{
	// Simulated Universe
	{"SpriteOutput/Rogue/Buff/", replaceWith("SpriteOutput/Rogue/Buff/", "icon/rogue/blessings/")},
	{"SpriteOutput/ItemIcon/", func(p string, o remapOptions) string {
		if o.forceInitial != "" {
			return strings.ReplaceAll(p, "SpriteOutput/ItemIcon/", "icon/"+o.forceInitial+"/")
		}
		return strings.ReplaceAll(p, "SpriteOutput/ItemIcon/", "icon/item/")
	}},
	{"SpriteOutput/AvatarProfessionTattoo/Profession/", func(p string, _ remapOptions) string {
		p = strings.ReplaceAll(p, "SpriteOutput/AvatarProfessionTattoo/Profession/BgPathsn", "icon/rogue/blessings/RogueIntervene")
		return strings.ReplaceAll(p, "SpriteOutput/AvatarProfessionTattoo/Profession/BgPaths", "icon/rogue/blessings/RogueIntervene")
	}},
	{"SpriteOutput/ProfessionIconMiddle/IconProfession", func(p string, _ remapOptions) string {
		p = strings.ReplaceAll(p, "SpriteOutput/ProfessionIconMiddle/IconProfession", "icon/path/")
		p = strings.ReplaceAll(p, "Middle", "")
		return RemapPathName(p)
	}},
	{"SpriteOutput/Rogue/MiracleIcon/", replaceWith("SpriteOutput/Rogue/MiracleIcon/", "icon/rogue/curios/")},
	{"SpriteOutput/Rogue/Map/", func(p string, _ remapOptions) string {
		p = strings.ReplaceAll(p, "SpriteOutput/Rogue/Map/", "icon/rogue/room/")
		if strings.Contains(p, "RogueDlc") {
			if strings.Contains(p, "RandomIcon") {
				p = strings.ReplaceAll(p, "RandomIcon", "RandomSwarmIcon")
			}
			if strings.Contains(p, "BossIcon") {
				p = strings.ReplaceAll(p, "BossIcon", "BossSwarmIcon")
			}
		}
		// The DLC marker contains the generic one.
		p = strings.ReplaceAll(p, "/RogueDlc", "/")
		return strings.ReplaceAll(p, "/Rogue", "/")
	}},

	// Messages
	{"SpriteOutput/AvatarRoundIcon/UI_Message_Contacts", func(p string, _ remapOptions) string {
		return "icon/avatar/" + between(p, "UI_Message_Contacts")
	}},
	{"SpriteOutput/AvatarRoundIcon/Series/", replaceWith("SpriteOutput/AvatarRoundIcon/Series/", "icon/avatar/")},
	{"SpriteOutput/AvatarRoundIcon", func(p string, _ remapOptions) string {
		p = between(p, "AvatarRoundIcon")
		p = strings.ReplaceAll(p, "UI_Message_Group_", "Group")
		if strings.HasPrefix(p, "UI_Message_") {
			p = strings.SplitN(p, "UI_Message_", 3)[1]
		}
		return "icon/avatar/" + p
	}},
	{"SpriteOutput/MonsterRoundIcon/", replaceWith("SpriteOutput/MonsterRoundIcon/", "icon/avatar/")},
	{"SpriteOutput/Emoji/", func(p string, o remapOptions) string {
		if strings.HasPrefix(p, "SpriteOutput/Emoji/Mission/") {
			if o.itemID != "" {
				return "icon/emoji/" + o.itemID + ".png"
			}
			return strings.ReplaceAll(p, "SpriteOutput/Emoji/Mission/", "icon/emoji/Mission")
		}
		return strings.ReplaceAll(p, "SpriteOutput/Emoji/", "icon/emoji/")
	}},
	{"SpriteOutput/PhoneMessagePic/", func(p string, _ remapOptions) string {
		p = strings.ReplaceAll(p, "SpriteOutput/PhoneMessagePic/PhoneMessagePic_", "image/messages/")
		return strings.ReplaceAll(p, "SpriteOutput/PhoneMessagePic/PhoneMessagePic", "image/messages/E")
	}},
	{"SpriteOutput/PhoneMessageChallenge/PhoneMessageChallenge_", replaceWith("SpriteOutput/PhoneMessageChallenge/PhoneMessageChallenge_", "image/messages/Raid")},
	{"SpriteOutput/Quest/GuessTheSilhouette/", replaceWith("SpriteOutput/Quest/GuessTheSilhouette/", "image/messages/March")},
	{"SpriteOutput/Quest/Heliobus/PhoneMessageHeliobus", replaceWith("SpriteOutput/Quest/Heliobus/PhoneMessageHeliobus/", "image/messages/Link_")},

	// Characters
	{"SpriteOutput/SkillIcons/", func(p string, _ remapOptions) string {
		name := strings.ToLower(strings.ReplaceAll(path.Base(p), "SkillIcon_", ""))
		return "icon/skill/" + RemapSkillName(name)
	}},

	// Properties
	{"SpriteOutput/UI/Avatar/Icon/", replaceWith("SpriteOutput/UI/Avatar/Icon/", "icon/property/")},

	// Aetherium Wars
	{"SpriteOutput/Quest/AetherDivide", replaceWith(
		"SpriteOutput/Quest/AetherDivide/AssembleSkill/Icon/IconAetherDivideAssembleSkill",
		"icon/aether/assemble_skills/AssembleSkill",
	)},
}

// Remapper applies an ordered rule list to asset paths.
type Remapper struct {
	rules []rule
	log   *zap.Logger
}

// NewRemapper returns a Remapper using defaultRules. Unhandled sprite paths
// are reported to log at warn level; log may be nil.
func NewRemapper(log *zap.Logger) *Remapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Remapper{rules: defaultRules, log: log}
}

// Remap rewrites p with the first matching rule. Paths no rule matches are
// returned unchanged.
func (r *Remapper) Remap(p string, opts ...RemapOption) string {
	var o remapOptions
	for _, opt := range opts {
		opt(&o)
	}
	for _, rl := range r.rules {
		if strings.HasPrefix(p, rl.prefix) {
			return rl.apply(p, o)
		}
	}
	if strings.HasPrefix(strings.ToLower(p), "spriteoutput/") {
		r.log.Warn("unhandled asset path", zap.String("path", p))
	}
	return p
}
