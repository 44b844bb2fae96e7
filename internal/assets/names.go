package assets

import "strings"

// replacement is one substring rewrite. Replacers are applied in order, so
// longer keys that contain shorter ones must come first.
type replacement struct {
	from, to string
}

func applyReplacements(s string, table []replacement) string {
	for _, r := range table {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

var pathNames = []replacement{
	{"Knight", "Preservation"},
	{"Pirest", "Abundance"},
	{"Priest", "Abundance"},
	{"Warrior", "Destruction"},
	{"Rogue", "Hunt"},
	{"Mage", "Erudition"},
	{"Shaman", "Harmony"},
	{"Warlock", "Nihility"},
}

var skillNames = []replacement{
	{"normal02", "basic_atk"},
	{"normal03", "basic_atk"},
	{"normal04", "basic_atk"},
	{"normal", "basic_atk"},
	{"passive", "talent"},
	{"maze", "technique"},
	{"bp02", "skill"},
	{"bp", "skill"},
	{"ultra0", "ultimateS"},
	{"ultra", "ultimate"},
}

var elementNames = []replacement{
	{"Thunder", "Lightning"},
}

// RemapPathName replaces internal path (profession) names with public ones,
// e.g. "Knight" -> "Preservation".
func RemapPathName(name string) string {
	return applyReplacements(name, pathNames)
}

// RemapSkillName replaces internal skill slot names, e.g. "bp" -> "skill".
func RemapSkillName(name string) string {
	return applyReplacements(name, skillNames)
}

// RemapElementName replaces internal element names, e.g. "Thunder" -> "Lightning".
func RemapElementName(name string) string {
	return applyReplacements(name, elementNames)
}
