package textfmt

import (
	"regexp"
	"strings"
)

// DefaultSimpleTags are the attribute-less Unity tags removed by StripRichText.
var DefaultSimpleTags = []string{"b", "i", "unbreak", "s", "u", "lowercase", "uppercase", "smallcaps", "nobr", "sup"}

var (
	sizeTag     = regexp.MustCompile(`<size=\d+>(.+?)</size>`)
	colorTag    = regexp.MustCompile(`<color=#?\w+>(.+?)</color>`)
	materialTag = regexp.MustCompile(`<material=\d+>(.+?)</material>`)
)

// StripRichText removes Unity rich-text markup and turns escaped "\n"
// sequences into newlines. When onlyTags is empty DefaultSimpleTags is used.
func StripRichText(text string, onlyTags ...string) string {
	tags := onlyTags
	if len(tags) == 0 {
		tags = DefaultSimpleTags
	}
	for _, tag := range tags {
		text = strings.ReplaceAll(text, "<"+tag+">", "")
		text = strings.ReplaceAll(text, "</"+tag+">", "")
	}
	for _, re := range []*regexp.Regexp{sizeTag, colorTag, materialTag} {
		text = re.ReplaceAllString(text, "$1")
	}
	return strings.ReplaceAll(text, `\n`, "\n")
}
