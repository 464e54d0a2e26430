package query

import (
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
)

// shorthandTypes maps keyword prefixes to work item types, so "bug-123"
// searches for "123" among Bugs.
var shorthandTypes = map[string]string{
	"bug":     domain.TypeBug,
	"task":    domain.TypeTask,
	"story":   domain.TypeUserStory,
	"us":      domain.TypeUserStory,
	"feature": domain.TypeFeature,
	"epic":    domain.TypeEpic,
}

// ParseShorthand splits a "<prefix>-<rest>" keyword into a work item type
// and the residual keyword. Unrecognized prefixes fall through unchanged
// as a plain substring keyword. A leading "#" is dropped so "#123" and
// "bug-#123" resolve to the numeric id 123.
func ParseShorthand(keyword string) (itemType, residual string) {
	keyword = trimIDMarker(keyword)
	prefix, rest, found := strings.Cut(keyword, "-")
	if !found {
		return "", keyword
	}
	t, ok := shorthandTypes[strings.ToLower(strings.TrimSpace(prefix))]
	if !ok {
		return "", keyword
	}
	return t, trimIDMarker(rest)
}

func trimIDMarker(keyword string) string {
	return strings.TrimPrefix(strings.TrimSpace(keyword), "#")
}
