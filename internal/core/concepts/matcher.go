package concepts

import "strings"

var separatorReplacer = strings.NewReplacer(
	"-", " ", "_", " ", "/", " ", ",", " ", ".", " ",
	"(", " ", ")", " ", ":", " ",
)

// NormalizeNodeName lowercases a node name, replaces punctuation separators
// with spaces and collapses runs of whitespace.
func NormalizeNodeName(name string) string {
	lowered := separatorReplacer.Replace(strings.ToLower(name))
	return strings.Join(strings.Fields(lowered), " ")
}

// MatchConcepts resolves a free-form node name to the taxonomy concepts it
// mentions. A concept matches when its id or any alias appears as a
// substring of the normalized name. The result is sorted by concept id.
func MatchConcepts(nodeName string) []string {
	normalized := NormalizeNodeName(nodeName)
	if normalized == "" {
		return nil
	}

	var matched []string
	for _, id := range conceptIDs {
		if strings.Contains(normalized, id) {
			matched = append(matched, id)
			continue
		}
		for _, alias := range conceptAliases[id] {
			if strings.Contains(normalized, alias) {
				matched = append(matched, id)
				break
			}
		}
	}
	return matched
}
