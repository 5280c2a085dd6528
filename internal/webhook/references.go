package webhook

import (
	"regexp"
	"sort"
	"strconv"
)

// IssueRef is a "#N" reference found in pull request text.
type IssueRef struct {
	Number int
	// Closing is set when the reference follows a closing keyword (fixes #N).
	Closing bool
}

var (
	issueRefPattern   = regexp.MustCompile(`(?:^|[^\w/&])#(\d+)\b`)
	closingRefPattern = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s*:?\s+#(\d+)\b`)
)

// FindIssueRefs returns the distinct issue references in texts ordered by number.
// A number that is referenced with a closing keyword anywhere is marked Closing.
func FindIssueRefs(texts ...string) []IssueRef {
	refs := make(map[int]bool)
	for _, text := range texts {
		for _, m := range issueRefPattern.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				if _, ok := refs[n]; !ok {
					refs[n] = false
				}
			}
		}
		for _, m := range closingRefPattern.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				refs[n] = true
			}
		}
	}

	out := make([]IssueRef, 0, len(refs))
	for n, closing := range refs {
		out = append(out, IssueRef{Number: n, Closing: closing})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
