package notes

import (
	"sort"
	"strings"

	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

// Match is one row of the relevance lookup: a note paired with how it
// became relevant to the queried path.
type Match struct {
	Note              *Note
	IsParentDirectory bool
	PathDistance      int
}

// LimitType selects how GetForPathWithLimit truncates its result.
type LimitType string

const (
	LimitCount  LimitType = "count"
	LimitTokens LimitType = "tokens"
)

// TokenInfo accompanies a token-budgeted result.
type TokenInfo struct {
	TotalTokens  int
	TokensKept   int
	ItemsDropped int
}

// GetForPath finds notes relevant to a repo-relative path: anchor-matched
// notes get PathDistance 0; when includeParents is true, every other note in
// the repository is reachable as a "parent directory" match at a distance
// equal to the query's depth from the root. Ordering is ascending by
// PathDistance, then descending by Timestamp, then ascending by ID for a
// fully deterministic tie-break.
func GetForPath(root pathsafe.RepoRoot, targetPath string, includeParents bool) ([]Match, error) {
	layout := store.Resolve(root)
	all, err := readAll(layout)
	if err != nil {
		return nil, err
	}

	targetRel, err := pathsafe.ToRepoRelative(root, targetPath)
	if err != nil {
		return nil, nil
	}

	matches := make([]Match, 0, len(all))
	for _, n := range all {
		if _, ok := anchorMatch(n.Anchors, targetRel); ok {
			matches = append(matches, Match{Note: n, IsParentDirectory: false, PathDistance: 0})
			continue
		}
		if includeParents {
			matches = append(matches, Match{Note: n, IsParentDirectory: true, PathDistance: depthOf(targetRel)})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].PathDistance != matches[j].PathDistance {
			return matches[i].PathDistance < matches[j].PathDistance
		}
		if matches[i].Note.Timestamp != matches[j].Note.Timestamp {
			return matches[i].Note.Timestamp > matches[j].Note.Timestamp
		}
		return matches[i].Note.ID < matches[j].Note.ID
	})

	return matches, nil
}

// anchorMatch reports whether target is anchor-matched by any anchor:
// equal, an ancestor of target, or a descendant of target.
func anchorMatch(anchors []string, target string) (string, bool) {
	for _, anchor := range anchors {
		if anchor == target ||
			strings.HasPrefix(target+"/", anchor+"/") ||
			strings.HasPrefix(anchor+"/", target+"/") {
			return anchor, true
		}
	}
	return "", false
}

func depthOf(relPath string) int {
	if relPath == "" || relPath == "." {
		return 0
	}
	segments := strings.Split(relPath, "/")
	count := 0
	for _, s := range segments {
		if s != "" {
			count++
		}
	}
	return count
}

// GetForPathWithLimit wraps GetForPath with a count or token budget.
func GetForPathWithLimit(root pathsafe.RepoRoot, targetPath string, includeParents bool, limitType LimitType, limit int) ([]Match, *TokenInfo, error) {
	all, err := GetForPath(root, targetPath, includeParents)
	if err != nil {
		return nil, nil, err
	}

	switch limitType {
	case LimitCount:
		n := limit
		if n < 1 {
			n = 1
		}
		if n > len(all) {
			n = len(all)
		}
		return all[:n], nil, nil

	case LimitTokens:
		return limitByTokens(all, limit)

	default:
		return all, nil, nil
	}
}

func limitByTokens(all []Match, budget int) ([]Match, *TokenInfo, error) {
	total := 0
	counts := make([]int, len(all))
	for i, m := range all {
		counts[i] = tokenCount(m.Note.Note)
		total += counts[i]
	}

	kept := 0
	cum := 0
	for i, c := range counts {
		if cum+c > budget {
			break
		}
		cum += c
		kept = i + 1
	}

	// monotonic-at-least-one guarantee: an empty prefix on a nonempty
	// result still returns the first item.
	if kept == 0 && len(all) > 0 {
		kept = 1
		cum = counts[0]
	}

	info := &TokenInfo{
		TotalTokens:  total,
		TokensKept:   cum,
		ItemsDropped: len(all) - kept,
	}
	return all[:kept], info, nil
}

// tokenCount approximates token count by whitespace-delimited word count,
// since no tokenizer matching any particular model's encoding is wired
// into this module.
func tokenCount(s string) int {
	return len(strings.Fields(s))
}
