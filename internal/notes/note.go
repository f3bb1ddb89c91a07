// Package notes implements the Notes Engine (C4): validation,
// persistence, indexed lookup, and tag/type maintenance for the durable
// knowledge units the store persists.
package notes

import (
	"encoding/json"
	"sort"

	"github.com/a24z-ai/a24z-memory/internal/config"
	"github.com/a24z-ai/a24z-memory/internal/errs"
)

// Note is a persisted unit of knowledge, anchored to one or more
// repo-relative paths and carrying freeform tags and an optional type.
// validate below enforces its invariants.
type Note struct {
	ID         string         `json:"id"`
	Note       string         `json:"note"`
	Anchors    []string       `json:"anchors"`
	Tags       []string       `json:"tags"`
	Type       string         `json:"type"`
	Timestamp  int64          `json:"timestamp"`
	Reviewed   bool           `json:"reviewed"`
	Metadata   map[string]any `json:"metadata"`
	GuidanceToken string      `json:"guidanceToken,omitempty"`

	// LegacyConfidence carries the legacy `confidence` field forward when
	// present on read. It is accept-on-read, omit-on-write: never
	// serialized back out (see MarshalJSON).
	LegacyConfidence *string `json:"-"`
}

// legacyConfidenceValues mirrors the historical closed set; anything else
// found on disk is ignored rather than rejected, since old stores are
// read-only data as far as this field goes.
var legacyConfidenceValues = map[string]bool{"high": true, "medium": true, "low": true}

// UnmarshalJSON accepts the legacy `confidence` field without persisting
// it back out on the next save.
func (n *Note) UnmarshalJSON(data []byte) error {
	type alias Note
	aux := struct {
		Confidence string `json:"confidence"`
		*alias
	}{alias: (*alias)(n)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Confidence != "" && legacyConfidenceValues[aux.Confidence] {
		n.LegacyConfidence = &aux.Confidence
	}
	return nil
}

// MarshalJSON omits LegacyConfidence: new writes never reintroduce the
// legacy field.
func (n Note) MarshalJSON() ([]byte, error) {
	type alias Note
	return json.Marshal(alias(n))
}

// DefaultTypes is the built-in type taxonomy used when type enforcement
// is off, or on with no declared types.
var DefaultTypes = []string{"decision", "pattern", "gotcha", "explanation"}

// SaveInput is the caller-supplied shape for saveNote. DirectoryPath must
// be an absolute, already-validated repository root.
type SaveInput struct {
	DirectoryPath string
	Note          string
	Anchors       []string
	Tags          []string
	Type          string
	Reviewed      *bool
	Metadata      map[string]any
	GuidanceToken string
	// OriginDir, if set, is the directory "./"/"../" anchors are resolved
	// against; defaults to DirectoryPath when empty.
	OriginDir string
}

// validate runs the full validation pipeline against already-normalized
// anchors and returns every violated invariant rather than stopping at
// the first one. providedAnchorCount is the number of anchors the caller
// supplied before normalization dropped any for falling outside the
// repository root; the missing-anchors check is against that count, not
// against the post-filter anchors slice, so a note whose only anchor was
// rejected for escaping the root reports anchorOutsideRepo alone rather
// than also claiming no anchor was supplied at all.
func validate(cfg *config.Config, content string, tags []string, anchors []string, providedAnchorCount int, typ string, allowedTags, allowedTypes map[string]bool) *errs.ValidationErrors {
	var violations []*errs.ValidationError

	if providedAnchorCount == 0 {
		violations = append(violations, &errs.ValidationError{
			Kind: errs.KindMissingAnchors,
			Data: map[string]any{"actual": 0},
		})
	}

	if max := cfg.NoteMaxLength(); len(content) > max {
		overBy := len(content) - max
		violations = append(violations, &errs.ValidationError{
			Kind: errs.KindNoteTooLong,
			Data: map[string]any{
				"actual":     len(content),
				"limit":      max,
				"overBy":     overBy,
				"percentage": percentOver(len(content), max),
			},
		})
	}

	if max := cfg.MaxTagsPerNote(); len(tags) > max {
		violations = append(violations, &errs.ValidationError{
			Kind: errs.KindTooManyTags,
			Data: map[string]any{"actual": len(tags), "limit": max},
		})
	}

	if max := cfg.MaxAnchorsPerNote(); len(anchors) > max {
		violations = append(violations, &errs.ValidationError{
			Kind: errs.KindTooManyAnchors,
			Data: map[string]any{"actual": len(anchors), "limit": max},
		})
	}

	if cfg.EnforceAllowedTags() && len(allowedTags) > 0 {
		var invalid []string
		for _, tag := range tags {
			if !allowedTags[tag] {
				invalid = append(invalid, tag)
			}
		}
		if len(invalid) > 0 {
			violations = append(violations, &errs.ValidationError{
				Kind: errs.KindInvalidTags,
				Data: map[string]any{"invalidTags": invalid, "allowedTags": sortedKeys(allowedTags)},
			})
		}
	}

	if cfg.EnforceAllowedTypes() && len(allowedTypes) > 0 {
		if typ != "" && !allowedTypes[typ] {
			violations = append(violations, &errs.ValidationError{
				Kind: errs.KindInvalidType,
				Data: map[string]any{"type": typ, "allowedTypes": sortedKeys(allowedTypes)},
			})
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &errs.ValidationErrors{Errors: violations}
}

func percentOver(actual, limit int) int {
	if limit == 0 {
		return 0
	}
	return (actual - limit) * 100 / limit
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
