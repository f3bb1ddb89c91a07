package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/store"
	"gopkg.in/yaml.v3"
)

// MessageOverlay is the per-repo overlay that remaps validation error
// codes to user-authored templates. Keys are drawn from the closed set in
// errs.ValidationKind; values are templates using "{{name}}"
// substitutions resolved against the structured data each kind carries.
type MessageOverlay struct {
	templates map[errs.ValidationKind]string
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// LoadMessageOverlay is best-effort: a missing file or a parse failure
// both yield a nil overlay (never an error) — the on-disk overlay is a
// nice-to-have layer over the built-in defaults, not a required file.
func LoadMessageOverlay(layout *store.Layout) *MessageOverlay {
	for _, path := range layout.ValidationMessagesCandidates() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var raw map[string]string
		if strings.HasSuffix(path, ".json") {
			err = json.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return nil
		}

		templates := make(map[errs.ValidationKind]string, len(raw))
		for k, v := range raw {
			templates[errs.ValidationKind(k)] = v
		}
		return &MessageOverlay{templates: templates}
	}
	return nil
}

// defaultTemplates are used for any kind the overlay doesn't override, and
// for every kind when no overlay is present at all.
var defaultTemplates = map[errs.ValidationKind]string{
	errs.KindNoteTooLong:       "note content is too long: {{actual}} characters (limit {{limit}}, over by {{overBy}}, {{percentage}}%)",
	errs.KindTooManyTags:       "too many tags: {{actual}} (limit {{limit}})",
	errs.KindTooManyAnchors:    "too many anchors: {{actual}} (limit {{limit}})",
	errs.KindInvalidTags:       "invalid tags: {{invalidTags}} (allowed: {{allowedTags}})",
	errs.KindInvalidType:       "invalid type: {{type}} (allowed: {{allowedTypes}})",
	errs.KindAnchorOutsideRepo: "anchor resolves outside the repository: {{anchor}}",
	errs.KindMissingAnchors:    "at least one anchor is required",
}

// Render resolves the message for a validation error, preferring the
// overlay's template (if the overlay and this kind's override both
// exist) and falling back to the built-in default otherwise.
func Render(overlay *MessageOverlay, kind errs.ValidationKind, data map[string]any) string {
	tmpl, ok := defaultTemplates[kind]
	if overlay != nil {
		if t, ok2 := overlay.templates[kind]; ok2 {
			tmpl = t
		}
	}
	if !ok && tmpl == "" {
		tmpl = string(kind)
	}

	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		v, present := data[name]
		if !present {
			return match
		}
		return fmt.Sprintf("%v", v)
	})
}
