package views

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
)

// sectionPattern matches second-level markdown headers, treated as the
// section boundary when deriving cells from an overview document.
var sectionPattern = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// inlineCodePattern pulls file-looking references (an inline-code span
// containing a dot) out of a section's prose.
var inlineCodePattern = regexp.MustCompile("`([^`\\s]+\\.[A-Za-z0-9_]+)`")

// mdSection is one parsed "## Heading" block from a markdown structure
// document, grounded on the same header-slicing approach as the
// teacher's document parser (match start -> next match start, or EOF).
type mdSection struct {
	Heading string
	Files   []string
}

func parseMarkdownStructure(content string) []mdSection {
	matches := sectionPattern.FindAllStringSubmatchIndex(content, -1)
	sections := make([]mdSection, 0, len(matches))

	for i, m := range matches {
		heading := strings.TrimSpace(content[m[2]:m[3]])
		bodyStart := m[1]
		bodyEnd := len(content)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := content[bodyStart:bodyEnd]

		files := inlineCodePattern.FindAllStringSubmatch(body, -1)
		refs := make([]string, 0, len(files))
		for _, f := range files {
			refs = append(refs, f[1])
		}

		sections = append(sections, mdSection{Heading: heading, Files: refs})
	}

	return sections
}

// BuildFromMarkdownOptions configures BuildFromMarkdown.
type BuildFromMarkdownOptions struct {
	Name        string
	Description string
	AsDefault   bool
}

// BuildFromMarkdown derives a single-column view from a markdown
// document's section structure: every "## Heading" becomes one row,
// and inline-code file references inside that section populate the
// row's cell. The markdown file itself becomes the view's overview.
func BuildFromMarkdown(root pathsafe.RepoRoot, mdPath string, opts BuildFromMarkdownOptions) (*View, error) {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return nil, err
	}

	overviewRel, err := pathsafe.ToRepoRelative(root, mdPath)
	if err != nil {
		return nil, err
	}

	sections := parseMarkdownStructure(string(data))
	if len(sections) == 0 {
		sections = []mdSection{{Heading: opts.Name}}
	}

	cells := make(map[string]Cell, len(sections))
	for i, s := range sections {
		cellID := DeriveSlug(s.Heading)
		if cellID == "" {
			cellID = fmt.Sprintf("cell-%d", i)
		}
		cells[cellID] = Cell{Files: s.Files, Coordinates: [2]int{i, 0}}
	}

	name := opts.Name
	if name == "" {
		name = overviewRel
	}

	return &View{
		Name:         name,
		Description:  opts.Description,
		Rows:         len(sections),
		Cols:         1,
		Cells:        cells,
		OverviewPath: overviewRel,
		Metadata:     map[string]any{"generationType": GenerationMachine},
	}, nil
}
