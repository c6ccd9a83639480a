// Package report renders a human-readable summary of a generated changeset
// from a Handlebars template.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aymerick/raymond"

	"github.com/deployfox/sfdelta/pkg/metadata"
)

const defaultTemplate = `Deployment delta {{from}} -> {{to}} (API {{apiVersion}})

Changes: {{totalChanges}} member(s)
{{#each changes}}  {{name}} ({{count}})
{{#each members}}    - {{this}}
{{/each}}{{/each}}
Deletions: {{totalDeletions}} member(s)
{{#each deletions}}  {{name}} ({{count}})
{{#each members}}    - {{this}}
{{/each}}{{/each}}`

// Render produces the summary text. templatePath overrides the built-in
// template when non-empty.
func Render(cs *metadata.Changeset, from, to, apiVersion, templatePath string) (string, error) {
	tpl := defaultTemplate
	if templatePath != "" {
		content, err := os.ReadFile(filepath.Clean(templatePath))
		if err != nil {
			return "", fmt.Errorf("cannot read summary template: %w", err)
		}
		tpl = string(content)
	}

	data := map[string]interface{}{
		"from":           from,
		"to":             to,
		"apiVersion":     apiVersion,
		"totalChanges":   cs.Changes.Len(),
		"totalDeletions": cs.Deletions.Len(),
		"changes":        summarize(cs.Changes),
		"deletions":      summarize(cs.Deletions),
	}

	out, err := raymond.Render(tpl, data)
	if err != nil {
		return "", fmt.Errorf("cannot render summary template: %w", err)
	}
	return out, nil
}

func summarize(set metadata.MemberSet) []map[string]interface{} {
	var out []map[string]interface{}
	for _, name := range set.TypeNames() {
		members := set.Members(name)
		out = append(out, map[string]interface{}{
			"name":    name,
			"count":   len(members),
			"members": members,
		})
	}
	return out
}
