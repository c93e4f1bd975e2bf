package sync

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/project-cortex/internal/model"
)

// canonicalText builds the `<meta_data>` header + hierarchy + raw text string
// spec.md §4.6 describes: "the same string for both embedding and id
// derivation." Deterministic given (filePath, hierarchy, text).
func canonicalText(filePath string, hierarchy []model.HierarchyNode, text string) string {
	var b strings.Builder
	b.WriteString("<meta_data>\n")
	fmt.Fprintf(&b, "file_path: %s\n", filePath)
	if len(hierarchy) > 0 {
		parts := make([]string, len(hierarchy))
		for i, h := range hierarchy {
			parts[i] = fmt.Sprintf("%s:%s", h.Type, h.Value)
		}
		fmt.Fprintf(&b, "hierarchy: %s\n", strings.Join(parts, " > "))
	}
	b.WriteString("</meta_data>\n")
	b.WriteString(text)
	return b.String()
}
