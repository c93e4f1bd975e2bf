package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func init() {
	register(&LanguageRules{
		Lang:                lang.Java,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(java.Language()) },
		ContainerKind:       "program",
		LineCommentPrefixes: []string{"//"},
		Classify: func(nodeType string) NodeKind {
			switch nodeType {
			case "class_declaration", "interface_declaration", "enum_declaration":
				return KindClass
			case "method_declaration":
				return KindFunction
			case "import_declaration":
				return KindImport
			default:
				return KindOther
			}
		},
	})
}
