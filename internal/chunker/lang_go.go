package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func init() {
	register(&LanguageRules{
		Lang:                lang.Go,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(golang.Language()) },
		ContainerKind:       "source_file",
		LineCommentPrefixes: []string{"//"},
		Classify: func(nodeType string) NodeKind {
			switch nodeType {
			case "type_declaration":
				// type_declaration covers structs, interfaces and plain
				// aliases alike; treated as class-like since the walker
				// has no cheap way to inspect the wrapped type_spec kind
				// without a second pass.
				return KindClass
			case "function_declaration", "method_declaration":
				return KindFunction
			case "import_declaration":
				return KindImport
			default:
				return KindOther
			}
		},
	})
}
