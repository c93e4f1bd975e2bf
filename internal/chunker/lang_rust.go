package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func init() {
	register(&LanguageRules{
		Lang:                lang.Rust,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(rust.Language()) },
		ContainerKind:       "source_file",
		LineCommentPrefixes: []string{"//"},
		Classify: func(nodeType string) NodeKind {
			switch nodeType {
			case "struct_item", "enum_item", "trait_item", "impl_item":
				return KindClass
			case "function_item":
				return KindFunction
			case "use_declaration":
				return KindImport
			default:
				return KindOther
			}
		},
	})
}
