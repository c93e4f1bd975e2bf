package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func init() {
	register(&LanguageRules{
		Lang:                lang.PHP,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(php.LanguagePHP()) },
		ContainerKind:       "program",
		LineCommentPrefixes: []string{"//", "#"},
		Classify: func(nodeType string) NodeKind {
			switch nodeType {
			case "class_declaration", "interface_declaration", "trait_declaration":
				return KindClass
			case "function_definition", "method_declaration":
				return KindFunction
			case "namespace_use_declaration":
				return KindImport
			default:
				return KindOther
			}
		},
	})
}
