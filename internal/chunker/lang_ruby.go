package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func init() {
	register(&LanguageRules{
		Lang:                lang.Ruby,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(ruby.Language()) },
		ContainerKind:       "program",
		LineCommentPrefixes: []string{"#"},
		Classify: func(nodeType string) NodeKind {
			switch nodeType {
			case "class":
				return KindClass
			case "module":
				return KindNamespace
			case "method", "singleton_method":
				return KindFunction
			default:
				// Ruby has no dedicated import node; `require`/`require_relative`
				// are plain method calls and are left classified as KindOther.
				return KindOther
			}
		},
	})
}
