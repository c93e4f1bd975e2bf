package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func init() {
	register(&LanguageRules{
		Lang:                lang.JavaScript,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(javascript.Language()) },
		ContainerKind:       "program",
		LineCommentPrefixes: []string{"//"},
		Classify:            classifyJSFamily,
	})
}
