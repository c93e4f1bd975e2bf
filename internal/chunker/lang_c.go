package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func classifyC(nodeType string) NodeKind {
	switch nodeType {
	case "struct_specifier", "union_specifier", "enum_specifier":
		return KindClass
	case "function_definition":
		return KindFunction
	case "preproc_include":
		return KindImport
	default:
		return KindOther
	}
}

func init() {
	register(&LanguageRules{
		Lang:                lang.C,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(c.Language()) },
		ContainerKind:       "translation_unit",
		LineCommentPrefixes: []string{"//"},
		Classify:            classifyC,
	})
}
