package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func classifyJSFamily(nodeType string) NodeKind {
	switch nodeType {
	case "class_declaration", "interface_declaration":
		return KindClass
	case "function_declaration", "method_definition", "generator_function_declaration":
		return KindFunction
	case "import_statement":
		return KindImport
	default:
		return KindOther
	}
}

func init() {
	register(&LanguageRules{
		Lang:                lang.TypeScript,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(typescript.LanguageTypescript()) },
		ContainerKind:       "program",
		LineCommentPrefixes: []string{"//"},
		Classify:            classifyJSFamily,
	})
	register(&LanguageRules{
		Lang:                lang.TSX,
		Grammar:             func() *sitter.Language { return sitter.NewLanguage(typescript.LanguageTSX()) },
		ContainerKind:       "program",
		LineCommentPrefixes: []string{"//"},
		Classify:            classifyJSFamily,
	})
}
