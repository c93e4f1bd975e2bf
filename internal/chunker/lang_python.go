package chunker

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/project-cortex/internal/lang"
)

func init() {
	register(&LanguageRules{
		Lang:                 lang.Python,
		Grammar:              func() *sitter.Language { return sitter.NewLanguage(python.Language()) },
		ContainerKind:        "module",
		DecoratorWrapperKind: "decorated_definition",
		LineCommentPrefixes:  []string{"#"},
		Classify: func(nodeType string) NodeKind {
			switch nodeType {
			case "class_definition":
				return KindClass
			case "function_definition":
				return KindFunction
			case "import_statement", "import_from_statement", "future_import_statement":
				return KindImport
			case "decorated_definition":
				return KindDecoratorWrapper
			default:
				return KindOther
			}
		},
	})
}
