// Package output renders the file explorer tree into the generated TypeScript document.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/temirov/treegen/internal/types"
)

const (
	indentSpacer = "  "

	// ConstantDeclaration opens the assignment holding the rendered tree.
	ConstantDeclaration = "export const projectStructure: FileExplorer = "

	keyName     = "name"
	keyType     = "type"
	keyChildren = "children"
	keyContent  = "content"
	keyLanguage = "language"

	emptyArrayLiteral = "[]"

	errorNilRootMessage        = "render: root node is nil"
	errorUnsupportedNodeFormat = "render: unsupported node type %T"
	errorEncodeStringFormat    = "render: encode string literal: %w"
	errorRenderChildFormat     = "render: %s: %w"
)

// documentHeader is the generated-file notice followed by the FileExplorer type declaration.
var documentHeader = strings.TrimPrefix(dedent.Dedent(`
	// This file is auto-generated. Do not edit manually.
	export type FileExplorer = {
	  name: string;
	  type: "file" | "directory";
	  children?: FileExplorer[];
	  content?: string;
	  language?: string;
	}

`), "\n")

// templateLiteralEscaper escapes the sequences that a template literal would otherwise interpret.
// Carriage returns are escaped because template literals normalize raw CR and CRLF to LF.
var templateLiteralEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"${", "\\${",
	"\r", `\r`,
)

type literalField struct {
	key   string
	value string
}

// RenderTypeScript returns the complete document for root.
func RenderTypeScript(root *types.DirectoryNode) (string, error) {
	if root == nil {
		return "", errors.New(errorNilRootMessage)
	}
	renderedTree, renderError := renderNode(root, 0)
	if renderError != nil {
		return "", renderError
	}
	var builder strings.Builder
	builder.WriteString(documentHeader)
	builder.WriteString(ConstantDeclaration)
	builder.WriteString(renderedTree)
	builder.WriteString(";\n")
	return builder.String(), nil
}

// renderNode renders node as an object literal whose closing brace sits at depth.
func renderNode(node types.Node, depth int) (string, error) {
	nameLiteral, quoteError := QuoteString(node.NodeName())
	if quoteError != nil {
		return "", quoteError
	}
	kindLiteral, quoteError := QuoteString(node.Kind())
	if quoteError != nil {
		return "", quoteError
	}
	fields := []literalField{
		{key: keyName, value: nameLiteral},
		{key: keyType, value: kindLiteral},
	}

	switch typedNode := node.(type) {
	case *types.DirectoryNode:
		childrenLiteral, childrenError := renderChildren(typedNode.Children, depth+1)
		if childrenError != nil {
			return "", fmt.Errorf(errorRenderChildFormat, typedNode.Name, childrenError)
		}
		fields = append(fields, literalField{key: keyChildren, value: childrenLiteral})
	case *types.FileNode:
		contentLiteral, contentError := EmbedContent(typedNode.Content, typedNode.Strategy)
		if contentError != nil {
			return "", fmt.Errorf(errorRenderChildFormat, typedNode.Name, contentError)
		}
		languageLiteral, languageError := QuoteString(typedNode.Language)
		if languageError != nil {
			return "", languageError
		}
		fields = append(fields,
			literalField{key: keyContent, value: contentLiteral},
			literalField{key: keyLanguage, value: languageLiteral},
		)
	default:
		return "", fmt.Errorf(errorUnsupportedNodeFormat, node)
	}
	return renderObject(fields, depth), nil
}

// renderChildren renders children as an array literal whose closing bracket sits at depth.
func renderChildren(children []types.Node, depth int) (string, error) {
	if len(children) == 0 {
		return emptyArrayLiteral, nil
	}
	var builder strings.Builder
	builder.WriteString("[\n")
	for childIndex, child := range children {
		renderedChild, renderError := renderNode(child, depth+1)
		if renderError != nil {
			return "", renderError
		}
		builder.WriteString(strings.Repeat(indentSpacer, depth+1))
		builder.WriteString(renderedChild)
		if childIndex < len(children)-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString(strings.Repeat(indentSpacer, depth))
	builder.WriteString("]")
	return builder.String(), nil
}

func renderObject(fields []literalField, depth int) string {
	var builder strings.Builder
	builder.WriteString("{\n")
	for fieldIndex, field := range fields {
		builder.WriteString(strings.Repeat(indentSpacer, depth+1))
		builder.WriteString(`"` + field.key + `": `)
		builder.WriteString(field.value)
		if fieldIndex < len(fields)-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString(strings.Repeat(indentSpacer, depth))
	builder.WriteString("}")
	return builder.String()
}

// EmbedContent returns text as a literal according to strategy.
func EmbedContent(text string, strategy types.EmbeddingStrategy) (string, error) {
	switch strategy {
	case types.RawMultilineLiteral, types.PassThroughRaw:
		return TemplateLiteral(text), nil
	default:
		return QuoteString(text)
	}
}

// QuoteString returns text as a double-quoted string literal with JSON escaping.
// HTML characters are left as they are.
func QuoteString(text string) (string, error) {
	var buffer bytes.Buffer
	jsonEncoder := json.NewEncoder(&buffer)
	jsonEncoder.SetEscapeHTML(false)
	if encodeError := jsonEncoder.Encode(text); encodeError != nil {
		return "", fmt.Errorf(errorEncodeStringFormat, encodeError)
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}

// TemplateLiteral returns text as a backtick-delimited template literal.
func TemplateLiteral(text string) string {
	return "`" + templateLiteralEscaper.Replace(text) + "`"
}
