// Package types defines the node model shared by the traverser and the renderers.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	// ProjectRootName is the name of the synthetic directory wrapping every generated tree.
	ProjectRootName = "project-root"
)

// EmbeddingStrategy selects how file content is written into the generated document.
type EmbeddingStrategy int

const (
	// EscapedStringLiteral embeds content as a double-quoted string with JSON escaping.
	EscapedStringLiteral EmbeddingStrategy = iota
	// RawMultilineLiteral embeds line-normalized source code as a template literal.
	RawMultilineLiteral
	// PassThroughRaw embeds content as a template literal without any normalization.
	PassThroughRaw
)

// String returns the strategy name.
func (strategy EmbeddingStrategy) String() string {
	switch strategy {
	case RawMultilineLiteral:
		return "raw-multiline"
	case PassThroughRaw:
		return "pass-through"
	default:
		return "escaped"
	}
}

// Node is one entry of the generated tree: either a *FileNode or a *DirectoryNode.
type Node interface {
	NodeName() string
	Kind() string
}

// FileNode holds the content of a single file.
type FileNode struct {
	Name     string
	Content  string
	Language string
	Strategy EmbeddingStrategy
}

// DirectoryNode holds the children of a directory sorted by name.
type DirectoryNode struct {
	Name     string
	Children []Node
}

// NodeName returns the base name of the file.
func (node *FileNode) NodeName() string { return node.Name }

// Kind returns NodeTypeFile.
func (node *FileNode) Kind() string { return NodeTypeFile }

// NodeName returns the base name of the directory.
func (node *DirectoryNode) NodeName() string { return node.Name }

// Kind returns NodeTypeDirectory.
func (node *DirectoryNode) Kind() string { return NodeTypeDirectory }

var (
	_ Node = (*FileNode)(nil)
	_ Node = (*DirectoryNode)(nil)
)
