package output

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ddddddO/gtree"

	"github.com/temirov/treegen/internal/types"
)

const (
	directorySuffix = "/"

	errorPreviewFormat = "render preview: %w"
)

// RenderPreview returns a human-readable outline of root with directories suffixed by a slash.
func RenderPreview(root *types.DirectoryNode) (string, error) {
	if root == nil {
		return "", errors.New(errorNilRootMessage)
	}
	previewRoot := gtree.NewRoot(root.Name + directorySuffix)
	addPreviewChildren(previewRoot, root.Children)

	var buffer bytes.Buffer
	if outputError := gtree.OutputProgrammably(&buffer, previewRoot); outputError != nil {
		return "", fmt.Errorf(errorPreviewFormat, outputError)
	}
	return buffer.String(), nil
}

func addPreviewChildren(parent *gtree.Node, children []types.Node) {
	for _, child := range children {
		switch typedChild := child.(type) {
		case *types.DirectoryNode:
			addPreviewChildren(parent.Add(typedChild.Name+directorySuffix), typedChild.Children)
		case *types.FileNode:
			parent.Add(typedChild.Name)
		}
	}
}
