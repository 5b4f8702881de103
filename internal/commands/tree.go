// Package commands contains the traversal that turns a filesystem subtree into file explorer nodes.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/treegen/internal/language"
	"github.com/temirov/treegen/internal/types"
	"github.com/temirov/treegen/internal/utils"
)

const (
	// FileTooLargePlaceholder replaces the content of files at or above the size limit.
	FileTooLargePlaceholder = "// File too large to display"

	warningStatPathMessage      = "Warning: unable to stat path"
	warningScanDirectoryMessage = "Error scanning directory"

	// errorRootIgnoredFormat is used when the scanned path itself is excluded.
	errorRootIgnoredFormat = "nothing to generate: %s is ignored or unreadable"
)

// Scan visits path and returns its node. The boolean is false when path is ignored
// or could not be read; such paths contribute nothing to the tree.
func (treeBuilder *TreeBuilder) Scan(path string) (types.Node, bool) {
	if treeBuilder.configuration.IsIgnored(path) {
		return nil, false
	}

	fileInfo, statError := os.Stat(path)
	if statError != nil {
		treeBuilder.logger.Warn(warningStatPathMessage, zap.String("path", path), zap.Error(statError))
		return nil, false
	}

	if !fileInfo.IsDir() {
		return treeBuilder.buildFileNode(path, fileInfo), true
	}
	return treeBuilder.buildDirectoryNode(path)
}

// nodeName returns the base name of path, resolving "." and similar inputs through the absolute path.
func nodeName(path string) string {
	baseName := filepath.Base(path)
	if baseName != "." && baseName != ".." && baseName != string(filepath.Separator) {
		return baseName
	}
	absolutePath, absolutePathError := filepath.Abs(path)
	if absolutePathError != nil {
		return baseName
	}
	return filepath.Base(absolutePath)
}

func (treeBuilder *TreeBuilder) buildFileNode(path string, fileInfo os.FileInfo) *types.FileNode {
	fileName := nodeName(path)
	node := &types.FileNode{
		Name:     fileName,
		Language: language.Detect(fileName),
		Strategy: types.EscapedStringLiteral,
	}
	if fileInfo.Size() >= treeBuilder.configuration.MaxFileSize() {
		treeBuilder.logger.Debug(
			FileTooLargePlaceholder,
			zap.String("path", path),
			zap.String("size", utils.FormatFileSize(fileInfo.Size())),
		)
		node.Content = FileTooLargePlaceholder
		return node
	}
	content := treeBuilder.encoder.Encode(path)
	node.Content = content.Text
	node.Strategy = content.Strategy
	return node
}

// buildDirectoryNode lists path in name order and scans every entry.
func (treeBuilder *TreeBuilder) buildDirectoryNode(path string) (types.Node, bool) {
	directoryEntries, readDirectoryError := os.ReadDir(path)
	if readDirectoryError != nil {
		treeBuilder.logger.Warn(warningScanDirectoryMessage, zap.String("path", path), zap.Error(readDirectoryError))
		return nil, false
	}

	node := &types.DirectoryNode{
		Name:     nodeName(path),
		Children: make([]types.Node, 0, len(directoryEntries)),
	}
	for _, directoryEntry := range directoryEntries {
		childNode, present := treeBuilder.Scan(filepath.Join(path, directoryEntry.Name()))
		if !present {
			continue
		}
		node.Children = append(node.Children, childNode)
	}
	return node, true
}

// BuildProjectRoot scans path and wraps the result in the synthetic project-root directory.
// A scanned directory contributes its children unless the configuration keeps it as a single child.
// A kept directory that is itself named project-root still has its children hoisted.
func (treeBuilder *TreeBuilder) BuildProjectRoot(path string) (*types.DirectoryNode, error) {
	scannedNode, present := treeBuilder.Scan(path)
	if !present {
		return nil, fmt.Errorf(errorRootIgnoredFormat, path)
	}

	projectRoot := &types.DirectoryNode{Name: types.ProjectRootName}
	directoryNode, isDirectory := scannedNode.(*types.DirectoryNode)
	switch {
	case !isDirectory:
		projectRoot.Children = []types.Node{scannedNode}
	case !treeBuilder.configuration.KeepRootDirectory() || directoryNode.Name == types.ProjectRootName:
		projectRoot.Children = directoryNode.Children
	default:
		projectRoot.Children = []types.Node{directoryNode}
	}
	return projectRoot, nil
}
