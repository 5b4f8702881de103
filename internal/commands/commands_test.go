package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/treegen/internal/commands"
	"github.com/temirov/treegen/internal/config"
	"github.com/temirov/treegen/internal/encoder"
	"github.com/temirov/treegen/internal/types"
)

const (
	typescriptFileName    = "a.ts"
	typescriptFileContent = "x"
	pythonFileName        = "b.py"
	pythonFileContent     = "y"
	binaryFileName        = "data.bin"
	binaryFileContent     = "\x00\xff\xfe"
	nodeModulesDirName    = "node_modules"
	sourceDirName         = "src"
)

// writeTestFile creates a file with the specified content, creating parent directories.
func writeTestFile(t *testing.T, filePath string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
}

func newBuilder(t *testing.T, options ...config.ScanOption) *commands.TreeBuilder {
	t.Helper()
	configuration, configurationError := config.NewScanConfiguration(options...)
	require.NoError(t, configurationError)
	return commands.NewTreeBuilder(configuration, zap.NewNop())
}

func childNames(node *types.DirectoryNode) []string {
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.NodeName())
	}
	return names
}

// TestBuildProjectRootSkipsIgnoredAndSorts verifies the two-file scenario with an ignored node_modules directory.
func TestBuildProjectRootSkipsIgnoredAndSorts(t *testing.T) {
	rootDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(rootDirectory, pythonFileName), pythonFileContent)
	writeTestFile(t, filepath.Join(rootDirectory, typescriptFileName), typescriptFileContent)
	writeTestFile(t, filepath.Join(rootDirectory, nodeModulesDirName, "left-pad", "index.js"), "module.exports = 1")

	projectRoot, buildError := newBuilder(t).BuildProjectRoot(rootDirectory)
	require.NoError(t, buildError)
	assert.Equal(t, types.ProjectRootName, projectRoot.Name)
	require.Equal(t, []string{typescriptFileName, pythonFileName}, childNames(projectRoot))

	typescriptNode, isFile := projectRoot.Children[0].(*types.FileNode)
	require.True(t, isFile, "expected file node, got %T", projectRoot.Children[0])
	assert.Equal(t, &types.FileNode{
		Name:     typescriptFileName,
		Content:  typescriptFileContent,
		Language: "typescript",
		Strategy: types.RawMultilineLiteral,
	}, typescriptNode)
	assert.Equal(t, &types.FileNode{
		Name:     pythonFileName,
		Content:  pythonFileContent,
		Language: "python",
		Strategy: types.EscapedStringLiteral,
	}, projectRoot.Children[1])
}

// TestBuildProjectRootSingleFile verifies that a file path becomes the only child of the synthetic root.
func TestBuildProjectRootSingleFile(t *testing.T) {
	rootDirectory := t.TempDir()
	filePath := filepath.Join(rootDirectory, typescriptFileName)
	writeTestFile(t, filePath, typescriptFileContent)

	projectRoot, buildError := newBuilder(t).BuildProjectRoot(filePath)
	require.NoError(t, buildError)
	require.Len(t, projectRoot.Children, 1)
	assert.Equal(t, types.NodeTypeFile, projectRoot.Children[0].Kind())
	assert.Equal(t, typescriptFileName, projectRoot.Children[0].NodeName())
}

// TestBuildProjectRootKeepRoot verifies the wrapped layout and the project-root hoisting case.
func TestBuildProjectRootKeepRoot(t *testing.T) {
	parentDirectory := t.TempDir()
	appDirectory := filepath.Join(parentDirectory, "app")
	writeTestFile(t, filepath.Join(appDirectory, typescriptFileName), typescriptFileContent)
	namedRootDirectory := filepath.Join(parentDirectory, types.ProjectRootName)
	writeTestFile(t, filepath.Join(namedRootDirectory, pythonFileName), pythonFileContent)

	builder := newBuilder(t, config.WithKeepRootDirectory(true))

	wrappedRoot, buildError := builder.BuildProjectRoot(appDirectory)
	require.NoError(t, buildError)
	require.Equal(t, []string{"app"}, childNames(wrappedRoot))
	appNode := wrappedRoot.Children[0].(*types.DirectoryNode)
	assert.Equal(t, []string{typescriptFileName}, childNames(appNode))

	hoistedRoot, buildError := builder.BuildProjectRoot(namedRootDirectory)
	require.NoError(t, buildError)
	assert.Equal(t, []string{pythonFileName}, childNames(hoistedRoot))
}

// TestBuildProjectRootIgnoredRoot verifies that an ignored root is reported as an error.
func TestBuildProjectRootIgnoredRoot(t *testing.T) {
	rootDirectory := filepath.Join(t.TempDir(), "dist")
	writeTestFile(t, filepath.Join(rootDirectory, typescriptFileName), typescriptFileContent)

	_, buildError := newBuilder(t).BuildProjectRoot(rootDirectory)
	assert.Error(t, buildError)
}

// TestScanNestedStructure verifies recursive ordering, nested ignores and exact segment matching.
func TestScanNestedStructure(t *testing.T) {
	rootDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(rootDirectory, sourceDirName, "z.go"), "package z")
	writeTestFile(t, filepath.Join(rootDirectory, sourceDirName, "B.md"), "# B")
	writeTestFile(t, filepath.Join(rootDirectory, sourceDirName, "a.rs"), "fn main() {}")
	writeTestFile(t, filepath.Join(rootDirectory, sourceDirName, "build", "out.js"), "x")
	writeTestFile(t, filepath.Join(rootDirectory, sourceDirName, "rebuild", "out.js"), "x")
	writeTestFile(t, filepath.Join(rootDirectory, ".git", "HEAD"), "ref")
	writeTestFile(t, filepath.Join(rootDirectory, ".env"), "SECRET=1")
	writeTestFile(t, filepath.Join(rootDirectory, ".DS_Store"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(rootDirectory, "empty"), 0o755))

	builder := newBuilder(t)
	firstNode, present := builder.Scan(rootDirectory)
	require.True(t, present)
	rootNode := firstNode.(*types.DirectoryNode)
	require.Equal(t, []string{"empty", sourceDirName}, childNames(rootNode))

	emptyNode := rootNode.Children[0].(*types.DirectoryNode)
	assert.NotNil(t, emptyNode.Children)
	assert.Empty(t, emptyNode.Children)

	sourceNode := rootNode.Children[1].(*types.DirectoryNode)
	assert.Equal(t, []string{"B.md", "a.rs", "rebuild", "z.go"}, childNames(sourceNode))

	secondNode, _ := builder.Scan(rootDirectory)
	assert.Equal(t, firstNode, secondNode, "repeated scans should be identical")
}

// TestScanPlaceholders verifies size limit and binary placeholders.
func TestScanPlaceholders(t *testing.T) {
	rootDirectory := t.TempDir()
	const maxFileSize = 16
	atLimitPath := filepath.Join(rootDirectory, "at-limit.json")
	overLimitPath := filepath.Join(rootDirectory, "over-limit.txt")
	underLimitPath := filepath.Join(rootDirectory, "under-limit.txt")
	binaryPath := filepath.Join(rootDirectory, binaryFileName)
	binaryTypescriptPath := filepath.Join(rootDirectory, "weird.ts")
	writeTestFile(t, atLimitPath, strings.Repeat("a", maxFileSize))
	writeTestFile(t, overLimitPath, strings.Repeat("a", maxFileSize+1))
	writeTestFile(t, underLimitPath, strings.Repeat("a", maxFileSize-1))
	writeTestFile(t, binaryPath, binaryFileContent)
	writeTestFile(t, binaryTypescriptPath, binaryFileContent)

	builder := newBuilder(t, config.WithMaxFileSize(maxFileSize))
	testCases := []struct {
		name             string
		path             string
		expectedContent  string
		expectedLanguage string
	}{
		{name: "at limit", path: atLimitPath, expectedContent: commands.FileTooLargePlaceholder, expectedLanguage: "json"},
		{name: "over limit", path: overLimitPath, expectedContent: commands.FileTooLargePlaceholder, expectedLanguage: "plaintext"},
		{name: "under limit", path: underLimitPath, expectedContent: strings.Repeat("a", maxFileSize-1), expectedLanguage: "plaintext"},
		{name: "binary unknown extension", path: binaryPath, expectedContent: encoder.BinaryPlaceholder, expectedLanguage: "plaintext"},
		{name: "binary known extension", path: binaryTypescriptPath, expectedContent: encoder.BinaryPlaceholder, expectedLanguage: "typescript"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			node, present := builder.Scan(testCase.path)
			require.True(t, present, "expected node for %s", testCase.path)
			fileNode := node.(*types.FileNode)
			assert.Equal(t, testCase.expectedContent, fileNode.Content)
			assert.Equal(t, testCase.expectedLanguage, fileNode.Language)
		})
	}
}

// recordingEncoder counts Encode calls and returns fixed content.
type recordingEncoder struct {
	paths []string
}

func (recorder *recordingEncoder) Encode(path string) encoder.Content {
	recorder.paths = append(recorder.paths, filepath.Base(path))
	return encoder.Content{Text: "stub", Strategy: types.EscapedStringLiteral}
}

// TestScanSkipsEncoderForOversizedFiles verifies that oversized files are never read.
func TestScanSkipsEncoderForOversizedFiles(t *testing.T) {
	rootDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(rootDirectory, "big.txt"), strings.Repeat("b", 32))
	writeTestFile(t, filepath.Join(rootDirectory, "small.txt"), "s")

	recorder := &recordingEncoder{}
	builder := newBuilder(t, config.WithMaxFileSize(8)).WithEncoder(recorder)
	_, present := builder.Scan(rootDirectory)
	require.True(t, present)
	assert.Equal(t, []string{"small.txt"}, recorder.paths)
}

// TestScanUnreadableDirectory verifies that an unreadable directory is dropped with a diagnostic.
func TestScanUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	rootDirectory := t.TempDir()
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	writeTestFile(t, filepath.Join(lockedDirectory, "secret.txt"), "s")
	writeTestFile(t, filepath.Join(rootDirectory, "open.txt"), "o")
	require.NoError(t, os.Chmod(lockedDirectory, 0o000))
	t.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	core, logs := observer.New(zapcore.WarnLevel)
	builder := commands.NewTreeBuilder(config.DefaultScanConfiguration(), zap.New(core))

	node, present := builder.Scan(rootDirectory)
	require.True(t, present)
	assert.Equal(t, []string{"open.txt"}, childNames(node.(*types.DirectoryNode)))
	assert.Equal(t, 1, logs.FilterField(zap.String("path", lockedDirectory)).Len(), "diagnostics: %v", logs.All())
}
