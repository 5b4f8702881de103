package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temirov/treegen/internal/utils"
)

// ignoredNames mirrors a small ignore set used across the path tests.
var ignoredNames = map[string]struct{}{
	"node_modules": {},
	"build":        {},
	".git":         {},
}

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate and blank patterns.
func TestDeduplicatePatterns(t *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{
			testName: "removes duplicates",
			patterns: []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			testName: "keeps unique",
			patterns: []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			testName: "drops blanks and trims",
			patterns: []string{" a ", "", "  ", "a"},
			expected: []string{"a"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.testName, func(t *testing.T) {
			assert.Equal(t, testCase.expected, utils.DeduplicatePatterns(testCase.patterns))
		})
	}
}

// TestPathSegments verifies path splitting and normalization.
func TestPathSegments(t *testing.T) {
	testCases := []struct {
		testName string
		path     string
		expected []string
	}{
		{testName: "relative", path: "src/app/page.tsx", expected: []string{"src", "app", "page.tsx"}},
		{testName: "dot prefix", path: "./src", expected: []string{"src"}},
		{testName: "absolute", path: "/tmp/project", expected: []string{"tmp", "project"}},
		{testName: "backslashes", path: `src\node_modules\x.js`, expected: []string{"src", "node_modules", "x.js"}},
		{testName: "current directory", path: ".", expected: []string{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.testName, func(t *testing.T) {
			assert.Equal(t, testCase.expected, utils.PathSegments(testCase.path))
		})
	}
}

// TestShouldIgnoreByPath verifies exact segment matching.
func TestShouldIgnoreByPath(t *testing.T) {
	testCases := []struct {
		testName       string
		path           string
		ignored        map[string]struct{}
		expectedIgnore bool
	}{
		{testName: "ignored leaf", path: "project/node_modules", ignored: ignoredNames, expectedIgnore: true},
		{testName: "ignored ancestor", path: "project/build/out/main.js", ignored: ignoredNames, expectedIgnore: true},
		{testName: "substring is not a match", path: "project/rebuild/main.js", ignored: ignoredNames, expectedIgnore: false},
		{testName: "prefix is not a match", path: "project/.github/workflows", ignored: ignoredNames, expectedIgnore: false},
		{testName: "plain path", path: "project/src/a.ts", ignored: ignoredNames, expectedIgnore: false},
		{testName: "empty ignore set", path: "node_modules", ignored: nil, expectedIgnore: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.testName, func(t *testing.T) {
			assert.Equal(t, testCase.expectedIgnore, utils.ShouldIgnoreByPath(testCase.path, testCase.ignored))
		})
	}
}
