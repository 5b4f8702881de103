// Package utils contains general helper functions used across treegen.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept. Blank patterns are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == EmptyString {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// PathSegments splits a path into its cleaned segments. Both separators are accepted
// so that Windows-style input is treated the same way as forward-slash input.
func PathSegments(path string) []string {
	normalizedPath := filepath.ToSlash(filepath.Clean(path))
	normalizedPath = strings.ReplaceAll(normalizedPath, "\\", pathSegmentSeparator)
	rawSegments := strings.Split(normalizedPath, pathSegmentSeparator)
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == EmptyString || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// ShouldIgnoreByPath reports whether any segment of path equals one of the ignored names.
// Matching is exact: "build" ignores "build/x" but not "rebuild/x".
func ShouldIgnoreByPath(path string, ignoredSegments map[string]struct{}) bool {
	if len(ignoredSegments) == 0 {
		return false
	}
	for _, segment := range PathSegments(path) {
		if _, ignored := ignoredSegments[segment]; ignored {
			return true
		}
	}
	return false
}
