package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion        = "unknown"
	develVersion          = "(devel)"
	vcsRevisionSettingKey = "vcs.revision"
	shortRevisionLength   = 12
)

// Version is injected at release time with -ldflags "-X github.com/temirov/treegen/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion reports the treegen version: the injected Version, then the module version
// recorded in the build info, then the VCS revision, then git describe in the working tree.
func GetApplicationVersion() string {
	if trimmedVersion := strings.TrimSpace(Version); trimmedVersion != EmptyString {
		return trimmedVersion
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable {
		if resolvedVersion := versionFromBuildInfo(buildInfo); resolvedVersion != EmptyString {
			return resolvedVersion
		}
	}
	if describedVersion := describeGitVersion("."); describedVersion != EmptyString {
		return describedVersion
	}
	return unknownVersion
}

func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key != vcsRevisionSettingKey || setting.Value == EmptyString {
			continue
		}
		revision := setting.Value
		if len(revision) > shortRevisionLength {
			revision = revision[:shortRevisionLength]
		}
		return develVersion + " " + revision
	}
	return EmptyString
}

func describeGitVersion(startDirectory string) string {
	repositoryDirectory, lookupError := findGitDirectory(startDirectory)
	if lookupError != nil {
		return EmptyString
	}
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		// #nosec G204
		describeCommand := exec.Command("git", arguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return EmptyString
}

// findGitDirectory walks upward from startDirectory to the first directory holding a .git folder.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return EmptyString, fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, absoluteError)
	}
	currentDirectory := absoluteStartDirectory
	for {
		fileInformation, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return EmptyString, fmt.Errorf("%s directory not found in or above %s", GitDirectoryName, absoluteStartDirectory)
		}
		currentDirectory = parentDirectory
	}
}
