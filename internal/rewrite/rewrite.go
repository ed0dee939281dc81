// Package rewrite converts host-side shell commands into their in-container
// equivalents. It is a best-effort text transformation: two ordered
// substitution passes plus a cleanup, targeting the common subset of
// commands a coding agent emits rather than arbitrary shell syntax.
package rewrite

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/pathmap"
)

// pathBound matches an absolute path plus either a separator-prefixed
// suffix or a bare word boundary, so /Users/foo/project never matches
// inside /Users/foo/project2.
const pathBound = `(/[^\s"']*|\b)`

// Clean rewrites absolute host paths in command so it can run inside the
// container with containerWorkingDir as the working directory.
//
// Pass 1 turns references to the current working directory into relative
// paths. Pass 2 turns references to other locations in the project tree
// into absolute container paths. Pass 1 must run first: the working
// directory is itself inside the project root, and a project-root-only
// substitution would yield an absolute container path where a relative
// one belongs.
//
// Clean never fails. An empty projectRoot makes it a no-op.
func Clean(command, projectRoot, containerWorkingDir string) string {
	if projectRoot == "" {
		return command
	}

	hostWorkingDir := pathmap.ToHostPath(containerWorkingDir, projectRoot)

	wdPattern := regexp.MustCompile(regexp.QuoteMeta(hostWorkingDir) + pathBound)
	out := wdPattern.ReplaceAllStringFunc(command, func(match string) string {
		rest := strings.TrimPrefix(match, hostWorkingDir)
		rest = strings.TrimPrefix(rest, "/")
		if rest == "" {
			return "."
		}
		return rest
	})

	// When the working directory is the container root, pass 1 already
	// covered the whole project tree.
	if containerWorkingDir != pathmap.ContainerRoot {
		rootPattern := regexp.MustCompile(regexp.QuoteMeta(projectRoot) + pathBound)
		out = rootPattern.ReplaceAllStringFunc(out, func(match string) string {
			return pathmap.ContainerRoot + strings.TrimPrefix(match, projectRoot)
		})
	}

	return stripRedundantCd(out)
}

// stripRedundantCd removes a leading no-op directory change left behind
// when pass 1 collapses "cd <current dir> && ..." to "cd . && ...".
func stripRedundantCd(command string) string {
	for _, prefix := range []string{`cd . && `, `cd "." && `, `cd '.' && `} {
		if strings.HasPrefix(command, prefix) {
			return strings.TrimPrefix(command, prefix)
		}
	}
	return command
}

// Wrap cleans command and serializes it into the final ddev invocation.
// The cleaned command is embedded as a JSON string literal: JSON escaping
// covers quotes, backslashes and control characters, which is what keeps
// the container-side shell from parsing the wrong thing.
func Wrap(command, projectRoot, containerWorkingDir string) string {
	if projectRoot == "" {
		containerWorkingDir = pathmap.ContainerRoot
	} else {
		command = Clean(command, projectRoot, containerWorkingDir)
	}
	if containerWorkingDir == "" {
		containerWorkingDir = pathmap.ContainerRoot
	}

	quoted, _ := json.Marshal(command)
	return fmt.Sprintf("ddev exec --dir %s bash -c %s", containerWorkingDir, quoted)
}
