package pathmap

import (
	"os"
	"strings"
)

// ContainerRoot is the web root inside the DDEV web container. DDEV mounts
// the project there regardless of where it lives on the host.
const ContainerRoot = "/var/www/html"

// ToContainerPath maps an absolute host directory to its equivalent inside
// the container. Paths outside the project root map to the container root
// itself — the caller gets a usable directory instead of an error.
func ToContainerPath(hostDir, projectRoot string) string {
	rel, ok := descend(hostDir, projectRoot)
	if !ok || rel == "" {
		return ContainerRoot
	}
	return ContainerRoot + "/" + rel
}

// ToHostPath is the inverse of ToContainerPath: it maps a container
// directory back to the host path it corresponds to. Container paths
// outside the container root map to the project root.
func ToHostPath(containerDir, projectRoot string) string {
	rel, ok := descend(containerDir, ContainerRoot)
	if !ok || rel == "" {
		return projectRoot
	}
	return projectRoot + "/" + rel
}

// descend returns the path of p relative to root, with the leading
// separator stripped. ok is false when p is not root or a descendant of it.
func descend(p, root string) (rel string, ok bool) {
	if root == "" {
		return "", false
	}
	if p == root {
		return "", true
	}
	if strings.HasPrefix(p, root+"/") {
		return strings.TrimPrefix(p, root+"/"), true
	}
	return "", false
}

// ExpandHome expands a leading ~ against the current user's home directory.
// DDEV reports shortroot with the home dir abbreviated.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return home + path[1:]
}
