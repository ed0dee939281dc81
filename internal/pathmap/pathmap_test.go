package pathmap

import "testing"

func TestToContainerPath(t *testing.T) {
	root := "/Users/foo/project"

	tests := []struct {
		name    string
		hostDir string
		want    string
	}{
		{"project root itself", "/Users/foo/project", ContainerRoot},
		{"descendant", "/Users/foo/project/wp-content/themes", ContainerRoot + "/wp-content/themes"},
		{"outside project", "/tmp/elsewhere", ContainerRoot},
		{"sibling with common prefix", "/Users/foo/project2", ContainerRoot},
		{"parent of project", "/Users/foo", ContainerRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToContainerPath(tt.hostDir, root)
			if got != tt.want {
				t.Errorf("ToContainerPath(%q) = %q, want %q", tt.hostDir, got, tt.want)
			}
		})
	}
}

func TestToContainerPathEmptyRoot(t *testing.T) {
	if got := ToContainerPath("/anywhere", ""); got != ContainerRoot {
		t.Errorf("got %q, want %q", got, ContainerRoot)
	}
}

func TestRoundTrip(t *testing.T) {
	root := "/Users/foo/project"

	// toHostPath(toContainerPath(p)) == p for p under or equal to root
	paths := []string{
		"/Users/foo/project",
		"/Users/foo/project/wp-content",
		"/Users/foo/project/wp-content/plugins/sync/src",
	}
	for _, p := range paths {
		got := ToHostPath(ToContainerPath(p, root), root)
		if got != p {
			t.Errorf("round trip of %q = %q", p, got)
		}
	}
}

func TestToHostPathOutsideContainerRoot(t *testing.T) {
	root := "/Users/foo/project"
	if got := ToHostPath("/etc", root); got != root {
		t.Errorf("got %q, want %q", got, root)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~/sites/app", home + "/sites/app"},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"~user/not-expanded", "~user/not-expanded"},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
