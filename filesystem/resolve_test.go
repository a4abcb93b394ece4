package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"empty", "", nil},
		{"root", "/", []string{RootSegment}},
		{"absolute", "/a/b", []string{RootSegment, "a", "b"}},
		{"relative", "a/b", []string{"a", "b"}},
		{"repeated_slashes", "a//b///c", []string{"a", "b", "c"}},
		{"trailing_slash", "a/b/", []string{"a", "b"}},
		{"leading_repeated", "//a", []string{RootSegment, "a"}},
		{"dots_kept", "./../a", []string{".", "..", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParsePath(tt.path)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		dir     string
		name    string
		invalid bool
	}{
		{path: "f", dir: "", name: "f"},
		{path: "/f", dir: "/", name: "f"},
		{path: "/a/b/f", dir: "/a/b", name: "f"},
		{path: "a/b/", dir: "a", name: "b"},
		{path: "../x", dir: "..", name: "x"},
		{path: "", invalid: true},
		{path: "/", invalid: true},
		{path: "a/.", invalid: true},
		{path: "..", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			dir, name, err := SplitPath(tt.path)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestResolve_DotIsSelf(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	a := mustMkdir(t, ns, ns.Root(), "a")
	b := mustMkdir(t, ns, a, "b")

	for _, d := range []*Node{ns.Root(), a, b} {
		got, err := ns.Resolve(".", d)
		require.NoError(t, err)
		assert.Same(t, d, got)
	}
}

func TestResolve_DotDotOfRootIsRoot(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	root := ns.Root()

	for _, path := range []string{"..", "/..", "../../..", "/../."} {
		got, err := ns.Resolve(path, root)
		require.NoError(t, err, path)
		assert.Same(t, root, got, path)
	}
}

func TestResolve_EmptyPathIsAnchor(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	a := mustMkdir(t, ns, ns.Root(), "a")
	f := mustMkfile(t, ns, a, "f")

	for _, anchor := range []*Node{ns.Root(), a, f} {
		got, err := ns.Resolve("", anchor)
		require.NoError(t, err)
		assert.Same(t, anchor, got)
	}
}

func TestResolve_NilAnchorIsCwd(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	a := mustMkdir(t, ns, ns.Root(), "a")
	b := mustMkdir(t, ns, a, "b")
	require.NoError(t, ns.SetCurrentDirectory(a))

	got, err := ns.Resolve("b", nil)
	require.NoError(t, err)
	assert.Same(t, b, got)

	got, err = ns.Resolve("/a/b/..", nil)
	require.NoError(t, err)
	assert.Same(t, a, got, "absolute paths ignore the anchor")
}

func TestResolve_FreshNodeByName(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	a := mustMkdir(t, ns, ns.Root(), "a")
	b := mustMkdir(t, ns, a, "b")
	f := mustMkfile(t, ns, b, "f")

	for _, n := range []*Node{a, b, f} {
		got, err := ns.Resolve(n.Name(), ns.Parent(n))
		require.NoError(t, err)
		assert.Same(t, n, got)
	}
}

func TestResolve_PathOfRoundTrip(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	root := ns.Root()
	a := mustMkdir(t, ns, root, "a")
	b := mustMkdir(t, ns, a, "b")
	c := mustMkfile(t, ns, b, "c")
	d := mustMkdir(t, ns, root, "d")

	for _, n := range []*Node{root, a, b, c, d} {
		got, err := ns.Resolve(ns.PathOf(n), root)
		require.NoError(t, err)
		assert.Same(t, n, got, ns.PathOf(n))
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	mustMkdir(t, ns, ns.Root(), "a")

	_, err := ns.Resolve("/a/missing/x", nil)

	require.ErrorIs(t, err, ErrNotFound)
	var pErr *PathError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "missing", pErr.Segment, "error must name the offending segment")
	assert.Equal(t, "/a/missing/x", pErr.Path)
}

func TestResolve_NotADirectory(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	mustMkfile(t, ns, ns.Root(), "f")

	for _, path := range []string{"/f/x", "/f/.", "/f/..", "f/x/y"} {
		_, err := ns.Resolve(path, ns.Root())
		assert.ErrorIs(t, err, ErrNotADirectory, path)
		assert.NotErrorIs(t, err, ErrNotFound, path)
	}

	// a file as the final segment is fine
	f, err := ns.Resolve("/f", nil)
	require.NoError(t, err)
	assert.Equal(t, "f", f.Name())
}

func TestResolve_NeverCreates(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	before := ns.Len()

	_, _ = ns.Resolve("/a/b/c", nil)
	_, _ = ns.Resolve("x", nil)

	assert.Equal(t, before, ns.Len())
}

func TestResolveDir(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	a := mustMkdir(t, ns, ns.Root(), "a")
	mustMkfile(t, ns, ns.Root(), "f")

	got, err := ns.ResolveDir("/a", nil)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = ns.ResolveDir("/f", nil)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestResolveParent(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	a := mustMkdir(t, ns, ns.Root(), "a")
	require.NoError(t, ns.SetCurrentDirectory(a))

	dir, name, err := ns.ResolveParent("new", nil)
	require.NoError(t, err)
	assert.Same(t, a, dir)
	assert.Equal(t, "new", name)

	dir, name, err = ns.ResolveParent("/new", nil)
	require.NoError(t, err)
	assert.Same(t, ns.Root(), dir)
	assert.Equal(t, "new", name)

	_, _, err = ns.ResolveParent("/missing/new", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = ns.ResolveParent("/", nil)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

// Scenario from an empty root through creation and resolution
func TestResolve_Scenario(t *testing.T) {
	t.Parallel()

	ns := createTestNamespace()
	root := ns.Root()

	_, err := ns.MakeDirectory(root, "a")
	require.NoError(t, err)
	_, err = ns.MakeDirectory(root, "a")
	require.ErrorIs(t, err, ErrAlreadyExists)

	got, err := ns.Resolve("/a/..", root)
	require.NoError(t, err)
	assert.Same(t, root, got)

	a, err := ns.Resolve("/a", root)
	require.NoError(t, err)
	assert.Equal(t, "/a", ns.PathOf(a))
}
