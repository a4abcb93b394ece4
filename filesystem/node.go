package filesystem

import (
	"slices"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// Handle is a node's serial number. Handles come from a single process-wide
// counter so they are never reused, even across namespaces.
type Handle uint64

var lastHandle atomic.Uint64

func nextHandle() Handle {
	return Handle(lastHandle.Add(1))
}

// Kind discriminates the two node variants
type Kind int

const (
	FileKind Kind = iota
	DirKind
)

func (k Kind) String() string {
	switch k {
	case FileKind:
		return "file"
	case DirKind:
		return "dir"
	default:
		return "unknown"
	}
}

// Names of the synthetic entries every directory carries
const (
	DotName    = "."
	DotDotName = ".."
)

// contents is the node payload; exactly one of *fileContents or *dirContents
type contents interface {
	kind() Kind
	size() int
}

type fileContents struct {
	words []string
}

func (*fileContents) kind() Kind  { return FileKind }
func (c *fileContents) size() int { return len(c.words) }

// dirContents maps entry names onto handles. Always holds "." and "..".
type dirContents struct {
	entries *xsync.Map[string, Handle]
}

func (*dirContents) kind() Kind { return DirKind }
func (c *dirContents) size() int {
	return c.entries.Size() - 2
}

// Node is either a file or a directory in a [Namespace].
// Nodes are only ever created by Namespace mutations. Parent and entry links
// are handles into the namespace's node table rather than pointers.
type Node struct {
	handle   Handle
	name     string // Immutable; "" for root
	parent   Handle // Root's parent is itself
	contents contents
}

func newFileNode(name string, parent Handle) *Node {
	return &Node{
		handle:   nextHandle(),
		name:     name,
		parent:   parent,
		contents: &fileContents{},
	}
}

// newDirNode creates a directory with its "." and ".." entries installed.
// A zero parent makes the node its own parent (root).
func newDirNode(name string, parent Handle) *Node {
	h := nextHandle()
	if parent == 0 {
		parent = h
	}
	entries := xsync.NewMap[string, Handle]()
	entries.Store(DotName, h)
	entries.Store(DotDotName, parent)
	return &Node{
		handle:   h,
		name:     name,
		parent:   parent,
		contents: &dirContents{entries: entries},
	}
}

// Handle returns the node's serial number
func (n *Node) Handle() Handle {
	return n.handle
}

// Name returns the node's immutable name; "" for root.
func (n *Node) Name() string {
	return n.name
}

// ParentHandle returns the handle of the owning directory
func (n *Node) ParentHandle() Handle {
	return n.parent
}

func (n *Node) Kind() Kind {
	return n.contents.kind()
}

func (n *Node) IsDir() bool {
	return n.Kind() == DirKind
}

// Size is the word count for files and the number of real entries for
// directories.
func (n *Node) Size() int {
	return n.contents.size()
}

// Read returns a copy of a file's words
func (n *Node) Read() ([]string, error) {
	f, ok := n.contents.(*fileContents)
	if !ok {
		return nil, &PathError{Op: "read", Path: n.name, Err: ErrWrongKind}
	}
	return slices.Clone(f.words), nil
}

// Write replaces a file's words
func (n *Node) Write(words []string) error {
	f, ok := n.contents.(*fileContents)
	if !ok {
		return &PathError{Op: "write", Path: n.name, Err: ErrWrongKind}
	}
	f.words = slices.Clone(words)
	return nil
}

// entries returns the directory entry map or nil for files
func (n *Node) entries() *xsync.Map[string, Handle] {
	if d, ok := n.contents.(*dirContents); ok {
		return d.entries
	}
	return nil
}

// isSynthetic reports whether name is one of the "." / ".." entries
func isSynthetic(name string) bool {
	return name == DotName || name == DotDotName
}
