package filesystem

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"

	"github.com/brettbedarf/yshell/config"
	"github.com/brettbedarf/yshell/internal/util"
)

// Namespace owns a tree of nodes rooted at a self-parented directory and
// tracks the current directory.
//
// A Namespace has no internal locking beyond what its maps provide; hosts
// that share one between goroutines must serialize access.
type Namespace struct {
	cfg   *config.Config
	id    uuid.UUID
	root  Handle
	cwd   Handle
	nodes *xsync.Map[Handle, *Node] // node table; the only owner of nodes
}

// NewNamespace creates a namespace containing only the root directory with
// the current directory set to root.
func NewNamespace(cfg *config.Config) *Namespace {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	rootNode := newDirNode("", 0)

	ns := &Namespace{
		cfg:   cfg,
		id:    uuid.New(),
		root:  rootNode.handle,
		cwd:   rootNode.handle,
		nodes: xsync.NewMap[Handle, *Node](),
	}
	ns.nodes.Store(rootNode.handle, rootNode)

	logger := ns.logger("NewNamespace")
	logger.Debug().Uint64("root", uint64(rootNode.handle)).Msg("Created namespace")
	return ns
}

// ID returns the namespace's instance id
func (ns *Namespace) ID() uuid.UUID {
	return ns.id
}

func (ns *Namespace) logger(component string) zerolog.Logger {
	return util.GetLogger(component).With().Str("namespace", ns.id.String()).Logger()
}

func (ns *Namespace) Root() *Node {
	return ns.mustNode(ns.root)
}

func (ns *Namespace) CurrentDirectory() *Node {
	return ns.mustNode(ns.cwd)
}

// SetCurrentDirectory makes dir the current directory. dir must be a
// directory that still belongs to this namespace.
func (ns *Namespace) SetCurrentDirectory(dir *Node) error {
	if !ns.owns(dir) {
		return &PathError{Op: "chdir", Path: nodeName(dir), Err: ErrNotFound}
	}
	if !dir.IsDir() {
		return &PathError{Op: "chdir", Path: ns.PathOf(dir), Err: ErrNotADirectory}
	}
	ns.cwd = dir.handle
	return nil
}

// mustNode loads a handle that the namespace guarantees is live (root, cwd)
func (ns *Namespace) mustNode(h Handle) *Node {
	n, ok := ns.nodes.Load(h)
	if !ok {
		panic(fmt.Sprintf("filesystem: dangling handle %d", h))
	}
	return n
}

// Node looks up a node by handle
func (ns *Namespace) Node(h Handle) (*Node, bool) {
	return ns.nodes.Load(h)
}

// Len returns the number of live nodes including root
func (ns *Namespace) Len() int {
	return ns.nodes.Size()
}

// Parent returns n's parent directory; root is its own parent.
// Returns nil for nodes no longer in the namespace.
func (ns *Namespace) Parent(n *Node) *Node {
	p, ok := ns.nodes.Load(n.parent)
	if !ok {
		return nil
	}
	return p
}

// Child looks up an entry of dir by exact name, synthetic entries included
func (ns *Namespace) Child(dir *Node, name string) (*Node, bool) {
	entries := dir.entries()
	if entries == nil {
		return nil, false
	}
	h, ok := entries.Load(name)
	if !ok {
		return nil, false
	}
	return ns.nodes.Load(h)
}

// Children returns dir's real entries ordered by name.
// Files have no children.
func (ns *Namespace) Children(dir *Node) []*Node {
	entries := dir.entries()
	if entries == nil {
		return nil
	}
	children := make([]*Node, 0, entries.Size())
	entries.Range(func(name string, h Handle) bool {
		if isSynthetic(name) {
			return true
		}
		if child, ok := ns.nodes.Load(h); ok {
			children = append(children, child)
		}
		return true
	})
	slices.SortFunc(children, func(a, b *Node) int {
		return strings.Compare(a.name, b.name)
	})
	return children
}

// MakeDirectory creates a directory called name inside anchor.
// If name is already bound in anchor the existing node is returned together
// with an [ErrAlreadyExists] error and nothing changes.
func (ns *Namespace) MakeDirectory(anchor *Node, name string) (*Node, error) {
	return ns.makeNode("mkdir", anchor, name, DirKind)
}

// MakeFile creates an empty file called name inside anchor. Same conflict
// policy as [Namespace.MakeDirectory].
func (ns *Namespace) MakeFile(anchor *Node, name string) (*Node, error) {
	return ns.makeNode("make", anchor, name, FileKind)
}

func (ns *Namespace) makeNode(op string, anchor *Node, name string, kind Kind) (*Node, error) {
	logger := ns.logger("Namespace.makeNode")

	if err := ns.checkAnchor(op, anchor, name); err != nil {
		return nil, err
	}
	if err := validateName(op, name); err != nil {
		return nil, err
	}

	entries := anchor.entries()
	if h, ok := entries.Load(name); ok {
		existing, _ := ns.nodes.Load(h)
		return existing, &PathError{Op: op, Path: ns.joinPath(anchor, name), Err: ErrAlreadyExists}
	}

	var node *Node
	if kind == DirKind {
		node = newDirNode(name, anchor.handle)
	} else {
		node = newFileNode(name, anchor.handle)
	}
	// register in the table before linking so the entry never dangles
	ns.nodes.Store(node.handle, node)
	entries.Store(name, node.handle)

	logger.Debug().
		Str("kind", kind.String()).
		Uint64("handle", uint64(node.handle)).
		Str("path", ns.PathOf(node)).
		Msg("Created node")
	return node, nil
}

// PathOf returns the canonical absolute path of n; "/" for root.
// A node detached by removal yields the path up to where the chain broke.
func (ns *Namespace) PathOf(n *Node) string {
	var names []string
	cur := n
	for cur.handle != ns.root {
		names = append(names, cur.name)
		p := ns.Parent(cur)
		if p == nil || p == cur {
			break
		}
		cur = p
	}
	if len(names) == 0 {
		return "/"
	}
	slices.Reverse(names)
	return "/" + strings.Join(names, "/")
}

// joinPath renders the path of a would-be entry of dir for diagnostics
func (ns *Namespace) joinPath(dir *Node, name string) string {
	p := ns.PathOf(dir)
	if p == "/" {
		return p + name
	}
	return p + "/" + name
}

// Remove unlinks the entry name from anchor. Directories must be empty.
// If the removed directory was current, anchor becomes current.
func (ns *Namespace) Remove(anchor *Node, name string) error {
	return ns.remove("rm", anchor, name, false)
}

// RemoveRecursive unlinks the entry name from anchor along with everything
// beneath it. If the current directory was inside the removed subtree,
// anchor becomes current.
func (ns *Namespace) RemoveRecursive(anchor *Node, name string) error {
	return ns.remove("rmr", anchor, name, true)
}

func (ns *Namespace) remove(op string, anchor *Node, name string, recursive bool) error {
	logger := ns.logger("Namespace.remove")

	if err := ns.checkAnchor(op, anchor, name); err != nil {
		return err
	}
	if err := validateName(op, name); err != nil {
		return err
	}
	path := ns.joinPath(anchor, name)
	target, ok := ns.Child(anchor, name)
	if !ok {
		return &PathError{Op: op, Path: path, Err: ErrNotFound}
	}
	if !recursive && target.IsDir() && target.Size() > 0 {
		return &PathError{Op: op, Path: path, Err: ErrNotEmpty}
	}

	if ns.isWithin(ns.CurrentDirectory(), target) {
		ns.cwd = anchor.handle
	}

	subtree := ns.collect(target, nil)
	anchor.entries().Delete(name)
	for _, n := range subtree {
		ns.nodes.Delete(n.handle)
	}

	logger.Debug().Str("path", path).Int("removed", len(subtree)).Msg("Removed node(s)")
	return nil
}

// collect appends n and all nodes below it in post-order
func (ns *Namespace) collect(n *Node, acc []*Node) []*Node {
	for _, child := range ns.Children(n) {
		acc = ns.collect(child, acc)
	}
	return append(acc, n)
}

// isWithin reports whether n is ancestor itself or lies beneath it
func (ns *Namespace) isWithin(n, ancestor *Node) bool {
	cur := n
	for {
		if cur.handle == ancestor.handle {
			return true
		}
		if cur.handle == ns.root {
			return false
		}
		p := ns.Parent(cur)
		if p == nil {
			return false
		}
		cur = p
	}
}

// owns reports whether n is a live node of this namespace
func (ns *Namespace) owns(n *Node) bool {
	if n == nil {
		return false
	}
	live, ok := ns.nodes.Load(n.handle)
	return ok && live == n
}

func (ns *Namespace) checkAnchor(op string, anchor *Node, name string) error {
	if !ns.owns(anchor) {
		return &PathError{Op: op, Path: name, Err: ErrNotFound}
	}
	if !anchor.IsDir() {
		return &PathError{Op: op, Path: ns.PathOf(anchor), Err: ErrWrongKind}
	}
	return nil
}

// validateName rejects names that can't be bound as a single real entry
func validateName(op, name string) error {
	if name == "" || isSynthetic(name) || strings.Contains(name, "/") {
		return &PathError{Op: op, Path: name, Err: ErrInvalidPath}
	}
	return nil
}

func nodeName(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.name
}
