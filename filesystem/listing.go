package filesystem

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// List formats one line per real entry of dir: serial, size and name in
// right-justified columns. Entries are ordered by name.
func (ns *Namespace) List(dir *Node) ([]string, error) {
	if err := ns.checkListable("ls", dir); err != nil {
		return nil, err
	}
	return ns.listLines(dir), nil
}

// ListRecursive lists dir and every directory beneath it. Subdirectories
// are listed before their parent; each block starts with a "<path>:" header.
func (ns *Namespace) ListRecursive(dir *Node) ([]string, error) {
	if err := ns.checkListable("lsr", dir); err != nil {
		return nil, err
	}
	var out []string
	ns.listRecursive(dir, &out)
	return out, nil
}

func (ns *Namespace) listRecursive(dir *Node, out *[]string) {
	for _, child := range ns.Children(dir) {
		if child.IsDir() {
			ns.listRecursive(child, out)
		}
	}
	*out = append(*out, ns.PathOf(dir)+":")
	*out = append(*out, ns.listLines(dir)...)
}

func (ns *Namespace) listLines(dir *Node) []string {
	children := ns.Children(dir)
	lines := make([]string, 0, len(children))
	for _, child := range children {
		lines = append(lines, ns.FormatEntry(child))
	}
	return lines
}

// FormatEntry renders a single listing line for n
func (ns *Namespace) FormatEntry(n *Node) string {
	return fmt.Sprintf("%*d  %*d  %s", ns.cfg.SerialWidth, n.handle, ns.cfg.SizeWidth, n.Size(), n.name)
}

func (ns *Namespace) checkListable(op string, dir *Node) error {
	if !ns.owns(dir) {
		return &PathError{Op: op, Path: nodeName(dir), Err: ErrNotFound}
	}
	if !dir.IsDir() {
		return &PathError{Op: op, Path: ns.PathOf(dir), Err: ErrNotADirectory}
	}
	return nil
}

// Find returns every node beneath dir (dir excluded) whose path matches the
// doublestar pattern, in depth-first name order. Absolute patterns match
// canonical paths; relative patterns match paths relative to dir.
func (ns *Namespace) Find(dir *Node, pattern string) ([]*Node, error) {
	if err := ns.checkListable("find", dir); err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, &PathError{Op: "find", Path: pattern, Err: ErrInvalidPath}
	}

	var matches []*Node
	var walk func(n *Node, rel string)
	walk = func(n *Node, rel string) {
		for _, child := range ns.Children(n) {
			childRel := child.name
			if rel != "" {
				childRel = rel + "/" + child.name
			}
			subject := childRel
			if IsAbs(pattern) {
				subject = ns.PathOf(child)
			}
			// pattern already validated so Match can't fail
			if ok, _ := doublestar.Match(pattern, subject); ok {
				matches = append(matches, child)
			}
			if child.IsDir() {
				walk(child, childRel)
			}
		}
	}
	walk(dir, "")
	return matches, nil
}
