package filesystem

import "strings"

// RootSegment is the empty first segment [ParsePath] emits for absolute paths
const RootSegment = ""

// ParsePath splits a path on "/". A leading "/" becomes a single
// [RootSegment]; empty segments from repeated or trailing slashes are
// dropped. "" parses to no segments.
func ParsePath(path string) []string {
	if path == "" {
		return nil
	}
	segs := make([]string, 0, strings.Count(path, "/")+1)
	if strings.HasPrefix(path, "/") {
		segs = append(segs, RootSegment)
	}
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// IsAbs reports whether path is anchored at root
func IsAbs(path string) bool {
	return strings.HasPrefix(path, "/")
}

// Resolve walks path from anchor, or from root when path is absolute.
// A nil anchor means the current directory. Resolve never creates nodes.
//
// An empty path yields the anchor itself. Walking on from a file fails with
// [ErrNotADirectory]; a missing entry fails with [ErrNotFound].
func (ns *Namespace) Resolve(path string, anchor *Node) (*Node, error) {
	if anchor == nil {
		anchor = ns.CurrentDirectory()
	} else if !ns.owns(anchor) {
		return nil, &PathError{Op: "resolve", Path: path, Err: ErrNotFound}
	}

	segs := ParsePath(path)
	cur := anchor
	if len(segs) > 0 && segs[0] == RootSegment {
		cur = ns.Root()
		segs = segs[1:]
	}

	for _, seg := range segs {
		entries := cur.entries()
		if entries == nil {
			return nil, &PathError{Op: "resolve", Path: path, Segment: cur.name, Err: ErrNotADirectory}
		}
		switch seg {
		case DotName:
		case DotDotName:
			cur = ns.Parent(cur)
		default:
			h, ok := entries.Load(seg)
			if !ok {
				return nil, &PathError{Op: "resolve", Path: path, Segment: seg, Err: ErrNotFound}
			}
			child, ok := ns.nodes.Load(h)
			if !ok {
				return nil, &PathError{Op: "resolve", Path: path, Segment: seg, Err: ErrNotFound}
			}
			cur = child
		}
	}
	return cur, nil
}

// ResolveDir is [Namespace.Resolve] that additionally requires a directory
func (ns *Namespace) ResolveDir(path string, anchor *Node) (*Node, error) {
	n, err := ns.Resolve(path, anchor)
	if err != nil {
		return nil, err
	}
	if !n.IsDir() {
		return nil, &PathError{Op: "resolve", Path: path, Err: ErrNotADirectory}
	}
	return n, nil
}

// SplitPath separates path into the directory part and the final name for
// operations that create or remove an entry. dir is "" when the entry lives
// directly in the anchor. Fails with [ErrInvalidPath] when there is no
// usable final name ("", "/", ".", "..").
func SplitPath(path string) (dir, name string, err error) {
	segs := ParsePath(path)
	if len(segs) == 0 {
		return "", "", &PathError{Op: "split", Path: path, Err: ErrInvalidPath}
	}
	name = segs[len(segs)-1]
	if name == RootSegment || isSynthetic(name) {
		return "", "", &PathError{Op: "split", Path: path, Err: ErrInvalidPath}
	}

	rest := segs[:len(segs)-1]
	if len(rest) > 0 && rest[0] == RootSegment {
		return "/" + strings.Join(rest[1:], "/"), name, nil
	}
	return strings.Join(rest, "/"), name, nil
}

// ResolveParent resolves the directory that would hold path's final entry
// and returns it with the entry name.
func (ns *Namespace) ResolveParent(path string, anchor *Node) (*Node, string, error) {
	dirPath, name, err := SplitPath(path)
	if err != nil {
		return nil, "", err
	}
	if dirPath == "" {
		dirPath = DotName
	}
	dir, err := ns.ResolveDir(dirPath, anchor)
	if err != nil {
		return nil, "", err
	}
	return dir, name, nil
}
