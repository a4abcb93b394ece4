package filesystem

import (
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Attr returns a stat snapshot of n in fuse wire attribute form.
// Ino is the node's handle and Size follows [Node.Size]. Only the file type
// bits of Mode are set; the namespace keeps no permissions.
func (ns *Namespace) Attr(n *Node) fuse.Attr {
	attr := fuse.Attr{
		Ino:   uint64(n.handle),
		Size:  uint64(n.Size()),
		Nlink: 1,
	}
	if !n.IsDir() {
		attr.Mode = fuse.S_IFREG
		return attr
	}

	attr.Mode = fuse.S_IFDIR
	// "." plus the entry in the parent, plus each subdirectory's ".."
	attr.Nlink = 2
	for _, child := range ns.Children(n) {
		if child.IsDir() {
			attr.Nlink++
		}
	}
	return attr
}
