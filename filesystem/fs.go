package filesystem

import (
	"fmt"

	"github.com/brettbedarf/yshell"
)

// AddDirNode creates every missing directory along req.Path, starting at
// root, and returns the leaf. It is equivalent to `mkdir -p`: existing
// directories are reused and an existing leaf is not an error.
func (ns *Namespace) AddDirNode(req *yshell.DirCreateRequest) (*Node, error) {
	logger := ns.logger("AddDirNode")

	cur := ns.Root()
	newCnt := 0
	for _, seg := range ParsePath(req.Path) {
		switch seg {
		case RootSegment, DotName:
			continue
		case DotDotName:
			cur = ns.Parent(cur)
			continue
		}

		child, ok := ns.Child(cur, seg)
		if ok {
			if !child.IsDir() {
				return nil, &PathError{Op: "mkdir", Path: req.Path, Segment: seg, Err: ErrNotADirectory}
			}
			cur = child
			continue
		}

		node, err := ns.MakeDirectory(cur, seg)
		if err != nil {
			return nil, err
		}
		newCnt++
		cur = node
	}
	if newCnt > 0 {
		logger.Debug().Str("path", req.Path).Str("uuid", req.UUID).Msg(fmt.Sprintf("Created %d new dir(s)", newCnt))
	}
	return cur, nil
}

// AddFileNode creates a file at req.Path holding req.Words, creating any
// missing ancestor directories. If a node already exists at the path an
// [ErrAlreadyExists] error is returned.
func (ns *Namespace) AddFileNode(req *yshell.FileCreateRequest) (*Node, error) {
	logger := ns.logger("AddFileNode")

	dirPath, name, err := SplitPath(req.Path)
	if err != nil {
		return nil, err
	}

	dirReq := yshell.DirCreateRequest{NodeRequest: req.NodeRequest}
	dirReq.Path = dirPath
	parent, err := ns.AddDirNode(&dirReq)
	if err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file's ancestor directory(s)")
		return nil, err
	}

	node, err := ns.MakeFile(parent, name)
	if err != nil {
		logger.Error().Err(err).Str("path", req.Path).Msg("Failed to create file")
		return nil, err
	}
	if err := node.Write(req.Words); err != nil {
		return nil, err
	}
	logger.Debug().Str("path", req.Path).Str("uuid", req.UUID).Int("words", len(req.Words)).Msg("Added new file node")
	return node, nil
}
