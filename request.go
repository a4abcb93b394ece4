// Package yshell contains the request types used to seed a namespace from
// node definition files.
package yshell

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Path string // Absolute or root-relative; missing ancestors are created
	Type NodeCreateRequestType
	UUID string // Optional UUID to correlate a request with its log lines
}

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType "dir"
type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

type FileCreateRequest struct {
	NodeRequest
	Words []string // Initial file contents
}

type DirCreateRequest struct {
	NodeRequest
}
