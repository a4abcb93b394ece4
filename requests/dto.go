package requests

import (
	"github.com/brettbedarf/yshell"
)

// NodeRequestDTO is the JSON/YAML representation of [yshell.NodeRequest]
type NodeRequestDTO struct {
	Path string                       `json:"path" yaml:"path"`
	Type yshell.NodeCreateRequestType `json:"type" yaml:"type"`
	UUID *string                      `json:"uuid,omitempty" yaml:"uuid,omitempty"` // Optional UUID to correlate the request in logs
}

// FileRequestDTO is the JSON/YAML representation of [yshell.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
	Words          []string `json:"words,omitempty" yaml:"words,omitempty"`
}

type DirRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
}
