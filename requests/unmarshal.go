package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/yshell"
	"github.com/brettbedarf/yshell/internal/util"
)

// NodeRequests holds the decoded contents of a node definitions file
type NodeRequests struct {
	Dirs  []*yshell.DirCreateRequest
	Files []*yshell.FileCreateRequest
}

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (yshell.NodeCreateRequestType, error) {
	var meta struct {
		Type yshell.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest handles file-specific unmarshaling
func UnmarshalFileRequest(data []byte) (*yshell.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return convertFileDTO(dto), nil
}

// UnmarshalDirRequest handles explicit directory unmarshaling
func UnmarshalDirRequest(data []byte) (*yshell.DirCreateRequest, error) {
	var dto DirRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return &yshell.DirCreateRequest{NodeRequest: convertNodeDTO(dto.NodeRequestDTO)}, nil
}

// LoadNodesFile reads a list of node definitions from a .json, .yaml or .yml
// file. Entries of unknown type are rejected.
func LoadNodesFile(path string) (*NodeRequests, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return UnmarshalNodesJSON(data)
	case ".yaml", ".yml":
		return UnmarshalNodesYAML(data)
	default:
		return nil, fmt.Errorf("unknown nodes file extension: %s", path)
	}
}

// UnmarshalNodesJSON decodes a JSON array of node definitions
func UnmarshalNodesJSON(data []byte) (*NodeRequests, error) {
	var rawNodes []json.RawMessage
	if err := json.Unmarshal(data, &rawNodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}

	out := &NodeRequests{}
	for i, rawNode := range rawNodes {
		nodeType, err := GetNodeType(rawNode)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		switch nodeType {
		case yshell.FileNodeType:
			req, err := UnmarshalFileRequest(rawNode)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			out.Files = append(out.Files, req)
		case yshell.DirNodeType:
			req, err := UnmarshalDirRequest(rawNode)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			out.Dirs = append(out.Dirs, req)
		default:
			return nil, fmt.Errorf("node %d: unknown node type: %q", i, nodeType)
		}
	}
	return out, nil
}

// UnmarshalNodesYAML decodes a YAML sequence of node definitions
func UnmarshalNodesYAML(data []byte) (*NodeRequests, error) {
	var dtos []FileRequestDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}

	out := &NodeRequests{}
	for i, dto := range dtos {
		switch dto.Type {
		case yshell.FileNodeType:
			out.Files = append(out.Files, convertFileDTO(dto))
		case yshell.DirNodeType:
			if len(dto.Words) > 0 {
				return nil, fmt.Errorf("node %d: directory %q cannot have words", i, dto.Path)
			}
			out.Dirs = append(out.Dirs, &yshell.DirCreateRequest{NodeRequest: convertNodeDTO(dto.NodeRequestDTO)})
		default:
			return nil, fmt.Errorf("node %d: unknown node type: %q", i, dto.Type)
		}
	}
	return out, nil
}

func convertFileDTO(dto FileRequestDTO) *yshell.FileCreateRequest {
	return &yshell.FileCreateRequest{
		NodeRequest: convertNodeDTO(dto.NodeRequestDTO),
		Words:       dto.Words,
	}
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) yshell.NodeRequest {
	return yshell.NodeRequest{
		Path: dto.Path,
		Type: dto.Type,
		UUID: util.ValueOrDefault(dto.UUID, uuid.New().String()),
	}
}
