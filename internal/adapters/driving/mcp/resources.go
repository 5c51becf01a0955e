package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for modelcheck resources.
	uriScheme = "modelcheck://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing models.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "models",
		Name:        "models",
		Description: "List of all imported models and their metric counts",
		MIMEType:    "application/json",
	}, s.handleModelsResource)

	// Static resource for listing policies.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "policies",
		Name:        "policies",
		Description: "List of all imported compliance policies",
		MIMEType:    "application/json",
	}, s.handlePoliciesResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Content of a specific ingested document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleModelsResource returns a list of all imported models.
func (s *Server) handleModelsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Model == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	models, err := s.ports.Model.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}

	// Build simplified model list.
	type modelInfo struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Provider    string `json:"provider"`
		MetricCount int    `json:"metric_count"`
	}

	infos := make([]modelInfo, len(models))
	for i := range models {
		infos[i] = modelInfo{
			ID:          models[i].ID,
			Name:        models[i].Name,
			Provider:    models[i].Provider,
			MetricCount: models[i].Metrics.Count(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling models: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePoliciesResource returns a list of all imported policies.
func (s *Server) handlePoliciesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Policy == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	policies, err := s.ports.Policy.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing policies: %w", err)
	}

	// Build simplified policy list.
	type policyInfo struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		CriterionCount int    `json:"criterion_count"`
	}

	infos := make([]policyInfo, len(policies))
	for i := range policies {
		infos[i] = policyInfo{
			ID:             policies[i].ID,
			Name:           policies[i].Name,
			CriterionCount: len(policies[i].Criteria),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling policies: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the content of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: modelcheck://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Document.GetContent(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting document content: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like modelcheck://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
