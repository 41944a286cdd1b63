package models

// OasInput bundles the two ways a caller can hand over a spec:
// a URL to fetch or the document body itself (JSON or YAML string).
type OasInput struct {
	OasUrl  string `json:"oasUrl,omitempty" example:"https://example.com/openapi.yaml"`
	OasBody string `json:"oasBody,omitempty"`
}
