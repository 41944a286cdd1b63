package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/invopop/yaml"
	"github.com/ribo916/postman-builder/pkg/builder/models"
)

var methodOrder = []string{"get", "post", "put", "patch", "delete", "head", "options", "trace"}

// ConvertService turns OpenAPI 3.x text into a Postman v2.1 collection.
// The spec is walked as loose maps on purpose: input quality varies, and a
// missing or oddly typed field should cost a folder or a header, not the
// whole conversion.
type ConvertService struct{}

// NewConvertService constructor.
func NewConvertService() *ConvertService { return &ConvertService{} }

// Convert parses JSON or YAML spec bytes and builds the collection tree.
// Operations are grouped into folders by their first tag; request URLs are
// templated on a baseUrl variable taken from the first server entry.
func (s *ConvertService) Convert(oas []byte) (*models.Collection, error) {
	trimmed := strings.TrimSpace(string(oas))
	if trimmed == "" {
		return nil, ErrEmptySpec
	}

	working := []byte(trimmed)
	if !json.Valid(working) {
		converted, err := yaml.YAMLToJSON(working)
		if err != nil {
			return nil, fmt.Errorf("cannot convert YAML to JSON: %w", err)
		}
		working = converted
	}

	var spec map[string]any
	if err := json.Unmarshal(working, &spec); err != nil {
		return nil, fmt.Errorf("cannot parse OpenAPI document: %w", err)
	}

	col := &models.Collection{
		Info: models.Info{
			PostmanID: uuid.New().String(),
			Name:      specTitle(spec),
			Schema:    models.CollectionSchema,
		},
	}
	if server := firstServerURL(spec); server != "" {
		col.Variable = append(col.Variable, &models.Variable{Key: "baseUrl", Value: server, Type: "string"})
	}

	schemes := securitySchemes(spec)
	globalSec := securityNames(spec["security"])

	folders := map[string]*models.Item{}
	var order []string
	paths, _ := spec["paths"].(map[string]any)
	for _, path := range sortedKeys(paths) {
		pathItem, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		shared := parameters(pathItem)
		for _, method := range methodOrder {
			op, ok := pathItem[method].(map[string]any)
			if !ok {
				continue
			}
			params := append(append([]map[string]any{}, shared...), parameters(op)...)
			item := buildRequestItem(path, method, op, params, schemes, globalSec)

			name := folderName(op, path)
			folder, exists := folders[name]
			if !exists {
				folder = &models.Item{Name: name}
				folders[name] = folder
				order = append(order, name)
			}
			folder.Item = append(folder.Item, item)
		}
	}
	for _, name := range order {
		col.Item = append(col.Item, folders[name])
	}
	return col, nil
}

func buildRequestItem(path, method string, op map[string]any, params []map[string]any, schemes map[string]map[string]any, globalSec []string) *models.Item {
	name := strings.TrimSpace(str(op["summary"]))
	if name == "" {
		name = strings.TrimSpace(str(op["operationId"]))
	}
	if name == "" {
		name = strings.ToUpper(method) + " " + path
	}

	req := &models.Request{
		Method:      strings.ToUpper(method),
		URL:         buildURL(path, params),
		Description: strings.TrimSpace(str(op["description"])),
	}

	for _, p := range params {
		if str(p["in"]) == "header" {
			req.Header = append(req.Header, &models.Header{
				Key:         str(p["name"]),
				Value:       "",
				Description: str(p["description"]),
			})
		}
	}

	if body := buildBody(op); body != nil {
		req.Body = body
		if body.Mode == "raw" {
			req.Header = append(req.Header, &models.Header{Key: "Content-Type", Value: "application/json"})
		}
	}

	sec := securityNames(op["security"])
	if sec == nil {
		sec = globalSec
	}
	if auth := buildAuth(sec, schemes); auth != nil {
		req.Auth = auth
		switch auth.Type {
		case "bearer", "oauth2":
			// Same literal header the upstream converters emit.
			req.Header = append(req.Header, &models.Header{Key: "Authorization", Value: "Bearer <token>"})
		}
	}

	return &models.Item{Name: name, Request: req}
}

func buildURL(path string, params []map[string]any) *models.URL {
	var segments []string
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments = append(segments, ":"+strings.Trim(seg, "{}"))
			continue
		}
		segments = append(segments, seg)
	}

	u := &models.URL{
		Host: []string{"{{baseUrl}}"},
		Path: segments,
	}
	for _, p := range params {
		if str(p["in"]) == "query" {
			u.Query = append(u.Query, &models.QueryParam{
				Key:         str(p["name"]),
				Value:       "",
				Description: str(p["description"]),
			})
		}
	}

	u.Raw = "{{baseUrl}}/" + strings.Join(segments, "/")
	if len(u.Query) > 0 {
		var pairs []string
		for _, q := range u.Query {
			pairs = append(pairs, q.Key+"="+q.Value)
		}
		u.Raw += "?" + strings.Join(pairs, "&")
	}
	return u
}

func buildBody(op map[string]any) *models.Body {
	rb, ok := op["requestBody"].(map[string]any)
	if !ok {
		return nil
	}
	content, ok := rb["content"].(map[string]any)
	if !ok {
		return nil
	}
	if mt, ok := content["application/x-www-form-urlencoded"].(map[string]any); ok {
		return &models.Body{Mode: "urlencoded", URLEncoded: formParams(mt)}
	}
	if mt, ok := content["application/json"].(map[string]any); ok {
		return &models.Body{
			Mode:    "raw",
			Raw:     rawExample(mt),
			Options: &models.BodyOptions{Raw: &models.RawOptions{Language: "json"}},
		}
	}
	return nil
}

func formParams(mt map[string]any) []*models.FormParam {
	schema, _ := mt["schema"].(map[string]any)
	props, _ := schema["properties"].(map[string]any)
	var out []*models.FormParam
	for _, key := range sortedKeys(props) {
		out = append(out, &models.FormParam{Key: key, Value: "", Type: "text"})
	}
	return out
}

func rawExample(mt map[string]any) string {
	if ex, ok := mt["example"]; ok {
		if b, err := json.MarshalIndent(ex, "", "  "); err == nil {
			return string(b)
		}
	}
	return "{}"
}

func securitySchemes(spec map[string]any) map[string]map[string]any {
	comps, _ := spec["components"].(map[string]any)
	raw, _ := comps["securitySchemes"].(map[string]any)
	out := make(map[string]map[string]any, len(raw))
	for name, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out[name] = m
		}
	}
	return out
}

// securityNames flattens a security requirement list into scheme names.
// nil means "not specified", an empty slice means "explicitly none".
func securityNames(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := []string{}
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for name := range m {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func buildAuth(names []string, schemes map[string]map[string]any) *models.Auth {
	for _, name := range names {
		scheme, ok := schemes[name]
		if !ok {
			continue
		}
		switch str(scheme["type"]) {
		case "oauth2":
			return &models.Auth{Type: "oauth2"}
		case "http":
			switch strings.ToLower(str(scheme["scheme"])) {
			case "bearer":
				return &models.Auth{Type: "bearer"}
			case "basic":
				return &models.Auth{Type: "basic"}
			}
		case "apiKey":
			return &models.Auth{Type: "apikey", APIKey: []*models.AuthParam{
				{Key: "key", Value: str(scheme["name"]), Type: "string"},
				{Key: "in", Value: str(scheme["in"]), Type: "string"},
			}}
		}
	}
	return nil
}

func parameters(node map[string]any) []map[string]any {
	raw, ok := node["parameters"].([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func folderName(op map[string]any, path string) string {
	if tags, ok := op["tags"].([]any); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) > 0 && segs[0] != "" && !strings.HasPrefix(segs[0], "{") {
		return segs[0]
	}
	return "General"
}

func specTitle(spec map[string]any) string {
	if info, ok := spec["info"].(map[string]any); ok {
		if title := strings.TrimSpace(str(info["title"])); title != "" {
			return title
		}
	}
	return "API"
}

func firstServerURL(spec map[string]any) string {
	servers, ok := spec["servers"].([]any)
	if !ok || len(servers) == 0 {
		return ""
	}
	first, ok := servers[0].(map[string]any)
	if !ok {
		return ""
	}
	return strings.TrimSpace(str(first["url"]))
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// sortedKeys keeps folder and field order deterministic; Go map iteration
// would reshuffle the output on every run.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
