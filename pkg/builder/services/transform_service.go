package services

import (
	"strings"

	"github.com/ribo916/postman-builder/pkg/builder/models"
)

const (
	authFolderName   = "Auth"
	tokenRequestName = "Get Access Token"
	tokenEndpoint    = "{{baseUrl}}/oauth/token"
	accessTokenVar   = "{{accessToken}}"
	baseURLKey       = "baseUrl"
)

// TransformService applies the structural edits that make a converted
// collection usable against a protected environment. The four steps run in
// a fixed order and never fail: a field that is absent or oddly shaped is
// skipped, so an upstream converter change can never block a publish.
type TransformService struct{}

// NewTransformService constructor.
func NewTransformService() *TransformService { return &TransformService{} }

// Apply runs all four edits in order. Token binding runs after the Auth
// folder insert so the folder's own token request stays untouched.
func (s *TransformService) Apply(col *models.Collection) {
	if col == nil {
		return
	}
	s.InsertAuthFolder(col)
	s.StripAuthorizationHeaders(col)
	s.BindTokenVariables(col)
	s.RemoveBaseURLVariable(col)
}

// InsertAuthFolder prepends a folder with the password-grant token request.
// Its test script stores access_token and refresh_token as collection
// variables for the other requests to reference.
func (s *TransformService) InsertAuthFolder(col *models.Collection) {
	if col == nil {
		return
	}
	col.Item = append([]*models.Item{buildAuthFolder()}, col.Item...)
}

// StripAuthorizationHeaders removes every literal Authorization header from
// every request in the tree, matched case-insensitively. A hardcoded header
// would shadow the auth object at send time. Auth objects are not touched.
func (s *TransformService) StripAuthorizationHeaders(col *models.Collection) {
	if col == nil {
		return
	}
	walkItems(col.Item, func(it *models.Item) {
		if it.Request == nil || len(it.Request.Header) == 0 {
			return
		}
		kept := it.Request.Header[:0]
		for _, h := range it.Request.Header {
			if h != nil && strings.EqualFold(h.Key, "authorization") {
				continue
			}
			kept = append(kept, h)
		}
		it.Request.Header = kept
	})
}

// BindTokenVariables points every oauth2 auth object at {{accessToken}} and
// every bearer auth object at the same value under the token key, checked
// at both the item and the request level. Other auth kinds stay as they are.
func (s *TransformService) BindTokenVariables(col *models.Collection) {
	if col == nil {
		return
	}
	walkItems(col.Item, func(it *models.Item) {
		bindAuth(it.Auth)
		if it.Request != nil {
			bindAuth(it.Request.Auth)
		}
	})
}

// RemoveBaseURLVariable drops the baseUrl entry from the collection
// variables, exact key match only. The value is expected to come from a
// Postman environment of the same name at send time; keeping both makes it
// ambiguous which one wins.
func (s *TransformService) RemoveBaseURLVariable(col *models.Collection) {
	if col == nil || len(col.Variable) == 0 {
		return
	}
	kept := col.Variable[:0]
	for _, v := range col.Variable {
		if v != nil && v.Key == baseURLKey {
			continue
		}
		kept = append(kept, v)
	}
	col.Variable = kept
}

func bindAuth(a *models.Auth) {
	if a == nil {
		return
	}
	switch a.Type {
	case "oauth2":
		a.OAuth2 = upsertParam(a.OAuth2, "accessToken", accessTokenVar)
	case "bearer":
		a.Bearer = upsertParam(a.Bearer, "token", accessTokenVar)
	}
}

func upsertParam(params []*models.AuthParam, key, value string) []*models.AuthParam {
	for _, p := range params {
		if p != nil && p.Key == key {
			p.Value = value
			return params
		}
	}
	return append(params, &models.AuthParam{Key: key, Value: value, Type: "string"})
}

// walkItems visits every item depth first, parents before children.
func walkItems(items []*models.Item, visit func(*models.Item)) {
	for _, it := range items {
		if it == nil {
			continue
		}
		visit(it)
		walkItems(it.Item, visit)
	}
}

func buildAuthFolder() *models.Item {
	token := &models.Item{
		Name: tokenRequestName,
		Request: &models.Request{
			Method: "POST",
			URL: &models.URL{
				Raw:  tokenEndpoint,
				Host: []string{"{{baseUrl}}"},
				Path: []string{"oauth", "token"},
			},
			Header: []*models.Header{
				{Key: "Content-Type", Value: "application/x-www-form-urlencoded"},
			},
			Body: &models.Body{
				Mode: "urlencoded",
				URLEncoded: []*models.FormParam{
					{Key: "username", Value: "{{username}}", Type: "text"},
					{Key: "password", Value: "{{password}}", Type: "text"},
					{Key: "grant_type", Value: "password", Type: "text"},
					{Key: "client_id", Value: "{{clientId}}", Type: "text"},
					{Key: "client_secret", Value: "{{clientSecret}}", Type: "text"},
				},
			},
		},
		Event: []*models.Event{{
			Listen: "test",
			Script: &models.Script{
				Type: "text/javascript",
				Exec: []string{
					"var data = pm.response.json();",
					`pm.collectionVariables.set("accessToken", data.access_token);`,
					`pm.collectionVariables.set("refreshToken", data.refresh_token);`,
				},
			},
		}},
	}
	return &models.Item{Name: authFolderName, Item: []*models.Item{token}}
}
