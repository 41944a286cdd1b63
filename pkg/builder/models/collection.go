package models

// CollectionSchema identifies the Postman Collection v2.1 format.
const CollectionSchema = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// Collection is the root of a Postman Collection v2.1 document, limited to
// the fields this tool reads or writes. Optional fields are pointers or
// omitempty slices so a half-shaped document round-trips untouched.
type Collection struct {
	Info     Info        `json:"info"`
	Item     []*Item     `json:"item"`
	Auth     *Auth       `json:"auth,omitempty"`
	Event    []*Event    `json:"event,omitempty"`
	Variable []*Variable `json:"variable,omitempty"`
}

// Info carries the collection metadata.
type Info struct {
	PostmanID   string `json:"_postman_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema"`
}

// Item is both the folder and the request variant: a folder carries child
// items and no Request, a request carries a Request and no children.
type Item struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Item        []*Item  `json:"item,omitempty"`
	Request     *Request `json:"request,omitempty"`
	Auth        *Auth    `json:"auth,omitempty"`
	Event       []*Event `json:"event,omitempty"`
}

// IsFolder reports whether the item is a folder rather than a request.
func (i *Item) IsFolder() bool { return i != nil && i.Request == nil }

// Request describes a single HTTP request inside the collection.
type Request struct {
	Method      string    `json:"method"`
	URL         *URL      `json:"url"`
	Description string    `json:"description,omitempty"`
	Header      []*Header `json:"header,omitempty"`
	Body        *Body     `json:"body,omitempty"`
	Auth        *Auth     `json:"auth,omitempty"`
}

// URL is the structured request URL; Raw holds the assembled template.
type URL struct {
	Raw   string        `json:"raw"`
	Host  []string      `json:"host,omitempty"`
	Path  []string      `json:"path,omitempty"`
	Query []*QueryParam `json:"query,omitempty"`
}

// QueryParam is one query string entry.
type QueryParam struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// Header is one request header entry.
type Header struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Body is the request payload in one of the v2.1 modes.
type Body struct {
	Mode       string       `json:"mode"`
	Raw        string       `json:"raw,omitempty"`
	URLEncoded []*FormParam `json:"urlencoded,omitempty"`
	FormData   []*FormParam `json:"formdata,omitempty"`
	Options    *BodyOptions `json:"options,omitempty"`
}

// BodyOptions carries per-mode rendering hints.
type BodyOptions struct {
	Raw *RawOptions `json:"raw,omitempty"`
}

// RawOptions selects the language of a raw body.
type RawOptions struct {
	Language string `json:"language,omitempty"`
}

// FormParam is one urlencoded or formdata field.
type FormParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Auth mirrors the v2.1 auth object: a type tag plus one parameter list per
// supported scheme. Keys are unique within one list.
type Auth struct {
	Type   string       `json:"type"`
	OAuth2 []*AuthParam `json:"oauth2,omitempty"`
	Bearer []*AuthParam `json:"bearer,omitempty"`
	Basic  []*AuthParam `json:"basic,omitempty"`
	APIKey []*AuthParam `json:"apikey,omitempty"`
}

// AuthParam is one key/value entry of an auth object.
type AuthParam struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Event attaches a lifecycle script (prerequest, test) to an item.
type Event struct {
	Listen string  `json:"listen"`
	Script *Script `json:"script,omitempty"`
}

// Script holds the script source line by line.
type Script struct {
	Type string   `json:"type,omitempty"`
	Exec []string `json:"exec"`
}

// Variable is one collection-level key/value pair.
type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}
