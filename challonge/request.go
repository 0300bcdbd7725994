package challonge

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Field is one key/value pair of a form body.
type Field struct {
	Key   string
	Value string
}

// Form is an ordered form body. Keys may repeat; bulk endpoints rely on the
// order of repeated keys to correlate values by index.
type Form []Field

func (f *Form) Add(key, value string) {
	*f = append(*f, Field{Key: key, Value: value})
}

func (f *Form) AddBool(key string, v bool) {
	f.Add(key, strconv.FormatBool(v))
}

func (f *Form) AddInt(key string, v int) {
	f.Add(key, strconv.Itoa(v))
}

// Get returns the first value stored under key.
func (f Form) Get(key string) (string, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

func (f Form) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Encode renders the body as application/x-www-form-urlencoded, keeping the
// insertion order.
func (f Form) Encode() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}
	return b.String()
}

// Request is what a builder produces: everything needed for one round trip
// except the credential and the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Form   Form
}

func (r Request) hasBody() bool {
	return r.Method == http.MethodPost || r.Method == http.MethodPut
}

// URL resolves the request against base and attaches the API key, in the
// query for GET and DELETE, in the form for POST and PUT.
func (r Request) URL(base, apiKey string) string {
	query := url.Values{}
	for k, vs := range r.Query {
		query[k] = append([]string(nil), vs...)
	}
	if !r.hasBody() && apiKey != "" {
		query.Set("api_key", apiKey)
	}
	u := strings.TrimRight(base, "/") + r.Path
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// Body returns the encoded form with the API key first, or nil for
// requests without a body.
func (r Request) Body(apiKey string) []byte {
	if !r.hasBody() {
		return nil
	}
	form := make(Form, 0, len(r.Form)+1)
	if apiKey != "" {
		form.Add("api_key", apiKey)
	}
	form = append(form, r.Form...)
	return []byte(form.Encode())
}

// ID formats a numeric tournament id for the path segment that also accepts a
// URL slug.
func ID(id int) string {
	return strconv.Itoa(id)
}

// SubdomainSlug builds the "subdomain-url" identifier used for tournaments
// hosted under an organization subdomain.
func SubdomainSlug(subdomain, url string) string {
	if subdomain == "" {
		return url
	}
	return subdomain + "-" + url
}

func segment(s string) string {
	return url.PathEscape(s)
}

func tournamentPath(tournament string) string {
	return "/tournaments/" + segment(tournament)
}

func formatPoints(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
