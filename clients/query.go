package clients

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// Query holds request query parameters. Nil values, nil pointers and empty
// strings are dropped when the URL is built.
type Query map[string]any

// Encode returns the URL-encoded query with keys sorted, skipping empty values.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		for _, v := range flatten(q[k]) {
			values.Add(k, v)
		}
	}
	return values.Encode()
}

// flatten turns one parameter value into its string forms. Slices repeat the
// key once per element.
func flatten(v any) []string {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			if rv.Len() == 0 {
				return nil
			}
			return []string{string(rv.Bytes())}
		}
		var out []string
		for i := 0; i < rv.Len(); i++ {
			out = append(out, flatten(rv.Index(i).Interface())...)
		}
		return out
	}
	s := fmt.Sprint(rv.Interface())
	if s == "" {
		return nil
	}
	return []string{s}
}

// BuildURL resolves path against baseURL and appends the non-empty query
// parameters. An absolute http(s) path is used verbatim.
func BuildURL(baseURL, path string, query Query) string {
	u := path
	if !isAbsolute(path) {
		u = strings.TrimSuffix(baseURL, "/") + path
	}
	if qs := query.Encode(); qs != "" {
		if strings.Contains(u, "?") {
			u += "&" + qs
		} else {
			u += "?" + qs
		}
	}
	return u
}

func isAbsolute(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
