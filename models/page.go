package models

import (
	"encoding/json"
	"fmt"
)

// Page is one page of a listing. The API returns either a bare array or an
// envelope with items and paging fields in camel or Pascal case.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page,omitempty"`
	PageSize   int `json:"pageSize,omitempty"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount,omitempty"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return err
	}

	var raw []any
	var o object
	switch t := v.(type) {
	case []any:
		raw = t
	case map[string]any:
		o = object(t)
		raw = o.list("items", "Items", "data", "Data", "results")
	case nil:
	default:
		return fmt.Errorf("expected a JSON array or object, got %T", v)
	}

	items := make([]T, 0, len(raw))
	for _, r := range raw {
		var it T
		if err := remarshal(r, &it); err != nil {
			return err
		}
		items = append(items, it)
	}

	*p = Page[T]{Items: items, TotalPages: 1}
	if o != nil {
		p.Page = intFrom(o.first("page", "Page", "pageNumber", "PageNumber"), 0)
		p.PageSize = intFrom(o.first("pageSize", "PageSize"), 0)
		p.TotalPages = intFrom(o.first("totalPages", "TotalPages"), 1)
		p.TotalCount = intFrom(o.first("totalCount", "TotalCount"), len(items))
	} else {
		p.TotalCount = len(items)
	}
	return nil
}

// List decodes either a bare array or an envelope into a slice.
func List[T any](data []byte) ([]T, error) {
	var p Page[T]
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p.Items, nil
}
