package dto

// Collection is the list envelope returned by every listing endpoint:
// { "hasItems": bool, "items": [...] }, with an optional total.
type Collection struct {
	HasItems bool        `json:"hasItems"`
	Items    interface{} `json:"items"`
	Total    int         `json:"total,omitempty"`
}

func NewCollection(items interface{}, length int) Collection {
	return Collection{
		HasItems: length > 0,
		Items:    items,
	}
}

func NewCountedCollection(items interface{}, length int) Collection {
	return Collection{
		HasItems: length > 0,
		Items:    items,
		Total:    length,
	}
}
