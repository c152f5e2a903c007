package nav

import "strings"

// Marker is a style marker carried by a navigation item.
type Marker string

const (
	MarkerActive  Marker = "active"
	MarkerStopped Marker = "stopped"
)

// ItemClass is the class every navigation item carries in rendered markup.
const ItemClass = "list"

// Item is one navigation link. Active and Stopped are its two independent
// markers.
type Item struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Path    string `json:"path"`
	Active  bool   `json:"active"`
	Stopped bool   `json:"stopped"`
}

// Has reports whether the item carries the marker.
func (it Item) Has(m Marker) bool {
	switch m {
	case MarkerActive:
		return it.Active
	case MarkerStopped:
		return it.Stopped
	}
	return false
}

// Classes returns the item's class attribute, e.g. "list active stopped".
func (it Item) Classes() string {
	classes := []string{ItemClass}
	if it.Active {
		classes = append(classes, string(MarkerActive))
	}
	if it.Stopped {
		classes = append(classes, string(MarkerStopped))
	}
	return strings.Join(classes, " ")
}

func (it *Item) set(m Marker, on bool) {
	switch m {
	case MarkerActive:
		it.Active = on
	case MarkerStopped:
		it.Stopped = on
	}
}

// Collection is the ordered set of navigation items on a page. Order is
// document order. IDs are not checked for uniqueness; lookups return the
// first match.
type Collection struct {
	items []*Item
}

// NewCollection copies items into a new collection.
func NewCollection(items ...Item) *Collection {
	c := &Collection{items: make([]*Item, 0, len(items))}
	for _, it := range items {
		it := it
		c.items = append(c.items, &it)
	}
	return c
}

// Find returns the first item with the given ID.
func (c *Collection) Find(id string) (*Item, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Items returns a copy of every item in document order.
func (c *Collection) Items() []Item {
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = *it
	}
	return out
}

// clear removes the given markers from every item.
func (c *Collection) clear(markers ...Marker) {
	for _, it := range c.items {
		for _, m := range markers {
			it.set(m, false)
		}
	}
}
