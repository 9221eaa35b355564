package ast

import (
	"iter"
	"strings"

	"github.com/benbjohnson/immutable"
)

// Properties are the `WITH (KAFKA_TOPIC='orders', VALUE_FORMAT='JSON')` options
// of a CREATE statement, kept sorted by name.
//
// Properties is a persistent map: With returns a new Properties and leaves the
// receiver untouched, so statements sharing a Properties never observe each
// other's changes. The zero value is empty and ready to use.
type Properties struct {
	m *immutable.SortedMap[string, Literal]
}

type propertyNameComparer struct{}

func (propertyNameComparer) Compare(a, b string) int { return strings.Compare(a, b) }

// NewProperties builds Properties from a plain map.
func NewProperties(props map[string]Literal) Properties {
	b := immutable.NewSortedMapBuilder[string, Literal](propertyNameComparer{})
	for name, value := range props {
		b.Set(name, value)
	}
	return Properties{m: b.Map()}
}

// With returns a copy of p where name is set to value.
func (p Properties) With(name string, value Literal) Properties {
	m := p.m
	if m == nil {
		m = immutable.NewSortedMap[string, Literal](propertyNameComparer{})
	}
	return Properties{m: m.Set(name, value)}
}

func (p Properties) Get(name string) (Literal, bool) {
	if p.m == nil {
		return nil, false
	}
	return p.m.Get(name)
}

func (p Properties) Len() int {
	if p.m == nil {
		return 0
	}
	return p.m.Len()
}

// All iterates over the properties in name order.
func (p Properties) All() iter.Seq2[string, Literal] {
	return func(yield func(string, Literal) bool) {
		if p.m == nil {
			return
		}
		itr := p.m.Iterator()
		for !itr.Done() {
			name, value, _ := itr.Next()
			if !yield(name, value) {
				return
			}
		}
	}
}
