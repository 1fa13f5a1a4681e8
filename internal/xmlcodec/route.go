package xmlcodec

import (
	"fmt"
	"slices"
)

// MissingFieldError reports a required element or bucket that never
// appeared.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// DuplicateFieldError reports an element or bucket that appeared more than
// once where at most one occurrence is allowed.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q", e.Field)
}

// UnknownKindError reports a discriminant value outside the declared set.
type UnknownKindError struct {
	Tag  string
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown %s kind %q", e.Tag, e.Kind)
}

// One returns the single occurrence of field. Zero occurrences and more
// than one are distinct errors.
func One[T any](field string, vs []T) (T, error) {
	var zero T
	switch len(vs) {
	case 0:
		return zero, &MissingFieldError{Field: field}
	case 1:
		return vs[0], nil
	}
	return zero, &DuplicateFieldError{Field: field}
}

// AtMostOne returns a pointer to the single occurrence of field, or nil
// when it never appeared.
func AtMostOne[T any](field string, vs []T) (*T, error) {
	switch len(vs) {
	case 0:
		return nil, nil
	case 1:
		return &vs[0], nil
	}
	return nil, &DuplicateFieldError{Field: field}
}

// Routed holds occurrences of one repeated tag grouped by a discriminant
// attribute. Document order is preserved within each group.
type Routed[T any] struct {
	tag    string
	groups map[string][]T
}

// Route groups items by their discriminant. A discriminant outside known
// fails with an UnknownKindError naming the tag and the offending value.
func Route[T any](tag string, items []T, discriminant func(T) string, known ...string) (*Routed[T], error) {
	r := &Routed[T]{
		tag:    tag,
		groups: make(map[string][]T),
	}
	for _, item := range items {
		kind := discriminant(item)
		if !slices.Contains(known, kind) {
			return nil, &UnknownKindError{Tag: tag, Kind: kind}
		}
		r.groups[kind] = append(r.groups[kind], item)
	}
	return r, nil
}

// One returns the single occurrence of kind, failing on zero or many.
func (r *Routed[T]) One(kind string) (T, error) {
	return One(r.tag+" "+kind, r.groups[kind])
}

// AtMostOne returns the single occurrence of kind or nil.
func (r *Routed[T]) AtMostOne(kind string) (*T, error) {
	return AtMostOne(r.tag+" "+kind, r.groups[kind])
}

// All returns every occurrence of kind in document order.
func (r *Routed[T]) All(kind string) []T {
	return r.groups[kind]
}
