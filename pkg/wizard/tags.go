package wizard

import (
	"slices"
	"strings"

	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/render"
)

// TagKind names one of the two tag lists.
type TagKind string

const (
	TagSystems TagKind = "systems"
	TagLinks   TagKind = "links"
)

// TagKinds lists the tag lists in form order.
var TagKinds = []TagKind{TagSystems, TagLinks}

// Field returns the record field the list is stored under.
func (k TagKind) Field() string {
	switch k {
	case TagSystems:
		return changes.FieldSystemsAffected
	case TagLinks:
		return changes.FieldLinks
	default:
		return ""
	}
}

// Input returns the control tags are typed into.
func (k TagKind) Input() string {
	switch k {
	case TagSystems:
		return changes.ControlSystemsInput
	case TagLinks:
		return changes.ControlLinksInput
	default:
		return ""
	}
}

// TagKindForField maps a record field back to its tag list.
func TagKindForField(field string) (TagKind, bool) {
	for _, kind := range TagKinds {
		if kind.Field() == field {
			return kind, true
		}
	}
	return "", false
}

// chipLimit is the number of characters a link chip shows before "...".
const chipLimit = 50

// TagList is an ordered list of unique, non-empty strings. Not safe for
// concurrent use; the Controller serialises access.
type TagList struct {
	kind  TagKind
	items []string
}

// NewTagList returns an empty list with the acceptance rule of kind.
func NewTagList(kind TagKind) *TagList {
	return &TagList{kind: kind}
}

// Kind returns the list's kind.
func (l *TagList) Kind() TagKind {
	return l.kind
}

// Add trims value and appends it. It returns false without error for empty
// or duplicate values and ErrInvalidLink for links without an http(s)
// prefix.
func (l *TagList) Add(value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	if l.kind == TagLinks && !changes.IsLink(value) {
		return false, ErrInvalidLink
	}
	if slices.Contains(l.items, value) {
		return false, nil
	}
	l.items = append(l.items, value)
	return true, nil
}

// Remove deletes the tag at index, preserving the order of the rest.
func (l *TagList) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return ErrTagIndex
	}
	l.items = slices.Delete(l.items, index, index+1)
	return nil
}

// Reset replaces the contents, dropping values Add would refuse.
func (l *TagList) Reset(values []string) {
	l.items = nil
	for _, v := range values {
		_, _ = l.Add(v)
	}
}

// Len returns the number of tags.
func (l *TagList) Len() int {
	return len(l.items)
}

// Values returns a copy of the tags. An empty list yields an empty, non-nil
// slice so drafts encode it as [].
func (l *TagList) Values() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Chip is the display form of one tag.
type Chip struct {
	Index int
	Value string
	Label string
}

// Chips returns the display chips. Link labels are truncated; values never
// are.
func (l *TagList) Chips() []Chip {
	chips := make([]Chip, len(l.items))
	for i, value := range l.items {
		label := value
		if l.kind == TagLinks {
			label = render.Truncate(value, chipLimit)
		}
		chips[i] = Chip{Index: i, Value: value, Label: label}
	}
	return chips
}
