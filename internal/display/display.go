// Package display defines the data handed to the list engine: display types,
// section keys, display values and the ordered display map.
package display

import (
	"fmt"
	"strings"
)

// Type tags a display value with the renderer that draws it.
type Type int

const (
	TypeLabel Type = iota
	TypeCircle
	TypePartner
	TypePrayerRequest
	TypeContentArchive
	TypeCircleAnnouncement
)

var typeNames = [...]string{
	TypeLabel:              "LABEL",
	TypeCircle:             "CIRCLE",
	TypePartner:            "PARTNER",
	TypePrayerRequest:      "PRAYER_REQUEST",
	TypeContentArchive:     "CONTENT_ARCHIVE",
	TypeCircleAnnouncement: "CIRCLE_ANNOUNCEMENT",
}

// identity fields used when a section does not configure its own accessor.
var typeIDFields = [...]string{
	TypeLabel:              "",
	TypeCircle:             "circleID",
	TypePartner:            "userID",
	TypePrayerRequest:      "prayerRequestID",
	TypeContentArchive:     "contentArchiveID",
	TypeCircleAnnouncement: "announcementID",
}

// Types lists every display type in declaration order.
func Types() []Type {
	return []Type{TypeLabel, TypeCircle, TypePartner, TypePrayerRequest, TypeContentArchive, TypeCircleAnnouncement}
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is one of the declared display types.
func (t Type) Valid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

// IDField returns the default payload path holding the numeric identity.
func (t Type) IDField() string {
	if !t.Valid() {
		return ""
	}
	return typeIDFields[t]
}

// ParseType resolves a display type name such as "PRAYER_REQUEST".
func ParseType(name string) (Type, error) {
	normalized := normalizeName(name)
	for i, candidate := range typeNames {
		if candidate == normalized {
			return Type(i), nil
		}
	}
	return TypeLabel, fmt.Errorf("unknown display type %q", name)
}

// SearchType selects the remote search a section supports.
type SearchType int

const (
	SearchNone SearchType = iota
	SearchCircle
	SearchPartner
	SearchPrayerRequest
	SearchContentArchive
	SearchCircleAnnouncement
)

var searchTypeNames = [...]string{
	SearchNone:               "NONE",
	SearchCircle:             "CIRCLE",
	SearchPartner:            "PARTNER",
	SearchPrayerRequest:      "PRAYER_REQUEST",
	SearchContentArchive:     "CONTENT_ARCHIVE",
	SearchCircleAnnouncement: "CIRCLE_ANNOUNCEMENT",
}

func (s SearchType) String() string {
	if s < 0 || int(s) >= len(searchTypeNames) {
		return fmt.Sprintf("SearchType(%d)", int(s))
	}
	return searchTypeNames[s]
}

// ResultType is the display type assigned to items returned by this search.
func (s SearchType) ResultType() Type {
	switch s {
	case SearchCircle:
		return TypeCircle
	case SearchPartner:
		return TypePartner
	case SearchPrayerRequest:
		return TypePrayerRequest
	case SearchContentArchive:
		return TypeContentArchive
	case SearchCircleAnnouncement:
		return TypeCircleAnnouncement
	default:
		return TypeLabel
	}
}

// ParseSearchType resolves a search type name. An empty name means NONE.
func ParseSearchType(name string) (SearchType, error) {
	normalized := normalizeName(name)
	if normalized == "" {
		return SearchNone, nil
	}
	for i, candidate := range searchTypeNames {
		if candidate == normalized {
			return SearchType(i), nil
		}
	}
	return SearchNone, fmt.Errorf("unknown search type %q", name)
}

func normalizeName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(upper)
}
