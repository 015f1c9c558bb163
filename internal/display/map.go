package display

// DefaultTitle is the sentinel key for the aggregate view shown when several
// sections are supplied and none is selected.
const DefaultTitle = "Default"

// DefaultKey returns the sentinel aggregate key. Search is never available on it.
func DefaultKey() Key {
	return Key{Title: DefaultTitle, SearchType: SearchNone}
}

// Section pairs a key with its ordered items.
type Section struct {
	Key   Key
	Items []*Value
}

// Map is the ordered grouping of sections supplied by the caller.
type Map []Section

// Find returns the section with the given title.
func (m Map) Find(title string) (Section, bool) {
	for _, section := range m {
		if section.Key.Title == title {
			return section, true
		}
	}
	return Section{}, false
}

// Titles returns section titles in map order.
func (m Map) Titles() []string {
	titles := make([]string, 0, len(m))
	for _, section := range m {
		titles = append(titles, section.Key.Title)
	}
	return titles
}

// NonEmpty returns the sections that carry at least one item.
func (m Map) NonEmpty() []Section {
	out := make([]Section, 0, len(m))
	for _, section := range m {
		if len(section.Items) > 0 {
			out = append(out, section)
		}
	}
	return out
}

// Total counts items across all sections.
func (m Map) Total() int {
	total := 0
	for _, section := range m {
		total += len(section.Items)
	}
	return total
}
