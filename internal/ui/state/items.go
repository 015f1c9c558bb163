package state

import "github.com/atomicstack/searchlist/internal/display"

// CloneValues produces a shallow copy of the provided value slice. The values
// themselves are shared so bound state survives.
func CloneValues(values []*display.Value) []*display.Value {
	if values == nil {
		return nil
	}
	dup := make([]*display.Value, len(values))
	copy(dup, values)
	return dup
}

// flatten concatenates non-empty sections, inserting a label before each one
// when more than one section contributes items.
func flatten(sections []display.Section) []*display.Value {
	total := 0
	for _, section := range sections {
		total += len(section.Items)
	}
	labelled := len(sections) > 1
	if labelled {
		total += len(sections)
	}
	out := make([]*display.Value, 0, total)
	for _, section := range sections {
		if labelled {
			out = append(out, display.NewLabel(section.Key.Title))
		}
		out = append(out, section.Items...)
	}
	return out
}
