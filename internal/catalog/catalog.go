// Package catalog loads the screen definitions that configure list screens:
// their sections, routes, identity accessors, filter rules and item actions.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/display"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is the parsed set of screens.
type Catalog struct {
	Screens []Screen `yaml:"screens"`
}

// Screen describes one list screen.
type Screen struct {
	Name           string    `yaml:"name"`
	Title          string    `yaml:"title"`
	MultiList      bool      `yaml:"multiList"`
	DefaultSection string    `yaml:"defaultSection,omitempty"`
	Filters        []Filter  `yaml:"filters,omitempty"`
	Sections       []Section `yaml:"sections"`
}

// Section describes one section of a screen.
type Section struct {
	Title        string     `yaml:"title"`
	Type         string     `yaml:"type"`
	Route        string     `yaml:"route,omitempty"`
	Search       string     `yaml:"search,omitempty"`
	SearchRoute  string     `yaml:"searchRoute,omitempty"`
	SearchFilter string     `yaml:"searchFilter,omitempty"`
	IDPath       string     `yaml:"idPath,omitempty"`
	TitlePath    string     `yaml:"titlePath,omitempty"`
	DetailPath   string     `yaml:"detailPath,omitempty"`
	Press        *ActionDef `yaml:"press,omitempty"`
	Primary      *ActionDef `yaml:"primary,omitempty"`
	Alternative  *ActionDef `yaml:"alternative,omitempty"`
}

// ActionDef names an item action posted to Route. "{id}" and "{type}" in the
// route are replaced with the item's identity.
type ActionDef struct {
	Text  string `yaml:"text"`
	Route string `yaml:"route"`
}

// Expand resolves the placeholders of the action route for v.
func (a ActionDef) Expand(v *display.Value) string {
	r := strings.NewReplacer(
		"{id}", strconv.Itoa(v.ID),
		"{type}", strings.ToLower(v.Type.String()),
	)
	return r.Replace(a.Route)
}

// Binder turns an action definition into an executable display action.
type Binder func(ActionDef) display.Action

// Load reads the catalog at path. An empty path loads the built-in catalog.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if strings.TrimSpace(path) != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks names, types and rules.
func (c *Catalog) Validate() error {
	if len(c.Screens) == 0 {
		return fmt.Errorf("catalog defines no screens")
	}
	screens := make(map[string]struct{}, len(c.Screens))
	for _, screen := range c.Screens {
		if strings.TrimSpace(screen.Name) == "" {
			return fmt.Errorf("screen without a name")
		}
		if _, dup := screens[screen.Name]; dup {
			return fmt.Errorf("duplicate screen %q", screen.Name)
		}
		screens[screen.Name] = struct{}{}
		if err := screen.validate(); err != nil {
			return fmt.Errorf("screen %q: %w", screen.Name, err)
		}
	}
	return nil
}

func (s Screen) validate() error {
	if len(s.Sections) == 0 {
		return fmt.Errorf("no sections")
	}
	titles := make(map[string]struct{}, len(s.Sections))
	for _, section := range s.Sections {
		title := strings.TrimSpace(section.Title)
		if title == "" {
			return fmt.Errorf("section without a title")
		}
		if title == display.DefaultTitle {
			return fmt.Errorf("section title %q is reserved", title)
		}
		if _, dup := titles[title]; dup {
			return fmt.Errorf("duplicate section %q", title)
		}
		titles[title] = struct{}{}
		typ, err := display.ParseType(section.Type)
		if err != nil {
			return fmt.Errorf("section %q: %w", title, err)
		}
		if typ == display.TypeLabel {
			return fmt.Errorf("section %q: label is not an item type", title)
		}
		if _, err := display.ParseSearchType(section.Search); err != nil {
			return fmt.Errorf("section %q: %w", title, err)
		}
	}
	if s.DefaultSection != "" && s.DefaultSection != display.DefaultTitle {
		if _, ok := titles[s.DefaultSection]; !ok {
			return fmt.Errorf("default section %q is not defined", s.DefaultSection)
		}
	}
	options := make(map[string]struct{}, len(s.Filters))
	for _, f := range s.Filters {
		if strings.TrimSpace(f.Option) == "" {
			return fmt.Errorf("filter without an option")
		}
		if _, dup := options[f.Option]; dup {
			return fmt.Errorf("duplicate filter %q", f.Option)
		}
		options[f.Option] = struct{}{}
		if err := f.validate(); err != nil {
			return fmt.Errorf("filter %q: %w", f.Option, err)
		}
	}
	return nil
}

// Screen returns the named screen, or the first one when name is empty.
func (c *Catalog) Screen(name string) (Screen, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.Screens[0], nil
	}
	for _, screen := range c.Screens {
		if screen.Name == name {
			return screen, nil
		}
	}
	return Screen{}, fmt.Errorf("unknown screen %q", name)
}

// Names lists the screens in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Screens))
	for _, screen := range c.Screens {
		names = append(names, screen.Name)
	}
	return names
}

// Key builds the display key of a section. Actions are resolved through
// bind; a nil binder leaves every action unbound.
func (s Section) Key(bind Binder) display.Key {
	typ, _ := display.ParseType(s.Type)
	search, _ := display.ParseSearchType(s.Search)
	key := display.Key{
		Title:        s.Title,
		Type:         typ,
		SearchType:   search,
		SearchFilter: s.SearchFilter,
		Route:        s.SearchRoute,
		IDPath:       s.IDPath,
		TitlePath:    s.TitlePath,
		DetailPath:   s.DetailPath,
	}
	if bind == nil {
		return key
	}
	if s.Press != nil {
		key.OnPress = bind(*s.Press)
	}
	if s.Primary != nil {
		key.Primary = display.Binding{Text: s.Primary.Text, Action: bind(*s.Primary)}
	}
	if s.Alternative != nil {
		key.Alternative = display.Binding{Text: s.Alternative.Text, Action: bind(*s.Alternative)}
	}
	return key
}

// Keys builds the display keys of every section in order.
func (s Screen) Keys(bind Binder) []display.Key {
	keys := make([]display.Key, 0, len(s.Sections))
	for _, section := range s.Sections {
		keys = append(keys, section.Key(bind))
	}
	return keys
}

// Feeds lists the list routes polled for the screen.
func (s Screen) Feeds() []backend.Feed {
	feeds := make([]backend.Feed, 0, len(s.Sections))
	for _, section := range s.Sections {
		if section.Route == "" {
			continue
		}
		feeds = append(feeds, backend.Feed{Section: section.Title, Route: section.Route})
	}
	return feeds
}

// Heading returns the title shown above the screen.
func (s Screen) Heading() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}
