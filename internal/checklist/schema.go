package checklist

import (
	"sort"
)

// Item is one observable skill on the checklist.
type Item struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	// ExpectedAge is the age in years at which most children manage the
	// item. Nil means the item is age-neutral.
	ExpectedAge *float64 `json:"expected_age,omitempty" yaml:"expected_age,omitempty"`
}

// HasExpectedAge reports whether the item carries an age expectation.
func (i Item) HasExpectedAge() bool {
	return i.ExpectedAge != nil
}

// Section groups items of one developmental area. Its ID doubles as the key
// into the activity catalog.
type Section struct {
	ID             string  `json:"id" yaml:"id"`
	Title          string  `json:"title" yaml:"title"`
	CategoryWeight float64 `json:"category_weight" yaml:"category_weight"`
	Items          []Item  `json:"items" yaml:"items"`
}

// ItemIDs returns the section's item IDs in dataset order.
func (s Section) ItemIDs() []string {
	ids := make([]string, len(s.Items))
	for i, it := range s.Items {
		ids[i] = it.ID
	}
	return ids
}

// Checklist is the checklist file. AgeBands is the canonical shape; a flat
// Sections list applies to every well-formed band key AgeBands does not name.
type Checklist struct {
	Version  string               `json:"version" yaml:"version"`
	AgeBands map[string][]Section `json:"age_bands,omitempty" yaml:"age_bands,omitempty"`
	Sections []Section            `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// ActivityCategory holds the suggested activities for one section, in
// order of relevance.
type ActivityCategory struct {
	ID     string   `json:"id" yaml:"id"`
	Worker []string `json:"worker" yaml:"worker"`
	Parent []string `json:"parent" yaml:"parent"`
}

// Activities is the activity catalog file.
type Activities struct {
	Version    string             `json:"version" yaml:"version"`
	Categories []ActivityCategory `json:"categories" yaml:"categories"`
}

// Dataset is the immutable pair of checklist and activity catalog the
// scoring engine reads.
type Dataset struct {
	Checklist  Checklist
	Activities Activities
}

// SectionsForBand returns the sections that apply to bandID, or nil when
// the band is unknown.
func (d *Dataset) SectionsForBand(bandID string) []Section {
	if d == nil {
		return nil
	}
	if sections, ok := d.Checklist.AgeBands[bandID]; ok {
		return sections
	}
	if len(d.Checklist.Sections) > 0 {
		if _, err := ParseBand(bandID); err == nil {
			return d.Checklist.Sections
		}
	}
	return nil
}

// HasBand reports whether bandID resolves to at least one section.
func (d *Dataset) HasBand(bandID string) bool {
	return len(d.SectionsForBand(bandID)) > 0
}

// BandIDs returns the band keys named by the checklist, youngest first.
func (d *Dataset) BandIDs() []string {
	ids := make([]string, 0, len(d.Checklist.AgeBands))
	for id := range d.Checklist.AgeBands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		bi, erri := ParseBand(ids[i])
		bj, errj := ParseBand(ids[j])
		if erri != nil || errj != nil {
			if erri == nil {
				return true
			}
			if errj == nil {
				return false
			}
			return ids[i] < ids[j]
		}
		if bi.Min != bj.Min {
			return bi.Min < bj.Min
		}
		return bi.Max < bj.Max
	})
	return ids
}

// Section finds a section of the band by ID.
func (d *Dataset) Section(bandID, sectionID string) (Section, bool) {
	for _, s := range d.SectionsForBand(bandID) {
		if s.ID == sectionID {
			return s, true
		}
	}
	return Section{}, false
}

// Item finds an item of the band by ID together with its section.
func (d *Dataset) Item(bandID, itemID string) (Item, Section, bool) {
	for _, s := range d.SectionsForBand(bandID) {
		for _, it := range s.Items {
			if it.ID == itemID {
				return it, s, true
			}
		}
	}
	return Item{}, Section{}, false
}

// Category returns the activity category matching a section ID.
func (d *Dataset) Category(sectionID string) (ActivityCategory, bool) {
	if d == nil {
		return ActivityCategory{}, false
	}
	for _, c := range d.Activities.Categories {
		if c.ID == sectionID {
			return c, true
		}
	}
	return ActivityCategory{}, false
}

// TotalItems counts the items that apply to bandID.
func (d *Dataset) TotalItems(bandID string) int {
	n := 0
	for _, s := range d.SectionsForBand(bandID) {
		n += len(s.Items)
	}
	return n
}

// allSections walks every section in the file along with the band it was
// declared under ("" for the flat list).
func (c *Checklist) allSections(fn func(band string, idx int, s Section)) {
	bands := make([]string, 0, len(c.AgeBands))
	for b := range c.AgeBands {
		bands = append(bands, b)
	}
	sort.Strings(bands)
	for _, b := range bands {
		for i, s := range c.AgeBands[b] {
			fn(b, i, s)
		}
	}
	for i, s := range c.Sections {
		fn("", i, s)
	}
}
