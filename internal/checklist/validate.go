package checklist

import (
	"fmt"
	"sort"
)

// Validate checks a dataset for authoring defects and returns every problem
// found. An empty result means the dataset is safe to score against.
func Validate(ds *Dataset) []error {
	var errs []error

	errs = append(errs, validateChecklist(&ds.Checklist)...)

	categories := make(map[string]bool)
	errs = append(errs, validateActivities(&ds.Activities, categories)...)

	seen := make(map[string]bool)
	ds.Checklist.allSections(func(band string, _ int, s Section) {
		if s.ID == "" || seen[s.ID] {
			return
		}
		seen[s.ID] = true
		if !categories[s.ID] {
			errs = append(errs, fmt.Errorf("%s: no activity category %q", sectionPath(band, s), s.ID))
		}
	})

	return errs
}

// UnusedCategories returns activity categories no section refers to.
func UnusedCategories(ds *Dataset) []string {
	used := make(map[string]bool)
	ds.Checklist.allSections(func(_ string, _ int, s Section) {
		used[s.ID] = true
	})
	var out []string
	for _, c := range ds.Activities.Categories {
		if c.ID != "" && !used[c.ID] {
			out = append(out, c.ID)
		}
	}
	sort.Strings(out)
	return out
}

func validateChecklist(c *Checklist) []error {
	var errs []error

	if c.Version == "" {
		errs = append(errs, fmt.Errorf("checklist.version is required"))
	}
	if len(c.AgeBands) == 0 && len(c.Sections) == 0 {
		errs = append(errs, fmt.Errorf("checklist: at least one age band or section list is required"))
	}
	if len(c.AgeBands) > 0 && len(c.Sections) > 0 {
		errs = append(errs, fmt.Errorf("checklist: age_bands and sections are mutually exclusive"))
	}

	itemIDs := make(map[string]string)
	bands := make([]string, 0, len(c.AgeBands))
	for b := range c.AgeBands {
		bands = append(bands, b)
	}
	sort.Strings(bands)
	for _, b := range bands {
		if _, err := ParseBand(b); err != nil {
			errs = append(errs, fmt.Errorf("checklist.age_bands: %w", err))
		}
		if len(c.AgeBands[b]) == 0 {
			errs = append(errs, fmt.Errorf("checklist.age_bands[%s]: at least one section is required", b))
		}
		errs = append(errs, validateSections(fmt.Sprintf("checklist.age_bands[%s]", b), c.AgeBands[b], itemIDs)...)
	}
	errs = append(errs, validateSections("checklist.sections", c.Sections, itemIDs)...)

	return errs
}

func validateSections(prefix string, sections []Section, itemIDs map[string]string) []error {
	var errs []error
	sectionIDs := make(map[string]bool)

	for i, s := range sections {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", path))
		} else if sectionIDs[s.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate section id %q", path, s.ID))
		} else {
			sectionIDs[s.ID] = true
		}
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", path))
		}
		if s.CategoryWeight <= 0 {
			errs = append(errs, fmt.Errorf("%s.category_weight must be > 0, got %g", path, s.CategoryWeight))
		}
		if len(s.Items) == 0 {
			errs = append(errs, fmt.Errorf("%s.items: at least one item is required", path))
		}

		for j, it := range s.Items {
			itemPath := fmt.Sprintf("%s.items[%d]", path, j)
			if it.ID == "" {
				errs = append(errs, fmt.Errorf("%s.id is required", itemPath))
			} else if first, dup := itemIDs[it.ID]; dup {
				errs = append(errs, fmt.Errorf("%s.id: duplicate item id %q (first at %s)", itemPath, it.ID, first))
			} else {
				itemIDs[it.ID] = itemPath
			}
			if it.Text == "" {
				errs = append(errs, fmt.Errorf("%s.text is required", itemPath))
			}
			if it.ExpectedAge != nil && *it.ExpectedAge < 0 {
				errs = append(errs, fmt.Errorf("%s.expected_age must be >= 0, got %g", itemPath, *it.ExpectedAge))
			}
		}
	}

	return errs
}

func validateActivities(a *Activities, ids map[string]bool) []error {
	var errs []error

	if a.Version == "" {
		errs = append(errs, fmt.Errorf("activities.version is required"))
	}
	for i, c := range a.Categories {
		path := fmt.Sprintf("activities.categories[%d]", i)
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", path))
			continue
		}
		if ids[c.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate category id %q", path, c.ID))
			continue
		}
		ids[c.ID] = true
	}

	return errs
}

func sectionPath(band string, s Section) string {
	if band == "" {
		return fmt.Sprintf("checklist.sections[%s]", s.ID)
	}
	return fmt.Sprintf("checklist.age_bands[%s][%s]", band, s.ID)
}
