package checklist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded_Valid(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Empty(t, Validate(ds))
	assert.Empty(t, UnusedCategories(ds))
	assert.Equal(t, []string{"3-4", "5-6"}, ds.BandIDs())

	for _, band := range ds.BandIDs() {
		for _, s := range ds.SectionsForBand(band) {
			c, ok := ds.Category(s.ID)
			require.True(t, ok, "section %s has no activities", s.ID)
			assert.GreaterOrEqual(t, len(c.Worker), 2, s.ID)
			assert.GreaterOrEqual(t, len(c.Parent), 2, s.ID)
		}
	}
}

func TestLoad_EmptyDirUsesEmbedded(t *testing.T) {
	ds, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ds.HasBand("3-4"))
}

const yamlChecklist = `version: "1"
age_bands:
  "3-4":
    - id: A
      title: Alpha
      category_weight: 1
      items:
        - id: a1
          text: one
          expected_age: 3.5
`

const yamlActivities = `version: "1"
categories:
  - id: A
    worker: [w1, w2, w3]
    parent: [p1]
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "checklist.yaml", yamlChecklist)
	writeFile(t, dir, "activities.yml", yamlActivities)

	ds, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	sections := ds.SectionsForBand("3-4")
	require.Len(t, sections, 1)
	require.NotNil(t, sections[0].Items[0].ExpectedAge)
	assert.Equal(t, 3.5, *sections[0].Items[0].ExpectedAge)
	c, ok := ds.Category("A")
	require.True(t, ok)
	assert.Equal(t, []string{"w1", "w2", "w3"}, c.Worker)
}

func TestLoadDir_MixedFormatsAndFlatShape(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "checklist.json", `{"version":"1","sections":[{"id":"A","title":"Alpha","category_weight":2,"items":[{"id":"a1","text":"one"}]}]}`)
	writeFile(t, dir, "activities.yaml", yamlActivities)

	ds, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, ds.SectionsForBand("5-6"), 1)
}

func TestLoadDir_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "checklist.json", `{}`)

	_, err := LoadDir(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no activities.json")
}

func TestLoadDir_InvalidDataset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "checklist.yaml", yamlChecklist)
	writeFile(t, dir, "activities.yaml", "version: \"1\"\ncategories: []\n")

	_, err := LoadDir(context.Background(), dir)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 1)
	assert.Contains(t, err.Error(), `no activity category "A"`)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("{"), []byte("{}"), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing checklist")

	_, err = Parse([]byte("{}"), []byte("{}"), Format("toml"))
	require.Error(t, err)
}

func TestIsDatasetFile(t *testing.T) {
	assert.True(t, isDatasetFile("/x/checklist.json"))
	assert.True(t, isDatasetFile("activities.YML"))
	assert.False(t, isDatasetFile("checklist.json~"))
	assert.False(t, isDatasetFile("notes.json"))
}
