package layout

import (
	"fmt"
	"os"

	"regimen/domain/feed"
	"regimen/internal/errors"

	"gopkg.in/yaml.v3"
)

// fileSection is one section entry in a layout file
type fileSection struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	Kind  string `yaml:"kind"`
	Blurb string `yaml:"blurb"`
}

// layoutFile is the on-disk layout schema. Aliases map free-text titles to
// section slugs; keys are normalized on load so authors can write them in
// display form.
type layoutFile struct {
	Sections []fileSection     `yaml:"sections"`
	Aliases  map[string]string `yaml:"aliases"`
}

// LoadFile reads and validates a layout from a YAML file. File aliases are
// merged over the built-in alias table, overriding on key collisions.
func LoadFile(path string) (feed.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return feed.Layout{}, errors.Wrapf(err, "failed to read layout file %s", path)
	}
	return Parse(data)
}

// Parse builds a validated layout from raw YAML
func Parse(data []byte) (feed.Layout, error) {
	var file layoutFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return feed.Layout{}, errors.LayoutInvalid(fmt.Sprintf("failed to parse layout yaml: %v", err))
	}

	if len(file.Sections) == 0 {
		return feed.Layout{}, errors.LayoutInvalid("layout file declares no sections")
	}

	layout := feed.Layout{
		Sections: make([]feed.Section, 0, len(file.Sections)),
		Aliases:  feed.DefaultLayout().Aliases,
	}

	for _, section := range file.Sections {
		layout.Sections = append(layout.Sections, feed.Section{
			Slug:  feed.Slug(section.Slug),
			Title: section.Title,
			Kind:  feed.SectionKind(section.Kind),
			Blurb: section.Blurb,
		})
	}

	for title, slug := range file.Aliases {
		key := feed.NormalizeTitle(title)
		if key == "" {
			return feed.Layout{}, errors.LayoutInvalid(fmt.Sprintf("alias %q normalizes to nothing", title))
		}
		layout.Aliases[key] = feed.Slug(slug)
	}

	if err := layout.Validate(); err != nil {
		return feed.Layout{}, errors.LayoutInvalid(err.Error())
	}

	return layout, nil
}
