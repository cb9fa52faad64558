package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the pool of puzzle content: an ordered list of articles that
// dates cycle through, plus optional date-pinned overrides. Scheduled keys
// are ISO YYYY-MM-DD strings.
type Catalog struct {
	Version   int                `yaml:"version" json:"version"`
	Articles  []Article          `yaml:"articles" json:"articles"`
	Scheduled map[string]Article `yaml:"scheduled,omitempty" json:"scheduled,omitempty"`
}

// LoadCatalog reads a catalog from a YAML or JSON file, chosen by
// extension. Schedule keys are checked eagerly so a malformed date fails
// at startup instead of surfacing as a missing override weeks later.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cat Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	}

	for key := range cat.Scheduled {
		if _, err := ParseDate(key); err != nil {
			return nil, fmt.Errorf("catalog %s: schedule key %q is not a date: %w", path, key, err)
		}
	}

	return &cat, nil
}

// ScheduledFor returns the date-pinned article for d, if any.
func (c *Catalog) ScheduledFor(d Date) (Article, bool) {
	if c == nil || len(c.Scheduled) == 0 {
		return Article{}, false
	}
	a, ok := c.Scheduled[d.String()]
	return a, ok
}

// DefaultCatalog is the compiled-in content used when no catalog file is
// configured. Most entries are pre-baked so the game works offline; the
// fetch-form entries exercise the live substitution path.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Version: 1,
		Articles: []Article{
			{
				Title:       "Great Wall of China",
				Category:    "History",
				Description: "Series of fortifications in northern China",
				Extract: "The Great Wall of China is a series of fortifications built " +
					"across the historical northern borders of ancient Chinese states. " +
					"Construction began as early as the 7th century BC, and the " +
					"best-known sections were built by the Qing dynasty. The wall " +
					"stretches for thousands of kilometres, and contrary to popular " +
					"belief it is not visible from the Moon with the naked eye.",
				Replacements: []Replacement{
					{Original: "Ming", Replacement: "Qing"},
				},
			},
			{
				Title:       "Octopus",
				Category:    "Biology",
				Description: "Soft-bodied eight-limbed mollusc",
				Extract: "An octopus is a soft-bodied mollusc with eight limbs and a " +
					"bulbous head. Octopuses have three hearts: two pump blood through " +
					"the gills, while the third circulates it to the rest of the body. " +
					"Their blood is blue because it uses an iron-rich protein to carry " +
					"oxygen.",
				Replacements: []Replacement{
					{Original: "copper", Replacement: "iron"},
				},
			},
			{
				Title:       "Paris",
				Category:    "Geography",
				Description: "Capital of France",
				Correct:     "capital",
				Wrong:       "largest",
			},
			{
				Title:       "Eiffel Tower",
				Category:    "Landmarks",
				Description: "Wrought-iron lattice tower in Paris",
				Extract: "The Eiffel Tower is a wrought-iron lattice tower on the Champ " +
					"de Mars in Paris. It was designed and built for the 1925 World's " +
					"Fair and was initially criticised by some of France's leading " +
					"artists. At 330 metres it was the tallest man-made structure in " +
					"the world until the completion of the Chrysler Building in New " +
					"York in 1930.",
				Replacements: []Replacement{
					{Original: "1889", Replacement: "1925"},
				},
			},
			{
				Title:       "Honey",
				Category:    "Science",
				Description: "Sweet substance produced by bees",
				Extract: "Honey is a sweet substance produced by bees from the nectar " +
					"of flowering plants. Archaeologists have found pots of honey in " +
					"ancient Roman tombs that remain perfectly edible after thousands " +
					"of years. Its long shelf life comes from its low moisture content " +
					"and acidic pH, which together prevent the growth of viruses.",
				Replacements: []Replacement{
					{Original: "Egyptian", Replacement: "Roman"},
					{Original: "bacteria", Replacement: "viruses"},
				},
			},
			{
				Title:       "Printing press",
				Category:    "History",
				Description: "Movable-type printing in Europe",
				Extract: "The printing press was introduced to Europe by Johannes " +
					"Gutenberg around 1440. His movable-type system spread rapidly and " +
					"drove an explosion in literacy, scholarship, and the circulation " +
					"of ideas. The first major book printed with it was a Greek " +
					"edition of the Bible.",
				Replacements: []Replacement{
					{Original: "Latin", Replacement: "Greek"},
				},
			},
			{
				Title:       "Moon",
				Category:    "Astronomy",
				Description: "Earth's natural satellite",
				Correct:     "satellite",
				Wrong:       "planet",
			},
		},
	}
}

// FallbackArticle is served when a fetch-form article cannot be fetched.
// It is fully pre-baked, so it needs no network and can never fail.
func FallbackArticle() Article {
	return Article{
		Title:       "Moon",
		Category:    "Astronomy",
		Description: "Earth's natural satellite",
		Extract: "The Moon is Earth's only natural planet. It orbits Earth at an " +
			"average distance of 384,400 kilometres and always presents the same " +
			"face to observers on the ground. Its gravitational pull is the main " +
			"driver of tides in Earth's oceans, and its phases have anchored " +
			"calendars since antiquity.",
		Replacements: []Replacement{
			{Original: "satellite", Replacement: "planet"},
		},
	}
}
