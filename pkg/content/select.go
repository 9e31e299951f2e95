package content

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrMissingData is returned by Render when a template's declared data
// dependency has no value.
var ErrMissingData = errors.New("missing template data")

// Selector picks a category by weight and a template uniformly within
// it.  A deterministic rand source makes selection reproducible in
// tests.
type Selector struct {
	cats []Category
	rand *rand.Rand
}

func NewSelector(cats []Category, src rand.Source) (*Selector, error) {
	if len(cats) == 0 {
		return nil, errors.New("no categories to select from")
	}

	for _, cat := range cats {
		if cat.Weight <= 0 || len(cat.Templates) == 0 {
			return nil, fmt.Errorf("category %s needs a positive weight and at least one template", cat.Name)
		}
	}

	return &Selector{
		cats: cats,
		rand: rand.New(src),
	}, nil
}

// Pick returns a weighted-random category and one of its templates.
func (s *Selector) Pick() (Category, Template) {
	total := 0
	for _, cat := range s.cats {
		total += cat.Weight
	}

	n := s.rand.Intn(total)
	for _, cat := range s.cats {
		n -= cat.Weight
		if n < 0 {
			return cat, cat.Templates[s.rand.Intn(len(cat.Templates))]
		}
	}

	// Unreachable while weights are validated positive.
	last := s.cats[len(s.cats)-1]

	return last, last.Templates[0]
}

// Render substitutes data values into the template's placeholders.
func Render(t Template, data map[string]string) (string, error) {
	out := t.Text

	for _, key := range t.DataKeys {
		value, ok := data[key]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingData, key)
		}

		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}

	return out, nil
}
