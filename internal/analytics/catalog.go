package analytics

import (
	"fmt"
	"strings"
)

// DefaultProblemsPerConcept is the number of problems each concept defines unless configured otherwise.
const DefaultProblemsPerConcept = 15

// ConceptAll is the filter value that selects every concept.
const ConceptAll = "all"

// Concept describes one physics topic unit.
type Concept struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Problems int    `json:"problems"`
}

// Catalog is the ordered, read-only concept configuration shared by every query.
type Catalog struct {
	concepts []Concept
	index    map[string]int
	byName   map[string]int
}

// NewCatalog validates and freezes the provided concepts in their given order.
func NewCatalog(concepts ...Concept) (*Catalog, error) {
	if len(concepts) == 0 {
		return nil, fmt.Errorf("catalog requires at least one concept")
	}
	c := &Catalog{
		concepts: make([]Concept, 0, len(concepts)),
		index:    make(map[string]int, len(concepts)),
		byName:   make(map[string]int, len(concepts)),
	}
	for _, concept := range concepts {
		code := strings.TrimSpace(concept.Code)
		if code == "" {
			return nil, fmt.Errorf("concept code is required")
		}
		key := strings.ToLower(code)
		if _, exists := c.index[key]; exists {
			return nil, fmt.Errorf("duplicate concept code %q", code)
		}
		if concept.Problems < 0 {
			return nil, fmt.Errorf("concept %q has negative problem count", code)
		}
		name := strings.TrimSpace(concept.Name)
		if name == "" {
			name = code
		}
		pos := len(c.concepts)
		c.concepts = append(c.concepts, Concept{Code: code, Name: name, Problems: concept.Problems})
		c.index[key] = pos
		c.byName[strings.ToLower(name)] = pos
	}
	return c, nil
}

// DefaultCatalog returns the three kinematics concepts with the given number of problems each.
func DefaultCatalog(problemsPerConcept int) *Catalog {
	if problemsPerConcept <= 0 {
		problemsPerConcept = DefaultProblemsPerConcept
	}
	catalog, _ := NewCatalog(
		Concept{Code: "dd", Name: "Distance & Displacement", Problems: problemsPerConcept},
		Concept{Code: "sv", Name: "Speed & Velocity", Problems: problemsPerConcept},
		Concept{Code: "acc", Name: "Acceleration", Problems: problemsPerConcept},
	)
	return catalog
}

// Concepts returns a copy of the concepts in canonical order.
func (c *Catalog) Concepts() []Concept {
	out := make([]Concept, len(c.concepts))
	copy(out, c.concepts)
	return out
}

// Canonical maps a code or display name onto the canonical code.
// Unknown values are returned trimmed but otherwise untouched.
func (c *Catalog) Canonical(raw string) string {
	trimmed := strings.TrimSpace(raw)
	key := strings.ToLower(trimmed)
	if pos, ok := c.index[key]; ok {
		return c.concepts[pos].Code
	}
	if pos, ok := c.byName[key]; ok {
		return c.concepts[pos].Code
	}
	return trimmed
}

// Known reports whether code is a canonical catalog code.
func (c *Catalog) Known(code string) bool {
	_, ok := c.lookup(code)
	return ok
}

// Label returns the display name for a code, falling back to the code itself.
func (c *Catalog) Label(code string) string {
	if concept, ok := c.lookup(code); ok {
		return concept.Name
	}
	return code
}

// TotalProblems returns the progress denominator for a concept filter.
// An empty filter sums every concept; unknown concepts define no problems.
func (c *Catalog) TotalProblems(filter string) int {
	if filter == "" {
		total := 0
		for _, concept := range c.concepts {
			total += concept.Problems
		}
		return total
	}
	if concept, ok := c.lookup(filter); ok {
		return concept.Problems
	}
	return 0
}

// NormalizeFilter resolves a requested concept filter; "" means every concept.
func (c *Catalog) NormalizeFilter(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, ConceptAll) {
		return ""
	}
	return c.Canonical(trimmed)
}

func (c *Catalog) lookup(code string) (Concept, bool) {
	pos, ok := c.index[strings.ToLower(code)]
	if !ok || c.concepts[pos].Code != code {
		return Concept{}, false
	}
	return c.concepts[pos], true
}
