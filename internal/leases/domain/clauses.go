package domain

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed clauses.yaml
var clausesYAML []byte

// Clause is a predefined lease clause the landlord can tick in the builder.
type Clause struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Text    string `yaml:"text" json:"text"`
	Default bool   `yaml:"default" json:"default"`
}

type clauseFile struct {
	Clauses []Clause `yaml:"clauses"`
}

var loadCatalog = sync.OnceValues(func() ([]Clause, error) {
	return parseCatalog(clausesYAML)
})

func parseCatalog(data []byte) ([]Clause, error) {
	var file clauseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse clause catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Clauses))
	for _, c := range file.Clauses {
		if c.ID == "" || c.Text == "" {
			return nil, fmt.Errorf("clause catalog: entry %q is missing id or text", c.Title)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("clause catalog: duplicate id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return file.Clauses, nil
}

// Catalog returns the predefined clauses in display order. The catalog is
// embedded, so an error here is a build defect.
func Catalog() []Clause {
	clauses, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	return clauses
}

// ClauseByID looks up a predefined clause.
func ClauseByID(id string) (Clause, bool) {
	for _, c := range Catalog() {
		if c.ID == id {
			return c, true
		}
	}
	return Clause{}, false
}

// ResolveClauses returns clause texts in document order: predefined clauses
// first, in selection order, then custom clauses. Unknown IDs are skipped.
func ResolveClauses(set ClauseSet) []string {
	texts := make([]string, 0, len(set.Predefined)+len(set.Custom))
	for _, id := range set.Predefined {
		if c, ok := ClauseByID(id); ok {
			texts = append(texts, c.Text)
		}
	}
	for _, custom := range set.Custom {
		if custom != "" {
			texts = append(texts, custom)
		}
	}
	return texts
}
