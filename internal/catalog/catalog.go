package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Question is a single Likert item in the inventory.
type Question struct {
	ID       int      `yaml:"id" json:"id"`
	Category Category `yaml:"category" json:"category"`
	Code     string   `yaml:"code" json:"code"`
	Prompt   string   `yaml:"prompt" json:"prompt"`
}

// Catalog is an ordered, immutable set of questions with precomputed indices.
type Catalog struct {
	questions  []Question
	byID       map[int]int
	byCategory map[Category][]Question
}

type catalogFile struct {
	Questions []Question `yaml:"questions"`
}

//go:embed questions.yaml
var embeddedQuestions []byte

// defaultCatalog is built from the embedded question file at init.
var defaultCatalog *Catalog

func init() {
	c, err := Load(embeddedQuestions)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded questions: %v", err))
	}
	defaultCatalog = c
}

// Default returns the embedded reference catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Load parses a YAML question file and validates it.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	return New(f.Questions)
}

// New builds a catalog from questions already in display order.
func New(questions []Question) (*Catalog, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	c := &Catalog{
		questions:  make([]Question, len(questions)),
		byID:       make(map[int]int, len(questions)),
		byCategory: make(map[Category][]Question),
	}
	copy(c.questions, questions)

	for i, q := range c.questions {
		c.byID[q.ID] = i
		c.byCategory[q.Category] = append(c.byCategory[q.Category], q)
	}
	return c, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Questions returns a copy of all questions in display order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// At returns the question at a zero-based display index.
func (c *Catalog) At(index int) (Question, bool) {
	if index < 0 || index >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[index], true
}

// Get returns the question with the given ID.
func (c *Catalog) Get(id int) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Has reports whether id is a question ID in this catalog.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// IndexOf returns the display index of the question with the given ID.
func (c *Catalog) IndexOf(id int) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// ByCategory returns the questions in a category, in display order.
func (c *Catalog) ByCategory(cat Category) []Question {
	qs := c.byCategory[cat]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}

// Codes returns every question's export code in display order.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.questions))
	for i, q := range c.questions {
		codes[i] = q.Code
	}
	return codes
}
