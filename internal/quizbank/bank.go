package quizbank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBankYAML []byte

//go:embed bank.schema.json
var bankSchemaJSON []byte

// ErrUnknownCategory is returned for a category outside the bank.
var ErrUnknownCategory = errors.New("unknown quiz category")

// Category identifies one quiz topic.
type Category string

const (
	HTML       Category = "html"
	CSS        Category = "css"
	JavaScript Category = "javascript"
)

// AllCategories is the fixed category enumeration, in display order.
func AllCategories() []Category {
	return []Category{HTML, CSS, JavaScript}
}

// ParseCategory maps user input such as "JS" or " Html " to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return HTML, nil
	case "css":
		return CSS, nil
	case "javascript", "js":
		return JavaScript, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case HTML:
		return "HTML"
	case CSS:
		return "CSS"
	case JavaScript:
		return "JavaScript"
	}
	return string(c)
}

// Question is one multiple-choice question.
type Question struct {
	Prompt      string   `yaml:"prompt" json:"prompt"`
	Options     []string `yaml:"options" json:"options"`
	Correct     int      `yaml:"correct" json:"correct"`
	Explanation string   `yaml:"explanation" json:"explanation"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	return q.Options[q.Correct]
}

type bankFile struct {
	Categories []struct {
		ID        Category   `yaml:"id"`
		Title     string     `yaml:"title"`
		Questions []Question `yaml:"questions"`
	} `yaml:"categories"`
}

// Bank is the read-only table of categories to ordered questions.
type Bank struct {
	order     []Category
	titles    map[Category]string
	questions map[Category][]Question
}

// Load parses and validates a YAML question bank.
func Load(data []byte) (*Bank, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	b := &Bank{
		titles:    make(map[Category]string),
		questions: make(map[Category][]Question),
	}
	for _, c := range f.Categories {
		if _, dup := b.questions[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.ID)
		}
		b.order = append(b.order, c.ID)
		b.titles[c.ID] = c.Title
		b.questions[c.ID] = c.Questions
	}
	return b, nil
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the embedded question bank. It panics if the embedded
// data is invalid, which the package tests rule out.
func Default() *Bank {
	defaultOnce.Do(func() {
		b, err := Load(defaultBankYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded question bank: %v", err))
		}
		defaultBank = b
	})
	return defaultBank
}

// Categories returns the bank's categories in file order.
func (b *Bank) Categories() []Category {
	return slices.Clone(b.order)
}

// Title returns the configured title for c, or its display name.
func (b *Bank) Title(c Category) string {
	if t, ok := b.titles[c]; ok {
		return t
	}
	return c.DisplayName()
}

// Questions returns a copy of the questions for c.
func (b *Bank) Questions(c Category) ([]Question, error) {
	qs, ok := b.questions[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out, nil
}

// validate checks the decoded YAML document against the embedded schema.
func validate(doc any) error {
	// YAML decodes integers as int; round-trip through JSON so the validator
	// sees the same value shapes it would for a JSON document.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize bank: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(b, &normalized); err != nil {
		return fmt.Errorf("normalize bank: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("bank schema validation failed: %w", err)
	}
	return nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(bankSchemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://quizbank.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(url)
	})
	return schema, schemaErr
}
