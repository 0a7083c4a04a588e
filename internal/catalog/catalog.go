// Package catalog holds the per-role tables that drive quiz generation,
// feedback and remediation: topic and skill vocabularies, resource
// recommendations, generic study tasks and the static question bank.
package catalog

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed roles.yaml
var defaultCatalog []byte

type GenericTodo struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Priority    string `yaml:"priority" json:"priority"`
}

type Role struct {
	ID              string           `yaml:"id" json:"id"`
	Title           string           `yaml:"title" json:"title"`
	Topics          []string         `yaml:"topics" json:"topics"`
	Skills          []string         `yaml:"skills" json:"skills"`
	Recommendations []string         `yaml:"recommendations" json:"recommendations"`
	GenericTodos    []GenericTodo    `yaml:"generic_todos" json:"genericTodos,omitempty"`
	Questions       []model.Question `yaml:"questions" json:"-"`
}

// PrimaryTopic is the topic assigned to generated questions that carry none.
func (r *Role) PrimaryTopic() string {
	if len(r.Topics) == 0 {
		return "General"
	}
	return r.Topics[0]
}

type Catalog struct {
	DefaultRole string  `yaml:"default_role"`
	Roles       []*Role `yaml:"roles"`

	byID map[string]*Role
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded role catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse role catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var validDifficulty = map[string]bool{
	util.DifficultyEasy:   true,
	util.DifficultyMedium: true,
	util.DifficultyHard:   true,
}

var validPriority = map[string]bool{
	util.PriorityHigh:   true,
	util.PriorityMedium: true,
	util.PriorityLow:    true,
}

// Validate checks the catalog and builds the role index.
func (c *Catalog) Validate() error {
	var errs []error
	index := make(map[string]*Role, len(c.Roles))

	for _, r := range c.Roles {
		if r == nil || strings.TrimSpace(r.ID) == "" {
			errs = append(errs, errors.New("role with empty id"))
			continue
		}
		if _, dup := index[r.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate role %q", r.ID))
			continue
		}
		index[r.ID] = r

		if len(r.Questions) == 0 {
			errs = append(errs, fmt.Errorf("role %q has no bank questions", r.ID))
		}
		for i, q := range r.Questions {
			if strings.TrimSpace(q.Question) == "" {
				errs = append(errs, fmt.Errorf("role %q question %d has no text", r.ID, i))
			}
			if !q.HasOption(q.CorrectAnswer) {
				errs = append(errs, fmt.Errorf("role %q question %d: correct answer %q is not an option", r.ID, i, q.CorrectAnswer))
			}
			if !validDifficulty[q.Difficulty] {
				errs = append(errs, fmt.Errorf("role %q question %d: invalid difficulty %q", r.ID, i, q.Difficulty))
			}
		}
		for i, t := range r.GenericTodos {
			if !validPriority[t.Priority] {
				errs = append(errs, fmt.Errorf("role %q generic todo %d: invalid priority %q", r.ID, i, t.Priority))
			}
		}
	}

	if _, ok := index[c.DefaultRole]; !ok {
		errs = append(errs, fmt.Errorf("default role %q is not defined", c.DefaultRole))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid role catalog: %w", err)
	}
	c.byID = index
	return nil
}

// Lookup returns the role with the given id, if defined.
func (c *Catalog) Lookup(id string) (*Role, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Resolve returns the role with the given id, or the default role for unknown ids.
func (c *Catalog) Resolve(id string) *Role {
	if r, ok := c.byID[id]; ok {
		return r
	}
	return c.byID[c.DefaultRole]
}

// Bank returns a copy of the static question set for role, falling back to
// the default role's set for unknown roles.
func (c *Catalog) Bank(id string) []model.Question {
	src := c.Resolve(id).Questions
	out := make([]model.Question, len(src))
	for i, q := range src {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Recommendations returns the study recommendations for role; unknown roles have none.
func (c *Catalog) Recommendations(id string) []string {
	if r, ok := c.byID[id]; ok {
		return r.Recommendations
	}
	return nil
}

// GenericTodos returns the role's generic study tasks; unknown roles have none.
func (c *Catalog) GenericTodos(id string) []GenericTodo {
	if r, ok := c.byID[id]; ok {
		return r.GenericTodos
	}
	return nil
}

func (c *Catalog) RoleIDs() []string {
	ids := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}
