package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lvrach/study-sessions/internal/validate"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrCourseNotFound is returned when no catalog key matches a course code.
var ErrCourseNotFound = errors.New("course not found in catalog")

// Course holds the announcement text for one course.
type Course struct {
	Key        string `yaml:"key" validate:"required"`
	FullName   string `yaml:"full_name" validate:"required"`
	Enrollment string `yaml:"enrollment" validate:"required"`
	Activity   string `yaml:"activity" validate:"required"`
	Summary    string `yaml:"summary,omitempty"`
}

// SummaryOr returns the course summary, or the generic hosting sentence.
func (c Course) SummaryOr() string {
	if c.Summary != "" {
		return c.Summary
	}
	return "I will be hosting a study group for students in " + c.Enrollment
}

// Misc holds the message snippets shared by every course.
type Misc struct {
	Greetings         []string `yaml:"greetings" validate:"min=1,dive,required"`
	PostSessionThanks []string `yaml:"post_session_thanks" validate:"min=1,dive,required"`
}

// Catalog is the ordered course list plus shared snippets.
type Catalog struct {
	Courses []Course `yaml:"courses" validate:"min=1,dive"`
	Misc    Misc     `yaml:"misc"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path. An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path) //nolint:gosec // operator-provided catalog path
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Lookup returns the first course, in catalog order, whose key appears
// case-insensitively inside code. "PY101 / PY109" matches key "py109".
func (c *Catalog) Lookup(code string) (Course, error) {
	haystack := strings.ToLower(code)
	for _, course := range c.Courses {
		if strings.Contains(haystack, strings.ToLower(course.Key)) {
			return course, nil
		}
	}
	return Course{}, fmt.Errorf("%w: none of [%s] appear in %q",
		ErrCourseNotFound, strings.Join(c.Keys(), ", "), code)
}

// Keys returns the course keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Courses))
	for i, course := range c.Courses {
		keys[i] = course.Key
	}
	return keys
}

// Greeting picks a random greeting.
func (c *Catalog) Greeting(r *rand.Rand) string {
	return pick(r, c.Misc.Greetings)
}

// Thanks picks a random post-session thank-you line.
func (c *Catalog) Thanks(r *rand.Rand) string {
	return pick(r, c.Misc.PostSessionThanks)
}

func pick(r *rand.Rand, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[r.IntN(len(items))]
}
