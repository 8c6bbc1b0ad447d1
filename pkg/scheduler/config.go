package scheduler

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"gopkg.in/yaml.v3"
)

// Role categories. Membership is fixed by configuration, never by the template.
const (
	CategoryICA      = "ica"
	CategoryMiniTrek = "minitrek"
	CategoryCourse   = "course"
	CategoryTreeTrek = "treetrek"
	CategoryShed     = "shed"
	// CategoryAerial holds the optional course prefix role, which follows the
	// general AATT rule instead of the early-only course rule.
	CategoryAerial = "aerial"
)

//go:embed roles.yaml
var defaultRoles []byte

// Categories lists the role names belonging to each category
type Categories struct {
	ICA      []string `yaml:"ica"`
	MiniTrek []string `yaml:"minitrek"`
	Course   []string `yaml:"course"`
	TreeTrek []string `yaml:"treetrek"`
	Shed     []string `yaml:"shed"`
}

// PeriodConfig describes the half-hour slots of one period of the day
type PeriodConfig struct {
	Name   string   `yaml:"name"`
	SwapAt string   `yaml:"swap_at"`
	Slots  []string `yaml:"slots"`
}

// Config is the static role configuration shared by every roster run
type Config struct {
	Categories     Categories     `yaml:"categories"`
	CoursePrefix   string         `yaml:"course_prefix"`
	Priority       []string       `yaml:"priority"`
	Hold           []string       `yaml:"hold"`
	Swaps          [][]string     `yaml:"swaps"`
	KitUpPrimary   []string       `yaml:"kitup_primary"`
	KitUpSecondary []string       `yaml:"kitup_secondary"`
	Critical       []string       `yaml:"critical"`
	EveningCarry   []string       `yaml:"evening_carry"`
	Periods        []PeriodConfig `yaml:"periods"`

	categoryOf map[string]string
}

var loadDefault = sync.OnceValues(func() (*Config, error) {
	return ParseConfig(defaultRoles)
})

// DefaultConfig returns the embedded role configuration, parsed once per process
func DefaultConfig() *Config {
	cfg, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded roles.yaml: %v", err))
	}
	return cfg
}

// LoadConfig reads a role configuration file from disk
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML role configuration
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode role config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.index()
	return &cfg, nil
}

func (c *Config) validate() error {
	for _, name := range []string{models.PeriodMorning, models.PeriodAfternoon, models.PeriodEvening} {
		p, ok := c.period(name)
		if !ok {
			return fmt.Errorf("role config: period %q missing", name)
		}
		if len(p.Slots) == 0 {
			return fmt.Errorf("role config: period %q has no slots", name)
		}
		if p.SwapAt != "" && p.swapIndex() < 0 {
			return fmt.Errorf("role config: swap slot %q not in period %q", p.SwapAt, name)
		}
	}
	for _, pair := range c.Swaps {
		if len(pair) != 2 {
			return fmt.Errorf("role config: swap %v must name exactly two roles", pair)
		}
	}
	if len(c.Categories.ICA) == 0 {
		return fmt.Errorf("role config: no ICA roles")
	}
	return nil
}

func (c *Config) index() {
	c.categoryOf = make(map[string]string)
	add := func(cat string, roles []string) {
		for _, r := range roles {
			c.categoryOf[r] = cat
		}
	}
	add(CategoryICA, c.Categories.ICA)
	add(CategoryMiniTrek, c.Categories.MiniTrek)
	add(CategoryCourse, c.Categories.Course)
	add(CategoryTreeTrek, c.Categories.TreeTrek)
	add(CategoryShed, c.Categories.Shed)
	if c.CoursePrefix != "" {
		c.categoryOf[c.CoursePrefix] = CategoryAerial
	}
}

// CategoryOf returns the category of a role, or "" for roles the
// configuration does not know about
func (c *Config) CategoryOf(role string) string {
	return c.categoryOf[role]
}

func (c *Config) period(name string) (PeriodConfig, bool) {
	for _, p := range c.Periods {
		if p.Name == name {
			return p, true
		}
	}
	return PeriodConfig{}, false
}

func (p PeriodConfig) swapIndex() int {
	if p.SwapAt == "" {
		return -1
	}
	for i, s := range p.Slots {
		if s == p.SwapAt {
			return i
		}
	}
	return -1
}

// icaRoles returns the first n ICA roles, n clamped to [2, len(ICA roles)] and at most 4
func (c *Config) icaRoles(n int) []string {
	n = clampICA(n)
	if n > len(c.Categories.ICA) {
		n = len(c.Categories.ICA)
	}
	return c.Categories.ICA[:n]
}

func clampICA(n int) int {
	switch {
	case n < 2:
		return 2
	case n > 4:
		return 4
	}
	return n
}

// courseOrder returns the rotation list for the template: the prefix role
// when present, then every configured course role on the template
func (c *Config) courseOrder(tpl models.RoleTemplate) []string {
	var order []string
	if c.CoursePrefix != "" && tpl.Has(c.CoursePrefix) {
		order = append(order, c.CoursePrefix)
	}
	for _, r := range c.Categories.Course {
		if tpl.Has(r) {
			order = append(order, r)
		}
	}
	return order
}
