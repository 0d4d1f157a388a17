// Package content holds the portfolio's copy: profile, skills, projects,
// services, experience, education and contact details.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultDocument []byte

// Sections lists the page sections in document order. Every nav link and
// every <section id> on the page comes from here.
var Sections = []string{
	"home",
	"about",
	"skills",
	"projects",
	"services",
	"experience",
	"education",
	"contact",
}

type Portfolio struct {
	Profile    Profile     `yaml:"profile"`
	Skills     []Skill     `yaml:"skills"`
	Projects   []Project   `yaml:"projects"`
	Services   []Service   `yaml:"services"`
	Experience []Job       `yaml:"experience"`
	Education  []Degree    `yaml:"education"`
	Contact    ContactInfo `yaml:"contact"`
}

type Profile struct {
	Name     string   `yaml:"name"`
	Initial  string   `yaml:"initial"`
	Headline string   `yaml:"headline"`
	Roles    []string `yaml:"roles"`
	Intro    string   `yaml:"intro"`
	Email    string   `yaml:"email"`
	Location string   `yaml:"location"`
	Image    string   `yaml:"image"`
	CV       string   `yaml:"cv"`
	Hire     Hire     `yaml:"hire"`
	About    string   `yaml:"about"` // markdown
	Footer   string   `yaml:"footer"`
	Socials  []Link   `yaml:"socials"`
}

// Hire is the prefilled message behind the hero's "Hire Me" button.
type Hire struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

type Link struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
	Href  string `yaml:"href"`
}

type Skill struct {
	Icon        string `yaml:"icon"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"` // markdown
	Image       string   `yaml:"image"`
	Tech        []string `yaml:"tech"`
	URL         string   `yaml:"url"`
}

type Service struct {
	Icon        string   `yaml:"icon"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"` // markdown
	Features    []string `yaml:"features"`
}

type Job struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Period       string   `yaml:"period"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

type Degree struct {
	Degree      string `yaml:"degree"`
	Period      string `yaml:"period"`
	Institution string `yaml:"institution"`
	Description string `yaml:"description"`
	Grade       string `yaml:"grade"`
	Subjects    string `yaml:"subjects"`
}

type ContactInfo struct {
	Intro string        `yaml:"intro"`
	Items []ContactItem `yaml:"items"`
}

type ContactItem struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Value string `yaml:"value"`
}

// Default returns the built-in portfolio.
func Default() (*Portfolio, error) {
	return Parse(defaultDocument)
}

// Load reads a portfolio from path. An empty path yields the built-in one.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML portfolio document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing portfolio: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the fields the page cannot render without.
func (p *Portfolio) Validate() error {
	if p.Profile.Name == "" {
		return errors.New("profile.name is required")
	}
	if p.Profile.Email == "" {
		return errors.New("profile.email is required")
	}
	if len(p.Profile.Roles) == 0 {
		return errors.New("profile.roles must list at least one role")
	}
	for i, r := range p.Profile.Roles {
		if r == "" {
			return fmt.Errorf("profile.roles[%d] is empty", i)
		}
	}
	for i, pr := range p.Projects {
		if pr.Title == "" {
			return fmt.Errorf("projects[%d].title is required", i)
		}
	}
	return nil
}

// BrandInitial returns the brand letter, falling back to the first rune of the name.
func (p *Profile) BrandInitial() string {
	if p.Initial != "" {
		return p.Initial
	}
	for _, r := range p.Name {
		return string(r)
	}
	return ""
}
