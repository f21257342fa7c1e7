package document

import (
	"bytes"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"text/template"
	"time"

	"github.com/lvrach/study-sessions/internal/catalog"
	"github.com/lvrach/study-sessions/internal/session"
)

//go:embed announcement.md.tmpl
var announcementTemplate string

// Links are the URLs referenced from the announcement checklist and posts.
type Links struct {
	Forum    string `koanf:"forum" yaml:"forum" validate:"required"`
	Events   string `koanf:"events" yaml:"events" validate:"required"`
	Feedback string `koanf:"feedback" yaml:"feedback" validate:"required"`
	Tracking string `koanf:"tracking" yaml:"tracking" validate:"required"`
	Gather   string `koanf:"gather" yaml:"gather" validate:"required"`
}

// DefaultLinks returns the links used when the config does not override them.
func DefaultLinks() Links {
	return Links{
		Forum:    "https://launchschool.com/forum?tab=Study+Groups",
		Events:   "https://launchschool.com/events",
		Feedback: "https://docs.google.com/forms/d/e/1FAIpQLSfSFQqEZnxjY7Z_pKyIYociBCYApoKSpe1VKW_XCRd5Occlqw/viewform",
		Tracking: "https://docs.google.com/forms/d/e/1FAIpQLScLVGNxnT2rS4Og_qCg-A673DdlezGELdk0P4AwkTzSWGWHNw/viewform",
		Gather:   "https://launchschool.com/gists/3de2ddcc",
	}
}

// Options control the parts of an announcement that are not per-session.
type Options struct {
	Organizer string
	Duration  time.Duration
	Seats     int
	Links     Links
	// Rand picks greetings and thank-you lines; nil seeds from the runtime.
	Rand *rand.Rand
}

// Renderer renders session announcements.
type Renderer struct {
	tmpl    *template.Template
	opts    Options
	catalog *catalog.Catalog
}

type templateData struct {
	session.Session
	Code      string
	Organizer string
	Duration  string
	Seats     int
	Links     Links
}

// NewRenderer parses the announcement template.
func NewRenderer(c *catalog.Catalog, opts Options) (*Renderer, error) {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // message variety, not security
	}

	r := &Renderer{opts: opts, catalog: c}
	tmpl, err := template.New("announcement").
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"greeting": func() string { return r.catalog.Greeting(r.opts.Rand) },
			"thanks":   func() string { return r.catalog.Thanks(r.opts.Rand) },
		}).
		Parse(announcementTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse announcement template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render returns the markdown announcement for s.
func (r *Renderer) Render(s session.Session) (string, error) {
	data := templateData{
		Session:   s,
		Code:      s.Entry.Course,
		Organizer: r.opts.Organizer,
		Duration:  HumanDuration(r.opts.Duration),
		Seats:     r.opts.Seats,
		Links:     r.opts.Links,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", s.FileName(), err)
	}
	return buf.String(), nil
}

// HumanDuration renders 60m as "1 hour", 90m as "90 minutes", 2h as "2 hours".
func HumanDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	switch {
	case minutes == 60:
		return "1 hour"
	case minutes > 0 && minutes%60 == 0:
		return fmt.Sprintf("%d hours", minutes/60)
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
