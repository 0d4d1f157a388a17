package preview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zachkp/portfolio/internal/content"
)

type lineKind int

const (
	kindText lineKind = iota
	kindHeading
	kindTitle
	kindHero
	kindMuted
)

type line struct {
	text string
	kind lineKind
}

// layout is the page flattened to terminal lines.
type layout struct {
	lines []line
	// starts[i] is the first line of content.Sections[i].
	starts []int
}

type builder struct {
	width  int
	lines  []line
	starts []int
}

func (b *builder) section() {
	if len(b.lines) > 0 {
		b.blank()
	}
	b.starts = append(b.starts, len(b.lines))
}

func (b *builder) add(kind lineKind, text string) {
	b.lines = append(b.lines, line{text: text, kind: kind})
}

func (b *builder) blank() {
	b.add(kindText, "")
}

// para wraps text to the layout width with the given indent.
func (b *builder) para(kind lineKind, indent, text string) {
	for _, l := range wrap(text, b.width-runewidth.StringWidth(indent)) {
		b.add(kind, indent+l)
	}
}

func (b *builder) bullets(items []string) {
	for _, it := range items {
		ls := wrap(it, b.width-4)
		for i, l := range ls {
			prefix := "    "
			if i == 0 {
				prefix = "  • "
			}
			b.add(kindText, prefix+l)
		}
	}
}

func newLayout(p *content.Portfolio, width int) layout {
	b := &builder{width: max(width-2, 20)}
	prof := p.Profile

	b.section() // home
	b.blank()
	b.add(kindTitle, "Hi, I'm "+prof.Name)
	b.add(kindHero, "")
	b.blank()
	b.para(kindText, "", prof.Intro)
	b.blank()
	b.add(kindMuted, "Hire me: "+prof.Email)

	b.section() // about
	b.add(kindHeading, "About Me")
	b.blank()
	for _, par := range strings.Split(content.PlainText(prof.About), "\n\n") {
		b.para(kindText, "", par)
		b.blank()
	}
	b.add(kindText, "Name: "+prof.Name)
	b.add(kindText, "Email: "+prof.Email)
	b.add(kindText, "Location: "+prof.Location)
	var socials []string
	for _, s := range prof.Socials {
		socials = append(socials, s.Label+" "+s.Href)
	}
	b.para(kindMuted, "", strings.Join(socials, "  "))

	b.section() // skills
	b.add(kindHeading, "Skills")
	b.blank()
	for _, s := range p.Skills {
		b.para(kindText, "  ", fmt.Sprintf("%s: %s", s.Name, s.Description))
	}

	b.section() // projects
	b.add(kindHeading, "Projects")
	for _, pr := range p.Projects {
		b.blank()
		b.add(kindTitle, pr.Title)
		b.para(kindText, "  ", content.PlainText(pr.Description))
		if len(pr.Tech) > 0 {
			b.para(kindMuted, "  ", "Tech: "+strings.Join(pr.Tech, ", "))
		}
		if pr.URL != "" {
			b.add(kindMuted, "  "+pr.URL)
		}
	}

	b.section() // services
	b.add(kindHeading, "Services")
	for _, s := range p.Services {
		b.blank()
		b.add(kindTitle, s.Title)
		b.para(kindText, "  ", content.PlainText(s.Description))
		b.bullets(s.Features)
	}

	b.section() // experience
	b.add(kindHeading, "Experience")
	for _, j := range p.Experience {
		b.blank()
		b.add(kindTitle, j.Title)
		b.add(kindMuted, "  "+j.Company+" · "+j.Period)
		b.para(kindText, "  ", j.Description)
		b.bullets(j.Achievements)
	}

	b.section() // education
	b.add(kindHeading, "Education")
	for _, d := range p.Education {
		b.blank()
		b.add(kindTitle, d.Degree)
		b.add(kindMuted, "  "+d.Institution+" · "+d.Period)
		b.para(kindText, "  ", d.Description)
		if d.Grade != "" {
			b.para(kindText, "  ", "Grade: "+d.Grade)
		}
		if d.Subjects != "" {
			b.para(kindText, "  ", "Key Subjects: "+d.Subjects)
		}
	}

	b.section() // contact
	b.add(kindHeading, "Get In Touch")
	b.blank()
	b.para(kindText, "", p.Contact.Intro)
	b.blank()
	for _, it := range p.Contact.Items {
		b.add(kindText, "  "+it.Title+": "+it.Value)
	}
	b.blank()
	b.para(kindMuted, "", prof.Footer)

	return layout{lines: b.lines, starts: b.starts}
}

// wrap breaks s into lines no wider than width display cells. Words wider
// than width are hard-split.
func wrap(s string, width int) []string {
	width = max(width, 1)
	var (
		out []string
		cur strings.Builder
		w   int
	)
	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
		w = 0
	}

	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		for ww > width {
			if w > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			out = append(out, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		if w > 0 && w+1+ww > width {
			flush()
		}
		if w > 0 {
			cur.WriteByte(' ')
			w++
		}
		cur.WriteString(word)
		w += ww
	}
	if w > 0 {
		flush()
	}
	return out
}
