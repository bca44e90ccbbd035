package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Section names one content endpoint. Values double as cache keys and metric
// labels.
type Section string

const (
	SectionHome     Section = "home"
	SectionProjects Section = "projects"
	SectionPapers   Section = "papers"
	SectionAwards   Section = "awards"
	SectionPatents  Section = "patent"
	SectionSeminars Section = "seminars"
)

// Sections lists every section in fetch order.
func Sections() []Section {
	return []Section{
		SectionHome,
		SectionProjects,
		SectionPapers,
		SectionAwards,
		SectionPatents,
		SectionSeminars,
	}
}

// endpoint returns the path relative to the section's base URL.
func (s Section) endpoint() string {
	if s == SectionSeminars {
		return "notion/seminars"
	}
	return string(s)
}

// Slide is one hero image on the home page.
type Slide struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
}

// ScheduleItem is one entry in the home page timeline. Date is YYYY-MM-DD.
type ScheduleItem struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// Day parses Date in loc. ok is false for malformed dates.
func (s ScheduleItem) Day(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s.Date), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Home is the payload of the home endpoint.
type Home struct {
	Slides   []Slide        `json:"slides"`
	Schedule []ScheduleItem `json:"schedule"`
	Projects []string       `json:"projects"`
	News     []string       `json:"news"`
}

// Project is one lab project card.
type Project struct {
	Year         int      `json:"year"`
	ImageURL     string   `json:"image_url"`
	SpecialNote  string   `json:"special_note,omitempty"`
	Name         string   `json:"project_name"`
	Participants []string `json:"participants"`
	QRLink       string   `json:"qr_link,omitempty"`
}

// Paper is one published paper.
type Paper struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// Award is one award certificate.
type Award struct {
	ID          int    `json:"id"`
	Year        int    `json:"year"`
	ImageURL    string `json:"image_url"`
	ImageType   string `json:"image_type"`
	Orientation string `json:"orientation"`
}

// Portrait reports whether the certificate is taller than wide.
func (a Award) Portrait() bool {
	return strings.EqualFold(a.Orientation, "portrait")
}

// Patent is one registered patent document.
type Patent struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	PDFURL string `json:"pdf_url"`
}

// Seminar is one seminar page published from the lab's notes workspace.
type Seminar struct {
	Title string `json:"title"`
	Cover string `json:"cover"`
	Icon  string `json:"icon,omitempty"`
	Link  string `json:"link"`
}

const (
	defaultSeminarTitle = "Untitled"
	defaultSeminarCover = "/default-banner.png"
	defaultSeminarLink  = "#"
)

func (s Seminar) withDefaults() Seminar {
	if strings.TrimSpace(s.Title) == "" {
		s.Title = defaultSeminarTitle
	}
	if strings.TrimSpace(s.Cover) == "" {
		s.Cover = defaultSeminarCover
	}
	if strings.TrimSpace(s.Link) == "" {
		s.Link = defaultSeminarLink
	}
	return s
}

// Bundle holds one payload per section.
type Bundle struct {
	Home     Home
	Projects []Project
	Papers   []Paper
	Awards   []Award
	Patents  []Patent
	Seminars []Seminar
}

// Value returns the payload stored for section.
func (b *Bundle) Value(section Section) (any, error) {
	switch section {
	case SectionHome:
		return b.Home, nil
	case SectionProjects:
		return b.Projects, nil
	case SectionPapers:
		return b.Papers, nil
	case SectionAwards:
		return b.Awards, nil
	case SectionPatents:
		return b.Patents, nil
	case SectionSeminars:
		return b.Seminars, nil
	default:
		return nil, fmt.Errorf("unknown section %q", section)
	}
}

// Encode marshals one section's payload for storage.
func (b *Bundle) Encode(section Section) ([]byte, error) {
	v, err := b.Value(section)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", section, err)
	}
	return data, nil
}

// Decode replaces one section's payload from data produced by Encode.
func (b *Bundle) Decode(section Section, data []byte) error {
	var dest any
	switch section {
	case SectionHome:
		dest = &b.Home
	case SectionProjects:
		dest = &b.Projects
	case SectionPapers:
		dest = &b.Papers
	case SectionAwards:
		dest = &b.Awards
	case SectionPatents:
		dest = &b.Patents
	case SectionSeminars:
		dest = &b.Seminars
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", section, err)
	}
	return nil
}

// Result is the outcome of one FetchAll round. Sections missing from Errs were
// fetched successfully and their payload is in Bundle.
type Result struct {
	Bundle    Bundle
	Errs      map[Section]error
	FetchedAt time.Time
}

// OK reports whether section was fetched successfully.
func (r Result) OK(section Section) bool {
	_, failed := r.Errs[section]
	return !failed
}

// AllFailed reports whether no section could be fetched.
func (r Result) AllFailed() bool {
	return len(r.Errs) == len(Sections())
}
