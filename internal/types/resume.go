// Package types provides type definitions for structured data used throughout the resume-portfolio system.
package types

// Resume is the canonical structured resume shape. A normalized Resume always
// has every section present; missing input degrades to empty strings and
// empty slices, never to nil maps or partial shapes.
type Resume struct {
	Personal   Personal     `json:"personal"`
	Contact    Contact      `json:"contact"`
	Links      Links        `json:"links"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     []string     `json:"skills"`
	Education  []string     `json:"education"`
}

// Personal holds identity and headline fields.
// Photo is a legacy field kept aligned with PrimaryPhoto for older payloads.
type Personal struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	Photo          string `json:"photo"`
	PrimaryPhoto   string `json:"primaryPhoto"`
	SecondaryPhoto string `json:"secondaryPhoto"`
}

// Contact holds contact details. Email is either a syntactically valid
// address or empty after normalization.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// Links holds profile URLs; each is either a valid URL or empty.
type Links struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Portfolio string `json:"portfolio"`
}

// Experience is a single work history entry.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Project is a single project entry.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
}

// EmptyResume returns a fully-shaped zero-value resume with non-nil slices.
func EmptyResume() Resume {
	return Resume{
		Experience: []Experience{},
		Projects:   []Project{},
		Skills:     []string{},
		Education:  []string{},
	}
}

// HasContent reports whether the resume carries any usable extracted data:
// personal identity, contact details, or at least one structured section.
func (r Resume) HasContent() bool {
	if r.Personal.Name != "" || r.Personal.Title != "" || r.Personal.Summary != "" {
		return true
	}
	if r.Contact.Email != "" || r.Contact.Phone != "" || r.Contact.Location != "" {
		return true
	}
	return len(r.Experience) > 0 || len(r.Projects) > 0 || len(r.Skills) > 0 || len(r.Education) > 0
}
