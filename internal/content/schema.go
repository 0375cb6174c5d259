package content

// PersonSchema is the schema.org Person embedded in the page as JSON-LD.
type PersonSchema struct {
	Context   string   `json:"@context"`
	Type      string   `json:"@type"`
	Name      string   `json:"name"`
	JobTitle  string   `json:"jobTitle"`
	Email     string   `json:"email,omitempty"`
	Telephone string   `json:"telephone,omitempty"`
	AlumniOf  []string `json:"alumniOf"`
}

// Person builds the JSON-LD description of r.
func Person(r *Resume) PersonSchema {
	p := PersonSchema{
		Context:   "https://schema.org",
		Type:      "Person",
		Name:      r.Name,
		JobTitle:  r.Role,
		Telephone: r.Contact.Phone,
		AlumniOf:  make([]string, 0, len(r.Education)),
	}
	if r.Contact.Email != "" {
		p.Email = "mailto:" + r.Contact.Email
	}
	for _, e := range r.Education {
		p.AlumniOf = append(p.AlumniOf, e.Institution)
	}
	return p
}
