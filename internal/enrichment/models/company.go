package models

// Company is the normalized company schema.
type Company struct {
	Name          string         `json:"name,omitempty"`
	Domain        string         `json:"domain,omitempty"`
	Description   string         `json:"description,omitempty"`
	Industry      string         `json:"industry,omitempty"`
	Employees     int            `json:"employees,omitempty"`
	EmployeeRange string         `json:"employee_range,omitempty"`
	Revenue       string         `json:"revenue,omitempty"`
	FoundedYear   int            `json:"founded_year,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	LogoURL       string         `json:"logo_url,omitempty"`
	Location      *Location      `json:"location,omitempty"`
	TechStack     []string       `json:"tech_stack,omitempty"`
	Social        *CompanySocial `json:"social,omitempty"`
}

type CompanySocial struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

func (s *CompanySocial) IsEmpty() bool {
	return s == nil || isBlank(s.LinkedIn, s.Twitter, s.Facebook, s.GitHub, s.Website)
}

// MergeFrom copies into c every field that c lacks and src has.
func (c *Company) MergeFrom(src *Company) {
	if c == nil || src == nil {
		return
	}
	fillString(&c.Name, src.Name)
	fillString(&c.Domain, src.Domain)
	fillString(&c.Description, src.Description)
	fillString(&c.Industry, src.Industry)
	fillInt(&c.Employees, src.Employees)
	fillString(&c.EmployeeRange, src.EmployeeRange)
	fillString(&c.Revenue, src.Revenue)
	fillInt(&c.FoundedYear, src.FoundedYear)
	fillString(&c.Phone, src.Phone)
	fillString(&c.LogoURL, src.LogoURL)
	mergeGroup(&c.Location, src.Location, mergeLocation)
	fillSlice(&c.TechStack, src.TechStack)
	mergeGroup(&c.Social, src.Social, func(dst, src *CompanySocial) {
		fillString(&dst.LinkedIn, src.LinkedIn)
		fillString(&dst.Twitter, src.Twitter)
		fillString(&dst.Facebook, src.Facebook)
		fillString(&dst.GitHub, src.GitHub)
		fillString(&dst.Website, src.Website)
	})
}
