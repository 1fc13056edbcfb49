package models

// Person is the normalized person schema shared by every adapter and the
// merged result. A nil group means no provider supplied any of its fields.
type Person struct {
	FullName     string        `json:"full_name,omitempty"`
	FirstName    string        `json:"first_name,omitempty"`
	LastName     string        `json:"last_name,omitempty"`
	Email        string        `json:"email,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	Professional *Professional `json:"professional,omitempty"`
	Contact      *Contact      `json:"contact,omitempty"`
	Location     *Location     `json:"location,omitempty"`
	Social       *Social       `json:"social,omitempty"`
	Skills       []string      `json:"skills,omitempty"`
}

type Professional struct {
	CurrentTitle    string `json:"current_title,omitempty"`
	CurrentCompany  string `json:"current_company,omitempty"`
	CompanyDomain   string `json:"company_domain,omitempty"`
	CompanyIndustry string `json:"company_industry,omitempty"`
	Seniority       string `json:"seniority,omitempty"`
	Role            string `json:"role,omitempty"`
	Headline        string `json:"headline,omitempty"`
}

func (p *Professional) IsEmpty() bool {
	return p == nil || isBlank(p.CurrentTitle, p.CurrentCompany, p.CompanyDomain,
		p.CompanyIndustry, p.Seniority, p.Role, p.Headline)
}

// Contact holds reachability facts. The verification flags are pointers
// because false is a real answer distinct from "unknown".
type Contact struct {
	Phone              string `json:"phone,omitempty"`
	EmailVerified      *bool  `json:"email_verified,omitempty"`
	EmailConfidence    *int   `json:"email_confidence,omitempty"`
	EmailDisposable    *bool  `json:"email_disposable,omitempty"`
	EmailWebmail       *bool  `json:"email_webmail,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
}

func (c *Contact) IsEmpty() bool {
	return c == nil || (isBlank(c.Phone, c.VerificationStatus) &&
		c.EmailVerified == nil && c.EmailConfidence == nil &&
		c.EmailDisposable == nil && c.EmailWebmail == nil)
}

// Location is shared by persons and companies. Raw keeps the provider's
// free-text form when it could not be split.
type Location struct {
	Raw     string `json:"raw,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

func (l *Location) IsEmpty() bool {
	return l == nil || isBlank(l.Raw, l.City, l.State, l.Country)
}

type Social struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

func (s *Social) IsEmpty() bool {
	return s == nil || isBlank(s.LinkedIn, s.Twitter, s.GitHub, s.Website)
}

// MergeFrom copies into p every field that p lacks and src has.
// Fields already set on p are never overwritten.
func (p *Person) MergeFrom(src *Person) {
	if p == nil || src == nil {
		return
	}
	fillString(&p.FullName, src.FullName)
	fillString(&p.FirstName, src.FirstName)
	fillString(&p.LastName, src.LastName)
	fillString(&p.Email, src.Email)
	fillString(&p.Bio, src.Bio)
	fillString(&p.AvatarURL, src.AvatarURL)
	mergeGroup(&p.Professional, src.Professional, func(dst, src *Professional) {
		fillString(&dst.CurrentTitle, src.CurrentTitle)
		fillString(&dst.CurrentCompany, src.CurrentCompany)
		fillString(&dst.CompanyDomain, src.CompanyDomain)
		fillString(&dst.CompanyIndustry, src.CompanyIndustry)
		fillString(&dst.Seniority, src.Seniority)
		fillString(&dst.Role, src.Role)
		fillString(&dst.Headline, src.Headline)
	})
	mergeGroup(&p.Contact, src.Contact, func(dst, src *Contact) {
		fillString(&dst.Phone, src.Phone)
		fillPtr(&dst.EmailVerified, src.EmailVerified)
		fillPtr(&dst.EmailConfidence, src.EmailConfidence)
		fillPtr(&dst.EmailDisposable, src.EmailDisposable)
		fillPtr(&dst.EmailWebmail, src.EmailWebmail)
		fillString(&dst.VerificationStatus, src.VerificationStatus)
	})
	mergeGroup(&p.Location, src.Location, mergeLocation)
	mergeGroup(&p.Social, src.Social, func(dst, src *Social) {
		fillString(&dst.LinkedIn, src.LinkedIn)
		fillString(&dst.Twitter, src.Twitter)
		fillString(&dst.GitHub, src.GitHub)
		fillString(&dst.Website, src.Website)
	})
	fillSlice(&p.Skills, src.Skills)
}
