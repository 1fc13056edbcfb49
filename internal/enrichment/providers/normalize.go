package providers

import (
	"strings"

	"enricher/internal/enrichment/models"
)

// ParseLocation splits a free-text "City, State, Country" location.
// One or two parts are kept in Raw only since their meaning is ambiguous.
func ParseLocation(raw string) *models.Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	loc := &models.Location{Raw: raw}
	parts := strings.Split(raw, ",")
	if len(parts) == 3 {
		loc.City = strings.TrimSpace(parts[0])
		loc.State = strings.TrimSpace(parts[1])
		loc.Country = strings.TrimSpace(parts[2])
	}
	return loc
}

// SocialURL joins a profile handle onto a site root unless the handle is
// already a URL. Empty handles yield "".
func SocialURL(root, handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return ""
	}
	if strings.HasPrefix(handle, "http://") || strings.HasPrefix(handle, "https://") {
		return handle
	}
	return strings.TrimRight(root, "/") + "/" + strings.TrimPrefix(handle, "@")
}

// IsLinkedInProfile reports whether url points at a LinkedIn member profile.
func IsLinkedInProfile(url string) bool {
	u := strings.ToLower(strings.TrimSpace(url))
	return strings.Contains(u, "linkedin.com/in/")
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// EmptyPerson reports whether a normalized partial carries no data at all.
func EmptyPerson(p *models.Person) bool {
	if p == nil {
		return true
	}
	return strings.TrimSpace(p.FullName+p.FirstName+p.LastName+p.Email+p.Bio+p.AvatarURL) == "" &&
		p.Professional.IsEmpty() && p.Contact.IsEmpty() && p.Location.IsEmpty() &&
		p.Social.IsEmpty() && len(p.Skills) == 0
}

// EmptyCompany reports whether a normalized partial carries no data at all.
func EmptyCompany(c *models.Company) bool {
	if c == nil {
		return true
	}
	return strings.TrimSpace(c.Name+c.Domain+c.Description+c.Industry+c.EmployeeRange+c.Revenue+c.Phone+c.LogoURL) == "" &&
		c.Employees == 0 && c.FoundedYear == 0 && c.Location.IsEmpty() &&
		len(c.TechStack) == 0 && c.Social.IsEmpty()
}
