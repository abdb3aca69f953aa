package models

import "strings"

// Profile is one candidate extracted from a people-search result listing.
// Identity is the canonical URL with query parameters stripped.
type Profile struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RunConfig is the immutable configuration of one outreach run.
type RunConfig struct {
	Email           string
	Password        string
	Keywords        []string
	MaxMessages     int
	DelayMin        float64
	DelayMax        float64
	DryRun          bool
	MessageTemplate string
}

// DefaultRole replaces {cargo} when a profile carries no visible title.
const DefaultRole = "profissional"

// BuildMessage renders the outreach template for one profile: {nome} becomes
// the first name, {cargo} the title (or DefaultRole when empty).
func BuildMessage(template, name, title string) string {
	first := name
	if fields := strings.Fields(name); len(fields) > 0 {
		first = fields[0]
	}
	if title == "" {
		title = DefaultRole
	}
	r := strings.NewReplacer("{nome}", first, "{cargo}", title)
	return r.Replace(template)
}
