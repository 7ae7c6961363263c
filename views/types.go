package views

import "github.com/eringen/folio/seo"

// SiteConfig holds the site metadata loaded once from folio.yaml. Every
// component receives it as a parameter.
type SiteConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	URL         string `mapstructure:"url"`   // canonical site root, no trailing slash
	Image       string `mapstructure:"image"` // author avatar, relative to URL
	Author      Author `mapstructure:"author"`
	Social      Social `mapstructure:"social"`
	Locale      string `mapstructure:"locale"`
	Lang        string `mapstructure:"lang"`
}

// Author is shown in the Bio and attributed on articles.
type Author struct {
	Name    string `mapstructure:"name"`
	Summary string `mapstructure:"summary"`
}

// Social holds profile handles, not full URLs.
type Social struct {
	LinkedIn      string `mapstructure:"linkedin"`
	StackOverflow string `mapstructure:"stackoverflow"`
	GitHub        string `mapstructure:"github"`
}

// SEO returns the site-wide defaults for head composition.
func (c SiteConfig) SEO() seo.Site {
	return seo.Site{
		Title:       c.Title,
		Description: c.Description,
		SiteURL:     c.URL,
		AuthorName:  c.Author.Name,
		Locale:      c.Locale,
		Lang:        c.Lang,
	}
}

// SocialLink is one rendered profile link.
type SocialLink struct {
	Label string
	URL   string
}
