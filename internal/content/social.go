package content

// SocialLink is one entry in the contact section's connection list.
type SocialLink struct {
	Icon     string `json:"icon"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

// Brands reports whether the icon comes from the brands icon set.
func (l SocialLink) Brands() bool { return l.Icon != "fa-envelope" }

var (
	LinkedInURL = "https://www.linkedin.com/in/lazarus-dev"
	TwitterURL  = "https://twitter.com/LazarusDev"
)

// SocialLinks lists the ways to reach the owner; email goes to the
// configured contact address.
func SocialLinks(email string) []SocialLink {
	return []SocialLink{
		{Icon: "fa-github", Name: "GitHub", URL: GitHubURL, Username: "@" + Owner},
		{Icon: "fa-linkedin", Name: "LinkedIn", URL: LinkedInURL, Username: "linkedin.com/in/lazarus-dev"},
		{Icon: "fa-twitter", Name: "Twitter", URL: TwitterURL, Username: "@LazarusDev"},
		{Icon: "fa-envelope", Name: "Email", URL: "mailto:" + email, Username: email},
	}
}
