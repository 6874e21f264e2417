// Package content holds the static copy of the site: projects, resume
// perspectives and profile text.
package content

import "strings"

// Project is one card in the gallery.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Year        string   `json:"year"`
	Image       string   `json:"image"`
	TechStack   []string `json:"techStack"`
	GitHubURL   string   `json:"githubUrl,omitempty"`
	DemoURL     string   `json:"demoUrl,omitempty"`
}

// ProjectFilters are the quick-filter buttons above the gallery.
var ProjectFilters = []string{"all", "automation", "ai"}

// MinSearchLength is the shortest search term that narrows the gallery.
const MinSearchLength = 3

var Projects = []Project{
	{
		ID:          "orion_token",
		Title:       "OrionToken",
		Description: "A next-generation asset tokenization platform that enables businesses to tokenize, manage, and trade real-world assets (e.g., real estate, invoices, equipment) on public blockchains like Ethereum and Polygon.",
		Categories:  []string{"blockchain", "fintech", "web3"},
		Year:        "2023",
		Image:       "orion-token.jpg",
		TechStack:   []string{"Ethereum/Solidity", "Next.js", "Polygon", "Smart Contracts"},
		GitHubURL:   "https://github.com/Evan620/OrionToken",
		DemoURL:     "#",
	},
	{
		ID:          "oriontech",
		Title:       "oriontech.co.ke",
		Description: "A modern, AI-powered website for Orion, a Nairobi-based technology consultancy, showcasing services, portfolio projects, and featuring an intelligent OpenAI-driven chatbot for client interactions.",
		Categories:  []string{"web", "ai", "consultancy"},
		Year:        "2023",
		Image:       "oriontech.jpg",
		TechStack:   []string{"React", "OpenAI API", "TailwindCSS", "Node.js"},
		GitHubURL:   "https://github.com/Evan620/oriontech.co.ke",
		DemoURL:     "https://oriontech.co.ke",
	},
	{
		ID:          "rez_guru_ai",
		Title:       "RezGuruAI",
		Description: "A real estate automation platform combining AI-driven analytics, lead management, document generation, and customizable workflow automation to streamline property operations and market intelligence.",
		Categories:  []string{"real-estate", "ai", "automation"},
		Year:        "2023",
		Image:       "rezguru.jpg",
		TechStack:   []string{"Python", "ML/Analytics", "Document AI", "Cloud Infrastructure"},
		GitHubURL:   "https://github.com/Evan620/RezGuruAI",
		DemoURL:     "#",
	},
	{
		ID:          "job_genius_ai",
		Title:       "JobGeniusAI",
		Description: "An AI-powered job application assistant that optimizes resumes, matches you to relevant openings, tracks applications, and analyzes skill gaps, integrating OAuth sign-ins with GitHub or LinkedIn.",
		Categories:  []string{"career", "ai", "productivity"},
		Year:        "2023",
		Image:       "job-genius.jpg",
		TechStack:   []string{"React", "OpenAI API", "OAuth", "Node.js/Express"},
		GitHubURL:   "https://github.com/Evan620/JobGeniusAI",
		DemoURL:     "#",
	},
}

// FilterProjects keeps the projects tagged with category. "all" and the empty
// string keep everything.
func FilterProjects(projects []Project, category string) []Project {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == "all" {
		return projects
	}
	var out []Project
	for _, p := range projects {
		for _, c := range p.Categories {
			if c == category {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// SearchProjects matches term against title, description and categories,
// ignoring case. Terms shorter than MinSearchLength leave the list as is.
func SearchProjects(projects []Project, term string) []Project {
	term = strings.ToLower(strings.TrimSpace(term))
	if len([]rune(term)) < MinSearchLength {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if projectMatches(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func projectMatches(p Project, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}
