package content

import (
	"errors"
	"strings"
)

// Mode selects a resume perspective.
type Mode string

const (
	ModeHR      Mode = "hr"
	ModeCTO     Mode = "cto"
	ModeSummary Mode = "summary"
)

// Modes lists the perspectives in the order the toggle shows them.
var Modes = []Mode{ModeHR, ModeCTO, ModeSummary}

var ErrUnknownMode = errors.New("unknown resume mode")

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", ErrUnknownMode
}

// Label is the toggle button text.
func (m Mode) Label() string {
	switch m {
	case ModeHR:
		return "HR Manager View"
	case ModeCTO:
		return "CTO View"
	case ModeSummary:
		return "Executive Summary"
	}
	return string(m)
}

type WorkExperience struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Period  string   `json:"period"`
	Current bool     `json:"current"`
	HR      []string `json:"-"`
	CTO     []string `json:"-"`
}

type Stat struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type Highlight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

var Experience = []WorkExperience{
	{
		Title:   "Senior Automation Engineer",
		Company: "TechCorp Industries",
		Period:  "2020 - Present",
		Current: true,
		HR: []string{
			"Led cross-functional team of 6 developers to implement company-wide process automation, reducing manual tasks by 73%",
			"Conducted bi-weekly knowledge sharing sessions, resulting in improved team skill diversity",
			"Established mentorship program for junior engineers with 90% retention rate",
			"Collaborated with HR to define technical career paths and skill matrices",
		},
		CTO: []string{
			"Architected event-driven ETL pipeline processing 500M+ daily records using Kafka, AWS Lambda and S3",
			"Implemented infrastructure-as-code practices with 99.9% environment consistency across deployments",
			"Engineered ML model deployment pipeline reducing time-to-production from weeks to hours",
			"Optimized processing costs by 65% through serverless architecture and intelligent scaling",
		},
	},
	{
		Title:   "Automation Developer",
		Company: "Innovate Solutions",
		Period:  "2017 - 2020",
		HR: []string{
			"Facilitated successful migration of 15+ legacy systems to modern cloud infrastructure",
			"Improved team velocity by 35% through implementation of agile methodologies",
			"Organized quarterly hackathons to foster innovation and team building",
			"Recognized with 'Collaboration Champion' award for cross-department initiatives",
		},
		CTO: []string{
			"Designed multi-region AWS architecture with 99.99% uptime SLA utilizing Route53, CloudFront and ECS",
			"Developed custom CI/CD pipeline with automated security scanning and canary deployments",
			"Created Python framework for RPA processes with pluggable modules and 85% code reuse",
			"Implemented OAuth2 and OIDC authentication layer with role-based access control",
		},
	},
}

var SoftSkills = []Highlight{
	{Icon: "fa-users", Title: "Team Leadership"},
	{Icon: "fa-comments", Title: "Communication"},
	{Icon: "fa-tasks", Title: "Project Management"},
	{Icon: "fa-lightbulb", Title: "Problem Solving"},
}

var TechSkills = []SkillGroup{
	{Category: "Languages & Frameworks", Skills: []string{"Python (Advanced)", "JavaScript/TypeScript", "SQL", "React", "Flask", "FastAPI"}},
	{Category: "Infrastructure & DevOps", Skills: []string{"AWS", "Terraform", "Docker", "Kubernetes", "CI/CD", "Git"}},
	{Category: "Data & AI", Skills: []string{"Kafka", "Pandas", "TensorFlow", "OpenAI API", "PostgreSQL", "MongoDB"}},
	{Category: "Architecture", Skills: []string{"Microservices", "Event-Driven", "Serverless", "API Design", "Multi-region", "High Availability"}},
}

var AchievementStats = []Stat{
	{Value: "1,240+", Label: "GitHub Contributions"},
	{Value: "85+", Label: "Projects Completed"},
	{Value: "15+", Label: "Technical Articles"},
}

var SummaryStats = []Stat{
	{Value: "73%", Label: "Operational Efficiency Gain", Description: "Implemented enterprise-wide process automation reducing manual workload and operational costs."},
	{Value: "65%", Label: "Cost Reduction", Description: "Optimized cloud infrastructure and processing pipelines resulting in significant monthly savings."},
	{Value: "99.9%", Label: "System Reliability", Description: "Designed resilient architectures with self-healing capabilities and proactive monitoring."},
	{Value: "4x", Label: "Development Velocity", Description: "Accelerated time-to-market through optimized CI/CD pipelines and reusable components."},
}

var Leadership = []Highlight{
	{Icon: "fa-lightbulb", Title: "Innovation Driver", Description: "Introduced emerging technologies generating new revenue streams"},
	{Icon: "fa-chart-line", Title: "Strategic Planner", Description: "Developed 3-year technology roadmap aligned with business growth"},
	{Icon: "fa-users-cog", Title: "Team Builder", Description: "Assembled high-performing teams with 90% retention rate"},
}

// Job is one work entry as seen from a perspective.
type Job struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Current      bool     `json:"current"`
	Achievements []string `json:"achievements"`
}

// Perspective is everything one resume view shows.
type Perspective struct {
	Mode       Mode         `json:"mode"`
	Label      string       `json:"label"`
	Profile    string       `json:"profile"`
	Jobs       []Job        `json:"jobs,omitempty"`
	SoftSkills []Highlight  `json:"softSkills,omitempty"`
	TechSkills []SkillGroup `json:"techSkills,omitempty"`
	Stats      []Stat       `json:"stats,omitempty"`
	Leadership string       `json:"leadership,omitempty"`
	Highlights []Highlight  `json:"highlights,omitempty"`
}

// Resume assembles the perspective for m.
func Resume(m Mode) Perspective {
	p := Perspective{Mode: m, Label: m.Label()}
	switch m {
	case ModeHR:
		p.Profile = HRProfile
		p.Jobs = jobs(func(w WorkExperience) []string { return w.HR })
		p.SoftSkills = SoftSkills
	case ModeCTO:
		p.Profile = CTOProfile
		p.Jobs = jobs(func(w WorkExperience) []string { return w.CTO })
		p.TechSkills = TechSkills
	case ModeSummary:
		p.Profile = SummaryProfile
		p.Stats = SummaryStats
		p.Leadership = LeadershipProfile
		p.Highlights = Leadership
	}
	return p
}

func jobs(pick func(WorkExperience) []string) []Job {
	out := make([]Job, 0, len(Experience))
	for _, w := range Experience {
		out = append(out, Job{
			Title:        w.Title,
			Company:      w.Company,
			Period:       w.Period,
			Current:      w.Current,
			Achievements: pick(w),
		})
	}
	return out
}
