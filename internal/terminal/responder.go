// Package terminal holds the scripted replies of the hero terminal and the
// AI greeter. Replies come from ordered keyword tables; there is no memory
// between turns beyond the transcript.
package terminal

import (
	"fmt"
	"strings"
)

// Rule maps a normalized input to a canned reply. Section names the page
// section the reply navigates to, if any.
type Rule struct {
	Match   func(input string) bool
	Reply   string
	Section string
}

// Reply is what a responder answers with.
type Reply struct {
	Text    string `json:"response"`
	Section string `json:"section,omitempty"`
}

// Responder walks its rules in order; the first match wins.
type Responder struct {
	rules    []Rule
	fallback func(raw string) string
}

// NewResponder builds a responder from rules and a fallback for unmatched
// input.
func NewResponder(rules []Rule, fallback func(raw string) string) *Responder {
	return &Responder{rules: rules, fallback: fallback}
}

// Respond answers one line of input.
func (r *Responder) Respond(input string) Reply {
	norm := strings.ToLower(strings.TrimSpace(input))
	for _, rule := range r.rules {
		if rule.Match(norm) {
			return Reply{Text: rule.Reply, Section: rule.Section}
		}
	}
	return Reply{Text: r.fallback(input)}
}

// Contains matches when every word appears in the input.
func Contains(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if !strings.Contains(s, w) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one word appears in the input.
func Any(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

// Terminal answers commands typed into the hero terminal.
func Terminal() *Responder {
	return NewResponder([]Rule{
		{Match: Contains("access", "portfolio"), Reply: "Access granted. Portfolio system loaded."},
		{Match: Contains("help"), Reply: "Available commands: access, help, projects, skills, contact"},
		{Match: Contains("projects"), Reply: "Navigating to projects section...", Section: "projects"},
		{Match: Contains("skills"), Reply: "Navigating to skills matrix...", Section: "skills"},
		{Match: Contains("resume"), Reply: "Loading resume perspectives...", Section: "resume"},
		{Match: Contains("contact"), Reply: "Opening communication channel...", Section: "contact"},
	}, func(raw string) string {
		return fmt.Sprintf("Command not recognized: %q", raw)
	})
}

// Assistant answers questions typed into the AI greeter.
func Assistant() *Responder {
	return NewResponder([]Rule{
		{
			Match:   Any("project", "work"),
			Reply:   "I've created various automation projects including an ETL pipeline processing 500M+ daily records. Would you like to see the projects section?",
			Section: "projects",
		},
		{
			Match:   Any("skill", "technology"),
			Reply:   "My core skills include Python, AWS, AI integration, and data pipeline engineering. The 3D skill web shows how these connect.",
			Section: "skills",
		},
		{
			Match: Any("contact", "hire"),
			Reply: "You can reach out via the contact form or connect directly on LinkedIn and GitHub. Would you like me to navigate to the contact section?",
		},
		{
			Match: Any("lazarus", "you", "who"),
			Reply: "Lazarus is the code name for this portfolio's owner - a senior automation engineer specializing in AWS, Python development, and AI integration. The name symbolizes bringing legacy systems back to life through modern technology.",
		},
		{
			Match: Any("do", "help", "can"),
			Reply: "I can provide information about Lazarus's skills, projects, and work experience. I can also navigate you to different sections of the portfolio. Try asking about specific skills, project details, or how to get in contact.",
		},
	}, func(string) string {
		return "I'm a portfolio AI assistant for Lazarus. I can tell you about my projects, skills, or work experience. How can I help you today?"
	})
}

// Role tags a transcript line.
type Role string

const (
	RoleSystem   Role = "system"
	RoleUser     Role = "user"
	RoleAI       Role = "ai"
	RoleCommand  Role = "command"
	RoleResponse Role = "response"
	RoleInfo     Role = "info"
)

// Line is one transcript entry.
type Line struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an append-only conversation log.
type Transcript struct {
	Lines []Line `json:"lines"`
}

// BootTranscript is what the hero terminal shows before any input.
func BootTranscript() *Transcript {
	return &Transcript{Lines: []Line{
		{RoleInfo, "Neural Interface v1.0.0 (Lazarus System)"},
		{RoleInfo, "Establishing secure connection..."},
		{RoleResponse, "Connection established. Authenticate to proceed."},
	}}
}

// GreeterTranscript seeds the AI greeter.
func GreeterTranscript() *Transcript {
	return &Transcript{Lines: []Line{
		{RoleSystem, "AI assistant initialized."},
		{RoleAI, "Welcome to Lazarus Portfolio. I'm your neural guide. To access the portfolio, please authenticate using terminal commands or explore the sections directly."},
	}}
}

// Append adds a line.
func (t *Transcript) Append(role Role, content string) {
	t.Lines = append(t.Lines, Line{Role: role, Content: content})
}

// Exchange records input and the responder's reply, returning the reply.
func (t *Transcript) Exchange(r *Responder, in Role, out Role, input string) Reply {
	reply := r.Respond(input)
	t.Append(in, input)
	t.Append(out, reply.Text)
	return reply
}
