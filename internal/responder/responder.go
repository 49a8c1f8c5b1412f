// Package responder produces the stubbed replies returned by /generate.
package responder

import (
	"fmt"
	"strings"
)

// Fixed replies for the keyword rules.
const (
	Greeting           = "Hello there! How can I assist you today?"
	CompanyDescription = "ModelVault is a company focused on secure and efficient model deployment."
)

// Responder turns a prompt into a response string.
type Responder interface {
	Respond(prompt string) string
}

// Stub is the deterministic Responder used in place of a real model.
type Stub struct{}

// New returns the default Responder.
func New() Responder { return Stub{} }

// Respond matches keywords case-insensitively, first rule wins:
// "hello" yields Greeting, "modelvault" yields CompanyDescription, and
// anything else echoes the prompt verbatim inside a fixed template.
func (Stub) Respond(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "hello"):
		return Greeting
	case strings.Contains(lower, "modelvault"):
		return CompanyDescription
	default:
		return fmt.Sprintf("Thank you for your prompt: '%s'. This is a stubbed response from MiniVault API.", prompt)
	}
}
