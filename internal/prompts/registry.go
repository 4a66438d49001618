// Package prompts holds the prompt templates used by the interview
// components. Defaults are embedded in the binary; deployments can override
// any template by id from a YAML file, so prompt content never requires a
// rebuild.
package prompts

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.txt
var templateFS embed.FS

// Template ids.
const (
	Interviewer          = "interviewer"
	DeveloperInterviewer = "developer_interviewer"
	Feedback             = "feedback"
	Correction           = "correction"
)

var defaultIDs = []string{Interviewer, DeveloperInterviewer, Feedback, Correction}

// Registry maps template ids to parsed templates.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewRegistry builds a Registry from the embedded defaults.
func NewRegistry() (*Registry, error) {
	r := &Registry{templates: make(map[string]*template.Template)}

	for _, id := range defaultIDs {
		raw, err := templateFS.ReadFile("templates/" + id + ".txt")
		if err != nil {
			return nil, fmt.Errorf("read embedded template %q: %w", id, err)
		}
		if err := r.set(id, string(raw)); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// LoadOverrides replaces templates from a YAML file mapping id to template
// text. Unknown ids are accepted, so deployments can add templates for
// custom components.
func (r *Registry) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read overrides file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse overrides file: %w", err)
	}

	for id, text := range overrides {
		if err := r.set(id, text); err != nil {
			return err
		}
	}
	return nil
}

// Set registers or replaces a template by id.
func (r *Registry) Set(id, text string) error {
	return r.set(id, text)
}

func (r *Registry) set(id, text string) error {
	t, err := template.New(id).Parse(text)
	if err != nil {
		return fmt.Errorf("parse template %q: %w", id, err)
	}
	r.mu.Lock()
	r.templates[id] = t
	r.mu.Unlock()
	return nil
}

// Render executes the template with the given data.
func (r *Registry) Render(id string, data any) (string, error) {
	r.mu.RLock()
	t, ok := r.templates[id]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown prompt template %q", id)
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", id, err)
	}
	return b.String(), nil
}
