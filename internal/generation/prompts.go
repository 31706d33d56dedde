package generation

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	quizTemplateName      = "quiz.tmpl"
	flashcardTemplateName = "flashcards.tmpl"
)

type quizPromptData struct {
	Count      int
	MCQ        int
	Open       int
	SourceText string
}

type flashcardPromptData struct {
	Count      int
	SourceText string
}

// loadTemplate parses the template at overridePath, or the embedded default
// named name when overridePath is empty.
func loadTemplate(name, overridePath string) (*template.Template, error) {
	var (
		content []byte
		err     error
	)
	if overridePath != "" {
		content, err = os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt template from %s: %w", overridePath, err)
		}
	} else {
		content, err = templateFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt template %s: %w", name, err)
		}
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %s: %w", name, err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
