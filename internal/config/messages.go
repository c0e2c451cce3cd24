package config

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Messages holds the user-facing chat copy.
type Messages struct {
	Help      string `yaml:"help"`
	NoResults string `yaml:"no_results"`
	Caption   string `yaml:"caption"`
}

// DefaultMessages returns the built-in chat copy.
func DefaultMessages() *Messages {
	return &Messages{
		Help: "🍔🍽🍕\n*LookForRecipes*\n\n" +
			"Type for any keyword you want to get recipe for\n" +
			"All results from [r/GifRecipes](https://www.reddit.com/r/GifRecipes/) 🙌",
		NoResults: "🍔🍽🍕\n*LookForRecipes*\n\n" +
			"😔 Sorry! Cant seem to find a match, please try to search for a different keyword",
		Caption: "😋 [{{.Title}}]({{.URL}})",
	}
}

// LoadMessages reads a YAML file and overlays it on the defaults.
// Keys missing from the file keep their default value.
func LoadMessages(path string) (*Messages, error) {
	msgs := DefaultMessages()
	if path == "" {
		return msgs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}

	if err := yaml.Unmarshal(data, msgs); err != nil {
		return nil, fmt.Errorf("failed to parse messages YAML: %w", err)
	}

	if _, err := template.New("caption").Parse(msgs.Caption); err != nil {
		return nil, fmt.Errorf("invalid caption template: %w", err)
	}

	return msgs, nil
}

// RenderCaption executes the caption template with a title and link.
func (m *Messages) RenderCaption(title, url string) (string, error) {
	t, err := template.New("caption").Parse(m.Caption)
	if err != nil {
		return "", fmt.Errorf("failed to parse caption template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, map[string]string{"Title": title, "URL": url}); err != nil {
		return "", fmt.Errorf("failed to render caption: %w", err)
	}
	return buf.String(), nil
}
