package wardrobe

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const defaultSystemPrompt = "You are a professional clothing consultant who gives practical outfit advice based on the weather."

const defaultUserPrompt = `As a professional clothing consultant, give detailed outfit advice for the following weather:

City: {{.City}}
Temperature: {{printf "%.1f" .TempC}}°C
Conditions: {{.Condition}}

Please cover:
1. Upper body
2. Lower body
3. Outerwear
4. Accessories (hat, scarf, etc.)
5. Shoes
6. Anything to watch out for

Keep it short and clear, in a friendly, natural tone.`

// PromptManager loads the system and user prompts, preferring system.md and
// user.md from Directory over the built-in defaults.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

func (pm *PromptManager) GetSystemPrompt() string {
	return pm.read("system.md", defaultSystemPrompt)
}

// GetUserPrompt renders user.md (a text/template) against c.
func (pm *PromptManager) GetUserPrompt(c Conditions) (string, error) {
	src := pm.read("user.md", defaultUserPrompt)

	tmpl, err := template.New("user").Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse user prompt: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("failed to render user prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func (pm *PromptManager) read(name, fallback string) string {
	if pm == nil || pm.Directory == "" {
		return fallback
	}

	path := filepath.Join(pm.Directory, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: Failed to read prompt file %s: %v", path, err)
		}
		return fallback
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return fallback
	}
	return content
}
