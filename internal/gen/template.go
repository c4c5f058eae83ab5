package gen

import (
	"os"
	"strings"
)

// LoadTemplate reads the prompt template from disk. The file is required;
// a missing template is a startup failure, not a per-request one.
func LoadTemplate(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Render substitutes every ${key} occurrence in text with its value.
// Placeholders without a matching variable are left as-is.
func Render(text string, vars map[string]string) string {
	for k, v := range vars {
		text = strings.ReplaceAll(text, "${"+k+"}", v)
	}
	return text
}
