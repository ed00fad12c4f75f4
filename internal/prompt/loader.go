// Package prompt stores the named prompt templates used by the
// drafting pipeline and formats them with per-call substitutions.
package prompt

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

//go:embed templates/*.json
var templatesFS embed.FS

// Template names used by the pipeline nodes.
const (
	NameInputCheck    = "n_input"
	NameDraft         = "n_draft"
	NameFactExtractor = "n_fact_extractor"
	NameFactRewriter  = "n_fact_rewriter"

	exampleName = "claim_fact_pairs"
)

// placeholderPattern matches {key} substitution slots in a template.
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// templateFile is the on-disk shape of a prompt: a "prompt" field
// holding either a string or a list of lines.
type templateFile struct {
	Prompt json.RawMessage `json:"prompt"`
}

// Loader loads prompt templates from the embedded template set,
// caching parsed templates between calls.
type Loader struct {
	cache *gocache.Cache
}

// NewLoader creates a new prompt loader
func NewLoader() *Loader {
	return &Loader{
		cache: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Get returns the raw template text for a named prompt.
func (l *Loader) Get(name string) (string, error) {
	if cached, found := l.cache.Get(name); found {
		return cached.(string), nil
	}

	raw, err := templatesFS.ReadFile("templates/" + name + ".json")
	if err != nil {
		return "", fmt.Errorf("prompt %q not found: %w", name, err)
	}

	var tf templateFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return "", fmt.Errorf("parse prompt %q: %w", name, err)
	}
	if len(tf.Prompt) == 0 {
		return "", fmt.Errorf("prompt %q has no prompt field", name)
	}

	text, err := promptText(tf.Prompt)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", name, err)
	}

	l.cache.Set(name, text, gocache.NoExpiration)
	return text, nil
}

// GetFormatted loads a named template and substitutes every {key}
// slot from subs. A slot with no matching substitution is an error.
func (l *Loader) GetFormatted(name string, subs map[string]string) (string, error) {
	text, err := l.Get(name)
	if err != nil {
		return "", err
	}

	for _, idx := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		// Double-braced tokens ({{employee_name}}) are PII placeholders
		// in the output schema, not substitution slots.
		if idx[0] > 0 && text[idx[0]-1] == '{' {
			continue
		}
		if idx[1] < len(text) && text[idx[1]] == '}' {
			continue
		}
		key := text[idx[2]:idx[3]]
		if _, ok := subs[key]; !ok {
			return "", fmt.Errorf("prompt %q: missing substitution for {%s}", name, key)
		}
	}

	// Substitution values may themselves contain braces (serialized
	// JSON, PII placeholders); replace after the scan so they are
	// never re-interpreted as slots.
	for key, value := range subs {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	return text, nil
}

// Example returns the worked claim-fact-pairs example document as
// indented JSON, ready for inclusion in the extraction prompt.
func (l *Loader) Example() (string, error) {
	key := "example:" + exampleName
	if cached, found := l.cache.Get(key); found {
		return cached.(string), nil
	}

	raw, err := templatesFS.ReadFile("templates/" + exampleName + ".json")
	if err != nil {
		return "", fmt.Errorf("example document not found: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse example document: %w", err)
	}
	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render example document: %w", err)
	}

	l.cache.Set(key, string(pretty), gocache.NoExpiration)
	return string(pretty), nil
}

// promptText converts the raw prompt field into a single string,
// joining list-form prompts with newlines.
func promptText(raw json.RawMessage) (string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", fmt.Errorf("prompt field must be a string or list of strings")
	}
	return strings.Join(lines, "\n"), nil
}
