package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// toMap renders the config as the nested map its YAML form decodes to.
func (c *Config) toMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the value at a dotted key such as "llm.model".
func (c *Config) Get(key string) (any, error) {
	m, err := c.toMap()
	if err != nil {
		return nil, err
	}

	var value any = m
	for _, part := range strings.Split(key, ".") {
		section, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if value, ok = section[part]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	return value, nil
}

// Set parses raw into the type of the current value at key and validates the
// result. Booleans accept true, yes and 1; lists are comma separated. On
// error the config is left unchanged.
func (c *Config) Set(key, raw string) error {
	m, err := c.toMap()
	if err != nil {
		return err
	}

	parts := strings.Split(key, ".")
	section := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := section[part].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		section = next
	}

	last := parts[len(parts)-1]
	old, ok := section[last]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if _, isSection := old.(map[string]any); isSection {
		return fmt.Errorf("%s is a section, set one of its keys instead", key)
	}

	value, err := coerce(old, raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	section[last] = value

	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	updated := Default()
	if err := yaml.Unmarshal(data, updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	updated.normalize()
	if err := updated.Validate(); err != nil {
		return err
	}

	*c = *updated
	return nil
}

func coerce(old any, raw string) (any, error) {
	switch old.(type) {
	case bool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "yes", "1":
			return true, nil
		default:
			return false, nil
		}
	case int:
		// Whole floats such as 1.0 marshal as ints, so accept a float here too.
		raw = strings.TrimSpace(raw)
		if n, err := strconv.Atoi(raw); err == nil {
			return n, nil
		}
		return strconv.ParseFloat(raw, 64)
	case float64:
		return strconv.ParseFloat(strings.TrimSpace(raw), 64)
	case []any:
		items := []any{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return raw, nil
	}
}

// Entry is one row of List.
type Entry struct {
	Key   string
	Value string
}

// List returns the settings shown by `config list`. The API key is masked.
func (c *Config) List() []Entry {
	apiKey := "(not set)"
	if c.LLM.APIKey != "" {
		apiKey = "***"
	}
	return []Entry{
		{"name", c.Name},
		{"target_urls", strings.Join(c.TargetURLs, ", ")},
		{"browser.browsers", strings.Join(c.Browser.Browsers, ", ")},
		{"browser.engine", orDefault(c.Browser.Engine, "auto")},
		{"browser.headless", strconv.FormatBool(c.Browser.Headless)},
		{"browser.timeout", fmt.Sprintf("%dms", c.Browser.Timeout)},
		{"docker.enabled", strconv.FormatBool(c.Docker.Enabled)},
		{"llm.provider", c.LLM.Provider},
		{"llm.model", c.LLM.Model},
		{"llm.api_key", apiKey},
		{"visual_regression.enabled", strconv.FormatBool(c.VisualRegression.Enabled)},
		{"visual_regression.threshold", strconv.FormatFloat(c.VisualRegression.Threshold, 'g', -1, 64)},
		{"crawl.max_pages", strconv.Itoa(c.Crawl.MaxPages)},
		{"crawl.same_origin_only", strconv.FormatBool(c.Crawl.SameOriginOnly)},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
