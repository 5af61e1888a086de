package characters

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultModels maps each supported character to the hub repo holding its
// tuned adapter. Callers can swap the whole mapping via LoadCatalog.
func DefaultModels() map[string]string {
	return map[string]string{
		"Rachel":   "nitish-11/friends_Rachel_trained_Llama-3-8B",
		"Ross":     "nitish-11/friends_Ross_trained2_Llama-3-8B",
		"Chandler": "nitish-11/friends_Chandler_trained_Llama-3-8B",
		"Monica":   "nitish-11/friends_Monica_trained_Llama-3-8B",
		"Joey":     "nitish-11/friends_Joey_trained_Llama-3-8B",
		"Phoebe":   "nitish-11/friends_Phoebe_trained_Llama-3-8B",
	}
}

// Catalog resolves character names to hub model repos.
type Catalog struct {
	models map[string]string
}

// NewCatalog builds a catalog from an explicit mapping.
func NewCatalog(models map[string]string) Catalog {
	copied := make(map[string]string, len(models))
	for name, repo := range models {
		name = strings.TrimSpace(name)
		repo = strings.TrimSpace(repo)
		if name == "" || repo == "" {
			continue
		}
		copied[name] = repo
	}
	return Catalog{models: copied}
}

// LoadCatalog reads a character->repo mapping from a JSON file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read models file %q: %w", path, err)
	}
	var models map[string]string
	if err := json.Unmarshal(data, &models); err != nil {
		return Catalog{}, fmt.Errorf("parse models file %q: %w", path, err)
	}
	if len(models) == 0 {
		return Catalog{}, fmt.Errorf("models file %q has no entries", path)
	}
	return NewCatalog(models), nil
}

// Resolve returns the hub repo for a character.
func (c Catalog) Resolve(name string) (string, error) {
	repo, ok := c.models[name]
	if !ok {
		return "", fmt.Errorf("unknown character %q (known: %s)", name, strings.Join(c.Names(), ", "))
	}
	return repo, nil
}

// Names lists the known characters in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
