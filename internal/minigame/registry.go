// Package minigame loads mini-game fragments and runs them as timed
// interruptions whose completion resolves exactly once.
package minigame

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed registry.json
var embeddedRegistry []byte

//go:embed registry.schema.json
var registrySchema []byte

//go:embed games/*.html
var embeddedGames embed.FS

// DefaultTimeLimit applies to games that declare no time limit.
const DefaultTimeLimit = 15 * time.Second

// Descriptor describes one mini-game.
type Descriptor struct {
	ID        string
	File      string
	Title     string
	TimeLimit time.Duration
	Version   string
}

// Registry resolves mini-game descriptors.
type Registry interface {
	Lookup(id string) (Descriptor, bool)
	IDs() []string
}

// StaticRegistry is an immutable, ordered Registry.
type StaticRegistry struct {
	order []string
	byID  map[string]Descriptor
}

// NewStaticRegistry builds a registry from descriptors, keeping their order.
// Later duplicates of an ID are ignored.
func NewStaticRegistry(games ...Descriptor) *StaticRegistry {
	r := &StaticRegistry{byID: make(map[string]Descriptor, len(games))}
	for _, g := range games {
		if _, dup := r.byID[g.ID]; dup {
			continue
		}
		if g.TimeLimit <= 0 {
			g.TimeLimit = DefaultTimeLimit
		}
		r.order = append(r.order, g.ID)
		r.byID[g.ID] = g
	}
	return r
}

// Lookup returns the descriptor for id.
func (r *StaticRegistry) Lookup(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// IDs returns game IDs in registry order.
func (r *StaticRegistry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

type registryDoc struct {
	Games []struct {
		ID          string `json:"id"`
		File        string `json:"file"`
		Title       string `json:"title"`
		TimeLimitMS int64  `json:"time_limit_ms"`
		Version     string `json:"version"`
	} `json:"games"`
}

// EmbeddedRegistry returns the registry compiled into the binary.
func EmbeddedRegistry() (*StaticRegistry, error) {
	return LoadRegistry(bytes.NewReader(embeddedRegistry))
}

// Fragments returns the embedded game markup, rooted so that keys look like
// "games/<file>".
func Fragments() fs.FS {
	return embeddedGames
}

// LoadRegistry reads and validates a registry document.
func LoadRegistry(r io.Reader) (*StaticRegistry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("registry failed validation: %w", err)
	}

	var parsed registryDoc
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	games := make([]Descriptor, 0, len(parsed.Games))
	for _, g := range parsed.Games {
		games = append(games, Descriptor{
			ID:        g.ID,
			File:      g.File,
			Title:     g.Title,
			TimeLimit: time.Duration(g.TimeLimitMS) * time.Millisecond,
			Version:   g.Version,
		})
	}
	return NewStaticRegistry(games...), nil
}

var (
	schemaOnce sync.Once
	schemaVal  *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(registrySchema, &def); err != nil {
			schemaErr = fmt.Errorf("parse registry schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://minigames.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add registry schema: %w", err)
			return
		}
		schemaVal, schemaErr = c.Compile(url)
	})
	return schemaVal, schemaErr
}
