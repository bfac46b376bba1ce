package questions

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed questions.json
var embeddedBank []byte

//go:embed questions.schema.json
var bankSchema []byte

// ErrEmptyBank is returned when a bank has no questions to draw from.
var ErrEmptyBank = errors.New("question bank is empty")

// Option is one selectable answer.
type Option struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Question is an immutable prompt with its scored options.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// MaxPoints returns the highest point value among the options.
func (q Question) MaxPoints() int {
	best := 0
	for _, o := range q.Options {
		if o.Points > best {
			best = o.Points
		}
	}
	return best
}

// Bank holds the starter bank (first round) and the full bank (later
// rounds and extended mode).
type Bank struct {
	Starter []Question `json:"starter"`
	Full    []Question `json:"full"`
}

// Provider supplies question sequences to the session controller.
type Provider interface {
	StarterQuestions() []Question
	FullQuestions() []Question
}

// StarterQuestions returns the first-round bank.
func (b *Bank) StarterQuestions() []Question { return b.Starter }

// FullQuestions returns the full bank.
func (b *Bank) FullQuestions() []Question { return b.Full }

// MaxPoints returns the highest single-option point value across both banks.
func (b *Bank) MaxPoints() int {
	best := 0
	for _, set := range [][]Question{b.Starter, b.Full} {
		for _, q := range set {
			if m := q.MaxPoints(); m > best {
				best = m
			}
		}
	}
	return best
}

// Embedded returns the question bank compiled into the binary.
func Embedded() (*Bank, error) {
	return Load(bytes.NewReader(embeddedBank))
}

// LoadFile reads and validates a question bank from a JSON file.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a question bank, validating it against the bank schema.
func Load(r io.Reader) (*Bank, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("question bank failed validation: %w", err)
	}

	var bank Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return &bank, nil
}

var (
	schemaOnce sync.Once
	schemaVal  *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(bankSchema, &def); err != nil {
			schemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://questions.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		schemaVal, schemaErr = c.Compile(url)
	})
	return schemaVal, schemaErr
}

// Sample draws up to n questions without replacement. When the bank holds
// fewer than n questions, every question is returned in shuffled order.
func Sample(qs []Question, n int, rng *rand.Rand) ([]Question, error) {
	if len(qs) == 0 {
		return nil, ErrEmptyBank
	}
	shuffled := make([]Question, len(qs))
	copy(shuffled, qs)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n], nil
}
