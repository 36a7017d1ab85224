package acronyms

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed toon_acronyms.json
var defaultAcronyms []byte

var ErrLoad = errors.New("failed to load acronyms")

type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s from %s: %v", ErrLoad.Error(), e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Maps a lower-cased acronym to the canonical unit name for one combat type
type Expander map[string]string

func (e Expander) Expand(acronym string) (string, bool) {
	name, ok := e[strings.ToLower(acronym)]
	return name, ok
}

func (e Expander) Len() int {
	return len(e)
}

// Table is immutable after loading
type Table struct {
	characters Expander
	ships      Expander
}

func (t *Table) Characters() Expander {
	return t.characters
}

func (t *Table) Ships() Expander {
	return t.ships
}

type entry struct {
	Acronym string `json:"acronym" yaml:"acronym"`
	Name    string `json:"name" yaml:"name"`
}

type source struct {
	Chars *[]entry `json:"chars" yaml:"chars"`
	Ships *[]entry `json:"ships" yaml:"ships"`
}

func Load(r io.Reader, format Format, sourceName string) (*Table, error) {
	loadErr := func(err error) (*Table, error) {
		return nil, &LoadError{Source: sourceName, Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return loadErr(fmt.Errorf("failed to read source: %w", err))
	}

	var src source
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &src)
	case FormatYAML:
		err = yaml.Unmarshal(data, &src)
	default:
		return loadErr(fmt.Errorf("unsupported format %q", format))
	}
	if err != nil {
		return loadErr(fmt.Errorf("failed to parse source: %w", err))
	}

	if src.Chars == nil {
		return loadErr(errors.New("missing list: chars"))
	}
	if src.Ships == nil {
		return loadErr(errors.New("missing list: ships"))
	}

	characters, err := buildExpander(*src.Chars)
	if err != nil {
		return loadErr(fmt.Errorf("chars: %w", err))
	}
	ships, err := buildExpander(*src.Ships)
	if err != nil {
		return loadErr(fmt.Errorf("ships: %w", err))
	}

	return &Table{
		characters: characters,
		ships:      ships,
	}, nil
}

func buildExpander(entries []entry) (Expander, error) {
	expander := make(Expander, len(entries))
	for i, e := range entries {
		acronym := strings.ToLower(strings.TrimSpace(e.Acronym))
		name := strings.TrimSpace(e.Name)
		if acronym == "" {
			return nil, fmt.Errorf("entry %d: empty acronym", i)
		}
		if name == "" {
			return nil, fmt.Errorf("entry %d (%s): empty name", i, e.Acronym)
		}

		if existing, ok := expander[acronym]; ok && !strings.EqualFold(existing, name) {
			return nil, fmt.Errorf("entry %d: acronym %q maps to both %q and %q", i, e.Acronym, existing, name)
		}
		expander[acronym] = name
	}
	return expander, nil
}

func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown acronym file extension for %s", path)
	}
}

func LoadFile(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return Load(f, format, path)
}

// The acronym table shipped with the client
func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultAcronyms), FormatJSON, "embedded toon_acronyms.json")
}
