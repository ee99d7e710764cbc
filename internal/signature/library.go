// Package signature is a rule database that matches normalized identity
// strings against named device and OS families.
package signature

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"codeberg.org/mutker/hwprint/internal/errors"
	"gopkg.in/yaml.v3"
)

const supportedVersion = 1

//go:embed signatures.yaml
var defaultDatabase []byte

type database struct {
	Version  int                   `yaml:"version"`
	Families map[string]familySpec `yaml:"families"`
}

type familySpec struct {
	ContainsAll  []string `yaml:"contains_all"`
	ContainsAny  []string `yaml:"contains_any"`
	ContainsNone []string `yaml:"contains_none"`
	FamiliesAll  []string `yaml:"families_all"`
	FamiliesAny  []string `yaml:"families_any"`
	FamiliesNone []string `yaml:"families_none"`
}

func (s familySpec) empty() bool {
	return len(s.ContainsAll)+len(s.ContainsAny)+len(s.ContainsNone)+
		len(s.FamiliesAll)+len(s.FamiliesAny)+len(s.FamiliesNone) == 0
}

func (s familySpec) references() []string {
	refs := make([]string, 0, len(s.FamiliesAll)+len(s.FamiliesAny)+len(s.FamiliesNone))
	refs = append(refs, s.FamiliesAll...)
	refs = append(refs, s.FamiliesAny...)

	return append(refs, s.FamiliesNone...)
}

// Library is an immutable, validated signature database. It is safe for
// concurrent use.
type Library struct {
	families map[string]familySpec
}

// Default returns the embedded signature database.
func Default() (*Library, error) {
	return Parse(defaultDatabase)
}

// Load reads a signature database from path. An empty path selects the
// embedded database.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New().WithData(ErrReadDatabase, struct {
			Path  string
			Error string
		}{
			Path:  path,
			Error: err.Error(),
		})
	}

	return Parse(data)
}

// Parse decodes and validates a YAML signature database.
func Parse(data []byte) (*Library, error) {
	errFactory := errors.New()

	var db database
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, errFactory.Wrap(ErrParseDatabase, err)
	}
	if db.Version != supportedVersion {
		return nil, errFactory.WithData(ErrUnsupportedVersion, db.Version)
	}

	families := make(map[string]familySpec, len(db.Families))
	for name, spec := range db.Families {
		families[name] = normalizeSpec(spec)
	}

	lib := &Library{families: families}
	if err := lib.validate(); err != nil {
		return nil, err
	}

	return lib, nil
}

func normalizeSpec(s familySpec) familySpec {
	lower := func(tokens []string) []string {
		out := make([]string, len(tokens))
		for i, t := range tokens {
			out[i] = strings.ToLower(t)
		}
		return out
	}

	s.ContainsAll = lower(s.ContainsAll)
	s.ContainsAny = lower(s.ContainsAny)
	s.ContainsNone = lower(s.ContainsNone)

	return s
}

func (l *Library) validate() error {
	errFactory := errors.New()

	for _, name := range l.Families() {
		spec := l.families[name]
		if spec.empty() {
			return errFactory.WithData(ErrEmptyFamily, name)
		}
		for _, ref := range spec.references() {
			if _, ok := l.families[ref]; !ok {
				return errFactory.WithData(ErrUnknownFamily, struct {
					Family    string
					Reference string
				}{
					Family:    name,
					Reference: ref,
				})
			}
		}
	}

	const (
		visiting = iota + 1
		done
	)
	state := make(map[string]int, len(l.families))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return errFactory.WithData(ErrCyclicFamily, name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, ref := range l.families[name].references() {
			if err := visit(ref); err != nil {
				return err
			}
		}
		state[name] = done

		return nil
	}

	for _, name := range l.Families() {
		if err := visit(name); err != nil {
			return err
		}
	}

	return nil
}

// Families returns the sorted family names.
func (l *Library) Families() []string {
	names := make([]string, 0, len(l.families))
	for name := range l.families {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Has reports whether the database defines family.
func (l *Library) Has(family string) bool {
	_, ok := l.families[family]
	return ok
}

// Match reports whether identity matches family. Unknown families never
// match.
func (l *Library) Match(family, identity string) bool {
	spec, ok := l.families[family]
	if !ok {
		return false
	}

	return l.match(spec, identity)
}

func (l *Library) match(spec familySpec, identity string) bool {
	for _, token := range spec.ContainsAll {
		if !strings.Contains(identity, token) {
			return false
		}
	}
	for _, token := range spec.ContainsNone {
		if strings.Contains(identity, token) {
			return false
		}
	}
	for _, ref := range spec.FamiliesAll {
		if !l.Match(ref, identity) {
			return false
		}
	}
	for _, ref := range spec.FamiliesNone {
		if l.Match(ref, identity) {
			return false
		}
	}

	if len(spec.ContainsAny) == 0 && len(spec.FamiliesAny) == 0 {
		return true
	}
	for _, token := range spec.ContainsAny {
		if strings.Contains(identity, token) {
			return true
		}
	}
	for _, ref := range spec.FamiliesAny {
		if l.Match(ref, identity) {
			return true
		}
	}

	return false
}
