// Package refdata provides the static reference lists a declaration is
// validated against: waste codes by classification, EWC codes, countries,
// and recovery/disposal codes.
//
// A default set of lists is embedded so the module works out of the box;
// deployments with newer lists can point Load at a directory of YAML files
// with the same shapes.
package refdata

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/greenlist/annexvii/internal/model"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// LocalisedText is a description in both supported locales.
type LocalisedText struct {
	En string `yaml:"en" json:"en"`
	Cy string `yaml:"cy" json:"cy"`
}

// CodeEntry is one code plus its localised description.
type CodeEntry struct {
	Code        string        `yaml:"code" json:"code"`
	Description LocalisedText `yaml:"description" json:"description"`
}

// RecoveryCodeEntry is a recovery code. Interim marks codes legal for
// interim sites (R12, R13).
type RecoveryCodeEntry struct {
	Code        string        `yaml:"code" json:"code"`
	Description LocalisedText `yaml:"description" json:"description"`
	Interim     bool          `yaml:"interim" json:"interim,omitempty"`
}

// WasteCodeSet groups waste codes under one classification type.
type WasteCodeSet struct {
	Type   string      `yaml:"type" json:"type"`
	Values []CodeEntry `yaml:"values" json:"values"`
}

// Country is one entry of the country list, e.g. "France [FR]".
type Country struct {
	Name string `yaml:"name" json:"name"`
}

type countryFile struct {
	Countries []Country `yaml:"countries"`
	UK        []Country `yaml:"uk"`
}

// Store holds all reference lists and answers lookups against them.
// Lookups are case-insensitive and return the canonical entry.
type Store struct {
	wasteCodes    []WasteCodeSet
	ewcCodes      []CodeEntry
	countries     []Country
	ukCountries   []Country
	recoveryCodes []RecoveryCodeEntry
	disposalCodes []CodeEntry
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the store backed by the embedded lists.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := load(func(name string) ([]byte, error) {
			return defaults.ReadFile("defaults/" + name)
		})
		if err != nil {
			// Embedded lists are fixed at build time; failing to parse
			// them is a programming error.
			panic(fmt.Sprintf("refdata: embedded lists: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}

// Load reads reference lists from dir. File names match the embedded set:
// waste_codes.yaml, ewc_codes.yaml, countries.yaml, recovery_codes.yaml,
// disposal_codes.yaml.
func Load(dir string) (*Store, error) {
	return load(func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	})
}

func load(read func(name string) ([]byte, error)) (*Store, error) {
	s := &Store{}

	if err := readYAML(read, "waste_codes.yaml", &s.wasteCodes); err != nil {
		return nil, err
	}
	if err := readYAML(read, "ewc_codes.yaml", &s.ewcCodes); err != nil {
		return nil, err
	}
	var cf countryFile
	if err := readYAML(read, "countries.yaml", &cf); err != nil {
		return nil, err
	}
	s.countries = cf.Countries
	s.ukCountries = cf.UK
	if err := readYAML(read, "recovery_codes.yaml", &s.recoveryCodes); err != nil {
		return nil, err
	}
	if err := readYAML(read, "disposal_codes.yaml", &s.disposalCodes); err != nil {
		return nil, err
	}

	return s, nil
}

func readYAML(read func(name string) ([]byte, error), name string, out any) error {
	data, err := read(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// WasteCodes returns the code list for one classification type.
func (s *Store) WasteCodes(t model.WasteCodeType) []CodeEntry {
	for _, set := range s.wasteCodes {
		if set.Type == string(t) {
			return set.Values
		}
	}
	return nil
}

// WasteCode looks up a code within one classification type.
func (s *Store) WasteCode(t model.WasteCodeType, code string) (CodeEntry, bool) {
	want := normalizeCode(code)
	for _, entry := range s.WasteCodes(t) {
		if normalizeCode(entry.Code) == want {
			return entry, true
		}
	}
	return CodeEntry{}, false
}

// EwcCode looks up a six-digit EWC code, ignoring spaces, hyphens and the
// hazardous marker.
func (s *Store) EwcCode(code string) (CodeEntry, bool) {
	want := strings.TrimSuffix(normalizeEwc(code), "*")
	for _, entry := range s.ewcCodes {
		if strings.TrimSuffix(normalizeEwc(entry.Code), "*") == want {
			return entry, true
		}
	}
	return CodeEntry{}, false
}

// Country resolves a country name to its canonical list entry. List entries
// carry an ISO suffix ("France [FR]"); input may give either the full entry
// or the bare name. UK entries are only searched when includeUK is set.
func (s *Store) Country(name string, includeUK bool) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}
	lists := [][]Country{s.countries}
	if includeUK {
		lists = append(lists, s.ukCountries)
	}
	for _, list := range lists {
		for _, c := range list {
			full := strings.ToLower(c.Name)
			if full == want || strings.ToLower(stripIsoSuffix(c.Name)) == want {
				return c.Name, true
			}
		}
	}
	return "", false
}

// RecoveryCode canonicalizes and looks up a recovery code (r1 -> R1).
func (s *Store) RecoveryCode(code string) (RecoveryCodeEntry, bool) {
	want := normalizeCode(code)
	for _, entry := range s.recoveryCodes {
		if normalizeCode(entry.Code) == want {
			return entry, true
		}
	}
	return RecoveryCodeEntry{}, false
}

// InterimRecoveryCode reports whether code is legal for an interim site.
func (s *Store) InterimRecoveryCode(code string) bool {
	entry, ok := s.RecoveryCode(code)
	return ok && entry.Interim
}

// DisposalCode canonicalizes and looks up a disposal code (d1 -> D1).
func (s *Store) DisposalCode(code string) (CodeEntry, bool) {
	want := normalizeCode(code)
	for _, entry := range s.disposalCodes {
		if normalizeCode(entry.Code) == want {
			return entry, true
		}
	}
	return CodeEntry{}, false
}

// Countries returns the country list, optionally including UK entries.
func (s *Store) Countries(includeUK bool) []Country {
	if !includeUK {
		return s.countries
	}
	out := make([]Country, 0, len(s.countries)+len(s.ukCountries))
	out = append(out, s.ukCountries...)
	out = append(out, s.countries...)
	return out
}

// RecoveryCodes returns the recovery code list.
func (s *Store) RecoveryCodes() []RecoveryCodeEntry { return s.recoveryCodes }

// DisposalCodes returns the disposal code list.
func (s *Store) DisposalCodes() []CodeEntry { return s.disposalCodes }

// EwcCodes returns the EWC code list.
func (s *Store) EwcCodes() []CodeEntry { return s.ewcCodes }

func normalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), " "))
}

func normalizeEwc(code string) string {
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "-", "")
	return strings.TrimSpace(code)
}

func stripIsoSuffix(name string) string {
	if i := strings.LastIndex(name, " ["); i > 0 {
		return name[:i]
	}
	return name
}
