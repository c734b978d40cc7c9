package career

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed goals.yaml
var defaultVocabulary []byte

// Entry is one goal label and the phrases that signal it.
type Entry struct {
	Label   string   `yaml:"label"`
	Aliases []string `yaml:"aliases"`
}

// Vocabulary is an ordered list of goal entries.
type Vocabulary struct {
	Goals []Entry `yaml:"goals"`
}

// LoadVocabulary decodes a goals document.
func LoadVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("decode vocabulary: %w", err)
	}
	for i, g := range v.Goals {
		if strings.TrimSpace(g.Label) == "" {
			return Vocabulary{}, fmt.Errorf("vocabulary entry %d has no label", i)
		}
	}
	return v, nil
}

// DefaultVocabulary returns the embedded vocabulary.
func DefaultVocabulary() Vocabulary {
	v, err := LoadVocabulary(defaultVocabulary)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary: %v", err))
	}
	return v
}

type match struct {
	hits  int
	first int
}

// Match returns the entry with the most alias hits across texts.
// Ties go to the entry matched by the earliest text, then to vocabulary order.
func (v Vocabulary) Match(texts []string) (string, bool) {
	padded := make([]string, len(texts))
	for i, t := range texts {
		padded[i] = " " + phrase(t) + " "
	}

	var best *match
	label := ""
	for _, entry := range v.Goals {
		m := match{first: -1}
		for _, alias := range entry.Aliases {
			needle := phrase(alias)
			if needle == "" {
				continue
			}
			needle = " " + needle + " "
			for i, text := range padded {
				if strings.Contains(text, needle) {
					m.hits++
					if m.first < 0 || i < m.first {
						m.first = i
					}
				}
			}
		}
		if m.hits == 0 {
			continue
		}
		if best == nil || m.hits > best.hits || (m.hits == best.hits && m.first < best.first) {
			picked := m
			best = &picked
			label = entry.Label
		}
	}
	return label, best != nil
}

// phrase lowercases s and collapses every run of non-alphanumerics to one space.
func phrase(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " ")
}
