package assessment

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed rubric.yaml
var defaultRubric []byte

// Rule kinds.
const (
	KindLikert   = "likert"
	KindChoice   = "choice"
	KindKeywords = "keywords"
)

// TraitScores maps every rubric trait to a score within the rubric range.
type TraitScores map[string]int

// Rubric is the scoring rulebook decoded from YAML.
type Rubric struct {
	Range struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"range"`
	Traits []string `yaml:"traits"`
	Likert struct {
		Points int            `yaml:"points"`
		Labels map[string]int `yaml:"labels"`
	} `yaml:"likert"`
	Questions map[string]Rule `yaml:"questions"`
}

// Rule scores a single question.
type Rule struct {
	Kind     string              `yaml:"kind"`
	Trait    string              `yaml:"trait"`
	Weight   int                 `yaml:"weight"`
	Options  map[string]string   `yaml:"options"`
	Keywords map[string][]string `yaml:"keywords"`
}

// LoadRubric decodes and validates a rubric document.
func LoadRubric(data []byte) (Rubric, error) {
	var r Rubric
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rubric{}, fmt.Errorf("decode rubric: %w", err)
	}
	if err := r.validate(); err != nil {
		return Rubric{}, err
	}
	return r, nil
}

// DefaultRubric returns the embedded rubric.
func DefaultRubric() Rubric {
	r, err := LoadRubric(defaultRubric)
	if err != nil {
		panic(fmt.Sprintf("embedded rubric: %v", err))
	}
	return r
}

func (r Rubric) validate() error {
	if len(r.Traits) == 0 {
		return fmt.Errorf("rubric has no traits")
	}
	if r.Range.Max <= r.Range.Min {
		return fmt.Errorf("rubric range %d..%d is empty", r.Range.Min, r.Range.Max)
	}
	known := make(map[string]bool, len(r.Traits))
	for _, t := range r.Traits {
		if known[t] {
			return fmt.Errorf("rubric trait %q listed twice", t)
		}
		known[t] = true
	}
	for id, rule := range r.Questions {
		if rule.Weight <= 0 {
			return fmt.Errorf("question %s: weight must be positive", id)
		}
		switch rule.Kind {
		case KindLikert:
			if r.Likert.Points <= 0 {
				return fmt.Errorf("question %s: likert scale has no points", id)
			}
			if !known[rule.Trait] {
				return fmt.Errorf("question %s: unknown trait %q", id, rule.Trait)
			}
		case KindChoice:
			for option, trait := range rule.Options {
				if !known[trait] {
					return fmt.Errorf("question %s option %q: unknown trait %q", id, option, trait)
				}
			}
		case KindKeywords:
			for trait := range rule.Keywords {
				if !known[trait] {
					return fmt.Errorf("question %s: unknown trait %q", id, trait)
				}
			}
		default:
			return fmt.Errorf("question %s: unknown kind %q", id, rule.Kind)
		}
	}
	return nil
}

// Scorer turns answers into trait scores. It is safe for concurrent use.
type Scorer struct {
	rubric  Rubric
	maxRaw  map[string]int
	options map[string]map[string]string
	labels  map[string]int
}

// NewScorer prepares a scorer for a validated rubric.
func NewScorer(r Rubric) (*Scorer, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	s := &Scorer{
		rubric:  r,
		maxRaw:  make(map[string]int, len(r.Traits)),
		options: make(map[string]map[string]string),
		labels:  make(map[string]int, len(r.Likert.Labels)),
	}
	for label, value := range r.Likert.Labels {
		s.labels[normalizeText(label)] = value
	}
	for id, rule := range r.Questions {
		switch rule.Kind {
		case KindLikert:
			s.maxRaw[rule.Trait] += rule.Weight * r.Likert.Points
		case KindChoice:
			opts := make(map[string]string, len(rule.Options))
			seen := map[string]bool{}
			for option, trait := range rule.Options {
				opts[normalizeText(option)] = trait
				if !seen[trait] {
					seen[trait] = true
					s.maxRaw[trait] += rule.Weight
				}
			}
			s.options[id] = opts
		case KindKeywords:
			for trait, words := range rule.Keywords {
				if len(words) > 0 {
					s.maxRaw[trait] += rule.Weight
				}
			}
		}
	}
	return s, nil
}

// DefaultScorer returns a scorer for the embedded rubric.
func DefaultScorer() *Scorer {
	s, err := NewScorer(DefaultRubric())
	if err != nil {
		panic(fmt.Sprintf("embedded rubric: %v", err))
	}
	return s
}

// Traits lists the rubric traits in rubric order.
func (s *Scorer) Traits() []string {
	return append([]string(nil), s.rubric.Traits...)
}

// CalculateScores applies the rubric to answers.
// A nil Answers fails with ErrInvalidInput; missing or malformed entries score zero.
func (s *Scorer) CalculateScores(answers Answers) (TraitScores, error) {
	if answers == nil {
		return nil, ErrMissingAnswers
	}

	raw := make(map[string]int, len(s.rubric.Traits))
	for _, ans := range answers {
		rule, ok := s.rubric.Questions[ans.ID]
		if !ok {
			continue
		}
		switch rule.Kind {
		case KindLikert:
			if v, ok := s.likertValue(ans.Value); ok {
				raw[rule.Trait] += rule.Weight * v
			}
		case KindChoice:
			if trait, ok := s.options[ans.ID][normalizeText(Stringify(ans.Value))]; ok {
				raw[trait] += rule.Weight
			}
		case KindKeywords:
			words := wordSet(Stringify(ans.Value))
			for trait, keywords := range rule.Keywords {
				for _, kw := range keywords {
					if words[strings.ToLower(kw)] {
						raw[trait] += rule.Weight
						break
					}
				}
			}
		}
	}

	scores := make(TraitScores, len(s.rubric.Traits))
	lo, hi := s.rubric.Range.Min, s.rubric.Range.Max
	for _, trait := range s.rubric.Traits {
		scores[trait] = normalize(raw[trait], s.maxRaw[trait], lo, hi)
	}
	return scores, nil
}

func normalize(raw, max, lo, hi int) int {
	if max <= 0 || raw <= 0 {
		return lo
	}
	scaled := lo + int(math.Round(float64(raw)*float64(hi-lo)/float64(max)))
	if scaled > hi {
		return hi
	}
	return scaled
}

func (s *Scorer) likertValue(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case float64:
		f = t
	case string:
		text := normalizeText(t)
		if label, ok := s.labels[text]; ok {
			return label, true
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < 1 || f > float64(s.rubric.Likert.Points) {
		return 0, false
	}
	return int(f), true
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func wordSet(s string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
