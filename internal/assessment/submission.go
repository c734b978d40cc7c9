package assessment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput marks a malformed or missing submission payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingAnswers is returned when the body or its answers field is absent.
	ErrMissingAnswers = fmt.Errorf("%w: missing answers", ErrInvalidInput)
	// ErrAnswersNotObject is returned when answers is present but not a JSON object.
	ErrAnswersNotObject = fmt.Errorf("%w: answers must be an object", ErrInvalidInput)
)

// Answer is one question id and its raw value.
type Answer struct {
	ID    string
	Value any
}

// Answers keeps survey answers in the order they were received.
// A nil Answers means no mapping was supplied; an empty non-nil one is a valid, empty survey.
type Answers []Answer

// Set stores value under id. A repeated id keeps its first position and takes the new value.
func (a *Answers) Set(id string, value any) {
	for i := range *a {
		if (*a)[i].ID == id {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Answer{ID: id, Value: value})
}

// Get returns the value stored under id.
func (a Answers) Get(id string) (any, bool) {
	for _, ans := range a {
		if ans.ID == id {
			return ans.Value, true
		}
	}
	return nil, false
}

// Keys returns question ids in insertion order.
func (a Answers) Keys() []string {
	out := make([]string, 0, len(a))
	for _, ans := range a {
		out = append(out, ans.ID)
	}
	return out
}

// Values returns answer values in insertion order.
func (a Answers) Values() []any {
	out := make([]any, 0, len(a))
	for _, ans := range a {
		out = append(out, ans.Value)
	}
	return out
}

// UnmarshalJSON decodes a JSON object keeping key order. Numbers stay json.Number.
func (a *Answers) UnmarshalJSON(data []byte) error {
	decoded, err := decodeAnswers(data)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

func decodeAnswers(data []byte) (Answers, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, ErrAnswersNotObject
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrAnswersNotObject
	}

	answers := Answers{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, ErrAnswersNotObject
		}
		id, ok := tok.(string)
		if !ok {
			return nil, ErrAnswersNotObject
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, ErrAnswersNotObject
		}
		answers.Set(id, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, ErrAnswersNotObject
	}
	return answers, nil
}

// Submission is one completed assessment as received from a client.
type Submission struct {
	Answers      Answers
	StudentName  any
	Age          any
	AcademicInfo any
	Interests    any
}

type rawSubmission struct {
	Answers      json.RawMessage `json:"answers"`
	StudentName  any             `json:"studentName"`
	Age          any             `json:"age"`
	AcademicInfo any             `json:"academicInfo"`
	Interests    any             `json:"interests"`
}

// DecodeSubmission reads a JSON submission body.
// An empty body, a null body or a missing answers field yields ErrMissingAnswers;
// malformed JSON or non-object answers yield ErrAnswersNotObject.
func DecodeSubmission(r io.Reader) (Submission, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: read body: %w", ErrInvalidInput, err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Submission{}, ErrMissingAnswers
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var raw rawSubmission
	if err := dec.Decode(&raw); err != nil {
		return Submission{}, ErrAnswersNotObject
	}

	answersRaw := bytes.TrimSpace(raw.Answers)
	if len(answersRaw) == 0 || bytes.Equal(answersRaw, []byte("null")) {
		return Submission{}, ErrMissingAnswers
	}
	answers, err := decodeAnswers(answersRaw)
	if err != nil {
		return Submission{}, err
	}

	return Submission{
		Answers:      answers,
		StudentName:  raw.StudentName,
		Age:          raw.Age,
		AcademicInfo: raw.AcademicInfo,
		Interests:    raw.Interests,
	}, nil
}

// Stringify renders an answer value as display text. Nil renders as "".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(Stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
