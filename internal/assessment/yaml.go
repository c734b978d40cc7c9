package assessment

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a YAML mapping keeping key order.
func (a *Answers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return ErrAnswersNotObject
	}
	answers := Answers{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("%w: answer %q: %v", ErrInvalidInput, keyNode.Value, err)
		}
		answers.Set(keyNode.Value, value)
	}
	*a = answers
	return nil
}

// SubmissionFile is the on-disk form of a submission, accepted as YAML or JSON.
type SubmissionFile struct {
	Answers      Answers `yaml:"answers"`
	StudentName  any     `yaml:"studentName"`
	Age          any     `yaml:"age"`
	AcademicInfo any     `yaml:"academicInfo"`
	Interests    any     `yaml:"interests"`
}

// DecodeSubmissionYAML parses a submission document. JSON input is valid YAML.
func DecodeSubmissionYAML(data []byte) (Submission, error) {
	var file SubmissionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if file.Answers == nil {
		return Submission{}, ErrMissingAnswers
	}
	return Submission{
		Answers:      file.Answers,
		StudentName:  file.StudentName,
		Age:          file.Age,
		AcademicInfo: file.AcademicInfo,
		Interests:    file.Interests,
	}, nil
}
