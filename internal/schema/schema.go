package schema

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	ErrMalformedSchema = errors.New("malformed template structure")
	ErrMalformedData   = errors.New("malformed record data")
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextArea FieldType = "textarea"
	FieldDateTime FieldType = "datetime"
	FieldSelect   FieldType = "select"
)

// Field is one column of a check template.
type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required,omitempty"`
	Options  []string  `json:"options,omitempty"`
}

// Structure is the decoded form of the check_templates.structure column:
// an ordered list of fields under a "columns" key.
type Structure struct {
	Columns []Field `json:"columns"`
}

// FieldValue pairs a template field with the value a record submitted for
// it, for view/edit pages.
type FieldValue struct {
	Field Field
	Value string
}

// ParseStructure decodes and shape-checks a raw structure document.
func ParseStructure(raw string) (*Structure, error) {
	var s Structure
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, errors.Wrap(ErrMalformedSchema, err.Error())
	}
	if len(s.Columns) == 0 {
		return nil, errors.Wrap(ErrMalformedSchema, "no columns")
	}
	for _, f := range s.Columns {
		if f.Name == "" {
			return nil, errors.Wrap(ErrMalformedSchema, "column without a name")
		}
		switch f.Type {
		case FieldText, FieldTextArea, FieldDateTime:
		case FieldSelect:
			if len(f.Options) == 0 {
				return nil, errors.Wrapf(ErrMalformedSchema, "select column %q without options", f.Name)
			}
		default:
			return nil, errors.Wrapf(ErrMalformedSchema, "column %q has unknown type %q", f.Name, f.Type)
		}
	}
	return &s, nil
}

// ParseData decodes a record payload: a flat JSON object keyed by field
// name. Values are kept as strings the way the form submitted them; the
// template's required/type metadata is advisory and not enforced here.
func ParseData(raw string) (map[string]string, error) {
	var generic map[string]any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return nil, errors.Wrap(ErrMalformedData, err.Error())
	}
	data := make(map[string]string, len(generic))
	for k, v := range generic {
		switch val := v.(type) {
		case string:
			data[k] = val
		case nil:
			data[k] = ""
		default:
			// numbers, booleans — re-encode as submitted
			b, err := json.Marshal(val)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedData, "field %q", k)
			}
			data[k] = string(b)
		}
	}
	return data, nil
}

// Pairs walks the structure in column order and attaches each field's
// submitted value, empty when the record has none.
func (s *Structure) Pairs(data map[string]string) []FieldValue {
	pairs := make([]FieldValue, 0, len(s.Columns))
	for _, f := range s.Columns {
		pairs = append(pairs, FieldValue{Field: f, Value: data[f.Name]})
	}
	return pairs
}
