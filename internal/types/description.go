package types

import (
	"encoding/json"
	"fmt"
	"slices"
)

// DummyDataFormat is the decoder kind of a field group that carries no
// columns. Tables built from it only expose the connector's internal columns.
const DummyDataFormat = "dummy"

// TopicDescription describes one table backed by a topic.
// It mirrors the layout of a table description file.
type TopicDescription struct {
	TableName  string      `json:"tableName" yaml:"tableName"`
	SchemaName *string     `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	TopicName  string      `json:"topicName" yaml:"topicName"`
	Key        *FieldGroup `json:"key,omitempty" yaml:"key,omitempty"`
	Message    *FieldGroup `json:"message,omitempty" yaml:"message,omitempty"` // value projection
}

// FieldGroup describes how the key or the message of a record maps to columns.
type FieldGroup struct {
	DataFormat string             `json:"dataFormat" yaml:"dataFormat"`
	DataSchema *string            `json:"dataSchema,omitempty" yaml:"dataSchema,omitempty"`
	Subject    *string            `json:"subject,omitempty" yaml:"subject,omitempty"`
	Fields     []FieldDescription `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FieldDescription describes a single column decoded from a field group.
type FieldDescription struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Mapping    string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty"`
	DataFormat string `json:"dataFormat,omitempty" yaml:"dataFormat,omitempty"`
	FormatHint string `json:"formatHint,omitempty" yaml:"formatHint,omitempty"`
	Hidden     bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// NewDummyFieldGroup returns a field group with the dummy decoder and no fields.
func NewDummyFieldGroup() *FieldGroup {
	return &FieldGroup{DataFormat: DummyDataFormat}
}

// Schema returns the description's schema name, or defaultSchema when it has none.
func (d TopicDescription) Schema(defaultSchema string) string {
	if d.SchemaName != nil {
		return *d.SchemaName
	}
	return defaultSchema
}

// Validate checks the fields every description must carry.
func (d TopicDescription) Validate() error {
	if d.TableName == "" {
		return fmt.Errorf("tableName is null or is empty")
	}
	if d.SchemaName != nil && *d.SchemaName == "" {
		return fmt.Errorf("schemaName is empty")
	}
	if d.TopicName == "" {
		return fmt.Errorf("topicName is null or is empty")
	}
	if err := d.Key.validate("key"); err != nil {
		return err
	}
	if err := d.Message.validate("message"); err != nil {
		return err
	}
	return nil
}

func (g *FieldGroup) validate(name string) error {
	if g == nil {
		return nil
	}
	if g.DataFormat == "" {
		return fmt.Errorf("%s: dataFormat is null or is empty", name)
	}
	for i, f := range g.Fields {
		if f.Name == "" {
			return fmt.Errorf("%s.fields[%d]: name is null or is empty", name, i)
		}
		if f.Type == "" {
			return fmt.Errorf("%s.fields[%d]: type is null or is empty for field %q", name, i, f.Name)
		}
	}
	return nil
}

// Clone returns a deep copy of the description.
func (d TopicDescription) Clone() TopicDescription {
	out := d
	out.SchemaName = clonePtr(d.SchemaName)
	out.Key = d.Key.Clone()
	out.Message = d.Message.Clone()
	return out
}

// Clone returns a deep copy of the field group. A nil group clones to nil.
func (g *FieldGroup) Clone() *FieldGroup {
	if g == nil {
		return nil
	}
	out := *g
	out.DataSchema = clonePtr(g.DataSchema)
	out.Subject = clonePtr(g.Subject)
	out.Fields = slices.Clone(g.Fields)
	return &out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// UnmarshalJSON decodes d. Property names must match exactly; a name that
// differs only in case is treated as unknown and ignored.
func (d *TopicDescription) UnmarshalJSON(data []byte) error {
	type plain TopicDescription
	data, err := exactProperties(data, "tableName", "schemaName", "topicName", "key", "message")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(d))
}

// UnmarshalJSON decodes g, matching property names exactly.
func (g *FieldGroup) UnmarshalJSON(data []byte) error {
	type plain FieldGroup
	data, err := exactProperties(data, "dataFormat", "dataSchema", "subject", "fields")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(g))
}

// UnmarshalJSON decodes f, matching property names exactly.
func (f *FieldDescription) UnmarshalJSON(data []byte) error {
	type plain FieldDescription
	data, err := exactProperties(data, "name", "type", "mapping", "comment", "dataFormat", "formatHint", "hidden")
	if err != nil {
		return err
	}
	return json.Unmarshal(data, (*plain)(f))
}

// exactProperties drops every object property not named in names. Anything
// other than a JSON object is returned unchanged for the typed decode to
// accept or reject.
func exactProperties(data []byte, names ...string) ([]byte, error) {
	var props map[string]json.RawMessage
	if err := json.Unmarshal(data, &props); err != nil || props == nil {
		return data, nil
	}
	for name := range props {
		if !slices.Contains(names, name) {
			delete(props, name)
		}
	}
	return json.Marshal(props)
}
