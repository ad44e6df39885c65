package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/slatesocial/site/internal/model"
)

type Kind int

const (
	KindString Kind = iota
	KindDate
	KindImage
)

type Field struct {
	Name string
	Kind Kind
	// NonEmpty rejects strings that are blank after trimming.
	NonEmpty bool
}

// Schema is an ordered list of required fields. Keys not listed are ignored.
type Schema []Field

// BlogSchema is the frontmatter contract of the blog collection.
var BlogSchema = Schema{
	{Name: "title", Kind: KindString, NonEmpty: true},
	{Name: "description", Kind: KindString, NonEmpty: true},
	{Name: "pubDate", Kind: KindDate},
	{Name: "author", Kind: KindString},
	{Name: "authorImage", Kind: KindImage},
	{Name: "heroImage", Kind: KindImage},
}

// ImageFunc resolves an image reference found in an entry.
type ImageFunc func(ref string) (*model.Image, error)

// Values holds validated, typed field values keyed by field name.
type Values map[string]any

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Time(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

func (v Values) Image(name string) *model.Image {
	img, _ := v[name].(*model.Image)
	return img
}

// Validate checks data against the schema. Issues are returned in field order.
func (s Schema) Validate(data map[string]any, resolve ImageFunc) (Values, []Issue) {
	values := make(Values, len(s))
	var issues []Issue

	for _, f := range s {
		raw, ok := data[f.Name]
		if !ok || raw == nil {
			issues = append(issues, Issue{Field: f.Name, Message: "required"})
			continue
		}

		v, err := f.coerce(raw, resolve)
		if err != nil {
			issues = append(issues, Issue{Field: f.Name, Message: err.Error()})
			continue
		}
		values[f.Name] = v
	}

	return values, issues
}

func (f Field) coerce(raw any, resolve ImageFunc) (any, error) {
	switch f.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, received %s", typeName(raw))
		}
		if f.NonEmpty && strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		return s, nil
	case KindDate:
		return CoerceDate(raw)
	case KindImage:
		ref, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected image path, received %s", typeName(raw))
		}
		return resolve(ref)
	}
	return nil, fmt.Errorf("unknown field kind %d", f.Kind)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case time.Time:
		return "date"
	}
	return fmt.Sprintf("%T", v)
}
