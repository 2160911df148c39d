package entities

// Field names a dinosaur attribute that can be selected for filtering or export.
type Field string

const (
	FieldName         Field = "name"
	FieldLegLength    Field = "leg_length"
	FieldDiet         Field = "diet"
	FieldStrideLength Field = "stride_length"
	FieldStance       Field = "stance"
	FieldVelocity     Field = "velocity"
)

// Fields lists every selectable attribute in record order.
var Fields = []Field{FieldName, FieldLegLength, FieldDiet, FieldStrideLength, FieldStance, FieldVelocity}

// ParseField resolves an exact field name.
func ParseField(s string) (Field, error) {
	f := Field(s)
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", NewOpError("entities.parse_field", KindInvalidArgument, "", "unknown field %q: %w", s, ErrInvalidArgument)
}

// IsText reports whether the field holds a string value.
func (f Field) IsText() bool {
	switch f {
	case FieldName, FieldDiet, FieldStance:
		return true
	default:
		return false
	}
}

// TextValue returns the string value of a text field.
// It fails with a type mismatch for numeric fields.
func (d Dinosaur) TextValue(f Field) (NullString, error) {
	switch f {
	case FieldName:
		return d.name, nil
	case FieldDiet:
		return d.diet, nil
	case FieldStance:
		return d.stance, nil
	case FieldLegLength, FieldStrideLength, FieldVelocity:
		return NullString{}, NewOpError("entities.text_value", KindTypeMismatch, "", "field %s is numeric, not text: %w", f, ErrTypeMismatch)
	default:
		return NullString{}, NewOpError("entities.text_value", KindInvalidArgument, "", "unknown field %q: %w", f, ErrInvalidArgument)
	}
}
