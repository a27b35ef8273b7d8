package workflow

// FieldKind is the dictionary type tag. Only free text and single-select
// fields exist in the legacy data.
type FieldKind int

const (
	FieldKindText   FieldKind = 1
	FieldKindSelect FieldKind = 3
)

// FieldOption is one selectable value for a select field.
type FieldOption struct {
	ID    uint
	Value string
}

// DynamicField is a subtype-declared custom field backed by a dictionary
// definition. Options are populated for select fields only.
type DynamicField struct {
	FieldID      uint
	SubtypeID    uint
	Order        int
	DictionaryID uint
	Name         string
	Label        string
	Kind         FieldKind
	Options      []FieldOption
}
