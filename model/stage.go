package model

type Stage struct {
	StageID  string `firestore:"id,omitempty" json:"id"`
	BoardID  string `firestore:"board_id,omitempty" json:"board_id"`
	Title    string `firestore:"title,omitempty" json:"title"`
	Position int    `firestore:"position" json:"position"`
}

// Field types an admin can configure per stage.
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeNumber   = "number"
	FieldTypeDate     = "date"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
)

func ValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate, FieldTypeSelect, FieldTypeCheckbox:
		return true
	}
	return false
}

type StageField struct {
	FieldID      string   `firestore:"id,omitempty" json:"id"`
	StageID      string   `firestore:"stage_id,omitempty" json:"stage_id"`
	FieldName    string   `firestore:"field_name,omitempty" json:"field_name"`
	FieldType    string   `firestore:"field_type,omitempty" json:"field_type"`
	IsRequired   bool     `firestore:"is_required" json:"is_required"`
	Options      []string `firestore:"options,omitempty" json:"options,omitempty"`
	DefaultValue string   `firestore:"default_value,omitempty" json:"default_value,omitempty"`
	Position     int      `firestore:"position" json:"position"`
}
