package journal

import "github.com/julianstephens/termjournal/internal/models"

var placeholders = map[models.Field]string{
	models.FieldTitle:        "Enter a title for your entry...",
	models.FieldDescription:  "Write about your day...",
	models.FieldImprovements: "What did you do better today?",
	models.FieldSetbacks:     "What challenges did you face?",
	models.FieldMistakes:     "What would you do differently?",
}

// Placeholder returns the guidance text shown in an empty field. It is never
// part of the field's value.
func Placeholder(field models.Field) string {
	return placeholders[field]
}
