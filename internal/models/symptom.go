package models

type BuiltinSymptom struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

func DefaultBuiltinSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{ID: "cramps", Label: "Cramps", Icon: "activity"},
		{ID: "headache", Label: "Headache", Icon: "frown"},
		{ID: "bloating", Label: "Bloating", Icon: "wind"},
		{ID: "fatigue", Label: "Fatigue", Icon: "battery"},
		{ID: "mood", Label: "Mood Swings", Icon: "refresh-cw"},
		{ID: "acne", Label: "Acne", Icon: "alert-circle"},
		{ID: "backache", Label: "Backache", Icon: "thermometer"},
		{ID: "tender", Label: "Tender Breasts", Icon: "heart"},
	}
}

func IsBuiltinSymptom(id string) bool {
	for _, symptom := range DefaultBuiltinSymptoms() {
		if symptom.ID == id {
			return true
		}
	}
	return false
}
