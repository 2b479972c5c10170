package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// DefaultPetName is stored when the questionnaire omits the pet's name.
const DefaultPetName = "Unnamed"

// Result is one questionnaire submission
type Result struct {
	ID           int64             `json:"id"`
	UserID       *int64            `json:"user_id,omitempty"` // nil for anonymous submissions
	PetName      string            `json:"pet_name"`
	PetAge       string            `json:"pet_age"`
	PetWeight    string            `json:"pet_weight"`
	PetSymptoms  string            `json:"pet_symptoms"`
	Answers      []json.RawMessage `json:"answers"`
	Constitution string            `json:"constitution"`
	CreatedAt    time.Time         `json:"created_at"`
}

// PetInfo is the pet section of a questionnaire. Absent fields stay nil so
// that defaults apply only when a field was not sent at all.
type PetInfo struct {
	Name     *FlexString `json:"name"`
	Age      *FlexString `json:"age"`
	Weight   *FlexString `json:"weight"`
	Symptoms *FlexString `json:"symptoms"`
}

// CreateResultRequest is the body of POST /api/results. Answers is kept raw
// so a non-array value can be reported as a validation failure.
type CreateResultRequest struct {
	PetInfo      *PetInfo        `json:"petInfo"`
	Answers      json.RawMessage `json:"answers"`
	Constitution string          `json:"constitution"`
}

// CreateResultResponse reports where a result ended up.
type CreateResultResponse struct {
	ResultID   int64 `json:"resultId"`
	IsLoggedIn bool  `json:"isLoggedIn"`
}

// FlexString accepts a JSON string, number or boolean and keeps its text.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	return errors.New("expected a string or number")
}

// StringOr returns the text of f, or def when f was not provided.
func (f *FlexString) StringOr(def string) string {
	if f == nil {
		return def
	}
	return string(*f)
}
