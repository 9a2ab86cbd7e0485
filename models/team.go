package models

import (
	"bytes"
	"encoding/json"
)

type Team struct {
	ID      ID             `json:"id"`
	Name    string         `json:"name"`
	Members []string       `json:"members"`
	Meta    map[string]any `json:"meta"`
}

func (t Team) EntityID() ID { return t.ID }

// UnmarshalJSON принимает members как массив любых значений: строки берутся
// как есть, остальные элементы сохраняются своим JSON-текстом.
func (t *Team) UnmarshalJSON(data []byte) error {
	type plain Team
	aux := struct {
		*plain
		Members []json.RawMessage `json:"members"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t.Members = make([]string, 0, len(aux.Members))
	for _, raw := range aux.Members {
		var member string
		if err := json.Unmarshal(raw, &member); err == nil {
			t.Members = append(t.Members, member)
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return err
		}
		t.Members = append(t.Members, compact.String())
	}
	return nil
}
