package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID идентифицирует сущность. В документах и запросах может прийти как строка,
// так и число (сидовые турниры используют числовые id); сравнивается как строка.
type ID string

func (id ID) String() string { return string(id) }

// IsZero сообщает, что id не задан или состоит из пробелов.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number, got %s", data)
	}
	*id = ID(n.String())
	return nil
}
