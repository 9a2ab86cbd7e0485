package models

import "slices"

// Tournament создаётся сидом; сервис регистрации только дописывает участников.
type Tournament struct {
	ID           ID     `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date,omitempty"`
	Participants []ID   `json:"participants"`
}

func (t Tournament) EntityID() ID { return t.ID }

// HasParticipant сообщает, зарегистрирована ли команда в турнире.
func (t Tournament) HasParticipant(teamID ID) bool {
	return slices.Contains(t.Participants, teamID)
}
