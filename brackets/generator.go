package brackets

import (
	"context"

	"github.com/Dosada05/tournament-platform/models"
)

type GenerateBracketParams struct {
	TournamentID models.ID
	// Participants - команды турнира в порядке регистрации.
	Participants []models.ID
	// Legs - 1 для одного круга, 2 для двух (стороны во втором круге меняются).
	Legs int
}

// BracketMatch - пара команд, которую нужно сыграть.
type BracketMatch struct {
	// OrderInRound - сквозной порядковый номер, матчи второго круга идут после первого.
	OrderInRound int
	TeamAID      models.ID
	TeamBID      models.ID
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}
