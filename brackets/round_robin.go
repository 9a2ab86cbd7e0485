package brackets

import (
	"context"
	"fmt"
	"sort"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates pairings for a round-robin stage.
// With one leg every participant meets every other participant once;
// with two legs a second meeting follows with sides swapped.
// All first-leg matches are ordered before the second-leg ones.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	participants := params.Participants
	if len(participants) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: tournament %s: not enough participants (found %d, min 2 required)", params.TournamentID, len(participants))
	}

	legs := params.Legs
	if legs == 0 {
		legs = 1
	}
	if legs != 1 && legs != 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: tournament %s: unsupported number of legs %d", params.TournamentID, legs)
	}

	pairsPerLeg := len(participants) * (len(participants) - 1) / 2
	matches := make([]*BracketMatch, 0, pairsPerLeg*legs)
	matchOrder := 0

	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			a, b := participants[i], participants[j]

			matchOrder++
			matches = append(matches, &BracketMatch{
				OrderInRound: matchOrder,
				TeamAID:      a,
				TeamBID:      b,
			})

			if legs == 2 {
				matches = append(matches, &BracketMatch{
					OrderInRound: matchOrder + pairsPerLeg,
					TeamAID:      b,
					TeamBID:      a,
				})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].OrderInRound < matches[j].OrderInRound
	})

	return matches, nil
}
