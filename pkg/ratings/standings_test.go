package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandings(t *testing.T) {
	engine := NewEngine(DefaultSettings())

	_, err := engine.Process([]Match{
		{PlayerA: "P1", PlayerB: "P2", Surface: "Hard", Date: on(0), AWon: true},
		{PlayerA: "P3", PlayerB: "P1", Surface: "Clay", Date: on(0), AWon: false},
		{PlayerA: "P2", PlayerB: "P3", Surface: "Clay", Date: on(4), AWon: true},
	})
	require.NoError(t, err)

	standings := engine.Standings()
	require.Len(t, standings, 3)

	assert.Equal(t, "P1", standings[0].Player)
	assert.Equal(t, uint(2), standings[0].Wins)
	assert.Equal(t, uint(0), standings[0].Losses)
	assert.Equal(t, on(0), standings[0].LastSeen)
	assert.Len(t, standings[0].Surfaces, 2)
	assert.Equal(t, 1516.0, standings[0].Surfaces["Hard"])

	for i := 1; i < len(standings); i++ {
		assert.GreaterOrEqual(t, standings[i-1].Rating, standings[i].Rating)
	}

	// Mutating the result leaves the engine alone
	standings[0].Surfaces["Hard"] = 0
	assert.Equal(t, 1516.0, engine.Standings()[0].Surfaces["Hard"])
}
