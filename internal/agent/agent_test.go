package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAgentCard(t *testing.T) {
	require.NoError(t, LoadAgentCard())
	require.NotEmpty(t, cardData)

	var card struct {
		Name   string `json:"name"`
		Skills []struct {
			ID string `json:"id"`
		} `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(cardData, &card))
	assert.Equal(t, "Content Studio Agent", card.Name)

	ids := make([]string, 0, len(card.Skills))
	for _, s := range card.Skills {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"caption", "hashtags", "ideas", "calendar"}, ids)
}

func TestCardFor(t *testing.T) {
	data, err := CardFor("https://studio.example.com/")
	require.NoError(t, err)

	var card map[string]any
	require.NoError(t, json.Unmarshal(data, &card))
	assert.Equal(t, "https://studio.example.com/a2a/studio", card["url"])
}
