// Package agent holds the A2A agent card served at /.well-known/agent.json.
package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed agent.json
var rawCard []byte

// cardData is the validated card, filled by LoadAgentCard.
var cardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

// LoadAgentCard checks the embedded card once.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card map[string]any
		if err := json.Unmarshal(rawCard, &card); err != nil {
			loadErr = fmt.Errorf("parse agent card: %w", err)
			return
		}
		for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
			if _, ok := card[field]; !ok {
				loadErr = fmt.Errorf("agent card is missing %q", field)
				return
			}
		}
		cardData = rawCard
	})
	return loadErr
}

// CardFor returns the card with its url pointing at baseURL.
func CardFor(baseURL string) ([]byte, error) {
	if err := LoadAgentCard(); err != nil {
		return nil, err
	}

	var card map[string]any
	if err := json.Unmarshal(cardData, &card); err != nil {
		return nil, fmt.Errorf("parse agent card: %w", err)
	}
	if endpoints, ok := card["endpoints"].(map[string]any); ok {
		if msg, ok := endpoints["message"].(string); ok {
			card["url"] = strings.TrimSuffix(baseURL, "/") + msg
		}
	}
	return json.Marshal(card)
}
