package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// Deal is one promotable item from the deals catalog.
type Deal struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// LoadDeals reads the optional deals catalog. A missing file means no
// deals are configured and is not an error.
func LoadDeals(path string) ([]Deal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load deals catalog: %w", err)
	}

	var deals []Deal
	if err := json.Unmarshal(data, &deals); err != nil {
		return nil, fmt.Errorf("parse deals catalog: %w", err)
	}
	return deals, nil
}
