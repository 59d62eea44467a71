package fonts

import (
	"encoding/json"
	"fmt"

	"scrollgl/internal/utils"
)

// LoadMap reads a JSON object of weight -> resource. Keys are normalised and
// buckets the file leaves out keep the embedded default.
func LoadMap(path string) (Map, error) {
	data, resolved, err := utils.ReadAsset(path)
	if err != nil {
		return nil, fmt.Errorf("read font map: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse font map %s: %w", resolved, err)
	}

	m := DefaultMap()
	for weight, resource := range raw {
		if resource == "" {
			continue
		}
		m[NormalizeWeight(weight)] = resource
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	utils.Debug("Fonts: loaded map %s (%d entries)", resolved, len(raw))
	return m, nil
}
