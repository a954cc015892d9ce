package compress

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/tinyshot/models"
)

// Strategy restricts which element types a run keeps. It is applied to the
// finished snapshot in the CLI layer, so the engine's bounds and ordering
// are untouched.
type Strategy struct {
	Types map[models.ElementType]struct{}
}

// ParseStrategy parses a filter expression like "type:btn|link".
func ParseStrategy(strategyStr string) (*Strategy, error) {
	if strategyStr == "" {
		return nil, nil // No-op strategy
	}

	strategy := &Strategy{Types: make(map[models.ElementType]struct{})}

	parts := strings.Split(strategyStr, ",")
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid strategy part: %s", part)
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])

		switch key {
		case "type":
			for _, t := range strings.Split(value, "|") {
				switch typ := models.ElementType(strings.TrimSpace(t)); typ {
				case models.TypeButton, models.TypeInput, models.TypeLink, models.TypeSelect:
					strategy.Types[typ] = struct{}{}
				default:
					return nil, fmt.Errorf("unknown element type: %s", t)
				}
			}
		default:
			return nil, fmt.Errorf("unknown strategy key: %s", key)
		}
	}

	return strategy, nil
}

// FilterSnapshot returns a copy keeping only elements of the allowed types.
func FilterSnapshot(snap models.Snapshot, strategy *Strategy) models.Snapshot {
	if strategy == nil || len(strategy.Types) == 0 {
		return snap
	}

	filtered := models.Snapshot{
		Title: snap.Title,
		Text:  snap.Text,
	}
	for _, e := range snap.Elements {
		if _, ok := strategy.Types[e.Type]; ok {
			filtered.Elements = append(filtered.Elements, e)
		}
	}
	return filtered
}
