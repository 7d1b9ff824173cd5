package domain

import "fmt"

// GameCategory enumerates the catalog's supported game genres.
type GameCategory int

const (
	CategoryAction GameCategory = iota
	CategoryAdventure
	CategoryRPG
	CategoryStrategy
	CategorySports
	CategoryRacing
	CategorySimulation
	CategoryPuzzle
	CategoryHorror
	CategoryFPS
	CategoryMMORPG
	CategoryIndie
	CategoryFighting
	CategoryPlatformer
	CategorySandbox
)

var categoryNames = map[GameCategory]string{
	CategoryAction:     "Action",
	CategoryAdventure:  "Adventure",
	CategoryRPG:        "RPG",
	CategoryStrategy:   "Strategy",
	CategorySports:     "Sports",
	CategoryRacing:     "Racing",
	CategorySimulation: "Simulation",
	CategoryPuzzle:     "Puzzle",
	CategoryHorror:     "Horror",
	CategoryFPS:        "FPS",
	CategoryMMORPG:     "MMORPG",
	CategoryIndie:      "Indie",
	CategoryFighting:   "Fighting",
	CategoryPlatformer: "Platformer",
	CategorySandbox:    "Sandbox",
}

func (c GameCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("GameCategory(%d)", int(c))
}

// IsValid reports whether the value maps to a known category.
func (c GameCategory) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory resolves a category by its name.
func ParseCategory(name string) (GameCategory, error) {
	for category, n := range categoryNames {
		if n == name {
			return category, nil
		}
	}
	return 0, NewValidationError("category", fmt.Sprintf("unknown category %q", name))
}

// Categories returns all known categories in enum order.
func Categories() []GameCategory {
	out := make([]GameCategory, 0, len(categoryNames))
	for c := CategoryAction; c <= CategorySandbox; c++ {
		out = append(out, c)
	}
	return out
}
