package swgohgg

import (
	"context"
	"embed"
	"strings"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

const notFoundBody = `{"detail":"Not found."}`

type fixtureAPI struct{}

// NewFixtureAPI serves canned responses for every endpoint. Any ally code or guild id
// gets the same player, guild or mods.
func NewFixtureAPI() API {
	return fixtureAPI{}
}

func fixtureFor(path string) string {
	switch path {
	case charactersPath:
		return "characters.json"
	case shipsPath:
		return "ships.json"
	case abilitiesPath:
		return "abilities.json"
	case gearPath:
		return "gear.json"
	}

	switch {
	case strings.HasPrefix(path, "/api/players/") && strings.HasSuffix(path, "/mods/"):
		return "mods.json"
	case strings.HasPrefix(path, "/api/player/"):
		return "player.json"
	case strings.HasPrefix(path, "/api/guild/"):
		return "guild.json"
	}
	return ""
}

func (fixtureAPI) Get(ctx context.Context, path string) ([]byte, int, error) {
	name := fixtureFor(path)
	if name == "" {
		return []byte(notFoundBody), 404, nil
	}

	data, err := fixtureFS.ReadFile("fixtures/" + name)
	if err != nil {
		return []byte{}, -1, err
	}
	return data, 200, nil
}
