package protocol

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"pong3d/game"
)

// Catalog lists every payload exchanged over the socket, so one schema documents them all.
type Catalog struct {
	StartGame   StartGameData   `json:"start_game"`
	Input       InputData       `json:"input"`
	State       game.Snapshot   `json:"state"`
	GameStarted GameStartedData `json:"game_started"`
	Score       ScoreData       `json:"score"`
	GameOver    GameOverData    `json:"game_over"`
	Sound       SoundData       `json:"sound"`
}

// Schema returns the JSON schema of the message payloads for browser clients.
func Schema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&Catalog{}), "", "  ")
}
