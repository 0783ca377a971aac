package protocol

import (
	"encoding/json"
	"fmt"

	"pong3d/game"
)

const (
	StartGame   = "start_game"
	Pause       = "pause"
	Quit        = "quit"
	Input       = "input"
	State       = "state"
	GameStarted = "game_started"
	Score       = "score"
	GameOver    = "game_over"
	Sound       = "sound"
	Error       = "error"
)

const (
	errInvalidStart = "Invalid start_game data"
	errInvalidInput = "Invalid input data"
	errNotRunning   = "Game is not running"
	ErrTooMany      = "Too many messages"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type StartGameData struct {
	SinglePlayer bool `json:"single_player"`
}

type InputData struct {
	Side      string `json:"side"`
	Direction string `json:"direction"`
	Pressed   bool   `json:"pressed"`
}

type GameStartedData struct {
	SinglePlayer bool   `json:"single_player"`
	Message      string `json:"message"`
}

type ScoreData struct {
	Player  game.Player `json:"player"`
	Score   game.Score  `json:"score"`
	Message string      `json:"message"`
}

type GameOverData struct {
	Winner  game.Player `json:"winner"`
	Score   game.Score  `json:"score"`
	Message string      `json:"message"`
}

type SoundData struct {
	Name string `json:"name"`
}

// incoming is the shape of client messages; data is decoded per type.
type incoming struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type ClientActions interface {
	HandleStartGame(singlePlayer bool)
	HandlePause()
	HandleQuit()
	HandleInput(side game.Side, direction game.Direction, pressed bool)
	InGame() bool
	Send(msg Message)
}

// ParseMessage decodes one client message and dispatches it, answering protocol
// violations with an error message.
func ParseMessage(client ClientActions, rawMessage []byte) {
	var message incoming
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		log.Debugf("Error parsing message: %v", err)
		return
	}

	switch message.Type {
	case StartGame:
		var data StartGameData
		if err := decodeData(message.Data, &data); err != nil {
			client.Send(ErrorMessage(errInvalidStart))
			return
		}
		client.HandleStartGame(data.SinglePlayer)
	case Pause:
		if !client.InGame() {
			client.Send(ErrorMessage(errNotRunning))
			return
		}
		client.HandlePause()
	case Quit:
		// Quit also leaves the game-over screen for the main menu.
		client.HandleQuit()
	case Input:
		if !client.InGame() {
			client.Send(ErrorMessage(errNotRunning))
			return
		}
		side, direction, pressed, err := parseInput(message.Data)
		if err != nil {
			client.Send(ErrorMessage(errInvalidInput))
			return
		}
		client.HandleInput(side, direction, pressed)
	default:
		log.Debugf("Unknown message type: %q", message.Type)
	}
}

func parseInput(raw json.RawMessage) (game.Side, game.Direction, bool, error) {
	var data InputData
	if err := decodeData(raw, &data); err != nil {
		return 0, 0, false, err
	}
	side, err := game.ParseSide(data.Side)
	if err != nil {
		return 0, 0, false, err
	}
	direction, err := game.ParseDirection(data.Direction)
	if err != nil {
		return 0, 0, false, err
	}
	return side, direction, data.Pressed, nil
}

func decodeData(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("missing data")
	}
	return json.Unmarshal(raw, v)
}

func ErrorMessage(text string) Message {
	return Message{Type: Error, Data: text}
}

func StateMessage(snap game.Snapshot) Message {
	return Message{Type: State, Data: snap}
}

func SoundMessage(name string) Message {
	return Message{Type: Sound, Data: SoundData{Name: name}}
}

// EventText is the toast-style notification shown for a match event.
// Pause, resume and quit have no notification.
func EventText(ev game.Event) (string, bool) {
	switch ev.Kind {
	case game.EventStarted:
		if ev.SinglePlayer {
			return "You're playing against the AI", true
		}
		return "Two player mode activated", true
	case game.EventScored:
		return ev.Player.Label() + " scored a point!", true
	case game.EventGameOver:
		return ev.Player.Label() + " wins!", true
	}
	return "", false
}

// EventMessage renders a match event as the notification message the browser shows.
func EventMessage(ev game.Event) (Message, bool) {
	text, ok := EventText(ev)
	if !ok {
		return Message{}, false
	}
	switch ev.Kind {
	case game.EventStarted:
		return Message{Type: GameStarted, Data: GameStartedData{SinglePlayer: ev.SinglePlayer, Message: text}}, true
	case game.EventScored:
		return Message{Type: Score, Data: ScoreData{Player: ev.Player, Score: ev.Score, Message: text}}, true
	default:
		return Message{Type: GameOver, Data: GameOverData{Winner: ev.Player, Score: ev.Score, Message: text}}, true
	}
}
