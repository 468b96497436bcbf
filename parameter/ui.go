package parameter

import "time"

// Spectator stream
const (
	// SpectatorSendBuffer is the per-client snapshot backlog before the client is dropped
	SpectatorSendBuffer = 8

	// SpectatorWriteTimeout bounds a single websocket write
	SpectatorWriteTimeout = 2 * time.Second

	// DefaultSpectateAddr is used when -spectate is given without an address
	DefaultSpectateAddr = "127.0.0.1:8088"
)

// Recording
const (
	// RecorderBuffer is the number of frames queued ahead of the file writer
	RecorderBuffer = 1024
)

// Scores
const (
	DefaultScoresPath = "data/scores.db"
	TopScoresShown    = 5
)
