package game

// Config holds battle setup options.
type Config struct {
	// Mode selects solo, host or join.
	Mode Mode

	// PlayerName is the name announced to the opponent.
	PlayerName string

	// RelayURL is the base URL of the relay server (host and join modes).
	RelayURL string

	// MatchCode identifies the relay match to join. Empty in host mode;
	// the relay assigns one.
	MatchCode string
}
