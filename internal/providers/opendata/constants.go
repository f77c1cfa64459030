package opendata

import "time"

// The board is single purpose: the query is compiled in.
const (
	defaultBaseURL     = "http://transport.opendata.ch/v1"
	connectionsPath    = "/connections"
	defaultHTTPTimeout = 5 * time.Second
	maxBodyBytes       = 1 << 20

	// FromStation is Sihlau.
	FromStation = "8503099"
	// ToStation is Zürich HB.
	ToStation      = "8503000"
	TransportMode  = "train"
	ResultLimit    = 5
	sourceName     = "opendata"
	departureField = "connections/from/departure"
	delayField     = "connections/from/delay"
)
