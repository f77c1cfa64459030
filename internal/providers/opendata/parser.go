package opendata

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/preston-bernstein/departure-board/internal/domain/departures"
)

// Parse validates a connections document and returns its departures in upstream order.
// Validation short-circuits on the first problem and never returns a partial list.
func Parse(body []byte) ([]departures.Record, error) {
	doc := bytes.TrimSpace(body)
	if len(doc) == 0 {
		return nil, parseErr(KindMissingConnections, "empty document")
	}
	if !json.Valid(doc) {
		var probe any
		err := json.Unmarshal(doc, &probe)
		return nil, &ParseError{Kind: KindSyntax, Detail: "invalid JSON", Err: err}
	}
	if jsonKind(doc) == "null" {
		return nil, parseErr(KindMissingConnections, "null document")
	}
	if jsonKind(doc) != "object" {
		return nil, parseErr(KindWrongType, "document is %s, want object", jsonKind(doc))
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, &ParseError{Kind: KindSyntax, Detail: "decode document", Err: err}
	}

	raw, ok := top["connections"]
	if !ok || jsonKind(raw) == "null" {
		return nil, parseErr(KindMissingConnections, "no connections field")
	}
	if kind := jsonKind(raw); kind != "array" {
		return nil, parseErr(KindWrongType, "connections is %s, want array", kind)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ParseError{Kind: KindSyntax, Detail: "decode connections", Err: err}
	}

	records := make([]departures.Record, 0, len(items))
	for i, item := range items {
		rec, err := parseConnection(i, item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseConnection(index int, item json.RawMessage) (departures.Record, error) {
	conn, err := object(item)
	if err != nil {
		return departures.Record{}, parseErr(KindMalformedRecord, "connection %d is %s, want object", index, jsonKind(item))
	}

	from, err := object(conn["from"])
	if err != nil {
		return departures.Record{}, parseErr(KindMalformedRecord, "connection %d: from is %s, want object", index, jsonKind(conn["from"]))
	}

	depRaw := from["departure"]
	if jsonKind(depRaw) != "string" {
		return departures.Record{}, parseErr(KindMalformedRecord, "connection %d: departure is %s, want string", index, jsonKind(depRaw))
	}
	var departure string
	if err := json.Unmarshal(depRaw, &departure); err != nil {
		return departures.Record{}, parseErr(KindMalformedRecord, "connection %d: departure: %v", index, err)
	}

	delay, err := delayMinutes(from["delay"])
	if err != nil {
		return departures.Record{}, parseErr(KindMalformedRecord, "connection %d: %v", index, err)
	}

	return departures.Record{
		ScheduledDeparture: departure,
		DelayMinutes:       delay,
	}, nil
}

// delayMinutes accepts a non-negative integer. A JSON null means no realtime data and reads as 0.
func delayMinutes(raw json.RawMessage) (int, error) {
	switch jsonKind(raw) {
	case "null":
		return 0, nil
	case "number":
	default:
		return 0, &fieldError{field: "delay", got: jsonKind(raw), want: "integer"}
	}
	n, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &fieldError{field: "delay", got: "out of range number", want: "32-bit integer"}
	}
	if err != nil {
		return 0, &fieldError{field: "delay", got: "non-integer number", want: "integer"}
	}
	if n < 0 {
		return 0, &fieldError{field: "delay", got: "negative number", want: "non-negative integer"}
	}
	return int(n), nil
}

func object(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if jsonKind(raw) != "object" {
		return nil, errNotObject
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// jsonKind names the JSON type of an already-valid value; an absent value is "missing".
func jsonKind(raw json.RawMessage) string {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return "missing"
	}
	switch v[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
