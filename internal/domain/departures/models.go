package departures

import "errors"

// Record is one scheduled departure as reported upstream.
type Record struct {
	// ScheduledDeparture keeps the upstream timestamp verbatim (e.g. 2026-01-02T20:53:00+0100).
	ScheduledDeparture string `json:"scheduledDeparture"`
	// DelayMinutes is 0 when the train is on time.
	DelayMinutes int `json:"delayMinutes"`
}

// Delayed reports whether the record carries a positive delay.
func (r Record) Delayed() bool {
	return r.DelayMinutes > 0
}

// Kind tags which variant of an Outcome is populated.
type Kind string

const (
	KindUnchanged Kind = "unchanged"
	KindFailed    Kind = "failed"
	KindSuccess   Kind = "success"
)

// Outcome is the result of a single fetch. Exactly one variant is populated:
// Unchanged carries nothing, Failed carries Reason/Err, Success carries Departures.
type Outcome struct {
	Kind       Kind
	Reason     string
	Err        error
	Departures []Record
}

// Unchanged builds the outcome for a response whose fingerprint matched the last accepted one.
func Unchanged() Outcome {
	return Outcome{Kind: KindUnchanged}
}

// Failed builds a failure outcome; the reason is the error's text.
func Failed(err error) Outcome {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Outcome{Kind: KindFailed, Reason: err.Error(), Err: err}
}

// Success builds a success outcome. A nil slice is normalized to empty.
func Success(records []Record) Outcome {
	if records == nil {
		records = []Record{}
	}
	return Outcome{Kind: KindSuccess, Departures: records}
}

func (o Outcome) IsUnchanged() bool { return o.Kind == KindUnchanged }
func (o Outcome) IsFailed() bool    { return o.Kind == KindFailed }
func (o Outcome) IsSuccess() bool   { return o.Kind == KindSuccess }
