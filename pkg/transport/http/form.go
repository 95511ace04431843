package http

import (
	"net/url"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/debug"
)

// Form field names posted by the voice platform.
const (
	fieldCallSid       = "CallSid"
	fieldCaller        = "Caller"
	fieldCallerCountry = "CallerCountry"
	fieldCallStatus    = "CallStatus"
	fieldDigits        = "Digits"
	fieldSpeechResult  = "SpeechResult"
	fieldConfidence    = "Confidence"
)

// digitsUndefined is the literal some callers send for an absent Digits field.
const digitsUndefined = "undefined"

// ParseCallEvent decodes a form-encoded call-progress notification. It never
// fails: malformed pairs are skipped and missing fields become empty strings.
// Speech and confidence are taken only while the call is in progress.
func ParseCallEvent(body []byte) *api.CallEvent {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		// ParseQuery keeps every well-formed pair it saw.
		debug.Log("transport", "malformed form body", "error", err)
	}

	ev := &api.CallEvent{
		CallID:        values.Get(fieldCallSid),
		CallerNumber:  values.Get(fieldCaller),
		CallerCountry: values.Get(fieldCallerCountry),
		CallStatus:    values.Get(fieldCallStatus),
		Digits:        values.Get(fieldDigits),
	}
	if ev.Digits == digitsUndefined {
		ev.Digits = ""
	}

	if ev.CallStatus == api.CallStatusInProgress {
		if speech := values.Get(fieldSpeechResult); speech != "" {
			ev.SpeechText = speech
			ev.SpeechConfidence = values.Get(fieldConfidence)
		}
	}

	debug.Log("transport", "call event parsed",
		"call_id", ev.CallID, "status", ev.CallStatus,
		"digits", ev.Digits, "speech", debug.Truncate(ev.SpeechText, 80))
	return ev
}
