package api

// ChannelTwilio is the channel tag sent to the dialogue engine with every
// request originating from the voice platform.
const ChannelTwilio = "twilio"

// Call status values reported by the voice platform.
const (
	CallStatusQueued     = "queued"
	CallStatusRinging    = "ringing"
	CallStatusInProgress = "in-progress"
	CallStatusCompleted  = "completed"
	CallStatusBusy       = "busy"
	CallStatusFailed     = "failed"
	CallStatusNoAnswer   = "no-answer"
	CallStatusCanceled   = "canceled"
)

// Engine output parameter names recognized by the response composer.
// Absence of a key means "use the default".
const (
	ParamCustomVocabulary = "twilio_customVocabulary"
	ParamCustomTimeout    = "twilio_customTimeout"
	ParamSpeechModel      = "twilio_speechModel"
	ParamInputType        = "twilio_inputType"
	ParamSTTLanguage      = "twilio_sttLanguage"
	ParamTTSLanguage      = "twilio_ttsLanguage"
	ParamEndCall          = "twilio_endCall"
	ParamQueue            = "twilio_Queue"
	ParamGetDigits        = "twilio_getDigits"
)

// ParamTrue is the string value engine flags carry when set.
const ParamTrue = "true"

// CallEvent is the normalized form of one call-progress notification.
// Every field is defined; missing inputs are empty strings.
type CallEvent struct {
	CallID           string `json:"call_id"`
	CallerNumber     string `json:"caller_number"`
	CallerCountry    string `json:"caller_country"`
	Digits           string `json:"digits"`
	SpeechText       string `json:"speech_text"`
	SpeechConfidence string `json:"speech_confidence"`
	CallStatus       string `json:"call_status"`
}

// EngineRequest is the payload sent to the dialogue engine for one turn.
type EngineRequest struct {
	Text          string `json:"text"`
	Channel       string `json:"channel"`
	Digits        string `json:"digits"`
	Confidence    string `json:"confidence"`
	CallerCountry string `json:"caller_country"`
	CallID        string `json:"call_id"`
	CallerNumber  string `json:"caller_number"`
}

// NewEngineRequest builds the engine payload for a call event.
func NewEngineRequest(ev *CallEvent, channel string) *EngineRequest {
	if channel == "" {
		channel = ChannelTwilio
	}
	return &EngineRequest{
		Text:          ev.SpeechText,
		Channel:       channel,
		Digits:        ev.Digits,
		Confidence:    ev.SpeechConfidence,
		CallerCountry: ev.CallerCountry,
		CallID:        ev.CallID,
		CallerNumber:  ev.CallerNumber,
	}
}

// EngineOutput is the answer part of an engine reply.
type EngineOutput struct {
	Text       string            `json:"text"`
	Parameters map[string]string `json:"parameters"`
}

// Param returns the named output parameter, or def when it is absent or empty.
func (o EngineOutput) Param(name, def string) string {
	if v := o.Parameters[name]; v != "" {
		return v
	}
	return def
}

// EngineResponse is the dialogue engine's reply to one input.
type EngineResponse struct {
	SessionID string       `json:"session_id"`
	Output    EngineOutput `json:"output"`
}

// Turn records one request/reply exchange for a call.
type Turn struct {
	ID         string            `json:"id"`
	CallID     string            `json:"call_id"`
	SessionID  string            `json:"session_id"`
	Input      CallEvent         `json:"input"`
	OutputText string            `json:"output_text"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Directive  string            `json:"directive"`
	Fallback   bool              `json:"fallback"`
	CreatedAt  int64             `json:"created_at"`
}

// TurnList holds a paginated list of turns.
type TurnList struct {
	Object  string  `json:"object"`
	Data    []*Turn `json:"data"`
	HasMore bool    `json:"has_more"`
	FirstID string  `json:"first_id"`
	LastID  string  `json:"last_id"`
}
