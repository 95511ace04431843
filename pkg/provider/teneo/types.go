package teneo

// Form field names understood by the engine.
const (
	fieldUserInput     = "userinput"
	fieldViewType      = "viewtype"
	fieldChannel       = "channel"
	fieldDigits        = "digits"
	fieldConfidence    = "twilioConfidence"
	fieldCallerCountry = "twilioCallerCountry"
	fieldCallID        = "twilioSessionId"
	fieldPhoneNumber   = "phoneNumber"

	viewTypeTIE = "tieapi"

	sessionCookie = "JSESSIONID"
)

// tieResponse is the engine reply envelope.
type tieResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message,omitempty"`
	SessionID string    `json:"sessionId"`
	Input     tieInput  `json:"input"`
	Output    tieOutput `json:"output"`
}

type tieInput struct {
	Text       string            `json:"text"`
	Parameters map[string]string `json:"parameters"`
}

type tieOutput struct {
	Text       string            `json:"text"`
	Emotion    string            `json:"emotion,omitempty"`
	Link       string            `json:"link,omitempty"`
	Parameters map[string]string `json:"parameters"`
}
