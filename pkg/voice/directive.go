package voice

// Kind identifies which voice-control directive a response carries.
type Kind string

const (
	// KindHangup speaks the text, plays the audio cue and ends the call.
	KindHangup Kind = "hangup"
	// KindTransfer speaks the text and redirects to the workflow webhook.
	KindTransfer Kind = "transfer"
	// KindGatherDTMF opens a keypad-only capture window around the text.
	KindGatherDTMF Kind = "gather_dtmf"
	// KindGatherSpeech opens a speech capture window around the text.
	KindGatherSpeech Kind = "gather_speech"
)

// Input modes accepted by a capture window.
const (
	InputDTMF   = "dtmf"
	InputSpeech = "speech"
)

// Defaults for the speech capture window.
const (
	DefaultSpeechTimeout = "auto"
	DefaultSpeechModel   = "default"
)

// Directive is the single voice-control instruction emitted for a request.
// Only the fields relevant to Kind are set.
type Directive struct {
	Kind  Kind
	Text  string
	Voice string

	// AudioURL is played before hanging up (KindHangup).
	AudioURL string

	// RedirectURL receives a POST redirect (KindTransfer).
	RedirectURL string

	// Gather configures the capture window (KindGatherDTMF, KindGatherSpeech).
	Gather *Gather
}

// Gather describes a capture window.
type Gather struct {
	Input               string
	Language            string
	Hints               string
	SpeechTimeout       string
	SpeechModel         string
	ActionOnEmptyResult bool
}
