package voice

import (
	"net/url"
	"testing"

	"github.com/dialbridge/dialbridge/pkg/api"
)

var testLangs = Languages{STT: "en-US", TTS: "Polly.Joanna"}

var testCfg = Config{
	WorkflowWebhookURL: "https://webhooks.example.com/flow",
	HangupAudioURL:     "https://cdn.example.com/wait.mp3",
	FallbackText:       "Sorry, please say that again.",
}

func output(text string, params map[string]string) api.EngineOutput {
	return api.EngineOutput{Text: text, Parameters: params}
}

func TestSelectPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   Kind
	}{
		{"no parameters", nil, KindGatherSpeech},
		{"end call", map[string]string{api.ParamEndCall: "true"}, KindHangup},
		{"end call beats everything", map[string]string{
			api.ParamEndCall:   "true",
			api.ParamQueue:     "sales",
			api.ParamGetDigits: "true",
		}, KindHangup},
		{"end call false is ignored", map[string]string{api.ParamEndCall: "false", api.ParamQueue: "sales"}, KindTransfer},
		{"queue", map[string]string{api.ParamQueue: "sales"}, KindTransfer},
		{"queue beats digits", map[string]string{api.ParamQueue: "sales", api.ParamGetDigits: "true"}, KindTransfer},
		{"digits", map[string]string{api.ParamGetDigits: "true"}, KindGatherDTMF},
		{"digits must be exactly true", map[string]string{api.ParamGetDigits: "yes"}, KindGatherSpeech},
		{"empty queue is absent", map[string]string{api.ParamQueue: ""}, KindGatherSpeech},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Select(output("Hi", tt.params), testLangs, testCfg)
			if d.Kind != tt.want {
				t.Errorf("Select().Kind = %q, want %q", d.Kind, tt.want)
			}
			if d.Text != "Hi" || d.Voice != testLangs.TTS {
				t.Errorf("Select() text/voice = %q/%q", d.Text, d.Voice)
			}
		})
	}
}

func TestRulesEndWithCatchAll(t *testing.T) {
	last := Rules[len(Rules)-1]
	if last.Kind != KindGatherSpeech || !last.Match(api.EngineOutput{}) {
		t.Errorf("last rule must be the speech capture catch-all, got %q", last.Kind)
	}
}

func TestSelectHangup(t *testing.T) {
	d := Select(output("Goodbye", map[string]string{api.ParamEndCall: "true"}), testLangs, testCfg)
	if d.AudioURL != testCfg.HangupAudioURL {
		t.Errorf("AudioURL = %q, want %q", d.AudioURL, testCfg.HangupAudioURL)
	}
	if d.Gather != nil {
		t.Error("hangup directive must not open a capture window")
	}
}

func TestSelectTransfer(t *testing.T) {
	d := Select(output("Connecting you", map[string]string{api.ParamQueue: "Billing Team"}), testLangs, testCfg)

	u, err := url.Parse(d.RedirectURL)
	if err != nil {
		t.Fatalf("RedirectURL %q does not parse: %v", d.RedirectURL, err)
	}
	if u.Host != "webhooks.example.com" || u.Path != "/flow" {
		t.Errorf("redirect target = %s%s", u.Host, u.Path)
	}
	q := u.Query()
	if q.Get("FlowEvent") != "return" {
		t.Errorf("FlowEvent = %q, want return", q.Get("FlowEvent"))
	}
	if q.Get("QueueName") != "Billing Team" {
		t.Errorf("QueueName = %q, want %q", q.Get("QueueName"), "Billing Team")
	}
}

func TestSelectGatherDTMF(t *testing.T) {
	d := Select(output("Enter your PIN", map[string]string{api.ParamGetDigits: "true"}), testLangs, testCfg)
	if d.Gather == nil {
		t.Fatal("expected capture window")
	}
	if d.Gather.Input != InputDTMF {
		t.Errorf("Input = %q, want dtmf", d.Gather.Input)
	}
	if !d.Gather.ActionOnEmptyResult {
		t.Error("keypad capture must fire on empty result")
	}
}

func TestSelectGatherSpeechDefaults(t *testing.T) {
	d := Select(output("How can I help?", nil), testLangs, testCfg)
	want := Gather{
		Input:               InputSpeech,
		Language:            "en-US",
		Hints:               "",
		SpeechTimeout:       DefaultSpeechTimeout,
		SpeechModel:         DefaultSpeechModel,
		ActionOnEmptyResult: true,
	}
	if d.Gather == nil || *d.Gather != want {
		t.Errorf("Gather = %+v, want %+v", d.Gather, want)
	}
}

func TestSelectGatherSpeechOverrides(t *testing.T) {
	d := Select(output("Which account?", map[string]string{
		api.ParamCustomVocabulary: "savings,checking",
		api.ParamCustomTimeout:    "3",
		api.ParamSpeechModel:      "phone_call",
		api.ParamInputType:        "dtmf speech",
	}), testLangs, testCfg)

	want := Gather{
		Input:               "dtmf speech",
		Language:            "en-US",
		Hints:               "savings,checking",
		SpeechTimeout:       "3",
		SpeechModel:         "phone_call",
		ActionOnEmptyResult: true,
	}
	if *d.Gather != want {
		t.Errorf("Gather = %+v, want %+v", *d.Gather, want)
	}
}

func TestFallback(t *testing.T) {
	d := Fallback(testLangs, testCfg)
	if d.Kind != KindGatherSpeech {
		t.Errorf("Kind = %q, want gather_speech", d.Kind)
	}
	if d.Text != testCfg.FallbackText {
		t.Errorf("Text = %q, want %q", d.Text, testCfg.FallbackText)
	}
}

func TestQueueRedirectURL(t *testing.T) {
	tests := []struct {
		name, webhook, queue, want string
	}{
		{"plain", "https://x.example/flow", "sales", "https://x.example/flow?FlowEvent=return&QueueName=sales"},
		{"escaped", "https://x.example/flow", "a b&c", "https://x.example/flow?FlowEvent=return&QueueName=a+b%26c"},
		{"existing query", "https://x.example/flow?FlowSid=FW1", "sales", "https://x.example/flow?FlowEvent=return&FlowSid=FW1&QueueName=sales"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QueueRedirectURL(tt.webhook, tt.queue); got != tt.want {
				t.Errorf("QueueRedirectURL = %q, want %q", got, tt.want)
			}
		})
	}
}
