package voice

import (
	"net/url"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// Config holds the static inputs the decision rules need.
type Config struct {
	// WorkflowWebhookURL receives the redirect for queue transfers.
	WorkflowWebhookURL string

	// HangupAudioURL is played between the goodbye text and the hangup.
	// Empty skips the audio cue.
	HangupAudioURL string

	// FallbackText is spoken when the dialogue engine cannot be reached.
	FallbackText string
}

// Rule is one entry of the decision list.
type Rule struct {
	Kind  Kind
	Match func(out api.EngineOutput) bool
	Build func(out api.EngineOutput, langs Languages, cfg Config) Directive
}

// Rules is the ordered decision list. The first matching rule wins; the
// last rule always matches.
var Rules = []Rule{
	{Kind: KindHangup, Match: wantsEndCall, Build: buildHangup},
	{Kind: KindTransfer, Match: wantsQueue, Build: buildTransfer},
	{Kind: KindGatherDTMF, Match: wantsDigits, Build: buildGatherDTMF},
	{Kind: KindGatherSpeech, Match: always, Build: buildGatherSpeech},
}

// Select returns the directive produced by the first matching rule.
func Select(out api.EngineOutput, langs Languages, cfg Config) Directive {
	for _, r := range Rules {
		if r.Match(out) {
			return r.Build(out, langs, cfg)
		}
	}
	// Unreachable while the last rule is a catch-all.
	return buildGatherSpeech(out, langs, cfg)
}

func wantsEndCall(out api.EngineOutput) bool {
	return out.Parameters[api.ParamEndCall] == api.ParamTrue
}

func wantsQueue(out api.EngineOutput) bool {
	return out.Parameters[api.ParamQueue] != ""
}

func wantsDigits(out api.EngineOutput) bool {
	return out.Parameters[api.ParamGetDigits] == api.ParamTrue
}

func always(api.EngineOutput) bool { return true }

func buildHangup(out api.EngineOutput, langs Languages, cfg Config) Directive {
	return Directive{
		Kind:     KindHangup,
		Text:     out.Text,
		Voice:    langs.TTS,
		AudioURL: cfg.HangupAudioURL,
	}
}

func buildTransfer(out api.EngineOutput, langs Languages, cfg Config) Directive {
	return Directive{
		Kind:        KindTransfer,
		Text:        out.Text,
		Voice:       langs.TTS,
		RedirectURL: QueueRedirectURL(cfg.WorkflowWebhookURL, out.Parameters[api.ParamQueue]),
	}
}

func buildGatherDTMF(out api.EngineOutput, langs Languages, _ Config) Directive {
	return Directive{
		Kind:  KindGatherDTMF,
		Text:  out.Text,
		Voice: langs.TTS,
		Gather: &Gather{
			Input:               InputDTMF,
			ActionOnEmptyResult: true,
		},
	}
}

func buildGatherSpeech(out api.EngineOutput, langs Languages, _ Config) Directive {
	return Directive{
		Kind:  KindGatherSpeech,
		Text:  out.Text,
		Voice: langs.TTS,
		Gather: &Gather{
			Input:               out.Param(api.ParamInputType, InputSpeech),
			Language:            langs.STT,
			Hints:               out.Param(api.ParamCustomVocabulary, ""),
			SpeechTimeout:       out.Param(api.ParamCustomTimeout, DefaultSpeechTimeout),
			SpeechModel:         out.Param(api.ParamSpeechModel, DefaultSpeechModel),
			ActionOnEmptyResult: true,
		},
	}
}

// Fallback builds the directive used when the engine call fails: the
// fallback text inside a default speech capture window, so the caller can
// simply try again.
func Fallback(langs Languages, cfg Config) Directive {
	return buildGatherSpeech(api.EngineOutput{Text: cfg.FallbackText}, langs, cfg)
}

// QueueRedirectURL appends FlowEvent=return and the queue name to the
// workflow webhook URL, keeping any query it already carries.
func QueueRedirectURL(webhook, queue string) string {
	u, err := url.Parse(webhook)
	if err != nil {
		return webhook + "?FlowEvent=return&QueueName=" + url.QueryEscape(queue)
	}
	q := u.Query()
	q.Set("FlowEvent", "return")
	q.Set("QueueName", queue)
	u.RawQuery = q.Encode()
	return u.String()
}
