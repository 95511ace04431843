package voice

import (
	"fmt"

	"github.com/twilio/twilio-go/twiml"
)

// Render serializes a directive to a TwiML document.
func Render(d Directive) (string, error) {
	say := &twiml.VoiceSay{Message: d.Text, Voice: d.Voice}

	var verbs []twiml.Element
	switch d.Kind {
	case KindHangup:
		verbs = append(verbs, say)
		if d.AudioURL != "" {
			verbs = append(verbs, &twiml.VoicePlay{Url: d.AudioURL, Loop: "1"})
		}
		verbs = append(verbs, &twiml.VoiceHangup{})
	case KindTransfer:
		verbs = append(verbs, say, &twiml.VoiceRedirect{Method: "POST", Url: d.RedirectURL})
	case KindGatherDTMF, KindGatherSpeech:
		if d.Gather == nil {
			return "", fmt.Errorf("voice: %s directive without capture window", d.Kind)
		}
		verbs = append(verbs, gatherVerb(d.Gather, say))
	default:
		return "", fmt.Errorf("voice: unknown directive kind %q", d.Kind)
	}

	return twiml.Voice(verbs)
}

func gatherVerb(g *Gather, say *twiml.VoiceSay) *twiml.VoiceGather {
	v := &twiml.VoiceGather{
		Input:         g.Input,
		Language:      g.Language,
		Hints:         g.Hints,
		SpeechTimeout: g.SpeechTimeout,
		SpeechModel:   g.SpeechModel,
		InnerElements: []twiml.Element{say},
	}
	if g.ActionOnEmptyResult {
		v.ActionOnEmptyResult = "true"
	}
	return v
}
