package voice

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/dialbridge/dialbridge/pkg/api"
)

// element is a generic view of a TwiML element for assertions.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

func (e element) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (e element) names() []string {
	var out []string
	for _, c := range e.Children {
		out = append(out, c.XMLName.Local)
	}
	return out
}

func parseTwiML(t *testing.T, markup string) element {
	t.Helper()
	var root element
	if err := xml.Unmarshal([]byte(markup), &root); err != nil {
		t.Fatalf("invalid TwiML %q: %v", markup, err)
	}
	if root.XMLName.Local != "Response" {
		t.Fatalf("root element = %q, want Response", root.XMLName.Local)
	}
	return root
}

func equalNames(got, want []string) bool {
	return strings.Join(got, ",") == strings.Join(want, ",")
}

func TestRenderHangup(t *testing.T) {
	d := Select(output("Goodbye", map[string]string{api.ParamEndCall: "true"}), testLangs, testCfg)
	markup, err := Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	root := parseTwiML(t, markup)
	if want := []string{"Say", "Play", "Hangup"}; !equalNames(root.names(), want) {
		t.Fatalf("verbs = %v, want %v", root.names(), want)
	}
	say, play := root.Children[0], root.Children[1]
	if strings.TrimSpace(say.Text) != "Goodbye" || say.attr("voice") != "Polly.Joanna" {
		t.Errorf("Say = %q voice=%q", say.Text, say.attr("voice"))
	}
	if strings.TrimSpace(play.Text) != testCfg.HangupAudioURL || play.attr("loop") != "1" {
		t.Errorf("Play = %q loop=%q", play.Text, play.attr("loop"))
	}
}

func TestRenderHangupWithoutAudio(t *testing.T) {
	markup, err := Render(Directive{Kind: KindHangup, Text: "Bye", Voice: "alice"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	root := parseTwiML(t, markup)
	if want := []string{"Say", "Hangup"}; !equalNames(root.names(), want) {
		t.Errorf("verbs = %v, want %v", root.names(), want)
	}
}

func TestRenderTransfer(t *testing.T) {
	d := Select(output("One moment", map[string]string{api.ParamQueue: "sales"}), testLangs, testCfg)
	markup, err := Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	root := parseTwiML(t, markup)
	if want := []string{"Say", "Redirect"}; !equalNames(root.names(), want) {
		t.Fatalf("verbs = %v, want %v", root.names(), want)
	}
	redirect := root.Children[1]
	if redirect.attr("method") != "POST" {
		t.Errorf("Redirect method = %q, want POST", redirect.attr("method"))
	}
	target := strings.TrimSpace(redirect.Text)
	if !strings.Contains(target, "FlowEvent=return") || !strings.Contains(target, "QueueName=sales") {
		t.Errorf("Redirect target = %q", target)
	}
}

func TestRenderGatherDTMF(t *testing.T) {
	d := Select(output("Enter your PIN", map[string]string{api.ParamGetDigits: "true"}), testLangs, testCfg)
	markup, err := Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	root := parseTwiML(t, markup)
	if want := []string{"Gather"}; !equalNames(root.names(), want) {
		t.Fatalf("verbs = %v, want %v", root.names(), want)
	}
	g := root.Children[0]
	if g.attr("input") != "dtmf" || g.attr("actionOnEmptyResult") != "true" {
		t.Errorf("Gather input=%q actionOnEmptyResult=%q", g.attr("input"), g.attr("actionOnEmptyResult"))
	}
	if g.attr("language") != "" || g.attr("speechModel") != "" {
		t.Errorf("keypad capture must not carry speech attributes: %v", g.Attrs)
	}
	if want := []string{"Say"}; !equalNames(g.names(), want) {
		t.Fatalf("Gather children = %v, want %v", g.names(), want)
	}
	if strings.TrimSpace(g.Children[0].Text) != "Enter your PIN" {
		t.Errorf("Say text = %q", g.Children[0].Text)
	}
}

func TestRenderGatherSpeech(t *testing.T) {
	d := Select(output("Hello", map[string]string{api.ParamCustomVocabulary: "yes,no"}), testLangs, testCfg)
	markup, err := Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	g := parseTwiML(t, markup).Children[0]
	want := map[string]string{
		"input":               "speech",
		"language":            "en-US",
		"hints":               "yes,no",
		"speechTimeout":       "auto",
		"speechModel":         "default",
		"actionOnEmptyResult": "true",
	}
	for k, v := range want {
		if got := g.attr(k); got != v {
			t.Errorf("Gather %s = %q, want %q", k, got, v)
		}
	}
	say := g.Children[0]
	if strings.TrimSpace(say.Text) != "Hello" || say.attr("voice") != "Polly.Joanna" {
		t.Errorf("Say = %q voice=%q", say.Text, say.attr("voice"))
	}
}

func TestRenderInvalid(t *testing.T) {
	if _, err := Render(Directive{Kind: "bogus"}); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Render(Directive{Kind: KindGatherSpeech}); err == nil {
		t.Error("expected error for gather without capture window")
	}
}

func TestComposerAppliesLanguageOverrides(t *testing.T) {
	c := NewComposer(NewSettings(testLangs), testCfg)

	_, d, err := c.Compose(output("Hej", map[string]string{
		api.ParamSTTLanguage: "sv-SE",
		api.ParamTTSLanguage: "Polly.Astrid",
	}))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if d.Voice != "Polly.Astrid" || d.Gather.Language != "sv-SE" {
		t.Errorf("directive voice=%q language=%q", d.Voice, d.Gather.Language)
	}

	// A later response without overrides keeps the last known values.
	markup, d, err := c.Compose(output("Tack", nil))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if d.Voice != "Polly.Astrid" || d.Gather.Language != "sv-SE" {
		t.Errorf("second directive voice=%q language=%q", d.Voice, d.Gather.Language)
	}
	if !strings.Contains(markup, "Polly.Astrid") {
		t.Errorf("markup missing voice: %s", markup)
	}
}

func TestComposerFallback(t *testing.T) {
	c := NewComposer(NewSettings(testLangs), testCfg)
	markup, d, err := c.ComposeFallback()
	if err != nil {
		t.Fatalf("ComposeFallback: %v", err)
	}
	if d.Kind != KindGatherSpeech {
		t.Errorf("fallback kind = %q", d.Kind)
	}
	g := parseTwiML(t, markup).Children[0]
	if strings.TrimSpace(g.Children[0].Text) != testCfg.FallbackText {
		t.Errorf("fallback text = %q", g.Children[0].Text)
	}
}

func TestRender_EscapesTextAndRedirect(t *testing.T) {
	markup, err := Render(Directive{
		Kind:        KindTransfer,
		Text:        "a & b",
		RedirectURL: QueueRedirectURL("https://x/y", "q"),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := `<Response><Say>a &amp; b</Say><Redirect method="POST">https://x/y?FlowEvent=return&amp;QueueName=q</Redirect></Response>`
	if !strings.Contains(markup, want) {
		t.Errorf("markup = %s\nwant to contain %s", markup, want)
	}
}
