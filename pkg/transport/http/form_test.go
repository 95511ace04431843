package http

import (
	"testing"

	"github.com/dialbridge/dialbridge/pkg/api"
)

func TestParseCallEvent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want api.CallEvent
	}{
		{
			name: "speech turn in progress",
			body: "CallSid=CA123&Caller=%2B15550100&CallerCountry=US&CallStatus=in-progress&SpeechResult=hello&Confidence=0.92",
			want: api.CallEvent{
				CallID:           "CA123",
				CallerNumber:     "+15550100",
				CallerCountry:    "US",
				CallStatus:       "in-progress",
				SpeechText:       "hello",
				SpeechConfidence: "0.92",
			},
		},
		{
			name: "ringing call ignores speech",
			body: "CallSid=CA123&CallStatus=ringing&SpeechResult=hello&Confidence=0.5",
			want: api.CallEvent{CallID: "CA123", CallStatus: "ringing"},
		},
		{
			name: "empty speech leaves confidence empty",
			body: "CallSid=CA1&CallStatus=in-progress&SpeechResult=&Confidence=0.1",
			want: api.CallEvent{CallID: "CA1", CallStatus: "in-progress"},
		},
		{
			name: "digits",
			body: "CallSid=CA1&CallStatus=in-progress&Digits=42",
			want: api.CallEvent{CallID: "CA1", CallStatus: "in-progress", Digits: "42"},
		},
		{
			name: "undefined digits normalize to empty",
			body: "CallSid=CA1&CallStatus=in-progress&Digits=undefined",
			want: api.CallEvent{CallID: "CA1", CallStatus: "in-progress"},
		},
		{
			name: "empty body",
			body: "",
			want: api.CallEvent{},
		},
		{
			name: "malformed pair keeps valid ones",
			body: "CallSid=CA9&Caller=%zz&CallStatus=in-progress",
			want: api.CallEvent{CallID: "CA9", CallStatus: "in-progress"},
		},
		{
			name: "garbage",
			body: "%%%not a form",
			want: api.CallEvent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCallEvent([]byte(tt.body))
			if got == nil {
				t.Fatal("ParseCallEvent returned nil")
			}
			if *got != tt.want {
				t.Errorf("ParseCallEvent() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}
