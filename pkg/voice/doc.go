// Package voice turns dialogue engine output into exactly one voice-control
// directive and renders it as TwiML.
//
// Selection is an ordered decision list ([Rules]): the first rule whose
// predicate matches the engine output parameters wins. Language overrides
// carried by the output are applied to a shared [Settings] holder before
// selection, so the last known recognition language and synthesis voice
// carry over to later calls.
package voice
