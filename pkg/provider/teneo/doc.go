// Package teneo implements provider.Provider against the Teneo Interaction
// Engine HTTP API.
//
// Each input is POSTed form-encoded to the engine URL with viewtype=tieapi.
// The engine session travels in the JSESSIONID cookie. Replies are validated
// against an embedded JSON schema before they are decoded, so a malformed
// reply surfaces as an api.EngineMalformed error rather than a zero value.
package teneo
