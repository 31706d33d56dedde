// Package gemini provides a completion.Completer backed by Google's Gemini API.
//
// It is an infrastructure adapter: callers hand it a fully rendered prompt and
// get back the raw generated text. Every call is a single round trip with no
// retries. Transport failures are reported as completion.ErrTransport; a
// response without text at candidates[0].content.parts is reported as
// completion.ErrMalformedResponse, and safety blocks additionally wrap
// completion.ErrContentBlocked.
package gemini
