// Package api exposes the study use cases as a JSON API under /api. Clients
// generate a quiz, receive a signed quiz token in place of a browser session,
// and submit answers with that token. Flashcard decks are plain resources.
package api
