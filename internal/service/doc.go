// Package service contains the study use cases shared by the HTML and JSON
// surfaces. It validates raw request input, drives the quiz and flashcard
// generators, keeps generated quizzes in a PendingQuizStore until they are
// graded, and persists flashcard decks through a DeckStore.
//
// The service depends only on interfaces (generators here, stores from
// internal/store), so handlers and tests can wire any implementation.
package service
