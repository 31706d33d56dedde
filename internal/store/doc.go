// Package store defines the persistence boundary for decks and pending
// quizzes. Implementations live in internal/platform/sqlstore (decks) and
// internal/session (pending quizzes); this package holds only interfaces,
// shared errors and the transaction helper.
package store
