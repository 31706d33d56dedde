// Package web serves the browser pages: the input form, quizzes and their
// results, and saved flashcard decks. Validation and generation failures are
// reported as flash messages on the input form.
package web
