// Package domain contains the core entities of the study tool: generated quiz
// questions with their graded results, and persisted flashcard decks.
// It has no dependencies on storage or model providers.
package domain
