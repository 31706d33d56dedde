// Package session keeps per-client quiz state between generating a quiz and
// grading it.
//
// Pending quizzes live server-side in MemoryQuizStore, keyed by an opaque
// session key. Browser clients carry that key in a signed cookie managed by
// CookieManager, which also holds one-shot flash messages. API clients carry
// it in a signed quiz token issued by TokenService.
package session
