// Package generation turns study text into quizzes and flashcards by prompting
// a completion.Completer and decoding the loosely formatted JSON it returns.
//
// Model output is not trusted to be clean: ExtractJSON trims prose and code
// fences around the payload before decoding. Every failure after the prompt
// is sent is reported as a *GenerationError carrying the raw completion text.
package generation
