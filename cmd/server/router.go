package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/scry-study/internal/api"
	apiMiddleware "github.com/phrazzld/scry-study/internal/api/middleware"
	"github.com/phrazzld/scry-study/internal/web"
)

// setupRouter creates the router with the HTML pages, the JSON API under
// /api and the health check.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	pages, err := web.NewHandler(app.studyService, app.cookies, app.logger)
	if err != nil {
		return nil, err
	}
	pages.Routes(r)

	quizHandler := api.NewQuizHandler(app.studyService, app.tokens, app.logger)
	deckHandler := api.NewDeckHandler(app.studyService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: app.config.Server.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Location"},
			MaxAge:         300,
		}))

		r.Post("/quizzes", quizHandler.CreateQuiz)
		r.Post("/quizzes/submit", quizHandler.SubmitQuiz)

		r.Post("/decks", deckHandler.CreateDeck)
		r.Get("/decks", deckHandler.ListDecks)
		r.Get("/decks/{id}", deckHandler.GetDeck)
		r.Delete("/decks/{id}", deckHandler.DeleteDeck)
	})

	r.Get("/health", web.Health)

	return r, nil
}
