package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/roster-api/internal/api"
	apimw "github.com/phrazzld/roster-api/internal/api/middleware"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

// routes builds the HTTP handler. Reads are public; mutating routes and the
// event journal need a roster:write token when auth is enabled.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.NewTraceMiddleware(app.logger))
	r.Use(apimw.Metrics(app.metrics))
	r.Use(chimw.Recoverer)

	people := api.NewPersonHandler(app.people, app.logger)
	orgs := api.NewOrganizationHandler(app.organizations, app.logger)
	jobs := api.NewJobHandler(app.jobs, app.logger)
	journal := api.NewEventHandler(app.listeners.Journal, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/people", people.ListPeople)
		r.Get("/people/{id}", people.GetPerson)
		r.Get("/organizations/{id}", orgs.GetOrganization)
		r.Get("/organizations/{id}/members", orgs.ListMembers)

		r.Group(func(r chi.Router) {
			if app.jwtService != nil {
				r.Use(apimw.NewAuthMiddleware(app.jwtService, app.logger).RequireScope(auth.ScopeWrite))
			}

			r.Post("/people", people.CreatePerson)
			r.Patch("/people/{id}", people.UpdatePerson)
			r.Delete("/people/{id}", people.DeletePerson)
			r.Post("/people/{id}/verify-email", people.VerifyEmail)
			r.Post("/people/{id}/verify-phone", people.VerifyPhone)

			r.Post("/organizations", orgs.CreateOrganization)
			r.Post("/organizations/{id}/members", orgs.AddMember)

			r.Post("/jobs/completions", jobs.RecordCompletion)

			r.Get("/events", journal.ListEvents)
		})
	})

	r.Get("/health", api.NewHealthHandler(app.logger, app.healthChecks()...).Health)
	r.Handle("/metrics", app.metrics.Handler())

	return r
}

func (app *application) healthChecks() []api.HealthCheck {
	var checks []api.HealthCheck
	if app.db != nil {
		checks = append(checks, api.HealthCheck{Name: "database", Probe: app.db.PingContext})
	}
	if app.redis != nil {
		checks = append(checks, api.HealthCheck{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return app.redis.Ping(ctx).Err() },
		})
	}
	return checks
}
