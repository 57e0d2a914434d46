// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accessrequestsfeature "github.com/dalemusser/shelterhub/internal/app/features/accessrequests"
	adoptionrequestsfeature "github.com/dalemusser/shelterhub/internal/app/features/adoptionrequests"
	assignmentsfeature "github.com/dalemusser/shelterhub/internal/app/features/assignments"
	eventsfeature "github.com/dalemusser/shelterhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/shelterhub/internal/app/features/health"
	lookupsfeature "github.com/dalemusser/shelterhub/internal/app/features/lookups"
	petphotosfeature "github.com/dalemusser/shelterhub/internal/app/features/petphotos"
	petsfeature "github.com/dalemusser/shelterhub/internal/app/features/pets"
	sheltersfeature "github.com/dalemusser/shelterhub/internal/app/features/shelters"
	usersfeature "github.com/dalemusser/shelterhub/internal/app/features/users"
	vaccinationsfeature "github.com/dalemusser/shelterhub/internal/app/features/vaccinations"
	vaccinesfeature "github.com/dalemusser/shelterhub/internal/app/features/vaccines"
	adoptionrequeststore "github.com/dalemusser/shelterhub/internal/app/store/adoptionrequests"
	assignmentstore "github.com/dalemusser/shelterhub/internal/app/store/assignments"
	petstore "github.com/dalemusser/shelterhub/internal/app/store/pets"
	userstore "github.com/dalemusser/shelterhub/internal/app/store/users"
	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/authz"
	"github.com/dalemusser/shelterhub/internal/app/system/mailer"
	"github.com/dalemusser/shelterhub/internal/app/system/shelterctx"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ShelterHub wires the token verifier, the user-directory syncer, the
// authorization gate, and the shelter-context resolver, then mounts the
// feature routers for every part of the API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Identity: verify bearer tokens from the external identity provider,
	// or run as a fixed local identity when auth is disabled in dev.
	var verifier auth.Verifier
	if appCfg.AuthDisable {
		verifier = auth.NewBypassVerifier()
	} else {
		verifier = auth.NewJWTVerifier(appCfg.AuthTokenSecret, appCfg.AuthTokenIssuer, appCfg.AuthTokenAudience)
	}
	users := userstore.New(db)
	authenticator := auth.NewAuthenticator(verifier, users, logger)

	// Authorization: role checks against the assignments collection, with
	// the shelter context resolved from the path, query, body, or the
	// resource being touched (pet or adoption request).
	gate := authz.NewGate(assignmentstore.New(db))
	resolver := shelterctx.NewResolver(petstore.New(db), adoptionrequeststore.New(db))

	sender := mailer.NewSender(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	})

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Reference data
	lookupsHandler := lookupsfeature.NewHandler(db, logger)
	r.Mount("/lookups", lookupsfeature.Routes(lookupsHandler))

	// Core resources
	petsHandler := petsfeature.NewHandler(db, logger)
	r.Mount("/pets", petsfeature.Routes(petsHandler, authenticator, gate, resolver))

	sheltersHandler := sheltersfeature.NewHandler(db, sender, appCfg.BaseURL, logger)
	r.Mount("/shelters", sheltersfeature.Routes(sheltersHandler, authenticator, gate))

	adoptionHandler := adoptionrequestsfeature.NewHandler(db, logger)
	r.Mount("/adoption-requests", adoptionrequestsfeature.Routes(adoptionHandler, authenticator, gate, resolver))

	// Medical records and scheduling
	vaccinesHandler := vaccinesfeature.NewHandler(db, logger)
	r.Mount("/vaccines", vaccinesfeature.Routes(vaccinesHandler, authenticator))

	vaccinationsHandler := vaccinationsfeature.NewHandler(db, logger)
	r.Mount("/vaccinations", vaccinationsfeature.Routes(vaccinationsHandler, authenticator))

	eventsHandler := eventsfeature.NewHandler(db, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, authenticator))

	petPhotosHandler := petphotosfeature.NewHandler(db, logger)
	r.Mount("/pet-photos", petphotosfeature.Routes(petPhotosHandler, authenticator))

	// Directory and membership
	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, authenticator))

	assignmentsHandler := assignmentsfeature.NewHandler(db, logger)
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler, authenticator, gate))

	// Shelter onboarding
	accessHandler := accessrequestsfeature.NewHandler(db, logger)
	r.Mount("/shelter-access-requests", accessrequestsfeature.Routes(accessHandler, authenticator, gate))

	return r, nil
}
