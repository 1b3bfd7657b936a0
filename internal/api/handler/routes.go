package handler

import (
	"net/http"

	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/api/handler/router"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/authenticating"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/connecting"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/drafting"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/managing"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/running"
	"github.com/vfg2006/ledger-pulse-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/signup",
			Method:  http.MethodPost,
			Handler: Signup(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Tenant(service managing.ClientManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tenant",
			Method:      http.MethodGet,
			Handler:     GetTenantSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/tenant",
			Method:      http.MethodPut,
			Handler:     UpdateTenantSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Clients(service managing.ClientManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodGet,
			Handler:     GetClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/connection",
			Method:      http.MethodDelete,
			Handler:     DisconnectClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

// Connections retorna as rotas dos fluxos OAuth. Os callbacks são públicos:
// chegam por redirecionamento do provedor, sem token da aplicação.
func Connections(service connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/connect/qbo",
			Method:      http.MethodGet,
			Handler:     ConnectQBO(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/connect/gmail",
			Method:      http.MethodGet,
			Handler:     ConnectGmail(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/connections/status",
			Method:      http.MethodGet,
			Handler:     ConnectionStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:    "/callback/qbo",
			Method:  http.MethodGet,
			Handler: QBOCallback(service),
		},
		{
			Path:    "/callback/gmail",
			Method:  http.MethodGet,
			Handler: GmailCallback(service),
		},
	}
}

func Runs(service running.Orchestrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/runs",
			Method:      http.MethodPost,
			Handler:     RunDrafts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Drafts(service drafting.Manager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/drafts",
			Method:      http.MethodGet,
			Handler:     ListDrafts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/drafts/:id/approve",
			Method:      http.MethodPost,
			Handler:     ApproveDraft(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func AuditLog(auditRepo repository.AuditRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/audit",
			Method:      http.MethodGet,
			Handler:     ListAuditLog(auditRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
