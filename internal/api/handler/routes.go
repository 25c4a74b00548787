package handler

import (
	"net/http"

	"github.com/vfg2006/adlink-api/internal/api/handler/router"
	"github.com/vfg2006/adlink-api/internal/usecases/authenticating"
	"github.com/vfg2006/adlink-api/internal/usecases/creative"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/internal/usecases/reporting"
	"github.com/vfg2006/adlink-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(),
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
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodPut,
			Handler:     UpdateMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/logout",
			Method:      http.MethodPost,
			Handler:     Logout(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

// Meta agrupa o fluxo de conexão e seleção da hierarquia de contas
func Meta(service linking.LinkingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/meta/connect",
			Method:      http.MethodPost,
			Handler:     ConnectMeta(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:    "/v1/meta/callback",
			Method:  http.MethodGet,
			Handler: MetaCallback(service),
		},
		{
			Path:        "/v1/meta/connection",
			Method:      http.MethodDelete,
			Handler:     DisconnectMeta(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/meta/hierarchy",
			Method:      http.MethodGet,
			Handler:     GetHierarchy(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/meta/hierarchy/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshHierarchy(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/meta/businesses/:id/toggle",
			Method:      http.MethodPost,
			Handler:     ToggleBusiness(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/meta/businesses/:id/accounts/:account_id/toggle",
			Method:      http.MethodPost,
			Handler:     ToggleAccount(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
	}
}

func LinkedAccounts(service linking.LinkingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/linked-accounts",
			Method:      http.MethodPost,
			Handler:     SaveLinkedAccounts(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/linked-accounts",
			Method:      http.MethodGet,
			Handler:     ListLinkedAccounts(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/linked-accounts/:id",
			Method:      http.MethodGet,
			Handler:     GetLinkedAccount(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/linked-accounts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteLinkedAccount(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
	}
}

func AdSpend(service reporting.ReportingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ad-spend",
			Method:      http.MethodGet,
			Handler:     GetAdSpend(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
	}
}

func Creatives(service creative.CreativeService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/creatives",
			Method:      http.MethodGet,
			Handler:     ListCreatives(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives",
			Method:      http.MethodPost,
			Handler:     UploadCreative(service),
			Middlewares: middlewares{middleware.CreatorOnly()},
		},
		{
			Path:        "/v1/creatives/:id",
			Method:      http.MethodGet,
			Handler:     GetCreative(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/creatives/:id/review",
			Method:      http.MethodPut,
			Handler:     ReviewCreative(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/creatives/:id/performance",
			Method:      http.MethodPut,
			Handler:     UpdateCreativePerformance(service),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.BrandOnly()},
		},
	}
}
