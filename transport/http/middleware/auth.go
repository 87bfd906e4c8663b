package middleware

import (
	"context"
	"net/http"
	"lodging/config"
	"lodging/infras/otel"
	"lodging/permissions"
	"lodging/shared/constant"
	"lodging/shared/failure"
	"lodging/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type trustedKey string

const trusted = trustedKey("trusted")

// AuthRole reads the caller identity forwarded by the identity gateway and
// enforces the role table from permissions.json.
type AuthRole interface {
	APIKey(http.Handler) http.Handler
	Identity(http.Handler) http.Handler
	RBAC(http.Handler) http.Handler
}

type authRoleImpl struct {
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// APIKey marks the request as coming from the gateway. Without a configured
// key every request is trusted.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		switch {
		case m.cfg.App.APIKey == constant.Empty:
			scope.SetAttribute("http.source", "unguarded")
			ctx = context.WithValue(ctx, trusted, true)
		case apiKey == constant.Empty:
			scope.SetAttribute("http.source", "client")
			ctx = context.WithValue(ctx, trusted, false)
		case apiKey != m.cfg.App.APIKey:
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		default:
			scope.SetAttribute("http.source", "gateway")
			ctx = context.WithValue(ctx, trusted, true)
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Identity copies the X-User-* headers into the context. Headers on
// untrusted requests are ignored.
func (m *authRoleImpl) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		if ok, _ := ctx.Value(trusted).(bool); !ok {
			next.ServeHTTP(writer, request)

			return
		}

		if userID := request.Header.Get(constant.RequestHeaderUserID); userID != constant.Empty {
			ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, request.Header.Get(constant.RequestHeaderUserEmail))
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, request.Header.Get(constant.RequestHeaderUserRole))
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC requires an identity and a role listed for the matched route.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := routePattern(request)
		permission := m.permission.FindPermissions(path, request.Method)

		scope.SetAttributes(map[string]any{
			"middleware.type": "rbac",
			"http.path":       path,
			"http.method":     request.Method,
		})

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
		if userID == constant.Empty {
			err := failure.Unauthorized("Missing caller identity")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		if !permission.Allows(userRole) {
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// routePattern resolves the chi pattern the request will be dispatched to.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	if path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); path != constant.Empty {
		return path
	}

	return request.URL.Path
}
