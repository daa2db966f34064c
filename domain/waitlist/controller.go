package waitlist

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/akeren/commit-waitlist/config/router"
	"github.com/akeren/commit-waitlist/internal/log"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
)

// NewWaitlistController mounts POST /api/waitlist. Responses use the public
// {message} / {error, details, code} shapes rather than the router envelope.
func NewWaitlistController(
	service WaitlistService,
	logger *log.Logger,
) *router.RESTController {

	return router.NewRESTController(
		"WaitlistController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			metrics := newSubmissionMetrics(rs.MetricsRegisterer())

			rs.AddPostHandler(c, "waitlist", submitWaitlistHandler(service, metrics), recoverAsErrorResponse())
		},
	)
}

func recoverAsErrorResponse() router.MiddlewareFunc {
	return router.RecoveryMiddleware(func(c *router.RequestContext, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error:   msgUnexpectedError,
			Details: fmt.Sprint(recovered),
		})
	})
}

func submitWaitlistHandler(service WaitlistService, metrics *submissionMetrics) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		raw, err := ctx.GetRawData()
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			return errorResult(apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error()))
		}

		req, err := ParseSubmitRequest(raw)
		if err == nil {
			// A client hanging up must not abort an insert or forward already in flight.
			outCtx, cancel := detachedContext(ctx.Request.Context())
			defer cancel()

			var resp *SubmissionResponse
			resp, err = service.Submit(outCtx, req)
			if err == nil {
				metrics.observe(service.Backend(), resp, nil)
				return router.RawResult(http.StatusOK, resp)
			}
		}

		metrics.observe(service.Backend(), nil, err)
		return errorResult(err)
	}
}

func errorResult(err error) *router.ServiceResult {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		err = apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}

	status, body := toErrorResponse(err)
	return router.RawResult(status, body)
}
