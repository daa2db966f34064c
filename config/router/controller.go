package router

import (
	"fmt"
	"net/http"
	"strings"
)

func normalizePath(controller *RESTController, relativePath string) string {
	var path string = controller.mountPoint

	if relativePath != "" {
		path = path + "/" + relativePath
	}

	if path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return strings.ReplaceAll(path, "//", "/")
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return fmt.Sprintf("%s-%s", method, path)
}

func (controller *RESTController) bindHandlerToController(routerService *RouterService, path, method string) {
	key := routerService.keyForPathAndMethod(path, method)
	otherController, foundPrevious := routerService.handlerToControllerMap[key]

	if foundPrevious {
		panic(fmt.Sprintf("A handler is already registered for path '%s' by a different controller '%s'", path, otherController.name))
	}

	routerService.handlerToControllerMap[key] = controller
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("A handler returned an undefined result. This typically indicates a bug in a handler's implementation.").ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	mountPoint = strings.ReplaceAll("/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: mountPoint,
		prepare:    prepare,
	}
}

func (routerService *RouterService) addHandler(
	controller *RESTController,
	method string,
	path string,
	handlers ...MiddlewareFunc,
) {
	controller.handlerCount++
	mountPoint := normalizePath(controller, path)
	controller.bindHandlerToController(routerService, mountPoint, method)
	routerService.engine.Handle(method, mountPoint, handlers...)
	routerService.logger.Debug("Handler registered", "method", method, "path", mountPoint)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, http.MethodPost, path, append(middlewares, createHandler(handler))...)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, http.MethodGet, path, append(middlewares, createHandler(handler))...)
}

// AddGetHandlerFunc registers a handler that writes its own response
// (HTML, plain text, XML) instead of returning a ServiceResult.
func (routerService *RouterService) AddGetHandlerFunc(
	controller *RESTController,
	path string,
	handler MiddlewareFunc,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, http.MethodGet, path, append(middlewares, handler)...)
}
