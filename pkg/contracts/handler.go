// Package contracts holds the wiring interfaces shared between the
// application shell and the endpoint packages.
package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by anything that mounts routes on a service
// router: the campaigns API and the health endpoints.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
