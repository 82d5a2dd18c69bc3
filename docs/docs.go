// Package docs registers the ClusterWeb API description with swag so
// gin-swagger can serve it under /swagger.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag/v2"
)

//go:embed swagger.json
var doc string

type spec struct{}

// ReadDoc returns the Swagger 2.0 document
func (spec) ReadDoc() string {
	return doc
}

// InstanceName is the swag registry name gin-swagger reads by default
const InstanceName = "swagger"

func init() {
	swag.Register(InstanceName, spec{})
}
