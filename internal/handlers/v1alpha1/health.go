package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/washworks/jobboard/api/v1alpha1"
)

// (GET /health)
func (s *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.Health{Status: "ok"})
}
