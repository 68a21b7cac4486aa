package handlers

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m1z23r/drift/pkg/drift"
)

type DocsHandler struct {
	doc *openapi3.T
}

func NewDocsHandler(doc *openapi3.T) *DocsHandler {
	return &DocsHandler{doc: doc}
}

// OpenAPI serves the API description as JSON.
func (h *DocsHandler) OpenAPI(c *drift.Context) {
	_ = c.JSON(200, h.doc)
}
