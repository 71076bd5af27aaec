package http

import (
	"github.com/gin-gonic/gin"

	"newsletter-automation/internal/newsletter"
	pkgLog "newsletter-automation/pkg/log"
)

// Handler exposes the newsletter processing endpoints.
type Handler interface {
	ProcessInbox(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc newsletter.UseCase
}

// New creates a new newsletter HTTP handler.
func New(l pkgLog.Logger, uc newsletter.UseCase) Handler {
	return &handler{l: l, uc: uc}
}
