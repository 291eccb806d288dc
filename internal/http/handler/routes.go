package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
	"docshare/internal/service"
)

// Services bundles the injected use cases the routes dispatch to.
type Services struct {
	Documents service.DocumentService
	Links     service.LinkService
	Access    service.AccessService
	Analytics service.AnalyticsService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Owner-scoped routes sit behind RequireUser; public link routes do not —
// visitors have no session, only a slug and optional credentials.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Public link surface: pre-access metadata, the gate pipeline, event logging.
	publicLinks := app.Group("/public_links")
	publicLinks.Get("/:linkId", LinkMetadata(svcs.Access))
	publicLinks.Post("/:linkId/access", AccessLink(svcs.Access))
	publicLinks.Post("/:linkId/analytics", LogLinkEvent(svcs.Analytics))

	// Owner surface: documents, their links, visitors, and analytics.
	docs := app.Group("/documents", middleware.RequireUser())
	docs.Post("/", UploadDocument(svcs.Documents))
	docs.Get("/", ListDocuments(svcs.Documents))
	docs.Get("/:documentId", GetDocument(svcs.Documents))
	docs.Delete("/:documentId", DeleteDocument(svcs.Documents))
	docs.Get("/:documentId/visitors", ListDocumentVisitors(svcs.Documents))
	docs.Post("/:documentId/links", CreateLink(svcs.Links))
	docs.Get("/:documentId/links", ListLinks(svcs.Links))
	docs.Delete("/:documentId/links/:linkId", DeleteLink(svcs.Links))
	docs.Get("/:documentId/analytics", DocumentAnalytics(svcs.Analytics))
	docs.Get("/:documentId/links/:linkId/analytics", LinkAnalytics(svcs.Analytics))
}
