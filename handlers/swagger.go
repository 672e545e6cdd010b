package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API documentation endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>STRNADEL engineering API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "STRNADEL engineering API", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Inquiry": {
        "type": "object",
        "required": ["name", "email", "message"],
        "properties": {
          "name": {"type": "string"}, "company": {"type": "string", "nullable": true},
          "email": {"type": "string"}, "phone": {"type": "string", "nullable": true},
          "subject": {"type": "string", "nullable": true}, "message": {"type": "string"}
        }
      },
      "CaseStudy": {
        "type": "object",
        "properties": {
          "id": {"type": "string"}, "title": {"type": "string"}, "client": {"type": "string", "nullable": true},
          "services": {"type": "array", "items": {"type": "string"}},
          "materials": {"type": "array", "items": {"type": "string"}},
          "description": {"type": "string", "nullable": true}, "challenges": {"type": "string", "nullable": true},
          "solutions": {"type": "string", "nullable": true}, "specs": {"type": "string", "nullable": true},
          "images": {"type": "array", "items": {"type": "string", "format": "uri"}}
        }
      },
      "JobOpening": {
        "type": "object",
        "properties": {
          "id": {"type": "string"}, "title": {"type": "string"},
          "location": {"type": "string", "default": "Horka nad Moravou, Czech Republic"},
          "type": {"type": "string", "default": "Full-time"},
          "description": {"type": "string", "nullable": true},
          "requirements": {"type": "array", "items": {"type": "string"}},
          "benefits": {"type": "array", "items": {"type": "string"}}
        }
      },
      "TeamMember": {
        "type": "object",
        "properties": {
          "id": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string"},
          "bio": {"type": "string", "nullable": true}, "photo": {"type": "string", "format": "uri", "nullable": true},
          "email": {"type": "string", "nullable": true}
        }
      },
      "ValidationError": {
        "type": "object",
        "properties": {
          "error": {"type": "string"},
          "fields": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "error": {"type": "string"}, "expected": {"type": "string"}}}}
        }
      }
    },
    "parameters": {
      "limit": { "name": "limit", "in": "query", "required": false, "schema": {"type": "integer", "minimum": 0}, "description": "Maximum number of items; 0 returns everything" }
    }
  },
  "paths": {
    "/": { "get": { "summary": "Liveness", "responses": { "200": { "description": "name and status" } } } },
    "/test": { "get": { "summary": "Database diagnostics", "responses": { "200": { "description": "diagnostic report" } } } },
    "/api/inquiries": {
      "post": {
        "summary": "Submit an inquiry",
        "requestBody": { "required": true, "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Inquiry"} } } },
        "responses": {
          "201": { "description": "stored", "content": { "application/json": { "schema": {"type": "object", "properties": {"id": {"type": "string"}}} } } },
          "400": { "description": "validation failed", "content": { "application/json": { "schema": {"$ref": "#/components/schemas/ValidationError"} } } },
          "500": { "description": "storage error" }
        }
      }
    },
    "/api/case-studies": { "get": { "summary": "List case studies (default limit 12)", "parameters": [{"$ref": "#/components/parameters/limit"}], "responses": { "200": { "description": "case studies", "content": { "application/json": { "schema": {"type": "array", "items": {"$ref": "#/components/schemas/CaseStudy"}} } } }, "500": { "description": "storage error" } } } },
    "/api/jobs": { "get": { "summary": "List job openings (default limit 20)", "parameters": [{"$ref": "#/components/parameters/limit"}], "responses": { "200": { "description": "job openings", "content": { "application/json": { "schema": {"type": "array", "items": {"$ref": "#/components/schemas/JobOpening"}} } } }, "500": { "description": "storage error" } } } },
    "/api/team": { "get": { "summary": "List team members (default limit 20)", "parameters": [{"$ref": "#/components/parameters/limit"}], "responses": { "200": { "description": "team members", "content": { "application/json": { "schema": {"type": "array", "items": {"$ref": "#/components/schemas/TeamMember"}} } } }, "500": { "description": "storage error" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "store reachable" }, "503": { "description": "store unavailable" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
