package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LMS Platform API",
        "description": "Course catalog, learning progress, analytics and careers API",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Signup, login and session management"},
        {"name": "Courses", "description": "Course catalog"},
        {"name": "Categories", "description": "Course categories"},
        {"name": "Enrollments", "description": "Course enrollment"},
        {"name": "AccessRequests", "description": "Course access requests"},
        {"name": "Learning", "description": "Progress tracking"},
        {"name": "Analytics", "description": "Platform analytics"},
        {"name": "Dashboard", "description": "Admin dashboard"},
        {"name": "Drilldown", "description": "Admin drill-down browser"},
        {"name": "Jobs", "description": "Careers board"},
        {"name": "Exports", "description": "Asynchronous data exports"}
    ],
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a learner account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unknown or reused token"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List published courses",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "categoryId", "in": "query", "type": "string"},
                    {"name": "free", "in": "query", "type": "boolean"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["popular", "rating", "price-low", "price-high"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/courses/{id}/enroll": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll into a free published course",
                "responses": {
                    "201": {"description": "Enrolled"},
                    "403": {"description": "Paid course, request access instead"},
                    "409": {"description": "Already enrolled"}
                }
            }
        },
        "/courses/{id}/request-access": {
            "post": {
                "tags": ["AccessRequests"],
                "summary": "Request access to a course",
                "responses": {
                    "201": {"description": "Request submitted"},
                    "409": {"description": "Already enrolled or pending"}
                }
            }
        },
        "/courses/{id}/progress": {
            "get": {
                "tags": ["Learning"],
                "summary": "Get own progress in a course",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not enrolled"}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["Categories"],
                "summary": "List categories with aggregates",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/analytics": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Platform analytics with per-category rollups",
                "responses": {
                    "200": {"description": "OK, meta.demo_data marks fallback payloads"}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Composed admin dashboard summary",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/drilldown": {
            "get": {
                "tags": ["Drilldown"],
                "summary": "Current drill-down view",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/jobs": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List open job postings",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/jobs/{id}/apply": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Apply to a posting with an optional resume upload",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Submitted"},
                    "409": {"description": "Duplicate application"},
                    "422": {"description": "Deadline passed"}
                }
            }
        },
        "/admin/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue an export job",
                "responses": {
                    "202": {"description": "Queued"}
                }
            }
        },
        "/exports/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export via signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
