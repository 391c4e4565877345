package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Kinemathika Analytics API",
        "description": "Attempt aggregation and progress analytics for the teacher dashboard",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Analytics",
            "description": "Dashboard aggregates over problem attempts"
        },
        {
            "name": "Reports",
            "description": "Downloadable class reports"
        },
        {
            "name": "Operations",
            "description": "Health and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Readiness check of database and cache",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "A dependency is unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/analytics/overview/trend": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Daily metric trend (program scope)",
                "parameters": [
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "metric",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "Attempts",
                            "Time"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/overview/concept-summary": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Average attempts and time to correct (program scope)",
                "parameters": [
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/overview/concept-bars": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Concept accuracy bars (program scope)",
                "parameters": [
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "mode",
                        "in": "query",
                        "type": "string",
                        "description": "Alias of conceptId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/overview/progress": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Progress donut (program scope)",
                "parameters": [
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/overview/summary": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Overview tiles (program scope)",
                "parameters": [
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/overview/recent-attempts": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Most recent attempts (program scope)",
                "parameters": [
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "minimum": 1,
                        "maximum": 100
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/classes/{classId}/trend": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Daily metric trend (class scope)",
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "metric",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "Attempts",
                            "Time"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/classes/{classId}/concept-summary": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Average attempts and time to correct (class scope)",
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/classes/{classId}/concept-bars": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Concept accuracy bars (class scope)",
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "mode",
                        "in": "query",
                        "type": "string",
                        "description": "Alias of conceptId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/classes/{classId}/progress": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Progress donut (class scope)",
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/classes/{classId}/summary": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Overview tiles (class scope)",
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/classes/{classId}/recent-attempts": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Most recent attempts (class scope)",
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "minimum": 1,
                        "maximum": 100
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/students/{studentId}/trend": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Daily metric trend (student scope)",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "metric",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "Attempts",
                            "Time"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/students/{studentId}/concept-summary": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Average attempts and time to correct (student scope)",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/students/{studentId}/concept-bars": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Concept accuracy bars (student scope)",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "mode",
                        "in": "query",
                        "type": "string",
                        "description": "Alias of conceptId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/students/{studentId}/progress": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Progress donut (student scope)",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/students/{studentId}/summary": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Overview tiles (student scope)",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/students/{studentId}/recent-attempts": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Most recent attempts (student scope)",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "minimum": 1,
                        "maximum": 100
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/classes/{classId}/students": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Per-student performance table",
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "conceptId",
                        "in": "query",
                        "type": "string",
                        "description": "Concept code or name; all for every concept"
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "minimum": 1
                    },
                    {
                        "name": "pageSize",
                        "in": "query",
                        "type": "integer",
                        "minimum": 1,
                        "maximum": 200
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid query",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown class or student",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/analytics/cache/invalidate": {
            "post": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Drop cached analytics results",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/CacheInvalidateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "503": {
                        "description": "Cache backend unavailable"
                    }
                }
            }
        },
        "/analytics/system": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Instrumentation snapshot",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/reports/classes/{classId}": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Download a class performance report",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "classId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ]
                    },
                    {
                        "name": "window",
                        "in": "query",
                        "type": "string",
                        "description": "Lookback window such as 30d or 72h; negative disables the bound"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Report file",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Unknown class"
                    }
                }
            }
        }
    },
    "definitions": {
        "CacheInvalidateRequest": {
            "type": "object",
            "properties": {
                "scope": {
                    "type": "string",
                    "enum": [
                        "program",
                        "class",
                        "student"
                    ]
                },
                "id": {
                    "type": "string"
                },
                "warm": {
                    "type": "boolean",
                    "description": "Recompute the default dashboard tiles in the background"
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
