package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "BookHive API",
        "description": "Library and bookstore management: borrow, purchase, and return lifecycle",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Registration and login"},
        {"name": "Catalog", "description": "Borrow catalog, sale catalog, and inventory management"},
        {"name": "Acquisition", "description": "Borrow requests, purchases, and returns"},
        {"name": "Accounts", "description": "Administrator account management"},
        {"name": "Reports", "description": "Inventory report downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new member account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Account created, awaiting approval"},
                    "400": {"description": "Validation failure"},
                    "409": {"description": "Username or email already exists"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate by username or email",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token issued"},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "Account not yet approved"}
                }
            }
        },
        "/books": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Borrow catalog (price 0, available)",
                "responses": {
                    "200": {"description": "List of borrowable books"}
                }
            }
        },
        "/books/for-sale": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Sale catalog (priced, available)",
                "responses": {
                    "200": {"description": "List of purchasable books"}
                }
            }
        },
        "/books/donate": {
            "post": {
                "tags": ["Catalog"],
                "summary": "Donate a book to the library",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DonateBookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Donation recorded"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/books/{id}/borrow": {
            "post": {
                "tags": ["Acquisition"],
                "summary": "Submit a borrow request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Request submitted"},
                    "404": {"description": "Book not found"},
                    "409": {"description": "Duplicate request, already borrowed, or book unavailable"}
                }
            }
        },
        "/books/{id}/purchase": {
            "post": {
                "tags": ["Acquisition"],
                "summary": "Purchase a book",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Purchase completed"},
                    "404": {"description": "Book not found"},
                    "409": {"description": "Book unavailable"}
                }
            }
        },
        "/borrowed/{id}/return": {
            "post": {
                "tags": ["Acquisition"],
                "summary": "Return a borrowed book",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Book returned"},
                    "404": {"description": "No active borrow record for this user"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Acquisition"],
                "summary": "Borrow history, open requests, and orders",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Dashboard payload"}
                }
            }
        },
        "/admin/books": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Full inventory",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "All books regardless of state"}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Add a book",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookUpsertRequest"}}
                ],
                "responses": {
                    "201": {"description": "Book added"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/admin/books/{id}": {
            "put": {
                "tags": ["Catalog"],
                "summary": "Update a book",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookUpsertRequest"}}
                ],
                "responses": {
                    "200": {"description": "Book updated"},
                    "404": {"description": "Book not found"}
                }
            },
            "delete": {
                "tags": ["Catalog"],
                "summary": "Delete a book and its history",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Book deleted"},
                    "404": {"description": "Book not found"}
                }
            }
        },
        "/admin/borrow-requests": {
            "get": {
                "tags": ["Acquisition"],
                "summary": "Pending borrow requests, oldest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Librarian approval queue"}
                }
            }
        },
        "/admin/borrow-requests/{id}/approve": {
            "post": {
                "tags": ["Acquisition"],
                "summary": "Approve a pending borrow request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Request approved"},
                    "404": {"description": "Pending request not found"},
                    "409": {"description": "Book no longer available; request rejected"}
                }
            }
        },
        "/admin/borrow-requests/{id}/reject": {
            "post": {
                "tags": ["Acquisition"],
                "summary": "Reject a pending borrow request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Request rejected"},
                    "404": {"description": "Pending request not found"}
                }
            }
        },
        "/admin/reports/inventory": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the inventory report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Report file"},
                    "400": {"description": "Unknown format"}
                }
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Accounts"],
                "summary": "List accounts, unapproved first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "All accounts"}
                }
            }
        },
        "/admin/users/{id}/approve": {
            "post": {
                "tags": ["Accounts"],
                "summary": "Approve an account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Account approved"},
                    "404": {"description": "User not found"}
                }
            }
        },
        "/admin/users/{id}": {
            "delete": {
                "tags": ["Accounts"],
                "summary": "Delete an account and its history",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Account deleted"},
                    "403": {"description": "Self-deletion or protected account"},
                    "404": {"description": "User not found"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password", "confirm_password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "confirm_password": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["identifier", "password"],
            "properties": {
                "identifier": {"type": "string", "description": "Username or email"},
                "password": {"type": "string"}
            }
        },
        "BookUpsertRequest": {
            "type": "object",
            "required": ["title", "author", "book_condition", "book_status"],
            "properties": {
                "title": {"type": "string"},
                "author": {"type": "string"},
                "category": {"type": "string"},
                "publisher": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "book_condition": {"type": "string", "enum": ["New", "Second Hand"]},
                "book_status": {"type": "string", "enum": ["Available", "On Shelves", "Borrowed", "Sold"]}
            }
        },
        "DonateBookRequest": {
            "type": "object",
            "required": ["title", "author", "category", "publisher"],
            "properties": {
                "title": {"type": "string"},
                "author": {"type": "string"},
                "category": {"type": "string"},
                "publisher": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "category": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "message": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
