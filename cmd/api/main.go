package main

import (
	_ "evergreen_estimator/docs"
	"evergreen_estimator/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Construction Estimate API
// @version         1.0
// @description     Estimate editor backend (line items, allocations, scope, voice input, PDF export) backed by DynamoDB.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
