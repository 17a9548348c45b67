package main

import (
	"fmt"
	"os"

	_ "furniture_estimates/docs"
	"furniture_estimates/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Furniture Estimates API
// @version         1.0
// @description     Prices custom furniture requests from a photo and written requirements.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := routes.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
