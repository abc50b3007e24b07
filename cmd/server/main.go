package main

import (
	"log"
	"net/http"

	"naxine_api/internal/auth"
	"naxine_api/internal/config"
	"naxine_api/internal/logger"
	"naxine_api/internal/mailer"
	"naxine_api/internal/middleware"
	"naxine_api/internal/policy"
	"naxine_api/internal/routes"
	"naxine_api/internal/store"

)

// verifier picks the token strategy from AUTH_MODE. "local" signs and
// verifies HS256 tokens with JWT_SECRET; "cognito" validates RS256
// tokens against the user pool's JWKS.
func verifier() auth.TokenVerifier {
	switch mode := config.GetEnv("AUTH_MODE", "local"); mode {
	case "cognito":
		return auth.NewCognitoVerifier(
			config.GetEnv("AWS_REGION", "us-east-1"),
			config.GetEnv("COGNITO_USER_POOL_ID", ""),
		)
	case "local":
		return auth.NewLocalVerifier(config.GetEnv("JWT_SECRET", "supersecret"))
	default:
		log.Fatalf("AUTH_MODE desconocido: %s", mode)
		return nil
	}
}

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()
	db := config.GetDB()

	usuarios := store.NewUsuarios(db)
	gate := auth.NewGate(verifier(), usuarios)
	engine := policy.NewEngine(store.NewResolver(db), store.NewTargets(db))

	tokens := auth.NewLocalVerifier(config.GetEnv("JWT_SECRET", "supersecret"))

	m := mailer.New(
		config.GetEnv("SMTP_HOST", ""),
		config.GetEnv("SMTP_PORT", "587"),
		config.GetEnv("SMTP_USER", ""),
		config.GetEnv("SMTP_PASS", ""),
		config.GetEnv("SMTP_FROM", "no-reply@naxine.com"),
		config.GetEnv("FRONTEND_URL", "http://localhost:3000"),
	)

	// Setup Gin router
	r := routes.SetupRouter(routes.Deps{
		DB:       db,
		Gate:     gate,
		Policy:   engine,
		Tokens:   tokens,
		Mailer:   m,
		Usuarios: usuarios,
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := config.GetEnv("PORT", "8080")
	log.Printf("🚀 Server running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
