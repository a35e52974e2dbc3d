package model

// Environment is the deployment environment name from config.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope identifies the Telegram user and chat a request acts for.
type Scope struct {
	UserID   int64
	ChatID   int64
	Username string
}
