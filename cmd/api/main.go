package main

import (
	"os"

	"github.com/saulo-duarte/quizlens/internal/cli"
)

// @title        quizlens API
// @version      1.0
// @description  Questionnaires, answers and generated analyses.
// @BasePath     /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
