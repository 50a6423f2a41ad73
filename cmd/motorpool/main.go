package main

import (
	"github.com/smallbiznis/motorpool/internal/allocation"
	"github.com/smallbiznis/motorpool/internal/config"
	"github.com/smallbiznis/motorpool/internal/observability"
	"github.com/smallbiznis/motorpool/internal/server"
	"github.com/smallbiznis/motorpool/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		db.Module,

		// Functional domains
		allocation.Module,

		server.Module,
	)
	app.Run()
}
