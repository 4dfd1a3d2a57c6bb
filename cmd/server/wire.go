// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"nutrisnap_gateway/internal/app"
	"nutrisnap_gateway/internal/auth"
	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/config"
	"nutrisnap_gateway/internal/jobs"
	"nutrisnap_gateway/internal/pin"
	"nutrisnap_gateway/internal/session"
	"nutrisnap_gateway/internal/upstream"
	"nutrisnap_gateway/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		common.NewValidator,

		// Upstream
		upstream.NewClient,
		wire.Bind(new(upstream.Invoker), new(*upstream.Client)),

		// Sessions
		session.NewMemoryStore,
		wire.Bind(new(session.Store), new(*session.MemoryStore)),
		wire.Bind(new(session.Sweeper), new(*session.MemoryStore)),
		session.NewManager,
		provideBlocklist,
		wire.Bind(new(session.Blocklist), new(*session.InMemoryBlocklist)),

		// Auth and user modules
		auth.NewService,
		wire.Bind(new(auth.Service), new(*auth.ServiceImplementation)),
		auth.NewHandler,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// PIN
		pin.NewRegistry,
		pin.NewHandler,

		// Jobs
		jobs.NewMaintenanceJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
