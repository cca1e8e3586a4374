package voterregistry

import (
	"log/slog"

	"agora/contexts/identity-access/voter-registry/adapters/fake"
	httpadapter "agora/contexts/identity-access/voter-registry/adapters/http"
	"agora/contexts/identity-access/voter-registry/adapters/memory"
	"agora/contexts/identity-access/voter-registry/application/commands"
	"agora/contexts/identity-access/voter-registry/application/queries"
	"agora/contexts/identity-access/voter-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Voters  ports.VoterRepository
	Store   *memory.Store
}

type Dependencies struct {
	Voters      ports.VoterRepository
	Eligibility ports.EligibilityClient
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voterUseCase := commands.VoterUseCase{
		Voters: deps.Voters,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	voterQueries := queries.VoterQueries{
		Voters:      deps.Voters,
		Eligibility: deps.Eligibility,
	}
	return Module{
		Handler: httpadapter.Handler{
			Voters: voterUseCase,
			Reads:  voterQueries,
			Logger: deps.Logger,
		},
		Voters: deps.Voters,
	}
}

// NewInMemoryModule wires the registry against an in-memory store with an
// always-able eligibility stub.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Voters:      store,
		Eligibility: fake.AlwaysAbleClient{},
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
