package pollservice

import (
	"log/slog"

	httpadapter "agora/contexts/governance/poll-service/adapters/http"
	"agora/contexts/governance/poll-service/adapters/memory"
	"agora/contexts/governance/poll-service/application/commands"
	"agora/contexts/governance/poll-service/application/queries"
	"agora/contexts/governance/poll-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Topics   ports.TopicRepository
	Sessions ports.SessionRepository
	Votes    ports.VoteRepository
	Voters   ports.VoterDirectory
	Outbox   ports.OutboxWriter
	UoW      ports.UnitOfWork
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	topicUseCase := commands.TopicUseCase{
		Topics: deps.Topics,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	sessionUseCase := commands.SessionUseCase{
		Sessions: deps.Sessions,
		Topics:   deps.Topics,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	voteUseCase := commands.VoteUseCase{
		Votes:    deps.Votes,
		Sessions: deps.Sessions,
		Topics:   deps.Topics,
		Voters:   deps.Voters,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	resultsQueries := queries.ResultsQueries{
		Topics:   deps.Topics,
		Sessions: deps.Sessions,
		Votes:    deps.Votes,
	}
	orchestratorUseCase := commands.OrchestratorUseCase{
		UoW:     deps.UoW,
		Results: resultsQueries,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Topics:       topicUseCase,
			Sessions:     sessionUseCase,
			Votes:        voteUseCase,
			Orchestrator: orchestratorUseCase,
			TopicReads:   queries.TopicQueries{Topics: deps.Topics},
			SessionReads: queries.SessionQueries{Sessions: deps.Sessions, Topics: deps.Topics},
			VoteReads:    queries.VoteQueries{Votes: deps.Votes, Sessions: deps.Sessions},
			Clock:        deps.Clock,
			Logger:       deps.Logger,
		},
	}
}

// NewInMemoryModule wires every port to one in-memory store. Tests use the
// exposed Store to seed voters and pin the clock.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Topics:   store,
		Sessions: store,
		Votes:    store,
		Voters:   store,
		Outbox:   store,
		UoW:      store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
