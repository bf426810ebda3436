package router

import (
	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/container"
	pginfra "github.com/taskcamp/taskcamp/internal/infrastructure/postgres"
	handlers "github.com/taskcamp/taskcamp/internal/interface/http"
	"github.com/taskcamp/taskcamp/internal/router/modules"
)

// InitModules constructs repositories, services and handlers from the
// container singletons and registers every feature module.
// This function should be called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	accounts := pginfra.NewAccountRepository(pool)
	projects := pginfra.NewProjectRepository(pool)
	notes := pginfra.NewNoteRepository(pool)
	tasks := pginfra.NewTaskRepository(pool)

	accountSvc := application.NewAccountService(accounts, logger, cfg.VerifyTicketTTL, cfg.ResetTicketTTL, container.GetES(), cfg.ESAccountsIndex)
	sessionSvc := application.NewSessionService(accounts, jwt, logger)
	projectSvc := application.NewProjectService(projects, accounts, logger)
	noteSvc := application.NewNoteService(notes)
	taskSvc := application.NewTaskService(tasks, projects)

	authHandler := handlers.NewAuthHandler(accountSvc, sessionSvc, logger, cfg, container.GetRabbitPub())
	accountHandler := handlers.NewAccountHandler(accountSvc, container.GetRedis(), logger)
	projectHandler := handlers.NewProjectHandler(projectSvc, logger)
	noteHandler := handlers.NewNoteHandler(noteSvc)
	taskHandler := handlers.NewTaskHandler(taskSvc)

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(authHandler, accounts, jwt))
	r.Add(modules.NewAccountModule(accountHandler, accounts, jwt))
	r.Add(modules.NewProjectModule(projectHandler, noteHandler, taskHandler, projectSvc, accounts, jwt))
}
