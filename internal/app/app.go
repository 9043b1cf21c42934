package app

import (
	"go.uber.org/zap"

	"github.com/anonto42/threads-go-client/internal/api"
	"github.com/anonto42/threads-go-client/internal/notify"
	"github.com/anonto42/threads-go-client/internal/session"
	"github.com/anonto42/threads-go-client/internal/store"
	"github.com/anonto42/threads-go-client/pkg/config"
)

// App wires the client components together and injects dependencies
type App struct {
	Session    *session.Session
	Sessions   *session.Manager
	Cache      *store.Cache
	Posts      *store.PostStore
	Profiles   *store.ProfileStore
	Dispatcher *store.Dispatcher
}

// New builds the full client from configuration
func New(cfg *config.Config, notifier notify.Notifier, logger *zap.Logger) (*App, error) {
	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		var err error
		tokenPath, err = session.DefaultTokenPath()
		if err != nil {
			return nil, err
		}
	}

	// The session is created first and threaded into the API client, so
	// every request reads the credential from one place.
	sess := session.New()
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, sess, logger)

	postAPI := api.NewHTTPPostAPI(client)
	authAPI := api.NewHTTPAuthAPI(client)
	userAPI := api.NewHTTPUserAPI(client)

	cache := store.NewCache()
	reconciler := store.NewReconciler(postAPI, cache, notifier, logger)
	dispatcher := store.NewDispatcher(postAPI, cache, sess, reconciler, notifier, logger)
	postStore := store.NewPostStore(postAPI, cache, logger)
	profileStore := store.NewProfileStore(userAPI, cache, logger)

	manager := session.NewManager(sess, authAPI, userAPI, session.NewFileStore(tokenPath), logger)
	// Like projections are per viewer, so every snapshot is stale the
	// moment the principal changes.
	manager.OnAuthChange(cache.InvalidateAll)

	return &App{
		Session:    sess,
		Sessions:   manager,
		Cache:      cache,
		Posts:      postStore,
		Profiles:   profileStore,
		Dispatcher: dispatcher,
	}, nil
}
