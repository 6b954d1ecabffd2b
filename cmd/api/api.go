package api

import (
	"net/http"
	"os"
	"time"

	"github.com/JayMehta0113/Towson-Media/service/post"
	"github.com/JayMehta0113/Towson-Media/service/user"
	"github.com/JayMehta0113/Towson-Media/storage"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
	store   storage.Store
}

func NewApiServer(address string, db *gorm.DB, store storage.Store) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
		store:   store,
	}
}

// Router builds the full route table. Split out from Run so tests can mount
// it on an httptest server.
func (s *APIServer) Router() *mux.Router {
	router := mux.NewRouter()

	userHandler := user.NewHandler(s.db, s.store)
	userHandler.RegisterRoutes(router)

	postHandler := post.NewHandler(s.db, s.store)
	postHandler.RegisterRoutes(router)

	// Local blobs get served straight off disk; GCS URLs point at the
	// bucket and never hit this process.
	if local, ok := s.store.(*storage.LocalStore); ok {
		fileServer := http.FileServer(http.Dir(local.Dir()))
		router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", fileServer))
	}

	return router
}

func (s *APIServer) Run() error {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	server := &http.Server{
		Addr:    s.address,
		Handler: handlers.LoggingHandler(os.Stdout, cors(s.Router())),
		// A stalled upstream must fail the request, not hold it open.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	logrus.WithField("address", s.address).Info("Server running")
	return server.ListenAndServe()
}
