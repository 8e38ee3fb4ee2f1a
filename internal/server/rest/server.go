package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Johnnypham7496/users-api/internal/dto"
	"github.com/Johnnypham7496/users-api/internal/service"
	"github.com/Johnnypham7496/users-api/pkg/logger"
	"github.com/gorilla/mux"
)

type contextKey string

const (
	// DefaultPort is the default port the server listens on.
	DefaultPort = 8000
	// DefaultAddress is the default address the server listens on.
	DefaultAddress = ""
	// DefaultWriteTimeout is the default write timeout for server responses.
	DefaultWriteTimeout = 15 * time.Second
	// DefaultReadTimeout is the default read timeout for incoming requests.
	DefaultReadTimeout = 15 * time.Second
	// MaxRequestBodyBytes caps the size of an accepted request body.
	MaxRequestBodyBytes = 1 << 20
	// DefaultHealthTimeout bounds the store ping done by the health endpoint.
	DefaultHealthTimeout = 2 * time.Second

	contextKeyReqID = contextKey("reqID")

	// UsersPath is the prefix of the user resource.
	UsersPath = "/users/v1"

	// WelcomeMessage is the body message of the root endpoint.
	WelcomeMessage = "Hello, welcome to Autobots FastAPI bootcamp"

	// ErrMsgBadRequestInvalidRequestBody is a http response body message for a payload that is not valid JSON.
	ErrMsgBadRequestInvalidRequestBody = "request body is not valid JSON. Please check your payload and try again"
	// ErrMsgRequestBodyTooLarge is a http response body message for a payload above MaxRequestBodyBytes.
	ErrMsgRequestBodyTooLarge = "request body is too large. Please check your payload and try again"
	// ErrMsgInternalServerError is a http response body message for internal server error status code.
	ErrMsgInternalServerError = "Internal server error"
	// ErrMsgNotFound is a http response body message for unknown routes.
	ErrMsgNotFound = "Not Found"
	// ErrMsgMethodNotAllowed is a http response body message for a known route hit with the wrong method.
	ErrMsgMethodNotAllowed = "Method Not Allowed"

	healthStatusOK          = "OK"
	healthStatusUnavailable = "UNAVAILABLE"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server represents the users REST API server.
type Server struct {
	*http.Server
	userService service.UserService
	pinger      Pinger
}

// NewServer creates a new Server instance.
func NewServer(userService service.UserService, pinger Pinger, opts ...ServerOption) *Server {
	server := &Server{
		Server: &http.Server{
			Addr:         DefaultAddress,
			WriteTimeout: DefaultWriteTimeout,
			ReadTimeout:  DefaultReadTimeout,
		},
		userService: userService,
		pinger:      pinger,
	}

	for _, opt := range opts {
		opt(server)
	}

	server.initRoutes()

	return server
}

// ServerOption is a function signature for providing options to configure the Server.
type ServerOption func(*Server)

// WithAddress is an option to set the server address.
func WithAddress(addr string) ServerOption {
	return func(s *Server) {
		s.Addr = addr
	}
}

// WithReadTimeout is an option to set the read timeout for the server.
func WithReadTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.ReadTimeout = timeout
	}
}

// WithWriteTimeout is an option to set the write timeout for the server.
func WithWriteTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.WriteTimeout = timeout
	}
}

func (s *Server) initRoutes() {
	r := mux.NewRouter()

	r.Use(s.logMiddleware)

	// Router middleware only runs on matched routes.
	r.NotFoundHandler = s.logMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
	}))
	r.MethodNotAllowedHandler = s.logMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondWithError(w, http.StatusMethodNotAllowed, ErrMsgMethodNotAllowed)
	}))

	r.HandleFunc("/", s.handleWelcome).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	users := r.PathPrefix(UsersPath).Subrouter()
	for _, path := range []string{"", "/"} {
		users.HandleFunc(path, s.handleGetUsers).Methods(http.MethodGet)
		users.HandleFunc(path, s.handleCreateUser).Methods(http.MethodPost)
	}
	users.HandleFunc("/{username}", s.handleGetUser).Methods(http.MethodGet)
	users.HandleFunc("/{username}", s.handleUpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/{username}", s.handleDeleteUser).Methods(http.MethodDelete)

	s.Handler = r
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, dto.MessageDTO{Message: WelcomeMessage})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DefaultHealthTimeout)
	defer cancel()

	if err := s.pinger.PingContext(ctx); err != nil {
		logger.Warn("Health check failed", "request_id", requestID(r.Context()), "error", err)
		s.respondWithJSON(w, http.StatusServiceUnavailable, dto.HealthDTO{Status: healthStatusUnavailable})
		return
	}

	s.respondWithJSON(w, http.StatusOK, dto.HealthDTO{Status: healthStatusOK})
}

func (s *Server) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.GetUsers(r.Context())
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userService.GetUser(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	createDTO := &dto.UserCreateDTO{}
	if err := decodeBody(r, createDTO); err != nil {
		s.respondWithError(w, http.StatusBadRequest, ErrMsgBadRequestInvalidRequestBody)
		return
	}

	userDTO, err := s.userService.CreateUser(r.Context(), createDTO)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", UsersPath[1:]+"/"+userDTO.Username)
	s.respondWithJSON(w, http.StatusCreated, userDTO)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	updateDTO := &dto.UserUpdateDTO{}
	if err := decodeBody(r, updateDTO); err != nil {
		s.respondWithError(w, http.StatusBadRequest, ErrMsgBadRequestInvalidRequestBody)
		return
	}

	if err := s.userService.UpdateUser(r.Context(), mux.Vars(r)["username"], updateDTO); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.userService.DeleteUser(r.Context(), mux.Vars(r)["username"]); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON request body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameEmpty),
		errors.Is(err, service.ErrEmailEmpty),
		errors.Is(err, service.ErrRoleEmpty),
		errors.Is(err, service.ErrRequestBodyEmpty),
		errors.Is(err, service.ErrRequestFieldsEmpty):
		s.respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUserNotFoundForUpdate):
		s.respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists):
		s.respondWithError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Failed to handle request", "request_id", requestID(r.Context()), "error", err)
		s.respondWithError(w, http.StatusInternalServerError, ErrMsgInternalServerError)
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, errCode int, errMessage string) {
	s.respondWithJSON(w, errCode, dto.ErrorDTO{Detail: errMessage})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal response to JSON", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(ErrMsgInternalServerError)); err != nil {
			logger.Error("Failed to respond", "error", err)
		}

		return
	}

	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.Error("Failed to respond", "error", err)
	}
}
