package api

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/nikmy/sift/internal/users"
	"github.com/nikmy/sift/pkg/errors"
	"github.com/nikmy/sift/pkg/logger"
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func NewServer(cfg Config, log logger.Logger, repo users.API) Server {
	serveLog := log.With("api_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		DisableStartupMessage: true,
		RequestMethods:        []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodPost},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		serveLog.Warn(errors.WrapFail(err, "handle http request"))
		return c.Status(http.StatusInternalServerError).Send(nil)
	}

	s := &server{
		repo: repo,
		http: fiber.New(fiberCfg),
		addr: cfg.HTTP.Addr,
		log:  serveLog,
	}

	s.setupRoutes()

	return s
}

type server struct {
	repo users.API
	http *fiber.App
	addr string
	log  logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error)
	go func() { errCh <- s.http.Listen(s.addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return errors.Error("serve context done")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	err := s.repo.Close(ctx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "close users repo"))
	}

	err = s.http.ShutdownWithContext(ctx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "shutdown http server"))
	}

	return errors.Collapse(errs)
}

func (s *server) setupRoutes() {
	s.http.Get("/users", s.handleList)
	s.http.Post("/users", s.handleNew)
}

func (s *server) handleList(c *fiber.Ctx) error {
	input, err := parseInput(c)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "parse filter input"))
		return s.sendError(c, http.StatusBadRequest, "bad filter value")
	}

	selected, err := s.repo.Select(c.Context(), input)
	if err != nil {
		return errors.WrapFail(err, "select users")
	}

	return c.Status(http.StatusOK).JSON(selected)
}

func (s *server) handleNew(c *fiber.Ctx) error {
	var data users.User

	err := c.BodyParser(&data)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "unmarshal user payload"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	id, err := s.repo.Add(c.Context(), data)
	if err != nil {
		return errors.WrapFail(err, "add user")
	}

	return c.Status(http.StatusCreated).JSON(map[string]string{"id": id})
}

func (s *server) sendError(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(map[string]string{"error": msg})
}
