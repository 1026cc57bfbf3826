// Package devserver is a local stand-in for the user-service REST backend.
// It serves the same four routes the client consumes, backed by sqlite.
package devserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/jask/userdesk/internal/api"
	"github.com/jask/userdesk/internal/database/repository"
	"github.com/jask/userdesk/internal/users"
)

type Store interface {
	List(ctx context.Context) ([]users.User, error)
	Create(ctx context.Context, p users.Payload) (users.User, error)
	Update(ctx context.Context, id int64, p users.Payload) (users.User, error)
	Delete(ctx context.Context, id int64) error
}

type handler struct {
	store Store
	log   logrus.FieldLogger
}

// New builds the fiber app. basePath is the collection route, e.g. "/user".
// db is only used by the readiness check and may be nil.
func New(store Store, db *sql.DB, basePath string, log logrus.FieldLogger) *fiber.App {
	basePath = "/" + strings.Trim(basePath, "/")
	h := &handler{store: store, log: log}

	app := fiber.New(fiber.Config{AppName: "userdesk dev backend"})
	app.Use(recover.New())
	app.Use(requestLogger(log))

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		if db != nil {
			if err := db.PingContext(c.Context()); err != nil {
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	app.Get(basePath, h.list)
	app.Post(basePath, h.create)
	app.Put(basePath+"/:id", h.update)
	app.Delete(basePath+"/:id", h.remove)
	return app
}

func (h *handler) list(c fiber.Ctx) error {
	list, err := h.store.List(c.Context())
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(list)
}

func (h *handler) create(c fiber.Ctx) error {
	p, ok, err := decodePayload(c)
	if !ok {
		return err
	}
	u, err := h.store.Create(c.Context(), p)
	if err != nil {
		return h.storeError(c, err)
	}
	h.log.WithFields(logrus.Fields{"user_id": u.UserID, "username": u.Username}).Info("user created")
	return c.Status(http.StatusCreated).JSON(u)
}

func (h *handler) update(c fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	p, ok, err := decodePayload(c)
	if !ok {
		return err
	}
	u, err := h.store.Update(c.Context(), id, p)
	if err != nil {
		return h.storeError(c, err)
	}
	h.log.WithField("user_id", id).Info("user updated")
	return c.JSON(u)
}

func (h *handler) remove(c fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	if err := h.store.Delete(c.Context(), id); err != nil {
		return h.storeError(c, err)
	}
	h.log.WithField("user_id", id).Info("user deleted")
	return c.SendStatus(http.StatusNoContent)
}

// decodePayload parses and checks the request body. When ok is false the
// response has already been written and err is the result of writing it.
func decodePayload(c fiber.Ctx) (p users.Payload, ok bool, err error) {
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		return p, false, c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	if p.Username == "" || p.Email == "" {
		return p, false, c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "username and email are required"})
	}
	return p, true, nil
}

func pathID(c fiber.Ctx) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}
	return id, true, nil
}

func (h *handler) storeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "not found"})
	case errors.Is(err, repository.ErrDuplicateUsername):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	}
	return h.internal(c, err)
}

func (h *handler) internal(c fiber.Ctx, err error) error {
	h.log.WithError(err).Error("store failure")
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
}

func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    time.Since(start),
			"request_id": c.Get(api.RequestIDHeader),
		}).Info("request")
		return err
	}
}
