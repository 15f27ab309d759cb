package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/cache"
)

// Every endpoint answers with the same envelope: {"success":true,"data":...}
// on success, {"success":false,"message":...} on failure. Failures are
// produced centrally by the error-handling middleware.

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

// cachedOK serves a public GET from the response cache when possible, and
// renders-then-stores the envelope otherwise. Fetch errors bypass the cache.
func cachedOK(c *fiber.Ctx, store *cache.CatalogCache, key string, fetch func() (any, error)) error {
	if body, hit := store.Get(c.Context(), key); hit {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	data, err := fetch()
	if err != nil {
		return err
	}

	body, err := json.Marshal(fiber.Map{"success": true, "data": data})
	if err != nil {
		return err
	}
	store.Set(c.Context(), key, body)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
