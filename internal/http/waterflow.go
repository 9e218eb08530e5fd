package http

import (
	"github.com/gofiber/fiber/v2"
)

func sendGeoJSON(c *fiber.Ctx, raw []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

func (h *handlers) indiaGeoJSON(c *fiber.Ctx) error {
	raw, err := h.svcs.Geo.IndiaGeoJSON()
	if err != nil {
		return err
	}
	return sendGeoJSON(c, raw)
}

func (h *handlers) stateGeoJSON(c *fiber.Ctx) error {
	raw, err := h.svcs.Geo.StateGeoJSON(c.UserContext(), c.Params("stateId"))
	if err != nil {
		return err
	}
	return sendGeoJSON(c, raw)
}

func (h *handlers) riverGeoJSON(c *fiber.Ctx) error {
	raw, err := h.svcs.Geo.RiverGeoJSON(c.UserContext(), c.Params("riverId"))
	if err != nil {
		return err
	}
	return sendGeoJSON(c, raw)
}

func (h *handlers) allDamPoints(c *fiber.Ctx) error {
	out, err := h.svcs.Geo.AllPoints(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) damPointsByState(c *fiber.Ctx) error {
	out, err := h.svcs.Geo.PointsByState(c.UserContext(), c.Params("stateId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) damPointsByRiver(c *fiber.Ctx) error {
	out, err := h.svcs.Geo.PointsByRiver(c.UserContext(), c.Params("riverId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) stateStats(c *fiber.Ctx) error {
	out, err := h.svcs.Geo.StateStats(c.UserContext(), c.Params("stateId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) riverStats(c *fiber.Ctx) error {
	out, err := h.svcs.Geo.RiverStats(c.UserContext(), c.Params("riverId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) damDetails(c *fiber.Ctx) error {
	out, err := h.svcs.Geo.DamDetails(c.UserContext(), c.Params("damId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
