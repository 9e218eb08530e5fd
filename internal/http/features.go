package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/service"
)

func (h *handlers) listFeatures(c *fiber.Ctx) error {
	out, err := h.svcs.Features.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) createFeature(c *fiber.Ctx) error {
	var in domain.FeatureInput
	if err := bind(c, &in); err != nil {
		return err
	}
	f, err := h.svcs.Features.Create(c.UserContext(), userID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

func (h *handlers) updateFeature(c *fiber.Ctx) error {
	var in domain.FeatureInput
	if err := bind(c, &in); err != nil {
		return err
	}
	f, err := h.svcs.Features.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(f)
}

func (h *handlers) deleteFeature(c *fiber.Ctx) error {
	if err := h.svcs.Features.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Feature deleted"})
}

func (h *handlers) eventHistory(c *fiber.Ctx) error {
	items, err := h.svcs.Reports.History(c.UserContext(), c.Params("damId"), queryLimit(c), service.NewestFirst)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *handlers) report(c *fiber.Ctx) error {
	rep, err := h.svcs.Reports.Report(c.UserContext(), c.Params("damId"), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(rep)
}

func (h *handlers) exportReport(c *fiber.Ctx) error {
	url, err := h.svcs.Reports.ExportReport(c.UserContext(), c.Params("damId"), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"url": url})
}
