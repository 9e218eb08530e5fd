package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/service"
)

func (h *handlers) createState(c *fiber.Ctx) error {
	var in domain.StateInput
	if err := bind(c, &in); err != nil {
		return err
	}
	st, err := h.svcs.Hierarchy.CreateState(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

func (h *handlers) listStates(c *fiber.Ctx) error {
	out, err := h.svcs.Hierarchy.ListStates(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) renameState(c *fiber.Ctx) error {
	var in domain.StateInput
	if err := bind(c, &in); err != nil {
		return err
	}
	st, err := h.svcs.Hierarchy.RenameState(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (h *handlers) createRiver(c *fiber.Ctx) error {
	var in domain.RiverInput
	if err := bind(c, &in); err != nil {
		return err
	}
	rv, err := h.svcs.Hierarchy.CreateRiver(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rv)
}

func (h *handlers) listRivers(c *fiber.Ctx) error {
	out, err := h.svcs.Hierarchy.ListRivers(c.UserContext(), c.Params("stateId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) renameRiver(c *fiber.Ctx) error {
	var in domain.RiverInput
	if err := bind(c, &in); err != nil {
		return err
	}
	rv, err := h.svcs.Hierarchy.RenameRiver(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(rv)
}

func (h *handlers) createDam(c *fiber.Ctx) error {
	var in domain.DamInput
	if err := bind(c, &in); err != nil {
		return err
	}
	d, err := h.svcs.Hierarchy.CreateDam(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *handlers) listDams(c *fiber.Ctx) error {
	out, err := h.svcs.Hierarchy.ListDams(c.UserContext(), c.Params("riverId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) getDam(c *fiber.Ctx) error {
	d, err := h.svcs.Hierarchy.GetDam(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *handlers) getCoreDamInfo(c *fiber.Ctx) error {
	d, err := h.svcs.Hierarchy.GetDam(c.UserContext(), c.Params("damId"))
	if err != nil {
		return err
	}
	return c.JSON(d)
}

func (h *handlers) saveCoreDamInfo(c *fiber.Ctx) error {
	var in domain.DamInput
	if err := bind(c, &in); err != nil {
		return err
	}
	d, created, err := h.svcs.Hierarchy.SaveCoreDamInfo(c.UserContext(), c.Params("damId"), in)
	if err != nil {
		return err
	}
	if created {
		c.Status(fiber.StatusCreated)
	}
	return c.JSON(d)
}

func (h *handlers) recordSample(c *fiber.Ctx) error {
	var in domain.StatusSample
	if err := bind(c, &in); err != nil {
		return err
	}
	row, err := h.svcs.Status.RecordSample(c.UserContext(), c.Params("damId"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

func (h *handlers) setCurrentStatus(c *fiber.Ctx) error {
	var in domain.StatusSample
	if err := bind(c, &in); err != nil {
		return err
	}
	st, err := h.svcs.Status.SetCurrentStatus(c.UserContext(), c.Params("damId"), in)
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (h *handlers) latestStatus(c *fiber.Ctx) error {
	st, err := h.svcs.Status.LatestStatus(c.UserContext(), c.Params("damId"))
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (h *handlers) statusHistory(c *fiber.Ctx) error {
	items, err := h.svcs.Reports.History(c.UserContext(), c.Params("damId"), queryLimit(c), service.OldestFirst)
	if err != nil {
		return err
	}
	return c.JSON(items)
}
