package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

func (h *handlers) createSafety(c *fiber.Ctx) error {
	var in domain.SafetyInput
	if err := bind(c, &in); err != nil {
		return err
	}
	s, err := h.svcs.Safety.CreateSafety(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *handlers) getSafety(c *fiber.Ctx) error {
	s, err := h.svcs.Safety.GetSafety(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(s)
}

func (h *handlers) upsertSafety(c *fiber.Ctx) error {
	var in domain.SafetyInput
	if err := bind(c, &in); err != nil {
		return err
	}
	s, err := h.svcs.Safety.UpsertSafety(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

func (h *handlers) createSensor(c *fiber.Ctx) error {
	var in domain.SensorInput
	if err := bind(c, &in); err != nil {
		return err
	}
	s, err := h.svcs.Sensors.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// listSensors accepts an optional ?damId= filter.
func (h *handlers) listSensors(c *fiber.Ctx) error {
	out, err := h.svcs.Sensors.List(c.UserContext(), c.Query("damId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) updateSensor(c *fiber.Ctx) error {
	var in domain.SensorInput
	if err := bind(c, &in); err != nil {
		return err
	}
	s, err := h.svcs.Sensors.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

func (h *handlers) deleteSensor(c *fiber.Ctx) error {
	if err := h.svcs.Sensors.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Sensor deleted successfully"})
}

func (h *handlers) createInfo(c *fiber.Ctx) error {
	var in domain.SupportingInfoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	info, err := h.svcs.SupportingInfo.Create(c.UserContext(), c.Params("damId"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

func (h *handlers) listInfo(c *fiber.Ctx) error {
	out, err := h.svcs.SupportingInfo.ListByDam(c.UserContext(), c.Params("damId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) updateInfo(c *fiber.Ctx) error {
	var in domain.SupportingInfoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	info, err := h.svcs.SupportingInfo.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(info)
}

func (h *handlers) deleteInfo(c *fiber.Ctx) error {
	if err := h.svcs.SupportingInfo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}

func (h *handlers) createUsage(c *fiber.Ctx) error {
	var in domain.WaterUsageInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := h.svcs.Usage.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *handlers) listUsage(c *fiber.Ctx) error {
	out, err := h.svcs.Usage.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) usageByDam(c *fiber.Ctx) error {
	u, err := h.svcs.Usage.GetByDam(c.UserContext(), c.Params("damId"))
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *handlers) usageByState(c *fiber.Ctx) error {
	t, err := h.svcs.Usage.TotalsByState(c.UserContext(), c.Params("stateName"))
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (h *handlers) usageByRiver(c *fiber.Ctx) error {
	t, err := h.svcs.Usage.TotalsByRiver(c.UserContext(), c.Params("riverId"))
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (h *handlers) updateUsage(c *fiber.Ctx) error {
	var in domain.WaterUsageInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := h.svcs.Usage.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *handlers) deleteUsage(c *fiber.Ctx) error {
	if err := h.svcs.Usage.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Usage info deleted"})
}
