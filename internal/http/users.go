package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/service"
)

const maxProfileImage = 5 * 1024 * 1024

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type refreshRequest struct {
	Token string `json:"token" form:"token"`
}

// profileImage reads the optional profileImage part of a multipart body.
// Oversized or unreadable files are dropped.
func profileImage(c *fiber.Ctx) *service.ProfileImage {
	fh, err := c.FormFile("profileImage")
	if err != nil {
		return nil
	}
	if fh.Size > maxProfileImage {
		log.Warn().Int64("size", fh.Size).Msg("profile image too large, ignored")
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		log.Warn().Err(err).Msg("open profile image")
		return nil
	}
	defer f.Close()
	body, err := io.ReadAll(f)
	if err != nil {
		log.Warn().Err(err).Msg("read profile image")
		return nil
	}
	return &service.ProfileImage{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Body:        body,
	}
}

func (h *handlers) register(c *fiber.Ctx) error {
	var in domain.RegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}
	sess, err := h.svcs.Identity.Register(c.UserContext(), in, profileImage(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Registration successful",
		"token":        sess.Token,
		"refreshToken": sess.RefreshToken,
		"user":         sess.User,
	})
}

func (h *handlers) login(c *fiber.Ctx) error {
	var in loginRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	sess, err := h.svcs.Identity.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Login successful",
		"token":        sess.Token,
		"refreshToken": sess.RefreshToken,
		"user":         sess.User,
	})
}

func (h *handlers) refresh(c *fiber.Ctx) error {
	var in refreshRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	token, err := h.svcs.Identity.Refresh(c.UserContext(), in.Token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "accessToken": token})
}

func (h *handlers) profile(c *fiber.Ctx) error {
	u, err := h.svcs.Identity.Profile(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func (h *handlers) savedDams(c *fiber.Ctx) error {
	out, err := h.svcs.Identity.SavedDams(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *handlers) toggleSavedDam(c *fiber.Ctx) error {
	out, err := h.svcs.Identity.ToggleSavedDam(c.UserContext(), userID(c), c.Params("damId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
