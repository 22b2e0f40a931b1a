package server

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nikogura/career-roadmap/pkg/layout"
	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/recommend"
	"github.com/nikogura/career-roadmap/pkg/store"
	"github.com/pkg/errors"
)

// Health reports liveness.
func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Fields lists the fields with curated recommendations.
func (s *Server) Fields(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"fields": recommend.KnownFields()})
}

// Recommendations returns the resolved lists for the field query parameter,
// which defaults to the general field.
func (s *Server) Recommendations(c *fiber.Ctx) error {
	return c.JSON(recommend.Resolve(c.Query("field", profile.DefaultField)))
}

// GenerateRoadmap renders the posted profile and returns the PDF.
func (s *Server) GenerateRoadmap(c *fiber.Ctx) error {
	logger := s.requestLogger(c)

	p, err := profile.Parse(c.Body())
	if err != nil {
		return badProfile(c, err)
	}

	if !s.guard.TryAcquire(1) {
		logger.Warn("roadmap.busy")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ErrBusy.Error()})
	}
	defer s.guard.Release(1)

	out, err := s.generator.Generate(c.UserContext(), p)
	if err != nil {
		logger.Error("roadmap.failed", slog.String("error", err.Error()))
		body := fiber.Map{"error": err.Error()}
		var genErr *layout.GenerationError
		if errors.As(err, &genErr) {
			body["stage"] = string(genErr.Stage)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	if s.archive != nil {
		saved, saveErr := s.archive.Save(c.UserContext(), store.Record{
			FileName: out.FileName,
			FullName: p.Name(),
			Field:    out.Recommendations.Field,
			Curated:  out.Recommendations.Curated,
			Content:  out.Bytes,
		})
		if saveErr != nil {
			logger.Warn("roadmap.archive_failed", slog.String("error", saveErr.Error()))
		} else {
			c.Set(HeaderRoadmapID, saved.ID.String())
		}
	}

	return sendPDF(c, out.FileName, out.Bytes)
}

// GetRoadmap streams an archived roadmap.
func (s *Server) GetRoadmap(c *fiber.Ctx) error {
	if s.archive == nil {
		return fiber.NewError(fiber.StatusNotFound, "roadmap archive is not configured")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid roadmap id")
	}

	rec, err := s.archive.Get(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		s.requestLogger(c).Error("roadmap.archive_get_failed", slog.String("error", err.Error()))
		return err
	}

	return sendPDF(c, rec.FileName, rec.Content)
}

func sendPDF(c *fiber.Ctx, fileName string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Status(fiber.StatusOK).Send(data)
}

func badProfile(c *fiber.Ctx, err error) error {
	var shapeErr *profile.ShapeError
	if !errors.As(err, &shapeErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid profile: " + err.Error()})
	}

	fields := make([]fiber.Map, 0, len(shapeErr.Errors))
	for _, fe := range shapeErr.Errors {
		fields = append(fields, fiber.Map{"field": fe.Field, "message": fe.Message})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "invalid profile",
		"fields": fields,
	})
}
