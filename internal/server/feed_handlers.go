package server

import (
	"vitrine/internal/models"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.ListPosts(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/feed. The body is multipart: a texto field
// plus optional foto and video file parts. Media is stored before the post
// row is written so a failed upload never leaves a dangling post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	texto := c.FormValue("texto")

	var fotoPath, videoPath string
	if fh, err := c.FormFile("foto"); err == nil && fh != nil {
		content, readErr := readFormFile(fh)
		if readErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read foto upload"))
		}
		path, saveErr := s.mediaService.SaveImage(fh.Filename, content)
		if saveErr != nil {
			return models.RespondWithAppError(c, saveErr)
		}
		fotoPath = path
	}
	if fh, err := c.FormFile("video"); err == nil && fh != nil {
		content, readErr := readFormFile(fh)
		if readErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read video upload"))
		}
		path, saveErr := s.mediaService.SaveVideo(fh.Filename, content)
		if saveErr != nil {
			return models.RespondWithAppError(c, saveErr)
		}
		videoPath = path
	}

	post, err := s.feedService.AppendPost(c.Context(), service.AppendPostInput{
		Texto: texto,
		Foto:  fotoPath,
		Video: videoPath,
	})
	if err != nil {
		// Roll back stored media so a failed insert leaves no orphans.
		if fotoPath != "" {
			s.mediaService.Remove(fotoPath)
		}
		if videoPath != "" {
			s.mediaService.Remove(videoPath)
		}
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/feed/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.DeletePost(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// AddComment handles POST /api/feed/:id/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Autor string `json:"autor"`
		Texto string `json:"texto"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	autor := req.Autor
	if autor == "" {
		if user := currentUser(c); user != nil {
			autor = user.Login
		}
	}

	comment, err := s.feedService.AddComment(c.Context(), service.AddCommentInput{
		PostID: id,
		Autor:  autor,
		Texto:  req.Texto,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
