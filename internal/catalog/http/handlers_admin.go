package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/service"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/validation"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/logging"
)

// multipart overhead allowed on top of the image limit
const formSlack = 1 << 20

func (h *Handler) adminList(c *gin.Context) {
	items, err := h.catalog.All(c.Request.Context())
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("AdminListProjects", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) create(c *gin.Context) {
	form, file, err := h.readForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid form body"})
		return
	}
	respond(c, http.StatusCreated, h.mutations.Create(c.Request.Context(), form, file))
}

func (h *Handler) update(c *gin.Context) {
	form, file, err := h.readForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid form body"})
		return
	}
	form["projectId"] = c.Param("id")
	respond(c, http.StatusOK, h.mutations.Update(c.Request.Context(), form, file))
}

func (h *Handler) delete(c *gin.Context) {
	form := validation.Form{
		"projectId": c.Param("id"),
		"slug":      c.Query("slug"),
	}
	if form["slug"] == "" {
		form["slug"] = c.PostForm("slug")
	}
	respond(c, http.StatusOK, h.mutations.Delete(c.Request.Context(), form))
}

// readForm accepts multipart and urlencoded bodies. The image part is optional.
func (h *Handler) readForm(c *gin.Context) (validation.Form, *service.ImageFile, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageBytes+formSlack)

	err := c.Request.ParseMultipartForm(h.maxImageBytes + formSlack)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, err
	}
	if errors.Is(err, http.ErrNotMultipart) {
		if err := c.Request.ParseForm(); err != nil {
			return nil, nil, err
		}
	}

	form := validation.Form{}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil, nil
		}
		return nil, nil, err
	}
	return form, imageFile(fh), nil
}

func imageFile(fh *multipart.FileHeader) *service.ImageFile {
	return &service.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func respond(c *gin.Context, okStatus int, out service.Outcome) {
	if out.OK {
		body := gin.H{"ok": true}
		if out.Project != nil {
			body["project"] = out.Project
		}
		c.JSON(okStatus, body)
		return
	}

	f := out.Failure
	switch f.Kind {
	case service.Unauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": f.Message, "redirect": "/admin/login"})
	case service.Unauthorized:
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": f.Message})
	case service.ValidationFailed:
		body := gin.H{"ok": false, "error": f.Message}
		if len(f.Fields) > 0 {
			body["issues"] = f.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case service.UploadFailed:
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": f.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": f.Message})
	}
}
