package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/auth"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/assets"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/cache"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/validation"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/logging"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/metrics"
)

const (
	msgInvalidForm    = "Invalid form submission"
	msgInvalidRequest = "Invalid request"
	msgNoLinks        = "Please provide at least one link"
	msgUploadFailed   = "Failed to upload image"
	msgStoreFailed    = "Failed to save project"
	msgDeleteFailed   = "Failed to delete project"
	msgSlugTaken      = "slug already in use"
)

// Store is the write side of the record store.
type Store interface {
	Insert(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, in domain.ProjectInput, img domain.ImageChange) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string) error
}

// ImageFile is an uploaded file as received from the form.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func (f *ImageFile) present() bool {
	return f != nil && f.Size > 0
}

// Pipeline runs admin mutations: authorize, validate, upload, write, invalidate.
// Any failing stage ends the request with a Failure.
type Pipeline struct {
	store         Store
	uploader      assets.Uploader
	cache         Invalidator
	metrics       *metrics.Metrics
	maxImageBytes int64
}

func NewPipeline(store Store, uploader assets.Uploader, inv Invalidator, m *metrics.Metrics, maxImageBytes int64) *Pipeline {
	return &Pipeline{
		store:         store,
		uploader:      uploader,
		cache:         inv,
		metrics:       m,
		maxImageBytes: maxImageBytes,
	}
}

// Create adds a project.
func (p *Pipeline) Create(ctx context.Context, form validation.Form, file *ImageFile) Outcome {
	logger := logging.NewLogger(ctx)

	if out, ok := authorize(ctx); !ok {
		return p.done("create", out)
	}

	in, err := validation.Project(form)
	verr := p.checkImage(err, file)
	if verr != nil {
		return p.done("create", invalid(verr, msgInvalidForm))
	}

	if file.present() {
		url, out, ok := p.upload(ctx, in.Slug, file)
		if !ok {
			return p.done("create", out)
		}
		in.ImageURL = &url
	}

	created, err := p.store.Insert(ctx, in)
	if err != nil {
		logger.LogError("CreateProject", err)
		return p.done("create", storeFailure(err, msgStoreFailed))
	}

	p.invalidate(ctx, cache.MutationTags("", created.Slug))
	logger.LogInfof("CreateProject", "slug=%s id=%s", created.Slug, created.ID)
	return p.done("create", success(created))
}

// Update edits a project. An uploaded file wins over removeImage, which wins
// over a typed imageUrl; with none of them the stored image is kept.
func (p *Pipeline) Update(ctx context.Context, form validation.Form, file *ImageFile) Outcome {
	logger := logging.NewLogger(ctx)

	if out, ok := authorize(ctx); !ok {
		return p.done("update", out)
	}

	upd, err := validation.Update(form)
	verr := p.checkImage(err, file)
	if verr != nil {
		return p.done("update", invalid(verr, msgInvalidForm))
	}

	change := domain.ImageChange{Mode: domain.ImageKeep}
	switch {
	case file.present():
		url, out, ok := p.upload(ctx, upd.Input.Slug, file)
		if !ok {
			return p.done("update", out)
		}
		change = domain.ImageChange{Mode: domain.ImageSet, URL: url}
	case upd.RemoveImage:
		change = domain.ImageChange{Mode: domain.ImageClear}
	case upd.Input.ImageURL != nil && *upd.Input.ImageURL != "":
		change = domain.ImageChange{Mode: domain.ImageSet, URL: *upd.Input.ImageURL}
	}

	updated, err := p.store.Update(ctx, upd.ID, upd.Input, change)
	if err != nil {
		logger.LogError("UpdateProject", err)
		return p.done("update", storeFailure(err, msgStoreFailed))
	}

	p.invalidate(ctx, cache.MutationTags(upd.CurrentSlug, updated.Slug))
	logger.LogInfof("UpdateProject", "id=%s slug=%s previous_slug=%s", updated.ID, updated.Slug, upd.CurrentSlug)
	return p.done("update", success(updated))
}

// Delete removes a project. The slug is only used to invalidate its page.
func (p *Pipeline) Delete(ctx context.Context, form validation.Form) Outcome {
	logger := logging.NewLogger(ctx)

	if out, ok := authorize(ctx); !ok {
		return p.done("delete", out)
	}

	req, err := validation.Delete(form)
	if err != nil {
		var verr *domain.ValidationError
		errors.As(err, &verr)
		return p.done("delete", invalid(verr, msgInvalidRequest))
	}

	if err := p.store.Delete(ctx, req.ID); err != nil {
		logger.LogError("DeleteProject", err)
		return p.done("delete", storeFailure(err, msgDeleteFailed))
	}

	p.invalidate(ctx, cache.MutationTags(req.Slug, ""))
	logger.LogInfof("DeleteProject", "id=%s slug=%s", req.ID, req.Slug)
	return p.done("delete", Outcome{OK: true})
}

func authorize(ctx context.Context) (Outcome, bool) {
	_, err := auth.RequireAdmin(ctx)
	switch {
	case err == nil:
		return Outcome{}, true
	case errors.Is(err, auth.ErrUnauthenticated):
		return fail(Unauthenticated, auth.MsgSignIn), false
	default:
		return fail(Unauthorized, auth.MsgForbidden), false
	}
}

// checkImage folds the image checks into the form validation result so the
// caller sees every field problem at once.
func (p *Pipeline) checkImage(formErr error, file *ImageFile) *domain.ValidationError {
	verr := &domain.ValidationError{}
	if formErr != nil && !errors.As(formErr, &verr) {
		verr = &domain.ValidationError{}
		verr.Add("form", formErr.Error())
	}
	if file.present() {
		var imgErr *domain.ValidationError
		if errors.As(validation.Image(file.ContentType, file.Size, p.maxImageBytes), &imgErr) {
			for field, msgs := range imgErr.Fields {
				for _, m := range msgs {
					verr.Add(field, m)
				}
			}
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func (p *Pipeline) upload(ctx context.Context, slug string, file *ImageFile) (string, Outcome, bool) {
	logger := logging.NewLogger(ctx)
	start := time.Now()

	url, err := func() (string, error) {
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open upload: %w", err)
		}
		defer rc.Close()
		return p.uploader.Upload(ctx, assets.Object{
			Key:         assets.KeyFor(slug, file.Name, file.ContentType),
			Body:        rc,
			Size:        file.Size,
			ContentType: file.ContentType,
		})
	}()
	p.metrics.Upload(time.Since(start), file.Size, err)
	if err != nil {
		logger.LogError("UploadImage", err)
		return "", fail(UploadFailed, msgUploadFailed), false
	}
	return url, Outcome{}, true
}

// invalidate only logs shared-store failures; local entries are dropped regardless.
func (p *Pipeline) invalidate(ctx context.Context, tags []string) {
	if err := p.cache.Invalidate(ctx, tags...); err != nil {
		logging.NewLogger(ctx).LogWarnf("Invalidate", "tags=%v shared invalidation failed: %v", tags, err)
	}
}

func (p *Pipeline) done(op string, out Outcome) Outcome {
	outcome := "ok"
	if !out.OK {
		outcome = string(out.Failure.Kind)
	}
	p.metrics.Mutation(op, outcome)
	return out
}

func invalid(verr *domain.ValidationError, msg string) Outcome {
	out := fail(ValidationFailed, msg)
	if verr == nil {
		return out
	}
	out.Failure.Fields = verr.Fields
	if len(verr.Fields) == 1 && len(verr.Fields["links"]) > 0 {
		out.Failure.Message = msgNoLinks
	}
	return out
}

func storeFailure(err error, fallback string) Outcome {
	switch {
	case errors.Is(err, domain.ErrSlugTaken):
		return fail(StoreFailed, msgSlugTaken)
	case errors.Is(err, domain.ErrNotFound):
		return fail(StoreFailed, domain.ErrNotFound.Error())
	default:
		return fail(StoreFailed, fallback)
	}
}
