package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ribo916/postman-builder/pkg/builder/config"
	"github.com/ribo916/postman-builder/pkg/builder/models"
)

// Runner wires the pipeline stages behind a single entry point shared by
// the CLI, the HTTP handlers, and the scheduled job. The stages run
// strictly in sequence: load, lint, convert, transform, publish.
type Runner struct {
	cfg       config.Config
	specs     *SpecService
	linter    *LintService
	converter *ConvertService
	transform *TransformService
	publisher *PublishService
}

// NewRunner wires the services from the given configuration.
func NewRunner(cfg config.Config) *Runner {
	return &Runner{
		cfg:       cfg,
		specs:     NewSpecService(),
		linter:    NewLintService(),
		converter: NewConvertService(),
		transform: NewTransformService(),
		publisher: NewPublishService(cfg.PostmanBaseURL),
	}
}

// Run performs one full build from the configured spec source.
func (r *Runner) Run(ctx context.Context) (*models.PublishResult, error) {
	oas, err := r.specs.Load(ctx, r.cfg.SpecSource)
	if err != nil {
		return nil, err
	}
	log.Printf("[spec] loaded %s (%d bytes)", r.cfg.SpecSource, len(oas))

	if r.cfg.LintSpec {
		res := r.linter.Lint(oas)
		log.Printf("[lint] errors=%d warnings=%d score=%d", res.Failures, res.Warnings, res.Score)
	}

	return r.Publish(ctx, oas)
}

// BuildCollection converts and transforms spec bytes without touching disk
// or the Postman API.
func (r *Runner) BuildCollection(oas []byte) (*models.Collection, error) {
	col, err := r.converter.Convert(oas)
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	r.transform.Apply(col)
	col.Info.Name = r.publisher.CollectionName(r.cfg.ProductName)
	return col, nil
}

// Publish builds the collection from spec bytes, writes the local artifact,
// and uploads it when a key is configured. The file is written before any
// upload attempt, so it survives an upload failure.
func (r *Runner) Publish(ctx context.Context, oas []byte) (*models.PublishResult, error) {
	col, err := r.BuildCollection(oas)
	if err != nil {
		return nil, err
	}
	log.Printf("[convert] built %q with %d top-level items", col.Info.Name, len(col.Item))

	if err := r.publisher.WriteLocal(col, r.cfg.OutputFile); err != nil {
		return nil, err
	}
	log.Printf("[publish] wrote %s", r.cfg.OutputFile)

	if r.cfg.APIKey == "" {
		log.Printf("[publish] POSTMAN_API_KEY not set, skipping upload")
		return &models.PublishResult{Name: col.Info.Name, File: r.cfg.OutputFile}, nil
	}

	res, err := r.publisher.Upload(ctx, r.cfg.OutputFile, r.cfg.WorkspaceID, r.cfg.APIKey)
	if err != nil {
		return nil, err
	}
	res.File = r.cfg.OutputFile
	res.Uploaded = true
	if res.Name == "" {
		res.Name = col.Info.Name
	}
	log.Printf("[publish] created collection %s", res.UID)
	return res, nil
}
