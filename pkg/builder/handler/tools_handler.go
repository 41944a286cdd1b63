package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribo916/postman-builder/pkg/builder/helper/problem"
	"github.com/ribo916/postman-builder/pkg/builder/models"
	"github.com/ribo916/postman-builder/pkg/builder/services"
)

type ToolsController struct {
	Runner *services.Runner
	Specs  *services.SpecService
	Linter *services.LintService
}

func NewToolsController(runner *services.Runner, specs *services.SpecService, linter *services.LintService) *ToolsController {
	return &ToolsController{Runner: runner, Specs: specs, Linter: linter}
}

/* ------------------------- CONVERT ------------------------- */

// POST /v1/postman/convert (body = {oasUrl} or {oasBody})
func (tc *ToolsController) ConvertPostmanCollection(c *gin.Context, body *models.OasInput) error {
	oas, err := tc.Specs.Resolve(c.Request.Context(), body)
	if err != nil {
		return problem.NewBadRequest(body.OasUrl, "could not load OpenAPI input")
	}

	col, err := tc.Runner.BuildCollection(oas)
	if err != nil {
		return problem.NewBadRequest(body.OasUrl, err.Error())
	}

	name := services.SanitizeFilename(col.Info.Name)
	if name == "" {
		name = "postman-collection"
	}
	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return problem.NewInternalServerError(err.Error())
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment; filename=\""+name+".postman_collection.json\"")
	c.Data(http.StatusOK, "application/json", data)
	return nil
}

/* ------------------------- PUBLISH ------------------------- */

// POST /v1/postman/publish
func (tc *ToolsController) PublishPostmanCollection(c *gin.Context, body *models.OasInput) (*models.PublishResult, error) {
	oas, err := tc.Specs.Resolve(c.Request.Context(), body)
	if err != nil {
		return nil, problem.NewBadRequest(body.OasUrl, "could not load OpenAPI input")
	}

	res, err := tc.Runner.Publish(c.Request.Context(), oas)
	if err != nil {
		return nil, problem.NewBadGateway(body.OasUrl, err.Error())
	}
	return res, nil
}

/* ------------------------- LINT ------------------------- */

// POST /v1/lint
func (tc *ToolsController) LintOAS(c *gin.Context, body *models.OasInput) (*models.LintResult, error) {
	oas, err := tc.Specs.Resolve(c.Request.Context(), body)
	if err != nil {
		return nil, problem.NewBadRequest(body.OasUrl, "could not load OpenAPI input")
	}
	return tc.Linter.Lint(oas), nil
}
