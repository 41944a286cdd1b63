package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/ribo916/postman-builder/pkg/builder"
	"github.com/ribo916/postman-builder/pkg/builder/config"
	"github.com/ribo916/postman-builder/pkg/builder/handler"
	"github.com/ribo916/postman-builder/pkg/builder/helper/problem"
	"github.com/ribo916/postman-builder/pkg/builder/jobs"
	"github.com/ribo916/postman-builder/pkg/builder/services"
)

func init() {
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		if apiErr, ok := err.(problem.APIError); ok {
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		internal := problem.NewInternalServerError(err.Error())
		c.Header("Content-Type", "application/problem+json")
		return internal.Status, internal
	})
}

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	runner := services.NewRunner(cfg)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve(cfg, runner)
		return
	}

	if _, err := runner.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cfg config.Config, runner *services.Runner) {
	controller := handler.NewToolsController(runner, services.NewSpecService(), services.NewLintService())
	router := builder.NewRouter(cfg.APIVersion, controller)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.PublishSchedule != "" {
		jobs.SchedulePublish(ctx, runner, cfg.PublishSchedule)
	}

	log.Printf("Server listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, router))
}
