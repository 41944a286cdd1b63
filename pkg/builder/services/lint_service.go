package services

import (
	"time"

	"github.com/daveshanley/vacuum/motor"
	"github.com/daveshanley/vacuum/rulesets"
	"github.com/google/uuid"
	"github.com/ribo916/postman-builder/pkg/builder/models"
)

// LintService runs the vacuum recommended ruleset against a spec before it
// goes into conversion. Findings are advisory: the pipeline logs them and
// moves on.
type LintService struct {
	ruleSet *rulesets.RuleSet
}

// NewLintService constructor.
func NewLintService() *LintService {
	return &LintService{
		ruleSet: rulesets.BuildDefaultRuleSets().GenerateOpenAPIRecommendedRuleSet(),
	}
}

// Lint applies the ruleset and folds the findings into a LintResult.
func (s *LintService) Lint(oas []byte) *models.LintResult {
	now := time.Now()
	execution := motor.ApplyRulesToRuleSet(&motor.RuleSetExecution{
		RuleSet: s.ruleSet,
		Spec:    oas,
	})

	var msgs []models.LintMessage
	for _, execErr := range execution.Errors {
		id := uuid.New().String()
		msgs = append(msgs, models.LintMessage{
			ID:        id,
			Code:      "lint-exec",
			Severity:  "error",
			CreatedAt: now,
			Infos: []models.LintMessageInfo{{
				ID:            uuid.New().String(),
				LintMessageID: id,
				Message:       execErr.Error(),
			}},
		})
	}
	for _, r := range execution.Results {
		id := uuid.New().String()
		code := ""
		severity := "error"
		if r.Rule != nil {
			code = r.Rule.Id
			severity = normalizeSeverity(r.Rule.Severity)
		}
		msgs = append(msgs, models.LintMessage{
			ID:        id,
			Code:      code,
			Severity:  severity,
			CreatedAt: now,
			Infos: []models.LintMessageInfo{{
				ID:            uuid.New().String(),
				LintMessageID: id,
				Message:       r.Message,
				Path:          r.Path,
			}},
		})
	}

	var errCount, warnCount int
	for _, m := range msgs {
		switch m.Severity {
		case "error":
			errCount++
		case "warning":
			warnCount++
		}
	}

	// Score starts at 100 and loses 10 per error and 1 per warning.
	score := 100 - errCount*10 - warnCount
	if score < 0 {
		score = 0
	}

	return &models.LintResult{
		ID:        uuid.New().String(),
		Successes: errCount == 0,
		Failures:  errCount,
		Warnings:  warnCount,
		Score:     score,
		Messages:  msgs,
		CreatedAt: now,
	}
}

func normalizeSeverity(sev string) string {
	switch sev {
	case "warn", "warning":
		return "warning"
	case "info", "hint":
		return sev
	case "":
		return "error"
	default:
		return sev
	}
}
