// internal/workers/assessment/route-assessment-followup/handler.go
package routeassessmentfollowup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"roi-assessment-workers/internal/common/errors"
	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/internal/common/metrics"
	"roi-assessment-workers/internal/models"
	"roi-assessment-workers/pkg/roi"
)

const (
	TaskType = "route-assessment-followup"
)

var routes = map[roi.FitLevel]struct {
	action    models.FollowUpAction
	qualified bool
}{
	roi.FitLevelHigh:   {models.FollowUpFreeTrial, true},
	roi.FitLevelMedium: {models.FollowUpFreeTrial, true},
	roi.FitLevelLow:    {models.FollowUpConsultation, false},
}

type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewInputParseFailedError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	level, err := resolveLevel(input)
	if err != nil {
		return nil, err
	}

	route := routes[level]
	metrics.FollowUpsRouted.WithLabelValues(string(route.action)).Inc()

	h.logger.Info("follow-up routed", map[string]interface{}{
		"fitLevel":       string(level),
		"followUpAction": string(route.action),
		"qualified":      route.qualified,
	})

	return &Output{
		FitLevel:       string(level),
		FitLabel:       level.Label(),
		FollowUpAction: route.action,
		Qualified:      route.qualified,
	}, nil
}

// resolveLevel prefers an explicit level and falls back to the score.
func resolveLevel(input *Input) (roi.FitLevel, error) {
	rawLevel, score := input.FitLevel, input.FitScore
	if input.Assessment != nil {
		if rawLevel == "" {
			rawLevel = input.Assessment.FitLevel
		}
		if score == nil {
			score = input.Assessment.FitScore
		}
	}

	if rawLevel = strings.ToLower(strings.TrimSpace(rawLevel)); rawLevel != "" {
		level := roi.FitLevel(rawLevel)
		if !level.Valid() {
			return "", errors.NewFollowUpRoutingFailedError(fmt.Sprintf("unknown fitLevel %q", rawLevel))
		}
		return level, nil
	}

	if score == nil {
		return "", errors.NewFollowUpRoutingFailedError("fitLevel or fitScore is required")
	}
	if *score < 0 || *score > 100 {
		return "", errors.NewFollowUpRoutingFailedError(fmt.Sprintf("fitScore %d outside 0-100", *score))
	}
	return roi.LevelForScore(*score), nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	res := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.RecordJobFailure(TaskType, string(res.Standard.Code))
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
