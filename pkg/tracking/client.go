package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/riskforge/payrisk/pkg"
	"github.com/riskforge/payrisk/pkg/utils"
	"go.uber.org/zap"
)

// Run is the document posted to the experiment tracker after a training
// run: parameters in, metrics out.
type Run struct {
	RunID      string             `json:"runId"`
	Experiment string             `json:"experiment"`
	StartedAt  time.Time          `json:"startedAt"`
	DurationMs int64              `json:"durationMs"`
	Params     map[string]string  `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Client records training runs with an external experiment tracker.
// Recording is best effort: a run that cannot be delivered is logged and
// dropped, never failed back into the training pipeline.
type Client interface {
	LogRun(ctx context.Context, run Run)
}

type ClientImpl struct {
	logger     *zap.Logger
	baseURL    string
	experiment string
	client     *http.Client
}

// NewClient builds a tracking client for the given base URL. An empty URL
// disables tracking.
func NewClient(logger *zap.Logger, baseURL, experiment string) Client {
	if utils.IsEmpty(baseURL) {
		logger.Info("experiment tracking disabled")
		return NoopClient{}
	}
	return &ClientImpl{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		experiment: experiment,
		client:     utils.NewHTTPClient(utils.WithClientTimeout(5 * time.Second)),
	}
}

func (c *ClientImpl) LogRun(ctx context.Context, run Run) {
	run.Experiment = c.experiment
	body, err := json.Marshal(run)
	if err != nil {
		c.logger.Error("failed to encode tracking run", zap.Error(err))
		return
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/runs", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("tracking server returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return backoff.Permanent(fmt.Errorf("tracking server rejected run: %d", resp.StatusCode))
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		c.logger.Warn("failed to record training run",
			zap.String(pkg.RunId, run.RunID), zap.Error(err))
		return
	}
	c.logger.Info("training run recorded",
		zap.String(pkg.RunId, run.RunID), zap.String("experiment", run.Experiment))
}

// NoopClient is the tracker used when no tracking URL is configured.
type NoopClient struct{}

func (NoopClient) LogRun(context.Context, Run) {}
