package sampledata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/pkg/logger"
)

// ErrMismatch reports a service answer that disagrees with the generated data.
var ErrMismatch = errors.New("service disagrees with generated data")

type envelope struct {
	View  string          `json:"view"`
	Count int             `json:"count"`
	Empty bool            `json:"empty"`
	Data  json.RawMessage `json:"data"`
}

type probe struct {
	path  string
	check func(envelope) error
}

// Verify probes every view of the service at cfg.BaseURL concurrently and
// checks the unfiltered numbers against expected.
func Verify(ctx context.Context, cfg *Config, expected Result) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	client := &http.Client{Timeout: cfg.Timeout}

	if err := checkHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	probes := []probe{
		{path: "/api/v1/overview", check: overviewCheck(expected)},
		{path: "/api/v1/map", check: mapCheck},
		{path: "/api/v1/medals?n=5", check: nonEmpty},
		{path: "/api/v1/participation", check: nonEmpty},
		{path: "/api/v1/disciplines/by-year", check: nonEmpty},
		{path: "/api/v1/disciplines/tree", check: nonEmpty},
		{path: "/api/v1/disciplines/age", check: nonEmpty},
		{path: "/api/v1/athletes/distribution?field=height_cm&group_by=gender", check: nonEmpty},
		{path: "/api/v1/athletes/height-weight?color=medal", check: nonEmpty},
		{path: "/api/v1/summary?field=age&group_by=discipline_grouped", check: nonEmpty},
		{path: "/api/v1/overview?noc=ZZZ", check: emptyView},
	}

	var succeeded, failed int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, cfg.Workers))
	for _, p := range probes {
		eg.Go(func() error {
			env, err := getView(egCtx, client, cfg.BaseURL+p.path)
			if err == nil {
				err = p.check(env)
			}
			if err != nil {
				atomic.AddInt64(&failed, 1)
				return fmt.Errorf("%s: %w", p.path, err)
			}
			atomic.AddInt64(&succeeded, 1)
			if cfg.Verbose {
				logger.Get().Info(egCtx, "probe passed", logger.String("path", p.path), logger.Int("count", env.Count))
			}
			return nil
		})
	}
	err := eg.Wait()

	stats.Probes = len(probes)
	stats.Succeeded = int(atomic.LoadInt64(&succeeded))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Duration = time.Since(stats.StartTime)
	return stats, err
}

func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	body, status, err := get(ctx, client, baseURL+"/healthz")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("healthz returned %d: %s", status, body)
	}
	return nil
}

func getView(ctx context.Context, client *http.Client, url string) (envelope, error) {
	body, status, err := get(ctx, client, url)
	if err != nil {
		return envelope{}, err
	}
	if status != http.StatusOK {
		return envelope{}, fmt.Errorf("status %d: %s", status, body)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, fmt.Errorf("decode view: %w", err)
	}
	return env, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}

func overviewCheck(expected Result) func(envelope) error {
	return func(env envelope) error {
		var got Result
		if err := json.Unmarshal(env.Data, &got); err != nil {
			return fmt.Errorf("decode overview: %w", err)
		}
		if got.Rows != expected.Rows || got.Athletes != expected.Athletes || got.Countries != expected.Countries {
			return fmt.Errorf("%w: overview rows=%d athletes=%d countries=%d, generated rows=%d athletes=%d countries=%d",
				ErrMismatch, got.Rows, got.Athletes, got.Countries, expected.Rows, expected.Athletes, expected.Countries)
		}
		return nil
	}
}

func mapCheck(env envelope) error {
	var points []struct {
		NOC         string `json:"noc"`
		TotalMedals int    `json:"total_medals"`
	}
	if err := json.Unmarshal(env.Data, &points); err != nil {
		return fmt.Errorf("decode map: %w", err)
	}
	for _, p := range points {
		if p.NOC == nocWithoutCoords {
			return fmt.Errorf("%w: %s has no coordinates but is on the map", ErrMismatch, p.NOC)
		}
		if p.TotalMedals <= 0 {
			return fmt.Errorf("%w: %s has no medals but is on the map", ErrMismatch, p.NOC)
		}
	}
	return nil
}

func nonEmpty(env envelope) error {
	if env.Empty {
		return fmt.Errorf("%w: view %s is empty", ErrMismatch, env.View)
	}
	return nil
}

func emptyView(env envelope) error {
	if !env.Empty {
		return fmt.Errorf("%w: view %s should be empty", ErrMismatch, env.View)
	}
	return nil
}
