// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer drives the sequential import run: one creation request
// per file, throttled from the response rate-limit headers, with per-file
// accounting.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/weblink-importer/internal/ratelimit"
	"github.com/pdiddy/weblink-importer/internal/weblink"
	"github.com/pdiddy/weblink-importer/pkg/types"
)

// errorSnippetLen bounds how much of a failure response body is echoed.
const errorSnippetLen = 400

// Result holds the outcome of an import run.
type Result struct {
	Created int
	Skipped int
	Failed  int
	Files   []types.FileOutcome
}

// Total returns the number of files processed.
func (r Result) Total() int { return r.Created + r.Skipped + r.Failed }

// HasFailures reports whether any request failed.
func (r Result) HasFailures() bool { return r.Failed > 0 }

func (r *Result) record(path string, action types.FileAction, id, detail string) {
	switch action {
	case types.ActionCreated:
		r.Created++
	case types.ActionSkipped:
		r.Skipped++
	case types.ActionFailed:
		r.Failed++
	}
	r.Files = append(r.Files, types.FileOutcome{
		Path:      path,
		Action:    action,
		WeblinkID: id,
		Detail:    detail,
	})
}

// Report assembles the YAML run report for this result.
func (r Result) Report(cfg types.ImportConfig, started, finished time.Time) types.RunReport {
	return types.RunReport{
		VaultPath:  cfg.VaultPath,
		Glob:       cfg.Glob,
		StartedAt:  started,
		FinishedAt: finished,
		Created:    r.Created,
		Skipped:    r.Skipped,
		Failed:     r.Failed,
		Files:      r.Files,
	}
}

// Run imports every file in files sequentially. Unreadable and empty files
// are skipped without a network call; HTTP failures are counted and the run
// continues. A transport-level failure aborts the remaining files and is
// returned with the partial result. The throttle runs after every issued
// request, success or failure.
func Run(ctx context.Context, client *weblink.Client, files []string, cfg types.ImportConfig, w io.Writer) (Result, error) {
	var res Result
	fmt.Fprintf(w, "Found %d files in %s (pattern: %s).\n", len(files), cfg.VaultPath, cfg.Glob)

	for _, path := range files {
		name := filepath.Base(path)

		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", path, err)
			res.record(path, types.ActionSkipped, "", err.Error())
			continue
		}

		record, ok := weblink.BuildPayload(path, raw, cfg)
		if !ok {
			fmt.Fprintf(w, "skip empty: %s\n", name)
			res.record(path, types.ActionSkipped, "", "empty file")
			continue
		}

		fmt.Fprintf(w, "creating weblink: title=%q file=%q (%d chars)\n",
			record.TitleOverwrite, name, utf8.RuneCountInString(record.MDText))

		resp, err := client.Create(ctx, record)
		if err != nil {
			return res, err
		}
		fmt.Fprintf(w, "  POST /save-weblink -> %d\n", resp.StatusCode)

		if !resp.OK() {
			fmt.Fprintf(w, "  error: %s\n", snippet(resp.Body))
			res.record(path, types.ActionFailed, "", fmt.Sprintf("HTTP %d", resp.StatusCode))
			if err := throttle(ctx, resp, cfg, w); err != nil {
				return res, err
			}
			continue
		}

		// A success body that fails to decode is not fatal; the record was
		// still created.
		var created types.WeblinkResponse
		if err := json.Unmarshal(resp.Body, &created); err == nil && created.ID != "" {
			fmt.Fprintf(w, "  weblink id: %s\n", created.ID)
		} else {
			fmt.Fprintln(w, "  created (no JSON body)")
		}
		res.record(path, types.ActionCreated, created.ID, "")

		if err := throttle(ctx, resp, cfg, w); err != nil {
			return res, err
		}
	}

	fmt.Fprintf(w, "\nDone. Created: %d | Skipped: %d | Failed: %d | From: %s\n",
		res.Created, res.Skipped, res.Failed, cfg.VaultPath)
	return res, nil
}

// Plan previews what a run would do for files without touching the network.
func Plan(files []string, cfg types.ImportConfig, w io.Writer) Result {
	var res Result
	fmt.Fprintf(w, "Found %d files in %s (pattern: %s).\n", len(files), cfg.VaultPath, cfg.Glob)

	for _, path := range files {
		name := filepath.Base(path)

		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", path, err)
			res.record(path, types.ActionSkipped, "", err.Error())
			continue
		}

		record, ok := weblink.BuildPayload(path, raw, cfg)
		if !ok {
			fmt.Fprintf(w, "skip empty: %s\n", name)
			res.record(path, types.ActionSkipped, "", "empty file")
			continue
		}

		fmt.Fprintf(w, "would create: title=%q file=%q (%d chars)\n",
			record.TitleOverwrite, name, utf8.RuneCountInString(record.MDText))
		res.record(path, types.ActionCreated, "", "")
	}

	fmt.Fprintf(w, "\nPlan: %d to create, %d skipped. From: %s\n",
		res.Created, res.Skipped, cfg.VaultPath)
	return res
}

// WriteReport writes the run report to path as YAML.
func WriteReport(path string, report types.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report: %w", err)
	}
	return nil
}

// throttle sleeps according to the response's rate-limit headers, falling
// back to the configured fixed delay.
func throttle(ctx context.Context, resp *weblink.Response, cfg types.ImportConfig, w io.Writer) error {
	st := ratelimit.FromHeader(resp.Header, cfg.SleepSeconds)
	d := ratelimit.Delay(st.Remaining, st.ResetSeconds, cfg.SleepSeconds)
	if st.Exhausted() {
		fmt.Fprintf(w, "rate limit reached, sleeping %s\n", d)
	}
	return ratelimit.Wait(ctx, d)
}

func snippet(body []byte) string {
	if len(body) > errorSnippetLen {
		body = body[:errorSnippetLen]
	}
	return string(body)
}
