// Package tables downloads and parses the community lookup tables used for enrichment.
package tables

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meur/umaviewer/internal/config"
	"github.com/meur/umaviewer/internal/models"
)

// maxParallel bounds concurrent downloads
const maxParallel = 3

// Tables is the set of lookup tables for one enrichment run. Any of them may be empty.
type Tables struct {
	SkillsGlobal map[string]models.SkillName   // official Global names
	SkillsJP     map[string]models.SkillName   // JP names with EN translations
	SkillData    map[string]models.SkillDetail // conditions, effects, durations
	UmasGlobal   map[string]models.Uma         // accurate EN outfit names, fewer characters
	UmasFull     map[string]models.Uma         // all characters, JP outfit names
	Text         models.TextData               // UmaTL text categories
}

// HasNames reports whether any name table loaded. Without them output carries ids only.
func (t *Tables) HasNames() bool {
	return len(t.SkillsGlobal) > 0 || len(t.SkillsJP) > 0 || len(t.UmasGlobal) > 0
}

// Fetcher downloads JSON documents with a fixed timeout
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates a Fetcher
func NewFetcher(timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch GETs url and returns the body. Non-2xx responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

type source struct {
	name  string
	url   string
	parse func(raw []byte, t *Tables) (int, error)
}

func sourcesOf(s config.Sources) []source {
	return []source{
		{"skillnames.json (global)", s.SkillNamesGlobal, func(raw []byte, t *Tables) (int, error) {
			m, err := ParseSkillNames(raw, models.KindOfficial)
			t.SkillsGlobal = m
			return len(m), err
		}},
		{"skillnames.json (jp)", s.SkillNamesJP, func(raw []byte, t *Tables) (int, error) {
			m, err := ParseSkillNames(raw, models.KindTranslated)
			t.SkillsJP = m
			return len(m), err
		}},
		{"skill_data.json", s.SkillData, func(raw []byte, t *Tables) (int, error) {
			m, err := ParseSkillData(raw)
			t.SkillData = m
			return len(m), err
		}},
		{"umas.json (global)", s.UmasGlobal, func(raw []byte, t *Tables) (int, error) {
			m, err := ParseUmas(raw)
			t.UmasGlobal = m
			return len(m), err
		}},
		{"umas.json (full)", s.UmasFull, func(raw []byte, t *Tables) (int, error) {
			m, err := ParseUmas(raw)
			t.UmasFull = m
			return len(m), err
		}},
		{"text_data_dict.json", s.TextData, func(raw []byte, t *Tables) (int, error) {
			m, err := ParseTextData(raw)
			t.Text = m
			return len(m), err
		}},
	}
}

// Load downloads every table. A table that fails to download or parse is logged as a
// warning and left empty; Load itself never fails.
func (f *Fetcher) Load(ctx context.Context, sources config.Sources) *Tables {
	t := &Tables{}

	// Each source writes a distinct field of t.
	var g errgroup.Group
	g.SetLimit(maxParallel)
	for _, src := range sourcesOf(sources) {
		g.Go(func() error {
			if src.url == "" {
				f.logger.Warn("no URL configured, skipping table", zap.String("table", src.name))
				return nil
			}
			f.logger.Info("downloading table", zap.String("table", src.name))
			raw, err := f.Fetch(ctx, src.url)
			if err != nil {
				f.logger.Warn("could not download table", zap.String("table", src.name), zap.Error(err))
				return nil
			}
			n, err := src.parse(raw, t)
			if err != nil {
				f.logger.Warn("could not parse table", zap.String("table", src.name), zap.Error(err))
				return nil
			}
			f.logger.Info("loaded table", zap.String("table", src.name), zap.Int("entries", n))
			return nil
		})
	}
	_ = g.Wait()

	return t
}
