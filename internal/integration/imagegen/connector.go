package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/heyverne/verne-backend/internal/config"
	"github.com/heyverne/verne-backend/internal/entity"
	pkghttp "github.com/heyverne/verne-backend/pkg/http"
	"go.uber.org/zap"
)

// cartoonStyleSuffix is appended to every prompt so generated art
// stays in a preschool-friendly register regardless of the scene.
const cartoonStyleSuffix = " IMPORTANT: Make this a CARTOON illustration - simplified shapes, big eyes, rounded features, bold outlines, flat colors like animated TV shows (Adventure Time, Bluey, Paw Patrol style). Transform any people into cartoon characters. NOT realistic, NOT photographic. Pure cartoon art for young children."

const apiKeyHeader = "x-goog-api-key"

// Connector drives the multimodal image provider. Generation is
// asynchronous: Generate registers a task and returns at once, a
// background goroutine performs the provider call and resolves the
// task in the store.
type Connector struct {
	config    config.ImageGenConnectorConfig
	uploads   config.FileUploadConfig
	connector *pkghttp.Connector
	tasks     *TaskStore
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ImageGenConnectorConfig,
	uploads config.FileUploadConfig,
	tasks *TaskStore,
	logger *zap.Logger,
) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	opts := []pkghttp.HttpOpts{
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAPIKey(apiKeyHeader, cfg.APIKey),
	}
	// Providers fronted by a gateway authenticate with a bearer token
	// instead of the vendor API key header.
	if cfg.Token != "" {
		opts = append(opts, pkghttp.WithAuthToken(cfg.Token))
	}

	return &Connector{
		config:    cfg,
		uploads:   uploads,
		connector: pkghttp.NewConnector(connCfg, opts...),
		tasks:     tasks,
		logger:    logger,
	}
}

// Generate registers a new task and starts provider generation in the
// background. The returned task is always in the "generating" state;
// callers poll TaskStatus for the outcome.
func (c *Connector) Generate(ctx context.Context, prompt, referencePhotoURL string) (*entity.ImageTask, error) {
	task := &entity.ImageTask{
		ID:        "img-" + uuid.New().String(),
		Status:    entity.TaskStatusGenerating,
		CreatedAt: time.Now(),
	}
	c.tasks.Put(task)

	ctxzap.Info(ctx, "image generation task started",
		zap.String("task_id", task.ID),
		zap.Int("prompt_length", len(prompt)),
		zap.Bool("has_reference_photo", referencePhotoURL != ""),
	)

	bgCtx := ctxzap.ToContext(context.Background(), ctxzap.Extract(ctx).With(zap.String("task_id", task.ID)))
	go c.run(bgCtx, task.ID, prompt, referencePhotoURL)

	return task, nil
}

// TaskStatus reports the current state of a task.
func (c *Connector) TaskStatus(taskID string) (*entity.ImageTask, error) {
	task, ok := c.tasks.Get(taskID)
	if !ok {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

func (c *Connector) run(ctx context.Context, taskID, prompt, referencePhotoURL string) {
	// Bound the whole retry loop, not just single attempts.
	timeout := c.config.RequestTimeout * time.Duration(c.config.Retry.Attempts+1)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	url, err := c.generate(ctx, taskID, prompt, referencePhotoURL)
	generationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		generationRequestsTotal.WithLabelValues("error").Inc()
		ctxzap.Error(ctx, "image generation failed", zap.Error(err))
		c.tasks.Fail(taskID, fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err))
		return
	}

	generationRequestsTotal.WithLabelValues("success").Inc()
	ctxzap.Info(ctx, "image generation completed", zap.String("url", url))
	c.tasks.Complete(taskID, url)
}

func (c *Connector) generate(ctx context.Context, taskID, prompt, referencePhotoURL string) (string, error) {
	parts := []entity.GeneratePart{{Text: prompt + cartoonStyleSuffix}}

	if referencePhotoURL != "" {
		inline, err := c.readReferencePhoto(referencePhotoURL)
		if err != nil {
			return "", fmt.Errorf("read reference photo: %w", err)
		}
		parts = append(parts, entity.GeneratePart{InlineData: inline})
	}

	req := &entity.GenerateContentRequest{
		Contents: []entity.GenerateContent{{Role: "user", Parts: parts}},
	}

	var resp entity.GenerateContentResponse
	err := retry.Do(
		func() error {
			return c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &resp)
		},
		append(c.config.Retry.ToRetryOptions(),
			retry.Context(ctx),
			retry.OnRetry(func(n uint, err error) {
				ctxzap.Warn(ctx, "retrying image generation request",
					zap.Uint("attempt", n+1),
					zap.Error(err),
				)
			}),
		)...,
	)
	if err != nil {
		return "", fmt.Errorf("call image provider: %w", err)
	}

	return c.saveInlineImage(taskID, &resp)
}

// saveInlineImage extracts the first inline image part of the
// response and writes it under the uploads dir.
func (c *Connector) saveInlineImage(taskID string, resp *entity.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in provider response")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil {
			continue
		}

		data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return "", fmt.Errorf("decode image data: %w", err)
		}

		filename := taskID + ".png"
		if err := os.WriteFile(filepath.Join(c.uploads.UploadDir, filename), data, 0o644); err != nil {
			return "", fmt.Errorf("write image file: %w", err)
		}

		return c.uploads.PublicPrefix + "/" + filename, nil
	}

	return "", fmt.Errorf("no image data returned from provider")
}

func (c *Connector) readReferencePhoto(photoURL string) (*entity.InlineData, error) {
	// The stored URL is public-path relative; map it back to disk.
	path := photoURL
	if strings.HasPrefix(photoURL, c.uploads.PublicPrefix+"/") {
		path = filepath.Join(c.uploads.UploadDir, strings.TrimPrefix(photoURL, c.uploads.PublicPrefix+"/"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := "image/jpeg"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mimeType = "image/png"
	case ".gif":
		mimeType = "image/gif"
	case ".webp":
		mimeType = "image/webp"
	}

	return &entity.InlineData{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}
