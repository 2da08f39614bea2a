// Package suggest asks a generative model for brochure copy describing an
// uploaded image.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/imageutil"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Sentinel errors for suggestions.
var (
	ErrNoSourceImage = errors.New("source image must be an uploaded image")
	ErrUpstream      = errors.New("suggestion service failed")
	ErrMissingAPIKey = errors.New("suggestion service requires an API key")
	ErrInvalidTarget = errors.New("invalid suggestion target")
)

const prompt = `You are an assistant that writes real estate brochure copy.

Given the following image, suggest engaging and relevant text that could be used in a real estate brochure.
The text should be concise and capture the essence of the image, highlighting key features and benefits.
Reply with the suggested text only.`

// Suggester turns an image into suggested brochure text.
type Suggester interface {
	Suggest(ctx context.Context, imageDataURI string) (string, error)
}

// generator is the part of the genai client the Gemini suggester calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var (
	_ Suggester = (*Gemini)(nil)
	_ generator = (*genai.Models)(nil)
)

// Config configures the Gemini suggester.
type Config struct {
	APIKey string
	Model  string
}

// Gemini implements Suggester with the Gemini API.
type Gemini struct {
	models generator
	model  string
	logger *zap.Logger
}

// NewGemini creates a Gemini suggester. No request is made until Suggest.
func NewGemini(ctx context.Context, cfg Config, logger *zap.Logger) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", ErrUpstream, err)
	}
	return newGemini(client.Models, cfg.Model, logger), nil
}

func newGemini(models generator, model string, logger *zap.Logger) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{models: models, model: model, logger: logger}
}

// Suggest returns text describing the image in imageDataURI. Anything but a
// base64 image data URI is rejected with ErrNoSourceImage before any request.
func (g *Gemini) Suggest(ctx context.Context, imageDataURI string) (string, error) {
	mime, data, err := imageutil.ParseDataURI(imageDataURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSourceImage, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mime),
		}, genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Warn("suggestion request failed", zap.String("model", g.model), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}
	g.logger.Debug("suggestion generated", zap.String("model", g.model), zap.Int("chars", len(text)))
	return text, nil
}

// Apply suggests text for the image at source and writes it to the text
// field at target. Both are scalar field paths. The source must hold an
// uploaded (embedded) image.
func Apply(ctx context.Context, s Suggester, b content.Brochure, source, target string) (content.Brochure, string, error) {
	if !content.IsImageField(source) {
		return b, "", fmt.Errorf("%w: %q is not an image field", ErrNoSourceImage, source)
	}
	if content.IsImageField(target) {
		return b, "", fmt.Errorf("%w: %q is an image field", ErrInvalidTarget, target)
	}
	if _, err := b.Field(target); err != nil {
		return b, "", fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	ref, err := b.Field(source)
	if err != nil {
		return b, "", err
	}
	if !content.ImageRef(ref).IsEmbedded() {
		return b, "", fmt.Errorf("%w: %q has no uploaded image", ErrNoSourceImage, source)
	}

	text, err := s.Suggest(ctx, ref)
	if err != nil {
		return b, "", err
	}
	out, err := b.SetField(target, text)
	if err != nil {
		return b, "", err
	}
	return out, text, nil
}
