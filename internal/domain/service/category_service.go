package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/pkg/errors"
)

const generativeLanguageURL = "https://generativelanguage.googleapis.com/v1beta"

// CategorySuggestionService asks a generative model to classify a report
// into one of the canonical categories. A response outside the set is a
// recoverable failure: the caller keeps the manually selected category.
type CategorySuggestionService struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

func NewCategorySuggestionService(client *resty.Client, apiKey, model string) *CategorySuggestionService {
	return &CategorySuggestionService{
		client:  client,
		baseURL: generativeLanguageURL,
		apiKey:  apiKey,
		model:   model,
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (s *CategorySuggestionService) SuggestCategory(ctx context.Context, title, description string) (string, error) {
	prompt := fmt.Sprintf(
		"Classifique o problema urbano abaixo em exatamente uma das categorias a seguir e responda somente com o nome da categoria, sem pontuação.\n\nCategorias: %s\n\nTítulo: %s\nDescrição: %s",
		strings.Join(entity.Categories, ", "), title, description,
	)

	var result generateContentResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(generateContentRequest{
			Contents: []content{{Parts: []part{{Text: prompt}}}},
		}).
		SetResult(&result).
		Post(fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model))
	if err != nil {
		return "", errors.Internal("Category suggestion request failed", err)
	}
	if resp.IsError() {
		return "", errors.Internal(fmt.Sprintf("Category suggestion failed with status %d", resp.StatusCode()), nil)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("AI_SUGGESTION_INVALID", "Model returned no suggestion", http.StatusUnprocessableEntity, nil)
	}

	suggestion := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if !entity.ValidCategory(suggestion) {
		return "", errors.New("AI_SUGGESTION_INVALID",
			fmt.Sprintf("Suggested category %q is not in the allowed set", suggestion), http.StatusUnprocessableEntity, nil)
	}

	return suggestion, nil
}
