package llmprovider

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gig-copilot/pkg/gemini"
	"gig-copilot/pkg/qwen"
)

type failingGemini struct{ err error }

func (f failingGemini) GenerateContent(context.Context, *gemini.Request) (*gemini.Response, error) {
	return nil, f.err
}
func (failingGemini) Model() string { return "gemini-test" }

type failingQwen struct{ err error }

func (f failingQwen) GenerateContent(context.Context, *qwen.Request) (*qwen.Response, error) {
	return nil, f.err
}
func (failingQwen) Model() string { return "qwen-test" }

func TestAdapters_MapHTTPStatus(t *testing.T) {
	tcs := map[string]struct {
		status int
		want   error
	}{
		"rate limited": {http.StatusTooManyRequests, ErrProviderRateLimited},
		"bad request":  {http.StatusBadRequest, ErrInvalidRequest},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			g := NewGeminiAdapter(failingGemini{err: &gemini.APIError{StatusCode: tc.status, Body: "{}"}})
			_, err := g.GenerateContent(context.Background(), UserText("", "hi"))
			if !errors.Is(err, tc.want) {
				t.Errorf("gemini: expected %v, got %v", tc.want, err)
			}
			var apiErr *gemini.APIError
			if !errors.As(err, &apiErr) {
				t.Errorf("gemini: the client error must stay reachable, got %v", err)
			}

			q := NewQwenAdapter(failingQwen{err: &qwen.APIError{StatusCode: tc.status, Body: "{}"}})
			if _, err := q.GenerateContent(context.Background(), UserText("", "hi")); !errors.Is(err, tc.want) {
				t.Errorf("qwen: expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAdapters_OtherErrorsPassThrough(t *testing.T) {
	g := NewGeminiAdapter(failingGemini{err: &gemini.APIError{StatusCode: http.StatusInternalServerError}})
	_, err := g.GenerateContent(context.Background(), UserText("", "hi"))
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrProviderRateLimited) {
		t.Errorf("a server error must not be tagged, got %v", err)
	}
}
