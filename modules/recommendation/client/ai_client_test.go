package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neimd2025/web-ndrop-sub000/core/config"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/dto"

	"github.com/google/uuid"
)

func TestNewAIClientWithoutEndpoint(t *testing.T) {
	if c := NewAIClient(config.AIConfig{}); c != nil {
		t.Fatalf("NewAIClient() = %v, want nil", c)
	}
}

func TestRecommendWithClientCredentials(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" {
			t.Errorf("grant_type = %q", r.Form.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	want := uuid.New()
	aiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(dto.AIRecommendationResponse{
			Recommendations: []dto.AIRecommendation{{UserID: want, Score: 1}},
		})
	}))
	defer aiSrv.Close()

	c := NewAIClient(config.AIConfig{
		Endpoint:     aiSrv.URL,
		Timeout:      2 * time.Second,
		ClientID:     "ndrop",
		ClientSecret: "secret",
		TokenURL:     tokenSrv.URL,
	})
	resp, err := c.Recommend(context.Background(), &dto.AIRecommendationRequest{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].UserID != want {
		t.Errorf("recommendations = %+v", resp.Recommendations)
	}
}

func TestRecommendTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewAIClient(config.AIConfig{Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
	if _, err := c.Recommend(context.Background(), &dto.AIRecommendationRequest{}); err == nil {
		t.Fatal("Recommend() error = nil, want timeout")
	}
}
