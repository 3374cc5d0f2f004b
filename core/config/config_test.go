package config

import "testing"

func TestOrigin(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "public base url wins",
			cfg: Config{
				App:    AppConfig{PublicBaseURL: "https://ndrop.kr/", VercelURL: "ndrop.vercel.app"},
				Server: ServerConfig{Host: "localhost", Port: 7070},
			},
			want: "https://ndrop.kr",
		},
		{
			name: "vercel url gets a scheme",
			cfg: Config{
				App:    AppConfig{VercelURL: "ndrop-git-main.vercel.app"},
				Server: ServerConfig{Host: "localhost", Port: 7070},
			},
			want: "https://ndrop-git-main.vercel.app",
		},
		{
			name: "falls back to server address",
			cfg:  Config{Server: ServerConfig{Host: "localhost", Port: 7070}},
			want: "http://localhost:7070",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Origin(); got != tt.want {
				t.Errorf("Origin() = %q, want %q", got, tt.want)
			}
		})
	}
}
