package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type GenAI struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
	VideoModel string
}

type Config struct {
	DatabasePath   string
	RedisURI       string
	FrontendURL    string
	VideoLookupURL string
	GenAI          GenAI
	R2             R2
	SecretKey      string
	CookieName     string
	LoginPassword  string
}

func LoadConfig() *Config {
	return &Config{
		DatabasePath:   getEnv("DATABASE_PATH", "creatorflow.db"),
		RedisURI:       getEnv("REDIS_URI", ""),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		VideoLookupURL: getEnv("VIDEO_LOOKUP_URL", "https://www.tikwm.com/api/"),
		GenAI: GenAI{
			APIKey:     getEnv("GENAI_API_KEY", ""),
			BaseURL:    getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			ChatModel:  getEnv("GENAI_CHAT_MODEL", "gemini-2.0-flash"),
			ImageModel: getEnv("GENAI_IMAGE_MODEL", "gemini-2.0-flash-exp-image-generation"),
			VideoModel: getEnv("GENAI_VIDEO_MODEL", "veo-2.0-generate-001"),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
		SecretKey:     getEnv("SECRET_KEY", ""),
		CookieName:    getEnv("COOKIE_NAME", "creatorflow_token"),
		LoginPassword: getEnv("LOGIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
