package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	LLM      LLMConfig      `envPrefix:"LLM_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8003"`
}

type DatabaseConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"cibf"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"call-transcripts"`
	GroupID string   `env:"GROUP_ID" envDefault:"call-postprocessor"`
}

type LLMConfig struct {
	GoogleAIAPIKey string `env:"GOOGLE_AI_API_KEY"`
	Model          string `env:"MODEL" envDefault:"googleai/gemini-2.0-flash"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
