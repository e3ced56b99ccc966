package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `json:"server"`
	Database    DatabaseConfig    `json:"database"`
	Records     RecordsConfig     `json:"records"`
	Assets      AssetsConfig      `json:"assets"`
	Institution InstitutionConfig `json:"institution"`
	Logging     LoggingConfig     `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents the issuance-log database configuration
type DatabaseConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	DBName         string        `json:"db_name"`
	SSLMode        string        `json:"ssl_mode"`
	MaxConnections int           `json:"max_connections"`
	MaxIdleConns   int           `json:"max_idle_conns"`
	MaxLifetime    time.Duration `json:"max_lifetime"`
}

// RecordsConfig points at the external academic-records API
type RecordsConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// AssetsConfig points at the static host serving institutional images.
// AttemptTimeout bounds each candidate fetch so a broken host cannot stall
// certificate production.
type AssetsConfig struct {
	Origin            string        `json:"origin"`
	PublicRoot        string        `json:"public_root"`
	LogoPath          string        `json:"logo_path"`
	SignatureLeft     string        `json:"signature_left"`
	SignatureRight    string        `json:"signature_right"`
	DiplomaBackground string        `json:"diploma_background"`
	AttemptTimeout    time.Duration `json:"attempt_timeout"`
}

// InstitutionConfig is the issuing institution's identity
type InstitutionConfig struct {
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	City      string `json:"city"`
	Registrar string `json:"registrar"`
	Director  string `json:"director"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "academia_portal",
			SSLMode: "disable",
		},
		Records: RecordsConfig{
			BaseURL: "http://localhost:8081/api",
			Timeout: 10 * time.Second,
		},
		Assets: AssetsConfig{
			Origin:            "http://localhost:8081",
			PublicRoot:        "public",
			LogoPath:          "/img/Logo.png",
			SignatureLeft:     "/img/FirmaDirector.png",
			SignatureRight:    "/img/FirmaSecretario.png",
			DiplomaBackground: "/img/FondoDiploma.png",
			AttemptTimeout:    5 * time.Second,
		},
		Institution: InstitutionConfig{
			Name:  "Academia de Formación Integral",
			City:  "Bogotá D.C.",
			TaxID: "900.000.000-1",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if recordsURL := os.Getenv("RECORDS_BASE_URL"); recordsURL != "" {
		config.Records.BaseURL = recordsURL
	}
	if assetOrigin := os.Getenv("ASSETS_ORIGIN"); assetOrigin != "" {
		config.Assets.Origin = assetOrigin
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
