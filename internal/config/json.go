// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are accepted either as strings ("30s") or as integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		Version            string `json:"version"`
		LogLevel           string `json:"log_level"`
		PasswordHashScheme string `json:"password_hash_scheme"`
		AdminUsername      string `json:"admin_username"`
		AdminPassword      string `json:"admin_password"`
		FeedDefaultLimit   int    `json:"feed_default_limit"`
		FeedMaxLimit       int    `json:"feed_max_limit"`
		MaxUploadSize      int64  `json:"max_upload_size"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Objects struct {
			Endpoint        string `json:"endpoint"`
			Region          string `json:"region"`
			Bucket          string `json:"bucket"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			KeyPrefix       string `json:"key_prefix"`
			PublicURL       string `json:"public_url"`
			UsePathStyle    bool   `json:"use_path_style"`
		} `json:"objects,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:            jsonCfg.App.Version,
			LogLevel:           jsonCfg.App.LogLevel,
			PasswordHashScheme: jsonCfg.App.PasswordHashScheme,
			AdminUsername:      jsonCfg.App.AdminUsername,
			AdminPassword:      jsonCfg.App.AdminPassword,
			FeedDefaultLimit:   jsonCfg.App.FeedDefaultLimit,
			FeedMaxLimit:       jsonCfg.App.FeedMaxLimit,
			MaxUploadSize:      jsonCfg.App.MaxUploadSize,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Objects: Objects{
				Endpoint:        jsonCfg.Storage.Objects.Endpoint,
				Region:          jsonCfg.Storage.Objects.Region,
				Bucket:          jsonCfg.Storage.Objects.Bucket,
				AccessKeyID:     jsonCfg.Storage.Objects.AccessKeyID,
				SecretAccessKey: jsonCfg.Storage.Objects.SecretAccessKey,
				KeyPrefix:       jsonCfg.Storage.Objects.KeyPrefix,
				PublicURL:       jsonCfg.Storage.Objects.PublicURL,
				UsePathStyle:    jsonCfg.Storage.Objects.UsePathStyle,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
