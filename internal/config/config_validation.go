// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidServerConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if objects := cfg.Storage.Objects; objects.Enabled() {
		if objects.PublicURL == "" || objects.Region == "" {
			return fmt.Errorf("%w: object storage needs region and public url", ErrInvalidStorageConfigs)
		}
		if (objects.AccessKeyID == "") != (objects.SecretAccessKey == "") {
			return fmt.Errorf("%w: object storage credentials are incomplete", ErrInvalidStorageConfigs)
		}
	}

	switch cfg.App.PasswordHashScheme {
	case "sha256", "argon2id":
	default:
		return fmt.Errorf("%w: unsupported password hash scheme %q", ErrInvalidAppConfigs, cfg.App.PasswordHashScheme)
	}
	if cfg.App.Version == "" {
		return fmt.Errorf("%w: empty version", ErrInvalidAppConfigs)
	}
	if cfg.App.FeedDefaultLimit <= 0 || cfg.App.FeedMaxLimit < cfg.App.FeedDefaultLimit {
		return fmt.Errorf("%w: feed limits must satisfy 0 < default <= max", ErrInvalidAppConfigs)
	}
	if cfg.App.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", ErrInvalidAppConfigs)
	}
	if (cfg.App.AdminUsername == "") != (cfg.App.AdminPassword == "") {
		return fmt.Errorf("%w: admin username and password must be set together", ErrInvalidAppConfigs)
	}

	return nil
}
