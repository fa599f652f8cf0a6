// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameServerX

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads a T from the environment. Nested sections are resolved
// through their `envPrefix` tags, so STORAGE_DB_DRIVER lands in
// StructuredConfig.Storage.DB.Driver and CLIENT_TOKEN in ClientConfig.Token.
// Unset variables leave zero values for the merge step to fill.
func parseEnv[T any]() (*T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
