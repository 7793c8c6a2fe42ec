//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of GoMart.
//
// GoMart is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoMart is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoMart. If not, see https://www.gnu.org/licenses/.

package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Package config loads runtime configuration from the environment, with
// an optional .env file for local development.

// Config holds every external location the pipelines pull from or push to.
type Config struct {
	// Credential files for the source RDS and the destination warehouse.
	SourceCredsPath string
	TargetCredsPath string

	// Store REST API.
	StoreNumberURL string
	StoreDetailURL string
	StoreAPIKey    string

	// S3 and HTTP object locations.
	CardPDFURL    string
	ProductsS3    string
	DateDetailsS3 string
	AWSRegion     string
	AWSProfile    string

	// Optional archival dump of cleaned tables as CSV.
	DumpDir string

	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in when present; real environment
// variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		SourceCredsPath: getEnv("GOMART_SOURCE_CREDS", "db_creds.yaml"),
		TargetCredsPath: getEnv("GOMART_TARGET_CREDS", "db_creds_target.yaml"),
		StoreNumberURL:  getEnv("GOMART_STORE_NUMBER_URL", "https://aqj7u5id95.execute-api.eu-west-1.amazonaws.com/prod/number_stores"),
		StoreDetailURL:  getEnv("GOMART_STORE_DETAIL_URL", "https://aqj7u5id95.execute-api.eu-west-1.amazonaws.com/prod/store_details/{store_number}"),
		StoreAPIKey:     os.Getenv("GOMART_STORE_API_KEY"),
		CardPDFURL:      getEnv("GOMART_CARD_PDF_URL", "https://data-handling-public.s3.eu-west-1.amazonaws.com/card_details.pdf"),
		ProductsS3:      getEnv("GOMART_PRODUCTS_S3", "s3://data-handling-public/products.csv"),
		DateDetailsS3:   getEnv("GOMART_DATE_DETAILS_S3", "s3://data-handling-public/date_details.json"),
		AWSRegion:       getEnv("AWS_REGION", "eu-west-1"),
		AWSProfile:      os.Getenv("AWS_PROFILE"),
		DumpDir:         os.Getenv("GOMART_DUMP_DIR"),
		LogLevel:        getEnv("GOMART_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
