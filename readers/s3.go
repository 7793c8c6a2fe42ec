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

package readers

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/aaronlmathis/gomart"
	"github.com/aaronlmathis/gomart/table"
)

// S3ReaderError provides structured error information for S3 reader
// operations.
type S3ReaderError struct {
	Op  string
	Err error
}

func (e *S3ReaderError) Error() string {
	return fmt.Sprintf("s3 reader %s: %v", e.Op, e.Err)
}

func (e *S3ReaderError) Unwrap() error {
	return e.Err
}

// S3ReaderOptions configures the S3 reader.
type S3ReaderOptions struct {
	Address         string // s3://bucket/key
	Region          string
	Profile         string
	AccessKeyID     string // static credentials; default chain when empty
	SecretAccessKey string
	EndpointURL     string // custom endpoint for S3-compatible services
	ForcePathStyle  bool
	Format          string // "csv" or "json"; inferred from the key extension
}

// ReaderOptionS3 represents a configuration function for S3Reader.
type ReaderOptionS3 func(*S3ReaderOptions)

func WithS3Address(address string) ReaderOptionS3 {
	return func(o *S3ReaderOptions) { o.Address = address }
}

func WithS3Region(region string) ReaderOptionS3 {
	return func(o *S3ReaderOptions) { o.Region = region }
}

func WithS3Profile(profile string) ReaderOptionS3 {
	return func(o *S3ReaderOptions) { o.Profile = profile }
}

func WithS3Credentials(accessKeyID, secretAccessKey string) ReaderOptionS3 {
	return func(o *S3ReaderOptions) {
		o.AccessKeyID = accessKeyID
		o.SecretAccessKey = secretAccessKey
	}
}

func WithS3Endpoint(endpoint string, pathStyle bool) ReaderOptionS3 {
	return func(o *S3ReaderOptions) {
		o.EndpointURL = endpoint
		o.ForcePathStyle = pathStyle
	}
}

func WithS3Format(format string) ReaderOptionS3 {
	return func(o *S3ReaderOptions) { o.Format = format }
}

// S3Reader implements gomart.DataSource for a single CSV or JSON object in
// S3. The object body is streamed through the matching format reader.
type S3Reader struct {
	inner gomart.DataSource
}

// NewS3Reader fetches the addressed object and wraps its body in a CSV or
// JSON reader according to the key extension.
func NewS3Reader(ctx context.Context, options ...ReaderOptionS3) (*S3Reader, error) {
	opts := S3ReaderOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	bucket, key, err := splitAddress(opts.Address)
	if err != nil {
		return nil, err
	}
	format := opts.Format
	if format == "" {
		format = strings.TrimPrefix(path.Ext(key), ".")
	}

	loadOpts := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, &S3ReaderError{Op: "configure", Err: err}
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
		}
		o.UsePathStyle = opts.ForcePathStyle
	})

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &S3ReaderError{Op: "get_object", Err: err}
	}

	var inner gomart.DataSource
	switch format {
	case "csv":
		inner, err = NewCSVReader(out.Body)
	case "json":
		inner, err = NewJSONReader(out.Body)
	default:
		out.Body.Close()
		return nil, &S3ReaderError{Op: "configure", Err: fmt.Errorf("unsupported format %q", format)}
	}
	if err != nil {
		out.Body.Close()
		return nil, &S3ReaderError{Op: "open", Err: err}
	}
	return &S3Reader{inner: inner}, nil
}

// Read implements the gomart.DataSource interface.
func (r *S3Reader) Read(ctx context.Context) (table.Row, error) {
	return r.inner.Read(ctx)
}

// Close implements the gomart.DataSource interface.
func (r *S3Reader) Close() error {
	return r.inner.Close()
}

func splitAddress(address string) (bucket, key string, err error) {
	const scheme = "s3://"
	if !strings.HasPrefix(address, scheme) {
		return "", "", &S3ReaderError{Op: "configure", Err: fmt.Errorf("address %q is not an s3:// URI", address)}
	}
	rest := strings.TrimPrefix(address, scheme)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &S3ReaderError{Op: "configure", Err: fmt.Errorf("address %q needs bucket and key", address)}
	}
	return parts[0], parts[1], nil
}
