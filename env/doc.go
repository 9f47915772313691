// SPDX-FileCopyrightText: Copyright 2026 JFP Labs
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("JFP_REGISTRY_URL")

# Testing

The Reader interface allows injecting a fake in tests to avoid relying on
real environment variables:

	reader := env.MapReader{"JFP_REGISTRY_URL": "http://localhost:8080"}
	cfg := config.New(config.WithEnv(reader))

# Design

Production code accepts an env.Reader; tests substitute MapReader. This keeps
environment access explicit rather than ambient.
*/
package env
