// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the phonebook project using Mage.
//
// Usage:
//
//	mage build       Compile the phonebook binary to bin/
//	mage install     Install phonebook to GOPATH/bin
//	mage clean       Remove build artifacts
//	mage lint        Run go vet, then golangci-lint
//	mage test:all    Run every test with the race detector
//	mage test:unit   Run tests for a single package pattern (default ./...)
//	mage test:cover  Write coverage to bin/coverage.out and print totals
//	mage stats       Print Go lines of code per top-level directory
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "phonebook"
	binaryDir  = "bin"
	cmdDir     = "./cmd/phonebook"
)

// Build compiles the phonebook binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Lint runs go vet over every package, then golangci-lint.
func Lint() error {
	for _, args := range [][]string{
		{binGo, "vet", "./..."},
		{binLint, "run", "./..."},
	} {
		if err := sh.RunV(args[0], args[1:]...); err != nil {
			return err
		}
	}
	return nil
}
