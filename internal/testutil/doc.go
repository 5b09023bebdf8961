// Package testutil provides shared test utilities for troupe.
//
// This package consolidates the fixtures and stubs used across the
// troupe codebase to reduce duplication and ensure consistent test
// patterns.
//
// # Fixtures
//
// The fixtures.go file provides workspace scaffolding helpers:
//
//   - SetupWorkspace(t) - creates a temp workspace with config and folders
//   - WriteActor(t, root, name, def) - writes an actor descriptor
//   - WriteConfig(t, root, content) - writes a raw troupe.yaml
//
// # Stubs
//
// The stub.go file provides a scriptable responder:
//
//   - StubResponder - records every request and replays canned responses
package testutil
