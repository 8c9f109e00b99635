// Package mocks provides a tracer that records nothing, for tests.
package mocks

import (
	"context"

	"hotel/infras/otel"
)

type noop struct{}

func NewOtel() otel.Otel {
	return noop{}
}

func NewScope() otel.Scope {
	return noop{}
}

func (noop) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, noop{}
}

func (noop) End() {}
func (noop) TraceError(error) {}
func (noop) TraceIfError(error) {}
func (noop) AddEvent(string) {}
func (noop) SetAttribute(string, any) {}
func (noop) SetAttributes(map[string]any) {}
