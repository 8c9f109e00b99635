package otel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestToAttribute(t *testing.T) {
	checkIn := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{name: "string", value: "room-1", want: attribute.StringValue("room-1")},
		{name: "int", value: 3, want: attribute.IntValue(3)},
		{name: "float", value: 297.5, want: attribute.Float64Value(297.5)},
		{name: "bool", value: true, want: attribute.BoolValue(true)},
		{name: "time", value: checkIn, want: attribute.StringValue("2030-05-01T00:00:00Z")},
		{name: "fallback", value: struct{ N int }{N: 2}, want: attribute.StringValue("{2}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := toAttribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.want, kv.Value)
		})
	}
}
