package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    connectionString
		expectError bool
	}{
		{
			name:  "valid connection string with all fields",
			input: "https://localhost:4150?authToken=secret123",
			expected: connectionString{
				Protocol:  "https",
				Host:      "localhost",
				Port:      "4150",
				AuthToken: "secret123",
			},
			expectError: false,
		},
		{
			name:  "valid connection string without auth token",
			input: "https://localhost:4150",
			expected: connectionString{
				Protocol:  "https",
				Host:      "localhost",
				Port:      "4150",
				AuthToken: "",
			},
			expectError: false,
		},
		{
			name:  "http protocol",
			input: "http://127.0.0.1:8080?authToken=token123",
			expected: connectionString{
				Protocol:  "http",
				Host:      "127.0.0.1",
				Port:      "8080",
				AuthToken: "token123",
			},
			expectError: false,
		},
		{
			name:  "connection string with URL encoded characters",
			input: "https://localhost:4150?authToken=secret%20123%26special",
			expected: connectionString{
				Protocol:  "https",
				Host:      "localhost",
				Port:      "4150",
				AuthToken: "secret 123&special",
			},
			expectError: false,
		},
		{
			name:  "connection string without port",
			input: "https://localhost?authToken=secret123",
			expected: connectionString{
				Protocol:  "https",
				Host:      "localhost",
				Port:      "",
				AuthToken: "secret123",
			},
			expectError: false,
		},
		{
			name:        "empty connection string",
			input:       "",
			expectError: true,
		},
		{
			name:        "invalid URL format",
			input:       "not-a-valid-url",
			expectError: true,
		},
		{
			name:        "missing protocol",
			input:       "://localhost:4150",
			expectError: true,
		},
		{
			name:        "invalid protocol",
			input:       "tcp://localhost:4150",
			expectError: true,
		},
		{
			name:        "missing host",
			input:       "http://:9876",
			expectError: true,
		},
		{
			name:  "IPv6 address",
			input: "https://[::1]:4150?authToken=secret123",
			expected: connectionString{
				Protocol:  "https",
				Host:      "::1",
				Port:      "4150",
				AuthToken: "secret123",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseConnectionString(tt.input)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestRedactSinkPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "database file", input: "data/out.db", expected: "data/out.db"},
		{name: "remote without token", input: "http://localhost:9876", expected: "http://localhost:9876"},
		{name: "remote with token", input: "https://db.example.com:4150?authToken=secret", expected: "https://db.example.com:4150?authToken=****"},
		{name: "remote without port", input: "https://db.example.com?authToken=secret", expected: "https://db.example.com?authToken=****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RedactSinkPath(tt.input))
		})
	}
}
