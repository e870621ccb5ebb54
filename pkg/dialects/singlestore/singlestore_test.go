package singlestore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimvekemans/dbt-academy/pkg/dialect"
)

func TestLocatorString(t *testing.T) {
	tests := []struct {
		name    string
		details map[string]string
		want    string
	}{
		{
			name: "full details",
			details: map[string]string{
				"user": "u", "pass": "p", "host": "h", "port": "5000", "database": "d",
			},
			want: "mysql://u:p@h:5000/d",
		},
		{
			name: "missing database renders None",
			details: map[string]string{
				"user": "u", "pass": "p", "host": "h", "port": "5000",
			},
			want: "mysql://u:p@h:5000/None",
		},
		{
			name: "empty database renders empty, not None",
			details: map[string]string{
				"user": "u", "pass": "p", "host": "h", "port": "5000", "database": "",
			},
			want: "mysql://u:p@h:5000/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dialect{}.LocatorString(tt.details))
		})
	}
}

func TestDSN(t *testing.T) {
	details := map[string]string{
		"user": "u", "pass": "p", "host": "h", "port": "5000", "database": "d",
	}
	assert.Equal(t, "u:p@tcp(h:5000)/d", Dialect{}.DSN(details))
}

func TestRegistered(t *testing.T) {
	d, ok := dialect.Get("singlestore")
	assert.True(t, ok)
	assert.Equal(t, "singlestore", d.Name())
	assert.Equal(t, "mysql", d.DriverName())
}
