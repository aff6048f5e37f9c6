package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"plain@example.com", "plain@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}

func TestValidLocation(t *testing.T) {
	for _, loc := range Locations {
		assert.True(t, ValidLocation(loc), loc)
	}
	assert.False(t, ValidLocation("dhaka"), "matching is case sensitive")
	assert.False(t, ValidLocation("Atlantis"))
	assert.False(t, ValidLocation(""))
}

func TestUserIsAdmin(t *testing.T) {
	assert.False(t, (&User{}).IsAdmin())
	assert.True(t, (&User{IsStaff: true}).IsAdmin())
	assert.True(t, (&User{IsSuperuser: true}).IsAdmin())
}

func TestPostHasContent(t *testing.T) {
	assert.False(t, (&Post{}).HasContent())
	assert.True(t, (&Post{Caption: "hello"}).HasContent())
	assert.True(t, (&Post{Image: "https://cdn.example.com/a.jpg"}).HasContent())
	assert.True(t, (&Post{VideoURL: "https://cdn.example.com/a.mp4"}).HasContent())
}
