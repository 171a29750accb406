package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 100, "user@example.com", "USER")

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, uint(100), id)
		assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
		assert.Equal(t, "USER", GetUserRoleFromContext(ctx))
		assert.False(t, IsAdmin(ctx))
	})

	t.Run("Admin role", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 7, "admin@example.com", RoleAdmin)
		assert.True(t, IsAdmin(ctx))
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, "", GetUserEmailFromContext(context.Background()))
	})

	t.Run("Zero id is anonymous", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 0, "", "")
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestToUint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"whitespace", " 7 ", 7, false},
		{"negative", "-1", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUint(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUintToString(t *testing.T) {
	assert.Equal(t, "42", UintToString(42))
	assert.Equal(t, "0", UintToString(0))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "boom", http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "boom", body["error"])
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "x", PtrString(StrPtr("x")))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Shipped", Capitalize("shipped"))
	assert.Equal(t, "Delivered", Capitalize("DELIVERED"))
	assert.Equal(t, "", Capitalize(""))
}

func TestAnonymizeName(t *testing.T) {
	assert.Equal(t, "C***", AnonymizeName("caroline Silva"))
	assert.Equal(t, "É***", AnonymizeName("élise"))
	assert.Equal(t, "***", AnonymizeName("  "))
}
