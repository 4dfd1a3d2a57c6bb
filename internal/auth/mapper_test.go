package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapRegistration(t *testing.T) {
	tests := []struct {
		name string
		in   RegistrationRequest
		want RegistrationRequest
	}{
		{
			name: "full name is split on first whitespace",
			in:   RegistrationRequest{FullName: "  Jane   Mary Doe "},
			want: RegistrationRequest{FirstName: "Jane", LastName: "Mary Doe"},
		},
		{
			name: "single token full name leaves last name empty",
			in:   RegistrationRequest{FullName: "Cher"},
			want: RegistrationRequest{FirstName: "Cher"},
		},
		{
			name: "supplied last name is kept",
			in:   RegistrationRequest{FullName: "Jane Mary", LastName: "Doe"},
			want: RegistrationRequest{FirstName: "Jane", LastName: "Doe"},
		},
		{
			name: "canonical fields win over legacy aliases",
			in: RegistrationRequest{
				FirstName: "Ann", FullName: "Other Person",
				Phone: "+16502530000", MobileNumber: "111",
				Dob: "1990-01-01", DateOfBirth: "2000-02-02",
				PasswordConfirm: "a", ConfirmPassword: "b",
			},
			want: RegistrationRequest{
				FirstName: "Ann", Phone: "+16502530000", Dob: "1990-01-01", PasswordConfirm: "a",
			},
		},
		{
			name: "canonical request passes through unchanged",
			in: RegistrationRequest{
				FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
				Phone: "(650) 253-0000", Dob: "1990-05-01", Password: "pw", PasswordConfirm: "pw",
			},
			want: RegistrationRequest{
				FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
				Phone: "(650) 253-0000", Dob: "1990-05-01", Password: "pw", PasswordConfirm: "pw",
			},
		},
		{
			name: "legacy aliases fill empty canonical fields",
			in: RegistrationRequest{
				MobileNumber:    "650-253-0000",
				DateOfBirth:     "2000-02-02",
				ConfirmPassword: "secret",
				Email:           " jane@example.com ",
			},
			want: RegistrationRequest{
				Phone: "650-253-0000", Dob: "2000-02-02", PasswordConfirm: "secret", Email: "jane@example.com",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRegistration(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, MapRegistration(got), "mapping must be idempotent")
		})
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("(650) 253-0000", "us"))
	assert.True(t, ValidPhone("+1 650 253 0000", "US"))
	assert.True(t, ValidPhone("+44 20 7946 0958", "US"))
	assert.False(t, ValidPhone("111", "US"))
	assert.False(t, ValidPhone(" not a phone ", "US"))
	assert.False(t, ValidPhone("", "US"))
}

func TestUpstreamRegistrationAddsName(t *testing.T) {
	body := RegistrationRequest{FirstName: "Jane", LastName: "Doe"}.upstream()
	assert.Equal(t, "Jane Doe", body.Name)

	raw, err := json.Marshal(body)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "fullName")
	assert.NotContains(t, string(raw), "mobileNumber")
}

func TestExtractUser(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]interface{}
	}{
		{
			name: "data.user wins",
			body: `{"data":{"user":{"id":"1","name":"Nested"}},"user":{"id":"2","name":"Top"}}`,
			want: map[string]interface{}{"id": "1", "name": "Nested"},
		},
		{
			name: "top level user",
			body: `{"status":"success","user":{"id":"2","email":"top@example.com"}}`,
			want: map[string]interface{}{"id": "2", "email": "top@example.com", "name": "top"},
		},
		{
			name: "bare body drops envelope keys",
			body: `{"id":"3","email":"bare@example.com","token":"t","status":"success","message":"ok"}`,
			want: map[string]interface{}{"id": "3", "email": "bare@example.com", "name": "bare"},
		},
		{name: "array body", body: `[1,2]`, want: nil},
		{name: "empty", body: ``, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractUser(json.RawMessage(tt.body)))
		})
	}
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "a", ExtractToken(json.RawMessage(`{"data":{"token":"a"},"token":"b"}`)))
	assert.Equal(t, "b", ExtractToken(json.RawMessage(`{"data":{},"token":"b","accessToken":"c"}`)))
	assert.Equal(t, "c", ExtractToken(json.RawMessage(`{"token":"","accessToken":"c"}`)))
	assert.Equal(t, "", ExtractToken(json.RawMessage(`{"token":5}`)))
	assert.Equal(t, "", ExtractToken(nil))
}

func TestSplitFullName(t *testing.T) {
	first, rest := SplitFullName("Jane\tDoe Smith")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe Smith", rest)

	first, rest = SplitFullName("")
	assert.Empty(t, first)
	assert.Empty(t, rest)
}
