package validator

import (
	"errors"
	"testing"
)

func TestCreateUserRequestValidation(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  CreateUserRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret-pass"},
		},
		{
			name:    "missing username",
			req:     CreateUserRequest{Email: "alice@example.com"},
			wantErr: true,
		},
		{
			name:    "bad username characters",
			req:     CreateUserRequest{Username: "alice smith"},
			wantErr: true,
		},
		{
			name:    "bad email",
			req:     CreateUserRequest{Username: "alice", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name: "valid types",
			req:  CreateUserRequest{Username: "alice", Types: []string{"TEACHER", "STUDENT"}},
		},
		{
			name:    "unknown type code",
			req:     CreateUserRequest{Username: "alice", Types: []string{"BOGUS"}},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     CreateUserRequest{Username: "alice", Password: "short"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verrs ValidationErrors
				if !errors.As(err, &verrs) || len(verrs) == 0 {
					t.Errorf("expected ValidationErrors, got %T", err)
				}
			}
		})
	}
}

func TestUpdateTypesRequestValidation(t *testing.T) {
	v := New()

	if err := v.Struct(&UpdateTypesRequest{Types: []string{"GUARDIAN"}}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := v.Struct(&UpdateTypesRequest{}); err == nil {
		t.Error("missing types accepted")
	}
	if err := v.Struct(&UpdateTypesRequest{Types: []string{"guardian!"}}); err == nil {
		t.Error("malformed type code accepted")
	}
}
