package domain

import (
	"errors"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

func TestNewMessage(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(1, 2, "olá")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if msg.ID != 0 {
		t.Errorf("Expected zero ID before storage, got %d", msg.ID)
	}
	if msg.UsuariosID != 1 || msg.DestinatarioID != 2 || msg.Mensagem != "olá" {
		t.Errorf("Unexpected message fields: %+v", msg)
	}

	_, err = NewMessage(1, 1, "olá")
	if !errors.Is(err, ErrSelfAddressed) {
		t.Errorf("Expected %v, got %v", ErrSelfAddressed, err)
	}
}

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     Message
		wantErr []error
	}{
		{name: "valid", msg: Message{UsuariosID: 1, DestinatarioID: 2, Mensagem: "hi"}},
		{
			name:    "empty text",
			msg:     Message{UsuariosID: 1, DestinatarioID: 2},
			wantErr: []error{ErrEmptyMessageText},
		},
		{
			name:    "zero sender",
			msg:     Message{UsuariosID: 0, DestinatarioID: 2, Mensagem: "hi"},
			wantErr: []error{ErrInvalidSenderID},
		},
		{
			name:    "negative recipient",
			msg:     Message{UsuariosID: 1, DestinatarioID: -3, Mensagem: "hi"},
			wantErr: []error{ErrInvalidRecipientID},
		},
		{
			name:    "self addressed",
			msg:     Message{UsuariosID: 7, DestinatarioID: 7, Mensagem: "hi"},
			wantErr: []error{ErrSelfAddressed},
		},
		{
			name:    "several problems at once",
			msg:     Message{},
			wantErr: []error{ErrEmptyMessageText, ErrInvalidSenderID, ErrInvalidRecipientID},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if len(tc.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
			for _, want := range tc.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Expected error to wrap %v, got %v", want, err)
				}
			}
		})
	}
}

func TestMessagePatchValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		patch   MessagePatch
		wantErr error
	}{
		{name: "empty", patch: MessagePatch{}, wantErr: ErrEmptyPatch},
		{name: "only text", patch: MessagePatch{Mensagem: stringPtr("novo")}},
		{name: "only sender", patch: MessagePatch{UsuariosID: int64Ptr(3)}},
		{name: "zero sender", patch: MessagePatch{UsuariosID: int64Ptr(0)}, wantErr: ErrInvalidSenderID},
		{name: "zero recipient", patch: MessagePatch{DestinatarioID: int64Ptr(0)}, wantErr: ErrInvalidRecipientID},
		{name: "empty text", patch: MessagePatch{Mensagem: stringPtr("")}, wantErr: ErrEmptyMessageText},
		{
			name:    "both ids equal",
			patch:   MessagePatch{UsuariosID: int64Ptr(4), DestinatarioID: int64Ptr(4)},
			wantErr: ErrSelfAddressed,
		},
		{
			name:  "both ids different",
			patch: MessagePatch{UsuariosID: int64Ptr(4), DestinatarioID: int64Ptr(5)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestMessagePatchIsEmpty(t *testing.T) {
	t.Parallel()

	if !(MessagePatch{}).IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}
	if (MessagePatch{Mensagem: stringPtr("")}).IsEmpty() {
		t.Error("Expected patch with empty text to be non-empty")
	}
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	if err := ValidateID(1); err != nil {
		t.Errorf("Expected id 1 to be valid, got %v", err)
	}

	for _, id := range []int64{0, -1} {
		err := ValidateID(id)
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("Expected ErrInvalidID for %d, got %v", id, err)
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "id" {
			t.Errorf("Expected ValidationError on field id, got %v", err)
		}
	}
}
