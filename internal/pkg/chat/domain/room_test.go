package chat

import (
	"errors"
	"testing"
)

func TestNewDirectRoom(t *testing.T) {
	tests := []struct {
		name         string
		participants []int64
		wantMembers  []int64
		wantErr      error
	}{
		{"valid pair", []int64{1, 2}, []int64{1, 2}, nil},
		{"pair is sorted", []int64{9, 3}, []int64{3, 9}, nil},
		{"duplicates collapse", []int64{5, 5}, nil, ErrInvalidParticipants},
		{"single participant", []int64{1}, nil, ErrInvalidParticipants},
		{"three participants", []int64{1, 2, 3}, nil, ErrInvalidParticipants},
		{"non-positive ids dropped", []int64{0, -1, 4, 7}, []int64{4, 7}, nil},
		{"empty", nil, nil, ErrInvalidParticipants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, members, err := NewDirectRoom(tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewDirectRoom() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDirectRoom() unexpected error: %v", err)
			}
			if room.Kind != RoomDirect || !room.Active || room.Name != "" {
				t.Errorf("NewDirectRoom() room = %+v, want active unnamed direct room", room)
			}
			if len(members) != 2 || members[0] != tt.wantMembers[0] || members[1] != tt.wantMembers[1] {
				t.Errorf("NewDirectRoom() members = %v, want %v", members, tt.wantMembers)
			}
		})
	}
}

func TestNewGroupRoom(t *testing.T) {
	tests := []struct {
		name         string
		groupName    string
		participants []int64
		wantErr      error
	}{
		{"valid", "team", []int64{1, 2}, nil},
		{"name trimmed", "  team  ", []int64{1, 2}, nil},
		{"empty name", "", []int64{1, 2}, ErrInvalidName},
		{"blank name", "   ", []int64{1, 2}, ErrInvalidName},
		{"one member", "team", []int64{1}, ErrInvalidParticipants},
		{"duplicate members collapse", "team", []int64{1, 1}, ErrInvalidParticipants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, members, err := NewGroupRoom(tt.groupName, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewGroupRoom() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGroupRoom() unexpected error: %v", err)
			}
			if room.Kind != RoomGroup || room.Name != "team" || !room.Active {
				t.Errorf("NewGroupRoom() room = %+v, want active group named team", room)
			}
			if len(members) != 2 {
				t.Errorf("NewGroupRoom() members = %v, want 2 members", members)
			}
		})
	}
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(10, 1, "  hello  ")
	if err != nil {
		t.Fatalf("NewMessage(): %v", err)
	}
	if msg.Content != "hello" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hello")
	}

	for _, content := range []string{"", "   ", "\t\n"} {
		if _, err := NewMessage(10, 1, content); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("NewMessage(%q) error = %v, want ErrEmptyMessage", content, err)
		}
	}
}
