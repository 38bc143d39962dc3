package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

func TestTranslate(t *testing.T) {
	other := errors.New("socket closed")
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, domain.ErrNotFound},
		{"duplicate key", dup, domain.ErrDataConflict},
		{"passthrough", other, other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestUserDocument_UsesStringID(t *testing.T) {
	u := &domain.User{
		ID:         "5b0f6f52-7a3c-4c53-9f0e-3f1c2f6b9d11",
		Name:       "Ann",
		Email:      "ann@example.com",
		Roles:      []string{domain.RoleUser},
		Registered: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Enabled:    true,
	}

	raw, err := bson.Marshal(toUserDocument(u))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["_id"] != u.ID {
		t.Fatalf("_id = %v, want %s", m["_id"], u.ID)
	}
	if _, ok := m["password_hash"]; !ok {
		t.Fatal("expected password_hash field")
	}
}
