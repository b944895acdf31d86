package services_test

import (
	"context"
	"testing"

	"github.com/eerla/pybenders-sub000/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithSubject(ctx, "golang")
	ctx = services.WithQuestionID(ctx, "golang_00042")
	ctx = services.WithStage(ctx, "encode")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if subject, ok := services.SubjectFromContext(ctx); !ok || subject != "golang" {
		t.Fatalf("unexpected subject: %v %v", subject, ok)
	}
	if qid, ok := services.QuestionIDFromContext(ctx); !ok || qid != "golang_00042" {
		t.Fatalf("unexpected question id: %v %v", qid, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "encode" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithQuestionID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.QuestionIDFromContext(ctx); ok {
		t.Fatal("expected no question id value")
	}
}
