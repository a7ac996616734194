package grpcmeta

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/metadata"
)

func TestRequestIDContextHelpers(t *testing.T) {
	if RequestIDFromContext(nil) != "" {
		t.Fatal("expected empty request id for nil context")
	}

	ctx := WithRequestID(nil, "req-1")
	if RequestIDFromContext(ctx) != "req-1" {
		t.Fatalf("expected request id req-1, got %s", RequestIDFromContext(ctx))
	}
}

func TestIsPrintableASCII(t *testing.T) {
	if IsPrintableASCII("") {
		t.Fatal("expected empty string to be non-printable")
	}
	if !IsPrintableASCII("hello") {
		t.Fatal("expected printable ascii to be accepted")
	}
	if IsPrintableASCII("line\n") {
		t.Fatal("expected newline to be non-printable")
	}
	if IsPrintableASCII(string([]byte{0x7f})) {
		t.Fatal("expected DEL to be non-printable")
	}
}

func TestFirstMetadataValue(t *testing.T) {
	md := metadata.MD{
		"X-Wardtable-Request-Id": {"\n", "req-1"},
		"x-wardtable-request-id": {"req-2"},
	}

	value := FirstMetadataValue(md, RequestIDHeader)
	if value != "req-1" && value != "req-2" {
		t.Fatalf("expected printable request id, got %s", value)
	}

	if FirstMetadataValue(metadata.MD{}, RequestIDHeader) != "" {
		t.Fatal("expected empty value for empty metadata")
	}
}

func TestIncomingMetadataAccessors(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		UserIDHeader, "user-1",
		CampaignIDHeader, "campaign-1",
	))

	if UserIDFromContext(ctx) != "user-1" {
		t.Fatal("expected user id from metadata")
	}
	if CampaignIDFromContext(ctx) != "campaign-1" {
		t.Fatal("expected campaign id from metadata")
	}
	if UserIDFromContext(context.Background()) != "" {
		t.Fatal("expected empty user id without metadata")
	}
}

func TestEnsureRequestMetadata(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		RequestIDHeader, "req-1",
	))

	updated, requestID, err := ensureRequestMetadata(ctx, func() (string, error) {
		return "generated", nil
	})
	if err != nil {
		t.Fatalf("ensure request metadata: %v", err)
	}
	if requestID != "req-1" {
		t.Fatalf("expected id from metadata, got %s", requestID)
	}
	if RequestIDFromContext(updated) != "req-1" {
		t.Fatal("expected request id stored in context")
	}
}

func TestEnsureRequestMetadataGeneratesID(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})

	updated, requestID, err := ensureRequestMetadata(ctx, func() (string, error) {
		return "generated", nil
	})
	if err != nil {
		t.Fatalf("ensure request metadata: %v", err)
	}
	if requestID != "generated" {
		t.Fatalf("expected generated request id, got %s", requestID)
	}
	if RequestIDFromContext(updated) != "generated" {
		t.Fatal("expected generated id stored in context")
	}
}

func TestEnsureRequestMetadataGeneratorFailure(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})

	_, _, err := ensureRequestMetadata(ctx, func() (string, error) {
		return "", errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected generator failure to propagate")
	}
}
