package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/jarcoal/httpmock"
)

func newMockS3(t *testing.T, transport *httpmock.MockTransport) *s3.Client {
	t.Helper()
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("test", "test", ""),
		HTTPClient:  &http.Client{Transport: transport},
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.RetryMaxAttempts = 1
	})
}

func TestS3StoreLoad(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", `=~/test-bucket/asins\.json`,
		httpmock.NewStringResponder(200, `["B001"]`))

	store := NewS3Store(newMockS3(t, transport), "test-bucket")
	data, err := store.Load(context.Background(), "asins.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `["B001"]` {
		t.Errorf("Load = %q", data)
	}
}

func TestS3StoreSave(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("PUT", `=~/test-bucket/runs/out\.json`,
		httpmock.NewStringResponder(200, ""))

	store := NewS3Store(newMockS3(t, transport), "test-bucket")
	if err := store.Save(context.Background(), "runs/out.json", []byte("[]")); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestS3StoreNetworkErrorIsTransient(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterNoResponder(httpmock.ConnectionFailure)

	store := NewS3Store(newMockS3(t, transport), "test-bucket")
	_, err := store.Load(context.Background(), "asins.json")
	var transient TransientError
	if !errors.As(err, &transient) {
		t.Fatalf("err = %v, want TransientError", err)
	}
}

func TestClassifyS3(t *testing.T) {
	tests := []struct {
		code      string
		permanent bool
	}{
		{code: "NoSuchBucket", permanent: true},
		{code: "NoSuchKey", permanent: true},
		{code: "AccessDenied", permanent: true},
		{code: "InvalidAccessKeyId", permanent: true},
		{code: "SlowDown", permanent: false},
		{code: "InternalError", permanent: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			apiErr := &smithy.GenericAPIError{Code: tt.code, Message: "test"}
			got := classifyS3(apiErr)

			var permanent PermanentError
			if errors.As(got, &permanent) != tt.permanent {
				t.Errorf("classifyS3(%s) = %T, want permanent=%v", tt.code, got, tt.permanent)
			}
		})
	}
}
