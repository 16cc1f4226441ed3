package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	jsoniter "github.com/json-iterator/go"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/authz/quads"
)

// s3Client is the subset of *s3.Client S3ResourceStore depends on, so
// tests can substitute a fake without a real AWS endpoint.
type s3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3ResourceStore fetches resource and ACL document bodies from an S3
// bucket, object key equal to the resource path. Every object is expected
// to carry the JSON-encoded []quads.Quad body used by
// authz.ContentTypeInternalQuads; a deployment storing non-ACL bodies in
// other content types would extend this, but the authorization core never
// asks for anything else.
type S3ResourceStore struct {
	client s3Client
	bucket string
}

// NewS3ResourceStore builds an S3ResourceStore reading from bucket via
// client.
func NewS3ResourceStore(client *s3.Client, bucket string) *S3ResourceStore {
	return NewS3ResourceStoreWithClient(client, bucket)
}

// NewS3ResourceStoreWithClient builds an S3ResourceStore over any
// s3Client, letting tests substitute a fake in place of *s3.Client.
func NewS3ResourceStoreWithClient(client s3Client, bucket string) *S3ResourceStore {
	return &S3ResourceStore{client: client, bucket: bucket}
}

// GetRepresentation implements authz.ResourceStore. A NoSuchKey error maps
// to *authz.NotFoundError; any other AWS SDK error is wrapped as
// *authz.InternalServerError with the SDK error as cause.
func (s *S3ResourceStore) GetRepresentation(ctx context.Context, id model.ResourceIdentifier, _ authz.ContentPreferences) (authz.Representation, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id.Path),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return authz.Representation{}, authz.NewNotFoundError(id.Path)
		}
		return authz.Representation{}, authz.NewInternalServerError(fmt.Sprintf("fetching S3 object %s", id.Path), err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return authz.Representation{}, authz.NewInternalServerError(fmt.Sprintf("reading S3 object body %s", id.Path), err)
	}

	var parsed []quads.Quad
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &parsed); err != nil {
		return authz.Representation{}, authz.NewInternalServerError(fmt.Sprintf("decoding quads for %s", id.Path), err)
	}
	return authz.Representation{ContentType: authz.ContentTypeInternalQuads, Quads: parsed}, nil
}
