package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecred/internal/credential/models"
)

func TestFilePublisher(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	backend, err := NewFileBackend(root, "https://lms.example.com", "/media")
	require.NoError(t, err)
	id := models.NewCredentialID()

	t.Run("serves from root and media url", func(t *testing.T) {
		url, err := NewPublisher(backend, "").Publish(ctx, id, []byte("v1"))
		require.NoError(t, err)
		assert.Equal(t, "https://lms.example.com/media/external_certificates/"+id.String()+".pdf", url)

		data, err := os.ReadFile(filepath.Join(root, ArtifactDir, id.String()+".pdf"))
		require.NoError(t, err)
		assert.Equal(t, "v1", string(data))
	})

	t.Run("republishing overwrites the artifact", func(t *testing.T) {
		_, err := NewPublisher(backend, "").Publish(ctx, id, []byte("v2"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(root, ArtifactDir, id.String()+".pdf"))
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))
	})

	t.Run("custom domain overrides the local scheme", func(t *testing.T) {
		url, err := NewPublisher(backend, "https://certs.example.com/").Publish(ctx, id, []byte("v3"))
		require.NoError(t, err)
		assert.Equal(t, "https://certs.example.com/"+id.String()+".pdf", url)
	})

	t.Run("rejects escaping paths", func(t *testing.T) {
		assert.Error(t, backend.Save(ctx, "../outside.pdf", []byte("x"), ContentTypePDF))
	})
}

type fakeS3 struct {
	objects map[string][]byte
	deleted []string
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	buf, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = buf
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Publisher(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	backend := NewS3BackendWithClient(client, S3Config{Bucket: "creds", Region: "eu-west-1", Prefix: "prod/"})
	id := models.NewCredentialID()
	key := "prod/" + ArtifactPath(id)

	url, err := NewPublisher(backend, "").Publish(ctx, id, []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, "https://creds.s3.eu-west-1.amazonaws.com/"+key, url)
	assert.Empty(t, client.deleted)

	_, err = NewPublisher(backend, "").Publish(ctx, id, []byte("second"))
	require.NoError(t, err)
	assert.Equal(t, []string{key}, client.deleted)
	assert.Equal(t, []byte("second"), client.objects[key])

	custom := NewS3BackendWithClient(client, S3Config{Bucket: "creds", Endpoint: "http://minio:9000/"})
	url, err = custom.URL(ctx, "a/b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/creds/a/b.pdf", url)
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := New(context.Background(), Config{Type: "ftp"})
	assert.Error(t, err)
}
